package moderation

// Category names reported by every layer of the pipeline.
const (
	CategoryProfanity      = "profanity"
	CategoryViolence       = "violence"
	CategorySexual         = "sexual"
	CategoryBullying       = "bullying"
	CategoryPersonalData   = "personal_data"
	CategoryMeetingRequest = "meeting_request"
	CategoryEvasion        = "platform_evasion"
	CategorySpam           = "spam"
)

type Severity string

const (
	SeverityNone   Severity = "none"
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

var severityRank = map[Severity]int{
	SeverityNone:   0,
	SeverityLow:    1,
	SeverityMedium: 2,
	SeverityHigh:   3,
}

// Max returns the more severe of the two.
func (s Severity) Max(other Severity) Severity {
	if severityRank[other] > severityRank[s] {
		return other
	}
	return s
}

// Verdict is the structured allow/block decision produced by any pipeline
// layer. Fallback marks a verdict produced by the fail-open path after a
// classifier error so operational logging can distinguish it from a genuine
// pass; it never affects Allowed.
type Verdict struct {
	Allowed      bool     `json:"allowed"`
	Categories   []string `json:"categories"`
	Severity     Severity `json:"severity"`
	Reason       string   `json:"reason"`
	DetectedText string   `json:"detected_text,omitempty"`
	Fallback     bool     `json:"-"`
}

func Allow() *Verdict {
	return &Verdict{Allowed: true, Severity: SeverityNone}
}

func Block(category string, severity Severity, reason string) *Verdict {
	return &Verdict{
		Allowed:    false,
		Categories: []string{category},
		Severity:   severity,
		Reason:     reason,
	}
}

// Merge combines two verdicts for the same content (e.g. visual
// classification and the OCR-text re-run): blocked if either blocks,
// categories unioned, severity the higher of the two.
func Merge(a, b *Verdict) *Verdict {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	merged := &Verdict{
		Allowed:      a.Allowed && b.Allowed,
		Severity:     a.Severity.Max(b.Severity),
		Fallback:     a.Fallback && b.Fallback,
		DetectedText: a.DetectedText,
	}
	if merged.DetectedText == "" {
		merged.DetectedText = b.DetectedText
	}
	seen := make(map[string]struct{})
	for _, c := range append(append([]string{}, a.Categories...), b.Categories...) {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		merged.Categories = append(merged.Categories, c)
	}
	switch {
	case !a.Allowed && a.Reason != "":
		merged.Reason = a.Reason
	case !b.Allowed && b.Reason != "":
		merged.Reason = b.Reason
	default:
		merged.Reason = a.Reason
	}
	return merged
}
