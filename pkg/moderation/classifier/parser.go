package classifier

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/valyala/fastjson"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

var errNoVerdict = errors.New("no verdict object found in classifier response")

// envelope is the validated shape of the classifier's reply. Allowed is a
// pointer so a reply missing the field is rejected instead of silently
// defaulting to blocked or allowed.
type envelope struct {
	Allowed      *bool    `json:"allowed"`
	Categories   []string `json:"categories"`
	Severity     string   `json:"severity"`
	Reason       string   `json:"reason"`
	DetectedText string   `json:"detected_text"`
}

// parseVerdict locates the JSON object inside a possibly chatty model reply
// and decodes it strictly. Any shape violation is an error; the caller fails
// open on it.
func parseVerdict(raw string) (*moderation.Verdict, error) {
	payload, err := extractJSON(raw)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal([]byte(payload), &env); err != nil {
		return nil, fmt.Errorf("failed to decode verdict envelope: %w", err)
	}
	if env.Allowed == nil {
		return nil, errors.New("verdict envelope missing required field \"allowed\"")
	}

	verdict := &moderation.Verdict{
		Allowed:      *env.Allowed,
		Categories:   env.Categories,
		Reason:       env.Reason,
		DetectedText: env.DetectedText,
		Severity:     parseSeverity(env.Severity, *env.Allowed),
	}
	return verdict, nil
}

func parseSeverity(s string, allowed bool) moderation.Severity {
	switch moderation.Severity(strings.ToLower(s)) {
	case moderation.SeverityNone, moderation.SeverityLow, moderation.SeverityMedium, moderation.SeverityHigh:
		return moderation.Severity(strings.ToLower(s))
	}
	// null/unknown severity defaults: harmless for passes, conservative for blocks
	if allowed {
		return moderation.SeverityNone
	}
	return moderation.SeverityMedium
}

// extractJSON returns the first balanced JSON object in raw, validated with
// fastjson before the strict decode.
func extractJSON(raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	start := strings.Index(trimmed, "{")
	end := strings.LastIndex(trimmed, "}")
	if start < 0 || end <= start {
		return "", errNoVerdict
	}
	candidate := trimmed[start : end+1]

	if err := fastjson.Validate(candidate); err != nil {
		return "", fmt.Errorf("classifier response is not valid JSON: %w", err)
	}
	return candidate, nil
}
