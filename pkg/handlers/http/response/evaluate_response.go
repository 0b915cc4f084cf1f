package response

import (
	"time"

	"github.com/safenest/trustpipe/pkg/app/pipeline"
)

type EvaluateResponse struct {
	Allowed        bool       `json:"allowed"`
	Reason         string     `json:"reason,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	Severity       string     `json:"severity,omitempty"`
	Strikes        int        `json:"strikes,omitempty"`
	Suspended      bool       `json:"suspended,omitempty"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
	DetectedText   string     `json:"detected_text,omitempty"`
}

func FromResult(r *pipeline.Result) EvaluateResponse {
	return EvaluateResponse{
		Allowed:        r.Allowed,
		Reason:         r.Reason,
		Categories:     r.Categories,
		Severity:       string(r.Severity),
		Strikes:        r.Strikes,
		Suspended:      r.Suspended,
		SuspendedUntil: r.SuspendedUntil,
		DetectedText:   r.DetectedText,
	}
}
