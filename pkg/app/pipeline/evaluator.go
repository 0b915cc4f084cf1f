package pipeline

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/trust"
	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/infra/audit"
	"github.com/safenest/trustpipe/pkg/infra/cache"
	"github.com/safenest/trustpipe/pkg/infra/metrics"
	"github.com/safenest/trustpipe/pkg/moderation/classifier"
	"github.com/safenest/trustpipe/pkg/moderation/detector"
	"github.com/safenest/trustpipe/pkg/moderation/patternfilter"
)

// Result is the moderation outcome returned to the calling surface.
type Result struct {
	Allowed        bool                `json:"allowed"`
	Suspended      bool                `json:"suspended"`
	SuspendedUntil *time.Time          `json:"suspended_until,omitempty"`
	Reason         string              `json:"reason,omitempty"`
	Categories     []string            `json:"categories,omitempty"`
	Severity       moderation.Severity `json:"severity,omitempty"`
	Strikes        int                 `json:"strikes,omitempty"`
	DetectedText   string              `json:"detected_text,omitempty"`
}

// EvaluateInput is one text evaluation request.
type EvaluateInput struct {
	UserID         string
	TargetUserID   string
	Surface        string
	Text           string
	ConversationID string
	// Context, when set, overrides the cached conversation window.
	Context []string
}

//go:generate mockery --name=Evaluator --dir=. --output=./mocks --filename=evaluator_mock.go --case=underscore --with-expecter

type Evaluator interface {
	Evaluate(ctx context.Context, input EvaluateInput) (*Result, error)
	EvaluateImage(ctx context.Context, input ImageInput) (*Result, error)
}

type evaluator struct {
	gate       trust.Gate
	filter     *patternfilter.Filter
	classifier *classifier.Classifier
	detector   *detector.Detector
	ledger     trust.Ledger
	cache      *cache.Cache
	exporter   audit.Exporter
	cfg        config.ModerationConfig
	logger     *logrus.Logger
}

func NewEvaluator(
	logger *logrus.Logger,
	gate trust.Gate,
	filter *patternfilter.Filter,
	cls *classifier.Classifier,
	det *detector.Detector,
	ledger trust.Ledger,
	c *cache.Cache,
	exporter audit.Exporter,
	cfg config.ModerationConfig,
) Evaluator {
	return &evaluator{
		gate:       gate,
		filter:     filter,
		classifier: cls,
		detector:   det,
		ledger:     ledger,
		cache:      c,
		exporter:   exporter,
		cfg:        cfg,
		logger:     logger,
	}
}

// Evaluate runs the layered decision for a piece of text. Suspended users
// short-circuit before any layer runs and before any event is written, so a
// suspended user hammering the write path cannot inflate their own ledger.
func (e *evaluator) Evaluate(ctx context.Context, input EvaluateInput) (*Result, error) {
	if result, err := e.suspensionGate(ctx, input.UserID); result != nil || err != nil {
		return result, err
	}

	contextWindow := input.Context
	if len(contextWindow) == 0 && input.Surface == moderation.SurfaceChat && input.ConversationID != "" {
		window, err := e.cache.GetContextWindow(ctx, input.ConversationID, e.cfg.ContextWindowSize)
		if err != nil {
			e.logger.WithError(err).WithField("conversation_id", input.ConversationID).
				Warn("failed to load conversation context, classifying without it")
		} else {
			contextWindow = window
		}
	}

	verdict, layer := e.runTextLayers(ctx, input.Text, input.Surface, contextWindow)

	if verdict.Allowed && input.Surface == moderation.SurfaceChat && input.TargetUserID != "" {
		if e.detector.DetectPattern(ctx, input.UserID, input.TargetUserID) {
			verdict = e.detector.Verdict()
			layer = "behavioral"
		}
	}

	event := moderation.NewEvent(
		input.UserID, input.TargetUserID, input.Surface, input.Text, verdict, e.cfg.SnippetLimit,
	)
	return e.record(ctx, event, verdict, layer)
}

// runTextLayers is the shared Layer 1 to Layer 2 sequence; the image path
// reuses it for OCR-extracted text.
func (e *evaluator) runTextLayers(
	ctx context.Context,
	text, surface string,
	contextWindow []string,
) (*moderation.Verdict, string) {
	if verdict := e.filter.Check(text); verdict != nil {
		return verdict, "pattern"
	}
	return e.classifier.Classify(ctx, text, surface, contextWindow), "semantic"
}

// record appends the audit event (allow or block), updates the ledger for
// blocks, exports the event, and shapes the caller-facing result. A
// persistence failure here is fatal to the moderation operation.
func (e *evaluator) record(
	ctx context.Context,
	event *moderation.ModerationEvent,
	verdict *moderation.Verdict,
	layer string,
) (*Result, error) {
	result := &Result{
		Allowed:      verdict.Allowed,
		Reason:       verdict.Reason,
		Categories:   verdict.Categories,
		Severity:     verdict.Severity,
		DetectedText: verdict.DetectedText,
	}

	if verdict.Allowed {
		if err := e.ledger.RecordAllowed(ctx, event); err != nil {
			return nil, err
		}
	} else {
		strike, err := e.ledger.RecordStrike(ctx, event)
		if err != nil {
			return nil, err
		}
		result.Strikes = strike.Strikes
		if strike.Suspended {
			result.Suspended = true
			result.SuspendedUntil = strike.SuspendedUntil
		}
		for _, category := range verdict.Categories {
			metrics.BlocksTotal.WithLabelValues(layer, category).Inc()
		}
	}

	e.export(event)

	outcome := "allowed"
	if !verdict.Allowed {
		outcome = "blocked"
	}
	metrics.EvaluationsTotal.WithLabelValues(event.Surface, outcome).Inc()

	return result, nil
}

// suspensionGate returns a non-nil result when the user is currently
// suspended; no event is recorded for the attempt.
func (e *evaluator) suspensionGate(ctx context.Context, userID string) (*Result, error) {
	until, err := e.gate.IsSuspended(ctx, userID)
	if err != nil {
		return nil, err
	}
	if until == nil {
		return nil, nil
	}
	metrics.EvaluationsTotal.WithLabelValues("gate", "suspended").Inc()
	return &Result{
		Allowed:        false,
		Suspended:      true,
		SuspendedUntil: until,
		Reason:         trust.RemainingText(*until),
	}, nil
}

// export hands the event to the audit feed; delivery problems never affect
// the verdict.
func (e *evaluator) export(event *moderation.ModerationEvent) {
	if e.exporter == nil {
		return
	}
	if err := e.exporter.Export(context.Background(), event); err != nil {
		e.logger.WithError(err).WithField("event_id", event.ID).Warn("failed to export moderation event")
	}
}
