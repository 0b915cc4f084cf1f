package detector

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

// patternCategories are the audit-log categories that count toward a
// slow-burn abuse pattern.
var patternCategories = []string{moderation.CategoryProfanity, moderation.CategoryBullying}

// Detector catches repeated targeted abuse that no single-message classifier
// can see: a sender whose recent history holds enough blocked
// profanity/bullying events gets blocked even when the immediate message is
// individually clean. It is the one component that looks backward in time.
type Detector struct {
	events   moderation.EventRepository
	lookback time.Duration
	threshold int
	logger   *logrus.Logger
}

func NewDetector(logger *logrus.Logger, events moderation.EventRepository, cfg config.ModerationConfig) *Detector {
	return &Detector{
		events:    events,
		lookback:  cfg.PatternLookback,
		threshold: cfg.PatternThreshold,
		logger:    logger,
	}
}

// DetectPattern reports whether the sender's recent blocked history against
// this target has reached the pattern threshold. The count is always derived
// from the audit log, never a separate counter. A repository failure counts
// as no pattern: the layers that already passed stay authoritative.
func (d *Detector) DetectPattern(ctx context.Context, senderID, targetID string) bool {
	since := time.Now().UTC().Add(-d.lookback)
	count, err := d.events.CountBlockedByCategories(ctx, senderID, targetID, patternCategories, since)
	if err != nil {
		d.logger.WithError(err).WithField("sender_id", senderID).
			Error("failed to read blocked history for pattern detection")
		return false
	}
	return count >= int64(d.threshold)
}

// Verdict is the forced block produced when a pattern is detected.
func (d *Detector) Verdict() *moderation.Verdict {
	return moderation.Block(
		moderation.CategoryBullying,
		moderation.SeverityHigh,
		"repeated abusive behavior toward the same user",
	)
}
