package trust

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/safenest/trustpipe/pkg/config"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/domain/notification"
	domain "github.com/safenest/trustpipe/pkg/domain/trust"
	"github.com/safenest/trustpipe/pkg/infra/cache"
	"github.com/safenest/trustpipe/pkg/infra/metrics"
)

// StrikeResult reports the ledger state after recording a blocked event.
type StrikeResult struct {
	Strikes        int
	Suspended      bool
	SuspendedUntil *time.Time
}

//go:generate mockery --name=Ledger --dir=. --output=./mocks --filename=ledger_mock.go --case=underscore --with-expecter

// Ledger is the strike counter and trust state machine. The strike count is
// always a windowed recount of the audit log; the suspension decision and the
// event insert share one transaction so concurrent evaluations cannot both
// read a pre-insert count and under-trigger.
type Ledger interface {
	RecordStrike(ctx context.Context, event *moderation.ModerationEvent) (*StrikeResult, error)
	RecordAllowed(ctx context.Context, event *moderation.ModerationEvent) error
	Suspend(ctx context.Context, userID string) (*domain.TrustProfile, error)
	LiftSuspension(ctx context.Context, userID string) error
}

type ledger struct {
	trustRepo    domain.Repository
	events       moderation.EventRepository
	notifications notification.Repository
	cache        *cache.Cache
	cfg          config.ModerationConfig
	logger       *logrus.Logger
}

func NewLedger(
	logger *logrus.Logger,
	trustRepo domain.Repository,
	events moderation.EventRepository,
	notifications notification.Repository,
	c *cache.Cache,
	cfg config.ModerationConfig,
) Ledger {
	return &ledger{
		trustRepo:     trustRepo,
		events:        events,
		notifications: notifications,
		cache:         c,
		cfg:           cfg,
		logger:        logger,
	}
}

// RecordAllowed appends a passing event to the audit log. No ledger state
// changes on a pass.
func (l *ledger) RecordAllowed(ctx context.Context, event *moderation.ModerationEvent) error {
	if err := l.events.Append(ctx, event); err != nil {
		return fmt.Errorf("failed to append moderation event: %w", err)
	}
	return nil
}

// RecordStrike appends the blocked event, recounts the trailing window
// (including the event just written) and conditionally flips the profile to
// suspended, all inside one transaction. The guarded notification insert
// rides the same transaction so one escalation yields exactly one row even
// across retries.
func (l *ledger) RecordStrike(ctx context.Context, event *moderation.ModerationEvent) (*StrikeResult, error) {
	now := time.Now().UTC()
	result := &StrikeResult{}

	err := l.trustRepo.Transaction(ctx, func(tx *gorm.DB) error {
		if err := l.events.AppendTx(tx, event); err != nil {
			return fmt.Errorf("failed to append moderation event: %w", err)
		}

		profile, err := l.trustRepo.GetTx(tx, event.UserID)
		if err != nil {
			return fmt.Errorf("failed to load trust profile: %w", err)
		}

		windowStart := profile.StrikeWindowStart(now, l.cfg.StrikeWindow)
		count, err := l.events.CountBlockedSinceTx(tx, event.UserID, windowStart)
		if err != nil {
			return fmt.Errorf("failed to count strikes: %w", err)
		}
		result.Strikes = int(count)

		profile.InfractionsCount++

		if count >= int64(l.cfg.StrikeThreshold) && !profile.Suspended(now) {
			until := now.Add(l.cfg.SuspensionDuration)
			profile.SuspendedUntil = &until
			result.Suspended = true
			result.SuspendedUntil = &until

			if err := l.enqueueSuspensionNotice(tx, profile, event, int(count), until); err != nil {
				return err
			}
		}

		if err := l.trustRepo.UpdateTx(tx, profile); err != nil {
			return fmt.Errorf("failed to update trust profile: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if result.Suspended {
		metrics.SuspensionsTotal.Inc()
		l.logger.WithFields(logrus.Fields{
			"user_id":         event.UserID,
			"strikes":         result.Strikes,
			"suspended_until": result.SuspendedUntil,
		}).Info("user suspended after reaching strike threshold")

		if err := l.cache.SetSuspension(ctx, event.UserID, *result.SuspendedUntil); err != nil {
			l.logger.WithError(err).WithField("user_id", event.UserID).
				Warn("failed to prime suspension gate cache")
		}
	}

	return result, nil
}

func (l *ledger) enqueueSuspensionNotice(
	tx *gorm.DB,
	profile *domain.TrustProfile,
	event *moderation.ModerationEvent,
	strikes int,
	until time.Time,
) error {
	notice := notification.New(
		notification.TypeSuspension,
		notification.SuspensionEventKey(profile.UserID, until),
		profile.TutorEmail,
		profile.UserID,
		notification.Payload{
			Nick:           profile.Nick,
			StrikeCount:    strikes,
			SuspendedUntil: &until,
			Reason:         event.Reason,
		},
	)
	if err := l.notifications.CreateTx(tx, notice); err != nil {
		if errors.Is(err, notification.ErrDuplicateEvent) {
			return nil
		}
		return fmt.Errorf("failed to enqueue suspension notification: %w", err)
	}
	return nil
}

// Suspend is the administrative path: immediate suspension for the
// configured duration, no strike accounting.
func (l *ledger) Suspend(ctx context.Context, userID string) (*domain.TrustProfile, error) {
	profile, err := l.trustRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load trust profile: %w", err)
	}

	until := time.Now().UTC().Add(l.cfg.SuspensionDuration)
	profile.SuspendedUntil = &until
	if err := l.trustRepo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to suspend user: %w", err)
	}
	metrics.SuspensionsTotal.Inc()

	if err := l.cache.SetSuspension(ctx, userID, until); err != nil {
		l.logger.WithError(err).WithField("user_id", userID).Warn("failed to prime suspension gate cache")
	}
	return profile, nil
}

// LiftSuspension clears the suspension and resets the strike window anchor
// so stale history cannot immediately re-trip the threshold. Lifting an
// already-active user is a no-op that still resets the anchor.
func (l *ledger) LiftSuspension(ctx context.Context, userID string) error {
	profile, err := l.trustRepo.GetOrCreate(ctx, userID)
	if err != nil {
		return fmt.Errorf("failed to load trust profile: %w", err)
	}

	now := time.Now().UTC()
	profile.SuspendedUntil = nil
	profile.InfractionsCount = 0
	profile.StrikesResetAt = &now

	if err := l.trustRepo.Update(ctx, profile); err != nil {
		return fmt.Errorf("failed to lift suspension: %w", err)
	}

	if err := l.cache.ClearSuspension(ctx, userID); err != nil {
		l.logger.WithError(err).WithField("user_id", userID).Warn("failed to clear suspension gate cache")
	}

	l.logger.WithField("user_id", userID).Info("suspension lifted, strike window reset")
	return nil
}
