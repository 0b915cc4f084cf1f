package trust

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	domain "github.com/safenest/trustpipe/pkg/domain/trust"
	"github.com/safenest/trustpipe/pkg/infra/cache"
)

//go:generate mockery --name=Gate --dir=. --output=./mocks --filename=gate_mock.go --case=underscore --with-expecter

// Gate answers the one question every surface asks before accepting a write:
// is this user currently suspended.
type Gate interface {
	IsSuspended(ctx context.Context, userID string) (*time.Time, error)
}

type gate struct {
	repo   domain.Repository
	cache  *cache.Cache
	logger *logrus.Logger
}

func NewGate(logger *logrus.Logger, repo domain.Repository, c *cache.Cache) Gate {
	return &gate{repo: repo, cache: c, logger: logger}
}

// IsSuspended returns the suspension expiry when the user is suspended, nil
// otherwise. The redis gate entry is authoritative-equivalent because its TTL
// is bounded by the suspension itself; a cache miss falls through to the
// profile row.
func (g *gate) IsSuspended(ctx context.Context, userID string) (*time.Time, error) {
	if until, err := g.cache.GetSuspension(ctx, userID); err != nil {
		g.logger.WithError(err).WithField("user_id", userID).Warn("suspension gate cache read failed")
	} else if until != nil && until.After(time.Now()) {
		return until, nil
	}

	profile, err := g.repo.Get(ctx, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// Profiles are created on the first strike; a user without a row has
		// never been struck and is active.
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trust profile: %w", err)
	}
	if profile == nil || !profile.Suspended(time.Now()) {
		return nil, nil
	}

	if err := g.cache.SetSuspension(ctx, userID, *profile.SuspendedUntil); err != nil {
		g.logger.WithError(err).WithField("user_id", userID).Warn("failed to prime suspension gate cache")
	}
	return profile.SuspendedUntil, nil
}

// RemainingText renders the countdown shown to a suspended user.
func RemainingText(until time.Time) string {
	remaining := time.Until(until).Round(time.Minute)
	if remaining < time.Minute {
		remaining = time.Minute
	}
	hours := int(remaining.Hours())
	minutes := int(remaining.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("account suspended, %dh%02dm remaining", hours, minutes)
	}
	return fmt.Sprintf("account suspended, %dm remaining", minutes)
}
