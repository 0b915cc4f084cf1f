package moderation

import (
	"context"
	"time"

	"gorm.io/gorm"
)

// ListFilter narrows admin queries over the audit log.
type ListFilter struct {
	UserID   string
	Category string
	Severity Severity
	Allowed  *bool
	From     time.Time
	To       time.Time
	Limit    int
	Offset   int
}

//go:generate mockery --name=EventRepository --dir=. --output=./mocks --filename=event_repository_mock.go --case=underscore --with-expecter

type EventRepository interface {
	Append(ctx context.Context, event *ModerationEvent) error
	// AppendTx appends within an existing transaction so the strike ledger can
	// bind "insert event + recount + flip state" to one boundary.
	AppendTx(tx *gorm.DB, event *ModerationEvent) error
	// CountBlockedSince counts blocked events for a user created after since.
	CountBlockedSince(ctx context.Context, userID string, since time.Time) (int64, error)
	CountBlockedSinceTx(tx *gorm.DB, userID string, since time.Time) (int64, error)
	// CountBlockedByCategories counts blocked events for a sender whose
	// categories intersect the given set, optionally correlated to a target.
	CountBlockedByCategories(ctx context.Context, userID, targetUserID string, categories []string, since time.Time) (int64, error)
	List(ctx context.Context, filter ListFilter) ([]*ModerationEvent, error)
}
