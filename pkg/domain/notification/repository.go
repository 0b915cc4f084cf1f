package notification

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrDuplicateEvent is returned by Create when a notification for the same
// escalation event already exists.
var ErrDuplicateEvent = errors.New("notification already exists for escalation event")

//go:generate mockery --name=Repository --dir=. --output=./mocks --filename=repository_mock.go --case=underscore --with-expecter

type Repository interface {
	Create(ctx context.Context, n *TutorNotification) error
	CreateTx(tx *gorm.DB, n *TutorNotification) error
	Get(ctx context.Context, id uuid.UUID) (*TutorNotification, error)
	GetByEventKey(ctx context.Context, eventKey string) (*TutorNotification, error)
	// ListDeliverable returns queued rows plus failed rows eligible for retry.
	ListDeliverable(ctx context.Context, limit int) ([]*TutorNotification, error)
	List(ctx context.Context, userID string, status Status, limit, offset int) ([]*TutorNotification, error)
	MarkSent(ctx context.Context, id uuid.UUID) error
	MarkFailed(ctx context.Context, id uuid.UUID, deliveryErr string) error
	Dismiss(ctx context.Context, id uuid.UUID) error
}
