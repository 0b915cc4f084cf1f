package notification

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/safenest/trustpipe/pkg/domain/notification"
)

//go:generate mockery --name=Queue --dir=. --output=./mocks --filename=queue_mock.go --case=underscore --with-expecter

// Queue exposes the guardian-facing view of the notification ledger.
type Queue interface {
	List(ctx context.Context, userID string, status notification.Status, limit, offset int) ([]*notification.TutorNotification, error)
	Dismiss(ctx context.Context, id uuid.UUID) error
}

type queue struct {
	repo notification.Repository
}

func NewQueue(repo notification.Repository) Queue {
	return &queue{repo: repo}
}

func (q *queue) List(ctx context.Context, userID string, status notification.Status, limit, offset int) ([]*notification.TutorNotification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return q.repo.List(ctx, userID, status, limit, offset)
}

// Dismiss is terminal. A dismissed notification is never retried by the
// dispatcher, even if delivery had previously failed.
func (q *queue) Dismiss(ctx context.Context, id uuid.UUID) error {
	if _, err := q.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("notification not found: %w", err)
	}
	return q.repo.Dismiss(ctx, id)
}
