package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/safenest/trustpipe/pkg/domain/notification"
)

const uniqueViolationCode = "23505"

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) notification.Repository {
	return &NotificationRepository{
		db: db,
	}
}

func (r *NotificationRepository) Create(ctx context.Context, n *notification.TutorNotification) error {
	return translateDuplicate(r.db.WithContext(ctx).Create(n).Error)
}

func (r *NotificationRepository) CreateTx(tx *gorm.DB, n *notification.TutorNotification) error {
	return translateDuplicate(tx.Create(n).Error)
}

// translateDuplicate maps the unique event_key violation to the domain
// sentinel so callers can treat a replayed escalation as a no-op.
func translateDuplicate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return notification.ErrDuplicateEvent
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return notification.ErrDuplicateEvent
	}
	return err
}

func (r *NotificationRepository) Get(ctx context.Context, id uuid.UUID) (*notification.TutorNotification, error) {
	var n notification.TutorNotification
	if err := r.db.WithContext(ctx).First(&n, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) GetByEventKey(ctx context.Context, eventKey string) (*notification.TutorNotification, error) {
	var n notification.TutorNotification
	if err := r.db.WithContext(ctx).First(&n, "event_key = ?", eventKey).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *NotificationRepository) ListDeliverable(ctx context.Context, limit int) ([]*notification.TutorNotification, error) {
	var pending []*notification.TutorNotification
	err := r.db.WithContext(ctx).
		Where("status IN ?", []notification.Status{notification.StatusQueued, notification.StatusFailed}).
		Order("created_at ASC").
		Limit(limit).
		Find(&pending).Error
	if err != nil {
		return nil, err
	}
	return pending, nil
}

func (r *NotificationRepository) List(
	ctx context.Context,
	userID string,
	status notification.Status,
	limit, offset int,
) ([]*notification.TutorNotification, error) {
	query := r.db.WithContext(ctx).Model(&notification.TutorNotification{})
	if userID != "" {
		query = query.Where("user_id = ?", userID)
	}
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var items []*notification.TutorNotification
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *NotificationRepository) MarkSent(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&notification.TutorNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":  notification.StatusSent,
			"sent_at": &now,
			"error":   "",
		}).Error
}

func (r *NotificationRepository) MarkFailed(ctx context.Context, id uuid.UUID, deliveryErr string) error {
	return r.db.WithContext(ctx).Model(&notification.TutorNotification{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status": notification.StatusFailed,
			"error":  deliveryErr,
		}).Error
}

func (r *NotificationRepository) Dismiss(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Model(&notification.TutorNotification{}).
		Where("id = ?", id).
		Update("status", notification.StatusDismissed).Error
}
