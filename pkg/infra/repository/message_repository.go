package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/safenest/trustpipe/pkg/domain/message"
)

type MessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) message.Repository {
	return &MessageRepository{
		db: db,
	}
}

func (r *MessageRepository) Save(ctx context.Context, m *message.Message) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MessageRepository) Get(ctx context.Context, id uuid.UUID) (*message.Message, error) {
	var m message.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MessageRepository) MarkBlocked(ctx context.Context, id uuid.UUID, reason string) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&message.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                message.StatusBlocked,
			"is_blocked":            true,
			"moderation_reason":     reason,
			"moderation_checked_at": &now,
		}).Error
}

func (r *MessageRepository) StampChecked(ctx context.Context, id uuid.UUID) error {
	now := time.Now().UTC()
	return r.db.WithContext(ctx).Model(&message.Message{}).
		Where("id = ?", id).
		Update("moderation_checked_at", &now).Error
}
