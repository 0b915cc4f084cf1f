package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

type ModerationEventRepository struct {
	db *gorm.DB
}

func NewModerationEventRepository(db *gorm.DB) moderation.EventRepository {
	return &ModerationEventRepository{
		db: db,
	}
}

func (r *ModerationEventRepository) Append(ctx context.Context, event *moderation.ModerationEvent) error {
	return r.db.WithContext(ctx).Create(event).Error
}

func (r *ModerationEventRepository) AppendTx(tx *gorm.DB, event *moderation.ModerationEvent) error {
	return tx.Create(event).Error
}

func (r *ModerationEventRepository) CountBlockedSince(ctx context.Context, userID string, since time.Time) (int64, error) {
	return r.countBlockedSince(r.db.WithContext(ctx), userID, since)
}

func (r *ModerationEventRepository) CountBlockedSinceTx(tx *gorm.DB, userID string, since time.Time) (int64, error) {
	return r.countBlockedSince(tx, userID, since)
}

func (r *ModerationEventRepository) countBlockedSince(db *gorm.DB, userID string, since time.Time) (int64, error) {
	var count int64
	err := db.Model(&moderation.ModerationEvent{}).
		Where("user_id = ? AND allowed = ? AND created_at >= ?", userID, false, since).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ModerationEventRepository) CountBlockedByCategories(
	ctx context.Context,
	userID, targetUserID string,
	categories []string,
	since time.Time,
) (int64, error) {
	query := r.db.WithContext(ctx).Model(&moderation.ModerationEvent{}).
		Where("user_id = ? AND allowed = ? AND created_at >= ?", userID, false, since)
	if targetUserID != "" {
		query = query.Where("target_user_id = ?", targetUserID)
	}
	if len(categories) > 0 {
		// categories is a JSON array column; match rows containing any of the
		// requested categories.
		sub := r.db.Session(&gorm.Session{NewDB: true}).
			Where("categories LIKE ?", `%"`+categories[0]+`"%`)
		for _, c := range categories[1:] {
			sub = sub.Or("categories LIKE ?", `%"`+c+`"%`)
		}
		query = query.Where(sub)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *ModerationEventRepository) List(ctx context.Context, filter moderation.ListFilter) ([]*moderation.ModerationEvent, error) {
	query := r.db.WithContext(ctx).Model(&moderation.ModerationEvent{})
	if filter.UserID != "" {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.Category != "" {
		query = query.Where("categories LIKE ?", `%"`+filter.Category+`"%`)
	}
	if filter.Severity != "" {
		query = query.Where("severity = ?", filter.Severity)
	}
	if filter.Allowed != nil {
		query = query.Where("allowed = ?", *filter.Allowed)
	}
	if !filter.From.IsZero() {
		query = query.Where("created_at >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("created_at < ?", filter.To)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 200 {
		limit = 50
	}

	var events []*moderation.ModerationEvent
	err := query.Order("created_at DESC").
		Limit(limit).
		Offset(filter.Offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}
