package moderation

import (
	"time"

	"github.com/google/uuid"
)

// Surfaces a piece of content can arrive from.
const (
	SurfaceChat     = "chat"
	SurfacePost     = "post"
	SurfaceComment  = "comment"
	SurfaceProfile  = "image_profile"
	SurfaceSticker  = "image_sticker"
	SurfaceImage    = "image_post"
	SurfaceImageOCR = "image_ocr"
)

// ModerationEvent is the immutable audit record appended once per pipeline
// evaluation, allow or block. The strike ledger and the behavioral detector
// both derive their counts from this log; it is never mutated afterwards.
type ModerationEvent struct {
	ID           uuid.UUID `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	UserID       string    `json:"user_id" gorm:"column:user_id;index:idx_moderation_events_user_window,priority:1"`
	TargetUserID string    `json:"target_user_id,omitempty" gorm:"column:target_user_id;index"`
	Surface      string    `json:"surface" gorm:"column:surface"`
	Snippet      string    `json:"snippet" gorm:"column:snippet;size:120"`
	Allowed      bool      `json:"allowed" gorm:"column:allowed;index:idx_moderation_events_user_window,priority:2"`
	Categories   []string  `json:"categories" gorm:"column:categories;serializer:json"`
	Severity     Severity  `json:"severity" gorm:"column:severity"`
	Reason       string    `json:"reason" gorm:"column:reason"`
	Fallback     bool      `json:"fallback" gorm:"column:fallback"`
	CreatedAt    time.Time `json:"created_at" gorm:"column:created_at;index:idx_moderation_events_user_window,priority:3"`
}

func (ModerationEvent) TableName() string {
	return "moderation_events"
}

// NewEvent builds the audit record for a verdict, truncating the content
// snippet so raw messages are never stored whole.
func NewEvent(userID, targetUserID, surface, content string, v *Verdict, snippetLimit int) *ModerationEvent {
	return &ModerationEvent{
		ID:           uuid.New(),
		UserID:       userID,
		TargetUserID: targetUserID,
		Surface:      surface,
		Snippet:      Truncate(content, snippetLimit),
		Allowed:      v.Allowed,
		Categories:   v.Categories,
		Severity:     v.Severity,
		Reason:       v.Reason,
		Fallback:     v.Fallback,
		CreatedAt:    time.Now().UTC(),
	}
}

// Truncate cuts s at limit runes without splitting a multi-byte character.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
