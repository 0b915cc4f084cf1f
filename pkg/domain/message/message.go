package message

import (
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusSent    Status = "sent"
	StatusBlocked Status = "blocked"
)

// Message is the chat row the async coordinator writes first and verifies
// later. The pipeline only ever patches the moderation-outcome columns; the
// original sent_at and ordering position are never touched.
type Message struct {
	ID                  uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	ConversationID      string     `json:"conversation_id" gorm:"column:conversation_id;index"`
	SenderID            string     `json:"sender_id" gorm:"column:sender_id;index"`
	RecipientID         string     `json:"recipient_id" gorm:"column:recipient_id"`
	Text                string     `json:"text" gorm:"column:text"`
	Status              Status     `json:"status" gorm:"column:status"`
	IsBlocked           bool       `json:"is_blocked" gorm:"column:is_blocked"`
	ModerationReason    string     `json:"moderation_reason,omitempty" gorm:"column:moderation_reason"`
	ModerationCheckedAt *time.Time `json:"moderation_checked_at,omitempty" gorm:"column:moderation_checked_at"`
	SentAt              time.Time  `json:"sent_at" gorm:"column:sent_at"`
}

func (Message) TableName() string {
	return "messages"
}

func New(conversationID, senderID, recipientID, text string) *Message {
	return &Message{
		ID:             uuid.New(),
		ConversationID: conversationID,
		SenderID:       senderID,
		RecipientID:    recipientID,
		Text:           text,
		Status:         StatusSent,
		SentAt:         time.Now().UTC(),
	}
}
