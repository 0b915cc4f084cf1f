package notification

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeWarning         Type = "warning"
	TypeStrikeLimit     Type = "strike_limit"
	TypeSuspension      Type = "suspension"
	TypeApprovalRequest Type = "approval_request"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusSent      Status = "sent"
	StatusFailed    Status = "failed"
	StatusDismissed Status = "dismissed"
)

// Payload is the structured snapshot delivered to the guardian verbatim.
type Payload struct {
	Nick           string     `json:"nick"`
	StrikeCount    int        `json:"strike_count"`
	SuspendedUntil *time.Time `json:"suspended_until,omitempty"`
	Reason         string     `json:"reason"`
}

// TutorNotification is the durable guardian-facing alert record. Creation is
// append-only and guarded by EventKey so one escalation yields exactly one
// row; status transitions are the only mutation.
type TutorNotification struct {
	ID         uuid.UUID  `json:"id" gorm:"column:id;type:uuid;primaryKey"`
	EventKey   string     `json:"event_key" gorm:"column:event_key;uniqueIndex"`
	TutorEmail string     `json:"tutor_email" gorm:"column:tutor_email"`
	UserID     string     `json:"user_id" gorm:"column:user_id;index"`
	Type       Type       `json:"type" gorm:"column:type"`
	Status     Status     `json:"status" gorm:"column:status;index"`
	Payload    Payload    `json:"payload" gorm:"column:payload;serializer:json"`
	CreatedAt  time.Time  `json:"created_at" gorm:"column:created_at"`
	SentAt     *time.Time `json:"sent_at,omitempty" gorm:"column:sent_at"`
	Error      string     `json:"error,omitempty" gorm:"column:error"`
}

func (TutorNotification) TableName() string {
	return "tutor_notifications"
}

// SuspensionEventKey identifies one escalation event: retried transactions
// for the same suspension compute the same key and cannot double-insert.
func SuspensionEventKey(userID string, suspendedUntil time.Time) string {
	return fmt.Sprintf("suspension:%s:%d", userID, suspendedUntil.Unix())
}

func New(typ Type, eventKey, tutorEmail, userID string, payload Payload) *TutorNotification {
	return &TutorNotification{
		ID:         uuid.New(),
		EventKey:   eventKey,
		TutorEmail: tutorEmail,
		UserID:     userID,
		Type:       typ,
		Status:     StatusQueued,
		Payload:    payload,
		CreatedAt:  time.Now().UTC(),
	}
}
