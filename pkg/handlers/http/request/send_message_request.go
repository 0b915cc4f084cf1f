package request

import (
	"fmt"
	"strings"
)

type SendMessageRequest struct {
	ConversationID string `json:"conversation_id" binding:"required"`
	SenderID       string `json:"sender_id" binding:"required"`
	RecipientID    string `json:"recipient_id" binding:"required"`
	Text           string `json:"text" binding:"required"`
}

func (r *SendMessageRequest) Validate() error {
	if strings.TrimSpace(r.ConversationID) == "" {
		return fmt.Errorf("conversation_id is required")
	}
	if strings.TrimSpace(r.SenderID) == "" {
		return fmt.Errorf("sender_id is required")
	}
	if strings.TrimSpace(r.RecipientID) == "" {
		return fmt.Errorf("recipient_id is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	return nil
}
