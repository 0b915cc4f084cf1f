package request

import (
	"fmt"
	"strings"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

var validSurfaces = map[string]struct{}{
	moderation.SurfaceChat:    {},
	moderation.SurfacePost:    {},
	moderation.SurfaceComment: {},
}

type EvaluateRequest struct {
	UserID       string `json:"user_id" binding:"required"`
	TargetUserID string `json:"target_user_id,omitempty"`
	Surface      string `json:"surface" binding:"required"`
	Text         string `json:"text" binding:"required"`
	// ConversationID selects the cached conversation window for chat-surface
	// classification; Context, when supplied, overrides it.
	ConversationID string   `json:"conversation_id,omitempty"`
	Context        []string `json:"context,omitempty"`
}

func (r *EvaluateRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	if strings.TrimSpace(r.Text) == "" {
		return fmt.Errorf("text is required")
	}
	if _, ok := validSurfaces[r.Surface]; !ok {
		return fmt.Errorf("surface must be one of: chat, post, comment")
	}
	return nil
}
