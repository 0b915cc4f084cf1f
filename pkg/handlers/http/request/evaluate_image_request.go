package request

import (
	"fmt"
	"strings"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

var validImageSurfaces = map[string]struct{}{
	moderation.SurfaceProfile: {},
	moderation.SurfaceSticker: {},
	moderation.SurfaceImage:   {},
}

type EvaluateImageRequest struct {
	UserID      string `json:"user_id" binding:"required"`
	Surface     string `json:"surface" binding:"required"`
	ImageURL    string `json:"image_url,omitempty"`
	ImageBase64 string `json:"image_base64,omitempty"`
	ImageMIME   string `json:"image_mime,omitempty"`
	// CheckText re-runs any text the classifier reads off the image through
	// the text layers. Defaults to on.
	CheckText *bool `json:"check_text,omitempty"`
}

func (r *EvaluateImageRequest) Validate() error {
	if strings.TrimSpace(r.UserID) == "" {
		return fmt.Errorf("user_id is required")
	}
	if _, ok := validImageSurfaces[r.Surface]; !ok {
		return fmt.Errorf("surface must be one of: image_profile, image_sticker, image_post")
	}
	if r.ImageURL == "" && r.ImageBase64 == "" {
		return fmt.Errorf("image_url or image_base64 is required")
	}
	if r.ImageBase64 != "" && r.ImageMIME == "" {
		return fmt.Errorf("image_mime is required when sending image bytes")
	}
	return nil
}

func (r *EvaluateImageRequest) ShouldCheckText() bool {
	return r.CheckText == nil || *r.CheckText
}
