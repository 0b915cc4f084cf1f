package pipeline

import (
	"context"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/moderation/classifier"
)

// ImageInput is one image evaluation request. CheckText controls whether
// OCR-extracted text is re-run through the text layers.
type ImageInput struct {
	UserID    string
	Surface   string
	ImageURL  string
	ImageData []byte
	ImageMIME string
	CheckText bool
}

// EvaluateImage classifies the image visually and, when the classifier reads
// text out of it, re-runs that text through Layers 1-2 as ordinary text. The
// final verdict blocks if either path blocks, with categories unioned and
// the higher severity kept; one audit event records the merged outcome.
func (e *evaluator) EvaluateImage(ctx context.Context, input ImageInput) (*Result, error) {
	if result, err := e.suspensionGate(ctx, input.UserID); result != nil || err != nil {
		return result, err
	}

	ref := classifier.ImageRef{
		URL:   input.ImageURL,
		Bytes: input.ImageData,
		MIME:  input.ImageMIME,
	}
	visual := e.classifier.ClassifyImage(ctx, ref, input.Surface)
	verdict := visual
	layer := "semantic"

	if input.CheckText && visual.DetectedText != "" {
		textVerdict, textLayer := e.runTextLayers(ctx, visual.DetectedText, moderation.SurfaceImageOCR, nil)
		merged := moderation.Merge(visual, textVerdict)
		merged.DetectedText = visual.DetectedText
		if !textVerdict.Allowed {
			layer = textLayer
		}
		verdict = merged
	}

	event := moderation.NewEvent(
		input.UserID, "", input.Surface, verdict.DetectedText, verdict, e.cfg.SnippetLimit,
	)
	return e.record(ctx, event, verdict, layer)
}
