package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/safenest/trustpipe/pkg/app/trust"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/infra/providers"
)

func TestEvaluateImage_CleanImageAllowed(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.MatchedBy(func(input providers.Input) bool {
		return input.HasImage()
	})).Return(&providers.Response{
		Response: `{"allowed": true, "categories": [], "severity": "none", "reason": ""}`,
	}, nil).Once()
	f.ledger.On("RecordAllowed", mock.Anything, mock.Anything).Return(nil)

	result, err := f.evaluator.EvaluateImage(context.Background(), ImageInput{
		UserID:    "user-1",
		Surface:   moderation.SurfaceSticker,
		ImageData: []byte{0x89, 0x50, 0x4e, 0x47},
		ImageMIME: "image/png",
		CheckText: true,
	})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
	// No detected text, so the classifier runs exactly once.
	f.provider.AssertExpectations(t)
}

func TestEvaluateImage_OCRTextRerunBlocks(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	// Visually innocuous sticker whose embedded text is profanity: the
	// pattern filter catches the OCR text without a second classifier call.
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.MatchedBy(func(input providers.Input) bool {
		return input.HasImage()
	})).Return(&providers.Response{
		Response: `{"allowed": true, "categories": [], "severity": "none", "reason": "", "detected_text": "puta"}`,
	}, nil).Once()
	f.ledger.On("RecordStrike", mock.Anything, mock.MatchedBy(func(e *moderation.ModerationEvent) bool {
		return !e.Allowed && e.Surface == moderation.SurfaceSticker && e.Snippet == "puta"
	})).Return(&trust.StrikeResult{Strikes: 1}, nil)

	result, err := f.evaluator.EvaluateImage(context.Background(), ImageInput{
		UserID:    "user-1",
		Surface:   moderation.SurfaceSticker,
		ImageData: []byte{0x89, 0x50},
		ImageMIME: "image/png",
		CheckText: true,
	})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.Equal(t, []string{moderation.CategoryProfanity}, result.Categories)
	assert.Equal(t, "puta", result.DetectedText)
	f.provider.AssertExpectations(t)
	f.ledger.AssertExpectations(t)
}

func TestEvaluateImage_TextRerunSkippedWhenDisabled(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.Anything).Return(&providers.Response{
		Response: `{"allowed": true, "categories": [], "severity": "none", "reason": "", "detected_text": "puta"}`,
	}, nil).Once()
	f.ledger.On("RecordAllowed", mock.Anything, mock.Anything).Return(nil)

	result, err := f.evaluator.EvaluateImage(context.Background(), ImageInput{
		UserID:    "user-1",
		Surface:   moderation.SurfaceProfile,
		ImageURL:  "https://cdn.example.com/avatar.png",
		CheckText: false,
	})

	require.NoError(t, err)
	assert.True(t, result.Allowed)
}

func TestEvaluateImage_VisualBlockMergesWithOCR(t *testing.T) {
	f := setupEvaluator(t)

	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(nil, nil)
	f.provider.On("Classify", mock.Anything, mock.Anything, mock.MatchedBy(func(input providers.Input) bool {
		return input.HasImage()
	})).Return(&providers.Response{
		Response: `{"allowed": false, "categories": ["sexual"], "severity": "high", "reason": "explicit imagery", "detected_text": "mi insta es pepito2012"}`,
	}, nil).Once()
	f.ledger.On("RecordStrike", mock.Anything, mock.Anything).
		Return(&trust.StrikeResult{Strikes: 2}, nil)

	result, err := f.evaluator.EvaluateImage(context.Background(), ImageInput{
		UserID:    "user-1",
		Surface:   moderation.SurfaceImage,
		ImageData: []byte{0xff, 0xd8},
		ImageMIME: "image/jpeg",
		CheckText: true,
	})

	require.NoError(t, err)
	assert.False(t, result.Allowed)
	assert.ElementsMatch(t, []string{moderation.CategorySexual, moderation.CategoryPersonalData}, result.Categories)
	assert.Equal(t, moderation.SeverityHigh, result.Severity)
}

func TestEvaluateImage_SuspendedShortCircuit(t *testing.T) {
	f := setupEvaluator(t)

	until := time.Now().UTC().Add(time.Hour)
	f.gate.On("IsSuspended", mock.Anything, "user-1").Return(&until, nil)

	result, err := f.evaluator.EvaluateImage(context.Background(), ImageInput{
		UserID:  "user-1",
		Surface: moderation.SurfaceProfile,
	})

	require.NoError(t, err)
	assert.True(t, result.Suspended)
	f.provider.AssertNotCalled(t, "Classify", mock.Anything, mock.Anything, mock.Anything)
}
