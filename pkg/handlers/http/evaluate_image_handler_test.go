package http

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/safenest/trustpipe/pkg/app/pipeline"
	pipelineMocks "github.com/safenest/trustpipe/pkg/app/pipeline/mocks"
	"github.com/safenest/trustpipe/pkg/domain/moderation"
	"github.com/safenest/trustpipe/pkg/handlers/http/request"
	"github.com/safenest/trustpipe/pkg/handlers/http/response"
)

func setupEvaluateImageApp(evaluator *pipelineMocks.Evaluator) *fiber.App {
	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	handler := NewEvaluateImageHandler(EvaluateImageHandlerDeps{Logger: logger, Evaluator: evaluator})
	app := fiber.New()
	app.Post("/api/v1/moderation/evaluate-image", handler.Handle)
	return app
}

func TestEvaluateImageHandler_DecodesBase64(t *testing.T) {
	evaluator := new(pipelineMocks.Evaluator)
	app := setupEvaluateImageApp(evaluator)

	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}
	evaluator.On("EvaluateImage", mock.Anything, mock.MatchedBy(func(in pipeline.ImageInput) bool {
		return bytes.Equal(in.ImageData, imageBytes) &&
			in.ImageMIME == "image/png" &&
			in.CheckText
	})).Return(&pipeline.Result{
		Allowed:      false,
		Categories:   []string{moderation.CategoryProfanity},
		Severity:     moderation.SeverityMedium,
		DetectedText: "puta",
	}, nil)

	body, err := json.Marshal(request.EvaluateImageRequest{
		UserID:      "user-1",
		Surface:     moderation.SurfaceSticker,
		ImageBase64: base64.StdEncoding.EncodeToString(imageBytes),
		ImageMIME:   "image/png",
	})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/v1/moderation/evaluate-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var out response.EvaluateResponse
	raw, _ := io.ReadAll(resp.Body)
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.False(t, out.Allowed)
	assert.Equal(t, "puta", out.DetectedText)
}

func TestEvaluateImageHandler_InvalidBase64(t *testing.T) {
	evaluator := new(pipelineMocks.Evaluator)
	app := setupEvaluateImageApp(evaluator)

	body, _ := json.Marshal(request.EvaluateImageRequest{
		UserID:      "user-1",
		Surface:     moderation.SurfaceSticker,
		ImageBase64: "!!not-base64!!",
		ImageMIME:   "image/png",
	})
	req := httptest.NewRequest("POST", "/api/v1/moderation/evaluate-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	evaluator.AssertNotCalled(t, "EvaluateImage", mock.Anything, mock.Anything)
}

func TestEvaluateImageHandler_MissingImage(t *testing.T) {
	evaluator := new(pipelineMocks.Evaluator)
	app := setupEvaluateImageApp(evaluator)

	body, _ := json.Marshal(request.EvaluateImageRequest{
		UserID:  "user-1",
		Surface: moderation.SurfaceProfile,
	})
	req := httptest.NewRequest("POST", "/api/v1/moderation/evaluate-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestEvaluateImageHandler_CheckTextOptOut(t *testing.T) {
	evaluator := new(pipelineMocks.Evaluator)
	app := setupEvaluateImageApp(evaluator)

	checkText := false
	evaluator.On("EvaluateImage", mock.Anything, mock.MatchedBy(func(in pipeline.ImageInput) bool {
		return in.ImageURL == "https://cdn.example.com/a.png" && !in.CheckText
	})).Return(&pipeline.Result{Allowed: true}, nil)

	body, _ := json.Marshal(request.EvaluateImageRequest{
		UserID:    "user-1",
		Surface:   moderation.SurfaceProfile,
		ImageURL:  "https://cdn.example.com/a.png",
		CheckText: &checkText,
	})
	req := httptest.NewRequest("POST", "/api/v1/moderation/evaluate-image", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)

	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	evaluator.AssertExpectations(t)
}
