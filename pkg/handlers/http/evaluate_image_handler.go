package http

import (
	"encoding/base64"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/pipeline"
	"github.com/safenest/trustpipe/pkg/handlers/http/request"
	"github.com/safenest/trustpipe/pkg/handlers/http/response"
)

type EvaluateImageHandlerDeps struct {
	Logger    *logrus.Logger
	Evaluator pipeline.Evaluator
}

type evaluateImageHandler struct {
	logger    *logrus.Logger
	evaluator pipeline.Evaluator
}

func NewEvaluateImageHandler(deps EvaluateImageHandlerDeps) Handler {
	return &evaluateImageHandler{
		logger:    deps.Logger,
		evaluator: deps.Evaluator,
	}
}

func (s *evaluateImageHandler) Handle(c *fiber.Ctx) error {
	var req request.EvaluateImageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var imageData []byte
	if req.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(req.ImageBase64)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image_base64 is not valid base64"})
		}
		imageData = decoded
	}

	result, err := s.evaluator.EvaluateImage(c.Context(), pipeline.ImageInput{
		UserID:    req.UserID,
		Surface:   req.Surface,
		ImageURL:  req.ImageURL,
		ImageData: imageData,
		ImageMIME: req.ImageMIME,
		CheckText: req.ShouldCheckText(),
	})
	if err != nil {
		s.logger.WithError(err).WithField("user_id", req.UserID).Error("image evaluation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "image evaluation failed"})
	}

	return c.Status(fiber.StatusOK).JSON(response.FromResult(result))
}
