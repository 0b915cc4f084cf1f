package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/pipeline"
	"github.com/safenest/trustpipe/pkg/handlers/http/request"
	"github.com/safenest/trustpipe/pkg/handlers/http/response"
)

type EvaluateHandlerDeps struct {
	Logger    *logrus.Logger
	Evaluator pipeline.Evaluator
}

type evaluateHandler struct {
	logger    *logrus.Logger
	evaluator pipeline.Evaluator
}

func NewEvaluateHandler(deps EvaluateHandlerDeps) Handler {
	return &evaluateHandler{
		logger:    deps.Logger,
		evaluator: deps.Evaluator,
	}
}

// Handle runs one piece of text through the full pipeline and returns the
// verdict. A suspended author gets the verdict without any event recorded.
func (s *evaluateHandler) Handle(c *fiber.Ctx) error {
	var req request.EvaluateRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	result, err := s.evaluator.Evaluate(c.Context(), pipeline.EvaluateInput{
		UserID:         req.UserID,
		TargetUserID:   req.TargetUserID,
		Surface:        req.Surface,
		Text:           req.Text,
		ConversationID: req.ConversationID,
		Context:        req.Context,
	})
	if err != nil {
		s.logger.WithError(err).WithField("user_id", req.UserID).Error("evaluation failed")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "evaluation failed"})
	}

	return c.Status(fiber.StatusOK).JSON(response.FromResult(result))
}
