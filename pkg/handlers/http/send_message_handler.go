package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/chat"
	"github.com/safenest/trustpipe/pkg/handlers/http/request"
)

type SendMessageHandlerDeps struct {
	Logger      *logrus.Logger
	Coordinator chat.Coordinator
}

type sendMessageHandler struct {
	logger      *logrus.Logger
	coordinator chat.Coordinator
}

func NewSendMessageHandler(deps SendMessageHandlerDeps) Handler {
	return &sendMessageHandler{
		logger:      deps.Logger,
		coordinator: deps.Coordinator,
	}
}

// Handle accepts a chat message and returns as soon as it is persisted.
// Moderation runs in the background and may mark the message blocked later.
func (s *sendMessageHandler) Handle(c *fiber.Ctx) error {
	var req request.SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": ErrInvalidJsonPayload})
	}

	if err := req.Validate(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	msg, err := s.coordinator.SendThenVerify(c.Context(), chat.SendInput{
		ConversationID: req.ConversationID,
		SenderID:       req.SenderID,
		RecipientID:    req.RecipientID,
		Text:           req.Text,
	})
	if err != nil {
		var suspended *chat.SuspendedError
		if errors.As(err, &suspended) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error":           suspended.Error(),
				"suspended_until": suspended.Until,
			})
		}
		s.logger.WithError(err).WithField("sender_id", req.SenderID).Error("failed to send message")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to send message"})
	}

	return c.Status(fiber.StatusAccepted).JSON(msg)
}
