package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	appNotification "github.com/safenest/trustpipe/pkg/app/notification"
)

type DismissNotificationHandlerDeps struct {
	Logger *logrus.Logger
	Queue  appNotification.Queue
}

type dismissNotificationHandler struct {
	logger *logrus.Logger
	queue  appNotification.Queue
}

func NewDismissNotificationHandler(deps DismissNotificationHandlerDeps) Handler {
	return &dismissNotificationHandler{
		logger: deps.Logger,
		queue:  deps.Queue,
	}
}

func (s *dismissNotificationHandler) Handle(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("notification_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid notification uuid"})
	}

	if err := s.queue.Dismiss(c.Context(), id); err != nil {
		s.logger.WithError(err).WithField("notification_id", id).Error("failed to dismiss notification")
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "notification not found"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"id": id, "status": "dismissed"})
}
