package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	appNotification "github.com/safenest/trustpipe/pkg/app/notification"
	"github.com/safenest/trustpipe/pkg/domain/notification"
)

type ListNotificationsHandlerDeps struct {
	Logger *logrus.Logger
	Queue  appNotification.Queue
}

type listNotificationsHandler struct {
	logger *logrus.Logger
	queue  appNotification.Queue
}

func NewListNotificationsHandler(deps ListNotificationsHandlerDeps) Handler {
	return &listNotificationsHandler{
		logger: deps.Logger,
		queue:  deps.Queue,
	}
}

func (s *listNotificationsHandler) Handle(c *fiber.Ctx) error {
	status := notification.Status(c.Query("status"))
	switch status {
	case "", notification.StatusQueued, notification.StatusSent, notification.StatusFailed, notification.StatusDismissed:
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid status filter"})
	}

	items, err := s.queue.List(c.Context(), c.Query("user_id"), status, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		s.logger.WithError(err).Error("failed to list notifications")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list notifications"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"notifications": items,
		"count":         len(items),
	})
}
