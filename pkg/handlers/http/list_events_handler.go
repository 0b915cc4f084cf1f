package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/domain/moderation"
)

type ListEventsHandlerDeps struct {
	Logger *logrus.Logger
	Repo   moderation.EventRepository
}

type listEventsHandler struct {
	logger *logrus.Logger
	repo   moderation.EventRepository
}

func NewListEventsHandler(deps ListEventsHandlerDeps) Handler {
	return &listEventsHandler{
		logger: deps.Logger,
		repo:   deps.Repo,
	}
}

// Handle lists audit-log entries for review tooling, newest first.
func (s *listEventsHandler) Handle(c *fiber.Ctx) error {
	filter := moderation.ListFilter{
		UserID:   c.Query("user_id"),
		Category: c.Query("category"),
		Severity: moderation.Severity(c.Query("severity")),
		Limit:    c.QueryInt("limit", 50),
		Offset:   c.QueryInt("offset", 0),
	}

	if allowed := c.Query("allowed"); allowed != "" {
		v := allowed == "true"
		filter.Allowed = &v
	}
	if from := c.Query("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "from must be RFC3339"})
		}
		filter.From = t
	}
	if to := c.Query("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "to must be RFC3339"})
		}
		filter.To = t
	}

	events, err := s.repo.List(c.Context(), filter)
	if err != nil {
		s.logger.WithError(err).Error("failed to list moderation events")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to list moderation events"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"events": events,
		"count":  len(events),
	})
}
