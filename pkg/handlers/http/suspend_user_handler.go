package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/trust"
)

type SuspendUserHandlerDeps struct {
	Logger *logrus.Logger
	Ledger trust.Ledger
}

type suspendUserHandler struct {
	logger *logrus.Logger
	ledger trust.Ledger
}

func NewSuspendUserHandler(deps SuspendUserHandlerDeps) Handler {
	return &suspendUserHandler{
		logger: deps.Logger,
		ledger: deps.Ledger,
	}
}

// Handle suspends a user immediately, outside the strike path.
func (s *suspendUserHandler) Handle(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	profile, err := s.ledger.Suspend(c.Context(), userID)
	if err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to suspend user")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to suspend user"})
	}

	s.logger.WithField("user_id", userID).Info("user suspended by administrator")
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"user_id":         profile.UserID,
		"suspended_until": profile.SuspendedUntil,
	})
}
