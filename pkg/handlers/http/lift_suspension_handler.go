package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/app/trust"
)

type LiftSuspensionHandlerDeps struct {
	Logger *logrus.Logger
	Ledger trust.Ledger
}

type liftSuspensionHandler struct {
	logger *logrus.Logger
	ledger trust.Ledger
}

func NewLiftSuspensionHandler(deps LiftSuspensionHandlerDeps) Handler {
	return &liftSuspensionHandler{
		logger: deps.Logger,
		ledger: deps.Ledger,
	}
}

// Handle lifts a suspension and resets the strike window. Safe to repeat.
func (s *liftSuspensionHandler) Handle(c *fiber.Ctx) error {
	userID := c.Params("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id is required"})
	}

	if err := s.ledger.LiftSuspension(c.Context(), userID); err != nil {
		s.logger.WithError(err).WithField("user_id", userID).Error("failed to lift suspension")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to lift suspension"})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{"user_id": userID, "suspended": false})
}
