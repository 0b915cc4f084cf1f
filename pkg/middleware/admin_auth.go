package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"github.com/safenest/trustpipe/pkg/infra/auth/jwt"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

// ClaimsContextKey exposes the validated claims to handlers downstream.
const ClaimsContextKey = "auth_claims"

type adminAuthMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
	roles      []string
}

// NewAdminAuthMiddleware guards a route group behind a bearer token carrying
// one of the allowed roles.
func NewAdminAuthMiddleware(
	logger *logrus.Logger,
	jwtManager jwt.Manager,
	roles ...string,
) Middleware {
	return &adminAuthMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
		roles:      roles,
	}
}

func (m *adminAuthMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		authHeader := ctx.Get(authorizationHeader)
		if authHeader == "" {
			m.logger.Debug("no authorization header provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization required"})
		}
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			m.logger.Debug("invalid authorization header format")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid authorization format"})
		}

		tokenString := strings.TrimPrefix(authHeader, bearerPrefix)
		if tokenString == "" {
			m.logger.Debug("empty token provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Empty token provided"})
		}

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		if len(m.roles) > 0 && !m.roleAllowed(claims.Role) {
			m.logger.WithField("role", claims.Role).Debug("role not allowed for this route")
			return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"error": "Insufficient permissions"})
		}

		ctx.Locals(ClaimsContextKey, claims)
		return ctx.Next()
	}
}

func (m *adminAuthMiddleware) roleAllowed(role string) bool {
	for _, allowed := range m.roles {
		if role == allowed {
			return true
		}
	}
	return false
}
