package middleware

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/safenest/trustpipe/pkg/infra/metrics"
)

type metricsMiddleware struct{}

func NewMetricsMiddleware() Middleware {
	return &metricsMiddleware{}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		// Route().Path keeps the label cardinality bounded to declared routes.
		path := c.Route().Path
		metrics.HTTPRequestDuration.
			WithLabelValues(c.Method(), path, strconv.Itoa(c.Response().StatusCode())).
			Observe(float64(time.Since(start).Milliseconds()))
		return err
	}
}
