package logging

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// RequestIDHeader carries the per-request correlation ID.
const RequestIDHeader = "X-Request-ID"

// FiberMiddleware assigns a request ID when the client did not send one and
// logs every request once it completes.
func FiberMiddleware(logger *Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		requestID := c.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set(RequestIDHeader, requestID)

		err := c.Next()

		fields := []interface{}{
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"duration", time.Since(start),
			"request_id", requestID,
		}
		if cache := c.GetRespHeader("X-Cache"); cache != "" {
			fields = append(fields, "cache", cache)
		}

		switch {
		case err != nil:
			logger.Error("request failed", append(fields, "error", err)...)
		case c.Response().StatusCode() >= 500:
			logger.Error("server error", fields...)
		case c.Response().StatusCode() >= 400:
			logger.Warn("client error", fields...)
		default:
			logger.Info("request completed", fields...)
		}
		return err
	}
}
