package serverutils

import (
	"time"

	"notetaking-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// RequestLogger logs one line per request after the handler chain has finished.
func RequestLogger(log logger.ILogger) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		start := time.Now()
		err := ctx.Next()

		status := ctx.Response().StatusCode()
		if err != nil {
			status = StatusFor(err)
		}

		log.Info("http_logger", "HTTP request", map[string]interface{}{
			"method":      ctx.Method(),
			"path":        ctx.Path(),
			"status":      status,
			"duration_ms": time.Since(start).Milliseconds(),
			"remote_addr": ctx.IP(),
		})

		return err
	}
}
