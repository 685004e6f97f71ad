package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/activitylog"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// localRequestID es la key que usa el middleware requestid de Fiber.
const localRequestID = "requestid"

// RequestContext copia el request id de Fiber al context.Context de la petición
// para que el log de actividad lo correlacione.
func RequestContext() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if id, ok := c.Locals(localRequestID).(string); ok && id != "" {
			c.SetUserContext(activitylog.WithRequestID(c.UserContext(), id))
		}
		return c.Next()
	}
}

// RequestLogger registra método, ruta, estado y duración de cada petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Error()
		}
		id, _ := c.Locals(localRequestID).(string)
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", id).
			Msg("http request")
		return err
	}
}
