// Package activitylog publica los eventos de auditoría como logs estructurados.
package activitylog

import (
	"context"

	"github.com/jhoicas/cafe-pos-api/internal/application/activity"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

var _ activity.Logger = (*Sink)(nil)

// Sink escribe cada evento como una línea de log con el campo "audit": true.
type Sink struct {
	log *logger.Logger
}

// NewSink construye el sink sobre el logger de la aplicación.
func NewSink(log *logger.Logger) *Sink {
	return &Sink{log: log}
}

// Log registra el evento. Nunca falla: un problema de logging no debe afectar la venta.
func (s *Sink) Log(ctx context.Context, e activity.Entry) error {
	ev := s.log.Info().
		Bool("audit", true).
		Str("action", e.Action).
		Str("entity_type", e.EntityType).
		Str("entity_id", e.EntityID).
		Str("entity_name", e.EntityName)
	if e.Actor.UserID != "" {
		ev = ev.Str("user_id", e.Actor.UserID).Str("user_name", e.Actor.UserName).Str("role", e.Actor.Role)
	}
	if e.Actor.IP != "" {
		ev = ev.Str("ip", e.Actor.IP)
	}
	if e.Actor.UserAgent != "" {
		ev = ev.Str("user_agent", e.Actor.UserAgent)
	}
	if len(e.Metadata) > 0 {
		ev = ev.Interface("metadata", e.Metadata)
	}
	if id, ok := ctx.Value(RequestIDKey).(string); ok && id != "" {
		ev = ev.Str("request_id", id)
	}
	ev.Msg(e.Description)
	return nil
}

type ctxKey string

// RequestIDKey clave de contexto con el request id que agrega la capa HTTP.
const RequestIDKey ctxKey = "request_id"

// WithRequestID devuelve un contexto con el request id para correlacionar eventos.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, RequestIDKey, id)
}
