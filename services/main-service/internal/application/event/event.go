package event

import (
	"context"
	"strings"
	"time"
)

const (
	EventVersion  = 1
	EventProducer = "main-service"
)

// DomainEventEnvelope is the stable contract for domain events emitted on
// moderation decisions. Consumers rely on version/producer/message_id/
// occurred_at plus the payload.
type DomainEventEnvelope[T any] struct {
	Version    int       `json:"version"`
	Producer   string    `json:"producer"`
	MessageID  string    `json:"message_id"`
	TraceID    string    `json:"trace_id,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
	Payload    T         `json:"payload"`
}

// ModerationPayload is the business payload for routing keys
// event.published and event.rejected.
type ModerationPayload struct {
	EventID     int64     `json:"event_id"`
	InitiatorID int64     `json:"initiator_id"`
	Category    string    `json:"category"`
	EventDate   time.Time `json:"event_date"`
	State       string    `json:"state"`
}

// ---- trace id plumbing ----
// If the transport layer stores a request id in context, we read it here.
// Keeping the key local avoids importing transport packages.
type ctxKey string

const ctxRequestID ctxKey = "request_id"

// WithRequestID is called by HTTP middleware to inject request_id into context.
func WithRequestID(ctx context.Context, id string) context.Context {
	id = strings.TrimSpace(id)
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, ctxRequestID, id)
}

// TraceIDFromContext reads request_id if available.
func TraceIDFromContext(ctx context.Context) string {
	if v := ctx.Value(ctxRequestID); v != nil {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}
