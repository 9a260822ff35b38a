package event

import "context"

// NoopPublisher is used when no broker is configured (dev / tests).
type NoopPublisher struct{}

func (NoopPublisher) PublishEvent(ctx context.Context, routingKey string, env any) error {
	return nil
}
