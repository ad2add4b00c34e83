package ports

import (
	"context"
	"time"
)

// Event is a domain notification emitted after a planning step completes.
type Event struct {
	Type       string         `json:"type"`
	Key        string         `json:"key"`
	OccurredAt time.Time      `json:"occurred_at"`
	Data       map[string]any `json:"data"`
}

// Contract for publishing domain events to downstream consumers.
type EventPublisher interface {
	Publish(ctx context.Context, evt Event) error
}
