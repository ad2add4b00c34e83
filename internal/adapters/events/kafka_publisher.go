package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"
	"time"

	"github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafka.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher emits domain events as JSON messages on a single topic.
type KafkaPublisher struct {
	Writer MessageWriter
}

// NewKafkaWriter builds a writer for topic across brokers.
func NewKafkaWriter(brokers []string, topic string) *kafka.Writer {
	return &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		WriteTimeout: 5 * time.Second,
	}
}

func NewKafkaPublisher(w MessageWriter) *KafkaPublisher {
	return &KafkaPublisher{Writer: w}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt ports.Event) (err error) {
	defer obs.Time(ctx, "events.kafka.Publish")(&err)

	if p.Writer == nil {
		return errors.New("kafka publisher: writer is nil")
	}
	if evt.Type == "" {
		return errors.New("kafka publisher: event type must not be empty")
	}

	body, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("kafka publisher: encode %s: %w", evt.Type, err)
	}

	msg := kafka.Message{
		Key:   []byte(evt.Key),
		Value: body,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(evt.Type)},
			{Key: "ts", Value: []byte(evt.OccurredAt.UTC().Format(time.RFC3339))},
		},
	}
	if id := obs.RequestID(ctx); id != "" {
		msg.Headers = append(msg.Headers, kafka.Header{Key: "req_id", Value: []byte(id)})
	}

	if err := p.Writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publisher: write %s: %w", evt.Type, err)
	}
	return nil
}

func (p *KafkaPublisher) Close() error {
	if p.Writer == nil {
		return nil
	}
	return p.Writer.Close()
}
