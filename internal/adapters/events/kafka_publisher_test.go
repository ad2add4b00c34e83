package events

import (
	"context"
	"encoding/json"
	"errors"
	"solar-cleaning-service/internal/platform/obs"
	"solar-cleaning-service/internal/ports"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

type recordingWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *recordingWriter) Close() error {
	w.closed = true
	return nil
}

func header(m kafka.Message, key string) string {
	for _, h := range m.Headers {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

func TestKafkaPublisherWritesEvent(t *testing.T) {
	w := &recordingWriter{}
	p := NewKafkaPublisher(w)

	ctx := obs.WithRequestID(context.Background(), "req-1")
	at := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	err := p.Publish(ctx, ports.Event{
		Type:       "route.planned",
		Key:        "plan-1",
		OccurredAt: at,
		Data:       map[string]any{"stops": 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(w.msgs) != 1 {
		t.Fatalf("messages = %d, want 1", len(w.msgs))
	}
	m := w.msgs[0]
	if string(m.Key) != "plan-1" {
		t.Fatalf("key = %q, want plan-1", m.Key)
	}
	if header(m, "event_type") != "route.planned" || header(m, "req_id") != "req-1" {
		t.Fatalf("headers = %+v", m.Headers)
	}
	if header(m, "ts") != "2026-03-01T10:00:00Z" {
		t.Fatalf("ts = %q", header(m, "ts"))
	}

	var got ports.Event
	if err := json.Unmarshal(m.Value, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Type != "route.planned" || got.Data["stops"] != float64(3) {
		t.Fatalf("event = %+v", got)
	}

	if err := p.Close(); err != nil || !w.closed {
		t.Fatalf("Close = %v, closed = %v", err, w.closed)
	}
}

func TestKafkaPublisherErrors(t *testing.T) {
	p := NewKafkaPublisher(&recordingWriter{err: errors.New("no leader")})
	if err := p.Publish(context.Background(), ports.Event{Type: "route.planned"}); err == nil {
		t.Fatal("expected write error")
	}

	if err := NewKafkaPublisher(&recordingWriter{}).Publish(context.Background(), ports.Event{}); err == nil {
		t.Fatal("expected error for empty event type")
	}

	if err := (&KafkaPublisher{}).Publish(context.Background(), ports.Event{Type: "x"}); err == nil {
		t.Fatal("expected error for nil writer")
	}
}

func TestNewKafkaWriter(t *testing.T) {
	w := NewKafkaWriter([]string{"localhost:9092"}, "cleaning-route-planned")
	defer w.Close()
	if w.Topic != "cleaning-route-planned" {
		t.Fatalf("topic = %q", w.Topic)
	}
}
