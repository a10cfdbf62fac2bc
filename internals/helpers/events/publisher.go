package helper

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Routing keys published on the events exchange.
const (
	DonationSubmitted     = "donation.submitted"
	DonationStatusChanged = "donation.status_changed"
	MessageReceived       = "message.received"
)

type Event struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurred_at"`
	Data       any       `json:"data"`
}

func NewEvent(typ string, data any) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       typ,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// Publisher delivers domain events. Failures are reported, never retried.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// PublishAsync fires ev without blocking the request. Errors are logged.
func PublishAsync(p Publisher, ev Event) {
	if p == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := p.Publish(ctx, ev); err != nil {
			slog.Warn("publish event failed", "type", ev.Type, "id", ev.ID, "err", err)
		}
	}()
}

type NoopPublisher struct{}

func (NoopPublisher) Publish(ctx context.Context, ev Event) error {
	slog.DebugContext(ctx, "event (noop)", "type", ev.Type, "id", ev.ID)
	return nil
}

// MemoryPublisher keeps events in memory.
type MemoryPublisher struct {
	mu     sync.Mutex
	events []Event
}

func (m *MemoryPublisher) Publish(_ context.Context, ev Event) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *MemoryPublisher) Events() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.events))
	copy(out, m.events)
	return out
}
