package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Event types
const (
	TypeArtCreated     = "art.created"
	TypeEventCreated   = "event.created"
	TypeOrderCompleted = "order.completed"
)

// Publisher sends domain events to a topic
type Publisher interface {
	Publish(ctx context.Context, topic, key string, payload any) error
	Close() error
}

// Envelope wraps every published payload
type Envelope struct {
	ID         string    `json:"id"`
	Type       string    `json:"type"`
	OccurredAt time.Time `json:"occurredAt"`
	Data       any       `json:"data"`
}

// NewEnvelope stamps a payload with a fresh ID and the current time
func NewEnvelope(eventType string, data any) Envelope {
	return Envelope{
		ID:         uuid.NewString(),
		Type:       eventType,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	}
}

// ListingCreated is published after an art or event is stored. Images are
// summarized, never included.
type ListingCreated struct {
	ID         string `json:"id"`
	ArtistID   string `json:"artistId"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	ImageCount int    `json:"imageCount"`
	ImageBytes int    `json:"imageBytes"`
}

// OrderCompleted is published after a purchase or booking
type OrderCompleted struct {
	OrderID  string  `json:"orderId"`
	UserID   string  `json:"userId"`
	ItemID   string  `json:"itemId"`
	ItemType string  `json:"itemType"`
	Price    float64 `json:"price"`
}

// NopPublisher drops every event. It is used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, string, any) error { return nil }
func (NopPublisher) Close() error                                     { return nil }
