package events

import (
	"encoding/json"
	"sync"
	"time"
)

const (
	EventUserSignedUp  = "user_signed_up"
	EventUserLoggedIn  = "user_logged_in"
	EventUserDeleted   = "user_deleted"
	EventHostelAdded   = "hostel_added"
	EventHostelDeleted = "hostel_deleted"
	EventHostelChosen  = "hostel_selected"
	EventBookingMade   = "booking_created"
)

// UserEventPayload describes an account change.
type UserEventPayload struct {
	Email     string `json:"email"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	ChangedBy string `json:"changed_by,omitempty"`
}

// HostelEventPayload describes a listing change.
type HostelEventPayload struct {
	HostelID   string  `json:"hostel_id"`
	Name       string  `json:"name,omitempty"`
	Location   string  `json:"location,omitempty"`
	Price      float64 `json:"price,omitempty"`
	OwnerEmail string  `json:"owner_email,omitempty"`
	ClientID   string  `json:"client_id,omitempty"`
}

// BookingEventPayload describes the minimal booking snapshot for event consumers.
type BookingEventPayload struct {
	BookingID  string    `json:"booking_id"`
	UserName   string    `json:"user_name"`
	UserEmail  string    `json:"user_email"`
	HostelName string    `json:"hostel_name"`
	RoomType   string    `json:"room_type,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to,omitempty"`
	Created    time.Time `json:"created"`
}

// Event represents a lightweight domain event.
type Event struct {
	ID        int64
	Type      string
	Payload   []byte
	CreatedAt time.Time
}

// EventHandler reacts to an event.
type EventHandler func(event *Event) error

// EventBus provides in-process pub/sub for events.
type EventBus struct {
	subscribers map[string][]EventHandler
	all         []EventHandler
	mu          sync.RWMutex
	seq         int64
}

// NewEventBus constructs an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{subscribers: make(map[string][]EventHandler)}
}

// Subscribe registers a handler for a given event type.
func (b *EventBus) Subscribe(eventType string, handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscribers[eventType] = append(b.subscribers[eventType], handler)
}

// SubscribeAll registers a handler that receives every event.
func (b *EventBus) SubscribeAll(handler EventHandler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.all = append(b.all, handler)
}

// Publish notifies subscribers of the event type.
func (b *EventBus) Publish(event *Event) {
	b.mu.Lock()
	b.seq++
	if event.ID == 0 {
		event.ID = b.seq
	}
	handlers := append([]EventHandler(nil), b.subscribers[event.Type]...)
	handlers = append(handlers, b.all...)
	b.mu.Unlock()

	if event.CreatedAt.IsZero() {
		event.CreatedAt = time.Now()
	}

	for _, handler := range handlers {
		// Handlers run synchronously; caller decides concurrency model.
		_ = handler(event)
	}
}

// PublishJSON serializes the payload and publishes an event.
func (b *EventBus) PublishJSON(eventType string, payload interface{}) error {
	if b == nil {
		return nil
	}

	raw, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	b.Publish(&Event{Type: eventType, Payload: raw, CreatedAt: time.Now()})
	return nil
}
