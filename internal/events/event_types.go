package events

import (
	"time"

	"github.com/spec-kit/hall-booking-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventUserRegistered  EventType = "user_registered"
	EventUserDeleted     EventType = "user_deleted"
	EventBookingCreated  EventType = "booking_created"
	EventBookingRepriced EventType = "booking_repriced"
)

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ActorID   int64       `json:"actor_id"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// UserRegisteredPayload payload.
type UserRegisteredPayload struct {
	UserID int64       `json:"user_id"`
	Email  string      `json:"email"`
	Role   domain.Role `json:"role"`
}

// UserDeletedPayload payload.
type UserDeletedPayload struct {
	UserID int64 `json:"user_id"`
}

// BookingCreatedPayload payload.
type BookingCreatedPayload struct {
	BookingID int64     `json:"booking_id"`
	HallID    int64     `json:"hall_id"`
	Date      time.Time `json:"date"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	PlusPrice *float64  `json:"plus_price,omitempty"`
}

// BookingRepricedPayload payload.
type BookingRepricedPayload struct {
	BookingID int64    `json:"booking_id"`
	HallID    int64    `json:"hall_id"`
	PlusPrice *float64 `json:"plus_price,omitempty"`
}
