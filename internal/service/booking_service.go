package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hall-booking-service/internal/domain"
	"github.com/spec-kit/hall-booking-service/internal/events"
	"github.com/spec-kit/hall-booking-service/internal/repository"
	"github.com/spec-kit/hall-booking-service/internal/slots"
	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

// BookingService coordinates hall and booking workflows for owners.
type BookingService struct {
	halls      repository.HallRepository
	bookings   repository.BookingRepository
	slots      slots.Table
	dispatcher events.Dispatcher
}

// BookingDependencies bundles repositories for the booking service.
type BookingDependencies struct {
	HallRepo    repository.HallRepository
	BookingRepo repository.BookingRepository
	Slots       slots.Table
	Dispatcher  events.Dispatcher
}

// PricingInput describes a validated slot-pricing request.
type PricingInput struct {
	HallID      int64
	Date        time.Time
	SlotKeyword string
	PlusPrice   *float64
}

// NewBookingService constructs the service.
func NewBookingService(deps BookingDependencies) *BookingService {
	return &BookingService{
		halls:      deps.HallRepo,
		bookings:   deps.BookingRepo,
		slots:      deps.Slots,
		dispatcher: deps.Dispatcher,
	}
}

// SetSlotPrice creates or reprices the booking for one hall/date/slot. The
// caller must own the hall. It reports whether a new booking was created.
func (s *BookingService) SetSlotPrice(ctx context.Context, callerID int64, input PricingInput) (*domain.Booking, bool, error) {
	if err := s.verifyHallOwner(ctx, callerID, input.HallID); err != nil {
		return nil, false, err
	}

	slot, err := s.slots.Resolve(input.SlotKeyword)
	if err != nil {
		return nil, false, err
	}

	booking := &domain.Booking{
		HallID:    input.HallID,
		UserID:    callerID,
		Date:      input.Date,
		StartTime: slot.Start,
		EndTime:   slot.End,
		PlusPrice: input.PlusPrice,
	}

	created, err := s.bookings.Upsert(ctx, booking)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			// Lost the create race for a fresh natural key; a retry lands on
			// the update branch.
			return nil, false, apperrors.NewConflict("booking already exists for this slot", nil)
		}
		return nil, false, apperrors.MapError(err)
	}

	s.publishBookingEvent(ctx, callerID, booking, created)
	return booking, created, nil
}

// CreateHall registers a new hall owned by the caller.
func (s *BookingService) CreateHall(ctx context.Context, ownerID int64, name, location string, capacity int) (*domain.Hall, error) {
	hall := &domain.Hall{
		OwnerID:  ownerID,
		Name:     name,
		Location: location,
		Capacity: capacity,
	}
	if err := s.halls.Create(ctx, hall); err != nil {
		return nil, apperrors.MapError(err)
	}
	return hall, nil
}

// ListOwnerHalls returns the halls owned by the caller.
func (s *BookingService) ListOwnerHalls(ctx context.Context, ownerID int64) ([]domain.Hall, error) {
	halls, err := s.halls.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return halls, nil
}

// ListUserBookings returns the caller's bookings.
func (s *BookingService) ListUserBookings(ctx context.Context, userID int64) ([]domain.Booking, error) {
	bookings, err := s.bookings.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperrors.MapError(err)
	}
	return bookings, nil
}

// verifyHallOwner proves the caller owns the hall. A missing hall and an
// ownership mismatch are distinct failure kinds.
func (s *BookingService) verifyHallOwner(ctx context.Context, callerID, hallID int64) error {
	hall, err := s.halls.GetByID(ctx, hallID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("hall", map[string]any{"hallId": hallID})
		}
		return apperrors.MapError(err)
	}
	if hall.OwnerID != callerID {
		return apperrors.NewForbidden("access denied")
	}
	return nil
}

func (s *BookingService) publishBookingEvent(ctx context.Context, actorID int64, booking *domain.Booking, created bool) {
	if s.dispatcher == nil {
		return
	}

	event := events.Event{
		ID:        uuid.NewString(),
		ActorID:   actorID,
		Timestamp: time.Now(),
	}
	if created {
		event.Type = events.EventBookingCreated
		event.Payload = events.BookingCreatedPayload{
			BookingID: booking.ID,
			HallID:    booking.HallID,
			Date:      booking.Date,
			StartTime: booking.StartTime,
			EndTime:   booking.EndTime,
			PlusPrice: booking.PlusPrice,
		}
	} else {
		event.Type = events.EventBookingRepriced
		event.Payload = events.BookingRepricedPayload{
			BookingID: booking.ID,
			HallID:    booking.HallID,
			PlusPrice: booking.PlusPrice,
		}
	}
	_ = s.dispatcher.Publish(ctx, event)
}
