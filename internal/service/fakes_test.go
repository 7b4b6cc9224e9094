package service_test

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hall-booking-service/internal/domain"
	"github.com/spec-kit/hall-booking-service/internal/events"
	"github.com/spec-kit/hall-booking-service/internal/repository"
)

// fakeHallRepo is an in-memory HallRepository.
type fakeHallRepo struct {
	halls  map[int64]domain.Hall
	nextID int64
	calls  int
}

func newFakeHallRepo(halls ...domain.Hall) *fakeHallRepo {
	r := &fakeHallRepo{halls: make(map[int64]domain.Hall), nextID: 100}
	for _, h := range halls {
		r.halls[h.ID] = h
	}
	return r
}

func (r *fakeHallRepo) Create(_ context.Context, hall *domain.Hall) error {
	r.nextID++
	hall.ID = r.nextID
	hall.CreatedAt = time.Now()
	hall.UpdatedAt = hall.CreatedAt
	r.halls[hall.ID] = *hall
	return nil
}

func (r *fakeHallRepo) GetByID(_ context.Context, id int64) (*domain.Hall, error) {
	r.calls++
	hall, ok := r.halls[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &hall, nil
}

func (r *fakeHallRepo) ListByOwner(_ context.Context, ownerID int64) ([]domain.Hall, error) {
	var out []domain.Hall
	for _, h := range r.halls {
		if h.OwnerID == ownerID {
			out = append(out, h)
		}
	}
	return out, nil
}

// fakeBookingRepo is an in-memory BookingRepository keyed by the natural key.
type fakeBookingRepo struct {
	byKey       map[string]domain.Booking
	nextID      int64
	upsertCalls int
	// loseCreateRace makes the next create branch fail like a concurrent
	// insert on the unique constraint would.
	loseCreateRace bool
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{byKey: make(map[string]domain.Booking)}
}

func naturalKey(b *domain.Booking) string {
	return fmt.Sprintf("%d|%s|%s|%s", b.HallID, b.Date.Format("2006-01-02"), b.StartTime, b.EndTime)
}

func (r *fakeBookingRepo) Upsert(_ context.Context, booking *domain.Booking) (bool, error) {
	r.upsertCalls++
	key := naturalKey(booking)

	if existing, ok := r.byKey[key]; ok {
		existing.PlusPrice = booking.PlusPrice
		existing.UpdatedAt = time.Now()
		r.byKey[key] = existing
		*booking = existing
		return false, nil
	}

	if r.loseCreateRace {
		r.loseCreateRace = false
		return false, repository.ErrDuplicateKey
	}

	r.nextID++
	booking.ID = r.nextID
	booking.Status = domain.BookingStatusPending
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	r.byKey[key] = *booking
	return true, nil
}

func (r *fakeBookingRepo) ListByUser(_ context.Context, userID int64) ([]domain.Booking, error) {
	var out []domain.Booking
	for _, b := range r.byKey {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	return out, nil
}

// fakeUserRepo is an in-memory UserRepository.
type fakeUserRepo struct {
	users           map[int64]domain.User
	nextID          int64
	deletedCascades []int64
}

func newFakeUserRepo(users ...domain.User) *fakeUserRepo {
	r := &fakeUserRepo{users: make(map[int64]domain.User)}
	for _, u := range users {
		r.users[u.ID] = u
		if u.ID > r.nextID {
			r.nextID = u.ID
		}
	}
	return r
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	r.nextID++
	user.ID = r.nextID
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
	for id, u := range r.users {
		if id != user.ID && u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.UpdatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *fakeUserRepo) DeleteWithBookings(_ context.Context, id int64) error {
	if _, ok := r.users[id]; !ok {
		return pgx.ErrNoRows
	}
	delete(r.users, id)
	r.deletedCascades = append(r.deletedCascades, id)
	return nil
}

// recordingDispatcher captures published events.
type recordingDispatcher struct {
	mu     sync.Mutex
	events []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.events = append(d.events, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) published() []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]events.Event{}, d.events...)
}
