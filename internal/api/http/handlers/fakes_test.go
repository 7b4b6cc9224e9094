package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/hall-booking-service/internal/api/http"
	"github.com/spec-kit/hall-booking-service/internal/api/http/handlers"
	"github.com/spec-kit/hall-booking-service/internal/auth"
	"github.com/spec-kit/hall-booking-service/internal/config"
	"github.com/spec-kit/hall-booking-service/internal/domain"
	"github.com/spec-kit/hall-booking-service/internal/events"
	"github.com/spec-kit/hall-booking-service/internal/observability"
	"github.com/spec-kit/hall-booking-service/internal/repository"
	"github.com/spec-kit/hall-booking-service/internal/service"
	"github.com/spec-kit/hall-booking-service/internal/slots"
)

const testSecret = "handler-test-secret"

type fakeUserRepo struct {
	users map[int64]domain.User
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return repository.ErrDuplicateKey
		}
	}
	user.ID = int64(len(r.users) + 1)
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return pgx.ErrNoRows
	}
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
	return nil
}

type fakeHallRepo struct {
	halls map[int64]domain.Hall
}

func (r *fakeHallRepo) Create(_ context.Context, hall *domain.Hall) error {
	hall.ID = int64(len(r.halls) + 100)
	r.halls[hall.ID] = *hall
	return nil
}

func (r *fakeHallRepo) GetByID(_ context.Context, id int64) (*domain.Hall, error) {
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

type fakeBookingRepo struct {
	byKey          map[string]domain.Booking
	nextID         int64
	loseCreateRace bool
}

func (r *fakeBookingRepo) Upsert(_ context.Context, booking *domain.Booking) (bool, error) {
	key := fmt.Sprintf("%d|%s|%s|%s", booking.HallID, booking.Date.Format("2006-01-02"), booking.StartTime, booking.EndTime)
	if existing, ok := r.byKey[key]; ok {
		existing.PlusPrice = booking.PlusPrice
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

type testEnv struct {
	app      *fiber.App
	tokens   *auth.TokenManager
	users    *fakeUserRepo
	halls    *fakeHallRepo
	bookings *fakeBookingRepo
}

// newTestEnv builds a full Fiber app with fake persistence. Seeded state:
// user 9 (hallowner) owns hall 5, user 2 is a customer, user 1 an admin.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	users := &fakeUserRepo{users: map[int64]domain.User{
		1: {ID: 1, Name: "Root", Email: "admin@example.com", Role: domain.RoleAdmin},
		2: {ID: 2, Name: "Visitor", Email: "visitor@example.com", Role: domain.RoleCustomer},
		9: {ID: 9, Name: "Owner", Email: "owner@example.com", Role: domain.RoleHallOwner},
	}}
	halls := &fakeHallRepo{halls: map[int64]domain.Hall{
		5: {ID: 5, OwnerID: 9, Name: "Grand Hall"},
	}}
	bookings := &fakeBookingRepo{byKey: map[string]domain.Booking{}}

	cfg := config.Config{}
	cfg.Auth.JWTSecret = testSecret
	cfg.Auth.AccessTokenTTLMinutes = 60
	cfg.Auth.BcryptCost = 4

	dispatcher := events.NewInMemoryDispatcher()
	authService := service.NewAuthService(cfg, service.AuthDependencies{UserRepo: users, Dispatcher: dispatcher})
	bookingService := service.NewBookingService(service.BookingDependencies{
		HallRepo:    halls,
		BookingRepo: bookings,
		Slots:       slots.Default(),
		Dispatcher:  dispatcher,
	})
	adminService := service.NewAdminService(users, dispatcher)

	logger := zap.NewNop()
	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, observability.NewMetrics(), 5*time.Second)
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler("hall-booking-service", "test", nil, nil),
		Users:          handlers.NewUsersHandler(authService),
		HallOwner:      handlers.NewHallOwnerHandler(bookingService),
		AdminUsers:     handlers.NewAdminUsersHandler(adminService),
		AuthMiddleware: auth.NewAuthMiddleware(authService.TokenManager(), users),
	})

	return &testEnv{
		app:      app,
		tokens:   authService.TokenManager(),
		users:    users,
		halls:    halls,
		bookings: bookings,
	}
}

func (e *testEnv) tokenFor(t *testing.T, userID int64) string {
	t.Helper()
	user, ok := e.users.users[userID]
	require.True(t, ok, "unknown test user %d", userID)
	token, _, err := e.tokens.GenerateToken(&user)
	require.NoError(t, err)
	return token
}

func (e *testEnv) request(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
