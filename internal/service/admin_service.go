package service

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/hall-booking-service/internal/domain"
	"github.com/spec-kit/hall-booking-service/internal/events"
	"github.com/spec-kit/hall-booking-service/internal/repository"
	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

var (
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phonePattern = regexp.MustCompile(`^\+?\d{10,15}$`)
)

// AdminService covers administrative user management.
type AdminService struct {
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// NewAdminService constructs the service.
func NewAdminService(users repository.UserRepository, dispatcher events.Dispatcher) *AdminService {
	return &AdminService{users: users, dispatcher: dispatcher}
}

// UserPatch carries the updatable profile fields; nil means "leave as is".
type UserPatch struct {
	Name  *string
	Email *string
	Phone *string
}

// UpdateUser applies a partial profile update after validating each provided
// field.
func (s *AdminService) UpdateUser(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	if err := validatePatch(patch); err != nil {
		return nil, err
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}

	if patch.Name != nil {
		user.Name = *patch.Name
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.Phone != nil {
		user.Phone = *patch.Phone
	}

	if err := s.users.UpdateProfile(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return nil, apperrors.NewConflict("user with this email already exists", nil)
		}
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return nil, apperrors.MapError(err)
	}
	return user, nil
}

// DeleteUser removes a user and all of their bookings.
func (s *AdminService) DeleteUser(ctx context.Context, id int64) error {
	if err := s.users.DeleteWithBookings(ctx, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperrors.NewNotFound("user", map[string]any{"id": id})
		}
		return apperrors.MapError(err)
	}

	if s.dispatcher != nil {
		_ = s.dispatcher.Publish(ctx, events.Event{
			ID:        uuid.NewString(),
			Type:      events.EventUserDeleted,
			ActorID:   id,
			Timestamp: time.Now(),
			Payload:   events.UserDeletedPayload{UserID: id},
		})
	}
	return nil
}

func validatePatch(patch UserPatch) error {
	if patch.Name == nil && patch.Email == nil && patch.Phone == nil {
		return apperrors.NewValidationError("no updatable fields provided", nil)
	}
	if patch.Name != nil && (len(*patch.Name) < 1 || len(*patch.Name) > 50) {
		return apperrors.NewValidationError("name must be 1-50 characters", map[string]any{"field": "name"})
	}
	if patch.Email != nil && !emailPattern.MatchString(*patch.Email) {
		return apperrors.NewValidationError("invalid email", map[string]any{"field": "email"})
	}
	if patch.Phone != nil && !phonePattern.MatchString(*patch.Phone) {
		return apperrors.NewValidationError("invalid phone", map[string]any{"field": "phone"})
	}
	return nil
}
