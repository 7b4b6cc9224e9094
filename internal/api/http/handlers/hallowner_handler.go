package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hall-booking-service/internal/api/dto"
	"github.com/spec-kit/hall-booking-service/internal/auth"
	"github.com/spec-kit/hall-booking-service/internal/service"
	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

// HallOwnerHandler manages hall-owner endpoints, including slot pricing.
type HallOwnerHandler struct {
	bookings *service.BookingService
}

// NewHallOwnerHandler constructs handler.
func NewHallOwnerHandler(bookingService *service.BookingService) *HallOwnerHandler {
	return &HallOwnerHandler{bookings: bookingService}
}

// SetPricing handles POST /hallowner/pricing. It upserts the booking for one
// hall/date/slot, updating only the surcharge price when the slot is already
// booked.
func (h *HallOwnerHandler) SetPricing(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.PricingRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	hallID, err := req.ParseHallID()
	if err != nil {
		return apperrors.NewValidationError("invalid hallId", nil)
	}
	date, err := req.ParseDate()
	if err != nil {
		return apperrors.NewValidationError("invalid date", nil)
	}
	if strings.TrimSpace(req.TimeSlot) == "" {
		return apperrors.NewValidationError("invalid time slot", nil)
	}

	booking, _, err := h.bookings.SetSlotPrice(c.Context(), principal.User.ID, service.PricingInput{
		HallID:      hallID,
		Date:        date,
		SlotKeyword: req.TimeSlot,
		PlusPrice:   req.Price,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message": "Booking processed successfully",
		"booking": booking,
	})
}

// CreateHall handles POST /hallowner/halls.
func (h *HallOwnerHandler) CreateHall(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	var req dto.HallCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Name) == "" {
		return apperrors.NewValidationError("name required", nil)
	}

	hall, err := h.bookings.CreateHall(c.Context(), principal.User.ID, req.Name, req.Location, req.Capacity)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"hall": hall})
}

// ListHalls handles GET /hallowner/halls.
func (h *HallOwnerHandler) ListHalls(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	halls, err := h.bookings.ListOwnerHalls(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"halls": halls})
}

// ListMyBookings handles GET /bookings for any authenticated user.
func (h *HallOwnerHandler) ListMyBookings(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}

	bookings, err := h.bookings.ListUserBookings(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"bookings": bookings})
}
