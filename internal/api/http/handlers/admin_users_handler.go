package handlers

import (
	"encoding/json"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/hall-booking-service/internal/api/dto"
	"github.com/spec-kit/hall-booking-service/internal/service"
	apperrors "github.com/spec-kit/hall-booking-service/pkg/util"
)

var adminPatchFields = map[string]struct{}{
	"name":  {},
	"email": {},
	"phone": {},
}

// AdminUsersHandler exposes admin-only user management.
type AdminUsersHandler struct {
	admin *service.AdminService
}

// NewAdminUsersHandler constructs handler.
func NewAdminUsersHandler(adminService *service.AdminService) *AdminUsersHandler {
	return &AdminUsersHandler{admin: adminService}
}

// UpdateUser handles PATCH /admin/users/:id.
func (h *AdminUsersHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	// only the whitelisted fields may appear in the patch
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}
	for field := range raw {
		if _, ok := adminPatchFields[field]; !ok {
			return apperrors.NewValidationError("unknown field: "+field, map[string]any{"field": field})
		}
	}

	var req dto.UserUpdateRequest
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return apperrors.NewValidationError("invalid payload", nil)
	}

	user, err := h.admin.UpdateUser(c.Context(), id, service.UserPatch{
		Name:  req.Name,
		Email: req.Email,
		Phone: req.Phone,
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    dto.NewUserResponse(user),
	})
}

// DeleteUser handles DELETE /admin/users/:id. The user's bookings are removed
// with the account.
func (h *AdminUsersHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.admin.DeleteUser(c.Context(), id); err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "user deleted successfully",
	})
}

func parseUserID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid user id", nil)
	}
	return id, nil
}
