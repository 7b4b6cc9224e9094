package dto

// UserUpdateRequest carries the admin-patchable profile fields.
type UserUpdateRequest struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}
