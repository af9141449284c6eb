package dto

type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type GuestLoginRequest struct {
	Token string `json:"token" validate:"required,max=64"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=72"`
}

type UpdateSettingsRequest struct {
	DefaultProjectID *string `json:"default_project_id,omitempty" validate:"omitempty,uuid4"`
}

type SessionResponse struct {
	UserID           string  `json:"user_id,omitempty"`
	Username         string  `json:"username,omitempty"`
	Role             string  `json:"role"`
	GuestProjectID   string  `json:"guest_project_id,omitempty"`
	GuestCanEdit     bool    `json:"guest_can_edit,omitempty"`
	DefaultProjectID *string `json:"default_project_id,omitempty"`
}
