package dto

type IssueGuestLinkRequest struct {
	ProjectID         string  `json:"project_id" validate:"required,uuid4"`
	ExpiresAt         *string `json:"expires_at,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CanEditAttendance bool    `json:"can_edit_attendance"`
}

type GuestLinkResponse struct {
	Token             string  `json:"token"`
	URL               string  `json:"url"`
	ProjectID         string  `json:"project_id"`
	SiteName          string  `json:"site_name,omitempty"`
	ExpiresAt         *string `json:"expires_at,omitempty"`
	CanEditAttendance bool    `json:"can_edit_attendance"`
	Existing          bool    `json:"existing,omitempty"`
}
