package dto

type CreateSiteRequest struct {
	SiteName  string  `json:"site_name" validate:"required,max=150"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

type UpdateSiteRequest struct {
	SiteName  *string `json:"site_name,omitempty" validate:"omitempty,max=150"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	EndDate   *string `json:"end_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsSettled *bool   `json:"is_settled,omitempty"`
}

type SiteResponse struct {
	ProjectID string  `json:"project_id"`
	SiteName  string  `json:"site_name"`
	StartDate *string `json:"start_date,omitempty"`
	EndDate   *string `json:"end_date,omitempty"`
	IsSettled bool    `json:"is_settled"`
	Status    string  `json:"status"`
}
