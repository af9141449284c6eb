package dto

type CreateContractorRequest struct {
	Name                  string  `json:"name" validate:"required,max=150"`
	DefaultWorkCategoryID *string `json:"default_work_category_id,omitempty" validate:"omitempty,uuid4"`
	ShowInAttendance      *bool   `json:"show_in_attendance,omitempty"`
}

type UpdateContractorRequest struct {
	Name                  *string `json:"name,omitempty" validate:"omitempty,max=150"`
	DefaultWorkCategoryID *string `json:"default_work_category_id,omitempty" validate:"omitempty,uuid4"`
	ShowInAttendance      *bool   `json:"show_in_attendance,omitempty"`
}

type ContractorResponse struct {
	PartnerID             string  `json:"partner_id"`
	Name                  string  `json:"name"`
	DisplayName           string  `json:"display_name"`
	DefaultWorkCategoryID *string `json:"default_work_category_id,omitempty"`
	ShowInAttendance      bool    `json:"show_in_attendance"`
	WorkerCount           int64   `json:"worker_count"`
}
