package dto

// Multipart form fields of the attendance CSV upload. Mappings arrives
// as a JSON object in a form field.
type AttendanceImportForm struct {
	ProjectID     string `form:"project_id"`
	SiteName      string `form:"site_name"`
	Mappings      string `form:"mappings"`
	CreateMissing bool   `form:"create_missing"`
	Execute       bool   `form:"execute"`
}

type WorkerImportForm struct {
	Mode     string `form:"mode" validate:"omitempty,oneof=skip revive"`
	Mappings string `form:"mappings"`
	Execute  bool   `form:"execute"`
}

type SaveMappingRequest struct {
	Name     string            `json:"name" validate:"required,max=100"`
	Mappings map[string]string `json:"mappings" validate:"required"`
}
