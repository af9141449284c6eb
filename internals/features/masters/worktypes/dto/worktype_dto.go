package dto

type CreateWorkCategoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

type CreateWorkTypeRequest struct {
	Name       string  `json:"name" validate:"required,max=100"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid4"`
}

type UpdateWorkTypeRequest struct {
	Name       *string `json:"name,omitempty" validate:"omitempty,max=100"`
	CategoryID *string `json:"category_id,omitempty" validate:"omitempty,uuid4"`
}
