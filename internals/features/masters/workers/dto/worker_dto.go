package dto

type CreateWorkerRequest struct {
	Name         string `json:"name" validate:"required,max=100"`
	ContractorID string `json:"contractor_id" validate:"required,uuid4"`
}

type BulkCreateWorkersRequest struct {
	ContractorID string   `json:"contractor_id" validate:"required,uuid4"`
	Names        []string `json:"names" validate:"required,min=1,dive,max=100"`
}

type UpdateWorkerRequest struct {
	Name         *string `json:"name,omitempty" validate:"omitempty,max=100"`
	ContractorID *string `json:"contractor_id,omitempty" validate:"omitempty,uuid4"`
}

type BulkCreateWorkersResponse struct {
	Inserted   int      `json:"inserted"`
	Restored   int      `json:"restored"`
	Duplicates []string `json:"duplicates,omitempty"`
}
