package dto

// DayRowRequest is one form row of the day editor. Roster rows carry
// worker_id (contractor_id optional), external rows carry nexus_user_id
// plus display_name/memo. A row with neither is a placeholder.
type DayRowRequest struct {
	EntryID      string `json:"entry_id,omitempty"`
	WorkerID     string `json:"worker_id,omitempty"`
	ContractorID string `json:"contractor_id,omitempty"`
	NexusUserID  string `json:"nexus_user_id,omitempty"`
	DisplayName  string `json:"display_name,omitempty"`
	WorkTypeID   string `json:"work_type_id,omitempty" validate:"omitempty,uuid4"`
	Memo         string `json:"memo,omitempty"`
}

type SaveDayRequest struct {
	EntryDate string          `json:"entry_date" validate:"required,datetime=2006-01-02"`
	Rows      []DayRowRequest `json:"rows"`
}

type DayEntryResponse struct {
	EntryID      string  `json:"entry_id"`
	EntryDate    string  `json:"entry_date"`
	ContractorID *string `json:"contractor_id,omitempty"`
	Contractor   string  `json:"contractor,omitempty"`
	WorkerID     *string `json:"worker_id,omitempty"`
	Worker       string  `json:"worker,omitempty"`
	NexusUserID  *string `json:"nexus_user_id,omitempty"`
	DisplayName  string  `json:"display_name,omitempty"`
	WorkTypeID   *string `json:"work_type_id,omitempty"`
	WorkType     string  `json:"work_type,omitempty"`
	Memo         string  `json:"memo,omitempty"`
}
