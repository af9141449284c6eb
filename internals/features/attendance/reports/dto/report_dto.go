package dto

import (
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/reports/service"
)

type MatrixRow struct {
	ContractorName string   `json:"contractor_name"`
	WorkerName     string   `json:"worker_name"`
	DayCount       int      `json:"day_count"`
	Marks          []bool   `json:"marks,omitempty"` // one per month column
	Dates          []string `json:"dates,omitempty"` // period/detail views
}

type ReportResponse struct {
	SiteID     string `json:"site_id"`
	View       string `json:"view"`
	RangeStart string `json:"range_start"`
	RangeEnd   string `json:"range_end"`

	TotalManDays     int                       `json:"total_man_days"`
	ContractorTotals []service.ContractorTotal `json:"contractor_totals"`

	// month view
	Days   []service.DayColumn `json:"days,omitempty"`
	Matrix []MatrixRow         `json:"matrix,omitempty"`

	// period view (nexus breakdown)
	PeriodTotals []service.ContractorTotal `json:"period_totals,omitempty"`

	// detail view
	Details []service.DetailRow `json:"details,omitempty"`
}
