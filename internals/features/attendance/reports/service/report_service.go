package service

import (
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

// View modes.
const (
	ViewMonth  = "month"
	ViewPeriod = "period"
	ViewDetail = "detail"
)

type ReportService struct {
	DB *gorm.DB
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db}
}

// FetchRange pulls every entry for one site across a date range, chunked,
// with display relations resolved. The aggregations need the whole range
// in memory before grouping.
func (s *ReportService) FetchRange(projectID uuid.UUID, rangeStart, rangeEnd string) ([]entryModel.AttendanceEntryModel, error) {
	query := s.DB.
		Preload("Contractor").
		Preload("Worker").
		Preload("WorkType").
		Preload("WorkType.Category").
		Where("project_id = ? AND entry_date >= ? AND entry_date <= ?", projectID, rangeStart, rangeEnd).
		Order("entry_date")

	var entries []entryModel.AttendanceEntryModel
	if err := helper.FindAllChunked(query, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type Report struct {
	RangeStart string
	RangeEnd   string

	ContractorTotals []ContractorTotal
	TotalManDays     int

	Days   []DayColumn // month view
	Rows   []WorkerRow // month + period views
	Detail []DetailRow // detail view
}

// Build aggregates a fetched range into one of the three views. month is
// only consulted for ViewMonth; filter only for ViewDetail.
func Build(entries []entryModel.AttendanceEntryModel, view, month string, filter DetailFilter) (*Report, error) {
	report := &Report{
		ContractorTotals: ContractorTotals(entries),
	}
	for _, total := range report.ContractorTotals {
		report.TotalManDays += total.ManDays
	}

	switch view {
	case ViewMonth:
		columns, err := MonthColumns(month)
		if err != nil {
			return nil, err
		}
		report.Days = columns
		report.Rows = WorkerRows(entries)
	case ViewPeriod:
		report.Rows = WorkerRows(entries)
	case ViewDetail:
		report.Detail = DetailRows(entries, filter)
	}
	return report, nil
}

// SortedDates flattens a worker row's date set, ascending.
func SortedDates(row WorkerRow) []string {
	dates := make([]string, 0, len(row.Dates))
	for date := range row.Dates {
		dates = append(dates, date)
	}
	sort.Strings(dates)
	return dates
}
