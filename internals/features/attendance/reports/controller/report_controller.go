package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/constants"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/reports/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/reports/service"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

type ReportController struct {
	DB      *gorm.DB
	Service *service.ReportService
}

func NewReportController(db *gorm.DB) *ReportController {
	return &ReportController{DB: db, Service: service.NewReportService(db)}
}

// reportQuery is the resolved query of one report request.
type reportQuery struct {
	ProjectID  uuid.UUID
	View       string
	Month      string
	RangeStart string
	RangeEnd   string
	Filter     service.DetailFilter
}

func parseReportQuery(c *fiber.Ctx) (*reportQuery, error) {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, "project_id が不正です。")
	}

	q := &reportQuery{
		ProjectID: projectID,
		View:      c.Query("view", service.ViewMonth),
		Month:     c.Query("month"),
		Filter: service.DetailFilter{
			CategoryID:    c.Query("category_id"),
			WorkTypeID:    c.Query("work_type_id"),
			ContractorKey: c.Query("contractor_key"),
			WorkerName:    c.Query("worker_name"),
			MemoQuery:     c.Query("memo"),
			MemoExact:     c.Query("memo_exact") == "true",
		},
	}

	switch q.View {
	case service.ViewMonth:
		if q.Month == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "month が必要です。")
		}
		start, end, _, err := service.MonthRange(q.Month)
		if err != nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		q.RangeStart, q.RangeEnd = start, end
	case service.ViewPeriod, service.ViewDetail:
		q.RangeStart = c.Query("start")
		q.RangeEnd = c.Query("end")
		if q.RangeStart == "" || q.RangeEnd == "" {
			return nil, fiber.NewError(fiber.StatusBadRequest, "start と end が必要です。")
		}
		if q.RangeStart > q.RangeEnd {
			return nil, fiber.NewError(fiber.StatusBadRequest, "期間の指定が不正です。")
		}
	default:
		return nil, fiber.NewError(fiber.StatusBadRequest, "view が不正です。")
	}
	return q, nil
}

func guardProjectRead(c *fiber.Ctx, projectID uuid.UUID) error {
	if auth.Role(c) == constants.RoleGuest && auth.GuestProjectID(c) != projectID.String() {
		return fiber.NewError(fiber.StatusForbidden, "この現場へのアクセス権がありません。")
	}
	return nil
}

func (ctrl *ReportController) build(q *reportQuery) (*service.Report, error) {
	entries, err := ctrl.Service.FetchRange(q.ProjectID, q.RangeStart, q.RangeEnd)
	if err != nil {
		return nil, err
	}
	return service.Build(entries, q.View, q.Month, q.Filter)
}

func toResponse(q *reportQuery, report *service.Report) dto.ReportResponse {
	resp := dto.ReportResponse{
		SiteID:           q.ProjectID.String(),
		View:             q.View,
		RangeStart:       q.RangeStart,
		RangeEnd:         q.RangeEnd,
		TotalManDays:     report.TotalManDays,
		ContractorTotals: report.ContractorTotals,
		Days:             report.Days,
		Details:          report.Detail,
	}

	for _, row := range report.Rows {
		matrix := dto.MatrixRow{
			ContractorName: row.ContractorName,
			WorkerName:     row.WorkerName,
			DayCount:       len(row.Dates),
		}
		if q.View == service.ViewMonth {
			marks := make([]bool, len(report.Days))
			for i, col := range report.Days {
				_, marks[i] = row.Dates[col.Date]
			}
			matrix.Marks = marks
		} else {
			matrix.Dates = service.SortedDates(row)
		}
		resp.Matrix = append(resp.Matrix, matrix)
	}

	if q.View == service.ViewPeriod {
		resp.PeriodTotals = service.NexusPeriodTotals(report.Rows)
	}
	return resp
}

// GET /sites/:project_id/report
func (ctrl *ReportController) GetReport(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return err
	}
	if err := guardProjectRead(c, q.ProjectID); err != nil {
		return err
	}

	report, err := ctrl.build(q)
	if err != nil {
		log.Printf("[ERROR] build report: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "集計の取得に失敗しました。")
	}
	return helper.Success(c, "OK", toResponse(q, report))
}
