package controller

import (
	"fmt"
	"log"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/reports/service"
	sitesModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

// Sheet names of the workbook download.
const (
	sheetContractorTotals = "業者別人数"
	sheetDailyMatrix      = "日別入場一覧"
	sheetDetail           = "詳細検索結果"
)

const attendanceMark = "◯"

func (ctrl *ReportController) siteName(q *reportQuery) string {
	var site sitesModel.SiteModel
	if err := ctrl.DB.Select("site_name").Where("project_id = ?", q.ProjectID).First(&site).Error; err != nil {
		return q.ProjectID.String()
	}
	return site.SiteName
}

func sendWorkbook(c *fiber.Ctx, f *excelize.File, filename string) error {
	buf, err := f.WriteToBuffer()
	if err != nil {
		log.Printf("[ERROR] write workbook: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ファイルの生成に失敗しました。")
	}
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(filename)))
	return c.Send(buf.Bytes())
}

func cell(col, row int) string {
	name, _ := excelize.CoordinatesToCellName(col, row)
	return name
}

// writeTotalsSheet fills 業者別人数: contractor buckets with their
// man-day counts and a trailing total.
func writeTotalsSheet(f *excelize.File, sheet string, report *service.Report) {
	f.SetCellValue(sheet, "A1", "業者名")
	f.SetCellValue(sheet, "B1", "人工数")
	row := 2
	for _, total := range report.ContractorTotals {
		f.SetCellValue(sheet, cell(1, row), total.Name)
		f.SetCellValue(sheet, cell(2, row), total.ManDays)
		row++
	}
	f.SetCellValue(sheet, cell(1, row), "合計")
	f.SetCellValue(sheet, cell(2, row), report.TotalManDays)
	f.SetColWidth(sheet, "A", "A", 28)
}

// writeMatrixSheet fills 日別入場一覧: one row per worker, one column per
// calendar day with its weekday under the day number, marks on worked
// days, and the day count at the end.
func writeMatrixSheet(f *excelize.File, sheet string, report *service.Report) {
	f.SetCellValue(sheet, "A1", "業者名")
	f.SetCellValue(sheet, "B1", "作業員名")
	for i, col := range report.Days {
		f.SetCellValue(sheet, cell(3+i, 1), col.Day)
		f.SetCellValue(sheet, cell(3+i, 2), col.Weekday)
	}
	totalCol := 3 + len(report.Days)
	f.SetCellValue(sheet, cell(totalCol, 1), "出勤日数")

	row := 3
	for _, wr := range report.Rows {
		f.SetCellValue(sheet, cell(1, row), wr.ContractorName)
		f.SetCellValue(sheet, cell(2, row), wr.WorkerName)
		for i, col := range report.Days {
			if _, ok := wr.Dates[col.Date]; ok {
				f.SetCellValue(sheet, cell(3+i, row), attendanceMark)
			}
		}
		f.SetCellValue(sheet, cell(totalCol, row), len(wr.Dates))
		row++
	}
	f.SetColWidth(sheet, "A", "B", 20)
	start, _ := excelize.ColumnNumberToName(3)
	end, _ := excelize.ColumnNumberToName(totalCol - 1)
	f.SetColWidth(sheet, start, end, 4)
}

// GET /sites/:project_id/report/export — the month workbook.
func (ctrl *ReportController) ExportMonth(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return err
	}
	if q.View != service.ViewMonth {
		return helper.Error(c, fiber.StatusBadRequest, "月表示のみ出力できます。")
	}
	if err := guardProjectRead(c, q.ProjectID); err != nil {
		return err
	}

	report, err := ctrl.build(q)
	if err != nil {
		log.Printf("[ERROR] build report: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "集計の取得に失敗しました。")
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetContractorTotals)
	writeTotalsSheet(f, sheetContractorTotals, report)
	if _, err := f.NewSheet(sheetDailyMatrix); err == nil {
		writeMatrixSheet(f, sheetDailyMatrix, report)
	}

	filename := fmt.Sprintf("出面表_%s_%s.xlsx", ctrl.siteName(q), q.Month)
	return sendWorkbook(c, f, filename)
}

// GET /sites/:project_id/report/export-detail — the filtered flat list.
func (ctrl *ReportController) ExportDetail(c *fiber.Ctx) error {
	q, err := parseReportQuery(c)
	if err != nil {
		return err
	}
	if q.View != service.ViewDetail {
		return helper.Error(c, fiber.StatusBadRequest, "詳細表示のみ出力できます。")
	}
	if err := guardProjectRead(c, q.ProjectID); err != nil {
		return err
	}

	report, err := ctrl.build(q)
	if err != nil {
		log.Printf("[ERROR] build report: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "集計の取得に失敗しました。")
	}

	f := excelize.NewFile()
	defer f.Close()
	f.SetSheetName("Sheet1", sheetDetail)
	headers := []string{"日付", "業者名", "作業員名", "工種区分", "工種", "備考"}
	for i, h := range headers {
		f.SetCellValue(sheetDetail, cell(1+i, 1), h)
	}
	for i, row := range report.Detail {
		f.SetCellValue(sheetDetail, cell(1, 2+i), row.EntryDate)
		f.SetCellValue(sheetDetail, cell(2, 2+i), row.ContractorName)
		f.SetCellValue(sheetDetail, cell(3, 2+i), row.WorkerName)
		f.SetCellValue(sheetDetail, cell(4, 2+i), row.CategoryName)
		f.SetCellValue(sheetDetail, cell(5, 2+i), row.WorkTypeName)
		f.SetCellValue(sheetDetail, cell(6, 2+i), row.Memo)
	}
	f.SetColWidth(sheetDetail, "A", "F", 18)

	filename := fmt.Sprintf("詳細検索_%s_%s_%s.xlsx", ctrl.siteName(q), q.RangeStart, q.RangeEnd)
	return sendWorkbook(c, f, filename)
}
