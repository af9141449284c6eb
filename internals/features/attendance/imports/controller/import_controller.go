package controller

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/service"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

type ImportController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.ImportService
}

func NewImportController(db *gorm.DB, v *validator.Validate) *ImportController {
	return &ImportController{DB: db, Validate: v, Service: service.NewImportService(db)}
}

// readCSV loads the uploaded sheet as rows. Ragged rows are normal in
// these exports, so no field count is enforced.
func readCSV(header *multipart.FileHeader) ([][]string, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true
	return reader.ReadAll()
}

func parseMappings(raw string) (map[string]string, error) {
	if raw == "" {
		return nil, nil
	}
	var mappings map[string]string
	if err := json.Unmarshal([]byte(raw), &mappings); err != nil {
		return nil, err
	}
	return mappings, nil
}

// POST /imports/attendance
func (ctrl *ImportController) ImportAttendance(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSVファイルが必要です。")
	}
	rows, err := readCSV(header)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSVファイルを読み込めません。")
	}

	var form dto.AttendanceImportForm
	if err := c.BodyParser(&form); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	mappings, err := parseMappings(form.Mappings)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "mappings の形式が正しくありません。")
	}

	summary, err := ctrl.Service.ImportAttendance(rows, service.AttendanceImportOptions{
		ProjectID:     form.ProjectID,
		SiteName:      form.SiteName,
		Mappings:      mappings,
		CreateMissing: form.CreateMissing,
		Execute:       form.Execute,
		CreatedBy:     auth.UserID(c),
	})
	if err != nil {
		var notFound *service.SiteNotFoundError
		if errors.As(err, &notFound) {
			return helper.ErrorWithDetails(c, fiber.StatusUnprocessableEntity,
				notFound.Error(), "候補: "+joinSuggestions(notFound.Suggestions))
		}
		log.Printf("[ERROR] import attendance: %v", err)
		if summary != nil {
			// chunks committed before the failure stay committed
			return helper.ErrorWithDetails(c, fiber.StatusInternalServerError,
				"取り込みに失敗しました。",
				fmt.Sprintf("挿入済み: %d / 予定: %d", summary.Inserted, summary.Planned))
		}
		return helper.Error(c, fiber.StatusInternalServerError, "取り込みに失敗しました。")
	}
	return helper.Success(c, "OK", summary)
}

func joinSuggestions(suggestions []string) string {
	out := ""
	for i, s := range suggestions {
		if i > 0 {
			out += ", "
		}
		out += s
	}
	return out
}

// POST /imports/workers
func (ctrl *ImportController) ImportWorkers(c *fiber.Ctx) error {
	header, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSVファイルが必要です。")
	}
	rows, err := readCSV(header)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "CSVファイルを読み込めません。")
	}

	var form dto.WorkerImportForm
	if err := c.BodyParser(&form); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(form); err != nil {
		return helper.ValidationError(c, err)
	}
	mappings, err := parseMappings(form.Mappings)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "mappings の形式が正しくありません。")
	}

	summary, err := ctrl.Service.ImportWorkers(rows, service.WorkerImportOptions{
		Mode:     form.Mode,
		Mappings: mappings,
		Execute:  form.Execute,
	})
	if err != nil {
		log.Printf("[ERROR] import workers: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "取り込みに失敗しました。")
	}
	return helper.Success(c, "OK", summary)
}
