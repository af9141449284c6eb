package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/constants"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/memo"
	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/service"
	guestlinkService "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/service"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

type EntryController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.EntryService
	Guests   *guestlinkService.GuestLinkService
}

func NewEntryController(db *gorm.DB, v *validator.Validate) *EntryController {
	return &EntryController{
		DB:       db,
		Validate: v,
		Service:  service.NewEntryService(db),
		Guests:   guestlinkService.NewGuestLinkService(db),
	}
}

// guardProject checks the session against the target project. Guests are
// pinned to their link's project; writes additionally need the link's
// edit flag.
func (ctrl *EntryController) guardProject(c *fiber.Ctx, projectID uuid.UUID, write bool) error {
	if auth.Role(c) != constants.RoleGuest {
		return nil
	}
	if auth.GuestProjectID(c) != projectID.String() {
		return fiber.NewError(fiber.StatusForbidden, "この現場へのアクセス権がありません。")
	}
	if !write {
		return nil
	}
	ok, err := ctrl.Guests.CheckEditable(auth.GuestToken(c), projectID)
	if err != nil {
		return err
	}
	if !ok {
		return fiber.NewError(fiber.StatusForbidden, constants.ErrGuestNoWrite)
	}
	return nil
}

func toDayResponse(entries []entryModel.AttendanceEntryModel) []dto.DayEntryResponse {
	out := make([]dto.DayEntryResponse, 0, len(entries))
	for i := range entries {
		e := &entries[i]
		row := dto.DayEntryResponse{
			EntryID:   e.ID.String(),
			EntryDate: e.EntryDate,
		}
		if e.ContractorID != nil {
			s := e.ContractorID.String()
			row.ContractorID = &s
		}
		if e.Contractor != nil {
			row.Contractor = e.Contractor.DisplayName()
		}
		if e.WorkerID != nil {
			s := e.WorkerID.String()
			row.WorkerID = &s
		}
		if e.Worker != nil {
			row.Worker = e.Worker.Name
		}
		if e.WorkTypeID != nil {
			s := e.WorkTypeID.String()
			row.WorkTypeID = &s
		}
		if e.WorkType != nil {
			row.WorkType = e.WorkType.Name
		}
		if e.NexusUserID != nil {
			s := e.NexusUserID.String()
			row.NexusUserID = &s
			if e.WorkTypeText != nil {
				name, m, ok := memo.Decode(*e.WorkTypeText)
				if ok {
					row.DisplayName = name
					row.Memo = m
				}
			}
		} else if e.WorkTypeText != nil {
			row.Memo = *e.WorkTypeText
		}
		out = append(out, row)
	}
	return out
}

// GET /sites/:project_id/entries?date=YYYY-MM-DD
func (ctrl *EntryController) GetDay(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "project_id が不正です。")
	}
	entryDate := c.Query("date")
	if entryDate == "" {
		return helper.Error(c, fiber.StatusBadRequest, "date が必要です。")
	}
	if err := ctrl.guardProject(c, projectID, false); err != nil {
		return err
	}

	entries, err := ctrl.Service.LoadDay(projectID, entryDate)
	if err != nil {
		log.Printf("[ERROR] load day: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "出面の取得に失敗しました。")
	}
	return helper.Success(c, "OK", toDayResponse(entries))
}

// POST /sites/:project_id/entries
func (ctrl *EntryController) SaveDay(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "project_id が不正です。")
	}

	var req dto.SaveDayRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctrl.guardProject(c, projectID, true); err != nil {
		return err
	}

	desired := make([]service.DesiredRow, 0, len(req.Rows))
	for _, row := range req.Rows {
		d := service.DesiredRow{
			LoadedEntryID: row.EntryID,
			WorkTypeID:    row.WorkTypeID,
			Memo:          row.Memo,
		}
		switch {
		case row.NexusUserID != "":
			d.External = &service.ExternalRow{
				NexusUserID: row.NexusUserID,
				DisplayName: row.DisplayName,
				Memo:        row.Memo,
			}
		case row.WorkerID != "":
			d.Roster = &service.RosterRow{
				ContractorID: row.ContractorID,
				WorkerID:     row.WorkerID,
			}
		}
		desired = append(desired, d)
	}

	createdBy := auth.UserID(c)
	if createdBy == "" {
		createdBy = "guest"
	}
	if err := ctrl.Service.SaveDay(projectID, req.EntryDate, desired, createdBy); err != nil {
		var invalid *service.InvalidWorkerIDError
		if errors.As(err, &invalid) {
			return helper.Error(c, fiber.StatusBadRequest, invalid.Error())
		}
		log.Printf("[ERROR] save day: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "出面の保存に失敗しました。")
	}

	entries, err := ctrl.Service.LoadDay(projectID, req.EntryDate)
	if err != nil {
		log.Printf("[ERROR] reload day: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "出面の取得に失敗しました。")
	}
	return helper.Success(c, "出面を保存しました。", toDayResponse(entries))
}

// DELETE /sites/:project_id/entries?date=YYYY-MM-DD
func (ctrl *EntryController) ClearDay(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("project_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "project_id が不正です。")
	}
	entryDate := c.Query("date")
	if entryDate == "" {
		return helper.Error(c, fiber.StatusBadRequest, "date が必要です。")
	}
	if err := ctrl.guardProject(c, projectID, true); err != nil {
		return err
	}

	if err := ctrl.Service.ClearDay(projectID, entryDate); err != nil {
		log.Printf("[ERROR] clear day: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "出面の削除に失敗しました。")
	}
	return helper.Success(c, "出面を削除しました。", nil)
}
