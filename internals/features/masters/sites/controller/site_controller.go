package controller

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

type SiteController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewSiteController(db *gorm.DB, v *validator.Validate) *SiteController {
	return &SiteController{DB: db, Validate: v}
}

func toSiteResponse(m *model.SiteModel, today string) dto.SiteResponse {
	return dto.SiteResponse{
		ProjectID: m.ProjectID.String(),
		SiteName:  m.SiteName,
		StartDate: m.StartDate,
		EndDate:   m.EndDate,
		IsSettled: m.IsSettled,
		Status:    string(m.Status(today)),
	}
}

// GET /sites?status=
func (ctrl *SiteController) List(c *fiber.Ctx) error {
	var sites []model.SiteModel
	if err := ctrl.DB.
		Where("is_deleted = false").
		Order("start_date DESC NULLS LAST, created_at DESC").
		Find(&sites).Error; err != nil {
		log.Printf("[ERROR] list sites: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "現場の取得に失敗しました。")
	}

	today := time.Now().Format("2006-01-02")
	status := c.Query("status")
	out := make([]dto.SiteResponse, 0, len(sites))
	for i := range sites {
		resp := toSiteResponse(&sites[i], today)
		if status != "" && resp.Status != status {
			continue
		}
		out = append(out, resp)
	}
	return helper.Success(c, "OK", out)
}

// GET /sites/:id
func (ctrl *SiteController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	var site model.SiteModel
	if err := ctrl.DB.Where("project_id = ? AND is_deleted = false", id).First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "現場が見つかりません。")
		}
		log.Printf("[ERROR] load site: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "現場の取得に失敗しました。")
	}
	return helper.Success(c, "OK", toSiteResponse(&site, time.Now().Format("2006-01-02")))
}

// POST /sites
func (ctrl *SiteController) Create(c *fiber.Ctx) error {
	var req dto.CreateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.SiteName)
	if name == "" {
		return helper.Error(c, fiber.StatusBadRequest, "現場名が必要です。")
	}
	if req.StartDate != nil && req.EndDate != nil && *req.StartDate > *req.EndDate {
		return helper.Error(c, fiber.StatusBadRequest, "工期の指定が不正です。")
	}

	site := model.SiteModel{
		SiteName:  name,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	if err := ctrl.DB.Create(&site).Error; err != nil {
		log.Printf("[ERROR] create site: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "現場の登録に失敗しました。")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "現場を登録しました。", toSiteResponse(&site, time.Now().Format("2006-01-02")))
}

// PATCH /sites/:id
func (ctrl *SiteController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	var req dto.UpdateSiteRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var site model.SiteModel
	if err := ctrl.DB.Where("project_id = ? AND is_deleted = false", id).First(&site).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "現場が見つかりません。")
		}
		log.Printf("[ERROR] load site: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "現場の更新に失敗しました。")
	}

	if req.SiteName != nil {
		name := strings.TrimSpace(*req.SiteName)
		if name == "" {
			return helper.Error(c, fiber.StatusBadRequest, "現場名が必要です。")
		}
		site.SiteName = name
	}
	if req.StartDate != nil {
		site.StartDate = req.StartDate
	}
	if req.EndDate != nil {
		site.EndDate = req.EndDate
	}
	if site.StartDate != nil && site.EndDate != nil && *site.StartDate > *site.EndDate {
		return helper.Error(c, fiber.StatusBadRequest, "工期の指定が不正です。")
	}
	if req.IsSettled != nil {
		site.IsSettled = *req.IsSettled
	}

	if err := ctrl.DB.Save(&site).Error; err != nil {
		log.Printf("[ERROR] update site: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "現場の更新に失敗しました。")
	}
	return helper.Success(c, "現場を更新しました。", toSiteResponse(&site, time.Now().Format("2006-01-02")))
}

// DELETE /sites/:id — soft delete.
func (ctrl *SiteController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.SiteModel{}).
		Where("project_id = ? AND is_deleted = false", id).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now})
	if res.Error != nil {
		log.Printf("[ERROR] delete site: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "現場の削除に失敗しました。")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "現場が見つかりません。")
	}
	return helper.Success(c, "現場を削除しました。", nil)
}
