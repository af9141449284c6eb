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

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
	workerModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

type ContractorController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewContractorController(db *gorm.DB, v *validator.Validate) *ContractorController {
	return &ContractorController{DB: db, Validate: v}
}

func toContractorResponse(m *model.ContractorModel, workerCount int64) dto.ContractorResponse {
	resp := dto.ContractorResponse{
		PartnerID:        m.PartnerID.String(),
		Name:             m.Name,
		DisplayName:      m.DisplayName(),
		ShowInAttendance: m.ShowInAttendance,
		WorkerCount:      workerCount,
	}
	if m.DefaultWorkCategoryID != nil {
		s := m.DefaultWorkCategoryID.String()
		resp.DefaultWorkCategoryID = &s
	}
	return resp
}

// GET /contractors
func (ctrl *ContractorController) List(c *fiber.Ctx) error {
	var contractors []model.ContractorModel
	if err := ctrl.DB.
		Where("is_deleted = false").
		Order("created_at").
		Find(&contractors).Error; err != nil {
		log.Printf("[ERROR] list contractors: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の取得に失敗しました。")
	}

	// roster sizes in one query
	type countRow struct {
		ContractorID uuid.UUID
		N            int64
	}
	var counts []countRow
	if err := ctrl.DB.Model(&workerModel.WorkerModel{}).
		Select("contractor_id, count(*) as n").
		Where("id_deleted = false").
		Group("contractor_id").
		Scan(&counts).Error; err != nil {
		log.Printf("[ERROR] count workers: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の取得に失敗しました。")
	}
	byContractor := make(map[uuid.UUID]int64, len(counts))
	for _, row := range counts {
		byContractor[row.ContractorID] = row.N
	}

	out := make([]dto.ContractorResponse, 0, len(contractors))
	for i := range contractors {
		out = append(out, toContractorResponse(&contractors[i], byContractor[contractors[i].PartnerID]))
	}
	return helper.Success(c, "OK", out)
}

// POST /contractors — reviving a soft-deleted contractor with the same
// normalized name instead of inserting a double.
func (ctrl *ContractorController) Create(c *fiber.Ctx) error {
	var req dto.CreateContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return helper.Error(c, fiber.StatusBadRequest, "業者名が必要です。")
	}

	var all []model.ContractorModel
	if err := ctrl.DB.Find(&all).Error; err != nil {
		log.Printf("[ERROR] load contractors: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の登録に失敗しました。")
	}
	key := nameindex.MappingKey(name)
	for i := range all {
		if nameindex.MappingKey(all[i].Name) != key {
			continue
		}
		if !all[i].IsDeleted {
			return helper.Error(c, fiber.StatusConflict, "同名の業者が既に登録されています。")
		}
		all[i].IsDeleted = false
		all[i].DeletedAt = nil
		all[i].Name = name
		applyContractorPatch(&all[i], req.DefaultWorkCategoryID, req.ShowInAttendance)
		if err := ctrl.DB.Save(&all[i]).Error; err != nil {
			log.Printf("[ERROR] revive contractor: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "協力業者の登録に失敗しました。")
		}
		return helper.Success(c, "協力業者を復元しました。", toContractorResponse(&all[i], 0))
	}

	contractor := model.ContractorModel{Name: name, ShowInAttendance: true}
	applyContractorPatch(&contractor, req.DefaultWorkCategoryID, req.ShowInAttendance)
	if err := ctrl.DB.Create(&contractor).Error; err != nil {
		log.Printf("[ERROR] create contractor: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の登録に失敗しました。")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "協力業者を登録しました。", toContractorResponse(&contractor, 0))
}

func applyContractorPatch(m *model.ContractorModel, categoryID *string, show *bool) {
	if categoryID != nil {
		if id, err := uuid.Parse(*categoryID); err == nil {
			m.DefaultWorkCategoryID = &id
		}
	}
	if show != nil {
		m.ShowInAttendance = *show
	}
}

// PATCH /contractors/:id
func (ctrl *ContractorController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	var req dto.UpdateContractorRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var contractor model.ContractorModel
	if err := ctrl.DB.Where("partner_id = ? AND is_deleted = false", id).First(&contractor).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "協力業者が見つかりません。")
		}
		log.Printf("[ERROR] load contractor: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の更新に失敗しました。")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return helper.Error(c, fiber.StatusBadRequest, "業者名が必要です。")
		}
		contractor.Name = name
	}
	applyContractorPatch(&contractor, req.DefaultWorkCategoryID, req.ShowInAttendance)

	if err := ctrl.DB.Save(&contractor).Error; err != nil {
		log.Printf("[ERROR] update contractor: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の更新に失敗しました。")
	}
	return helper.Success(c, "協力業者を更新しました。", toContractorResponse(&contractor, 0))
}

// DELETE /contractors/:id — soft delete, the roster goes with it.
func (ctrl *ContractorController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	now := time.Now()
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.ContractorModel{}).
			Where("partner_id = ? AND is_deleted = false", id).
			Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&workerModel.WorkerModel{}).
			Where("contractor_id = ? AND id_deleted = false", id).
			Updates(map[string]interface{}{"id_deleted": true, "deleted_at": now}).Error
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "協力業者が見つかりません。")
		}
		log.Printf("[ERROR] delete contractor: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "協力業者の削除に失敗しました。")
	}
	return helper.Success(c, "協力業者を削除しました。", nil)
}
