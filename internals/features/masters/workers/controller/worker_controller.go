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

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

type WorkerController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewWorkerController(db *gorm.DB, v *validator.Validate) *WorkerController {
	return &WorkerController{DB: db, Validate: v}
}

// GET /workers?contractor_id=
func (ctrl *WorkerController) List(c *fiber.Ctx) error {
	query := ctrl.DB.Where("id_deleted = false").Order("created_at")
	if raw := c.Query("contractor_id"); raw != "" {
		contractorID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "contractor_id が不正です。")
		}
		query = query.Where("contractor_id = ?", contractorID)
	}

	var workers []model.WorkerModel
	if err := query.Find(&workers).Error; err != nil {
		log.Printf("[ERROR] list workers: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の取得に失敗しました。")
	}
	return helper.Success(c, "OK", workers)
}

// findSameName looks for a worker of the contractor with the same
// normalized name, soft-deleted rows included.
func (ctrl *WorkerController) findSameName(contractorID uuid.UUID, name string) (*model.WorkerModel, error) {
	var candidates []model.WorkerModel
	if err := ctrl.DB.Where("contractor_id = ?", contractorID).Find(&candidates).Error; err != nil {
		return nil, err
	}
	key := nameindex.NormalizeKey(name)
	for i := range candidates {
		if nameindex.NormalizeKey(candidates[i].Name) == key {
			return &candidates[i], nil
		}
	}
	return nil, nil
}

// POST /workers — a soft-deleted same-name worker is revived.
func (ctrl *WorkerController) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return helper.Error(c, fiber.StatusBadRequest, "作業員名が必要です。")
	}
	contractorID := uuid.MustParse(req.ContractorID)

	existing, err := ctrl.findSameName(contractorID, name)
	if err != nil {
		log.Printf("[ERROR] lookup worker: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の登録に失敗しました。")
	}
	if existing != nil {
		if !existing.IDDeleted {
			return helper.Error(c, fiber.StatusConflict, "同名の作業員が既に登録されています。")
		}
		existing.IDDeleted = false
		existing.DeletedAt = nil
		existing.Name = name
		if err := ctrl.DB.Save(existing).Error; err != nil {
			log.Printf("[ERROR] revive worker: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "作業員の登録に失敗しました。")
		}
		return helper.Success(c, "作業員を復元しました。", existing)
	}

	worker := model.WorkerModel{Name: name, ContractorID: contractorID}
	if err := ctrl.DB.Create(&worker).Error; err != nil {
		log.Printf("[ERROR] create worker: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の登録に失敗しました。")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "作業員を登録しました。", worker)
}

// POST /workers/bulk
func (ctrl *WorkerController) BulkCreate(c *fiber.Ctx) error {
	var req dto.BulkCreateWorkersRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	contractorID := uuid.MustParse(req.ContractorID)

	var candidates []model.WorkerModel
	if err := ctrl.DB.Where("contractor_id = ?", contractorID).Find(&candidates).Error; err != nil {
		log.Printf("[ERROR] load workers: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の登録に失敗しました。")
	}
	existing := make(map[string]*model.WorkerModel, len(candidates))
	for i := range candidates {
		existing[nameindex.NormalizeKey(candidates[i].Name)] = &candidates[i]
	}

	resp := dto.BulkCreateWorkersResponse{}
	var toInsert []model.WorkerModel
	var toRevive []uuid.UUID
	seen := map[string]struct{}{}
	for _, raw := range req.Names {
		name := strings.TrimSpace(raw)
		if name == "" {
			continue
		}
		key := nameindex.NormalizeKey(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}

		if w, ok := existing[key]; ok {
			if w.IDDeleted {
				toRevive = append(toRevive, w.ID)
				continue
			}
			resp.Duplicates = append(resp.Duplicates, name)
			continue
		}
		toInsert = append(toInsert, model.WorkerModel{Name: name, ContractorID: contractorID})
	}

	err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if len(toInsert) > 0 {
			if err := tx.Create(&toInsert).Error; err != nil {
				return err
			}
		}
		if len(toRevive) > 0 {
			if err := tx.Model(&model.WorkerModel{}).
				Where("id IN ?", toRevive).
				Updates(map[string]interface{}{"id_deleted": false, "deleted_at": nil}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Printf("[ERROR] bulk create workers: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の登録に失敗しました。")
	}
	resp.Inserted = len(toInsert)
	resp.Restored = len(toRevive)
	return helper.Success(c, "作業員を登録しました。", resp)
}

// PATCH /workers/:id
func (ctrl *WorkerController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	var req dto.UpdateWorkerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var worker model.WorkerModel
	if err := ctrl.DB.Where("id = ? AND id_deleted = false", id).First(&worker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "作業員が見つかりません。")
		}
		log.Printf("[ERROR] load worker: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の更新に失敗しました。")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return helper.Error(c, fiber.StatusBadRequest, "作業員名が必要です。")
		}
		worker.Name = name
	}
	if req.ContractorID != nil {
		worker.ContractorID = uuid.MustParse(*req.ContractorID)
	}

	if err := ctrl.DB.Save(&worker).Error; err != nil {
		log.Printf("[ERROR] update worker: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の更新に失敗しました。")
	}
	return helper.Success(c, "作業員を更新しました。", worker)
}

// DELETE /workers/:id — soft delete; attendance history stays.
func (ctrl *WorkerController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.WorkerModel{}).
		Where("id = ? AND id_deleted = false", id).
		Updates(map[string]interface{}{"id_deleted": true, "deleted_at": now})
	if res.Error != nil {
		log.Printf("[ERROR] delete worker: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "作業員の削除に失敗しました。")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "作業員が見つかりません。")
	}
	return helper.Success(c, "作業員を削除しました。", nil)
}
