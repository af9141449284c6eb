package controller

import (
	"log"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/worktypes/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/worktypes/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

type WorkTypeController struct {
	DB       *gorm.DB
	Validate *validator.Validate
}

func NewWorkTypeController(db *gorm.DB, v *validator.Validate) *WorkTypeController {
	return &WorkTypeController{DB: db, Validate: v}
}

// GET /work-categories
func (ctrl *WorkTypeController) ListCategories(c *fiber.Ctx) error {
	var categories []model.WorkCategoryModel
	if err := ctrl.DB.
		Where("id_deleted = false").
		Order("created_at").
		Find(&categories).Error; err != nil {
		log.Printf("[ERROR] list work categories: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種区分の取得に失敗しました。")
	}
	return helper.Success(c, "OK", categories)
}

// POST /work-categories — same normalized name revives a deleted row.
func (ctrl *WorkTypeController) CreateCategory(c *fiber.Ctx) error {
	var req dto.CreateWorkCategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return helper.Error(c, fiber.StatusBadRequest, "工種区分名が必要です。")
	}

	var all []model.WorkCategoryModel
	if err := ctrl.DB.Find(&all).Error; err != nil {
		log.Printf("[ERROR] load work categories: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種区分の登録に失敗しました。")
	}
	key := nameindex.NormalizeKey(name)
	for i := range all {
		if nameindex.NormalizeKey(all[i].Name) != key {
			continue
		}
		if !all[i].IDDeleted {
			return helper.Error(c, fiber.StatusConflict, "同名の工種区分が既に登録されています。")
		}
		all[i].IDDeleted = false
		all[i].DeletedAt = nil
		all[i].Name = name
		if err := ctrl.DB.Save(&all[i]).Error; err != nil {
			log.Printf("[ERROR] revive work category: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "工種区分の登録に失敗しました。")
		}
		return helper.Success(c, "工種区分を復元しました。", all[i])
	}

	category := model.WorkCategoryModel{Name: name}
	if err := ctrl.DB.Create(&category).Error; err != nil {
		log.Printf("[ERROR] create work category: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種区分の登録に失敗しました。")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "工種区分を登録しました。", category)
}

// DELETE /work-categories/:id — soft delete; its types go with it.
func (ctrl *WorkTypeController) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	now := time.Now()
	err = ctrl.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.WorkCategoryModel{}).
			Where("id = ? AND id_deleted = false", id).
			Updates(map[string]interface{}{"id_deleted": true, "deleted_at": now})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return tx.Model(&model.WorkTypeModel{}).
			Where("category_id = ? AND id_deleted = false", id).
			Updates(map[string]interface{}{"id_deleted": true, "deleted_at": now}).Error
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "工種区分が見つかりません。")
		}
		log.Printf("[ERROR] delete work category: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種区分の削除に失敗しました。")
	}
	return helper.Success(c, "工種区分を削除しました。", nil)
}

// GET /work-types?category_id=
func (ctrl *WorkTypeController) ListTypes(c *fiber.Ctx) error {
	query := ctrl.DB.Preload("Category").Where("id_deleted = false").Order("created_at")
	if raw := c.Query("category_id"); raw != "" {
		categoryID, err := uuid.Parse(raw)
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, "category_id が不正です。")
		}
		query = query.Where("category_id = ?", categoryID)
	}

	var types []model.WorkTypeModel
	if err := query.Find(&types).Error; err != nil {
		log.Printf("[ERROR] list work types: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種の取得に失敗しました。")
	}
	return helper.Success(c, "OK", types)
}

// POST /work-types — same name in the same category revives a deleted row.
func (ctrl *WorkTypeController) CreateType(c *fiber.Ctx) error {
	var req dto.CreateWorkTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return helper.Error(c, fiber.StatusBadRequest, "工種名が必要です。")
	}
	var categoryID *uuid.UUID
	if req.CategoryID != nil {
		id := uuid.MustParse(*req.CategoryID)
		categoryID = &id
	}

	var all []model.WorkTypeModel
	if err := ctrl.DB.Find(&all).Error; err != nil {
		log.Printf("[ERROR] load work types: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種の登録に失敗しました。")
	}
	key := nameindex.NormalizeKey(name)
	for i := range all {
		if nameindex.NormalizeKey(all[i].Name) != key || !sameCategory(all[i].CategoryID, categoryID) {
			continue
		}
		if !all[i].IDDeleted {
			return helper.Error(c, fiber.StatusConflict, "同名の工種が既に登録されています。")
		}
		all[i].IDDeleted = false
		all[i].DeletedAt = nil
		all[i].Name = name
		if err := ctrl.DB.Save(&all[i]).Error; err != nil {
			log.Printf("[ERROR] revive work type: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "工種の登録に失敗しました。")
		}
		return helper.Success(c, "工種を復元しました。", all[i])
	}

	workType := model.WorkTypeModel{Name: name, CategoryID: categoryID}
	if err := ctrl.DB.Create(&workType).Error; err != nil {
		log.Printf("[ERROR] create work type: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種の登録に失敗しました。")
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "工種を登録しました。", workType)
}

func sameCategory(a, b *uuid.UUID) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// PATCH /work-types/:id
func (ctrl *WorkTypeController) UpdateType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	var req dto.UpdateWorkTypeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var workType model.WorkTypeModel
	if err := ctrl.DB.Where("id = ? AND id_deleted = false", id).First(&workType).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return helper.Error(c, fiber.StatusNotFound, "工種が見つかりません。")
		}
		log.Printf("[ERROR] load work type: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種の更新に失敗しました。")
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return helper.Error(c, fiber.StatusBadRequest, "工種名が必要です。")
		}
		workType.Name = name
	}
	if req.CategoryID != nil {
		categoryID := uuid.MustParse(*req.CategoryID)
		workType.CategoryID = &categoryID
	}

	if err := ctrl.DB.Save(&workType).Error; err != nil {
		log.Printf("[ERROR] update work type: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "工種の更新に失敗しました。")
	}
	return helper.Success(c, "工種を更新しました。", workType)
}

// DELETE /work-types/:id
func (ctrl *WorkTypeController) DeleteType(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.WorkTypeModel{}).
		Where("id = ? AND id_deleted = false", id).
		Updates(map[string]interface{}{"id_deleted": true, "deleted_at": now})
	if res.Error != nil {
		log.Printf("[ERROR] delete work type: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "工種の削除に失敗しました。")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "工種が見つかりません。")
	}
	return helper.Success(c, "工種を削除しました。", nil)
}
