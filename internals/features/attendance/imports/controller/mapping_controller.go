package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

// Saved mapping tables are per user.

// GET /imports/mappings
func (ctrl *ImportController) ListMappings(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "ログインが必要です。")
	}

	var mappings []model.ImportMappingModel
	if err := ctrl.DB.
		Where("user_id = ?", userID).
		Order("updated_at DESC NULLS LAST, created_at DESC").
		Find(&mappings).Error; err != nil {
		log.Printf("[ERROR] list mappings: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "マッピングの取得に失敗しました。")
	}
	return helper.Success(c, "OK", mappings)
}

// POST /imports/mappings — upsert by (user, name).
func (ctrl *ImportController) SaveMapping(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "ログインが必要です。")
	}

	var req dto.SaveMappingRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	payload := datatypes.JSONMap{}
	for k, v := range req.Mappings {
		payload[k] = v
	}

	var existing model.ImportMappingModel
	err = ctrl.DB.Where("user_id = ? AND name = ?", userID, req.Name).First(&existing).Error
	switch {
	case err == nil:
		existing.Mappings = payload
		if err := ctrl.DB.Save(&existing).Error; err != nil {
			log.Printf("[ERROR] update mapping: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "マッピングの保存に失敗しました。")
		}
		return helper.Success(c, "マッピングを保存しました。", existing)
	case errors.Is(err, gorm.ErrRecordNotFound):
		mapping := model.ImportMappingModel{
			UserID:   userID,
			Name:     req.Name,
			Mappings: payload,
		}
		if err := ctrl.DB.Create(&mapping).Error; err != nil {
			log.Printf("[ERROR] create mapping: %v", err)
			return helper.Error(c, fiber.StatusInternalServerError, "マッピングの保存に失敗しました。")
		}
		return helper.SuccessWithCode(c, fiber.StatusCreated, "マッピングを保存しました。", mapping)
	default:
		log.Printf("[ERROR] load mapping: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "マッピングの保存に失敗しました。")
	}
}

// DELETE /imports/mappings/:id
func (ctrl *ImportController) DeleteMapping(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "ログインが必要です。")
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "id が不正です。")
	}

	res := ctrl.DB.Where("id = ? AND user_id = ?", id, userID).Delete(&model.ImportMappingModel{})
	if res.Error != nil {
		log.Printf("[ERROR] delete mapping: %v", res.Error)
		return helper.Error(c, fiber.StatusInternalServerError, "マッピングの削除に失敗しました。")
	}
	if res.RowsAffected == 0 {
		return helper.Error(c, fiber.StatusNotFound, "マッピングが見つかりません。")
	}
	return helper.Success(c, "マッピングを削除しました。", nil)
}
