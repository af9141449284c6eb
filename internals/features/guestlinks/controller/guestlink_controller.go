package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/configs"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/service"
	sitesModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
)

type GuestLinkController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Service  *service.GuestLinkService
}

func NewGuestLinkController(db *gorm.DB, v *validator.Validate) *GuestLinkController {
	return &GuestLinkController{DB: db, Validate: v, Service: service.NewGuestLinkService(db)}
}

func (ctrl *GuestLinkController) guestURL(token string) string {
	return configs.AppBaseURL + "/guest/" + token
}

func (ctrl *GuestLinkController) toResponse(link *model.GuestLinkModel) dto.GuestLinkResponse {
	resp := dto.GuestLinkResponse{
		Token:             link.Token,
		URL:               ctrl.guestURL(link.Token),
		ProjectID:         link.ProjectID.String(),
		ExpiresAt:         link.ExpiresAt,
		CanEditAttendance: link.CanEditAttendance,
	}
	var site sitesModel.SiteModel
	if err := ctrl.DB.Select("site_name").Where("project_id = ?", link.ProjectID).First(&site).Error; err == nil {
		resp.SiteName = site.SiteName
	}
	return resp
}

// POST /guest-links
func (ctrl *GuestLinkController) Issue(c *fiber.Ctx) error {
	var req dto.IssueGuestLinkRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	projectID, err := uuid.Parse(req.ProjectID)
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "project_id が不正です。")
	}

	link, existing, err := ctrl.Service.Issue(projectID, req.ExpiresAt, req.CanEditAttendance)
	if err != nil {
		log.Printf("[ERROR] issue guest link: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ゲストリンクの発行に失敗しました。")
	}
	resp := ctrl.toResponse(link)
	resp.Existing = existing
	return helper.Success(c, "ゲストリンクを発行しました。", resp)
}

// GET /guest-links
func (ctrl *GuestLinkController) List(c *fiber.Ctx) error {
	links, err := ctrl.Service.List()
	if err != nil {
		log.Printf("[ERROR] list guest links: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ゲストリンクの取得に失敗しました。")
	}
	out := make([]dto.GuestLinkResponse, 0, len(links))
	for i := range links {
		out = append(out, ctrl.toResponse(&links[i]))
	}
	return helper.Success(c, "OK", out)
}

// DELETE /guest-links/:token
func (ctrl *GuestLinkController) Revoke(c *fiber.Ctx) error {
	token := c.Params("token")
	if token == "" {
		return helper.Error(c, fiber.StatusBadRequest, "token が必要です。")
	}
	if err := ctrl.Service.Revoke(token); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusNotFound, "ゲストリンクが見つかりません。")
		}
		log.Printf("[ERROR] revoke guest link: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ゲストリンクの削除に失敗しました。")
	}
	return helper.Success(c, "ゲストリンクを削除しました。", nil)
}
