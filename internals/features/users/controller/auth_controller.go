package controller

import (
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/constants"
	guestlinkService "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/service"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/users/dto"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/users/model"
	helper "github.com/tfunabashi1173-jpg/nexus-worklog/internals/helpers"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/middlewares/auth"
)

type AuthController struct {
	DB       *gorm.DB
	Validate *validator.Validate
	Guests   *guestlinkService.GuestLinkService
}

func NewAuthController(db *gorm.DB, v *validator.Validate) *AuthController {
	return &AuthController{DB: db, Validate: v, Guests: guestlinkService.NewGuestLinkService(db)}
}

// POST /auth/login
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("username = ? AND is_active = true", req.Username).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.Error(c, fiber.StatusUnauthorized, "ユーザー名またはパスワードが正しくありません。")
		}
		log.Printf("[ERROR] load user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ログインに失敗しました。")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, "ユーザー名またはパスワードが正しくありません。")
	}

	username := user.Username
	claims := auth.SessionClaims{
		UserID:   user.UserID.String(),
		Username: &username,
		Role:     user.Role,
	}
	if err := auth.IssueSessionCookie(c, claims); err != nil {
		log.Printf("[ERROR] issue session: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ログインに失敗しました。")
	}
	return helper.Success(c, "ログインしました。", ctrl.sessionResponse(&claims))
}

// POST /auth/guest — exchanges a live guest link token for a session.
func (ctrl *AuthController) GuestLogin(c *fiber.Ctx) error {
	var req dto.GuestLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	link, err := ctrl.Guests.Lookup(req.Token)
	if err != nil {
		log.Printf("[ERROR] lookup guest link: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ログインに失敗しました。")
	}
	if link == nil {
		return helper.Error(c, fiber.StatusForbidden, "ゲストリンクが無効です。")
	}

	projectID := link.ProjectID.String()
	token := link.Token
	claims := auth.SessionClaims{
		Role:           constants.RoleGuest,
		GuestProjectID: &projectID,
		GuestToken:     &token,
		GuestCanEdit:   link.CanEditAttendance,
	}
	if err := auth.IssueSessionCookie(c, claims); err != nil {
		log.Printf("[ERROR] issue guest session: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "ログインに失敗しました。")
	}
	return helper.Success(c, "ゲストとしてログインしました。", ctrl.sessionResponse(&claims))
}

// POST /auth/logout
func (ctrl *AuthController) Logout(c *fiber.Ctx) error {
	auth.ClearSessionCookie(c)
	return helper.Success(c, "ログアウトしました。", nil)
}

// GET /auth/me
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	claims := auth.Session(c)
	if claims == nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrLoginNeeded)
	}
	return helper.Success(c, "OK", ctrl.sessionResponse(claims))
}

func (ctrl *AuthController) sessionResponse(claims *auth.SessionClaims) dto.SessionResponse {
	resp := dto.SessionResponse{
		UserID: claims.UserID,
		Role:   claims.Role,
	}
	if claims.Username != nil {
		resp.Username = *claims.Username
	}
	if claims.GuestProjectID != nil {
		resp.GuestProjectID = *claims.GuestProjectID
		resp.GuestCanEdit = claims.GuestCanEdit
	}
	if claims.UserID != "" {
		if userID, err := uuid.Parse(claims.UserID); err == nil {
			var setting model.UserSettingModel
			if err := ctrl.DB.Where("user_id = ?", userID).First(&setting).Error; err == nil &&
				setting.DefaultProjectID != nil {
				s := setting.DefaultProjectID.String()
				resp.DefaultProjectID = &s
			}
		}
	}
	return resp
}

// PATCH /auth/password
func (ctrl *AuthController) ChangePassword(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrLoginNeeded)
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	var user model.UserModel
	if err := ctrl.DB.Where("user_id = ?", userID).First(&user).Error; err != nil {
		log.Printf("[ERROR] load user: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "パスワードの変更に失敗しました。")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return helper.Error(c, fiber.StatusForbidden, "現在のパスワードが正しくありません。")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("[ERROR] hash password: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "パスワードの変更に失敗しました。")
	}
	if err := ctrl.DB.Model(&user).Update("password_hash", string(hash)).Error; err != nil {
		log.Printf("[ERROR] update password: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "パスワードの変更に失敗しました。")
	}
	return helper.Success(c, "パスワードを変更しました。", nil)
}

// PATCH /auth/settings
func (ctrl *AuthController) UpdateSettings(c *fiber.Ctx) error {
	userID, err := uuid.Parse(auth.UserID(c))
	if err != nil {
		return helper.Error(c, fiber.StatusUnauthorized, constants.ErrLoginNeeded)
	}

	var req dto.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "リクエストの形式が正しくありません。")
	}
	if err := ctrl.Validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	setting := model.UserSettingModel{UserID: userID}
	if req.DefaultProjectID != nil {
		id := uuid.MustParse(*req.DefaultProjectID)
		setting.DefaultProjectID = &id
	}

	if err := ctrl.DB.Save(&setting).Error; err != nil {
		log.Printf("[ERROR] save settings: %v", err)
		return helper.Error(c, fiber.StatusInternalServerError, "設定の保存に失敗しました。")
	}
	return helper.Success(c, "設定を保存しました。", setting)
}
