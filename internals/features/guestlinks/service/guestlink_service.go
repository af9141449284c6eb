package service

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/guestlinks/model"
)

const softDeleteRetentionDays = 30

type GuestLinkService struct {
	DB *gorm.DB
}

func NewGuestLinkService(db *gorm.DB) *GuestLinkService {
	return &GuestLinkService{DB: db}
}

func today() string {
	return time.Now().Format("2006-01-02")
}

// newToken returns 16 random bytes as an unpadded base64url string.
func newToken() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Prune removes links that are expired, or soft-deleted longer than the
// retention window. Called lazily from every read and write path.
func (s *GuestLinkService) Prune() error {
	now := today()
	if err := s.DB.
		Where("expires_at IS NOT NULL AND expires_at < ?", now).
		Delete(&model.GuestLinkModel{}).Error; err != nil {
		return err
	}
	cutoff := time.Now().AddDate(0, 0, -softDeleteRetentionDays)
	return s.DB.
		Where("is_deleted = true AND deleted_at IS NOT NULL AND deleted_at < ?", cutoff).
		Delete(&model.GuestLinkModel{}).Error
}

// Issue returns the newest live link for the project unchanged, revives
// the newest soft-deleted one when no live link exists, and only creates
// a fresh link (with a fresh token) when neither is found. The requested
// expiry and edit flag apply to new links only; existing reports true so
// the caller can tell the link was reused.
func (s *GuestLinkService) Issue(projectID uuid.UUID, expiresAt *string, canEdit bool) (link *model.GuestLinkModel, existing bool, err error) {
	if err := s.Prune(); err != nil {
		return nil, false, err
	}

	var live model.GuestLinkModel
	err = s.DB.Where("project_id = ? AND is_deleted = false", projectID).
		Order("created_at DESC").First(&live).Error
	switch {
	case err == nil:
		if live.Expired(today()) {
			if err := s.DB.Delete(&live).Error; err != nil {
				return nil, false, err
			}
		} else {
			return &live, true, nil
		}
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, err
	}

	var deleted model.GuestLinkModel
	err = s.DB.Where("project_id = ? AND is_deleted = true", projectID).
		Order("created_at DESC").First(&deleted).Error
	switch {
	case err == nil:
		deleted.IsDeleted = false
		deleted.DeletedAt = nil
		if err := s.DB.Save(&deleted).Error; err != nil {
			return nil, false, err
		}
		return &deleted, true, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return nil, false, err
	}

	token, err := newToken()
	if err != nil {
		return nil, false, err
	}
	fresh := model.GuestLinkModel{
		Token:             token,
		ProjectID:         projectID,
		ExpiresAt:         expiresAt,
		CanEditAttendance: canEdit,
	}
	if err := s.DB.Create(&fresh).Error; err != nil {
		return nil, false, err
	}
	return &fresh, false, nil
}

// Lookup resolves a live token. Soft-deleted and expired links do not
// resolve; expired ones are removed on sight.
func (s *GuestLinkService) Lookup(token string) (*model.GuestLinkModel, error) {
	var link model.GuestLinkModel
	if err := s.DB.Where("token = ? AND is_deleted = false", token).First(&link).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if link.Expired(today()) {
		if err := s.DB.Delete(&link).Error; err != nil {
			return nil, err
		}
		return nil, nil
	}
	return &link, nil
}

// CheckEditable reports whether the token allows writing attendance for
// the given project.
func (s *GuestLinkService) CheckEditable(token string, projectID uuid.UUID) (bool, error) {
	link, err := s.Lookup(token)
	if err != nil {
		return false, err
	}
	if link == nil {
		return false, nil
	}
	return link.ProjectID == projectID && link.CanEditAttendance, nil
}

func (s *GuestLinkService) List() ([]model.GuestLinkModel, error) {
	if err := s.Prune(); err != nil {
		return nil, err
	}
	var links []model.GuestLinkModel
	if err := s.DB.
		Where("is_deleted = false").
		Order("created_at DESC").
		Find(&links).Error; err != nil {
		return nil, err
	}
	return links, nil
}

// Revoke soft-deletes a link; the row stays for the retention window so
// the same token can be revived.
func (s *GuestLinkService) Revoke(token string) error {
	now := time.Now()
	res := s.DB.Model(&model.GuestLinkModel{}).
		Where("token = ? AND is_deleted = false", token).
		Updates(map[string]interface{}{"is_deleted": true, "deleted_at": now})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
