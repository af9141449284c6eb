package service

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
)

type EntryService struct {
	DB *gorm.DB
}

func NewEntryService(db *gorm.DB) *EntryService {
	return &EntryService{DB: db}
}

// LoadDay returns the stored entries for one site and date with display
// relations resolved, in creation order.
func (s *EntryService) LoadDay(projectID uuid.UUID, entryDate string) ([]entryModel.AttendanceEntryModel, error) {
	var entries []entryModel.AttendanceEntryModel
	err := s.DB.
		Preload("Contractor").
		Preload("Worker").
		Preload("WorkType").
		Preload("NexusUser").
		Where("entry_date = ? AND project_id = ?", entryDate, projectID).
		Order("created_at").
		Find(&entries).Error
	return entries, err
}

// SaveDay reconciles the submitted rows against stored state and applies
// the plan. Deletes run before upserts inside one transaction, so an
// entry being replaced never collides with its successor on the natural
// key; resubmitting identical rows is a no-op.
func (s *EntryService) SaveDay(projectID uuid.UUID, entryDate string, desired []DesiredRow, createdBy string) error {
	previous, err := s.LoadDay(projectID, entryDate)
	if err != nil {
		return err
	}

	plan, err := BuildPlan(entryDate, projectID, desired, previous, createdBy)
	if err != nil {
		return err
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if plan.ClearDay {
			return tx.
				Where("entry_date = ? AND project_id = ?", entryDate, projectID).
				Delete(&entryModel.AttendanceEntryModel{}).Error
		}

		if len(plan.DeleteIDs) > 0 {
			if err := tx.
				Where("id IN ?", plan.DeleteIDs).
				Delete(&entryModel.AttendanceEntryModel{}).Error; err != nil {
				return err
			}
		}

		if len(plan.Roster) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "entry_date"}, {Name: "project_id"}, {Name: "worker_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"contractor_id", "work_type_id", "work_type_text", "created_by",
				}),
			}).Create(&plan.Roster).Error; err != nil {
				return err
			}
		}

		if len(plan.External) > 0 {
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "entry_date"}, {Name: "project_id"}, {Name: "nexus_user_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"work_type_id", "work_type_text", "created_by",
				}),
			}).Create(&plan.External).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// ClearDay removes every entry for one site and date.
func (s *EntryService) ClearDay(projectID uuid.UUID, entryDate string) error {
	return s.DB.
		Where("entry_date = ? AND project_id = ?", entryDate, projectID).
		Delete(&entryModel.AttendanceEntryModel{}).Error
}
