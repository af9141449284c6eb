package service

import (
	"strings"

	"github.com/google/uuid"

	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
	workerModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/model"
)

// Duplicate handling modes for the roster import.
const (
	WorkerModeSkip   = "skip"
	WorkerModeRevive = "revive"
)

const rosterHeaderLabel = "業者名"

type WorkerImportOptions struct {
	Mode     string
	Mappings map[string]string
	Execute  bool
}

type WorkerImportSummary struct {
	Planned          int `json:"planned"`
	Inserted         int `json:"inserted"`
	Restored         int `json:"restored"`
	DuplicateSkipped int `json:"duplicate_skipped"`
	EmptySkipped     int `json:"empty_skipped"`

	MappingSkipped     []string            `json:"mapping_skipped"`
	MissingContractors []MissingContractor `json:"missing_contractors"`

	Executed bool `json:"executed"`
}

// ImportWorkers loads a roster sheet: first column the contractor
// label, the cells after it the worker names. A name already on the
// roster counts as duplicate; in revive mode a soft-deleted duplicate
// is restored instead.
func (s *ImportService) ImportWorkers(rows [][]string, opt WorkerImportOptions) (*WorkerImportSummary, error) {
	summary := &WorkerImportSummary{}
	mode := opt.Mode
	if mode == "" {
		mode = WorkerModeSkip
	}

	idx, _, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	overrides := NormalizeOverrides(opt.Mappings)

	// soft-deleted workers are part of the duplicate check here, so the
	// snapshot index (live only) is not enough
	var all []workerModel.WorkerModel
	if err := s.DB.Find(&all).Error; err != nil {
		return nil, err
	}
	existing := map[string]workerModel.WorkerModel{}
	for _, w := range all {
		existing[w.ContractorID.String()+"::"+nameindex.NormalizeKey(w.Name)] = w
	}

	missing := map[string][]string{}
	missingOrder := []string{}
	var toInsert []workerModel.WorkerModel
	var toRevive []uuid.UUID
	batchSeen := map[string]struct{}{}

	for i, row := range rows {
		if i < headerSkipRows || len(row) == 0 {
			continue
		}
		label := strings.TrimSpace(row[0])
		if label == "" || label == rosterHeaderLabel {
			continue
		}

		resolution := ResolveContractor(label, overrides, idx)
		switch resolution.Kind {
		case ResolvedSkip, ResolvedExternal:
			summary.MappingSkipped = append(summary.MappingSkipped, label)
			continue
		case Unresolved:
			if _, seen := missing[label]; !seen {
				missing[label] = resolution.Suggestions
				missingOrder = append(missingOrder, label)
			}
			continue
		}
		contractorID := uuid.MustParse(resolution.ContractorID)

		for _, cell := range row[1:] {
			name := strings.TrimSpace(cell)
			if name == "" {
				summary.EmptySkipped++
				continue
			}
			key := resolution.ContractorID + "::" + nameindex.NormalizeKey(name)
			if _, dup := batchSeen[key]; dup {
				summary.DuplicateSkipped++
				continue
			}
			batchSeen[key] = struct{}{}

			if w, dup := existing[key]; dup {
				if mode == WorkerModeRevive && w.IDDeleted {
					toRevive = append(toRevive, w.ID)
					continue
				}
				summary.DuplicateSkipped++
				continue
			}
			toInsert = append(toInsert, workerModel.WorkerModel{
				Name:         name,
				ContractorID: contractorID,
			})
		}
	}

	for _, label := range missingOrder {
		summary.MissingContractors = append(summary.MissingContractors, MissingContractor{
			Label:       label,
			Suggestions: missing[label],
		})
	}
	summary.Planned = len(toInsert)
	summary.Restored = len(toRevive)

	if !opt.Execute {
		return summary, nil
	}

	if len(toInsert) > 0 {
		if err := s.DB.CreateInBatches(toInsert, insertChunkSize).Error; err != nil {
			return nil, err
		}
		summary.Inserted = len(toInsert)
	}
	if len(toRevive) > 0 {
		if err := s.DB.Model(&workerModel.WorkerModel{}).
			Where("id IN ?", toRevive).
			Updates(map[string]interface{}{"id_deleted": false, "deleted_at": nil}).Error; err != nil {
			return nil, err
		}
	}
	summary.Executed = true
	return summary, nil
}
