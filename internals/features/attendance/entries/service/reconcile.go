package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/memo"
)

// RosterRow names a roster worker. ContractorID may be empty when the
// form row inherited it from the worker record.
type RosterRow struct {
	ContractorID string
	WorkerID     string
}

// ExternalRow names an external (non-roster) person by nexus user id;
// DisplayName and Memo end up encoded into work_type_text.
type ExternalRow struct {
	NexusUserID string
	DisplayName string
	Memo        string
}

// DesiredRow is one submitted form row. At most one of Roster/External is
// set; rows with neither are placeholders and drop out of the plan.
// LoadedEntryID traces a row back to the stored entry it was loaded from.
type DesiredRow struct {
	LoadedEntryID string
	Roster        *RosterRow
	External      *ExternalRow
	WorkTypeID    string
	Memo          string // roster free memo
}

// InvalidWorkerIDError rejects a whole submission; no partial apply.
type InvalidWorkerIDError struct {
	IDs []string
}

func (e *InvalidWorkerIDError) Error() string {
	return fmt.Sprintf("worker_id が不正です: %s", strings.Join(e.IDs, ", "))
}

// Plan is the reconciled write set for one (site, date).
type Plan struct {
	ClearDay  bool
	DeleteIDs []uuid.UUID
	Roster    []entryModel.AttendanceEntryModel
	External  []entryModel.AttendanceEntryModel
}

// BuildPlan reconciles the submitted rows against the day's stored
// entries:
//
//  1. reject the batch when any worker id is malformed
//  2. dedup desired rows on their natural key, last write wins
//  3. mark stored entries for deletion when no surviving row traces back
//     to them, or the row that does changed identity class or key fields
//  4. turn the surviving rows into upserts split by identity class
//
// An entirely empty desired set means "clear the day".
func BuildPlan(entryDate string, projectID uuid.UUID, desired []DesiredRow, previous []entryModel.AttendanceEntryModel, createdBy string) (*Plan, error) {
	var invalid []string
	seenInvalid := map[string]struct{}{}
	for _, row := range desired {
		if row.Roster == nil || row.Roster.WorkerID == "" {
			continue
		}
		if _, err := uuid.Parse(row.Roster.WorkerID); err != nil {
			if _, dup := seenInvalid[row.Roster.WorkerID]; !dup {
				seenInvalid[row.Roster.WorkerID] = struct{}{}
				invalid = append(invalid, row.Roster.WorkerID)
			}
		}
	}
	if len(invalid) > 0 {
		return nil, &InvalidWorkerIDError{IDs: invalid}
	}

	// Placeholder rows keep their entry trace for the deletion pass but
	// never produce upserts.
	live := make([]DesiredRow, 0, len(desired))
	for _, row := range desired {
		if (row.Roster != nil && row.Roster.WorkerID != "") ||
			(row.External != nil && row.External.NexusUserID != "") {
			live = append(live, row)
		}
	}
	if len(live) == 0 {
		return &Plan{ClearDay: true}, nil
	}

	// Dedup on the natural key, later rows overwriting earlier ones.
	keyed := map[string]DesiredRow{}
	order := []string{}
	for _, row := range live {
		var key string
		if row.Roster != nil && row.Roster.WorkerID != "" {
			key = "worker:" + entryDate + ":" + projectID.String() + ":" + row.Roster.WorkerID
		} else {
			key = "nexus:" + entryDate + ":" + projectID.String() + ":" + row.External.NexusUserID
		}
		if _, ok := keyed[key]; !ok {
			order = append(order, key)
		}
		keyed[key] = row
	}

	plan := &Plan{}
	plan.DeleteIDs = deletions(desired, previous)

	for _, key := range order {
		row := keyed[key]
		entry := entryModel.AttendanceEntryModel{
			EntryDate: entryDate,
			ProjectID: projectID,
			CreatedBy: createdBy,
		}
		if row.WorkTypeID != "" {
			id, err := uuid.Parse(row.WorkTypeID)
			if err != nil {
				return nil, fmt.Errorf("work_type_id が不正です: %s", row.WorkTypeID)
			}
			entry.WorkTypeID = &id
		}

		if row.Roster != nil {
			workerID := uuid.MustParse(row.Roster.WorkerID)
			entry.WorkerID = &workerID
			if row.Roster.ContractorID != "" {
				contractorID, err := uuid.Parse(row.Roster.ContractorID)
				if err != nil {
					return nil, fmt.Errorf("contractor_id が不正です: %s", row.Roster.ContractorID)
				}
				entry.ContractorID = &contractorID
			}
			if text := strings.TrimSpace(row.Memo); text != "" {
				entry.WorkTypeText = &text
			}
			plan.Roster = append(plan.Roster, entry)
			continue
		}

		nexusID, err := uuid.Parse(row.External.NexusUserID)
		if err != nil {
			return nil, fmt.Errorf("nexus_user_id が不正です: %s", row.External.NexusUserID)
		}
		entry.NexusUserID = &nexusID
		text := memo.Encode(row.External.DisplayName, row.External.Memo)
		entry.WorkTypeText = &text
		plan.External = append(plan.External, entry)
	}

	return plan, nil
}

// deletions walks the stored entries and keeps the ids no current row
// still stands for. Rows are matched by their load trace, then compared
// on identity class and key fields.
func deletions(desired []DesiredRow, previous []entryModel.AttendanceEntryModel) []uuid.UUID {
	traced := map[string]DesiredRow{}
	for _, row := range desired {
		if row.LoadedEntryID != "" {
			traced[row.LoadedEntryID] = row
		}
	}

	var deleteIDs []uuid.UUID
	for _, prev := range previous {
		row, ok := traced[prev.ID.String()]
		if !ok {
			deleteIDs = append(deleteIDs, prev.ID)
			continue
		}

		wasExternal := prev.NexusUserID != nil
		isExternal := row.External != nil && row.External.NexusUserID != ""
		if wasExternal != isExternal {
			deleteIDs = append(deleteIDs, prev.ID)
			continue
		}

		if wasExternal {
			prevName, prevMemo := "", ""
			if prev.WorkTypeText != nil {
				prevName, prevMemo, _ = memo.Decode(*prev.WorkTypeText)
			}
			if prev.NexusUserID.String() != row.External.NexusUserID ||
				prevName != strings.TrimSpace(row.External.DisplayName) ||
				prevMemo != strings.TrimSpace(row.External.Memo) {
				deleteIDs = append(deleteIDs, prev.ID)
			}
			continue
		}

		prevWorker := ""
		if prev.WorkerID != nil {
			prevWorker = prev.WorkerID.String()
		}
		currWorker := ""
		if row.Roster != nil {
			currWorker = row.Roster.WorkerID
		}
		if prevWorker != currWorker {
			deleteIDs = append(deleteIDs, prev.ID)
		}
	}
	return deleteIDs
}
