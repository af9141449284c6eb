package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
)

func TestDedupePendingLastWins(t *testing.T) {
	workerID := uuid.New()
	first := pendingEntry{
		entry:     entryModel.AttendanceEntryModel{EntryDate: "2025-01-10", WorkerID: &workerID},
		dedupeKey: "2025-01-10::" + workerID.String(),
	}
	second := first
	second.entry.CreatedBy = "later"

	out := dedupePending([]pendingEntry{first, second})
	require.Len(t, out, 1)
	assert.Equal(t, "later", out[0].entry.CreatedBy)
}

func TestFilterInsertable(t *testing.T) {
	workerID := uuid.New()
	contractorID := uuid.New()
	text := "ネクサス / 田中三郎"

	resolved := pendingEntry{entry: entryModel.AttendanceEntryModel{WorkerID: &workerID}}
	external := pendingEntry{entry: entryModel.AttendanceEntryModel{WorkTypeText: &text}}
	missing := pendingEntry{
		entry:      entryModel.AttendanceEntryModel{ContractorID: &contractorID},
		workerName: "新人一郎",
	}

	out := filterInsertable([]pendingEntry{resolved, external, missing}, false)
	assert.Len(t, out, 2)

	// with create-missing the unresolved row stays for the patch pass
	out = filterInsertable([]pendingEntry{resolved, external, missing}, true)
	assert.Len(t, out, 3)
}

func TestPatchWorkerIDs(t *testing.T) {
	contractorID := uuid.New()
	workerID := uuid.New()
	idx := nameindex.NewWorkerIndex([]nameindex.WorkerRef{
		{ID: workerID.String(), Name: "新人一郎", ContractorID: contractorID.String()},
	})

	pending := []pendingEntry{
		{
			entry:      entryModel.AttendanceEntryModel{EntryDate: "2025-01-10", ContractorID: &contractorID},
			workerName: "新人一郎",
		},
		{
			entry:      entryModel.AttendanceEntryModel{EntryDate: "2025-01-10", ContractorID: &contractorID},
			workerName: "未登録二郎",
		},
	}

	out := patchWorkerIDs(pending, idx)
	require.Len(t, out, 1)
	require.NotNil(t, out[0].entry.WorkerID)
	assert.Equal(t, workerID, *out[0].entry.WorkerID)
}
