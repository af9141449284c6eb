package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
)

var (
	testProject = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	workerA     = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	workerB     = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	nexusU      = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func storedRosterEntry(id string, workerID uuid.UUID) entryModel.AttendanceEntryModel {
	return entryModel.AttendanceEntryModel{
		ID:        uuid.MustParse(id),
		EntryDate: "2025-01-10",
		ProjectID: testProject,
		WorkerID:  &workerID,
	}
}

func TestBuildPlanEmptyDesiredClearsDay(t *testing.T) {
	plan, err := BuildPlan("2025-01-10", testProject, nil, nil, "admin")
	require.NoError(t, err)
	assert.True(t, plan.ClearDay)

	// placeholder-only submissions clear too
	plan, err = BuildPlan("2025-01-10", testProject,
		[]DesiredRow{{}, {Memo: "note"}}, nil, "admin")
	require.NoError(t, err)
	assert.True(t, plan.ClearDay)
}

func TestBuildPlanRejectsInvalidWorkerID(t *testing.T) {
	_, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{Roster: &RosterRow{WorkerID: "not-a-uuid"}},
		{Roster: &RosterRow{WorkerID: workerA.String()}},
		{Roster: &RosterRow{WorkerID: "not-a-uuid"}},
	}, nil, "admin")

	var invalid *InvalidWorkerIDError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, []string{"not-a-uuid"}, invalid.IDs)
}

func TestBuildPlanDedupLastWins(t *testing.T) {
	wt := uuid.New().String()
	plan, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{Roster: &RosterRow{WorkerID: workerA.String()}},
		{Roster: &RosterRow{WorkerID: workerA.String()}, WorkTypeID: wt},
	}, nil, "admin")
	require.NoError(t, err)

	require.Len(t, plan.Roster, 1)
	require.NotNil(t, plan.Roster[0].WorkTypeID)
	assert.Equal(t, wt, plan.Roster[0].WorkTypeID.String())
}

func TestBuildPlanResubmitIsIdempotent(t *testing.T) {
	stored := storedRosterEntry("55555555-5555-5555-5555-555555555555", workerA)
	plan, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{LoadedEntryID: stored.ID.String(), Roster: &RosterRow{WorkerID: workerA.String()}},
	}, []entryModel.AttendanceEntryModel{stored}, "admin")
	require.NoError(t, err)

	assert.Empty(t, plan.DeleteIDs)
	assert.Len(t, plan.Roster, 1)
	assert.False(t, plan.ClearDay)
}

func TestBuildPlanDeletesDroppedAndChangedRows(t *testing.T) {
	kept := storedRosterEntry("55555555-5555-5555-5555-555555555555", workerA)
	dropped := storedRosterEntry("66666666-6666-6666-6666-666666666666", workerB)

	// workerB's row is gone; workerA's row changed to another worker
	plan, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{LoadedEntryID: kept.ID.String(), Roster: &RosterRow{WorkerID: workerB.String()}},
	}, []entryModel.AttendanceEntryModel{kept, dropped}, "admin")
	require.NoError(t, err)

	assert.ElementsMatch(t, []uuid.UUID{kept.ID, dropped.ID}, plan.DeleteIDs)
	assert.Len(t, plan.Roster, 1)
}

func TestBuildPlanClassChangeDeletes(t *testing.T) {
	stored := storedRosterEntry("55555555-5555-5555-5555-555555555555", workerA)

	// the loaded roster row came back as an external row
	plan, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{
			LoadedEntryID: stored.ID.String(),
			External:      &ExternalRow{NexusUserID: nexusU.String(), DisplayName: "山田太郎"},
		},
	}, []entryModel.AttendanceEntryModel{stored}, "admin")
	require.NoError(t, err)

	assert.Equal(t, []uuid.UUID{stored.ID}, plan.DeleteIDs)
	require.Len(t, plan.External, 1)
	require.NotNil(t, plan.External[0].WorkTypeText)
	assert.Equal(t, "ネクサス / 山田太郎", *plan.External[0].WorkTypeText)
	assert.Equal(t, nexusU, *plan.External[0].NexusUserID)
}

func TestBuildPlanExternalMemoChangeDeletes(t *testing.T) {
	text := "ネクサス / 山田太郎 / 午前のみ"
	stored := entryModel.AttendanceEntryModel{
		ID:           uuid.MustParse("77777777-7777-7777-7777-777777777777"),
		EntryDate:    "2025-01-10",
		ProjectID:    testProject,
		NexusUserID:  &nexusU,
		WorkTypeText: &text,
	}

	// unchanged resubmit keeps the row
	plan, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{
			LoadedEntryID: stored.ID.String(),
			External:      &ExternalRow{NexusUserID: nexusU.String(), DisplayName: "山田太郎", Memo: "午前のみ"},
		},
	}, []entryModel.AttendanceEntryModel{stored}, "admin")
	require.NoError(t, err)
	assert.Empty(t, plan.DeleteIDs)

	// memo edit replaces it
	plan, err = BuildPlan("2025-01-10", testProject, []DesiredRow{
		{
			LoadedEntryID: stored.ID.String(),
			External:      &ExternalRow{NexusUserID: nexusU.String(), DisplayName: "山田太郎", Memo: "終日"},
		},
	}, []entryModel.AttendanceEntryModel{stored}, "admin")
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{stored.ID}, plan.DeleteIDs)
}

func TestBuildPlanRosterMemoStored(t *testing.T) {
	plan, err := BuildPlan("2025-01-10", testProject, []DesiredRow{
		{Roster: &RosterRow{WorkerID: workerA.String()}, Memo: "  手直し "},
	}, nil, "admin")
	require.NoError(t, err)

	require.Len(t, plan.Roster, 1)
	require.NotNil(t, plan.Roster[0].WorkTypeText)
	assert.Equal(t, "手直し", *plan.Roster[0].WorkTypeText)
	assert.Equal(t, "admin", plan.Roster[0].CreatedBy)
}
