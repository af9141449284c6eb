package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	contractorModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/model"
	workerModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/model"
)

var (
	aggProject = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	aggC1      = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	aggW1      = uuid.MustParse("33333333-3333-3333-3333-333333333333")
	aggW2      = uuid.MustParse("44444444-4444-4444-4444-444444444444")
)

func rosterEntry(date string, workerID uuid.UUID, workerName string) entryModel.AttendanceEntryModel {
	return entryModel.AttendanceEntryModel{
		ID:           uuid.New(),
		EntryDate:    date,
		ProjectID:    aggProject,
		ContractorID: &aggC1,
		WorkerID:     &workerID,
		Contractor:   &contractorModel.ContractorModel{PartnerID: aggC1, Name: "株式会社田中建設"},
		Worker:       &workerModel.WorkerModel{ID: workerID, Name: workerName},
	}
}

func externalEntry(date, displayName string) entryModel.AttendanceEntryModel {
	nexusID := uuid.New()
	text := "ネクサス / " + displayName
	return entryModel.AttendanceEntryModel{
		ID:           uuid.New(),
		EntryDate:    date,
		ProjectID:    aggProject,
		NexusUserID:  &nexusID,
		WorkTypeText: &text,
	}
}

func TestContractorTotalsManDays(t *testing.T) {
	entries := []entryModel.AttendanceEntryModel{
		rosterEntry("2025-01-10", aggW1, "山田太郎"),
		rosterEntry("2025-01-10", aggW2, "佐藤次郎"),
		rosterEntry("2025-01-11", aggW1, "山田太郎"),
		// duplicate (date, worker): one man-day
		rosterEntry("2025-01-11", aggW1, "山田太郎"),
		externalEntry("2025-01-10", "田中三郎"),
		externalEntry("2025-01-11", "田中三郎"),
	}

	totals := ContractorTotals(entries)
	require.Len(t, totals, 2)

	// nexus bucket pinned first
	assert.Equal(t, NexusBucketKey, totals[0].Key)
	assert.Equal(t, "ネクサス", totals[0].Name)
	assert.Equal(t, 2, totals[0].ManDays)

	assert.Equal(t, aggC1.String(), totals[1].Key)
	assert.Equal(t, "田中建設", totals[1].Name)
	assert.Equal(t, 3, totals[1].ManDays)
}

func TestWorkerRows(t *testing.T) {
	entries := []entryModel.AttendanceEntryModel{
		rosterEntry("2025-01-10", aggW1, "山田太郎"),
		rosterEntry("2025-01-11", aggW1, "山田太郎"),
		externalEntry("2025-01-10", "田中三郎"),
	}

	rows := WorkerRows(entries)
	require.Len(t, rows, 2)

	// nexus person first
	assert.Equal(t, "ネクサス", rows[0].ContractorName)
	assert.Equal(t, "田中三郎", rows[0].WorkerName)
	assert.Equal(t, []string{"2025-01-10"}, SortedDates(rows[0]))

	assert.Equal(t, "田中建設", rows[1].ContractorName)
	assert.Equal(t, "山田太郎", rows[1].WorkerName)
	assert.Equal(t, []string{"2025-01-10", "2025-01-11"}, SortedDates(rows[1]))
}

func TestNexusPeriodTotals(t *testing.T) {
	rows := WorkerRows([]entryModel.AttendanceEntryModel{
		externalEntry("2025-01-10", "田中三郎"),
		externalEntry("2025-01-11", "田中三郎"),
		externalEntry("2025-01-10", "高橋四郎"),
		rosterEntry("2025-01-10", aggW1, "山田太郎"),
	})

	totals := NexusPeriodTotals(rows)
	require.Len(t, totals, 2)
	for _, total := range totals {
		assert.Equal(t, NexusBucketKey, total.Key)
	}
	byName := map[string]int{}
	for _, total := range totals {
		byName[total.Name] = total.ManDays
	}
	assert.Equal(t, 2, byName["田中三郎"])
	assert.Equal(t, 1, byName["高橋四郎"])
}

func TestMonthRange(t *testing.T) {
	start, end, days, err := MonthRange("2025-01")
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", start)
	assert.Equal(t, "2025-01-31", end)
	assert.Equal(t, 31, days)

	// leap February
	_, end, days, err = MonthRange("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29", end)
	assert.Equal(t, 29, days)

	_, _, _, err = MonthRange("2025-13")
	assert.Error(t, err)
}

func TestMonthColumns(t *testing.T) {
	columns, err := MonthColumns("2025-01")
	require.NoError(t, err)
	require.Len(t, columns, 31)

	// 2025-01-01 is a Wednesday
	assert.Equal(t, "2025-01-01", columns[0].Date)
	assert.Equal(t, 1, columns[0].Day)
	assert.Equal(t, "水", columns[0].Weekday)
	assert.Equal(t, "日", columns[4].Weekday) // Jan 5
}

func TestDetailRowsFilters(t *testing.T) {
	memoA := "仕上げ"
	memoB := "仕上げ 手直し"
	e1 := rosterEntry("2025-01-10", aggW1, "山田太郎")
	e1.WorkTypeText = &memoA
	e2 := rosterEntry("2025-01-11", aggW2, "佐藤次郎")
	e2.WorkTypeText = &memoB
	e3 := externalEntry("2025-01-10", "田中三郎")

	entries := []entryModel.AttendanceEntryModel{e1, e2, e3}

	// no filter: everything, date ascending
	rows := DetailRows(entries, DetailFilter{})
	require.Len(t, rows, 3)
	assert.Equal(t, "2025-01-10", rows[0].EntryDate)

	// memo include + exclude
	rows = DetailRows(entries, DetailFilter{MemoQuery: "仕上げ -手直し"})
	require.Len(t, rows, 1)
	assert.Equal(t, "山田太郎", rows[0].WorkerName)

	// contractor bucket
	rows = DetailRows(entries, DetailFilter{ContractorKey: NexusBucketKey})
	require.Len(t, rows, 1)
	assert.Equal(t, "田中三郎", rows[0].WorkerName)

	// worker name
	rows = DetailRows(entries, DetailFilter{WorkerName: "佐藤次郎"})
	require.Len(t, rows, 1)
	assert.Equal(t, "仕上げ 手直し", rows[0].Memo)
}

func TestDetailRowsExternalMemoDecoded(t *testing.T) {
	text := "ネクサス / 田中三郎 / 午前のみ"
	e1 := externalEntry("2025-01-10", "田中三郎")
	e1.WorkTypeText = &text
	e2 := externalEntry("2025-01-11", "高橋四郎") // no free memo
	entries := []entryModel.AttendanceEntryModel{e1, e2}

	// the marker and display name live in the memo column but are not memo
	rows := DetailRows(entries, DetailFilter{MemoQuery: "ネクサス"})
	assert.Empty(t, rows)
	rows = DetailRows(entries, DetailFilter{MemoQuery: "田中"})
	assert.Empty(t, rows)

	rows = DetailRows(entries, DetailFilter{MemoQuery: "午前"})
	require.Len(t, rows, 1)
	assert.Equal(t, "田中三郎", rows[0].WorkerName)

	rows = DetailRows(entries, DetailFilter{})
	require.Len(t, rows, 2)
	assert.Equal(t, "午前のみ", rows[0].Memo)
	assert.Equal(t, "", rows[1].Memo)
}
