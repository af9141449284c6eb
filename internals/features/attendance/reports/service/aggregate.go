package service

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/memo"
)

// NexusBucketKey is the sentinel contractor bucket for external rows.
const NexusBucketKey = "__NEXUS__"

var WeekdayLabels = []string{"日", "月", "火", "水", "木", "金", "土"}

type ContractorTotal struct {
	Key     string `json:"key"`
	Name    string `json:"name"`
	ManDays int    `json:"man_days"`
}

// WorkerRow is one line of the attendance matrix: one person in one
// contractor bucket with the distinct dates they were on site.
type WorkerRow struct {
	ContractorName string
	WorkerName     string
	Dates          map[string]struct{}
}

type DetailRow struct {
	EntryDate      string `json:"entry_date"`
	ContractorName string `json:"contractor_name"`
	WorkerName     string `json:"worker_name"`
	CategoryName   string `json:"category_name"`
	WorkTypeName   string `json:"work_type_name"`
	Memo           string `json:"memo"`
}

func newCollator() *collate.Collator {
	return collate.New(language.Japanese)
}

func memoText(e *entryModel.AttendanceEntryModel) string {
	if e.WorkTypeText == nil {
		return ""
	}
	return *e.WorkTypeText
}

// bucketName resolves the contractor bucket display name for one entry:
// joined contractor (suffix-stripped), the nexus bucket when the memo
// decodes as external, or the dangling contractor id as-is. Empty when
// nothing applies.
func bucketName(e *entryModel.AttendanceEntryModel, nexusName string) string {
	if e.Contractor != nil {
		return e.Contractor.DisplayName()
	}
	if nexusName != "" {
		return memo.Marker
	}
	if e.ContractorID != nil {
		return e.ContractorID.String()
	}
	return ""
}

// ContractorTotals counts man-days per contractor bucket: distinct
// (date, worker) pairs for roster entries, distinct (date, display name)
// pairs for the nexus bucket. The nexus bucket is pinned first, the rest
// sorted by Japanese collation.
func ContractorTotals(entries []entryModel.AttendanceEntryModel) []ContractorTotal {
	type bucket struct {
		name    string
		dayKeys map[string]struct{}
	}
	buckets := map[string]*bucket{}
	order := []string{}

	for i := range entries {
		e := &entries[i]
		text := memoText(e)
		hasMarker := strings.Contains(text, memo.Marker)

		var key, name string
		switch {
		case e.Contractor != nil:
			key = e.Contractor.PartnerID.String()
			name = e.Contractor.DisplayName()
		case hasMarker:
			key = NexusBucketKey
			name = memo.Marker
		case e.ContractorID != nil:
			key = e.ContractorID.String()
			name = key
		default:
			continue
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{name: name, dayKeys: map[string]struct{}{}}
			buckets[key] = b
			order = append(order, key)
		}

		if key == NexusBucketKey {
			if nexusName := memo.ParseName(text); nexusName != "" {
				b.dayKeys[e.EntryDate+"::"+nexusName] = struct{}{}
			}
			continue
		}
		if e.WorkerID != nil {
			b.dayKeys[e.EntryDate+"::"+e.WorkerID.String()] = struct{}{}
		}
	}

	totals := make([]ContractorTotal, 0, len(order))
	for _, key := range order {
		totals = append(totals, ContractorTotal{
			Key:     key,
			Name:    buckets[key].name,
			ManDays: len(buckets[key].dayKeys),
		})
	}
	cl := newCollator()
	sort.SliceStable(totals, func(i, j int) bool {
		if (totals[i].Key == NexusBucketKey) != (totals[j].Key == NexusBucketKey) {
			return totals[i].Key == NexusBucketKey
		}
		return cl.CompareString(totals[i].Name, totals[j].Name) < 0
	})
	return totals
}

// WorkerRows groups entries by (contractor bucket, display name) with the
// distinct dates present, sorted nexus bucket first, then contractor and
// worker names by Japanese collation.
func WorkerRows(entries []entryModel.AttendanceEntryModel) []WorkerRow {
	rows := map[string]*WorkerRow{}
	for i := range entries {
		e := &entries[i]
		nexusName := memo.ParseName(memoText(e))
		contractorName := bucketName(e, nexusName)

		workerName := ""
		switch {
		case e.Worker != nil:
			workerName = e.Worker.Name
		case nexusName != "":
			workerName = nexusName
		case e.WorkerID != nil:
			workerName = e.WorkerID.String()
		}
		if contractorName == "" || workerName == "" {
			continue
		}

		key := contractorName + "::" + workerName
		row, ok := rows[key]
		if !ok {
			row = &WorkerRow{
				ContractorName: contractorName,
				WorkerName:     workerName,
				Dates:          map[string]struct{}{},
			}
			rows[key] = row
		}
		row.Dates[e.EntryDate] = struct{}{}
	}

	out := make([]WorkerRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, *row)
	}
	cl := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		iNexus := out[i].ContractorName == memo.Marker
		jNexus := out[j].ContractorName == memo.Marker
		if iNexus != jNexus {
			return iNexus
		}
		if c := cl.CompareString(out[i].ContractorName, out[j].ContractorName); c != 0 {
			return c < 0
		}
		return cl.CompareString(out[i].WorkerName, out[j].WorkerName) < 0
	})
	return out
}

// NexusPeriodTotals is the period view: per-person distinct-day counts
// for the nexus bucket only.
func NexusPeriodTotals(rows []WorkerRow) []ContractorTotal {
	totals := []ContractorTotal{}
	for _, row := range rows {
		if row.ContractorName != memo.Marker {
			continue
		}
		totals = append(totals, ContractorTotal{
			Key:     NexusBucketKey,
			Name:    row.WorkerName,
			ManDays: len(row.Dates),
		})
	}
	return totals
}

// MonthRange expands "2006-01" into its first and last date plus the day
// count.
func MonthRange(monthValue string) (start, end string, days int, err error) {
	t, err := time.Parse("2006-01", monthValue)
	if err != nil {
		return "", "", 0, fmt.Errorf("月の指定が不正です: %s", monthValue)
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)
	return first.Format("2006-01-02"), last.Format("2006-01-02"), last.Day(), nil
}

type DayColumn struct {
	Date    string `json:"date"`
	Day     int    `json:"day"`
	Weekday string `json:"weekday"`
}

// MonthColumns builds one column per calendar day with its weekday label.
func MonthColumns(monthValue string) ([]DayColumn, error) {
	t, err := time.Parse("2006-01", monthValue)
	if err != nil {
		return nil, fmt.Errorf("月の指定が不正です: %s", monthValue)
	}
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	days := first.AddDate(0, 1, -1).Day()

	columns := make([]DayColumn, 0, days)
	for day := 1; day <= days; day++ {
		date := time.Date(t.Year(), t.Month(), day, 0, 0, 0, 0, time.UTC)
		columns = append(columns, DayColumn{
			Date:    date.Format("2006-01-02"),
			Day:     day,
			Weekday: WeekdayLabels[int(date.Weekday())],
		})
	}
	return columns, nil
}

// DetailFilter narrows the flat entry list. Empty fields match anything.
type DetailFilter struct {
	CategoryID    string
	WorkTypeID    string
	ContractorKey string // bucket key: partner id or NexusBucketKey
	WorkerName    string // display name
	MemoQuery     string
	MemoExact     bool
}

// DetailRows returns the filtered flat list sorted by date, contractor
// bucket, then worker name.
func DetailRows(entries []entryModel.AttendanceEntryModel, filter DetailFilter) []DetailRow {
	terms := ParseMemoTerms(filter.MemoQuery)

	out := []DetailRow{}
	for i := range entries {
		e := &entries[i]
		if filter.CategoryID != "" {
			if e.WorkType == nil || e.WorkType.CategoryID == nil ||
				e.WorkType.CategoryID.String() != filter.CategoryID {
				continue
			}
		}
		if filter.WorkTypeID != "" {
			if e.WorkTypeID == nil || e.WorkTypeID.String() != filter.WorkTypeID {
				continue
			}
		}

		// External rows carry "ネクサス / <name>" inside the memo column;
		// filtering and the 備考 output see only the free memo part.
		text := memoText(e)
		nexusName, freeMemo, external := memo.Decode(text)
		if external {
			text = freeMemo
		}
		if !terms.Matches(text, filter.MemoExact) {
			continue
		}
		contractorName := bucketName(e, nexusName)
		workerName := ""
		switch {
		case e.Worker != nil:
			workerName = e.Worker.Name
		case nexusName != "":
			workerName = nexusName
		case e.WorkerID != nil:
			workerName = e.WorkerID.String()
		}

		if filter.ContractorKey != "" {
			key := ""
			switch {
			case e.Contractor != nil:
				key = e.Contractor.PartnerID.String()
			case nexusName != "":
				key = NexusBucketKey
			case e.ContractorID != nil:
				key = e.ContractorID.String()
			}
			if key != filter.ContractorKey {
				continue
			}
		}
		if filter.WorkerName != "" && workerName != filter.WorkerName {
			continue
		}

		row := DetailRow{
			EntryDate:      e.EntryDate,
			ContractorName: contractorName,
			WorkerName:     workerName,
			Memo:           text,
		}
		if e.WorkType != nil {
			row.WorkTypeName = e.WorkType.Name
			if e.WorkType.Category != nil {
				row.CategoryName = e.WorkType.Category.Name
			}
		}
		out = append(out, row)
	}

	cl := newCollator()
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].EntryDate != out[j].EntryDate {
			return out[i].EntryDate < out[j].EntryDate
		}
		if c := cl.CompareString(out[i].ContractorName, out[j].ContractorName); c != 0 {
			return c < 0
		}
		return cl.CompareString(out[i].WorkerName, out[j].WorkerName) < 0
	})
	return out
}
