package service

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	entryModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/entries/memo"
	importModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/attendance/imports/model"
	contractorModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/model"
	"github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/contractors/nameindex"
	workerModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/workers/model"
	sitesModel "github.com/tfunabashi1173-jpg/nexus-worklog/internals/features/masters/sites/model"
)

const insertChunkSize = 500

// Attendance sheets put the site name on a labelled row and the worker
// cell in the eighth column; data starts from the fifth row.
const (
	siteNameLabel  = "現場名:"
	workerCellCol  = 7
	dataStartRow   = 4
	headerSkipRows = 2 // worker roster sheets
)

type ImportService struct {
	DB *gorm.DB
}

func NewImportService(db *gorm.DB) *ImportService {
	return &ImportService{DB: db}
}

type AttendanceImportOptions struct {
	ProjectID     string
	SiteName      string
	Mappings      map[string]string
	CreateMissing bool
	Execute       bool
	CreatedBy     string
}

type MissingContractor struct {
	Label       string   `json:"label"`
	Suggestions []string `json:"suggestions"`
}

type MissingWorkers struct {
	ContractorName string   `json:"contractor_name"`
	Names          []string `json:"names"`
}

type AttendanceImportSummary struct {
	RunID uuid.UUID `json:"run_id"`

	Planned          int `json:"planned"`
	Inserted         int `json:"inserted"`
	CreatedWorkers   int `json:"created_workers"`
	DuplicateSkipped int `json:"duplicate_skipped"`
	EmptySkipped     int `json:"empty_skipped"`
	MappingSkipped   int `json:"mapping_skipped"`
	InvalidFormat    int `json:"invalid_format"`

	MissingContractors []MissingContractor `json:"missing_contractors"`
	MissingWorkers     []MissingWorkers    `json:"missing_workers"`

	Skips    []importModel.ImportSkipModel `json:"skips"`
	Executed bool                          `json:"executed"`
}

// SiteNotFoundError carries suggestions for a site name that matched
// nothing; importing needs an explicit project id then.
type SiteNotFoundError struct {
	Name        string
	Suggestions []string
}

func (e *SiteNotFoundError) Error() string {
	return fmt.Sprintf("現場名が一致しません: %s", e.Name)
}

type pendingEntry struct {
	entry      entryModel.AttendanceEntryModel
	workerName string // set when the worker is missing, for create-missing
	dedupeKey  string
}

// snapshot reads the live contractor and worker rosters once.
func (s *ImportService) snapshot() (*nameindex.Index, *nameindex.WorkerIndex, error) {
	var contractors []contractorModel.ContractorModel
	if err := s.DB.Where("is_deleted = false").Order("partner_id").Find(&contractors).Error; err != nil {
		return nil, nil, err
	}
	refs := make([]nameindex.ContractorRef, 0, len(contractors))
	for _, c := range contractors {
		refs = append(refs, nameindex.ContractorRef{ID: c.PartnerID.String(), Name: c.Name})
	}
	idx := nameindex.New(refs)

	workerIdx, err := s.workerSnapshot()
	if err != nil {
		return nil, nil, err
	}
	return idx, workerIdx, nil
}

func (s *ImportService) workerSnapshot() (*nameindex.WorkerIndex, error) {
	var workers []workerModel.WorkerModel
	if err := s.DB.Where("id_deleted = false").Find(&workers).Error; err != nil {
		return nil, err
	}
	refs := make([]nameindex.WorkerRef, 0, len(workers))
	for _, w := range workers {
		refs = append(refs, nameindex.WorkerRef{
			ID:           w.ID.String(),
			Name:         w.Name,
			ContractorID: w.ContractorID.String(),
		})
	}
	return nameindex.NewWorkerIndex(refs), nil
}

// resolveSite finds the project id from the option or the sheet's site
// name row, suggesting close names on a miss.
func (s *ImportService) resolveSite(rows [][]string, opt AttendanceImportOptions) (uuid.UUID, error) {
	if opt.ProjectID != "" {
		id, err := uuid.Parse(opt.ProjectID)
		if err != nil {
			return uuid.Nil, fmt.Errorf("project_id が不正です: %s", opt.ProjectID)
		}
		return id, nil
	}

	siteName := strings.TrimSpace(opt.SiteName)
	if siteName == "" {
		for _, row := range rows {
			if len(row) > 1 && strings.TrimSpace(row[0]) == siteNameLabel {
				siteName = strings.TrimSpace(row[1])
			}
		}
	}
	if siteName == "" {
		return uuid.Nil, fmt.Errorf("現場を特定できません。project_id を指定してください。")
	}

	var sites []sitesModel.SiteModel
	if err := s.DB.Where("is_deleted = false").Find(&sites).Error; err != nil {
		return uuid.Nil, err
	}
	names := make([]string, 0, len(sites))
	for _, site := range sites {
		if site.SiteName == siteName {
			return site.ProjectID, nil
		}
		names = append(names, site.SiteName)
	}
	return uuid.Nil, &SiteNotFoundError{
		Name:        siteName,
		Suggestions: nameindex.Suggest(siteName, names),
	}
}

// ImportAttendance reconciles a parsed CSV sheet against the rosters and
// the stored entries. Without Execute it is a dry run: the summary shows
// what would happen and nothing is written. Unresolved identities are
// collected per row; the batch keeps going.
func (s *ImportService) ImportAttendance(rows [][]string, opt AttendanceImportOptions) (*AttendanceImportSummary, error) {
	summary := &AttendanceImportSummary{RunID: uuid.New()}

	projectID, err := s.resolveSite(rows, opt)
	if err != nil {
		return nil, err
	}

	idx, workerIdx, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	overrides := NormalizeOverrides(opt.Mappings)

	createdBy := opt.CreatedBy
	if createdBy == "" {
		createdBy = "import"
	}

	var pending []pendingEntry
	missingContractors := map[string][]string{}
	missingContractorOrder := []string{}
	missingWorkers := map[string]map[string]struct{}{}

	addSkip := func(date, contractor, name, reason, raw string, suggestions []string) {
		skip := importModel.ImportSkipModel{
			RunID:      summary.RunID,
			EntryDate:  date,
			Contractor: contractor,
			Name:       name,
			Reason:     reason,
			Suggestion: pq.StringArray(suggestions),
		}
		if raw != "" {
			skip.Raw = &raw
		}
		summary.Skips = append(summary.Skips, skip)
	}

	for i, row := range rows {
		if i < dataStartRow || len(row) == 0 {
			continue
		}
		entryDate := ParseDate(row[0])
		if entryDate == "" {
			continue
		}
		if len(row) <= workerCellCol {
			continue
		}
		cell := strings.TrimSpace(row[workerCellCol])
		if cell == "" {
			continue
		}

		for _, line := range SplitCellLines(cell) {
			parsed := ParseWorkerLine(line)
			if parsed == nil {
				summary.EmptySkipped++
				continue
			}
			if parsed.Contractor == "" {
				summary.InvalidFormat++
				addSkip(entryDate, "", parsed.Name, importModel.ReasonInvalidFormat, line, nil)
				continue
			}

			resolution := ResolveContractor(parsed.Contractor, overrides, idx)
			switch resolution.Kind {
			case ResolvedSkip:
				summary.MappingSkipped++
				addSkip(entryDate, parsed.Contractor, parsed.Name, importModel.ReasonMappingSkip, "", nil)
				continue
			case ResolvedExternal:
				text := memo.Encode(parsed.Name, "")
				pending = append(pending, pendingEntry{
					entry: entryModel.AttendanceEntryModel{
						EntryDate:    entryDate,
						ProjectID:    projectID,
						WorkTypeText: &text,
						CreatedBy:    createdBy,
					},
					dedupeKey: entryDate + "::nexus::" + nameindex.NormalizeKey(parsed.Name),
				})
				continue
			case Unresolved:
				if _, seen := missingContractors[parsed.Contractor]; !seen {
					missingContractors[parsed.Contractor] = resolution.Suggestions
					missingContractorOrder = append(missingContractorOrder, parsed.Contractor)
				}
				addSkip(entryDate, parsed.Contractor, parsed.Name, importModel.ReasonMissingContractor, "", resolution.Suggestions)
				continue
			}

			contractorID := uuid.MustParse(resolution.ContractorID)
			entry := entryModel.AttendanceEntryModel{
				EntryDate:    entryDate,
				ProjectID:    projectID,
				ContractorID: &contractorID,
				CreatedBy:    createdBy,
			}
			item := pendingEntry{workerName: parsed.Name}

			if workerID, ok := workerIdx.Resolve(resolution.ContractorID, parsed.Name); ok {
				id := uuid.MustParse(workerID)
				entry.WorkerID = &id
				item.dedupeKey = entryDate + "::" + workerID
			} else {
				set, ok := missingWorkers[resolution.ContractorID]
				if !ok {
					set = map[string]struct{}{}
					missingWorkers[resolution.ContractorID] = set
				}
				set[parsed.Name] = struct{}{}
				addSkip(entryDate, idx.DisplayOf(resolution.ContractorID), parsed.Name, importModel.ReasonMissingWorker, "", nil)
				item.dedupeKey = entryDate + "::" + resolution.ContractorID + "::" + nameindex.NormalizeKey(parsed.Name)
			}
			item.entry = entry
			pending = append(pending, item)
		}
	}

	// batch dedup, last occurrence winning per composite key — the same
	// rule the live day save applies
	unique := dedupePending(pending)

	// existing-entry dedup against the stored range
	unique, err = s.dropExisting(projectID, unique, summary, idx)
	if err != nil {
		return nil, err
	}

	for _, label := range missingContractorOrder {
		summary.MissingContractors = append(summary.MissingContractors, MissingContractor{
			Label:       label,
			Suggestions: missingContractors[label],
		})
	}
	for contractorID, names := range missingWorkers {
		mw := MissingWorkers{ContractorName: idx.DisplayOf(contractorID)}
		for name := range names {
			mw.Names = append(mw.Names, name)
		}
		summary.MissingWorkers = append(summary.MissingWorkers, mw)
	}

	insertable := filterInsertable(unique, opt.CreateMissing)
	summary.Planned = len(insertable)

	if !opt.Execute {
		return summary, nil
	}

	// from here on work has side effects; on failure the summary still
	// reports what landed before the error
	if opt.CreateMissing && len(missingWorkers) > 0 {
		created, err := s.createMissingWorkers(missingWorkers)
		summary.CreatedWorkers = created
		if err != nil {
			return summary, err
		}

		refreshed, err := s.workerSnapshot()
		if err != nil {
			return summary, err
		}
		insertable = patchWorkerIDs(insertable, refreshed)
	}

	inserted, err := s.insertEntries(insertable)
	summary.Inserted = inserted
	if err != nil {
		return summary, err
	}
	summary.Executed = true

	if len(summary.Skips) > 0 {
		if err := s.DB.CreateInBatches(summary.Skips, insertChunkSize).Error; err != nil {
			return summary, err
		}
	}
	return summary, nil
}

func dedupePending(pending []pendingEntry) []pendingEntry {
	keyed := map[string]int{}
	var out []pendingEntry
	for _, item := range pending {
		if pos, seen := keyed[item.dedupeKey]; seen {
			out[pos] = item
			continue
		}
		keyed[item.dedupeKey] = len(out)
		out = append(out, item)
	}
	return out
}

// dropExisting removes rows whose composite key already has a stored
// entry in the sheet's date range.
func (s *ImportService) dropExisting(projectID uuid.UUID, pending []pendingEntry, summary *AttendanceImportSummary, idx *nameindex.Index) ([]pendingEntry, error) {
	if len(pending) == 0 {
		return pending, nil
	}

	minDate, maxDate := pending[0].entry.EntryDate, pending[0].entry.EntryDate
	for _, item := range pending {
		if item.entry.EntryDate < minDate {
			minDate = item.entry.EntryDate
		}
		if item.entry.EntryDate > maxDate {
			maxDate = item.entry.EntryDate
		}
	}

	var existing []entryModel.AttendanceEntryModel
	if err := s.DB.
		Select("entry_date", "worker_id", "work_type_text").
		Where("project_id = ? AND entry_date >= ? AND entry_date <= ?", projectID, minDate, maxDate).
		Find(&existing).Error; err != nil {
		return nil, err
	}

	workerKeys := map[string]struct{}{}
	nexusKeys := map[string]struct{}{}
	for _, e := range existing {
		if e.WorkerID != nil {
			workerKeys[e.EntryDate+"::"+e.WorkerID.String()] = struct{}{}
			continue
		}
		if e.WorkTypeText != nil {
			if name := memo.ParseName(*e.WorkTypeText); name != "" {
				nexusKeys[e.EntryDate+"::"+nameindex.NormalizeKey(name)] = struct{}{}
			}
		}
	}

	var out []pendingEntry
	for _, item := range pending {
		e := item.entry
		if e.WorkerID == nil && e.WorkTypeText != nil {
			name := memo.ParseName(*e.WorkTypeText)
			if name == "" {
				continue
			}
			if _, dup := nexusKeys[e.EntryDate+"::"+nameindex.NormalizeKey(name)]; dup {
				summary.DuplicateSkipped++
				summary.Skips = append(summary.Skips, importModel.ImportSkipModel{
					RunID:      summary.RunID,
					EntryDate:  e.EntryDate,
					Contractor: memo.Marker,
					Name:       name,
					Reason:     importModel.ReasonDuplicateExisting,
				})
				continue
			}
			out = append(out, item)
			continue
		}
		if e.WorkerID != nil {
			if _, dup := workerKeys[e.EntryDate+"::"+e.WorkerID.String()]; dup {
				summary.DuplicateSkipped++
				contractor := ""
				if e.ContractorID != nil {
					contractor = idx.DisplayOf(e.ContractorID.String())
				}
				summary.Skips = append(summary.Skips, importModel.ImportSkipModel{
					RunID:      summary.RunID,
					EntryDate:  e.EntryDate,
					Contractor: contractor,
					Name:       item.workerName,
					Reason:     importModel.ReasonDuplicateExisting,
				})
				continue
			}
		}
		out = append(out, item)
	}
	return out, nil
}

// filterInsertable drops rows that resolved to neither a worker nor an
// external memo — unless missing workers are about to be created.
func filterInsertable(pending []pendingEntry, createMissing bool) []pendingEntry {
	var out []pendingEntry
	for _, item := range pending {
		if item.entry.WorkerID == nil && item.entry.WorkTypeText == nil && !createMissing {
			continue
		}
		out = append(out, item)
	}
	return out
}

func (s *ImportService) createMissingWorkers(missing map[string]map[string]struct{}) (int, error) {
	var rows []workerModel.WorkerModel
	for contractorID, names := range missing {
		id := uuid.MustParse(contractorID)
		for name := range names {
			rows = append(rows, workerModel.WorkerModel{
				Name:         name,
				ContractorID: id,
			})
		}
	}
	if len(rows) == 0 {
		return 0, nil
	}
	if err := s.DB.CreateInBatches(rows, insertChunkSize).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}

func patchWorkerIDs(pending []pendingEntry, workerIdx *nameindex.WorkerIndex) []pendingEntry {
	var out []pendingEntry
	for _, item := range pending {
		if item.entry.WorkerID == nil && item.entry.ContractorID != nil && item.workerName != "" {
			if workerID, ok := workerIdx.Resolve(item.entry.ContractorID.String(), item.workerName); ok {
				id := uuid.MustParse(workerID)
				item.entry.WorkerID = &id
			} else {
				continue
			}
		}
		if item.entry.WorkerID == nil && item.entry.WorkTypeText == nil {
			continue
		}
		out = append(out, item)
	}
	return out
}

// insertEntries writes in chunks; worker rows upsert on their natural
// key, external rows plain-insert (already deduped against stored
// state). Chunks are best effort — an error aborts the rest but keeps
// what already landed, matching the CLI importer.
func (s *ImportService) insertEntries(pending []pendingEntry) (int, error) {
	var workerRows, nexusRows []entryModel.AttendanceEntryModel
	for _, item := range pending {
		if item.entry.WorkerID != nil {
			workerRows = append(workerRows, item.entry)
		} else {
			nexusRows = append(nexusRows, item.entry)
		}
	}

	inserted := 0
	for start := 0; start < len(workerRows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(workerRows) {
			end = len(workerRows)
		}
		chunk := workerRows[start:end]
		if err := s.DB.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "entry_date"}, {Name: "project_id"}, {Name: "worker_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"contractor_id", "work_type_id", "work_type_text", "created_by",
			}),
		}).Create(&chunk).Error; err != nil {
			return inserted, err
		}
		inserted += len(chunk)
	}
	for start := 0; start < len(nexusRows); start += insertChunkSize {
		end := start + insertChunkSize
		if end > len(nexusRows) {
			end = len(nexusRows)
		}
		chunk := nexusRows[start:end]
		if err := s.DB.Create(&chunk).Error; err != nil {
			return inserted, err
		}
		inserted += len(chunk)
	}
	return inserted, nil
}
