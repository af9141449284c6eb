package nameindex

// Immutable per-request snapshots of the contractor and worker rosters.
// Built once from a bulk read and passed into the import reconciler and
// report code, instead of process-wide lookup maps.

type ContractorRef struct {
	ID   string
	Name string // raw legal name
}

type WorkerRef struct {
	ID           string
	Name         string
	ContractorID string
}

type Index struct {
	byKey       map[string]string // MappingKey(stripped name) -> contractor id
	displayByID map[string]string // contractor id -> stripped display name
	displays    []string          // stripped display names, roster order
}

func New(contractors []ContractorRef) *Index {
	ix := &Index{
		byKey:       make(map[string]string, len(contractors)),
		displayByID: make(map[string]string, len(contractors)),
		displays:    make([]string, 0, len(contractors)),
	}
	for _, c := range contractors {
		display := StripLegalSuffix(c.Name)
		ix.byKey[MappingKey(c.Name)] = c.ID
		ix.displayByID[c.ID] = display
		ix.displays = append(ix.displays, display)
	}
	return ix
}

// Resolve looks up a free-text label by its mapping key.
func (ix *Index) Resolve(label string) (string, bool) {
	id, ok := ix.byKey[MappingKey(label)]
	return id, ok
}

// ResolveKey looks up an already-normalized mapping key.
func (ix *Index) ResolveKey(key string) (string, bool) {
	id, ok := ix.byKey[key]
	return id, ok
}

func (ix *Index) DisplayOf(id string) string {
	return ix.displayByID[id]
}

// Displays returns every stripped display name, in roster order, for
// fuzzy suggestions.
func (ix *Index) Displays() []string {
	return ix.displays
}

type WorkerIndex struct {
	byKey map[string]string // contractor id + "::" + NormalizeKey(name) -> worker id
}

func NewWorkerIndex(workers []WorkerRef) *WorkerIndex {
	ix := &WorkerIndex{byKey: make(map[string]string, len(workers))}
	for _, w := range workers {
		ix.byKey[w.ContractorID+"::"+NormalizeKey(w.Name)] = w.ID
	}
	return ix
}

func (ix *WorkerIndex) Resolve(contractorID, name string) (string, bool) {
	id, ok := ix.byKey[contractorID+"::"+NormalizeKey(name)]
	return id, ok
}
