package index

import (
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

// MemoryIndex provides in-memory storage and lookup for history records.
// It is the primary source; Redis is a best-effort mirror.
type MemoryIndex struct {
	mu         sync.RWMutex
	records    map[string]*domain.Record // ID -> Record
	lastReload time.Time                 // Timestamp of last import reload
}

// NewMemoryIndex creates a new memory index
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		records: make(map[string]*domain.Record),
	}
}

// UpdateRecords replaces all records coming from source, keeping the others.
// An empty source replaces the whole index.
func (idx *MemoryIndex) UpdateRecords(source string, records []*domain.Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if source == "" {
		idx.records = make(map[string]*domain.Record, len(records))
	} else {
		for id, r := range idx.records {
			if r.Source == source {
				delete(idx.records, id)
			}
		}
	}
	for _, r := range records {
		idx.records[r.ID] = r
	}
	idx.lastReload = time.Now()
}

// GetRecord retrieves a record by ID
func (idx *MemoryIndex) GetRecord(id string) (*domain.Record, bool) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	r, ok := idx.records[id]
	return r, ok
}

// AddRecord adds or replaces a single record
func (idx *MemoryIndex) AddRecord(r *domain.Record) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.records[r.ID] = r
}

// RemoveRecord replaces a record with a copy disabled by the user.
// It returns the disabled copy, or false if the record is unknown.
func (idx *MemoryIndex) RemoveRecord(id string, now time.Time) (*domain.Record, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	r, ok := idx.records[id]
	if !ok {
		return nil, false
	}
	removed := r.Removed(now, domain.RemovedByUser)
	idx.records[id] = removed
	return removed, true
}

// DeleteRecord drops a record from the index
func (idx *MemoryIndex) DeleteRecord(id string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	delete(idx.records, id)
}

// All returns every record, disabled ones included, in no particular order.
func (idx *MemoryIndex) All() []*domain.Record {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	records := make([]*domain.Record, 0, len(idx.records))
	for _, r := range idx.records {
		records = append(records, r)
	}
	return records
}

// List returns records newest first (ties broken by ID).
// kindFilter, when set, keeps only kinds containing it.
func (idx *MemoryIndex) List(includeDisabled bool, kindFilter string) []*domain.Record {
	idx.mu.RLock()
	records := make([]*domain.Record, 0, len(idx.records))
	for _, r := range idx.records {
		if r.Disabled && !includeDisabled {
			continue
		}
		if kindFilter != "" && !strings.Contains(string(r.Kind), kindFilter) {
			continue
		}
		records = append(records, r)
	}
	idx.mu.RUnlock()

	slices.SortFunc(records, func(a, b *domain.Record) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return records
}

// Count returns the number of active records
func (idx *MemoryIndex) Count() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	n := 0
	for _, r := range idx.records {
		if !r.Disabled {
			n++
		}
	}
	return n
}

// GetLastReload returns the timestamp of the last import reload
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
