package index

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
)

func rec(id string, kind domain.Kind, source string, created time.Time) *domain.Record {
	return &domain.Record{ID: id, Kind: kind, Payload: id, Source: source, CreatedAt: created, UpdatedAt: created}
}

func TestUpdateRecords(t *testing.T) {
	idx := NewMemoryIndex()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	idx.AddRecord(rec("scan1", domain.KindText, domain.SourceScan, base))
	idx.UpdateRecords(domain.SourceImport, []*domain.Record{
		rec("imp1", domain.KindWebsite, domain.SourceImport, base),
		rec("imp2", domain.KindWebsite, domain.SourceImport, base),
	})

	if idx.Count() != 3 {
		t.Fatalf("Count() = %d, want 3", idx.Count())
	}
	if idx.GetLastReload().IsZero() {
		t.Error("GetLastReload() should be set after UpdateRecords")
	}

	// Second import drops imp2 and keeps the scanned record
	idx.UpdateRecords(domain.SourceImport, []*domain.Record{
		rec("imp1", domain.KindWebsite, domain.SourceImport, base),
	})

	if _, ok := idx.GetRecord("imp2"); ok {
		t.Error("imp2 should have been replaced away")
	}
	if _, ok := idx.GetRecord("scan1"); !ok {
		t.Error("scan1 must survive an import reload")
	}
	if idx.Count() != 2 {
		t.Errorf("Count() = %d, want 2", idx.Count())
	}
}

func TestUpdateRecordsEmptySourceReplacesAll(t *testing.T) {
	idx := NewMemoryIndex()
	now := time.Now()
	idx.AddRecord(rec("a", domain.KindText, domain.SourceScan, now))

	idx.UpdateRecords("", []*domain.Record{rec("b", domain.KindText, domain.SourceScan, now)})

	if _, ok := idx.GetRecord("a"); ok {
		t.Error("a should be gone")
	}
	if _, ok := idx.GetRecord("b"); !ok {
		t.Error("b should be present")
	}
}

func TestListOrdering(t *testing.T) {
	idx := NewMemoryIndex()
	base := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

	idx.AddRecord(rec("old", domain.KindText, domain.SourceScan, base))
	idx.AddRecord(rec("new", domain.KindWebsite, domain.SourceScan, base.Add(time.Hour)))
	idx.AddRecord(rec("tie-b", domain.KindText, domain.SourceScan, base.Add(time.Minute)))
	idx.AddRecord(rec("tie-a", domain.KindText, domain.SourceScan, base.Add(time.Minute)))

	got := idx.List(false, "")
	want := []string{"new", "tie-a", "tie-b", "old"}
	if len(got) != len(want) {
		t.Fatalf("List() len = %d, want %d", len(got), len(want))
	}
	for i, id := range want {
		if got[i].ID != id {
			t.Errorf("List()[%d] = %s, want %s", i, got[i].ID, id)
		}
	}
}

func TestListKindFilter(t *testing.T) {
	idx := NewMemoryIndex()
	now := time.Now()
	idx.AddRecord(rec("w", domain.KindWifi, domain.SourceScan, now))
	idx.AddRecord(rec("t", domain.KindText, domain.SourceScan, now))

	got := idx.List(false, "Wi-Fi")
	if len(got) != 1 || got[0].ID != "w" {
		t.Errorf("List(kind=Wi-Fi) = %v", got)
	}
}

func TestRemoveRecord(t *testing.T) {
	idx := NewMemoryIndex()
	created := time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)
	original := rec("a", domain.KindText, domain.SourceScan, created)
	idx.AddRecord(original)

	removedAt := created.Add(time.Hour)
	removed, ok := idx.RemoveRecord("a", removedAt)
	if !ok {
		t.Fatal("RemoveRecord() should find a")
	}
	if !removed.Disabled || !removed.UpdatedAt.Equal(removedAt) || removed.RemovedBy != domain.RemovedByUser {
		t.Errorf("removed = %+v", removed)
	}
	if original.Disabled {
		t.Error("the original record must not be mutated")
	}

	if idx.Count() != 0 {
		t.Errorf("Count() = %d, want 0", idx.Count())
	}
	if len(idx.List(false, "")) != 0 {
		t.Error("disabled record should be hidden by default")
	}
	if len(idx.List(true, "")) != 1 {
		t.Error("disabled record should be listed with includeDisabled")
	}

	if _, ok := idx.RemoveRecord("missing", removedAt); ok {
		t.Error("RemoveRecord() on unknown id should report false")
	}
}

func TestDeleteRecord(t *testing.T) {
	idx := NewMemoryIndex()
	idx.AddRecord(rec("a", domain.KindText, domain.SourceScan, time.Now()))
	idx.DeleteRecord("a")
	idx.DeleteRecord("a") // no-op

	if len(idx.All()) != 0 {
		t.Error("All() should be empty after delete")
	}
}

func TestConcurrentAccess(t *testing.T) {
	idx := NewMemoryIndex()
	now := time.Now()

	var wg sync.WaitGroup

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = idx.List(true, "")
		}()
	}

	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			idx.AddRecord(rec(fmt.Sprintf("r%d", i), domain.KindText, domain.SourceScan, now))
		}(i)
	}

	wg.Wait()

	if idx.Count() != 100 {
		t.Errorf("Count() = %d, want 100", idx.Count())
	}
}
