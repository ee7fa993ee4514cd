package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/MrSnakeDoc/qrhist/internal/index"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
	"github.com/MrSnakeDoc/qrhist/internal/sources/importfile"
	redisstore "github.com/MrSnakeDoc/qrhist/internal/store/redis"
)

// ImportReloader handles periodic reloading of the history import file
type ImportReloader struct {
	loader        *importfile.Loader
	mapper        *importfile.Mapper
	store         *redisstore.Store
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger <-chan struct{}
	now           func() time.Time
}

// NewImportReloader creates a new import reloader
func NewImportReloader(
	importFile string,
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger <-chan struct{},
) *ImportReloader {
	return &ImportReloader{
		loader:        importfile.NewLoader(importFile),
		mapper:        importfile.NewMapper(),
		store:         store,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
		now:           time.Now,
	}
}

// Start loads the file once, then reloads on every tick or manual trigger
func (ir *ImportReloader) Start(ctx context.Context) error {
	if err := ir.Reload(ctx); err != nil {
		return fmt.Errorf("initial import failed: %w", err)
	}

	ticker := time.NewTicker(ir.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := ir.Reload(ctx); err != nil {
					ir.logger.Error("failed to reload import file", logger.Error(err))
				}
			case <-ir.manualTrigger:
				ir.logger.Info("manual reload triggered")
				if err := ir.Reload(ctx); err != nil {
					ir.logger.Error("failed to reload import file", logger.Error(err))
				}
			case <-ir.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (ir *ImportReloader) Stop() {
	close(ir.stopCh)
}

// Reload reads the import file and merges it into the index.
// Imported records missing from the file are disabled, and enabled again
// when the file lists them anew. A record the user removed stays removed
// while the file lists it, and is purged once the file drops it.
func (ir *ImportReloader) Reload(ctx context.Context) error {
	ir.logger.Info("reloading history import", logger.String("file", ir.loader.Path()))

	file, err := ir.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load import file: %w", err)
	}

	fresh, err := ir.mapper.MapRecords(file)
	if err != nil {
		return fmt.Errorf("failed to map import file: %w", err)
	}

	now := ir.now()
	existing := ir.importedRecords()
	freshIDs := make(map[string]struct{}, len(fresh))

	merged := make([]*domain.Record, 0, len(fresh)+len(existing))
	var restored int
	for _, r := range fresh {
		freshIDs[r.ID] = struct{}{}
		prev, ok := existing[r.ID]
		switch {
		case !ok:
			merged = append(merged, r)
		case prev.Disabled && prev.RemovedBy == domain.RemovedByImport:
			merged = append(merged, prev.Restored(now))
			restored++
		default:
			// Keep the first sighting and any user removal
			merged = append(merged, prev)
		}
	}

	var disabled int
	var purged []string
	for id, prev := range existing {
		if _, ok := freshIDs[id]; ok {
			continue
		}
		switch {
		case prev.IsImportTombstone():
			purged = append(purged, id)
			continue
		case !prev.Disabled:
			prev = prev.Removed(now, domain.RemovedByImport)
			disabled++
		}
		merged = append(merged, prev)
	}

	if disabled > 0 {
		ir.logger.Info("marking removed import entries as disabled", logger.Int("count", disabled))
	}
	if restored > 0 {
		ir.logger.Info("re-enabling import entries listed again", logger.Int("count", restored))
	}

	ir.index.UpdateRecords(domain.SourceImport, merged)

	ir.logger.Info("loaded history import", logger.Int("count", len(fresh)))

	// Redis is best effort, the memory index is the primary source
	if ir.store != nil {
		if err := ir.store.SaveRecordsMany(ctx, merged); err != nil {
			ir.logger.Warn("failed to save imported records to redis", logger.Error(err))
		}
		for _, id := range purged {
			if err := ir.store.DeleteRecord(ctx, id); err != nil {
				ir.logger.Warn("failed to delete purged import record from redis",
					logger.String("record_id", id),
					logger.Error(err))
			}
		}
	}

	return nil
}

func (ir *ImportReloader) importedRecords() map[string]*domain.Record {
	out := make(map[string]*domain.Record)
	for _, r := range ir.index.All() {
		if r.Source == domain.SourceImport {
			out[r.ID] = r
		}
	}
	return out
}
