package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/qrhist/internal/index"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
	redisstore "github.com/MrSnakeDoc/qrhist/internal/store/redis"
)

const (
	// DefaultGCThreshold is the duration after which disabled records are purged
	DefaultGCThreshold = 30 * 24 * time.Hour // 30 days
)

// GarbageCollector purges records that stayed disabled past the threshold
type GarbageCollector struct {
	store     *redisstore.Store
	index     *index.MemoryIndex
	logger    logger.Logger
	interval  time.Duration
	threshold time.Duration
	stopCh    chan struct{}
	now       func() time.Time
}

// NewGarbageCollector creates a new garbage collector
func NewGarbageCollector(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	threshold time.Duration,
) *GarbageCollector {
	if threshold == 0 {
		threshold = DefaultGCThreshold
	}

	return &GarbageCollector{
		store:     store,
		index:     idx,
		logger:    log,
		interval:  interval,
		threshold: threshold,
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}
}

// Start begins the periodic garbage collection process
func (gc *GarbageCollector) Start(ctx context.Context) {
	gc.Collect(ctx)

	ticker := time.NewTicker(gc.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				gc.Collect(ctx)
			case <-gc.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the garbage collector
func (gc *GarbageCollector) Stop() {
	close(gc.stopCh)
}

// Collect deletes expired disabled records and returns how many were purged
func (gc *GarbageCollector) Collect(ctx context.Context) int {
	now := gc.now()
	deleted := 0

	for _, r := range gc.index.All() {
		if !r.Disabled || r.UpdatedAt.IsZero() {
			continue
		}
		// The import reloader owns these, the file still lists them
		if r.IsImportTombstone() {
			continue
		}

		disabledFor := now.Sub(r.UpdatedAt)
		if disabledFor < gc.threshold {
			continue
		}

		gc.index.DeleteRecord(r.ID)

		if gc.store != nil {
			if err := gc.store.DeleteRecord(ctx, r.ID); err != nil {
				gc.logger.Warn("failed to delete record from redis",
					logger.String("record_id", r.ID),
					logger.Error(err))
			}
		}

		gc.logger.Debug("garbage collected disabled record",
			logger.String("record_id", r.ID),
			logger.String("kind", string(r.Kind)),
			logger.Duration("disabled_for", disabledFor))

		deleted++
	}

	if deleted > 0 {
		gc.logger.Info("garbage collection completed", logger.Int("deleted", deleted))
	} else {
		gc.logger.Debug("no records to garbage collect")
	}

	return deleted
}
