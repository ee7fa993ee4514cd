package scheduler

import (
	"context"
	"fmt"

	"github.com/MrSnakeDoc/qrhist/internal/index"
	"github.com/MrSnakeDoc/qrhist/internal/logger"
	redisstore "github.com/MrSnakeDoc/qrhist/internal/store/redis"
)

// RedisSyncer loads mirrored records from Redis into the memory index on startup
type RedisSyncer struct {
	store  *redisstore.Store
	index  *index.MemoryIndex
	logger logger.Logger
}

// NewRedisSyncer creates a new Redis syncer
func NewRedisSyncer(
	store *redisstore.Store,
	idx *index.MemoryIndex,
	log logger.Logger,
) *RedisSyncer {
	return &RedisSyncer{
		store:  store,
		index:  idx,
		logger: log,
	}
}

// Sync adds every Redis record to the index. It returns the number loaded.
func (rs *RedisSyncer) Sync(ctx context.Context) (int, error) {
	records, err := rs.store.GetAllRecords(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to sync records from redis: %w", err)
	}

	for _, r := range records {
		rs.index.AddRecord(r)
	}

	if len(records) == 0 {
		rs.logger.Info("no records found in redis")
	} else {
		rs.logger.Info("synced records from redis", logger.Int("count", len(records)))
	}

	return len(records), nil
}
