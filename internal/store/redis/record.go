package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/qrhist/internal/domain"
	"github.com/redis/go-redis/v9"
)

// ErrRecordNotFound is returned when a record key is absent
var ErrRecordNotFound = errors.New("record not found")

// SaveRecord stores a record in Redis
func (s *Store) SaveRecord(ctx context.Context, r *domain.Record) error {
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal record: %w", err)
	}

	pipe := s.client.TxPipeline()
	pipe.Set(ctx, RecordKey(r.ID), data, s.ttl)
	pipe.SAdd(ctx, KeyAllRecords, r.ID)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save record: %w", err)
	}

	return nil
}

// SaveRecordsMany stores multiple records in Redis (bulk operation)
func (s *Store) SaveRecordsMany(ctx context.Context, records []*domain.Record) error {
	if len(records) == 0 {
		return nil
	}

	pipe := s.client.Pipeline()
	for _, r := range records {
		data, err := json.Marshal(r)
		if err != nil {
			return fmt.Errorf("failed to marshal record %s: %w", r.ID, err)
		}
		pipe.Set(ctx, RecordKey(r.ID), data, s.ttl)
		pipe.SAdd(ctx, KeyAllRecords, r.ID)
	}

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save records: %w", err)
	}

	return nil
}

// GetRecord retrieves a record by ID
func (s *Store) GetRecord(ctx context.Context, id string) (*domain.Record, error) {
	data, err := s.client.Get(ctx, RecordKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %s", ErrRecordNotFound, id)
		}
		return nil, fmt.Errorf("failed to get record: %w", err)
	}

	var r domain.Record
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to unmarshal record: %w", err)
	}

	return &r, nil
}

// GetAllRecords retrieves every mirrored record.
// IDs whose key has expired are pruned from the set.
func (s *Store) GetAllRecords(ctx context.Context) ([]*domain.Record, error) {
	ids, err := s.client.SMembers(ctx, KeyAllRecords).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get record IDs: %w", err)
	}

	if len(ids) == 0 {
		return []*domain.Record{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = RecordKey(id)
	}

	values, err := s.client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get records: %w", err)
	}

	records := make([]*domain.Record, 0, len(ids))
	var stale []any
	for i, v := range values {
		raw, ok := v.(string)
		if !ok {
			stale = append(stale, ids[i])
			continue
		}
		var r domain.Record
		if err := json.Unmarshal([]byte(raw), &r); err != nil {
			// Skip records that couldn't be decoded
			continue
		}
		records = append(records, &r)
	}

	if len(stale) > 0 {
		if err := s.client.SRem(ctx, KeyAllRecords, stale...).Err(); err != nil {
			return records, fmt.Errorf("failed to prune stale record IDs: %w", err)
		}
	}

	return records, nil
}

// DeleteRecord removes a record from Redis
func (s *Store) DeleteRecord(ctx context.Context, id string) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, RecordKey(id))
	pipe.SRem(ctx, KeyAllRecords, id)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}

	return nil
}
