package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementActionUsage bumps the counter of an effect type
func (s *Store) IncrementActionUsage(ctx context.Context, effectType string) error {
	if err := s.client.HIncrBy(ctx, KeyUsage, effectType, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment usage: %w", err)
	}
	return nil
}

// GetUsageStats retrieves usage counters keyed by effect type
func (s *Store) GetUsageStats(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, KeyUsage).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get usage stats: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for field, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			continue
		}
		stats[field] = n
	}

	return stats, nil
}
