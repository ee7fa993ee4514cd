package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/qrhist/internal/settings"
	"github.com/redis/go-redis/v9"
)

// LoadSettings returns the persisted settings, or nil when none are stored
func (s *Store) LoadSettings(ctx context.Context) (*settings.Settings, error) {
	data, err := s.client.Get(ctx, KeySettings).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}

	var st settings.Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	return &st, nil
}

// SaveSettings persists settings without expiry
func (s *Store) SaveSettings(ctx context.Context, st *settings.Settings) error {
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := s.client.Set(ctx, KeySettings, data, 0).Err(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
