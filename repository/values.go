package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
)

// Load reads key and decodes it into a T. Missing keys yield def silently;
// read or decode failures yield def and a warning. It never fails.
func Load[T any](ctx context.Context, s Store, key string, def T, logger *slog.Logger) T {
	if logger == nil {
		logger = slog.Default()
	}
	raw, err := s.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("failed to read stored value", "key", key, "error", err)
		}
		return def
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logger.Warn("failed to parse stored value", "key", key, "error", err)
		return def
	}
	return v
}

// Save encodes v as JSON and writes it before returning.
func Save[T any](ctx context.Context, s Store, key string, v T) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("store %s: %w", key, err)
	}
	return nil
}
