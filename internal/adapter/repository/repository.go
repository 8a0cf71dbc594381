// Package repository is the persistence adapter of the portfolio engine.
// It serializes the four portfolio collections (and the independent
// settings object) to JSON values of a flat key-value store, tolerating
// missing and malformed content.
package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/simaogato/rebalancer/internal/adapter/storage"
	"github.com/simaogato/rebalancer/internal/domain"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
)

// Fixed keys of the persisted collections.
const (
	KeyHoldings = "holdings"
	KeyHistory  = "asset_history"
	KeyPresets  = "presets"
	KeyEvents   = "calendar_events"
	KeySettings = "settings"
)

// Repository implements domain.PortfolioRepository and
// domain.SettingsRepository on top of a storage.KeyValueStore.
type Repository struct {
	store storage.KeyValueStore
	log   *zap.SugaredLogger
}

var (
	_ domain.PortfolioRepository = (*Repository)(nil)
	_ domain.SettingsRepository  = (*Repository)(nil)
)

// New creates a repository over store. A nil logger discards log output.
func New(store storage.KeyValueStore, log *zap.SugaredLogger) *Repository {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Repository{store: store, log: log.With("component", "repository")}
}

// record is a wire representation that converts (and validates) into T.
type record[T any] interface {
	toDomain() (T, error)
}

// Load decodes the sequence stored under key.
// Logic:
//   - key absent -> empty sequence
//   - value is not a JSON array -> empty sequence (logged)
//   - an element that fails to decode or validate is skipped (logged), the rest load
//
// An error is returned only when the backing store fails.
func Load[T any, R record[T]](ctx context.Context, r *Repository, key string) ([]T, error) {
	data, err := r.store.Get(ctx, key)
	if errors.Is(err, storage.ErrNotFound) {
		return []T{}, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("load %s: %w", key, err))
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		r.log.Warnw("discarding unparseable collection", "key", key, "error", err)
		return []T{}, nil
	}

	items := make([]T, 0, len(raw))
	for i, msg := range raw {
		var rec R
		if err := json.Unmarshal(msg, &rec); err != nil {
			r.log.Warnw("skipping malformed record", "key", key, "index", i, "error", err)
			continue
		}
		item, err := rec.toDomain()
		if err != nil {
			r.log.Warnw("skipping invalid record", "key", key, "index", i, "error", err)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}

// Save serializes the full collection and overwrites the value under key.
func Save[T any, R any](ctx context.Context, r *Repository, key string, items []T, toRecord func(T) R) error {
	records := make([]R, len(items))
	for i, item := range items {
		records[i] = toRecord(item)
	}

	data, err := json.Marshal(records)
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("encode %s: %w", key, err))
	}
	if err := r.store.Put(ctx, key, data); err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("save %s: %w", key, err))
	}
	return nil
}

func (r *Repository) LoadHoldings(ctx context.Context) ([]domain.Holding, error) {
	return Load[domain.Holding, holdingRecord](ctx, r, KeyHoldings)
}

func (r *Repository) SaveHoldings(ctx context.Context, holdings []domain.Holding) error {
	return Save(ctx, r, KeyHoldings, holdings, fromHolding)
}

func (r *Repository) LoadHistory(ctx context.Context) ([]domain.AssetHistory, error) {
	return Load[domain.AssetHistory, historyRecord](ctx, r, KeyHistory)
}

func (r *Repository) SaveHistory(ctx context.Context, history []domain.AssetHistory) error {
	return Save(ctx, r, KeyHistory, history, fromHistory)
}

func (r *Repository) LoadPresets(ctx context.Context) ([]domain.PortfolioPreset, error) {
	return Load[domain.PortfolioPreset, presetRecord](ctx, r, KeyPresets)
}

func (r *Repository) SavePresets(ctx context.Context, presets []domain.PortfolioPreset) error {
	return Save(ctx, r, KeyPresets, presets, fromPreset)
}

func (r *Repository) LoadEvents(ctx context.Context) ([]domain.CalendarEvent, error) {
	return Load[domain.CalendarEvent, eventRecord](ctx, r, KeyEvents)
}

func (r *Repository) SaveEvents(ctx context.Context, events []domain.CalendarEvent) error {
	return Save(ctx, r, KeyEvents, events, fromEvent)
}

// LoadSettings reads the settings object. Missing or malformed content
// reports ok=false so the caller falls back to defaults.
func (r *Repository) LoadSettings(ctx context.Context) (domain.Settings, bool, error) {
	data, err := r.store.Get(ctx, KeySettings)
	if errors.Is(err, storage.ErrNotFound) {
		return domain.Settings{}, false, nil
	}
	if err != nil {
		return domain.Settings{}, false, apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("load %s: %w", KeySettings, err))
	}

	var rec settingsRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		r.log.Warnw("discarding unparseable settings", "error", err)
		return domain.Settings{}, false, nil
	}

	s := domain.Settings{DarkMode: rec.DarkMode, FontScale: rec.FontScale, Language: rec.Language}
	if err := s.Validate(); err != nil {
		r.log.Warnw("discarding invalid settings", "error", err)
		return domain.Settings{}, false, nil
	}
	return s, true, nil
}

func (r *Repository) SaveSettings(ctx context.Context, s domain.Settings) error {
	data, err := json.Marshal(settingsRecord{DarkMode: s.DarkMode, FontScale: s.FontScale, Language: s.Language})
	if err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("encode %s: %w", KeySettings, err))
	}
	if err := r.store.Put(ctx, KeySettings, data); err != nil {
		return apperrors.Wrap(apperrors.ErrStorage, fmt.Errorf("save %s: %w", KeySettings, err))
	}
	return nil
}
