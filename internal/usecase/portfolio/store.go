// Package portfolio owns the live portfolio state: holdings, the asset
// history derived from them, presets and calendar events.
package portfolio

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/simaogato/rebalancer/internal/domain"
	"github.com/simaogato/rebalancer/internal/usecase/derivation"
	"github.com/simaogato/rebalancer/internal/usecase/preset"
)

// Collection names handed to the persist error handler.
const (
	CollectionHoldings = "holdings"
	CollectionHistory  = "asset_history"
	CollectionPresets  = "presets"
	CollectionEvents   = "calendar_events"
)

// Store is the single owner of the four portfolio collections.
// Mutations are serialized by a mutex; each one recomputes the derived
// values, persists the affected collections and then notifies the
// subscribers of the views that changed.
type Store struct {
	repo           domain.PortfolioRepository
	log            *zap.SugaredLogger
	now            func() time.Time
	newID          func() uuid.UUID
	onPersistError func(key string, err error)

	mu          sync.Mutex
	holdings    []domain.Holding
	total       decimal.Decimal
	history     []domain.AssetHistory
	presets     []domain.PortfolioPreset
	events      []domain.CalendarEvent
	lastEventID int64

	holdingsView *View[[]domain.Holding]
	totalView    *View[decimal.Decimal]
	historyView  *View[[]domain.AssetHistory]
	presetsView  *View[[]domain.PortfolioPreset]
	eventsView   *View[[]domain.CalendarEvent]
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for persistence warnings.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(s *Store) {
		if log != nil {
			s.log = log
		}
	}
}

// WithClock overrides the wall clock used for snapshots, preset
// timestamps and event ids.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the generator of holding and preset ids.
func WithIDGenerator(newID func() uuid.UUID) Option {
	return func(s *Store) { s.newID = newID }
}

// WithPersistErrorHandler registers fn to be told about every failed save.
// fn runs after the mutation has completed and the Store is unlocked.
func WithPersistErrorHandler(fn func(key string, err error)) Option {
	return func(s *Store) { s.onPersistError = fn }
}

// NewStore loads all four collections from repo and computes the total
// assets of the loaded holdings. A collection that cannot be loaded
// starts empty. Loading never appends a history snapshot.
func NewStore(ctx context.Context, repo domain.PortfolioRepository, opts ...Option) *Store {
	s := &Store{
		repo:  repo,
		log:   zap.NewNop().Sugar(),
		now:   time.Now,
		newID: uuid.New,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With("component", "portfolio")

	s.holdings = loadOrEmpty(s, CollectionHoldings, func() ([]domain.Holding, error) { return repo.LoadHoldings(ctx) })
	s.history = loadOrEmpty(s, CollectionHistory, func() ([]domain.AssetHistory, error) { return repo.LoadHistory(ctx) })
	s.presets = loadOrEmpty(s, CollectionPresets, func() ([]domain.PortfolioPreset, error) { return repo.LoadPresets(ctx) })
	s.events = loadOrEmpty(s, CollectionEvents, func() ([]domain.CalendarEvent, error) { return repo.LoadEvents(ctx) })
	s.total = derivation.TotalAssets(s.holdings)

	for _, e := range s.events {
		if e.ID > s.lastEventID {
			s.lastEventID = e.ID
		}
	}

	s.holdingsView = newView(s.holdings, domain.CloneHoldings)
	s.totalView = newView(s.total, func(d decimal.Decimal) decimal.Decimal { return d })
	s.historyView = newView(s.history, cloneSlice[domain.AssetHistory])
	s.presetsView = newView(s.presets, domain.ClonePresets)
	s.eventsView = newView(s.events, cloneSlice[domain.CalendarEvent])

	s.log.Debugw("portfolio loaded",
		"holdings", len(s.holdings),
		"history", len(s.history),
		"presets", len(s.presets),
		"events", len(s.events),
	)
	return s
}

func loadOrEmpty[T any](s *Store, key string, load func() ([]T, error)) []T {
	items, err := load()
	if err != nil {
		s.log.Warnw("loading collection failed, starting empty", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func cloneSlice[T any](in []T) []T {
	if in == nil {
		return []T{}
	}
	return slices.Clone(in)
}

// Holdings is the live holding collection in insertion order.
func (s *Store) Holdings() *View[[]domain.Holding] { return s.holdingsView }

// TotalAssets is the sum of the current values of the live holdings.
func (s *Store) TotalAssets() *View[decimal.Decimal] { return s.totalView }

// AssetHistory is the append-only sequence of total-asset snapshots.
func (s *Store) AssetHistory() *View[[]domain.AssetHistory] { return s.historyView }

// Presets is the saved preset collection, newest first.
func (s *Store) Presets() *View[[]domain.PortfolioPreset] { return s.presetsView }

// Events is the calendar event collection in insertion order.
func (s *Store) Events() *View[[]domain.CalendarEvent] { return s.eventsView }

// outbox collects the work that must run after the Store lock is released:
// subscriber notifications and persist error callbacks.
type outbox []func()

func (o *outbox) add(fn func()) { *o = append(*o, fn) }

func (o outbox) flush() {
	for _, fn := range o {
		fn()
	}
}

// mutate runs fn under the Store lock and flushes its outbox afterwards.
func (s *Store) mutate(fn func(out *outbox)) {
	var out outbox
	s.mu.Lock()
	fn(&out)
	s.mu.Unlock()
	out.flush()
}

// persist saves one collection. A failure is logged and reported to the
// persist error handler; in-memory state is left as it is.
func (s *Store) persist(out *outbox, key string, save func() error) {
	err := save()
	if err == nil {
		return
	}
	s.log.Warnw("persisting collection failed", "key", key, "error", err)
	if s.onPersistError != nil {
		handler := s.onPersistError
		out.add(func() { handler(key, err) })
	}
}

// commitHoldings is the shared tail of every holding mutation.
// Logic:
//   - recompute total assets
//   - persist holdings
//   - append a snapshot of the new total and persist the history
//   - queue notifications for holdings, total and history subscribers
func (s *Store) commitHoldings(ctx context.Context, out *outbox) {
	s.total = derivation.TotalAssets(s.holdings)

	holdings := domain.CloneHoldings(s.holdings)
	s.persist(out, CollectionHoldings, func() error { return s.repo.SaveHoldings(ctx, holdings) })

	s.history = append(s.history, domain.AssetHistory{
		Timestamp:   s.snapshotTimestamp(),
		TotalAssets: s.total,
	})
	history := cloneSlice(s.history)
	s.persist(out, CollectionHistory, func() error { return s.repo.SaveHistory(ctx, history) })

	out.add(s.holdingsView.set(s.holdings))
	out.add(s.totalView.set(s.total))
	out.add(s.historyView.set(s.history))
}

// snapshotTimestamp returns the current time in ms, never earlier than the
// last snapshot so the history stays chronological.
func (s *Store) snapshotTimestamp() int64 {
	ts := s.now().UnixMilli()
	if n := len(s.history); n > 0 && ts < s.history[n-1].Timestamp {
		ts = s.history[n-1].Timestamp
	}
	return ts
}

// nextEventID returns a time-based id that is strictly greater than every
// id issued or loaded before it.
func (s *Store) nextEventID() int64 {
	id := s.now().UnixMilli()
	if id <= s.lastEventID {
		id = s.lastEventID + 1
	}
	s.lastEventID = id
	return id
}

func (s *Store) holdingIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.holdings, func(h domain.Holding) bool { return h.ID == id })
}

func (s *Store) presetIndex(id uuid.UUID) int {
	return slices.IndexFunc(s.presets, func(p domain.PortfolioPreset) bool { return p.ID == id })
}

// AddHolding appends a new holding with a fresh id.
// Returns ErrInvalidInput for a blank name or a negative current value.
func (s *Store) AddHolding(ctx context.Context, name string, targetRatio, currentValue decimal.Decimal) error {
	h := domain.Holding{
		ID:           s.newID(),
		Name:         name,
		TargetRatio:  targetRatio,
		CurrentValue: currentValue,
	}
	if err := h.Validate(); err != nil {
		return err
	}

	s.mutate(func(out *outbox) {
		s.holdings = append(s.holdings, h)
		s.commitHoldings(ctx, out)
	})
	return nil
}

// UpdateHolding replaces the fields of the holding with the given id,
// keeping its position. An unknown id is a no-op.
func (s *Store) UpdateHolding(ctx context.Context, id uuid.UUID, name string, targetRatio, currentValue decimal.Decimal) error {
	h := domain.Holding{
		ID:           id,
		Name:         name,
		TargetRatio:  targetRatio,
		CurrentValue: currentValue,
	}
	if err := h.Validate(); err != nil {
		return err
	}

	s.mutate(func(out *outbox) {
		i := s.holdingIndex(id)
		if i < 0 {
			return
		}
		s.holdings[i] = h
		s.commitHoldings(ctx, out)
	})
	return nil
}

// DeleteHolding removes the holding with the given id. An unknown id is a no-op.
func (s *Store) DeleteHolding(ctx context.Context, id uuid.UUID) error {
	s.mutate(func(out *outbox) {
		i := s.holdingIndex(id)
		if i < 0 {
			return
		}
		s.holdings = slices.Delete(s.holdings, i, i+1)
		s.commitHoldings(ctx, out)
	})
	return nil
}

// LoadPreset replaces the whole live holding set with a copy of the
// preset's holdings. Every loaded holding gets a brand-new id that matches
// neither a preset id nor an id of the holdings being replaced.
func (s *Store) LoadPreset(ctx context.Context, p domain.PortfolioPreset) error {
	for _, h := range p.Holdings {
		if err := h.Validate(); err != nil {
			return err
		}
	}

	s.mutate(func(out *outbox) {
		live := make(map[uuid.UUID]struct{}, len(s.holdings))
		for _, h := range s.holdings {
			live[h.ID] = struct{}{}
		}
		newID := func() uuid.UUID {
			for {
				id := s.newID()
				if _, used := live[id]; !used {
					return id
				}
			}
		}

		s.holdings = preset.Apply(p, newID)
		s.commitHoldings(ctx, out)
	})
	return nil
}

// AddPreset saves holdings as a new preset at the front of the collection.
func (s *Store) AddPreset(ctx context.Context, name, description string, holdings []domain.Holding) error {
	p := domain.PortfolioPreset{
		ID:           s.newID(),
		Name:         name,
		Description:  description,
		Holdings:     domain.CloneHoldings(holdings),
		LastModified: s.now().UnixMilli(),
	}
	if err := p.Validate(); err != nil {
		return err
	}

	s.mutate(func(out *outbox) {
		s.presets = slices.Insert(s.presets, 0, p)
		s.commitPresets(ctx, out)
	})
	return nil
}

// UpdatePreset replaces the name and holdings of the preset with the given
// id and bumps its modification time. Position and description are kept.
// An unknown id is a no-op.
func (s *Store) UpdatePreset(ctx context.Context, id uuid.UUID, newName string, newHoldings []domain.Holding) error {
	candidate := domain.PortfolioPreset{
		ID:           id,
		Name:         newName,
		Holdings:     domain.CloneHoldings(newHoldings),
		LastModified: s.now().UnixMilli(),
	}
	if err := candidate.Validate(); err != nil {
		return err
	}

	s.mutate(func(out *outbox) {
		i := s.presetIndex(id)
		if i < 0 {
			return
		}
		candidate.Description = s.presets[i].Description
		s.presets[i] = candidate
		s.commitPresets(ctx, out)
	})
	return nil
}

// DeletePreset removes the preset with the given id. An unknown id is a no-op.
func (s *Store) DeletePreset(ctx context.Context, id uuid.UUID) error {
	s.mutate(func(out *outbox) {
		i := s.presetIndex(id)
		if i < 0 {
			return
		}
		s.presets = slices.Delete(s.presets, i, i+1)
		s.commitPresets(ctx, out)
	})
	return nil
}

func (s *Store) commitPresets(ctx context.Context, out *outbox) {
	presets := domain.ClonePresets(s.presets)
	s.persist(out, CollectionPresets, func() error { return s.repo.SavePresets(ctx, presets) })
	out.add(s.presetsView.set(s.presets))
}

// AddEvent appends a calendar event with a fresh time-based id.
// Returns ErrInvalidInput for a blank title or a zero date.
func (s *Store) AddEvent(ctx context.Context, title string, date domain.Date) error {
	// The id is assigned under the lock; validate with a placeholder.
	e := domain.CalendarEvent{ID: 1, Title: title, Date: date}
	if err := e.Validate(); err != nil {
		return err
	}

	s.mutate(func(out *outbox) {
		e.ID = s.nextEventID()
		s.events = append(s.events, e)
		s.commitEvents(ctx, out)
	})
	return nil
}

// DeleteEvent removes the event with the given id. An unknown id is a no-op.
func (s *Store) DeleteEvent(ctx context.Context, id int64) error {
	s.mutate(func(out *outbox) {
		i := slices.IndexFunc(s.events, func(e domain.CalendarEvent) bool { return e.ID == id })
		if i < 0 {
			return
		}
		s.events = slices.Delete(s.events, i, i+1)
		s.commitEvents(ctx, out)
	})
	return nil
}

func (s *Store) commitEvents(ctx context.Context, out *outbox) {
	events := cloneSlice(s.events)
	s.persist(out, CollectionEvents, func() error { return s.repo.SaveEvents(ctx, events) })
	out.add(s.eventsView.set(s.events))
}
