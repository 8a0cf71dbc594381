package settings

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/simaogato/rebalancer/internal/domain"
)

// SettingsService handles presentation preferences. It is independent of
// the portfolio store and shares only the key-value backend with it.
type SettingsService struct {
	Repo domain.SettingsRepository
	log  *zap.SugaredLogger
}

// NewSettingsService creates a new SettingsService instance
func NewSettingsService(repo domain.SettingsRepository, log *zap.SugaredLogger) *SettingsService {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SettingsService{Repo: repo, log: log.With("component", "settings")}
}

// Get returns the stored settings.
// Logic: nothing stored, malformed content or a failing backend all fall
// back to domain.DefaultSettings()
func (s *SettingsService) Get(ctx context.Context) domain.Settings {
	stored, ok, err := s.Repo.LoadSettings(ctx)
	if err != nil {
		s.log.Warnw("loading settings failed, using defaults", "error", err)
		return domain.DefaultSettings()
	}
	if !ok {
		return domain.DefaultSettings()
	}
	return stored
}

// SetDarkMode toggles the dark theme preference
func (s *SettingsService) SetDarkMode(ctx context.Context, enabled bool) (domain.Settings, error) {
	return s.update(ctx, func(st *domain.Settings) { st.DarkMode = enabled })
}

// SetFontScale sets the font scale step (0 small, 1 medium, 2 large).
// Returns ErrInvalidInput outside that range.
func (s *SettingsService) SetFontScale(ctx context.Context, scale int) (domain.Settings, error) {
	return s.update(ctx, func(st *domain.Settings) { st.FontScale = scale })
}

// SetLanguage sets the display language code
func (s *SettingsService) SetLanguage(ctx context.Context, language string) (domain.Settings, error) {
	return s.update(ctx, func(st *domain.Settings) { st.Language = strings.TrimSpace(language) })
}

// Reset restores and persists the default settings
func (s *SettingsService) Reset(ctx context.Context) (domain.Settings, error) {
	defaults := domain.DefaultSettings()
	if err := s.Repo.SaveSettings(ctx, defaults); err != nil {
		return s.Get(ctx), err
	}
	return defaults, nil
}

// update applies fn to the current settings, validates and persists the
// result. On failure the previously stored settings are returned.
func (s *SettingsService) update(ctx context.Context, fn func(*domain.Settings)) (domain.Settings, error) {
	current := s.Get(ctx)
	next := current
	fn(&next)

	if err := next.Validate(); err != nil {
		return current, err
	}
	if err := s.Repo.SaveSettings(ctx, next); err != nil {
		return current, err
	}
	return next, nil
}
