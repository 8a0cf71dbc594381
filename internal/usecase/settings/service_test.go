package settings

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/simaogato/rebalancer/internal/domain"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
)

// MockSettingsRepository is a mock implementation of SettingsRepository for testing
type MockSettingsRepository struct {
	mock.Mock
}

func (m *MockSettingsRepository) LoadSettings(ctx context.Context) (domain.Settings, bool, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.Settings), args.Bool(1), args.Error(2)
}

func (m *MockSettingsRepository) SaveSettings(ctx context.Context, s domain.Settings) error {
	args := m.Called(ctx, s)
	return args.Error(0)
}

func TestGet_FallsBackToDefaults(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name string
		ok   bool
		err  error
	}{
		{name: "nothing stored", ok: false, err: nil},
		{name: "backend failure", ok: false, err: apperrors.ErrStorage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockSettingsRepository)
			repo.On("LoadSettings", ctx).Return(domain.Settings{}, tt.ok, tt.err)
			service := NewSettingsService(repo, nil)

			got := service.Get(ctx)

			assert.Equal(t, domain.Settings{DarkMode: false, FontScale: 1, Language: "ko"}, got)
			repo.AssertExpectations(t)
		})
	}
}

func TestGet_ReturnsStored(t *testing.T) {
	ctx := context.Background()
	stored := domain.Settings{DarkMode: true, FontScale: 2, Language: "en"}
	repo := new(MockSettingsRepository)
	repo.On("LoadSettings", ctx).Return(stored, true, nil)

	assert.Equal(t, stored, NewSettingsService(repo, nil).Get(ctx))
}

func TestSetDarkMode_PersistsOnTopOfCurrent(t *testing.T) {
	ctx := context.Background()
	stored := domain.Settings{DarkMode: false, FontScale: 2, Language: "en"}
	want := domain.Settings{DarkMode: true, FontScale: 2, Language: "en"}

	repo := new(MockSettingsRepository)
	repo.On("LoadSettings", ctx).Return(stored, true, nil)
	repo.On("SaveSettings", ctx, want).Return(nil)

	got, err := NewSettingsService(repo, nil).SetDarkMode(ctx, true)

	assert.NoError(t, err)
	assert.Equal(t, want, got)
	repo.AssertExpectations(t)
}

func TestSetFontScale_RejectsOutOfRange(t *testing.T) {
	ctx := context.Background()

	for _, scale := range []int{-1, 3} {
		repo := new(MockSettingsRepository)
		repo.On("LoadSettings", ctx).Return(domain.Settings{}, false, nil)

		got, err := NewSettingsService(repo, nil).SetFontScale(ctx, scale)

		assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
		assert.Equal(t, domain.DefaultSettings(), got)
		repo.AssertNotCalled(t, "SaveSettings", mock.Anything, mock.Anything)
	}
}

func TestSetLanguage(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("LoadSettings", ctx).Return(domain.Settings{}, false, nil)
	repo.On("SaveSettings", ctx, domain.Settings{FontScale: 1, Language: "en"}).Return(nil)
	service := NewSettingsService(repo, nil)

	got, err := service.SetLanguage(ctx, " en ")
	assert.NoError(t, err)
	assert.Equal(t, "en", got.Language)

	_, err = service.SetLanguage(ctx, "  ")
	assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
	repo.AssertNumberOfCalls(t, "SaveSettings", 1)
}

func TestSetFontScale_SaveFailureKeepsPrevious(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("LoadSettings", ctx).Return(domain.Settings{}, false, nil)
	repo.On("SaveSettings", ctx, mock.Anything).Return(apperrors.ErrStorage)

	got, err := NewSettingsService(repo, nil).SetFontScale(ctx, 0)

	assert.ErrorIs(t, err, apperrors.ErrStorage)
	assert.Equal(t, domain.DefaultSettings(), got)
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSettingsRepository)
	repo.On("SaveSettings", ctx, domain.DefaultSettings()).Return(nil)

	got, err := NewSettingsService(repo, nil).Reset(ctx)

	assert.NoError(t, err)
	assert.Equal(t, domain.DefaultSettings(), got)
	repo.AssertExpectations(t)
}
