// Package cli implements the terminal front end of the rebalancer: one
// subcommand per portfolio operation, rendering results as markdown.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
	"go.uber.org/zap"

	"github.com/simaogato/rebalancer/internal/adapter/repository"
	"github.com/simaogato/rebalancer/internal/adapter/storage"
	"github.com/simaogato/rebalancer/internal/config"
	apperrors "github.com/simaogato/rebalancer/internal/errors"
	"github.com/simaogato/rebalancer/internal/usecase/portfolio"
	"github.com/simaogato/rebalancer/internal/usecase/settings"
)

// App carries the collaborators shared by every subcommand. The backend is
// opened lazily so that help and flag listing never touch storage.
type App struct {
	Config *config.Config
	Log    *zap.SugaredLogger
	Out    io.Writer
	Err    io.Writer
	// Plain disables terminal styling and prints raw markdown.
	Plain bool

	opened   *storage.Opened
	store    *portfolio.Store
	settings *settings.SettingsService
}

// NewApp creates an App writing to stdout and stderr.
func NewApp(cfg *config.Config, log *zap.SugaredLogger) *App {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &App{
		Config: cfg,
		Log:    log,
		Out:    os.Stdout,
		Err:    os.Stderr,
	}
}

func (a *App) open(ctx context.Context) error {
	if a.opened != nil {
		return nil
	}

	opened, err := storage.Open(a.Config.Storage)
	if err != nil {
		return err
	}
	a.Log.Debugw("storage opened", "backend", opened.Backend, "spec", a.Config.Storage)

	repo := repository.New(opened.Store, a.Log)
	a.opened = opened
	a.store = portfolio.NewStore(ctx, repo,
		portfolio.WithLogger(a.Log),
		portfolio.WithPersistErrorHandler(a.warnPersist),
	)
	a.settings = settings.NewSettingsService(repo, a.Log)
	return nil
}

// Store returns the portfolio store, opening the backend on first use.
func (a *App) Store(ctx context.Context) (*portfolio.Store, error) {
	if err := a.open(ctx); err != nil {
		return nil, err
	}
	return a.store, nil
}

// Settings returns the settings service, opening the backend on first use.
func (a *App) Settings(ctx context.Context) (*settings.SettingsService, error) {
	if err := a.open(ctx); err != nil {
		return nil, err
	}
	return a.settings, nil
}

// Close releases the storage backend.
func (a *App) Close() error {
	if a.opened == nil {
		return nil
	}
	err := a.opened.Store.Close()
	a.opened, a.store, a.settings = nil, nil, nil
	return err
}

// warnPersist surfaces a failed save to the user. The in-memory change
// stands; only durability was lost.
func (a *App) warnPersist(key string, err error) {
	fmt.Fprintf(a.Err, "Warning: could not save %s: %v\n", key, err)
}

// Register adds every subcommand to c, grouped for the help output.
func Register(c *subcommands.Commander) {
	c.Register(c.HelpCommand(), "")
	c.Register(c.FlagsCommand(), "")
	c.Register(c.CommandsCommand(), "")

	c.Register(&summaryCmd{}, "portfolio")
	c.Register(&holdingsCmd{}, "portfolio")
	c.Register(&addHoldingCmd{}, "portfolio")
	c.Register(&updateHoldingCmd{}, "portfolio")
	c.Register(&deleteHoldingCmd{}, "portfolio")
	c.Register(&historyCmd{}, "portfolio")
	c.Register(&planCmd{}, "portfolio")

	c.Register(&presetsCmd{}, "presets")
	c.Register(&savePresetCmd{}, "presets")
	c.Register(&updatePresetCmd{}, "presets")
	c.Register(&loadPresetCmd{}, "presets")
	c.Register(&deletePresetCmd{}, "presets")

	c.Register(&eventsCmd{}, "calendar")
	c.Register(&addEventCmd{}, "calendar")
	c.Register(&deleteEventCmd{}, "calendar")
	c.Register(&remindCmd{}, "calendar")

	c.Register(&settingsCmd{}, "settings")
}

// appFrom extracts the App passed to Commander.Execute.
func appFrom(args []interface{}) *App {
	for _, arg := range args {
		if app, ok := arg.(*App); ok {
			return app
		}
	}
	panic("cli: subcommand executed without an *App argument")
}

// fail reports err and converts it into an exit status.
// Logic:
//   - ErrInvalidInput -> usage error (the user can fix the input)
//   - anything else -> failure
func (a *App) fail(err error) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: %v\n", err)
	if errors.Is(err, apperrors.ErrInvalidInput) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}

// usage reports a malformed invocation.
func (a *App) usage(format string, args ...interface{}) subcommands.ExitStatus {
	fmt.Fprintf(a.Err, "Error: "+format+"\n", args...)
	return subcommands.ExitUsageError
}
