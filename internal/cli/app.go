package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/config"
	"github.com/uamas/themekit/internal/db"
	"github.com/uamas/themekit/internal/events"
	"github.com/uamas/themekit/internal/logging"
	"github.com/uamas/themekit/internal/storage"
	"github.com/uamas/themekit/internal/theme"
)

const recorderSubscriberID = "history"

// App holds the components shared by every command. It is built once per
// invocation and owns the only theme.Store in the process.
type App struct {
	Config   *config.Config
	Store    *theme.Store
	Document *theme.Document
	// Events is nil unless the sqlite backend is in use.
	Events *db.EventRepository

	database *db.DB
}

// openAppFunc is swapped in tests.
var openAppFunc = openApp

func openApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{Config: cfg, Document: theme.NewDocument()}

	backend, err := app.openStorage(ctx)
	if err != nil {
		return nil, err
	}

	binder := theme.NewBinder(app.Document, logging.Component("binder"))
	app.Store = theme.NewStore(backend, logging.Component("store"),
		theme.WithKey(cfg.Storage.Key),
		theme.WithBinder(binder),
	)

	if app.Events != nil {
		recorder := events.NewRecorder(app.Events, app.Store.Key(), logging.Component("history"))
		if err := app.Store.Subscribe(recorderSubscriberID, recorder); err != nil {
			app.Close()
			return nil, err
		}
	}

	app.Store.Init()
	return app, nil
}

func (a *App) openStorage(ctx context.Context) (storage.Storage, error) {
	switch a.Config.Storage.Backend {
	case config.BackendFile:
		file, err := storage.NewFile(a.Config.Storage.Path, logging.Component("storage"))
		if err != nil {
			return nil, fmt.Errorf("failed to open theme file: %w", err)
		}
		return file, nil
	case config.BackendSQLite:
		database, err := db.Open(a.Config.Storage.Database)
		if err != nil {
			return nil, err
		}
		if err := database.Migrate(ctx); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		a.database = database
		a.Events = db.NewEventRepository(database)
		return db.NewSettingsStorage(db.NewSettingsRepository(database), 0), nil
	case config.BackendMemory:
		return storage.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", a.Config.Storage.Backend)
	}
}

// Close releases the database, if any.
func (a *App) Close() error {
	if a == nil || a.database == nil {
		return nil
	}
	if a.Store != nil {
		_ = a.Store.Unsubscribe(recorderSubscriberID)
	}
	return a.database.Close()
}

func withApp(cmd *cobra.Command, fn func(ctx context.Context, app *App) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg := GetConfig()
	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	app, err := openAppFunc(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := app.Close(); cerr != nil && !errors.Is(cerr, context.Canceled) {
			logger.Warn().Err(cerr).Msg("failed to close app")
		}
	}()

	return fn(ctx, app)
}
