package cli

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uamas/themekit/internal/config"
	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/storage"
	"github.com/uamas/themekit/internal/theme"
)

func TestRunWatchPrintsExternalChanges(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)
	t.Setenv("NO_COLOR", "1")

	mem := storage.NewMemory()
	cfg := config.DefaultConfig()
	cfg.Storage.Backend = config.BackendMemory

	app := &App{Config: cfg, Document: theme.NewDocument()}
	app.Store = theme.NewStore(mem, zerolog.Nop(), theme.WithBinder(theme.NewBinder(app.Document, zerolog.Nop())))
	app.Store.Init()

	var out lockedBuffer
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- runWatch(ctx, app, &out) }()

	other := theme.NewStore(mem.Share(), zerolog.Nop())
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "Watching")
	}, time.Second, 5*time.Millisecond)

	// Writes made before the watcher registers are missed, so keep toggling.
	require.Eventually(t, func() bool {
		other.ToggleMode()
		return strings.Contains(out.String(), "external")
	}, 2*time.Second, 20*time.Millisecond)

	require.Contains(t, out.String(), "light/emerald/medium -> dark/emerald/medium")
	require.Eventually(t, func() bool {
		return app.Document.HasClass(theme.DarkClass) == (other.Config().Mode == models.ThemeModeDark)
	}, time.Second, 5*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestRunWatchUnsupportedBackend(t *testing.T) {
	resetFlags()
	t.Cleanup(resetFlags)

	cfg := config.DefaultConfig()
	app := &App{Config: cfg, Store: theme.NewStore(storage.Unavailable{}, zerolog.Nop())}

	err := runWatch(context.Background(), app, &lockedBuffer{})
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
	require.ErrorIs(t, err, theme.ErrSyncUnsupported)
}
