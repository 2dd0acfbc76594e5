package theme

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/storage"
)

type failingWrites struct {
	*storage.Memory
}

func (f failingWrites) Set(string, string) error {
	return errors.New("quota exceeded")
}

func newTestStore(t *testing.T, backend storage.Storage) (*Store, *Document) {
	t.Helper()

	doc := NewDocument()
	store := NewStore(backend, zerolog.Nop(), WithBinder(NewBinder(doc, zerolog.Nop())))
	return store, doc
}

func allConfigs() []models.ThemeConfig {
	var configs []models.ThemeConfig
	for _, mode := range models.AllThemeModes {
		for _, scheme := range models.AllColorSchemes {
			for _, size := range models.AllFontSizes {
				configs = append(configs, models.ThemeConfig{Mode: mode, ColorScheme: scheme, FontSize: size})
			}
		}
	}
	return configs
}

func TestConfigDefaultsWhenNothingUsable(t *testing.T) {
	corrupt := storage.NewMemory()
	require.NoError(t, corrupt.Set(DefaultKey, "not valid json{{"))

	incomplete := storage.NewMemory()
	require.NoError(t, incomplete.Set(DefaultKey, `{"mode":"dark","colorScheme":"rose"}`))

	unknown := storage.NewMemory()
	require.NoError(t, unknown.Set(DefaultKey, `{"mode":"dark","colorScheme":"teal","fontSize":"large"}`))

	tests := []struct {
		name    string
		backend storage.Storage
	}{
		{name: "absent", backend: storage.NewMemory()},
		{name: "corrupt", backend: corrupt},
		{name: "missing field", backend: incomplete},
		{name: "unknown value", backend: unknown},
		{name: "unavailable", backend: storage.Unavailable{}},
		{name: "nil backend", backend: nil},
	}

	want := models.ThemeConfig{Mode: models.ThemeModeLight, ColorScheme: models.ColorSchemeEmerald, FontSize: models.FontSizeMedium}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t, tt.backend)
			require.Equal(t, want, store.Config())
		})
	}
}

func TestSaveRoundTrip(t *testing.T) {
	backend := storage.NewMemory()
	store, _ := newTestStore(t, backend)

	for _, cfg := range allConfigs() {
		require.NoError(t, store.Save(cfg))
		require.Equal(t, cfg, store.Config())

		reloaded, _ := newTestStore(t, backend)
		require.Equal(t, cfg, reloaded.Config())
	}
}

func TestSavePersistsWireLayout(t *testing.T) {
	backend := storage.NewMemory()
	store, _ := newTestStore(t, backend)

	require.NoError(t, store.Save(models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeBlue, FontSize: models.FontSizeSmall}))

	raw, err := backend.Get(DefaultKey)
	require.NoError(t, err)
	require.JSONEq(t, `{"mode":"dark","colorScheme":"blue","fontSize":"small"}`, raw)
}

func TestSaveRejectsInvalidConfig(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)

	err := store.Save(models.ThemeConfig{Mode: "dim"})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = backend.Get(DefaultKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Empty(t, doc.Snapshot().Tokens)
}

func TestSaveAppliesEvenWhenWriteFails(t *testing.T) {
	store, doc := newTestStore(t, failingWrites{storage.NewMemory()})

	cfg := models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeOrange, FontSize: models.FontSizeLarge}
	require.NoError(t, store.Save(cfg))

	require.True(t, doc.HasClass(DarkClass))
	require.Equal(t, "#000000", doc.Snapshot().Background)
	require.Equal(t, "18px", doc.Snapshot().FontSize)
	require.Equal(t, models.DefaultThemeConfig(), store.Config())
}

func TestUpdateAppliesSeveralFieldsAtOnce(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)

	var sources []ChangeSource
	require.NoError(t, store.SubscribeFunc("log", func(change Change) {
		sources = append(sources, change.Source)
	}))

	got, err := store.Update(func(cfg *models.ThemeConfig) error {
		cfg.Mode = models.ThemeModeDark
		cfg.FontSize = models.FontSizeSmall
		return nil
	})
	require.NoError(t, err)

	want := models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeEmerald, FontSize: models.FontSizeSmall}
	require.Equal(t, want, got)
	require.Equal(t, want, store.Config())
	require.True(t, doc.HasClass(DarkClass))
	require.Equal(t, []ChangeSource{SourceSave}, sources)
}

func TestUpdateRejectsWithoutWriting(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)

	errBadFlag := errors.New("bad flag")
	_, err := store.Update(func(cfg *models.ThemeConfig) error {
		cfg.Mode = models.ThemeModeDark
		return errBadFlag
	})
	require.ErrorIs(t, err, errBadFlag)

	_, err = store.Update(func(cfg *models.ThemeConfig) error {
		cfg.ColorScheme = "teal"
		return nil
	})
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = store.Update(nil)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = backend.Get(DefaultKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
	require.Empty(t, doc.Snapshot().Tokens)
}

func TestConcurrentUpdatesSeeEachOthersWrites(t *testing.T) {
	store, _ := newTestStore(t, storage.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Update(func(cfg *models.ThemeConfig) error {
				cfg.Mode = cfg.Mode.Toggle()
				return nil
			})
		}()
	}
	wg.Wait()

	require.Equal(t, models.ThemeModeLight, store.Config().Mode)
}

func TestToggleMode(t *testing.T) {
	store, doc := newTestStore(t, storage.NewMemory())

	got := store.ToggleMode()
	require.Equal(t, models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeEmerald, FontSize: models.FontSizeMedium}, got)
	require.True(t, doc.HasClass(DarkClass))

	got = store.ToggleMode()
	require.Equal(t, models.ThemeModeLight, got.Mode)
	require.False(t, doc.HasClass(DarkClass))
}

func TestUpdateColorSchemeSurvivesReload(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)

	got, err := store.UpdateColorScheme(models.ColorSchemePurple)
	require.NoError(t, err)
	want := models.ThemeConfig{Mode: models.ThemeModeLight, ColorScheme: models.ColorSchemePurple, FontSize: models.FontSizeMedium}
	require.Equal(t, want, got)

	reloaded, _ := newTestStore(t, backend)
	require.Equal(t, want, reloaded.Config())

	primary, ok := doc.Token("--color-primary")
	require.True(t, ok)
	require.Equal(t, "#9333EA", primary)
}

func TestUpdateColorSchemeReplacesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "theme.json")
	require.NoError(t, os.WriteFile(path, []byte("not valid json{{"), 0o600))

	backend, err := storage.NewFile(path, zerolog.Nop())
	require.NoError(t, err)
	store, _ := newTestStore(t, backend)
	require.Equal(t, models.DefaultThemeConfig(), store.Config())

	_, err = store.UpdateColorScheme(models.ColorSchemePurple)
	require.NoError(t, err)
	require.Equal(t, models.ColorSchemePurple, store.Config().ColorScheme)

	reopened, err := storage.NewFile(path, zerolog.Nop())
	require.NoError(t, err)
	reloaded, _ := newTestStore(t, reopened)
	require.Equal(t, models.ColorSchemePurple, reloaded.Config().ColorScheme)
}

func TestUpdateFontSize(t *testing.T) {
	store, doc := newTestStore(t, storage.NewMemory())

	got, err := store.UpdateFontSize(models.FontSizeSmall)
	require.NoError(t, err)
	require.Equal(t, models.FontSizeSmall, got.FontSize)
	require.Equal(t, "14px", doc.Snapshot().FontSize)

	value, ok := doc.Token("--font-size-4xl")
	require.True(t, ok)
	require.Equal(t, "30px", value)
}

func TestUpdatesRejectUnknownValues(t *testing.T) {
	store, _ := newTestStore(t, storage.NewMemory())

	_, err := store.UpdateColorScheme("teal")
	require.ErrorIs(t, err, models.ErrInvalidColorScheme)

	_, err = store.UpdateFontSize("huge")
	require.ErrorIs(t, err, models.ErrInvalidFontSize)

	require.Equal(t, models.DefaultThemeConfig(), store.Config())
}

func TestResetDiscardsAllFields(t *testing.T) {
	store, doc := newTestStore(t, storage.NewMemory())
	require.NoError(t, store.Save(models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeRose, FontSize: models.FontSizeLarge}))

	got := store.Reset()
	require.Equal(t, models.DefaultThemeConfig(), got)
	require.Equal(t, models.DefaultThemeConfig(), store.Config())
	require.False(t, doc.HasClass(DarkClass))
	require.Equal(t, "#FFFFFF", doc.Snapshot().Background)
}

func TestDerivedTokensFollowConfig(t *testing.T) {
	store, _ := newTestStore(t, storage.NewMemory())
	store.ToggleMode()

	require.Equal(t, "#000000", store.Colors().Background)
	require.Equal(t, "16px", store.FontSizes().Base)
}

func TestInitAppliesPersistedConfig(t *testing.T) {
	backend := storage.NewMemory()
	require.NoError(t, backend.Set(DefaultKey, `{"mode":"dark","colorScheme":"blue","fontSize":"large"}`))
	store, doc := newTestStore(t, backend)

	var changes []Change
	require.NoError(t, store.SubscribeFunc("ui", func(change Change) { changes = append(changes, change) }))

	cfg := store.Init()
	require.Equal(t, models.ThemeModeDark, cfg.Mode)
	require.True(t, doc.HasClass(DarkClass))
	require.Len(t, changes, 1)
	require.Equal(t, SourceInit, changes[0].Source)
}

func TestSubscribersNotifiedAfterEachMutation(t *testing.T) {
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	store := NewStore(storage.NewMemory(), zerolog.Nop(), WithClock(func() time.Time { return fixed }))

	var changes []Change
	require.NoError(t, store.SubscribeFunc("b", func(change Change) {
		// Subscribers observe the already-persisted value.
		require.Equal(t, change.Current, store.Config())
		changes = append(changes, change)
	}))

	store.ToggleMode()
	_, err := store.UpdateColorScheme(models.ColorSchemeBlue)
	require.NoError(t, err)
	_, err = store.UpdateFontSize(models.FontSizeLarge)
	require.NoError(t, err)
	store.Reset()

	require.Len(t, changes, 4)
	require.Equal(t, []ChangeSource{SourceToggleMode, SourceColorScheme, SourceFontSize, SourceReset},
		[]ChangeSource{changes[0].Source, changes[1].Source, changes[2].Source, changes[3].Source})
	require.Equal(t, models.DefaultThemeConfig(), changes[0].Previous)
	require.Equal(t, models.ThemeModeDark, changes[0].Current.Mode)
	require.Equal(t, fixed, changes[3].Timestamp)
	require.True(t, changes[3].Changed())
}

func TestSubscriptionErrors(t *testing.T) {
	store := NewStore(storage.NewMemory(), zerolog.Nop())

	require.ErrorIs(t, store.SubscribeFunc("", func(Change) {}), ErrInvalidSubscription)
	require.ErrorIs(t, store.SubscribeFunc("ui", nil), ErrInvalidSubscription)
	require.NoError(t, store.SubscribeFunc("ui", func(Change) {}))
	require.ErrorIs(t, store.SubscribeFunc("ui", func(Change) {}), ErrSubscriberExists)
	require.NoError(t, store.Unsubscribe("ui"))
	require.ErrorIs(t, store.Unsubscribe("ui"), ErrSubscriberNotFound)
}

func TestSubscriberOrderIsStable(t *testing.T) {
	store := NewStore(storage.NewMemory(), zerolog.Nop())

	var order []string
	for _, id := range []string{"c", "a", "b"} {
		id := id
		require.NoError(t, store.SubscribeFunc(id, func(Change) { order = append(order, id) }))
	}
	store.ToggleMode()
	require.Equal(t, []string{"a", "b", "c"}, order)
}

func TestConcurrentMutationsDoNotLoseUpdates(t *testing.T) {
	store, _ := newTestStore(t, storage.NewMemory())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.ToggleMode()
		}()
	}
	wg.Wait()

	// An even number of toggles ends where it started.
	require.Equal(t, models.ThemeModeLight, store.Config().Mode)
}

func TestSyncAppliesChangesFromOtherHandles(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)
	store.Init()

	other := NewStore(backend.Share(), zerolog.Nop())

	changes := make(chan Change, 4)
	require.NoError(t, store.SubscribeFunc("ui", func(change Change) {
		select {
		case changes <- change:
		default:
		}
	}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- store.Sync(ctx) }()

	var change Change
	require.Eventually(t, func() bool {
		other.ToggleMode()
		select {
		case change = <-changes:
			return true
		default:
			return false
		}
	}, 2*time.Second, 20*time.Millisecond)

	require.Equal(t, SourceExternal, change.Source)
	require.Eventually(t, func() bool {
		return doc.HasClass(DarkClass) == (other.Config().Mode == models.ThemeModeDark)
	}, 2*time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestExternalChangeIgnoresStaleValue(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)
	store.Init()

	stale := `{"mode":"light","colorScheme":"rose","fontSize":"small"}`

	saved := models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeBlue, FontSize: models.FontSizeLarge}
	require.NoError(t, store.Save(saved))

	var external []Change
	require.NoError(t, store.SubscribeFunc("ui", func(change Change) {
		if change.Source == SourceExternal {
			external = append(external, change)
		}
	}))

	// A watcher notification that was read before the save lands after it.
	store.onExternalChange(stale, true)

	require.Empty(t, external)
	require.Equal(t, saved, store.Config())
	require.True(t, doc.HasClass(DarkClass))
	require.Equal(t, "18px", doc.Snapshot().FontSize)
}

func TestExternalChangeAppliesStoredValue(t *testing.T) {
	backend := storage.NewMemory()
	store, doc := newTestStore(t, backend)
	store.Init()

	var external []Change
	require.NoError(t, store.SubscribeFunc("ui", func(change Change) {
		if change.Source == SourceExternal {
			external = append(external, change)
		}
	}))

	written := `{"mode":"dark","colorScheme":"orange","fontSize":"small"}`
	require.NoError(t, backend.Share().Set(DefaultKey, written))
	store.onExternalChange(written, true)

	require.Len(t, external, 1)
	require.Equal(t, models.ColorSchemeOrange, external[0].Current.ColorScheme)
	require.True(t, doc.HasClass(DarkClass))
	require.Equal(t, "14px", doc.Snapshot().FontSize)
}

func TestSyncUnsupported(t *testing.T) {
	store := NewStore(storage.Unavailable{}, zerolog.Nop())
	require.ErrorIs(t, store.Sync(context.Background()), ErrSyncUnsupported)
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(`{"mode":"dark","colorScheme":"rose","fontSize":"large"}`)
	require.NoError(t, err)
	require.Equal(t, models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemeRose, FontSize: models.FontSizeLarge}, cfg)

	_, err = DecodeConfig("not valid json{{")
	require.ErrorIs(t, err, ErrInvalidConfig)
}
