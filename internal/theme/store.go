package theme

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/palette"
	"github.com/uamas/themekit/internal/storage"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "uamas_theme_config"

// Store errors.
var (
	ErrInvalidConfig       = errors.New("invalid theme config")
	ErrSyncUnsupported     = errors.New("storage backend does not report changes")
	ErrSubscriberExists    = errors.New("subscriber already registered")
	ErrSubscriberNotFound  = errors.New("subscriber not found")
	ErrInvalidSubscription = errors.New("subscriber id and handler are required")
)

// ChangeSource identifies what caused a Change.
type ChangeSource string

const (
	SourceInit        ChangeSource = "init"
	SourceSave        ChangeSource = "save"
	SourceToggleMode  ChangeSource = "toggle-mode"
	SourceColorScheme ChangeSource = "color-scheme"
	SourceFontSize    ChangeSource = "font-size"
	SourceReset       ChangeSource = "reset"
	SourceExternal    ChangeSource = "external"
)

// Change is delivered to subscribers after the store applies a config.
type Change struct {
	Previous  models.ThemeConfig
	Current   models.ThemeConfig
	Source    ChangeSource
	Timestamp time.Time
}

// Changed reports whether any field differs.
func (c Change) Changed() bool {
	return c.Previous != c.Current
}

// Subscriber receives theme changes.
type Subscriber interface {
	OnThemeChange(change Change)
}

// SubscriberFunc adapts a function to Subscriber.
type SubscriberFunc func(change Change)

// OnThemeChange calls f.
func (f SubscriberFunc) OnThemeChange(change Change) {
	f(change)
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithKey sets the storage key.
func WithKey(key string) StoreOption {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithBinder sets the binder invoked after every save.
func WithBinder(binder *Binder) StoreOption {
	return func(s *Store) {
		s.binder = binder
	}
}

// WithClock overrides the change timestamp source.
func WithClock(now func() time.Time) StoreOption {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// Store owns the persisted theme configuration. Create one per process and
// share it; every mutation is a full read-modify-write-apply cycle.
type Store struct {
	storage storage.Storage
	key     string
	binder  *Binder
	logger  zerolog.Logger
	now     func() time.Time

	mu      sync.Mutex
	applied models.ThemeConfig
	loaded  bool

	subMu       sync.RWMutex
	subscribers map[string]Subscriber
}

// NewStore creates a store over backend. A nil backend behaves like
// storage.Unavailable.
func NewStore(backend storage.Storage, logger zerolog.Logger, opts ...StoreOption) *Store {
	if backend == nil {
		backend = storage.Unavailable{}
	}
	s := &Store{
		storage:     backend,
		key:         DefaultKey,
		logger:      logger,
		now:         time.Now,
		subscribers: make(map[string]Subscriber),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key returns the storage key.
func (s *Store) Key() string {
	return s.key
}

// Init applies the persisted configuration once at startup and returns it.
func (s *Store) Init() models.ThemeConfig {
	s.mu.Lock()
	previous := s.applied
	cfg := s.read()
	s.apply(cfg)
	s.mu.Unlock()

	s.notify(Change{Previous: previous, Current: cfg, Source: SourceInit, Timestamp: s.now().UTC()})
	return cfg
}

// Config returns the persisted configuration, or the default when nothing
// valid can be read.
func (s *Store) Config() models.ThemeConfig {
	return s.read()
}

// Colors returns the palette for the current configuration.
func (s *Store) Colors() palette.Colors {
	cfg := s.Config()
	return palette.ThemeColors(cfg.Mode, cfg.ColorScheme)
}

// FontSizes returns the type scale for the current configuration.
func (s *Store) FontSizes() palette.FontSizeSet {
	return palette.FontSizes(s.Config().FontSize)
}

// Save persists cfg and applies it. Only an invalid cfg is an error; a
// failed write is logged and the config is still applied.
func (s *Store) Save(cfg models.ThemeConfig) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.update(SourceSave, func(c *models.ThemeConfig) { *c = cfg })
	return nil
}

// ToggleMode flips between light and dark.
func (s *Store) ToggleMode() models.ThemeConfig {
	return s.update(SourceToggleMode, func(c *models.ThemeConfig) {
		c.Mode = c.Mode.Toggle()
	})
}

// UpdateColorScheme replaces the color scheme.
func (s *Store) UpdateColorScheme(scheme models.ColorScheme) (models.ThemeConfig, error) {
	if !scheme.Valid() {
		return models.ThemeConfig{}, fmt.Errorf("%w: %q", models.ErrInvalidColorScheme, scheme)
	}
	return s.update(SourceColorScheme, func(c *models.ThemeConfig) {
		c.ColorScheme = scheme
	}), nil
}

// UpdateFontSize replaces the font size tier.
func (s *Store) UpdateFontSize(size models.FontSize) (models.ThemeConfig, error) {
	if !size.Valid() {
		return models.ThemeConfig{}, fmt.Errorf("%w: %q", models.ErrInvalidFontSize, size)
	}
	return s.update(SourceFontSize, func(c *models.ThemeConfig) {
		c.FontSize = size
	}), nil
}

// Reset replaces the whole configuration with the default.
func (s *Store) Reset() models.ThemeConfig {
	return s.update(SourceReset, func(c *models.ThemeConfig) {
		*c = models.DefaultThemeConfig()
	})
}

// Update applies fn to the current configuration and saves the result in a
// single read-modify-write cycle. An error from fn, or a result that fails
// validation, leaves the stored and applied configuration unchanged.
func (s *Store) Update(fn func(cfg *models.ThemeConfig) error) (models.ThemeConfig, error) {
	if fn == nil {
		return models.ThemeConfig{}, fmt.Errorf("%w: nil update", ErrInvalidConfig)
	}
	return s.updateChecked(SourceSave, fn)
}

func (s *Store) update(source ChangeSource, mutate func(*models.ThemeConfig)) models.ThemeConfig {
	next, _ := s.updateChecked(source, func(c *models.ThemeConfig) error {
		mutate(c)
		return nil
	})
	return next
}

func (s *Store) updateChecked(source ChangeSource, mutate func(*models.ThemeConfig) error) (models.ThemeConfig, error) {
	s.mu.Lock()
	previous := s.read()
	next := previous
	if err := mutate(&next); err != nil {
		s.mu.Unlock()
		return models.ThemeConfig{}, err
	}
	if err := next.Validate(); err != nil {
		s.mu.Unlock()
		return models.ThemeConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	s.persist(next)
	s.apply(next)
	s.mu.Unlock()

	s.logger.Info().
		Str("source", string(source)).
		Str("config", next.String()).
		Msg("theme updated")

	s.notify(Change{Previous: previous, Current: next, Source: source, Timestamp: s.now().UTC()})
	return next, nil
}

func (s *Store) read() models.ThemeConfig {
	raw, err := s.storage.Get(s.key)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			s.logger.Debug().Str("key", s.key).Msg("no stored theme, using default")
		} else {
			s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to read theme, using default")
		}
		return models.DefaultThemeConfig()
	}

	cfg, err := DecodeConfig(raw)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("discarding stored theme, using default")
		return models.DefaultThemeConfig()
	}
	return cfg
}

func (s *Store) persist(cfg models.ThemeConfig) {
	data, err := json.Marshal(cfg)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to encode theme")
		return
	}
	if err := s.storage.Set(s.key, string(data)); err != nil {
		s.logger.Warn().Err(err).Str("key", s.key).Msg("failed to persist theme; applying for this session only")
	}
}

// apply must be called with mu held.
func (s *Store) apply(cfg models.ThemeConfig) {
	s.binder.Apply(cfg)
	s.applied = cfg
	s.loaded = true
}

// DecodeConfig parses a stored configuration. Any malformed or incomplete
// value is rejected as a whole.
func DecodeConfig(raw string) (models.ThemeConfig, error) {
	var cfg models.ThemeConfig
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return models.ThemeConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if err := cfg.Validate(); err != nil {
		return models.ThemeConfig{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Sync applies configurations written by other processes or handles on the
// same storage until ctx is done. It returns ErrSyncUnsupported when the
// backend cannot report changes.
func (s *Store) Sync(ctx context.Context) error {
	watcher, ok := s.storage.(storage.Watcher)
	if !ok {
		return ErrSyncUnsupported
	}
	s.logger.Debug().Str("key", s.key).Msg("theme sync started")
	return watcher.Watch(ctx, s.key, s.onExternalChange)
}

// onExternalChange re-reads the key under mu rather than trusting the
// reported value, which may predate a local write that won the lock.
func (s *Store) onExternalChange(_ string, _ bool) {
	s.mu.Lock()
	previous := s.applied
	next := s.read()
	if s.loaded && previous == next {
		s.mu.Unlock()
		return
	}
	s.apply(next)
	s.mu.Unlock()

	s.logger.Info().Str("config", next.String()).Msg("theme changed externally")
	s.notify(Change{Previous: previous, Current: next, Source: SourceExternal, Timestamp: s.now().UTC()})
}

// Subscribe registers a subscriber under a unique id.
func (s *Store) Subscribe(id string, subscriber Subscriber) error {
	if id == "" || subscriber == nil {
		return ErrInvalidSubscription
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, exists := s.subscribers[id]; exists {
		return fmt.Errorf("%w: %s", ErrSubscriberExists, id)
	}
	s.subscribers[id] = subscriber
	return nil
}

// SubscribeFunc registers a function subscriber.
func (s *Store) SubscribeFunc(id string, fn func(Change)) error {
	if fn == nil {
		return ErrInvalidSubscription
	}
	return s.Subscribe(id, SubscriberFunc(fn))
}

// Unsubscribe removes a subscriber.
func (s *Store) Unsubscribe(id string) error {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	if _, exists := s.subscribers[id]; !exists {
		return fmt.Errorf("%w: %s", ErrSubscriberNotFound, id)
	}
	delete(s.subscribers, id)
	return nil
}

// notify delivers change to subscribers in id order. It must be called
// without mu held so subscribers may call back into the store.
func (s *Store) notify(change Change) {
	s.subMu.RLock()
	ids := make([]string, 0, len(s.subscribers))
	for id := range s.subscribers {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	subs := make([]Subscriber, 0, len(ids))
	for _, id := range ids {
		subs = append(subs, s.subscribers[id])
	}
	s.subMu.RUnlock()

	for _, sub := range subs {
		sub.OnThemeChange(change)
	}
}
