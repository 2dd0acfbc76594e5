package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uamas/themekit/internal/storage"
)

// ErrSettingNotFound is returned when a setting key has no value.
var ErrSettingNotFound = fmt.Errorf("setting: %w", storage.ErrNotFound)

// SettingsRepository handles key-value settings persistence.
type SettingsRepository struct {
	db *DB
}

// NewSettingsRepository creates a new SettingsRepository.
func NewSettingsRepository(db *DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Get retrieves a setting value.
func (r *SettingsRepository) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM settings WHERE key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrSettingNotFound
		}
		return "", fmt.Errorf("failed to get setting %s: %w", key, err)
	}
	return value, nil
}

// Set creates or replaces a setting value.
func (r *SettingsRepository) Set(ctx context.Context, key, value string) error {
	if strings.TrimSpace(key) == "" {
		return fmt.Errorf("setting key is required")
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC().Format(timestampFormat))
	if err != nil {
		return fmt.Errorf("failed to set setting %s: %w", key, err)
	}
	return nil
}

// Delete removes a setting. Missing keys are not an error.
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM settings WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete setting %s: %w", key, err)
	}
	return nil
}

// SettingsStorage adapts a SettingsRepository to storage.Storage.
type SettingsStorage struct {
	repo         *SettingsRepository
	timeout      time.Duration
	pollInterval time.Duration
}

var (
	_ storage.Storage = (*SettingsStorage)(nil)
	_ storage.Watcher = (*SettingsStorage)(nil)
)

// DefaultPollInterval is how often Watch re-reads a setting.
const DefaultPollInterval = time.Second

// NewSettingsStorage wraps repo. Each call runs under timeout.
func NewSettingsStorage(repo *SettingsRepository, timeout time.Duration) *SettingsStorage {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &SettingsStorage{repo: repo, timeout: timeout, pollInterval: DefaultPollInterval}
}

// WithPollInterval sets how often Watch polls the database.
func (s *SettingsStorage) WithPollInterval(interval time.Duration) *SettingsStorage {
	if interval > 0 {
		s.pollInterval = interval
	}
	return s
}

// Get implements storage.Storage.
func (s *SettingsStorage) Get(key string) (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Get(ctx, key)
}

// Set implements storage.Storage.
func (s *SettingsStorage) Set(key, value string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Set(ctx, key, value)
}

// Remove implements storage.Storage.
func (s *SettingsStorage) Remove(key string) error {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()
	return s.repo.Delete(ctx, key)
}

// Watch polls key until ctx is done and calls fn whenever its value differs
// from the previous poll. Writes made through this handle are reported too.
func (s *SettingsStorage) Watch(ctx context.Context, key string, fn storage.ChangeFunc) error {
	last, lastOK := s.current(key)

	ticker := time.NewTicker(s.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			value, ok := s.current(key)
			if value == last && ok == lastOK {
				continue
			}
			last, lastOK = value, ok
			fn(value, ok)
		}
	}
}

func (s *SettingsStorage) current(key string) (string, bool) {
	value, err := s.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			s.repo.db.logger.Debug().Err(err).Str("key", key).Msg("poll watched setting")
		}
		return "", false
	}
	return value, true
}
