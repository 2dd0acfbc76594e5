// Package events records theme changes in the event log.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/theme"
)

// Repository is the minimal interface needed to write events.
type Repository interface {
	Create(ctx context.Context, event *models.Event) error
}

// LogThemeChange records a theme change for the configuration stored under key.
func LogThemeChange(ctx context.Context, repo Repository, key string, change theme.Change) error {
	if repo == nil {
		return fmt.Errorf("event repository is required")
	}
	if key == "" {
		return fmt.Errorf("theme key is required")
	}

	payload, err := json.Marshal(models.ThemeChangedPayload{
		Previous: change.Previous,
		Current:  change.Current,
		Source:   string(change.Source),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal theme payload: %w", err)
	}

	event := &models.Event{
		Timestamp:  change.Timestamp,
		Type:       eventTypeFor(change.Source),
		EntityType: models.EntityTypeTheme,
		EntityID:   key,
		Payload:    payload,
		Metadata: map[string]string{
			"source": string(change.Source),
		},
	}

	return repo.Create(ctx, event)
}

func eventTypeFor(source theme.ChangeSource) models.EventType {
	switch source {
	case theme.SourceReset:
		return models.EventTypeThemeReset
	case theme.SourceExternal:
		return models.EventTypeThemeSynced
	default:
		return models.EventTypeThemeChanged
	}
}

// Recorder is a theme.Subscriber that appends every change to the event log.
// Startup applications are not recorded.
type Recorder struct {
	repo    Repository
	key     string
	timeout time.Duration
	logger  zerolog.Logger
}

// NewRecorder creates a recorder for the configuration stored under key.
func NewRecorder(repo Repository, key string, logger zerolog.Logger) *Recorder {
	return &Recorder{repo: repo, key: key, timeout: 5 * time.Second, logger: logger}
}

// OnThemeChange implements theme.Subscriber. Failures are logged only.
func (r *Recorder) OnThemeChange(change theme.Change) {
	if change.Source == theme.SourceInit {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
	defer cancel()

	if err := LogThemeChange(ctx, r.repo, r.key, change); err != nil {
		r.logger.Warn().Err(err).Str("source", string(change.Source)).Msg("failed to record theme change")
	}
}
