package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/uamas/themekit/internal/db"
	"github.com/uamas/themekit/internal/models"
)

// StreamConfig controls how the event log is followed.
type StreamConfig struct {
	// PollInterval is how often new events are fetched.
	PollInterval time.Duration
	// BatchSize is the maximum number of events fetched per poll.
	BatchSize int
	// EntityID limits the stream to one theme key when set.
	EntityID string
	// Since replays events at or after this time when IncludeExisting is set.
	Since *time.Time
	// IncludeExisting writes events already in the log before following.
	IncludeExisting bool
	// JSONL writes one JSON object per line instead of formatted text.
	JSONL bool
}

// DefaultStreamConfig returns the default follow settings.
func DefaultStreamConfig() StreamConfig {
	return StreamConfig{
		PollInterval: 500 * time.Millisecond,
		BatchSize:    100,
	}
}

type eventQuerier interface {
	Query(ctx context.Context, q db.EventQuery) (*db.EventPage, error)
}

// EventStreamer tails the theme event log.
type EventStreamer struct {
	repo   eventQuerier
	out    io.Writer
	config StreamConfig
}

// NewEventStreamer creates a streamer writing to out.
func NewEventStreamer(repo eventQuerier, out io.Writer, config StreamConfig) *EventStreamer {
	if config.PollInterval <= 0 {
		config.PollInterval = DefaultStreamConfig().PollInterval
	}
	if config.BatchSize <= 0 {
		config.BatchSize = DefaultStreamConfig().BatchSize
	}
	return &EventStreamer{repo: repo, out: out, config: config}
}

// Stream writes events until ctx is done. Cancellation is not an error.
func (s *EventStreamer) Stream(ctx context.Context) error {
	cursor := ""
	var since *time.Time
	if s.config.IncludeExisting {
		since = s.config.Since
	} else {
		last, err := s.tail(ctx)
		if err != nil {
			return err
		}
		cursor = last
	}

	ticker := time.NewTicker(s.config.PollInterval)
	defer ticker.Stop()

	for {
		for {
			events, next, err := s.poll(ctx, cursor, since)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			for _, event := range events {
				if err := s.writeEvent(event); err != nil {
					return err
				}
			}
			if next != "" {
				cursor = next
			}
			if len(events) < s.config.BatchSize {
				break
			}
		}

		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// poll fetches the next batch after cursor and returns the ID of the last
// event seen, or cursor when nothing new arrived.
func (s *EventStreamer) poll(ctx context.Context, cursor string, since *time.Time) ([]*models.Event, string, error) {
	query := db.EventQuery{
		Since:  since,
		Cursor: cursor,
		Limit:  s.config.BatchSize,
	}
	if s.config.EntityID != "" {
		entityType := models.EntityTypeTheme
		entityID := s.config.EntityID
		query.EntityType = &entityType
		query.EntityID = &entityID
	}

	page, err := s.repo.Query(ctx, query)
	if err != nil {
		return nil, cursor, fmt.Errorf("failed to poll events: %w", err)
	}
	if len(page.Events) == 0 {
		return nil, cursor, nil
	}
	return page.Events, page.Events[len(page.Events)-1].ID, nil
}

// tail returns the ID of the newest matching event, or "" for an empty log.
func (s *EventStreamer) tail(ctx context.Context) (string, error) {
	cursor := ""
	for {
		events, next, err := s.poll(ctx, cursor, nil)
		if err != nil {
			return "", err
		}
		cursor = next
		if len(events) < s.config.BatchSize {
			return cursor, nil
		}
	}
}

func (s *EventStreamer) writeEvent(event *models.Event) error {
	if s.config.JSONL {
		data, err := json.Marshal(event)
		if err != nil {
			return fmt.Errorf("failed to encode event: %w", err)
		}
		_, err = fmt.Fprintf(s.out, "%s\n", data)
		return err
	}
	_, err := fmt.Fprintln(s.out, formatEventLine(event))
	return err
}

func formatEventLine(event *models.Event) string {
	line := fmt.Sprintf("%s  %s", event.Timestamp.Local().Format(time.RFC3339), formatEventType(event.Type))

	var payload models.ThemeChangedPayload
	if len(event.Payload) > 0 && json.Unmarshal(event.Payload, &payload) == nil && payload.Current.Mode != "" {
		line += fmt.Sprintf("  %s -> %s", payload.Previous, payload.Current)
	}
	return line
}
