package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/db"
	"github.com/uamas/themekit/internal/models"
)

var (
	historyLimit  int
	historySince  string
	historyCursor string
	historyFollow bool
)

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of events")
	historyCmd.Flags().StringVar(&historySince, "since", "", "only events after a duration ago (1h, 7d) or an RFC3339 time")
	historyCmd.Flags().StringVar(&historyCursor, "cursor", "", "continue after this event ID")
	historyCmd.Flags().BoolVarP(&historyFollow, "follow", "f", false, "keep printing new events")
}

// HistoryPage is the structured output of `themekit history`.
type HistoryPage struct {
	Events     []*models.Event `json:"events" yaml:"events"`
	NextCursor string          `json:"nextCursor,omitempty" yaml:"nextCursor,omitempty"`
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List theme changes",
	Long:  "List theme changes recorded in the event log. Requires the sqlite storage backend.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		since, err := parseSince(historySince)
		if err != nil {
			return err
		}

		return withApp(cmd, func(ctx context.Context, app *App) error {
			if err := requireHistory(app); err != nil {
				return err
			}

			if historyFollow {
				if IsJSONOutput() || IsYAMLOutput() {
					return fmt.Errorf("--follow supports text or --jsonl output only")
				}
				ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
				defer stop()

				config := DefaultStreamConfig()
				config.EntityID = app.Store.Key()
				config.Since = since
				config.IncludeExisting = since != nil
				config.JSONL = IsJSONLOutput()
				return NewEventStreamer(app.Events, cmd.OutOrStdout(), config).Stream(ctx)
			}

			entityType := models.EntityTypeTheme
			entityID := app.Store.Key()
			page, err := app.Events.Query(ctx, db.EventQuery{
				EntityType: &entityType,
				EntityID:   &entityID,
				Since:      since,
				Cursor:     historyCursor,
				Limit:      historyLimit,
			})
			if err != nil {
				return err
			}

			if IsJSONLOutput() {
				return WriteOutput(cmd.OutOrStdout(), page.Events)
			}
			if IsStructuredOutput() {
				return WriteOutput(cmd.OutOrStdout(), HistoryPage{Events: page.Events, NextCursor: page.NextCursor})
			}

			if len(page.Events) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No theme changes recorded.")
				return nil
			}

			rows := make([][]string, 0, len(page.Events))
			for _, event := range page.Events {
				rows = append(rows, historyRow(event))
			}
			if err := writeTable(cmd.OutOrStdout(), []string{"TIME", "EVENT", "SOURCE", "PREVIOUS", "CURRENT"}, rows); err != nil {
				return err
			}
			if page.NextCursor != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "\nMore: themekit history --cursor %s\n", page.NextCursor)
			}
			return nil
		})
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <event-id>",
	Short: "Show one recorded theme change",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			if err := requireHistory(app); err != nil {
				return err
			}

			event, err := app.Events.Get(ctx, args[0])
			if errors.Is(err, db.ErrEventNotFound) {
				return &PreflightError{
					Message:  fmt.Sprintf("no theme change with id %q", args[0]),
					Hint:     "List recorded changes to find an id",
					NextStep: "themekit history --json",
					Err:      err,
				}
			}
			if err != nil {
				return err
			}

			if IsStructuredOutput() {
				return WriteOutput(cmd.OutOrStdout(), event)
			}
			row := historyRow(event)
			return writeKeyValues(cmd.OutOrStdout(), [][2]string{
				{"ID", event.ID},
				{"Time", row[0]},
				{"Event", row[1]},
				{"Source", row[2]},
				{"Previous", row[3]},
				{"Current", row[4]},
			})
		})
	},
}

func requireHistory(app *App) error {
	if app.Events != nil {
		return nil
	}
	return &PreflightError{
		Message:  "theme history is only recorded by the sqlite backend",
		Hint:     "Set storage.backend: sqlite in the config file",
		NextStep: "themekit --storage sqlite history",
	}
}

func historyRow(event *models.Event) []string {
	var payload models.ThemeChangedPayload
	if len(event.Payload) > 0 {
		if err := json.Unmarshal(event.Payload, &payload); err != nil {
			logger.Debug().Err(err).Str("event", event.ID).Msg("unreadable event payload")
		}
	}

	source := payload.Source
	if source == "" {
		source = event.Metadata["source"]
	}

	previous, current := "-", "-"
	if payload.Previous.Mode != "" {
		previous = payload.Previous.String()
	}
	if payload.Current.Mode != "" {
		current = payload.Current.String()
	}

	return []string{
		event.Timestamp.Local().Format("2006-01-02 15:04:05"),
		formatEventType(event.Type),
		source,
		previous,
		current,
	}
}

// parseSince accepts a duration ago (30m, 1h, 7d) or an RFC3339 timestamp.
func parseSince(value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}

	if d, err := parseDurationWithDays(value); err == nil {
		t := time.Now().UTC().Add(-d)
		return &t, nil
	}

	if t, err := time.Parse(time.RFC3339, value); err == nil {
		t = t.UTC()
		return &t, nil
	}

	return nil, fmt.Errorf("invalid --since value %q: use a duration like 1h or 7d, or an RFC3339 time", value)
}

func parseDurationWithDays(value string) (time.Duration, error) {
	if strings.HasSuffix(value, "d") {
		days, err := strconv.Atoi(strings.TrimSuffix(value, "d"))
		if err != nil {
			return 0, fmt.Errorf("invalid day count: %w", err)
		}
		if days < 0 {
			return 0, fmt.Errorf("negative duration")
		}
		return time.Duration(days) * 24 * time.Hour, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("negative duration")
	}
	return d, nil
}
