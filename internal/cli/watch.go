package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/models"
	"github.com/uamas/themekit/internal/theme"
)

const watchSubscriberID = "watch"

func init() {
	rootCmd.AddCommand(watchCmd)
}

// ChangeRecord is the structured form of a theme.Change.
type ChangeRecord struct {
	Timestamp time.Time          `json:"timestamp" yaml:"timestamp"`
	Source    theme.ChangeSource `json:"source" yaml:"source"`
	Previous  models.ThemeConfig `json:"previous" yaml:"previous"`
	Current   models.ThemeConfig `json:"current" yaml:"current"`
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow theme changes made by other processes",
	Long: `Follow the stored theme and re-apply it whenever another process changes it.
Each change is printed as it is applied. Stop with Ctrl+C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(ctx context.Context, app *App) error {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, app, cmd.OutOrStdout())
		})
	},
}

func runWatch(ctx context.Context, app *App, out io.Writer) error {
	// Changes are written from the sync goroutine only.
	err := app.Store.SubscribeFunc(watchSubscriberID, func(change theme.Change) {
		if err := writeChange(out, change); err != nil {
			logger.Warn().Err(err).Msg("failed to write change")
		}
	})
	if err != nil {
		return err
	}
	defer func() { _ = app.Store.Unsubscribe(watchSubscriberID) }()

	if !IsStructuredOutput() {
		fmt.Fprintf(out, "Watching %s (%s). Current theme: %s\n", app.Store.Key(), app.Config.Storage.Backend, app.Store.Config())
	}

	err = app.Store.Sync(ctx)
	if errors.Is(err, theme.ErrSyncUnsupported) {
		return &PreflightError{
			Message:  fmt.Sprintf("the %s backend cannot report changes", app.Config.Storage.Backend),
			Hint:     "Use the file or sqlite backend",
			NextStep: "themekit --storage file watch",
			Err:      err,
		}
	}
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func writeChange(out io.Writer, change theme.Change) error {
	record := ChangeRecord{
		Timestamp: change.Timestamp,
		Source:    change.Source,
		Previous:  change.Previous,
		Current:   change.Current,
	}
	if IsStructuredOutput() {
		if IsJSONOutput() {
			// Streamed as one object per line.
			return writeJSONL(out, record)
		}
		return WriteOutput(out, record)
	}
	_, err := fmt.Fprintf(out, "%s  %s  %s -> %s\n",
		record.Timestamp.Local().Format("15:04:05"),
		formatSource(record.Source),
		record.Previous,
		record.Current,
	)
	return err
}
