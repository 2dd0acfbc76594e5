// Package cli implements the themekit command line.
package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/uamas/themekit/internal/config"
	"github.com/uamas/themekit/internal/logging"
)

var (
	cfgFile        string
	logLevel       string
	logFormat      string
	storageBackend string
	jsonOutput     bool
	jsonlOutput    bool
	yamlOutput     bool
	nonInteractive bool
	noColor        bool
	noProgress     bool

	appConfig *config.Config
	logger    zerolog.Logger = zerolog.Nop()
)

// Build metadata, set with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "themekit",
	Short: "Manage the application theme",
	Long: `themekit stores the application theme (mode, color scheme and font size),
derives its design tokens and applies them to a style document.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: initConfig,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/themekit/config.yaml)")
	flags.StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	flags.StringVar(&logFormat, "log-format", "", "log format (text, json)")
	flags.StringVar(&storageBackend, "storage", "", "storage backend override (file, sqlite, memory)")
	flags.BoolVar(&jsonOutput, "json", false, "output JSON")
	flags.BoolVar(&jsonlOutput, "jsonl", false, "output JSON lines")
	flags.BoolVar(&yamlOutput, "yaml", false, "output YAML")
	flags.BoolVar(&nonInteractive, "non-interactive", false, "never prompt or launch interactive views")
	flags.BoolVar(&noColor, "no-color", false, "disable colored output")
	flags.BoolVar(&noProgress, "no-progress", false, "disable progress output")
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	if countTrue(jsonOutput, jsonlOutput, yamlOutput) > 1 {
		return fmt.Errorf("--json, --jsonl and --yaml are mutually exclusive")
	}

	cfg, err := config.Load(cfgFile)
	if err != nil {
		return &PreflightError{
			Message:  err.Error(),
			Hint:     "Fix the config file or the THEMEKIT_* environment variables",
			NextStep: "themekit --config <path> show",
		}
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if logFormat != "" {
		cfg.Logging.Format = logFormat
	}
	if storageBackend != "" {
		cfg.Storage.Backend = storageBackend
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	if err := logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: logging.Format(cfg.Logging.Format),
	}); err != nil {
		return err
	}

	appConfig = cfg
	logger = logging.Component("cli")
	logger.Debug().Str("config", cfg.Source).Str("backend", cfg.Storage.Backend).Msg("configuration loaded")
	return nil
}

// GetConfig returns the loaded configuration, or nil before initialization.
func GetConfig() *config.Config {
	return appConfig
}

func countTrue(values ...bool) int {
	n := 0
	for _, v := range values {
		if v {
			n++
		}
	}
	return n
}
