package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/uamas/themekit/internal/db"
	"github.com/uamas/themekit/internal/models"
)

// useBackend points the CLI at a fresh backend in a temp dir.
func useBackend(t *testing.T, backend string) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	t.Setenv("THEMEKIT_STORAGE_BACKEND", backend)
	t.Setenv("THEMEKIT_STORAGE_PATH", filepath.Join(dir, "theme.json"))
	t.Setenv("THEMEKIT_STORAGE_DATABASE", filepath.Join(dir, "themekit.db"))
	t.Setenv("NO_COLOR", "1")
	return dir
}

func resetFlags() {
	cfgFile = ""
	logLevel = ""
	logFormat = ""
	storageBackend = ""
	jsonOutput = false
	jsonlOutput = false
	yamlOutput = false
	nonInteractive = false
	noColor = false
	noProgress = true
	setMode, setScheme, setFontSize = "", "", ""
	tokensMode, tokensScheme, tokensSize = "", "", ""
	cssOutput = ""
	historyLimit = 20
	historySince = ""
	historyCursor = ""
	historyFollow = false
	uiNoSync = false
	presetDescription = ""
	presetForce = false
}

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	resetFlags()
	t.Cleanup(resetFlags)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func decodeState(t *testing.T, out string) ThemeState {
	t.Helper()
	var state ThemeState
	require.NoError(t, json.Unmarshal([]byte(out), &state), out)
	return state
}

func TestShowDefaultTheme(t *testing.T) {
	useBackend(t, "file")

	out, err := runCLI(t, "show", "--json")
	require.NoError(t, err)

	state := decodeState(t, out)
	require.Equal(t, models.ThemeModeLight, state.Mode)
	require.Equal(t, models.ColorSchemeEmerald, state.ColorScheme)
	require.Equal(t, models.FontSizeMedium, state.FontSize)
	require.Equal(t, "uamas_theme_config", state.Key)
	require.Equal(t, "#FFFFFF", state.Background)
	require.Equal(t, "#059669", state.Primary)
	require.Equal(t, "16px", state.BaseFontSize)
}

func TestMutationsPersistAcrossInvocations(t *testing.T) {
	useBackend(t, "file")

	_, err := runCLI(t, "toggle")
	require.NoError(t, err)
	_, err = runCLI(t, "scheme", "Purple")
	require.NoError(t, err)
	_, err = runCLI(t, "font-size", "large")
	require.NoError(t, err)

	out, err := runCLI(t, "show", "--json")
	require.NoError(t, err)
	state := decodeState(t, out)
	require.Equal(t, models.ThemeConfig{Mode: models.ThemeModeDark, ColorScheme: models.ColorSchemePurple, FontSize: models.FontSizeLarge},
		models.ThemeConfig{Mode: state.Mode, ColorScheme: state.ColorScheme, FontSize: state.FontSize})

	out, err = runCLI(t, "reset", "--json")
	require.NoError(t, err)
	state = decodeState(t, out)
	require.Equal(t, models.ThemeModeLight, state.Mode)
	require.Equal(t, models.ColorSchemeEmerald, state.ColorScheme)
}

func TestInvalidValuesAreRejected(t *testing.T) {
	useBackend(t, "file")

	_, err := runCLI(t, "scheme", "teal")
	require.ErrorIs(t, err, models.ErrInvalidColorScheme)

	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
	require.NotEmpty(t, preflight.NextStep)

	_, err = runCLI(t, "font-size", "huge")
	require.ErrorIs(t, err, models.ErrInvalidFontSize)

	_, err = runCLI(t, "set", "--mode", "dim")
	require.ErrorIs(t, err, models.ErrInvalidThemeMode)

	_, err = runCLI(t, "set")
	require.Error(t, err)
}

func TestSetReplacesSeveralFields(t *testing.T) {
	useBackend(t, "file")

	out, err := runCLI(t, "set", "--mode", "dark", "--scheme", "blue", "--json")
	require.NoError(t, err)
	state := decodeState(t, out)
	require.Equal(t, models.ThemeModeDark, state.Mode)
	require.Equal(t, models.ColorSchemeBlue, state.ColorScheme)
	require.Equal(t, models.FontSizeMedium, state.FontSize)
	require.Equal(t, "#000000", state.Background)
}

func TestSetKeepsStoredFieldsAndRejectsAtomically(t *testing.T) {
	useBackend(t, "file")

	_, err := runCLI(t, "font-size", "large")
	require.NoError(t, err)

	_, err = runCLI(t, "set", "--mode", "dark", "--scheme", "sepia")
	require.ErrorIs(t, err, models.ErrInvalidColorScheme)

	out, err := runCLI(t, "show", "--json")
	require.NoError(t, err)
	state := decodeState(t, out)
	require.Equal(t, models.ThemeModeLight, state.Mode)
	require.Equal(t, models.FontSizeLarge, state.FontSize)

	out, err = runCLI(t, "set", "--scheme", "orange", "--json")
	require.NoError(t, err)
	state = decodeState(t, out)
	require.Equal(t, models.ColorSchemeOrange, state.ColorScheme)
	require.Equal(t, models.FontSizeLarge, state.FontSize)
}

func TestCSSRendersAppliedTheme(t *testing.T) {
	dir := useBackend(t, "file")

	out, err := runCLI(t, "css")
	require.NoError(t, err)
	require.Contains(t, out, ":root {")
	require.Contains(t, out, "--color-primary: #059669;")
	require.Contains(t, out, "--font-size-2xl: 24px;")
	require.NotContains(t, out, "root class: dark")

	_, err = runCLI(t, "toggle")
	require.NoError(t, err)

	path := filepath.Join(dir, "out", "theme.css")
	_, err = runCLI(t, "css", "--output", path)
	require.NoError(t, err)

	data, err := readFile(path)
	require.NoError(t, err)
	require.Contains(t, data, "/* root class: dark */")
	require.Contains(t, data, "background-color: #000000;")
}

func TestTokensJSONL(t *testing.T) {
	useBackend(t, "file")

	out, err := runCLI(t, "tokens", "--jsonl", "--scheme", "rose")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 32+7)

	var first TokenRow
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &first))
	require.Equal(t, "--color-primary", first.Variable)

	// Preview flags never persist.
	out, err = runCLI(t, "show", "--json")
	require.NoError(t, err)
	require.Equal(t, models.ColorSchemeEmerald, decodeState(t, out).ColorScheme)
}

func TestExportYAML(t *testing.T) {
	useBackend(t, "file")

	out, err := runCLI(t, "export", "--yaml")
	require.NoError(t, err)
	require.Contains(t, out, "colorScheme: emerald")
	require.Contains(t, out, "key: textPrimary")
	require.Contains(t, out, "--color-background:")
	require.Contains(t, out, "fontSize: 16px")
}

func TestOutputFlagsAreExclusive(t *testing.T) {
	useBackend(t, "file")

	_, err := runCLI(t, "show", "--json", "--yaml")
	require.Error(t, err)
}

func TestHistoryRequiresSQLite(t *testing.T) {
	useBackend(t, "file")

	_, err := runCLI(t, "history")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
}

func TestHistoryRecordsChanges(t *testing.T) {
	useBackend(t, "sqlite")

	_, err := runCLI(t, "toggle")
	require.NoError(t, err)
	_, err = runCLI(t, "scheme", "orange")
	require.NoError(t, err)
	_, err = runCLI(t, "reset")
	require.NoError(t, err)

	out, err := runCLI(t, "history", "--json")
	require.NoError(t, err)

	var page HistoryPage
	require.NoError(t, json.Unmarshal([]byte(out), &page))
	require.Len(t, page.Events, 3)
	require.Equal(t, models.EventTypeThemeChanged, page.Events[0].Type)
	require.Equal(t, models.EventTypeThemeReset, page.Events[2].Type)

	var payload models.ThemeChangedPayload
	require.NoError(t, json.Unmarshal(page.Events[1].Payload, &payload))
	require.Equal(t, models.ColorSchemeOrange, payload.Current.ColorScheme)
	require.Equal(t, models.ThemeModeDark, payload.Current.Mode)

	out, err = runCLI(t, "history", "--limit", "2")
	require.NoError(t, err)
	require.Contains(t, out, "toggle-mode")
	require.Contains(t, out, "--cursor "+page.Events[1].ID)

	out, err = runCLI(t, "history", "show", page.Events[1].ID, "--json")
	require.NoError(t, err)
	var event models.Event
	require.NoError(t, json.Unmarshal([]byte(out), &event))
	require.Equal(t, page.Events[1].ID, event.ID)
	require.Equal(t, models.EventTypeThemeChanged, event.Type)

	out, err = runCLI(t, "history", "show", page.Events[2].ID)
	require.NoError(t, err)
	require.Contains(t, out, "reset")

	_, err = runCLI(t, "history", "show", "no-such-event")
	require.ErrorIs(t, err, db.ErrEventNotFound)
}

func TestVersion(t *testing.T) {
	useBackend(t, "memory")

	out, err := runCLI(t, "version", "--json")
	require.NoError(t, err)

	var info VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, Version, info.Version)
}

func TestUIRefusesNonInteractive(t *testing.T) {
	useBackend(t, "memory")

	_, err := runCLI(t, "ui", "--non-interactive")
	var preflight *PreflightError
	require.True(t, errors.As(err, &preflight))
}

func usePresetDirs(t *testing.T) (string, string) {
	t.Helper()
	project, configDir := t.TempDir(), t.TempDir()
	original := presetDirsFunc
	presetDirsFunc = func() (string, string) { return project, configDir }
	t.Cleanup(func() { presetDirsFunc = original })
	return project, configDir
}

func TestPresetApply(t *testing.T) {
	useBackend(t, "file")
	usePresetDirs(t)

	out, err := runCLI(t, "preset", "apply", "midnight", "--json")
	require.NoError(t, err)
	state := decodeState(t, out)
	require.Equal(t, models.ThemeModeDark, state.Mode)
	require.Equal(t, models.ColorSchemeBlue, state.ColorScheme)

	_, err = runCLI(t, "preset", "apply", "nope")
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)
}

func TestPresetSaveThenList(t *testing.T) {
	useBackend(t, "file")
	_, configDir := usePresetDirs(t)

	_, err := runCLI(t, "set", "--mode", "dark", "--scheme", "rose", "--font-size", "small")
	require.NoError(t, err)

	_, err = runCLI(t, "preset", "save", "night-rose", "--description", "mine")
	require.NoError(t, err)
	require.FileExists(t, filepath.Join(configDir, "presets", "night-rose.yaml"))

	_, err = runCLI(t, "preset", "save", "night-rose")
	var preflight *PreflightError
	require.ErrorAs(t, err, &preflight)

	out, err := runCLI(t, "preset", "list")
	require.NoError(t, err)
	require.Contains(t, out, "night-rose")
	require.Contains(t, out, "dark/rose/small")
	require.Contains(t, out, "builtin")

	_, err = runCLI(t, "reset")
	require.NoError(t, err)
	out, err = runCLI(t, "preset", "apply", "night-rose", "--json")
	require.NoError(t, err)
	require.Equal(t, models.ColorSchemeRose, decodeState(t, out).ColorScheme)
}
