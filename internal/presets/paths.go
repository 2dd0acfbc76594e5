package presets

import (
	"fmt"
	"path/filepath"
)

// SearchPaths returns preset directories in precedence order: the project
// directory first, then the user config directory.
func SearchPaths(projectDir, configDir string) []string {
	paths := make([]string, 0, 2)
	if projectDir != "" {
		paths = append(paths, filepath.Join(projectDir, ".themekit", "presets"))
	}
	if configDir != "" {
		paths = append(paths, filepath.Join(configDir, "presets"))
	}
	return paths
}

// LoadAll loads presets from the search paths and then the built-ins. The
// first preset seen for a name wins.
func LoadAll(projectDir, configDir string) ([]*Preset, error) {
	seen := make(map[string]*Preset)
	order := make([]string, 0)

	add := func(presets []*Preset) {
		for _, preset := range presets {
			if _, exists := seen[preset.Name]; exists {
				continue
			}
			seen[preset.Name] = preset
			order = append(order, preset.Name)
		}
	}

	for _, path := range SearchPaths(projectDir, configDir) {
		presets, err := LoadPresetsFromDir(path)
		if err != nil {
			return nil, err
		}
		add(presets)
	}

	builtins, err := LoadBuiltinPresets()
	if err != nil {
		return nil, err
	}
	add(builtins)

	resolved := make([]*Preset, 0, len(order))
	for _, name := range order {
		resolved = append(resolved, seen[name])
	}
	return resolved, nil
}

// Find returns the preset called name.
func Find(projectDir, configDir, name string) (*Preset, error) {
	presets, err := LoadAll(projectDir, configDir)
	if err != nil {
		return nil, err
	}
	for _, preset := range presets {
		if preset.Name == name {
			return preset, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPresetNotFound, name)
}
