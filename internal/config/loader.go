package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadResult is a loaded configuration plus where it came from.
type LoadResult struct {
	Config *Config
	// File is the config path that was read, empty when defaults were used.
	File string
}

func DefaultConfigPath() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "dockgap", "config.yaml"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "dockgap", "config.yaml"), nil
}

// Load reads the configuration from the standard location and returns an
// effective config ready for use by the daemon.
func Load() (*Config, error) {
	path, err := DefaultConfigPath()
	if err != nil {
		return nil, err
	}
	res, err := LoadFromPath(path)
	if err != nil {
		return nil, err
	}
	return res.Config, nil
}

// LoadFromPath overlays the YAML file at path onto the defaults. A missing
// file is not an error. Layouts defined in the file are added to the builtin
// library, replacing builtins of the same name.
func LoadFromPath(path string) (*LoadResult, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return &LoadResult{Config: cfg}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	var file Config
	if err := decodeStrictYAML(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := overlay(cfg, data, &file); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &LoadResult{Config: cfg, File: path}, nil
}

// overlay copies the keys present in the document onto cfg. Presence is
// checked on the YAML node tree so explicit zero values still override.
func overlay(cfg *Config, data []byte, file *Config) error {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return err
	}
	present := topLevelKeys(&doc)

	set := func(key string, apply func()) {
		if _, ok := present[key]; ok {
			apply()
		}
	}

	set("hotkey", func() { cfg.Hotkey = file.Hotkey })
	set("toggle_struts_hotkey", func() { cfg.ToggleStrutsHotkey = file.ToggleStrutsHotkey })
	set("undo_hotkey", func() { cfg.UndoHotkey = file.UndoHotkey })
	set("shrink_hotkey", func() { cfg.ShrinkHotkey = file.ShrinkHotkey })
	set("expand_hotkey", func() { cfg.ExpandHotkey = file.ExpandHotkey })
	set("display", func() { cfg.Display = file.Display })
	set("gap_size", func() { cfg.GapSize = file.GapSize })
	set("screen_padding", func() { cfg.ScreenPadding = file.ScreenPadding })
	set("default_layout", func() { cfg.DefaultLayout = file.DefaultLayout })
	set("strut_poll_interval_ms", func() { cfg.StrutPollIntervalMS = file.StrutPollIntervalMS })
	set("log_level", func() { cfg.LogLevel = file.LogLevel })

	for name, layout := range file.Layouts {
		if layout.TileRegion.Type == "" {
			layout.TileRegion.Type = RegionFull
		}
		cfg.Layouts[name] = layout
	}
	return nil
}

func topLevelKeys(doc *yaml.Node) map[string]struct{} {
	keys := make(map[string]struct{})
	if doc == nil || len(doc.Content) == 0 {
		return keys
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return keys
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		keys[root.Content[i].Value] = struct{}{}
	}
	return keys
}

func decodeStrictYAML(data []byte, out any) error {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		if err == io.EOF {
			return nil
		}
		return err
	}
	return nil
}

// Marshal renders cfg as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
