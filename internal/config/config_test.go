package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, data string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_ValidAndHasBuiltinLayouts(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if _, ok := cfg.Layouts[DefaultBuiltinLayout]; !ok {
		t.Fatalf("expected builtin %q to exist in layouts", DefaultBuiltinLayout)
	}
	if cfg.StrutPollInterval() != 2*time.Second {
		t.Fatalf("expected 2s strut poll interval, got %v", cfg.StrutPollInterval())
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.File != "" {
		t.Fatalf("expected no file recorded, got %q", res.File)
	}
	if res.Config.DefaultLayout != DefaultBuiltinLayout {
		t.Fatalf("expected default_layout %q, got %q", DefaultBuiltinLayout, res.Config.DefaultLayout)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(writeConfig(t, "# empty\n"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.GapSize != 8 {
		t.Fatalf("expected default gap 8, got %d", res.Config.GapSize)
	}
}

func TestLoadFromPath_OverridesScalarsIncludingZero(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"gap_size: 0",
		"strut_poll_interval_ms: 0",
		"toggle_struts_hotkey: Mod4-b",
		"display: \":1\"",
		"screen_padding:",
		"  top: 4",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.GapSize != 0 || cfg.StrutPollIntervalMS != 0 {
		t.Fatalf("expected explicit zeros to override, got gap=%d poll=%d", cfg.GapSize, cfg.StrutPollIntervalMS)
	}
	if cfg.ToggleStrutsHotkey != "Mod4-b" || cfg.Display != ":1" {
		t.Fatalf("unexpected hotkey/display: %q %q", cfg.ToggleStrutsHotkey, cfg.Display)
	}
	if cfg.ScreenPadding.Top != 4 {
		t.Fatalf("expected padding top 4, got %+v", cfg.ScreenPadding)
	}
	if cfg.Hotkey != DefaultConfig().Hotkey {
		t.Fatalf("expected untouched hotkey default, got %q", cfg.Hotkey)
	}
}

func TestLoadFromPath_CustomLayoutMergesWithBuiltins(t *testing.T) {
	path := writeConfig(t, strings.Join([]string{
		"default_layout: wide",
		"layouts:",
		"  wide:",
		"    mode: fixed",
		"    fixed_grid:",
		"      rows: 1",
		"      cols: 3",
		"",
	}, "\n"))

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	wide, err := res.Config.GetLayout("wide")
	if err != nil {
		t.Fatalf("get layout: %v", err)
	}
	if wide.TileRegion.Type != RegionFull {
		t.Fatalf("expected tile region to default to full, got %q", wide.TileRegion.Type)
	}
	if _, ok := res.Config.Layouts["grid"]; !ok {
		t.Fatalf("expected builtin layouts to survive")
	}
}

func TestLoadFromPath_UnknownFieldFails(t *testing.T) {
	if _, err := LoadFromPath(writeConfig(t, "gap_sise: 3\n")); err == nil {
		t.Fatalf("expected unknown field error")
	}
}

func TestLoadFromPath_InvalidDefaultLayout(t *testing.T) {
	_, err := LoadFromPath(writeConfig(t, "default_layout: missing\n"))
	var vErr *ValidationError
	if !errors.As(err, &vErr) || vErr.Path != "default_layout" {
		t.Fatalf("expected default_layout validation error, got %v", err)
	}
}

func TestValidate_LayoutErrors(t *testing.T) {
	tests := []struct {
		name   string
		layout Layout
	}{
		{"bad mode", Layout{Mode: "spiral", TileRegion: TileRegion{Type: RegionFull}}},
		{"fixed without grid", Layout{Mode: LayoutModeFixed, TileRegion: TileRegion{Type: RegionFull}}},
		{"master too wide", Layout{
			Mode:        LayoutModeMasterStack,
			TileRegion:  TileRegion{Type: RegionFull},
			MasterStack: MasterStack{MasterWidthPercent: 95, MaxStackRows: 1, MaxStackCols: 1},
		}},
		{"custom overflow", Layout{
			Mode:       LayoutModeAuto,
			TileRegion: TileRegion{Type: RegionCustom, XPercent: 60, WidthPercent: 50, HeightPercent: 10},
		}},
		{"bad region", Layout{Mode: LayoutModeAuto, TileRegion: TileRegion{Type: "diagonal"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Layouts["broken"] = tt.layout
			if err := cfg.Validate(); err == nil {
				t.Fatalf("expected validation error")
			}
		})
	}
}

func TestValidate_Scalars(t *testing.T) {
	cfg := DefaultConfig()
	cfg.LogLevel = "loud"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected log_level error")
	}

	cfg = DefaultConfig()
	cfg.StrutPollIntervalMS = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected strut_poll_interval_ms error")
	}
}

func TestLayoutNamesSorted(t *testing.T) {
	names := DefaultConfig().LayoutNames()
	for i := 1; i < len(names); i++ {
		if names[i-1] > names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	data, err := DefaultConfig().Marshal()
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	res, err := LoadFromPath(writeConfig(t, string(data)))
	if err != nil {
		t.Fatalf("reload marshalled config: %v", err)
	}
	if res.Config.DefaultLayout != DefaultBuiltinLayout {
		t.Fatalf("unexpected default layout %q", res.Config.DefaultLayout)
	}
}
