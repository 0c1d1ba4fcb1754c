package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Faultbox/geosim/pkg/figure"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	// Viewer defaults
	if cfg.Viewer.Width != 1280 {
		t.Errorf("expected width 1280, got %d", cfg.Viewer.Width)
	}
	if cfg.Viewer.Height != 720 {
		t.Errorf("expected height 720, got %d", cfg.Viewer.Height)
	}
	if cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be false by default")
	}
	if !cfg.Viewer.VSync {
		t.Error("expected vsync to be true by default")
	}

	// Figure defaults
	if cfg.Figure.Shape != "cube" {
		t.Errorf("expected shape cube, got %s", cfg.Figure.Shape)
	}
	if cfg.Figure.AssembleRate != 0.6 {
		t.Errorf("expected assemble rate 0.6, got %f", cfg.Figure.AssembleRate)
	}
	if cfg.Figure.Jitter != figure.DefaultJitter {
		t.Errorf("expected jitter %f, got %f", figure.DefaultJitter, cfg.Figure.Jitter)
	}

	// Snapshot defaults
	if cfg.Snapshot.Supersample != 2 {
		t.Errorf("expected supersample 2, got %d", cfg.Snapshot.Supersample)
	}

	// Logging defaults
	if cfg.Logging.Level != "info" {
		t.Errorf("expected log level 'info', got %s", cfg.Logging.Level)
	}
	if cfg.Logging.LogFile != "" {
		t.Errorf("expected empty log file, got %s", cfg.Logging.LogFile)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should be valid: %v", err)
	}
}

func TestLoadFromFile(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1920
  height: 1080
  fullscreen: true
  vsync: false
  fps_limit: 144

figure:
  shape: prism
  progress: 0.5
  seed: 42
  jitter: 0.25
  assemble_rate: 1.2
  dimensions:
    prism:
      base: 4

snapshot:
  width: 320
  height: 240
  supersample: 3
  background: "#000000"

logging:
  level: "debug"
  log_file: "geosim.log"
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920, got %d", cfg.Viewer.Width)
	}
	if !cfg.Viewer.Fullscreen {
		t.Error("expected fullscreen to be true")
	}
	if cfg.Viewer.FPSLimit != 144 {
		t.Errorf("expected fps limit 144, got %d", cfg.Viewer.FPSLimit)
	}

	if cfg.Figure.Shape != "prism" {
		t.Errorf("expected shape prism, got %s", cfg.Figure.Shape)
	}
	if cfg.Figure.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Figure.Seed)
	}
	if cfg.Figure.AssembleRate != 1.2 {
		t.Errorf("expected assemble rate 1.2, got %f", cfg.Figure.AssembleRate)
	}

	dims, err := cfg.Figure.DimensionsFor(figure.Prism)
	if err != nil {
		t.Fatalf("DimensionsFor: %v", err)
	}
	if dims[figure.ParamBase] != 4 || dims[figure.ParamLength] != 3 {
		t.Errorf("expected override merged with defaults, got %v", dims)
	}

	if cfg.Snapshot.Supersample != 3 || cfg.Snapshot.Background != "#000000" {
		t.Errorf("unexpected snapshot config %+v", cfg.Snapshot)
	}
	// Keys absent from the file keep their defaults
	if cfg.Snapshot.Color != Default().Snapshot.Color {
		t.Errorf("expected default color, got %s", cfg.Snapshot.Color)
	}

	if cfg.Logging.Level != "debug" {
		t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("loaded config should be valid: %v", err)
	}
}

func TestLoadFromFileInvalid(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "invalid.yaml")

	invalidYAML := `
viewer:
  width: not a number
  invalid syntax here
`

	if err := os.WriteFile(configPath, []byte(invalidYAML), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	cfg := Default()
	if err := loadFromFile(cfg, configPath); err == nil {
		t.Error("expected error loading invalid YAML, got nil")
	}
}

func TestLoadFromFileMissing(t *testing.T) {
	cfg := Default()
	if err := loadFromFile(cfg, "/nonexistent/path/config.yaml"); err == nil {
		t.Error("expected error loading missing file, got nil")
	}
}

func TestConfigDir(t *testing.T) {
	dir := ConfigDir()

	if dir == "" {
		t.Error("ConfigDir returned empty string")
	}
	if !filepath.IsAbs(dir) {
		t.Errorf("ConfigDir should return absolute path, got %s", dir)
	}
}

func TestFindConfigFile(t *testing.T) {
	origDir, _ := os.Getwd()
	defer os.Chdir(origDir)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(tmpDir, "xdg"))
	os.Chdir(tmpDir)

	if path := findConfigFile(); path != "" {
		t.Errorf("expected empty path when no config exists, got %s", path)
	}

	configPath := filepath.Join(tmpDir, "geosim.yaml")
	if err := os.WriteFile(configPath, []byte("viewer:\n  width: 800\n"), 0644); err != nil {
		t.Fatalf("failed to create test config: %v", err)
	}

	if path := findConfigFile(); path == "" {
		t.Error("expected to find geosim.yaml in current directory")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   string
	}{
		{"zero viewer width", func(c *Config) { c.Viewer.Width = 0 }, "viewer size"},
		{"unknown shape", func(c *Config) { c.Figure.Shape = "sphere" }, "figure shape"},
		{"zero rate", func(c *Config) { c.Figure.AssembleRate = 0 }, "assemble_rate"},
		{"progress above one", func(c *Config) { c.Figure.Progress = 2 }, "progress"},
		{"negative jitter", func(c *Config) { c.Figure.Jitter = -1 }, "jitter"},
		{
			"bad dimension override",
			func(c *Config) {
				c.Figure.Dimensions = map[string]map[string]float64{"cube": {"side": -1}}
			},
			"invalid dimension",
		},
		{
			"unknown dimension key",
			func(c *Config) {
				c.Figure.Dimensions = map[string]map[string]float64{"cylinder": {"side": 1}}
			},
			"invalid dimension",
		},
		{"no supersample", func(c *Config) { c.Snapshot.Supersample = 0 }, "supersample"},
		{"bad level", func(c *Config) { c.Logging.Level = "loud" }, "logging level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

func TestApplyFlags(t *testing.T) {
	tests := []struct {
		name     string
		setup    func()
		verify   func(*Config)
		teardown func()
	}{
		{
			name: "debug flag",
			setup: func() {
				*flagDebug = true
			},
			verify: func(cfg *Config) {
				if cfg.Logging.Level != "debug" {
					t.Errorf("expected log level 'debug', got %s", cfg.Logging.Level)
				}
			},
			teardown: func() {
				*flagDebug = false
			},
		},
		{
			name: "windowed flag",
			setup: func() {
				*flagWindowed = true
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be false with windowed flag")
				}
			},
			teardown: func() {
				*flagWindowed = false
			},
		},
		{
			name: "fullscreen flag",
			setup: func() {
				*flagFullscreen = true
			},
			verify: func(cfg *Config) {
				if !cfg.Viewer.Fullscreen {
					t.Error("expected fullscreen to be true with fullscreen flag")
				}
			},
			teardown: func() {
				*flagFullscreen = false
			},
		},
		{
			name: "width and height flags",
			setup: func() {
				*flagWidth = 2560
				*flagHeight = 1440
			},
			verify: func(cfg *Config) {
				if cfg.Viewer.Width != 2560 {
					t.Errorf("expected width 2560, got %d", cfg.Viewer.Width)
				}
				if cfg.Viewer.Height != 1440 {
					t.Errorf("expected height 1440, got %d", cfg.Viewer.Height)
				}
			},
			teardown: func() {
				*flagWidth = 0
				*flagHeight = 0
			},
		},
		{
			name: "shape and seed flags",
			setup: func() {
				*flagShape = "cylinder"
				*flagSeed = 9
			},
			verify: func(cfg *Config) {
				if cfg.Figure.Shape != "cylinder" {
					t.Errorf("expected shape cylinder, got %s", cfg.Figure.Shape)
				}
				if cfg.Figure.Seed != 9 {
					t.Errorf("expected seed 9, got %d", cfg.Figure.Seed)
				}
			},
			teardown: func() {
				*flagShape = ""
				*flagSeed = -1
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			defer tt.teardown()

			cfg := Default()
			applyFlags(cfg)

			tt.verify(cfg)
		})
	}
}

func TestLoadPriority(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	yamlContent := `
viewer:
  width: 1600
  height: 900
`

	if err := os.WriteFile(configPath, []byte(yamlContent), 0644); err != nil {
		t.Fatalf("failed to write test config: %v", err)
	}

	// Set flag to override config file
	*flagConfig = configPath
	*flagWidth = 1920
	defer func() {
		*flagConfig = ""
		*flagWidth = 0
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}

	// Width should be from flag (1920), not file (1600)
	if cfg.Viewer.Width != 1920 {
		t.Errorf("expected width 1920 from flag, got %d", cfg.Viewer.Width)
	}

	// Height should be from file (900) since no flag override
	if cfg.Viewer.Height != 900 {
		t.Errorf("expected height 900 from file, got %d", cfg.Viewer.Height)
	}
}

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Figure.Shape = "pyramid"
	cfg.Figure.Dimensions = map[string]map[string]float64{"pyramid": {"side": 5}}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	loaded, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Figure.Shape != "pyramid" {
		t.Errorf("expected shape pyramid, got %s", loaded.Figure.Shape)
	}
	dims, err := loaded.Figure.DimensionsFor(figure.Pyramid)
	if err != nil {
		t.Fatal(err)
	}
	if dims[figure.ParamSide] != 5 {
		t.Errorf("expected side 5, got %v", dims)
	}
}
