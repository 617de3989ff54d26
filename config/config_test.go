package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	def := Default()
	if *cfg != *def {
		t.Errorf("missing file config = %+v, want defaults %+v", cfg, def)
	}
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `
engine:
  debounce_delay: 5s
  margin_factor: 3.0
render:
  width: 1024
logging:
  level: debug
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Engine.DebounceDelay != 5*time.Second {
		t.Errorf("debounce = %v, want 5s", cfg.Engine.DebounceDelay)
	}
	if cfg.Engine.MarginFactor != 3.0 {
		t.Errorf("margin = %f, want 3.0", cfg.Engine.MarginFactor)
	}
	if cfg.Render.Width != 1024 {
		t.Errorf("width = %d, want 1024", cfg.Render.Width)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("level = %q, want debug", cfg.Logging.Level)
	}

	// untouched keys keep their defaults
	def := Default()
	if cfg.Render.Height != def.Render.Height {
		t.Errorf("height = %d, want default %d", cfg.Render.Height, def.Render.Height)
	}
	if cfg.Engine.RotationDegPerMs != def.Engine.RotationDegPerMs {
		t.Errorf("rotation rate = %g, want default", cfg.Engine.RotationDegPerMs)
	}
}

func TestLoadRejectsMalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("engine: [not a map"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := Default()
	cfg.Engine.PointerInteraction = false
	cfg.Render.Supersample = 2
	cfg.Assets.Clouds = ""

	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}
	back, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *back != *cfg {
		t.Errorf("round trip:\nsaved  %+v\nloaded %+v", cfg, back)
	}
}
