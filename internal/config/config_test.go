package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadFrom_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := LoadFrom(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Slots.Interval != 5 || cfg.Slots.MaxCached != 3 {
		t.Errorf("defaults not applied: %+v", cfg.Slots)
	}
	if !cfg.Feed.Interleave {
		t.Error("interleave should default on")
	}
}

func TestLoadFrom_PartialFileLayersOverDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"slots": {"interval": 8, "loadTimeout": "10s"}, "ui": {"bodyWidth": 100}}`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}
	if cfg.Slots.Interval != 8 {
		t.Errorf("interval = %d, want 8", cfg.Slots.Interval)
	}
	if cfg.Slots.LoadTimeout != 10*time.Second {
		t.Errorf("loadTimeout = %v, want 10s", cfg.Slots.LoadTimeout)
	}
	if cfg.Slots.FirstPosition != 2 {
		t.Errorf("firstPosition = %d, want default 2", cfg.Slots.FirstPosition)
	}
	if cfg.UI.BodyWidth != 100 {
		t.Errorf("bodyWidth = %d, want 100", cfg.UI.BodyWidth)
	}
}

func TestLoadFrom_BadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	os.WriteFile(path, []byte(`{"slots": {"loadTimeout": "fast"}}`), 0o644)

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected error for unparseable duration")
	}
}

func TestValidate_Normalizes(t *testing.T) {
	cfg := Default()
	cfg.Slots.PreloadDistance = 4
	cfg.Slots.UnloadDistance = 2
	cfg.Slots.MaxCached = 0
	cfg.Slots.LoadTimeout = 0

	cfg.Validate()

	if cfg.Slots.UnloadDistance <= cfg.Slots.PreloadDistance {
		t.Errorf("unload %d not lifted above preload %d",
			cfg.Slots.UnloadDistance, cfg.Slots.PreloadDistance)
	}
	if cfg.Slots.MaxCached <= 0 {
		t.Errorf("maxCached = %d", cfg.Slots.MaxCached)
	}
	if cfg.Slots.LoadTimeout <= 0 {
		t.Errorf("loadTimeout = %v", cfg.Slots.LoadTimeout)
	}
}

func TestValidate_PreservesInvalidInterval(t *testing.T) {
	// A non-positive interval is the session's no-slots trigger; the
	// normalizer must not paper over it.
	cfg := Default()
	cfg.Slots.Interval = 0
	cfg.Validate()
	if cfg.Slots.Interval != 0 {
		t.Errorf("interval = %d, want 0 preserved", cfg.Slots.Interval)
	}

	if err := cfg.SlotConfig().Validate(); err == nil {
		t.Error("slot config should reject interval 0")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg := Default()
	cfg.Slots.Interval = 7
	cfg.Slots.BackwardBias = true
	cfg.Feed.Path = "news.jsonl"
	cfg.Telemetry.DBPath = "events.db"

	if err := SaveTo(cfg, path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}
	got, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom: %v", err)
	}

	if got.Slots.Interval != 7 || !got.Slots.BackwardBias {
		t.Errorf("slots = %+v", got.Slots)
	}
	if got.Feed.Path != "news.jsonl" {
		t.Errorf("feed path = %q", got.Feed.Path)
	}
	if got.Telemetry.DBPath != "events.db" {
		t.Errorf("telemetry dbPath = %q", got.Telemetry.DBPath)
	}
}
