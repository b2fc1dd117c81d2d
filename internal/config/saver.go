package config

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// saveConfig is the JSON-marshaling intermediary that uses string durations.
type saveConfig struct {
	Feed      saveFeedConfig      `json:"feed"`
	Slots     saveSlotsConfig     `json:"slots"`
	Telemetry saveTelemetryConfig `json:"telemetry"`
	UI        UIConfig            `json:"ui"`
}

type saveFeedConfig struct {
	Path          string `json:"path,omitempty"`
	SecondaryPath string `json:"secondaryPath,omitempty"`
	Interleave    bool   `json:"interleave"`
	PollInterval  string `json:"pollInterval,omitempty"`
}

type saveSlotsConfig struct {
	Enabled          bool   `json:"enabled"`
	FirstPosition    int    `json:"firstPosition"`
	Interval         int    `json:"interval"`
	PreloadDistance  int    `json:"preloadDistance"`
	UnloadDistance   int    `json:"unloadDistance"`
	MaxCached        int    `json:"maxCached"`
	MaxPerSession    int    `json:"maxPerSession,omitempty"`
	SkipIfNotReady   bool   `json:"skipIfNotReady"`
	BackwardBias     bool   `json:"backwardBias,omitempty"`
	LoadTimeout      string `json:"loadTimeout,omitempty"`
	CreativesPath    string `json:"creativesPath,omitempty"`
	SimulatedLatency string `json:"simulatedLatency,omitempty"`
}

type saveTelemetryConfig struct {
	DBPath    string `json:"dbPath,omitempty"`
	LogEvents bool   `json:"logEvents"`
}

// toSaveConfig converts Config to the JSON-serializable format.
func toSaveConfig(cfg *Config) saveConfig {
	sc := saveConfig{
		Feed: saveFeedConfig{
			Path:          cfg.Feed.Path,
			SecondaryPath: cfg.Feed.SecondaryPath,
			Interleave:    cfg.Feed.Interleave,
			PollInterval:  cfg.Feed.PollInterval.String(),
		},
		Slots: saveSlotsConfig{
			Enabled:         cfg.Slots.Enabled,
			FirstPosition:   cfg.Slots.FirstPosition,
			Interval:        cfg.Slots.Interval,
			PreloadDistance: cfg.Slots.PreloadDistance,
			UnloadDistance:  cfg.Slots.UnloadDistance,
			MaxCached:       cfg.Slots.MaxCached,
			MaxPerSession:   cfg.Slots.MaxPerSession,
			SkipIfNotReady:  cfg.Slots.SkipIfNotReady,
			BackwardBias:    cfg.Slots.BackwardBias,
			LoadTimeout:     cfg.Slots.LoadTimeout.String(),
			CreativesPath:   cfg.Slots.CreativesPath,
		},
		Telemetry: saveTelemetryConfig{
			DBPath:    cfg.Telemetry.DBPath,
			LogEvents: cfg.Telemetry.LogEvents,
		},
		UI: cfg.UI,
	}
	if cfg.Slots.SimulatedLatency > 0 {
		sc.Slots.SimulatedLatency = cfg.Slots.SimulatedLatency.String()
	}
	return sc
}

// Save writes the config to ~/.config/skim/config.json.
func Save(cfg *Config) error {
	return SaveTo(cfg, ConfigPath())
}

// SaveTo writes the config to an explicit path, creating parent
// directories as needed.
func SaveTo(cfg *Config, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(toSaveConfig(cfg), "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
