package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ConfigPath returns the default config file location,
// ~/.config/skim/config.json.
func ConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".config", "skim", "config.json")
	}
	return filepath.Join(home, ".config", "skim", "config.json")
}

// Load reads the config from the default location. A missing file is
// not an error; defaults apply.
func Load() (*Config, error) {
	return LoadFrom(ConfigPath())
}

// LoadFrom reads the config from an explicit path, layering the file's
// values over defaults and normalizing the result.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.Validate()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	var fc fileConfig
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := fc.apply(cfg); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}

	cfg.Validate()
	return cfg, nil
}

// fileConfig is the JSON-unmarshaling intermediary: durations are
// strings ("5s"), absent fields leave defaults untouched.
type fileConfig struct {
	Feed *struct {
		Path          *string `json:"path"`
		SecondaryPath *string `json:"secondaryPath"`
		Interleave    *bool   `json:"interleave"`
		PollInterval  *string `json:"pollInterval"`
	} `json:"feed"`
	Slots *struct {
		Enabled          *bool   `json:"enabled"`
		FirstPosition    *int    `json:"firstPosition"`
		Interval         *int    `json:"interval"`
		PreloadDistance  *int    `json:"preloadDistance"`
		UnloadDistance   *int    `json:"unloadDistance"`
		MaxCached        *int    `json:"maxCached"`
		MaxPerSession    *int    `json:"maxPerSession"`
		SkipIfNotReady   *bool   `json:"skipIfNotReady"`
		BackwardBias     *bool   `json:"backwardBias"`
		LoadTimeout      *string `json:"loadTimeout"`
		CreativesPath    *string `json:"creativesPath"`
		SimulatedLatency *string `json:"simulatedLatency"`
	} `json:"slots"`
	Telemetry *struct {
		DBPath    *string `json:"dbPath"`
		LogEvents *bool   `json:"logEvents"`
	} `json:"telemetry"`
	UI *struct {
		ShowStatusBar *bool `json:"showStatusBar"`
		BodyWidth     *int  `json:"bodyWidth"`
	} `json:"ui"`
}

func (fc *fileConfig) apply(cfg *Config) error {
	if f := fc.Feed; f != nil {
		setString(&cfg.Feed.Path, f.Path)
		setString(&cfg.Feed.SecondaryPath, f.SecondaryPath)
		setBool(&cfg.Feed.Interleave, f.Interleave)
		if err := setDuration(&cfg.Feed.PollInterval, f.PollInterval); err != nil {
			return fmt.Errorf("feed.pollInterval: %w", err)
		}
	}
	if s := fc.Slots; s != nil {
		setBool(&cfg.Slots.Enabled, s.Enabled)
		setInt(&cfg.Slots.FirstPosition, s.FirstPosition)
		setInt(&cfg.Slots.Interval, s.Interval)
		setInt(&cfg.Slots.PreloadDistance, s.PreloadDistance)
		setInt(&cfg.Slots.UnloadDistance, s.UnloadDistance)
		setInt(&cfg.Slots.MaxCached, s.MaxCached)
		setInt(&cfg.Slots.MaxPerSession, s.MaxPerSession)
		setBool(&cfg.Slots.SkipIfNotReady, s.SkipIfNotReady)
		setBool(&cfg.Slots.BackwardBias, s.BackwardBias)
		setString(&cfg.Slots.CreativesPath, s.CreativesPath)
		if err := setDuration(&cfg.Slots.LoadTimeout, s.LoadTimeout); err != nil {
			return fmt.Errorf("slots.loadTimeout: %w", err)
		}
		if err := setDuration(&cfg.Slots.SimulatedLatency, s.SimulatedLatency); err != nil {
			return fmt.Errorf("slots.simulatedLatency: %w", err)
		}
	}
	if t := fc.Telemetry; t != nil {
		setString(&cfg.Telemetry.DBPath, t.DBPath)
		setBool(&cfg.Telemetry.LogEvents, t.LogEvents)
	}
	if u := fc.UI; u != nil {
		setBool(&cfg.UI.ShowStatusBar, u.ShowStatusBar)
		setInt(&cfg.UI.BodyWidth, u.BodyWidth)
	}
	return nil
}

func setString(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setBool(dst *bool, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst *int, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setDuration(dst *time.Duration, src *string) error {
	if src == nil || *src == "" {
		return nil
	}
	d, err := time.ParseDuration(*src)
	if err != nil {
		return err
	}
	*dst = d
	return nil
}
