package config

import (
	"time"

	"github.com/wilbur182/skim/internal/slots"
)

// Config is the root configuration structure.
type Config struct {
	Feed      FeedConfig      `json:"feed"`
	Slots     SlotsConfig     `json:"slots"`
	Telemetry TelemetryConfig `json:"telemetry"`
	UI        UIConfig        `json:"ui"`
}

// FeedConfig configures the article streams and their merge.
type FeedConfig struct {
	// Path is the primary JSONL feed file. Watched for growth.
	Path string `json:"path"`
	// SecondaryPath is the optional recommendations feed.
	SecondaryPath string `json:"secondaryPath,omitempty"`
	// Interleave alternates the two streams instead of appending the
	// secondary after the primary.
	Interleave bool `json:"interleave"`
	// PollInterval backs the watcher when fsnotify is unavailable.
	PollInterval time.Duration `json:"pollInterval"`
}

// SlotsConfig configures sponsored slot placement and caching. The
// values are fixed for the session once the program starts.
type SlotsConfig struct {
	Enabled         bool          `json:"enabled"`
	FirstPosition   int           `json:"firstPosition"`
	Interval        int           `json:"interval"`
	PreloadDistance int           `json:"preloadDistance"`
	UnloadDistance  int           `json:"unloadDistance"`
	MaxCached       int           `json:"maxCached"`
	MaxPerSession   int           `json:"maxPerSession"`
	SkipIfNotReady  bool          `json:"skipIfNotReady"`
	BackwardBias    bool          `json:"backwardBias"`
	LoadTimeout     time.Duration `json:"loadTimeout"`
	// CreativesPath overrides the built-in house creative set.
	CreativesPath string `json:"creativesPath,omitempty"`
	// SimulatedLatency delays house-creative acquisition, for demos.
	SimulatedLatency time.Duration `json:"simulatedLatency"`
}

// TelemetryConfig configures the slot event sinks.
type TelemetryConfig struct {
	// DBPath is the sqlite event store; empty disables persistence.
	DBPath string `json:"dbPath,omitempty"`
	// LogEvents mirrors events to the debug log.
	LogEvents bool `json:"logEvents"`
}

// UIConfig configures appearance.
type UIConfig struct {
	ShowStatusBar bool `json:"showStatusBar"`
	// BodyWidth caps the rendered article body width.
	BodyWidth int `json:"bodyWidth"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		Feed: FeedConfig{
			Path:         "feed.jsonl",
			Interleave:   true,
			PollInterval: 2 * time.Second,
		},
		Slots: SlotsConfig{
			Enabled:         true,
			FirstPosition:   2,
			Interval:        5,
			PreloadDistance: 2,
			UnloadDistance:  5,
			MaxCached:       3,
			MaxPerSession:   0,
			SkipIfNotReady:  true,
			LoadTimeout:     5 * time.Second,
		},
		Telemetry: TelemetryConfig{
			LogEvents: true,
		},
		UI: UIConfig{
			ShowStatusBar: true,
			BodyWidth:     80,
		},
	}
}

// Validate normalizes recoverable values in place. A non-positive slot
// interval is deliberately NOT repaired here: it is the one
// configuration error the session surfaces by disabling slots, so it
// must survive to policy construction.
func (c *Config) Validate() error {
	if c.Feed.PollInterval <= 0 {
		c.Feed.PollInterval = 2 * time.Second
	}
	if c.Slots.PreloadDistance < 0 {
		c.Slots.PreloadDistance = 0
	}
	if c.Slots.UnloadDistance <= c.Slots.PreloadDistance {
		// Keep a hysteresis band so a slot is never evicted at the
		// distance it preloads at.
		c.Slots.UnloadDistance = c.Slots.PreloadDistance + 1
	}
	if c.Slots.MaxCached <= 0 {
		c.Slots.MaxCached = 3
	}
	if c.Slots.MaxPerSession < 0 {
		c.Slots.MaxPerSession = 0
	}
	if c.Slots.LoadTimeout <= 0 {
		c.Slots.LoadTimeout = 5 * time.Second
	}
	if c.UI.BodyWidth <= 0 {
		c.UI.BodyWidth = 80
	}
	return nil
}

// SlotConfig converts the slot section to the session-immutable form
// the slot machinery consumes.
func (c *Config) SlotConfig() slots.Config {
	return slots.Config{
		FirstPosition:   c.Slots.FirstPosition,
		Interval:        c.Slots.Interval,
		PreloadDistance: c.Slots.PreloadDistance,
		UnloadDistance:  c.Slots.UnloadDistance,
		MaxCached:       c.Slots.MaxCached,
		MaxPerSession:   c.Slots.MaxPerSession,
		SkipIfNotReady:  c.Slots.SkipIfNotReady,
		BackwardBias:    c.Slots.BackwardBias,
		LoadTimeout:     c.Slots.LoadTimeout,
	}
}
