package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wilbur182/skim/internal/app"
	"github.com/wilbur182/skim/internal/config"
	"github.com/wilbur182/skim/internal/feed"
	"github.com/wilbur182/skim/internal/slots"
	"github.com/wilbur182/skim/internal/sponsor"
	"github.com/wilbur182/skim/internal/telemetry"
)

// Version is set at build time via ldflags
var Version = ""

var (
	configPath   = flag.String("config", "", "path to config file")
	feedPath     = flag.String("feed", "", "path to primary feed file (overrides config)")
	debugFlag    = flag.Bool("debug", false, "enable debug logging")
	versionFlag  = flag.Bool("version", false, "print version and exit")
	shortVersion = flag.Bool("v", false, "print version and exit (short)")
)

func main() {
	flag.Parse()

	if *versionFlag || *shortVersion {
		fmt.Printf("skim version %s\n", effectiveVersion(Version))
		os.Exit(0)
	}

	logLevel := slog.LevelInfo
	if *debugFlag {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if *feedPath != "" {
		cfg.Feed.Path = *feedPath
	}

	emitter, closeTelemetry, err := buildTelemetry(cfg, logger)
	if err != nil {
		logger.Warn("telemetry store unavailable, continuing without persistence", "err", err)
	}
	defer closeTelemetry()

	provider, err := buildProvider(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load creatives: %v\n", err)
		os.Exit(1)
	}

	controller := buildController(cfg, provider, emitter, logger)

	primary := feed.NewJSONLProvider(cfg.Feed.Path)
	var secondary feed.Provider
	if cfg.Feed.SecondaryPath != "" {
		secondary = feed.NewJSONLProvider(cfg.Feed.SecondaryPath)
	}

	growth, watcher, err := feed.Watch(cfg.Feed.Path)
	if err != nil {
		logger.Warn("feed watcher unavailable, polling instead", "err", err)
		growth, watcher = feed.Poll(cfg.Feed.Path, cfg.Feed.PollInterval)
	}

	model := app.New(app.Options{
		Config:     cfg,
		Controller: controller,
		Provider:   provider,
		Primary:    primary,
		Secondary:  secondary,
		Growth:     growth,
		Watcher:    watcher,
	})

	p := tea.NewProgram(model, tea.WithAltScreen())
	finalModel, err := p.Run()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
	if m, ok := finalModel.(app.Model); ok {
		_ = m.Close()
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFrom(path)
	}
	return config.Load()
}

// buildTelemetry assembles the event sinks: the slog mirror when
// enabled, the sqlite store when a path is configured. Store errors
// degrade to log-only.
func buildTelemetry(cfg *config.Config, logger *slog.Logger) (telemetry.Emitter, func(), error) {
	var sinks []telemetry.Emitter
	closeFn := func() {}

	if cfg.Telemetry.LogEvents {
		sinks = append(sinks, telemetry.NewLogger(logger))
	}
	var storeErr error
	if cfg.Telemetry.DBPath != "" {
		store, err := telemetry.OpenStore(cfg.Telemetry.DBPath)
		if err != nil {
			storeErr = err
		} else {
			sinks = append(sinks, store)
			closeFn = func() { _ = store.Close() }
		}
	}

	switch len(sinks) {
	case 0:
		return telemetry.Nop{}, closeFn, storeErr
	case 1:
		return sinks[0], closeFn, storeErr
	default:
		return telemetry.Multi(sinks), closeFn, storeErr
	}
}

// buildProvider constructs the creative provider, preferring a
// configured creative file over the built-in set.
func buildProvider(cfg *config.Config) (*sponsor.Provider, error) {
	opts := []sponsor.Option{sponsor.WithLatency(cfg.Slots.SimulatedLatency)}
	if cfg.Slots.CreativesPath != "" {
		cards, err := sponsor.LoadCreatives(cfg.Slots.CreativesPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sponsor.WithCreatives(cards))
	}
	return sponsor.New(opts...), nil
}

// buildController creates the slot controller. An invalid slot policy
// is a session-level degradation, not a startup failure: the reader
// runs with a plain feed and the reason is logged once.
func buildController(cfg *config.Config, provider slots.Provider, emitter telemetry.Emitter, logger *slog.Logger) *slots.Controller {
	slotCfg := cfg.SlotConfig()
	if !cfg.Slots.Enabled {
		slotCfg.Interval = 0 // deliberate no-slots session
	}

	controller, err := slots.NewController(slotCfg, provider, emitter)
	if err != nil && cfg.Slots.Enabled {
		logger.Warn("slot policy invalid, running without sponsored slots", "err", err)
	}
	return controller
}

// effectiveVersion returns the version string, with fallback to build info.
func effectiveVersion(v string) string {
	if v != "" {
		return v
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "unknown"
	}
	if info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	var revision string
	var dirty bool
	for _, setting := range info.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.modified":
			dirty = setting.Value == "true"
		}
	}
	if revision != "" {
		ver := "devel+" + revision
		if len(ver) > 20 {
			ver = ver[:20]
		}
		if dirty {
			ver += "+dirty"
		}
		return ver
	}
	return "devel"
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: skim [options]\n\n")
		fmt.Fprintf(os.Stderr, "A terminal feed reader with lazily loaded sponsored slots.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
	}
}
