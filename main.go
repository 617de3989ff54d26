package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/solwheel/astroglobe/config"
	"github.com/solwheel/astroglobe/engine"
	"github.com/solwheel/astroglobe/globe"
	"github.com/solwheel/astroglobe/logger"
)

type cliFlags struct {
	configPath *string

	lat, lng *float64
	size     *int
	frames   *int
	timeStr  *string

	day, night, clouds *string
	out                *string

	markerLat, markerLng *float64
	markerLabel          *string

	pauseAt, resumeAt *int

	showHelp *bool
}

func defineFlags() cliFlags {
	return cliFlags{
		configPath: flag.String("config", "astroglobe.yaml", "Config file path (optional)"),

		lat: flag.Float64("lat", 0.0, "Initial view latitude in degrees"),
		lng: flag.Float64("lng", 0.0, "Initial view longitude in degrees"),

		size:    flag.Int("size", 0, "Output image size (overrides config)"),
		frames:  flag.Int("frames", 1, "Number of frames to render"),
		timeStr: flag.String("time", "", "Start time in RFC3339 format (e.g., 2025-08-02T15:04:05Z); defaults to now"),

		day:    flag.String("day", "", "Day texture path (overrides config)"),
		night:  flag.String("night", "", "Night texture path (overrides config)"),
		clouds: flag.String("clouds", "", "Clouds texture path (overrides config)"),
		out:    flag.String("out", "frames", "Output directory for PNG frames"),

		markerLat:   flag.Float64("marker-lat", 0.0, "Marker latitude (with -marker-label)"),
		markerLng:   flag.Float64("marker-lng", 0.0, "Marker longitude (with -marker-label)"),
		markerLabel: flag.String("marker-label", "", "Recenter on this labeled location before rendering"),

		pauseAt:  flag.Int("pause-at", -1, "Frame index at which a user gesture starts"),
		resumeAt: flag.Int("resume-at", -1, "Frame index at which the gesture ends"),

		showHelp: flag.Bool("h", false, "Show this help message"),
	}
}

func printHelp() {
	fmt.Fprintf(os.Stderr, `Astroglobe - Sun-Synchronized Globe Renderer

Usage:
  %[1]s [options]

`, os.Args[0])

	printGroup("View Options", []string{"lat", "lng", "time"})
	printGroup("Rendering Options", []string{"size", "frames", "out"})
	printGroup("Assets", []string{"day", "night", "clouds"})
	printGroup("Marker", []string{"marker-lat", "marker-lng", "marker-label"})
	printGroup("Interaction Script", []string{"pause-at", "resume-at"})
	printGroup("Misc", []string{"config", "h"})
}

func printGroup(title string, keys []string) {
	fmt.Fprintf(os.Stderr, "%s:\n", title)
	for _, name := range keys {
		if f := flag.Lookup(name); f != nil {
			fmt.Fprintf(os.Stderr, "  -%-14s %s (default %q)\n", f.Name, f.Usage, f.DefValue)
		}
	}
	fmt.Fprintln(os.Stderr)
}

func main() {
	flags := defineFlags()
	flag.Usage = printHelp
	flag.Parse()

	if *flags.showHelp {
		printHelp()
		return
	}

	cfg, err := config.Load(*flags.configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	applyOverrides(cfg, flags)

	log, err := logger.New(cfg.Logging.Level, cfg.Logging.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, flags, log); err != nil {
		log.Fatal("render failed", zap.Error(err))
	}
}

func applyOverrides(cfg *config.Config, flags cliFlags) {
	if *flags.size > 0 {
		cfg.Render.Width = *flags.size
		cfg.Render.Height = *flags.size
	}
	if *flags.day != "" {
		cfg.Assets.Day = *flags.day
	}
	if *flags.night != "" {
		cfg.Assets.Night = *flags.night
	}
	if *flags.clouds != "" {
		cfg.Assets.Clouds = *flags.clouds
	}
}

func run(cfg *config.Config, flags cliFlags, log *zap.Logger) error {
	start, err := parseTime(*flags.timeStr)
	if err != nil {
		return err
	}

	g := globe.NewSoftware(globe.SoftwareConfig{
		Assets: globe.Assets{
			Day:    cfg.Assets.Day,
			Night:  cfg.Assets.Night,
			Clouds: cfg.Assets.Clouds,
		},
		LoEdge:      cfg.Render.TerminatorLo,
		HiEdge:      cfg.Render.TerminatorHi,
		Width:       cfg.Render.Width,
		Height:      cfg.Render.Height,
		Margin:      cfg.Engine.MarginFactor,
		Supersample: cfg.Render.Supersample,
		Workers:     cfg.Render.Workers,
		Atmosphere:  cfg.Render.Atmosphere,
	})
	if err := g.Load(context.Background()); err != nil {
		return err
	}

	eng := engine.New(g, engine.Options{
		RotationRateDegPerMs: cfg.Engine.RotationDegPerMs,
		DebounceDelay:        cfg.Engine.DebounceDelay,
		FrameInterval:        cfg.Engine.FrameInterval,
		FlyToDuration:        cfg.Engine.FlyToDuration,
		MarginFactor:         cfg.Engine.MarginFactor,
		PointerInteraction:   cfg.Engine.PointerInteraction,
	}, log)
	defer eng.Close()

	// Offline frames advance a simulated clock; the engine reads it through
	// its Clock so gate deadlines and rotation deltas stay consistent.
	now := start
	eng.SetClock(func() time.Time { return now })

	eng.SetView(globe.View{Lat: *flags.lat, Lng: *flags.lng, Altitude: globe.DefaultAltitude})
	if *flags.markerLabel != "" {
		eng.Recenter(*flags.markerLat, *flags.markerLng, *flags.markerLabel)
	}

	if err := os.MkdirAll(*flags.out, 0o755); err != nil {
		return err
	}

	for i := 0; i < *flags.frames; i++ {
		if i == *flags.pauseAt {
			eng.InteractionStart()
		}
		if i == *flags.resumeAt {
			eng.InteractionEnd()
		}

		eng.Step(now)

		img, err := g.Render()
		if err != nil {
			return err
		}
		path := filepath.Join(*flags.out, fmt.Sprintf("frame_%04d.png", i))
		if err := writePNG(path, img); err != nil {
			return err
		}

		log.Info("frame rendered",
			zap.Int("frame", i),
			zap.Time("sim_time", now),
			zap.Float64("lng", eng.View().Lng),
		)
		now = now.Add(cfg.Engine.FrameInterval)
	}

	return nil
}

func parseTime(timeStr string) (time.Time, error) {
	if timeStr == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(time.RFC3339, timeStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time format: %w", err)
	}
	return t, nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return (&png.Encoder{CompressionLevel: png.BestSpeed}).Encode(f, img)
}
