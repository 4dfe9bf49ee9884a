// Package main is the entry point for tilegen.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/config"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/export"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/logging"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/metrics"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/presets"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/telemetry"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/ui"
)

const usage = `usage: tilegen [generate|preview|presets] [flags]

  generate  write the 16 tile variants (default)
  preview   show the variants in the terminal
  presets   list the built-in tile presets
`

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		logrus.Debugf(".env file not loaded: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		logrus.WithError(err).Error("tilegen failed")
		stop()
		os.Exit(1)
	}
}

// options are the command line overrides on top of the config file.
type options struct {
	command    string
	configPath string
	preset     string
	size       float64
	height     float64
	out        string

	// set holds the names of flags given on the command line.
	set map[string]bool
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	opts := options{command: "generate", set: make(map[string]bool)}
	if len(args) > 0 && len(args[0]) > 0 && args[0][0] != '-' {
		opts.command, args = args[0], args[1:]
	}

	fs := flag.NewFlagSet("tilegen", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}
	fs.StringVar(&opts.configPath, "config", "", "path to a YAML config file (default $TILEGEN_CONFIG)")
	fs.StringVar(&opts.preset, "preset", "", "named tile preset")
	fs.Float64Var(&opts.size, "size", 0, "tile edge length, overrides config and preset")
	fs.Float64Var(&opts.height, "height", 0, "wall height, overrides config and preset")
	fs.StringVar(&opts.out, "out", "", "output root directory")
	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })

	switch opts.command {
	case "generate", "preview", "presets":
		return opts, nil
	default:
		fs.Usage()
		return opts, fmt.Errorf("unknown command %q", opts.command)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	opts, err := parseArgs(args, os.Stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}

	registry, err := presets.LoadRegistry()
	if err != nil {
		return err
	}
	if opts.command == "presets" {
		return listPresets(stdout, registry)
	}

	cfg, err := resolveConfig(opts, registry)
	if err != nil {
		return err
	}

	// The preview owns the terminal, so its log lines only go to the file.
	var console io.Writer = os.Stderr
	if opts.command == "preview" {
		console = io.Discard
	}
	logger, closer, err := logging.New(logging.Options{
		Level: cfg.Log.Level,
		File:  cfg.Log.File,
		JSON:  cfg.Log.JSON,
	}, console)
	if err != nil {
		return err
	}
	defer closer.Close()
	log := logging.Component(logger, "main")

	if telemetry.ConfigureHoneycomb() {
		shutdown, err := telemetry.Setup(ctx)
		if err != nil {
			log.WithError(err).Warn("telemetry setup failed, running without tracing")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					log.WithError(err).Warn("error shutting down telemetry")
				}
			}()
		}
	} else {
		log.Debug("no Honeycomb API key, tracing disabled")
	}

	tracer := telemetry.Tracer("cli")
	ctx, span := tracer.Start(ctx, "tilegen."+opts.command)
	defer span.End()

	log.WithFields(logrus.Fields{
		"size":   cfg.Tile.Size,
		"height": cfg.Tile.Height,
		"preset": cfg.Tile.Preset,
	}).Info("building tile variants")

	variants, err := tile.Enumerate(ctx, cfg.Tile.Size, cfg.Tile.Height)
	if err != nil {
		return err
	}

	if opts.command == "preview" {
		return preview(ctx, variants)
	}
	return generate(ctx, cfg, logger, variants)
}

// resolveConfig loads the config file and applies the preset and flags.
func resolveConfig(opts options, registry *presets.Registry) (*config.Config, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if opts.preset != "" {
		cfg.Tile.Preset = opts.preset
	}
	if cfg.Tile.Preset != "" {
		p, err := registry.GetByName(cfg.Tile.Preset)
		if err != nil {
			return nil, err
		}
		cfg.Tile.Size, cfg.Tile.Height = p.Size, p.Height
	}

	if opts.set["size"] {
		cfg.Tile.Size = float32(opts.size)
	}
	if opts.set["height"] {
		cfg.Tile.Height = float32(opts.height)
	}
	if opts.out != "" {
		cfg.Output.Dir = opts.out
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func generate(ctx context.Context, cfg *config.Config, logger *logrus.Logger, variants []tile.Variant) error {
	rec := metrics.New()
	w, err := export.New(cfg.Output.Dir, export.Materials{
		Floor:   cfg.Materials.Floor,
		Ceiling: cfg.Materials.Ceiling,
		Wall:    cfg.Materials.Wall,
	}, export.WithLogger(logger), export.WithMetrics(rec))
	if err != nil {
		return err
	}

	if _, err := w.Write(ctx, cfg.Tile.Size, cfg.Tile.Height, variants); err != nil {
		return err
	}

	if cfg.Metrics.Textfile != "" {
		if err := rec.WriteTextfile(cfg.Metrics.Textfile); err != nil {
			return err
		}
	}
	return nil
}

func preview(ctx context.Context, variants []tile.Variant) error {
	screen, err := ui.NewScreen()
	if err != nil {
		return fmt.Errorf("initialize screen: %w", err)
	}
	defer screen.Close()

	return ui.NewPreview(screen, variants).Run(ctx)
}

func listPresets(w io.Writer, registry *presets.Registry) error {
	for _, name := range registry.Names() {
		p, err := registry.GetByName(name)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%-10s %gx%gx%g  %s\n", p.Name, p.Size, p.Size, p.Height, p.Description); err != nil {
			return err
		}
	}
	return nil
}
