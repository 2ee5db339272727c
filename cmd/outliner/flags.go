package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gogpu/outliner"
	"github.com/gogpu/outliner/glyphset"
	"github.com/gogpu/outliner/internal/applog"
	"github.com/gogpu/outliner/internal/config"
	"github.com/gogpu/outliner/settings"
)

// flags is a command's flag set. Flags registered through it override the
// loaded configuration only when given on the command line.
type flags struct {
	fs         *flag.FlagSet
	configPath string
	verbose    bool

	vals  config.Config
	apply map[string]func(*config.Config)
}

func newFlags(a *app, name, args string) *flags {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.stderr)
	fs.Usage = func() {
		fmt.Fprintf(a.stderr, "usage: outliner %s [flags] %s\n\n", name, args)
		fs.PrintDefaults()
	}
	f := &flags{fs: fs, vals: config.Defaults(), apply: make(map[string]func(*config.Config))}
	fs.StringVar(&f.configPath, "config", "", "YAML or TOML configuration file")
	fs.BoolVar(&f.verbose, "v", false, "log debug messages")
	return f
}

func (f *flags) float(name string, field func(*config.Config) *float64, usage string) {
	f.fs.Float64Var(field(&f.vals), name, *field(&f.vals), usage)
	f.apply[name] = func(c *config.Config) { *field(c) = *field(&f.vals) }
}

func (f *flags) integer(name string, field func(*config.Config) *int, usage string) {
	f.fs.IntVar(field(&f.vals), name, *field(&f.vals), usage)
	f.apply[name] = func(c *config.Config) { *field(c) = *field(&f.vals) }
}

func (f *flags) str(name string, field func(*config.Config) *string, usage string) {
	f.fs.StringVar(field(&f.vals), name, *field(&f.vals), usage)
	f.apply[name] = func(c *config.Config) { *field(c) = *field(&f.vals) }
}

func (f *flags) boolean(name string, field func(*config.Config) *bool, usage string) {
	f.fs.BoolVar(field(&f.vals), name, *field(&f.vals), usage)
	f.apply[name] = func(c *config.Config) { *field(c) = *field(&f.vals) }
}

// outline registers the outline option flags.
func (f *flags) outline() {
	f.float("thickness", func(c *config.Config) *float64 { return &c.Outline.Thickness }, "stroke thickness in font units")
	f.float("contrast", func(c *config.Config) *float64 { return &c.Outline.Contrast }, "extra width along the contrast angle")
	f.float("angle", func(c *config.Config) *float64 { return &c.Outline.ContrastAngle }, "contrast angle in degrees")
	f.str("join", func(c *config.Config) *string { return &c.Outline.Join }, "corner join: square, round or butt")
	f.str("cap", func(c *config.Config) *string { return &c.Outline.Cap }, "open path cap: square, round or butt")
	f.float("miter", func(c *config.Config) *float64 { return &c.Outline.MiterLimit }, "miter limit as a multiple of the thickness")
	f.boolean("miter-from-thickness", func(c *config.Config) *bool { return &c.Outline.MiterFromThickness }, "set the miter limit to the thickness")
	f.boolean("snap-angle", func(c *config.Config) *bool { return &c.Outline.SnapAngle }, "round the contrast angle to 45 degrees")
	f.boolean("close-open", func(c *config.Config) *bool { return &c.Outline.CloseOpenPaths }, "cap open paths with the cap style")
	f.boolean("optimize", func(c *config.Config) *bool { return &c.Outline.OptimizeCurve }, "fit fewer curves and merge straight runs")
	f.boolean("preserve-components", func(c *config.Config) *bool { return &c.Outline.PreserveComponents }, "outline each component base once")
	f.boolean("filter-doubles", func(c *config.Config) *bool { return &c.Outline.FilterDoubles }, "drop zero-length segments")
	f.boolean("original", func(c *config.Config) *bool { return &c.Outline.AddOriginal }, "keep the source contours")
	f.boolean("inner", func(c *config.Config) *bool { return &c.Outline.AddInner }, "add inner contours")
	f.boolean("outer", func(c *config.Config) *bool { return &c.Outline.AddOuter }, "add outer contours")
	f.boolean("keep-bounds", func(c *config.Config) *bool { return &c.Outline.KeepBounds }, "scale the result to the source height")
	f.integer("workers", func(c *config.Config) *int { return &c.Workers }, "glyphs outlined in parallel (0: one per CPU)")
}

// preview registers the rendering flags.
func (f *flags) preview() {
	f.integer("size", func(c *config.Config) *int { return &c.Preview.Size }, "image size in pixels")
	f.boolean("fill", func(c *config.Config) *bool { return &c.Preview.Fill }, "fill the outlined result")
	f.boolean("stroke", func(c *config.Config) *bool { return &c.Preview.Stroke }, "draw the source contours")
	f.str("color", func(c *config.Config) *string { return &c.Preview.Color }, "fill color as #rrggbb")
	f.integer("columns", func(c *config.Config) *int { return &c.Preview.Columns }, "proof sheet columns")
}

// store registers the settings database flag.
func (f *flags) store() {
	f.str("db", func(c *config.Config) *string { return &c.SettingsDB }, "settings database (default: user config dir)")
}

func (f *flags) parse(args []string) error {
	return f.fs.Parse(args)
}

// overlay copies the explicitly set flags into cfg.
func (f *flags) overlay(cfg *config.Config) {
	f.fs.Visit(func(fl *flag.Flag) {
		if set, ok := f.apply[fl.Name]; ok {
			set(cfg)
		}
	})
	if f.verbose {
		cfg.Logging.Level = "debug"
	}
}

// session is the resolved state of one command run.
type session struct {
	cfg   config.Config
	opts  outliner.Options
	close func()
}

// setup loads the configuration, installs the logger and resolves the
// outline options. With saved set, settings stored in the glyph set's lib
// replace the configured outline section; flags still win.
func (a *app) setup(ctx context.Context, f *flags, font *glyphset.Font, saved bool) (*session, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, err
	}
	f.overlay(&cfg)

	logOpts := applog.Options{Level: cfg.Logging.Level, Format: cfg.Logging.Format, File: cfg.Logging.File}
	logger, closer := applog.New(a.stderr, logOpts.Merge(applog.FromEnv()))
	outliner.SetLogger(logger)
	s := &session{close: func() {
		outliner.SetLogger(nil)
		_ = closer.Close()
	}}

	if saved && font != nil {
		st, err := settings.LibStore{Font: font}.Load(ctx)
		switch {
		case err == nil:
			cfg.Outline = outlineConfig(st)
			f.overlay(&cfg)
			logger.Debug("using saved settings", "font", font.Name)
		case errors.Is(err, settings.ErrNoSettings):
			a.ui.warn("%s has no saved settings, using defaults", font.Name)
		default:
			s.close()
			return nil, err
		}
	}

	s.cfg = cfg
	if s.opts, err = cfg.Outline.Options(); err != nil {
		s.close()
		return nil, err
	}
	return s, nil
}

// outlineConfig converts stored settings into the config outline section.
func outlineConfig(st settings.Settings) config.OutlineConfig {
	o := st.Options
	return config.OutlineConfig{
		Thickness:          o.Thickness,
		Contrast:           o.Contrast,
		ContrastAngle:      o.ContrastAngle,
		Join:               o.Join.String(),
		Cap:                o.Cap.String(),
		MiterLimit:         o.MiterLimit,
		CloseOpenPaths:     o.CloseOpenPaths,
		OptimizeCurve:      o.OptimizeCurve,
		PreserveComponents: o.PreserveComponents,
		FilterDoubles:      o.FilterDoubles,
		AddOriginal:        o.AddOriginal,
		AddInner:           o.AddInner,
		AddOuter:           o.AddOuter,
		KeepBounds:         o.KeepBounds,
		MiterFromThickness: st.MiterFromThickness,
	}
}

// savedSettings is the inverse of outlineConfig plus the display choices.
func savedSettings(cfg config.Config, opts outliner.Options) settings.Settings {
	return settings.Settings{
		Options:            opts,
		MiterFromThickness: cfg.Outline.MiterFromThickness,
		Display: settings.Display{
			Preview: true,
			Fill:    cfg.Preview.Fill,
			Stroke:  cfg.Preview.Stroke,
			Color:   cfg.Preview.Color,
		},
	}
}

// settingsDB returns the configured database path or the per-user default.
func settingsDB(cfg config.Config) (string, error) {
	if cfg.SettingsDB != "" {
		return cfg.SettingsDB, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	dir = filepath.Join(dir, "outliner")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "settings.db"), nil
}

// needArgs checks the positional argument count.
func (f *flags) needArgs(minArgs, maxArgs int) error {
	n := f.fs.NArg()
	if n < minArgs || (maxArgs >= 0 && n > maxArgs) {
		f.fs.Usage()
		return errUsage
	}
	return nil
}
