// Package config loads the outliner command's settings file.
//
// Values are layered: built-in defaults, then the YAML or TOML file, then
// OUTLINER_* environment variables. Command-line flags are applied last by
// the caller.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/outliner"
)

// ErrUnsupportedFormat is returned for config files that are neither YAML nor TOML.
var ErrUnsupportedFormat = errors.New("config: unsupported file format")

// OutlineConfig mirrors outliner.Options with host-level extras.
type OutlineConfig struct {
	Thickness          float64 `yaml:"thickness" toml:"thickness"`
	Contrast           float64 `yaml:"contrast" toml:"contrast"`
	ContrastAngle      float64 `yaml:"contrast_angle" toml:"contrast_angle"`
	Join               string  `yaml:"join" toml:"join"`
	Cap                string  `yaml:"cap" toml:"cap"`
	MiterLimit         float64 `yaml:"miter_limit" toml:"miter_limit"`
	CloseOpenPaths     bool    `yaml:"close_open_paths" toml:"close_open_paths"`
	OptimizeCurve      bool    `yaml:"optimize_curve" toml:"optimize_curve"`
	PreserveComponents bool    `yaml:"preserve_components" toml:"preserve_components"`
	FilterDoubles      bool    `yaml:"filter_doubles" toml:"filter_doubles"`
	AddOriginal        bool    `yaml:"add_original" toml:"add_original"`
	AddInner           bool    `yaml:"add_inner" toml:"add_inner"`
	AddOuter           bool    `yaml:"add_outer" toml:"add_outer"`
	KeepBounds         bool    `yaml:"keep_bounds" toml:"keep_bounds"`

	// MiterFromThickness ties the miter limit to the thickness.
	MiterFromThickness bool `yaml:"miter_from_thickness" toml:"miter_from_thickness"`
	// SnapAngle rounds the contrast angle to the nearest 45 degrees.
	SnapAngle bool `yaml:"snap_angle" toml:"snap_angle"`
}

type LoggingConfig struct {
	Level  string `yaml:"level" toml:"level"`
	Format string `yaml:"format" toml:"format"`
	File   string `yaml:"file" toml:"file"`
}

type PreviewConfig struct {
	Size    int    `yaml:"size" toml:"size"`
	Fill    bool   `yaml:"fill" toml:"fill"`
	Stroke  bool   `yaml:"stroke" toml:"stroke"`
	Color   string `yaml:"color" toml:"color"`
	Columns int    `yaml:"columns" toml:"columns"`
}

type Config struct {
	Outline OutlineConfig `yaml:"outline" toml:"outline"`
	Logging LoggingConfig `yaml:"logging" toml:"logging"`
	Preview PreviewConfig `yaml:"preview" toml:"preview"`
	// SettingsDB is the sqlite file used by the settings commands.
	SettingsDB string `yaml:"settings_db" toml:"settings_db"`
	// Workers bounds batch parallelism; 0 means one per CPU.
	Workers int `yaml:"workers" toml:"workers"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	d := outliner.DefaultOptions()
	return Config{
		Outline: OutlineConfig{
			Thickness:     d.Thickness,
			Contrast:      d.Contrast,
			ContrastAngle: d.ContrastAngle,
			Join:          d.Join.String(),
			Cap:           d.Cap.String(),
			MiterLimit:    d.MiterLimit,
			FilterDoubles: d.FilterDoubles,
			AddInner:      d.AddInner,
			AddOuter:      d.AddOuter,
		},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Preview: PreviewConfig{Size: 512, Fill: true, Stroke: true, Color: "#1f3a93", Columns: 6},
	}
}

// Env var names used as overrides.
const (
	EnvThickness     = "OUTLINER_THICKNESS"
	EnvContrast      = "OUTLINER_CONTRAST"
	EnvContrastAngle = "OUTLINER_CONTRAST_ANGLE"
	EnvJoin          = "OUTLINER_JOIN"
	EnvCap           = "OUTLINER_CAP"
	EnvWorkers       = "OUTLINER_WORKERS"
	EnvSettingsDB    = "OUTLINER_SETTINGS_DB"
	EnvLogLevel      = "OUTLINER_LOG_LEVEL"
	EnvLogFormat     = "OUTLINER_LOG_FORMAT"
	EnvLogFile       = "OUTLINER_LOG_FILE"
)

// Load reads path over the defaults and applies environment overrides.
// An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("config: %w", err)
		}
		if err := decode(path, data, &cfg); err != nil {
			return cfg, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	default:
		return fmt.Errorf("config: %s: %w", path, ErrUnsupportedFormat)
	}
	if err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	floats := []struct {
		key string
		dst *float64
	}{
		{EnvThickness, &cfg.Outline.Thickness},
		{EnvContrast, &cfg.Outline.Contrast},
		{EnvContrastAngle, &cfg.Outline.ContrastAngle},
	}
	for _, f := range floats {
		v := os.Getenv(f.key)
		if v == "" {
			continue
		}
		n, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config: %s: %w", f.key, err)
		}
		*f.dst = n
	}
	if v := os.Getenv(EnvWorkers); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("config: %s: %w", EnvWorkers, err)
		}
		cfg.Workers = n
	}

	strs := []struct {
		key string
		dst *string
	}{
		{EnvJoin, &cfg.Outline.Join},
		{EnvCap, &cfg.Outline.Cap},
		{EnvSettingsDB, &cfg.SettingsDB},
		{EnvLogLevel, &cfg.Logging.Level},
		{EnvLogFormat, &cfg.Logging.Format},
		{EnvLogFile, &cfg.Logging.File},
	}
	for _, s := range strs {
		if v := os.Getenv(s.key); v != "" {
			*s.dst = v
		}
	}
	return nil
}

// Options converts the outline section into engine options.
func (c OutlineConfig) Options() (outliner.Options, error) {
	join, err := outliner.ParseJoinStyle(c.Join)
	if err != nil {
		return outliner.Options{}, err
	}
	capStyle, err := outliner.ParseCapStyle(c.Cap)
	if err != nil {
		return outliner.Options{}, err
	}
	angle := c.ContrastAngle
	if c.SnapAngle {
		angle = SnapAngle(angle)
	}
	miter := c.MiterLimit
	if c.MiterFromThickness {
		miter = c.Thickness
	}
	return outliner.Options{
		Thickness:          c.Thickness,
		Contrast:           c.Contrast,
		ContrastAngle:      angle,
		Join:               join,
		Cap:                capStyle,
		MiterLimit:         miter,
		CloseOpenPaths:     c.CloseOpenPaths,
		OptimizeCurve:      c.OptimizeCurve,
		PreserveComponents: c.PreserveComponents,
		FilterDoubles:      c.FilterDoubles,
		AddOriginal:        c.AddOriginal,
		AddInner:           c.AddInner,
		AddOuter:           c.AddOuter,
		KeepBounds:         c.KeepBounds,
	}, nil
}

// SnapAngle rounds an angle in degrees to the nearest multiple of 45.
func SnapAngle(deg float64) float64 {
	return math.Round(deg/45) * 45
}
