// Package config loads generator settings from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/LutzGrosshennig/unity3d-3dtile-prototype-generator/internal/tile"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Config is the root of the configuration file.
type Config struct {
	Tile      TileConfig      `yaml:"tile"`
	Materials MaterialsConfig `yaml:"materials"`
	Output    OutputConfig    `yaml:"output"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

// TileConfig selects the tile dimensions, either directly or by preset name.
type TileConfig struct {
	Size   float32 `yaml:"size"`
	Height float32 `yaml:"height"`
	Preset string  `yaml:"preset"`
}

// MaterialsConfig names the material of each submesh.
type MaterialsConfig struct {
	Floor   string `yaml:"floor"`
	Ceiling string `yaml:"ceiling"`
	Wall    string `yaml:"wall"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
	JSON  bool   `yaml:"json"`
}

type MetricsConfig struct {
	// Textfile is a node_exporter textfile collector path; empty disables it.
	Textfile string `yaml:"textfile"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Tile: TileConfig{Size: 3, Height: 3},
		Materials: MaterialsConfig{
			Floor:   "Floor",
			Ceiling: "Ceiling",
			Wall:    "Wall",
		},
		Output: OutputConfig{Dir: "Assets/Generated"},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults and then applies
// environment overrides. An empty path falls back to TILEGEN_CONFIG; if
// that is unset too, only defaults and environment are used.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv("TILEGEN_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyEnv overrides file values with TILEGEN_* variables when present.
func (c *Config) applyEnv() error {
	if err := envFloat("TILEGEN_TILE_SIZE", &c.Tile.Size); err != nil {
		return err
	}
	if err := envFloat("TILEGEN_TILE_HEIGHT", &c.Tile.Height); err != nil {
		return err
	}
	envString("TILEGEN_TILE_PRESET", &c.Tile.Preset)
	envString("TILEGEN_OUTPUT_DIR", &c.Output.Dir)
	envString("TILEGEN_LOG_LEVEL", &c.Log.Level)
	envString("TILEGEN_LOG_FILE", &c.Log.File)
	envString("TILEGEN_METRICS_TEXTFILE", &c.Metrics.Textfile)
	return nil
}

func envString(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func envFloat(key string, dst *float32) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 32)
	if err != nil {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, v, err)
	}
	*dst = float32(f)
	return nil
}

// Validate checks the values the generator cannot work without. Materials
// are checked by the exporter.
func (c *Config) Validate() error {
	if err := tile.Validate(c.Tile.Size, c.Tile.Height, tile.WallNone); err != nil {
		return fmt.Errorf("%w: tile: %w", ErrInvalidConfig, err)
	}
	if c.Output.Dir == "" {
		return fmt.Errorf("%w: output.dir is empty", ErrInvalidConfig)
	}
	return nil
}
