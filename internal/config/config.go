// Package config holds the settings of the commands: server address,
// rendering parameters and trace level. Settings come from an optional JSON
// file; command line flags take priority.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/lfdtrade/preset"
	"github.com/npillmayer/lfdtrade/render/raster"
	"github.com/npillmayer/lfdtrade/scene"
	"github.com/npillmayer/schuko/tracing"
)

// TraceKeys are the trace keys of all packages of the module.
var TraceKeys = []string{
	"lfdtrade", "preset", "geometry", "scene", "selector",
	"jhobby", "polygon", "render", "server",
}

// Config holds all configurable settings.
type Config struct {
	// Server
	Listen         string   `json:"listen"`
	DefaultPreset  string   `json:"default_preset"`
	AllowedOrigins []string `json:"allowed_origins"`

	// Rendering
	CanvasSize  int    `json:"canvas_size"`
	Supersample int    `json:"supersample"`
	Format      string `json:"format"`
	OutputDir   string `json:"output_dir"`

	TraceLevel string `json:"trace_level"`
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	Listen     string
	Preset     string
	Size       int
	Format     string
	OutputDir  string
	TraceLevel string
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Resolve applies CLI flags and fills in defaults for empty fields.
func (c *Config) Resolve(flags Flags) {
	if flags.Listen != "" {
		c.Listen = flags.Listen
	}
	if flags.Preset != "" {
		c.DefaultPreset = flags.Preset
	}
	if flags.Size > 0 {
		c.CanvasSize = flags.Size
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.TraceLevel != "" {
		c.TraceLevel = flags.TraceLevel
	}

	if c.Listen == "" {
		c.Listen = ":8050"
	}
	if c.DefaultPreset == "" {
		c.DefaultPreset = preset.Tablet.Code()
	}
	if len(c.AllowedOrigins) == 0 {
		c.AllowedOrigins = []string{"*"}
	}
	if c.CanvasSize <= 0 {
		c.CanvasSize = scene.CanvasSize
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Format == "" {
		c.Format = string(raster.PNG)
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if c.TraceLevel == "" {
		c.TraceLevel = "info"
	}
}

// Validate checks the values which are parsed further by the commands.
func (c Config) Validate() error {
	if _, err := preset.ParseKey(c.DefaultPreset); err != nil {
		return fmt.Errorf("config: default_preset: %w", err)
	}
	if _, err := raster.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: format: %w", err)
	}
	if _, ok := traceLevel(c.TraceLevel); !ok {
		return fmt.Errorf("config: unknown trace_level %q", c.TraceLevel)
	}
	return nil
}

// Preset returns the default preset key, Tablet if it cannot be parsed.
func (c Config) Preset() preset.Key {
	k, err := preset.ParseKey(c.DefaultPreset)
	if err != nil {
		return preset.Tablet
	}
	return k
}

// RasterOptions returns the raster settings.
func (c Config) RasterOptions() raster.Options {
	return raster.Options{Size: c.CanvasSize, Supersample: c.Supersample}
}

// ApplyTraceLevel sets the trace level of all packages.
func (c Config) ApplyTraceLevel() {
	level, ok := traceLevel(c.TraceLevel)
	if !ok {
		level = tracing.LevelInfo
	}
	for _, key := range TraceKeys {
		tracing.Select(key).SetTraceLevel(level)
	}
}

func traceLevel(s string) (tracing.TraceLevel, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return tracing.LevelDebug, true
	case "info":
		return tracing.LevelInfo, true
	case "error":
		return tracing.LevelError, true
	}
	return tracing.LevelInfo, false
}
