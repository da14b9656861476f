package engine

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/taigrr/trophy/pkg/render"
)

// Config is the engine's own startup configuration — output resolution,
// worker count, and default rasterization/AA settings — as distinct from
// the scene-settings JSON file that places objects and lights. It is read
// from a TOML file rather than command-line flags or compile-time
// constants.
type Config struct {
	Width       int    `toml:"width"`
	Height      int    `toml:"height"`
	ThreadCount int    `toml:"thread_count"`
	Raster      string `toml:"raster_mode"`       // "scanline" or "halfspace"
	AntiAlias   string `toml:"anti_aliasing_mode"` // "off", "msaa4x", "ssaa2x", "ssaa4x"
	Mipmaps     bool   `toml:"mipmaps_enabled"`
}

// DefaultConfig matches NewRenderingContext's implicit defaults.
func DefaultConfig() Config {
	return Config{
		Width:       320,
		Height:      200,
		ThreadCount: 4,
		Raster:      "halfspace",
		AntiAlias:   "off",
		Mipmaps:     true,
	}
}

// LoadConfig reads and decodes a TOML engine config file.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading engine config: %w", err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing engine config %s: %w", path, err)
	}
	return cfg, nil
}

// RasterMode parses the Raster field, defaulting to half-space rasterization
// for an unrecognized or empty value.
func (c Config) RasterMode() render.RasterMode {
	if c.Raster == "scanline" {
		return render.RasterScanline
	}
	return render.RasterHalfspace
}

// AAMode parses the AntiAlias field, defaulting to AAOff for an
// unrecognized or empty value.
func (c Config) AAMode() render.AAMode {
	switch c.AntiAlias {
	case "msaa4x":
		return render.AAMSAA4x
	case "ssaa2x":
		return render.AASSAA2x
	case "ssaa4x":
		return render.AASSAA4x
	default:
		return render.AAOff
	}
}

// NewContextFromConfig builds a RenderingContext wired per cfg.
func NewContextFromConfig(cfg Config) *RenderingContext {
	c := NewRenderingContext(cfg.Width, cfg.Height, cfg.ThreadCount)
	c.SetRasterizationMode(cfg.RasterMode())
	c.SetAntiAliasingMode(cfg.AAMode())
	c.SetMipmapsEnabled(cfg.Mipmaps)
	return c
}
