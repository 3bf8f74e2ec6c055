package starfile

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"

	"github.com/ha1tch/starlines/pkg/raster"
)

// Config is the star.toml content.
type Config struct {
	SVG       string        `toml:"svg"`       // descriptor holding the radius
	Radius    int           `toml:"radius"`    // used when no descriptor is given
	Width     int           `toml:"width"`     // canvas width
	Height    int           `toml:"height"`    // canvas height
	Center    PointConfig   `toml:"center"`    // star centre
	Vertices  int           `toml:"vertices"`  // N
	Skip      int           `toml:"skip"`      // M
	Reference string        `toml:"reference"` // "gg" or "vector"
	Legend    bool          `toml:"legend"`
	Outputs   []string      `toml:"outputs"`
	Routes    []RouteConfig `toml:"route"`
}

// PointConfig is an x/y pair.
type PointConfig struct {
	X int `toml:"x"`
	Y int `toml:"y"`
}

// RouteConfig assigns segments to one algorithm.
type RouteConfig struct {
	Algorithm string `toml:"algorithm"`
	Color     []int  `toml:"color"`
	Segments  []int  `toml:"segments"`
}

// RGB converts Color to a raster colour.
func (r RouteConfig) RGB() (raster.Color, error) {
	if len(r.Color) != 3 {
		return raster.Color{}, fmt.Errorf("route %s: color needs 3 channels, got %d", r.Algorithm, len(r.Color))
	}
	var ch [3]uint8
	for i, v := range r.Color {
		if v < 0 || v > 255 {
			return raster.Color{}, fmt.Errorf("route %s: channel %d out of range", r.Algorithm, v)
		}
		ch[i] = uint8(v)
	}
	return raster.Color{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// DefaultConfig reproduces the classic run: radius from star_octagon.svg,
// 600x400 canvas, {8/3} star at (300, 200), one algorithm per colour.
func DefaultConfig() Config {
	return Config{
		SVG:       "star_octagon.svg",
		Width:     600,
		Height:    400,
		Center:    PointConfig{X: 300, Y: 200},
		Vertices:  8,
		Skip:      3,
		Reference: "gg",
		Outputs:   DefaultOutputs(),
		Routes:    DefaultRoutes(),
	}
}

// DefaultOutputs are the two files a render writes.
func DefaultOutputs() []string {
	return []string{"star.ppm", "star.png"}
}

// DefaultRoutes spreads the eight segments over the four algorithms.
func DefaultRoutes() []RouteConfig {
	return []RouteConfig{
		{Algorithm: "bresenham-int", Color: []int{255, 0, 0}, Segments: []int{0, 4}},
		{Algorithm: "dda", Color: []int{0, 255, 0}, Segments: []int{1, 5}},
		{Algorithm: "bresenham-float", Color: []int{0, 0, 255}, Segments: []int{2, 6}},
		{Algorithm: "reference", Color: []int{255, 255, 0}, Segments: []int{3, 7}},
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Lists given in the file
// replace the defaults wholesale.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	cfg.Outputs = nil
	cfg.Routes = nil

	md, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return Config{}, errors.Wrapf(err, "config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return Config{}, fmt.Errorf("config %s: unknown keys: %s", path, strings.Join(keys, ", "))
	}

	// A radius in the file stands in for the default descriptor.
	if md.IsDefined("radius") && !md.IsDefined("svg") {
		cfg.SVG = ""
	}
	if cfg.Outputs == nil {
		cfg.Outputs = DefaultOutputs()
	}
	if cfg.Routes == nil {
		cfg.Routes = DefaultRoutes()
	}
	return cfg, cfg.Validate()
}

// Validate checks ranges; algorithm names are checked when the plan is
// built.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d must be positive", c.Width, c.Height)
	}
	if c.SVG == "" && c.Radius <= 0 {
		return errors.New("either svg or a positive radius is required")
	}
	for _, out := range c.Outputs {
		if _, err := FormatFor(out); err != nil {
			return errors.Wrapf(err, "output %s", out)
		}
	}
	for _, r := range c.Routes {
		if _, err := r.RGB(); err != nil {
			return err
		}
	}
	return nil
}
