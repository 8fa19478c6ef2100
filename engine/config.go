package engine

import (
	"fmt"
	"time"

	"github.com/lixenwraith/dotgrid/geometry"
	"github.com/lixenwraith/dotgrid/grid"
)

// Config is fixed at construction; engines never mutate it
type Config struct {
	// Lattice and look
	Spacing         float64 `mapstructure:"spacing"`
	BaseRadius      float64 `mapstructure:"base_radius"`
	HoverRadius     float64 `mapstructure:"hover_radius"`
	BaseOpacity     float64 `mapstructure:"base_opacity"`
	HoverOpacity    float64 `mapstructure:"hover_opacity"`
	InfluenceRadius float64 `mapstructure:"influence_radius"`
	Easing          float64 `mapstructure:"easing"`
	FPS             int     `mapstructure:"fps"`
	Color           string  `mapstructure:"color"`

	// Lifecycle
	GeometryAttempts int           `mapstructure:"geometry_attempts"`
	GeometryDelay    time.Duration `mapstructure:"geometry_delay"`
	GeometryStep     time.Duration `mapstructure:"geometry_step"`
	StartTimeout     time.Duration `mapstructure:"start_timeout"`
	ResizeDebounce   time.Duration `mapstructure:"resize_debounce"`
	MinViewportWidth float64       `mapstructure:"min_viewport_width"`
}

// DefaultConfig returns the stock hero animation settings
func DefaultConfig() Config {
	return Config{
		Spacing:         25,
		BaseRadius:      2,
		HoverRadius:     6,
		BaseOpacity:     0.3,
		HoverOpacity:    1,
		InfluenceRadius: 120,
		Easing:          0.1,
		FPS:             30,
		Color:           "#7aa2f7",

		GeometryAttempts: 5,
		GeometryDelay:    50 * time.Millisecond,
		GeometryStep:     50 * time.Millisecond,
		StartTimeout:     2 * time.Second,
		ResizeDebounce:   150 * time.Millisecond,
		MinViewportWidth: 640,
	}
}

// Validate rejects values the engine cannot run with
func (c Config) Validate() error {
	switch {
	case c.Spacing <= 0:
		return fmt.Errorf("%w: spacing %v must be > 0", ErrInvalidConfig, c.Spacing)
	case c.BaseRadius < 0 || c.HoverRadius < 0:
		return fmt.Errorf("%w: radii must be >= 0", ErrInvalidConfig)
	case c.BaseOpacity < 0 || c.BaseOpacity > 1 || c.HoverOpacity < 0 || c.HoverOpacity > 1:
		return fmt.Errorf("%w: opacities must be in [0,1]", ErrInvalidConfig)
	case c.InfluenceRadius <= 0:
		return fmt.Errorf("%w: influence radius %v must be > 0", ErrInvalidConfig, c.InfluenceRadius)
	case c.Easing <= 0 || c.Easing > 1:
		return fmt.Errorf("%w: easing %v must be in (0,1]", ErrInvalidConfig, c.Easing)
	case c.FPS <= 0:
		return fmt.Errorf("%w: fps %d must be > 0", ErrInvalidConfig, c.FPS)
	case c.Color == "":
		return fmt.Errorf("%w: color must be set", ErrInvalidConfig)
	case c.GeometryAttempts < 1:
		return fmt.Errorf("%w: geometry attempts %d must be >= 1", ErrInvalidConfig, c.GeometryAttempts)
	case c.GeometryDelay < 0 || c.GeometryStep < 0:
		return fmt.Errorf("%w: geometry delays must be >= 0", ErrInvalidConfig)
	case c.StartTimeout <= 0:
		return fmt.Errorf("%w: start timeout must be > 0", ErrInvalidConfig)
	case c.ResizeDebounce < 0:
		return fmt.Errorf("%w: resize debounce must be >= 0", ErrInvalidConfig)
	case c.MinViewportWidth < 0:
		return fmt.Errorf("%w: min viewport width must be >= 0", ErrInvalidConfig)
	}
	return nil
}

// Style extracts the per-point visual constants
func (c Config) Style() grid.Style {
	return grid.Style{
		BaseRadius:      c.BaseRadius,
		HoverRadius:     c.HoverRadius,
		BaseOpacity:     c.BaseOpacity,
		HoverOpacity:    c.HoverOpacity,
		InfluenceRadius: c.InfluenceRadius,
		Easing:          c.Easing,
	}
}

// FrameInterval is the logical frame period
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// RetryPolicy is the geometry retry schedule
func (c Config) RetryPolicy() geometry.Policy {
	return geometry.Policy{
		Attempts: c.GeometryAttempts,
		Delay:    c.GeometryDelay,
		Step:     c.GeometryStep,
	}
}
