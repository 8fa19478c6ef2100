// Package config loads dotgrid settings from defaults, a TOML file and DOTGRID_ environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/lixenwraith/dotgrid/engine"
)

// EnvPrefix prefixes every environment override, e.g. DOTGRID_ENGINE_FPS
const EnvPrefix = "DOTGRID"

// Config holds application configuration
type Config struct {
	Engine   engine.Config  `mapstructure:"engine"`
	Terminal TerminalConfig `mapstructure:"terminal"`
	Audio    AudioConfig    `mapstructure:"audio"`
}

// TerminalConfig holds screen settings
type TerminalConfig struct {
	HeroFraction  float64       `mapstructure:"hero_fraction"`
	Background    string        `mapstructure:"background"`
	FrameInterval time.Duration `mapstructure:"frame_interval"`
}

// AudioConfig holds hover chime settings
type AudioConfig struct {
	Enabled   bool          `mapstructure:"enabled"`
	Frequency float64       `mapstructure:"frequency"`
	Duration  time.Duration `mapstructure:"duration"`
	Volume    float64       `mapstructure:"volume"`
}

// Load reads configuration from path, or DOTGRID_CONFIG, or ~/.config/dotgrid/config.toml
// A missing default file is not an error; a missing explicit file is
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("toml")
	if path == "" {
		path = os.Getenv(EnvPrefix + "_CONFIG")
	}
	if path != "" {
		v.SetConfigFile(path)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "dotgrid"))
		}
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Default returns the configuration used when nothing overrides it
func Default() Config {
	return Config{
		Engine: engine.DefaultConfig(),
		Terminal: TerminalConfig{
			HeroFraction:  0.6,
			Background:    "#1a1b26",
			FrameInterval: time.Second / 60,
		},
		Audio: AudioConfig{
			Enabled:   false,
			Frequency: 880,
			Duration:  60 * time.Millisecond,
			Volume:    0.15,
		},
	}
}

// Validate checks every section
func (c Config) Validate() error {
	if err := c.Engine.Validate(); err != nil {
		return fmt.Errorf("engine: %w", err)
	}
	if c.Terminal.HeroFraction <= 0 || c.Terminal.HeroFraction > 1 {
		return fmt.Errorf("%w: terminal hero fraction %v must be in (0,1]", engine.ErrInvalidConfig, c.Terminal.HeroFraction)
	}
	if c.Terminal.FrameInterval <= 0 {
		return fmt.Errorf("%w: terminal frame interval must be > 0", engine.ErrInvalidConfig)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: audio volume %v must be in [0,1]", engine.ErrInvalidConfig, c.Audio.Volume)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	d := Default()

	v.SetDefault("engine.spacing", d.Engine.Spacing)
	v.SetDefault("engine.base_radius", d.Engine.BaseRadius)
	v.SetDefault("engine.hover_radius", d.Engine.HoverRadius)
	v.SetDefault("engine.base_opacity", d.Engine.BaseOpacity)
	v.SetDefault("engine.hover_opacity", d.Engine.HoverOpacity)
	v.SetDefault("engine.influence_radius", d.Engine.InfluenceRadius)
	v.SetDefault("engine.easing", d.Engine.Easing)
	v.SetDefault("engine.fps", d.Engine.FPS)
	v.SetDefault("engine.color", d.Engine.Color)
	v.SetDefault("engine.geometry_attempts", d.Engine.GeometryAttempts)
	v.SetDefault("engine.geometry_delay", d.Engine.GeometryDelay)
	v.SetDefault("engine.geometry_step", d.Engine.GeometryStep)
	v.SetDefault("engine.start_timeout", d.Engine.StartTimeout)
	v.SetDefault("engine.resize_debounce", d.Engine.ResizeDebounce)
	v.SetDefault("engine.min_viewport_width", d.Engine.MinViewportWidth)

	v.SetDefault("terminal.hero_fraction", d.Terminal.HeroFraction)
	v.SetDefault("terminal.background", d.Terminal.Background)
	v.SetDefault("terminal.frame_interval", d.Terminal.FrameInterval)

	v.SetDefault("audio.enabled", d.Audio.Enabled)
	v.SetDefault("audio.frequency", d.Audio.Frequency)
	v.SetDefault("audio.duration", d.Audio.Duration)
	v.SetDefault("audio.volume", d.Audio.Volume)
}
