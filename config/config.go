package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/lastlight/components"
	"github.com/lixenwraith/lastlight/constants"
	"github.com/lixenwraith/lastlight/engine"
	"github.com/lixenwraith/lastlight/facility"
)

// ErrInvalidConfig is wrapped by every Validate failure
var ErrInvalidConfig = errors.New("invalid config")

// Environment overrides
const (
	EnvSeed          = "LASTLIGHT_SEED"
	EnvWidth         = "LASTLIGHT_WIDTH"
	EnvHeight        = "LASTLIGHT_HEIGHT"
	EnvDroneMode     = "LASTLIGHT_DRONE_MODE"
	EnvSpectatorAddr = "LASTLIGHT_SPECTATOR_ADDR"
	EnvMute          = "LASTLIGHT_MUTE"
)

// Config is the on-disk tuning file
type Config struct {
	Facility  FacilitySection  `yaml:"facility"`
	Drone     DroneSection     `yaml:"drone"`
	Objective ObjectiveSection `yaml:"objective"`
	Spectator SpectatorSection `yaml:"spectator"`
	Audio     AudioSection     `yaml:"audio"`
}

type FacilitySection struct {
	Width         int   `yaml:"width"`
	Height        int   `yaml:"height"`
	CorridorWidth int   `yaml:"corridor_width"`
	Margin        int   `yaml:"margin"`
	Generators    int   `yaml:"generators"`
	Items         int   `yaml:"items"`
	Hazards       int   `yaml:"hazards"`
	Seed          int64 `yaml:"seed"` // 0 picks one at startup
}

type DroneSection struct {
	Mode            string        `yaml:"mode"` // waypoint | bounce
	Speed           float64       `yaml:"speed"`
	TrapCap         int           `yaml:"trap_cap"`
	TrapIntervalMin time.Duration `yaml:"trap_interval_min"`
	TrapIntervalMax time.Duration `yaml:"trap_interval_max"`
}

type ObjectiveSection struct {
	Generator time.Duration `yaml:"generator"`
	Door      time.Duration `yaml:"door"`
}

// SpectatorSection configures the read-only web feed; an empty Addr disables it
type SpectatorSection struct {
	Addr        string   `yaml:"addr"`
	RateHz      float64  `yaml:"rate_hz"`
	CORSOrigins []string `yaml:"cors_origins"`
}

type AudioSection struct {
	Mute   bool    `yaml:"mute"`
	Volume float64 `yaml:"volume"` // 0.0 to 1.0
}

// Default returns the stock configuration
func Default() *Config {
	return &Config{
		Facility: FacilitySection{
			Width:         constants.DefaultFacilityWidth,
			Height:        constants.DefaultFacilityHeight,
			CorridorWidth: constants.DefaultCorridorWidth,
			Margin:        constants.DefaultMargin,
			Generators:    constants.DefaultGenerators,
			Items:         constants.DefaultItems,
			Hazards:       constants.DefaultHazards,
		},
		Drone: DroneSection{
			Mode:            components.DroneWaypoint.String(),
			Speed:           constants.DroneSpeed,
			TrapCap:         constants.TrapCap,
			TrapIntervalMin: constants.TrapIntervalMin,
			TrapIntervalMax: constants.TrapIntervalMax,
		},
		Objective: ObjectiveSection{
			Generator: constants.GeneratorDuration,
			Door:      constants.DoorDuration,
		},
		Spectator: SpectatorSection{
			RateHz:      constants.SpectatorRateHz,
			CORSOrigins: []string{"*"},
		},
		Audio: AudioSection{
			Volume: constants.DefaultVolume,
		},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the defaults.
// Fields missing from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadEnvFile loads KEY=VALUE pairs from the given .env files into the process
// environment. Missing files are not an error; existing variables win.
func LoadEnvFile(paths ...string) error {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("load env %s: %w", p, err)
		}
	}
	return nil
}

// ApplyEnv overrides fields from LASTLIGHT_* variables. Unparseable values are
// reported and leave the field untouched.
func (c *Config) ApplyEnv() error {
	var errs []error

	if v := os.Getenv(EnvSeed); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Facility.Seed = n
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvSeed, err))
		}
	}
	if v := os.Getenv(EnvWidth); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Facility.Width = n
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvWidth, err))
		}
	}
	if v := os.Getenv(EnvHeight); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.Facility.Height = n
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvHeight, err))
		}
	}
	if v := os.Getenv(EnvDroneMode); v != "" {
		c.Drone.Mode = v
	}
	if v, ok := os.LookupEnv(EnvSpectatorAddr); ok {
		c.Spectator.Addr = v
	}
	if v := os.Getenv(EnvMute); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			c.Audio.Mute = b
		} else {
			errs = append(errs, fmt.Errorf("%s: %w", EnvMute, err))
		}
	}

	return errors.Join(errs...)
}

// Validate rejects values no session can run with
func (c *Config) Validate() error {
	f := c.Facility
	switch {
	case f.Width < 3 || f.Height < 3:
		return fmt.Errorf("%w: facility size %dx%d below 3x3", ErrInvalidConfig, f.Width, f.Height)
	case f.CorridorWidth < 1:
		return fmt.Errorf("%w: corridor width %d", ErrInvalidConfig, f.CorridorWidth)
	case f.Margin < 1:
		return fmt.Errorf("%w: margin %d", ErrInvalidConfig, f.Margin)
	case f.Generators < 0 || f.Items < 0 || f.Hazards < 0:
		return fmt.Errorf("%w: negative object count", ErrInvalidConfig)
	}

	if _, err := components.ParseDroneMode(c.Drone.Mode); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if c.Drone.Speed < 0 {
		return fmt.Errorf("%w: drone speed %v", ErrInvalidConfig, c.Drone.Speed)
	}
	if c.Drone.TrapCap < 0 {
		return fmt.Errorf("%w: trap cap %d", ErrInvalidConfig, c.Drone.TrapCap)
	}
	if c.Drone.TrapIntervalMin <= 0 || c.Drone.TrapIntervalMax < c.Drone.TrapIntervalMin {
		return fmt.Errorf("%w: trap interval [%v, %v]", ErrInvalidConfig, c.Drone.TrapIntervalMin, c.Drone.TrapIntervalMax)
	}
	if c.Objective.Generator <= 0 || c.Objective.Door <= 0 {
		return fmt.Errorf("%w: objective durations must be positive", ErrInvalidConfig)
	}
	if c.Spectator.RateHz <= 0 {
		return fmt.Errorf("%w: spectator rate %v", ErrInvalidConfig, c.Spectator.RateHz)
	}
	if c.Audio.Volume < 0 || c.Audio.Volume > 1 {
		return fmt.Errorf("%w: volume %v outside 0..1", ErrInvalidConfig, c.Audio.Volume)
	}
	return nil
}

// FacilityConfig builds the generator parameters
func (c *Config) FacilityConfig() facility.Config {
	cfg := facility.DefaultConfig()
	cfg.Width = c.Facility.Width
	cfg.Height = c.Facility.Height
	cfg.CorridorWidth = c.Facility.CorridorWidth
	cfg.Margin = c.Facility.Margin
	cfg.Generators = c.Facility.Generators
	cfg.Items = c.Facility.Items
	cfg.Hazards = c.Facility.Hazards
	cfg.Seed = c.Facility.Seed
	return cfg
}

// SessionConfig builds the session parameters. Call Validate first; an
// unknown drone mode falls back to waypoint.
func (c *Config) SessionConfig() engine.Config {
	mode, _ := components.ParseDroneMode(c.Drone.Mode)

	cfg := engine.DefaultConfig()
	cfg.Facility = c.FacilityConfig()
	cfg.DroneMode = mode
	cfg.DroneSpeed = c.Drone.Speed
	cfg.TrapCap = c.Drone.TrapCap
	cfg.TrapIntervalMin = c.Drone.TrapIntervalMin
	cfg.TrapIntervalMax = c.Drone.TrapIntervalMax
	cfg.GeneratorDuration = c.Objective.Generator
	cfg.DoorDuration = c.Objective.Door
	return cfg
}
