package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	NumElevators      = 5
	StartFloor        = 1
	MinFloor          = -3
	MaxFloor          = 20
	TravelDuration    = 3 * time.Second
	DoorOpenDuration  = 5 * time.Second
	RingDuration      = 2 * time.Second
	RingBlinkInterval = 50 * time.Millisecond
	LoopResolution    = 10 * time.Millisecond
	EventBufferSize   = 256
)

// Config holds the tunable values. Zero values are never used; start from Default.
type Config struct {
	NumElevators      int           `yaml:"NumElevators"`
	StartFloor        int           `yaml:"StartFloor"`
	MinFloor          int           `yaml:"MinFloor"`
	MaxFloor          int           `yaml:"MaxFloor"`
	TravelDuration    time.Duration `yaml:"TravelDuration"`
	DoorOpenDuration  time.Duration `yaml:"DoorOpenDuration"`
	RingDuration      time.Duration `yaml:"RingDuration"`
	RingBlinkInterval time.Duration `yaml:"RingBlinkInterval"`
	LoopResolution    time.Duration `yaml:"LoopResolution"`
	EventBufferSize   int           `yaml:"EventBufferSize"`
}

var ErrInvalid = errors.New("invalid config")

func Default() Config {
	return Config{
		NumElevators:      NumElevators,
		StartFloor:        StartFloor,
		MinFloor:          MinFloor,
		MaxFloor:          MaxFloor,
		TravelDuration:    TravelDuration,
		DoorOpenDuration:  DoorOpenDuration,
		RingDuration:      RingDuration,
		RingBlinkInterval: RingBlinkInterval,
		LoopResolution:    LoopResolution,
		EventBufferSize:   EventBufferSize,
	}
}

// Load reads a YAML file on top of the defaults. Keys missing from the file keep
// their default value. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch {
	case c.NumElevators < 1:
		return fmt.Errorf("%w: NumElevators must be positive, got %d", ErrInvalid, c.NumElevators)
	case c.MinFloor >= c.MaxFloor:
		return fmt.Errorf("%w: MinFloor %d must be below MaxFloor %d", ErrInvalid, c.MinFloor, c.MaxFloor)
	case c.StartFloor < c.MinFloor || c.StartFloor > c.MaxFloor:
		return fmt.Errorf("%w: StartFloor %d outside [%d, %d]", ErrInvalid, c.StartFloor, c.MinFloor, c.MaxFloor)
	case c.TravelDuration <= 0, c.DoorOpenDuration <= 0, c.RingDuration <= 0, c.RingBlinkInterval <= 0:
		return fmt.Errorf("%w: durations must be positive", ErrInvalid)
	case c.LoopResolution <= 0:
		return fmt.Errorf("%w: LoopResolution must be positive", ErrInvalid)
	case c.EventBufferSize < 0:
		return fmt.Errorf("%w: EventBufferSize must not be negative", ErrInvalid)
	}
	return nil
}

// InBounds reports whether floor lies within the building. The core does not call
// this; bounds are checked by the front end.
func (c Config) InBounds(floor int) bool {
	return floor >= c.MinFloor && floor <= c.MaxFloor
}
