package game

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/samdwyer/bandbattle/internal/battle"
)

// Config holds game configuration options, read from BANDBATTLE_*
// environment variables.
type Config struct {
	// Seed for random number generation. A seed of 0 means a random seed
	// will be generated.
	Seed        int64         `env:"BANDBATTLE_SEED"         envDefault:"0"`
	Pacing      battle.Pacing `env:"BANDBATTLE_PACING"       envDefault:"active"`
	BaseIdle    time.Duration `env:"BANDBATTLE_BASE_IDLE"    envDefault:"3s"`
	MaxAttempts int           `env:"BANDBATTLE_MAX_ATTEMPTS" envDefault:"3"`
	FPS         int           `env:"BANDBATTLE_FPS"          envDefault:"30"`
	// Encounter skips the title menu and starts the named encounter.
	Encounter string `env:"BANDBATTLE_ENCOUNTER"`
	// DataDir overrides the embedded data files and is watched for edits.
	DataDir string  `env:"BANDBATTLE_DATA_DIR"`
	Audio   bool    `env:"BANDBATTLE_AUDIO"  envDefault:"true"`
	Volume  float64 `env:"BANDBATTLE_VOLUME" envDefault:"0.4"`
}

// LoadConfig parses the environment.
func LoadConfig() (Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("game: parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the game loop cannot run with.
func (c Config) Validate() error {
	switch {
	case c.FPS <= 0 || c.FPS > 240:
		return fmt.Errorf("game: fps %d out of range 1-240", c.FPS)
	case c.BaseIdle <= 0:
		return fmt.Errorf("game: base idle time must be positive, got %s", c.BaseIdle)
	case c.MaxAttempts <= 0:
		return fmt.Errorf("game: max attempts must be positive, got %d", c.MaxAttempts)
	case c.Volume < 0 || c.Volume > 1:
		return fmt.Errorf("game: volume %.2f out of range 0-1", c.Volume)
	}
	return nil
}

// FrameTime returns the tick interval.
func (c Config) FrameTime() time.Duration {
	return time.Second / time.Duration(c.FPS)
}

// Battle returns the session configuration for an encounter. A non-empty
// pacing overrides the configured one.
func (c Config) Battle(pacing string) (battle.Config, error) {
	bc := battle.DefaultConfig()
	bc.Pacing = c.Pacing
	bc.BaseIdleTime = c.BaseIdle
	bc.Seed = c.Seed
	bc.Finish.MaxAttempts = c.MaxAttempts
	bc.Finish.CanRestoreSave = true
	if pacing != "" {
		p, err := battle.ParsePacing(pacing)
		if err != nil {
			return bc, err
		}
		bc.Pacing = p
	}
	return bc, nil
}
