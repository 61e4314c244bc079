package internal

import (
	"chat-feed/errors"
	"chat-feed/simulation"
	"fmt"
	"time"

	"github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	LogLevel        string        `env:"LOG_LEVEL,default=INFO"`
	HistorySize     int           `env:"SEED_HISTORY_SIZE,default=10" validate:"gte=0"`
	HistoryLookback time.Duration `env:"SEED_HISTORY_LOOKBACK,default=24h" validate:"gte=0"`
	SeedDelay       time.Duration `env:"SEED_DELAY,default=1s" validate:"gte=0"`
	TickPeriod      time.Duration `env:"PEER_TICK_PERIOD,default=5s" validate:"gt=0"`
	SkipProbability float64       `env:"PEER_SKIP_PROBABILITY,default=0.7" validate:"gte=0,lte=1"`
	SendLatency     time.Duration `env:"SEND_LATENCY,default=300ms" validate:"gte=0"`
	HistoryLimit    int           `env:"HISTORY_LIMIT,default=0" validate:"gte=0"`
	RestartInterval time.Duration `env:"RESTART_INTERVAL,default=200ms" validate:"gt=0"`
	StatsInterval   time.Duration `env:"STATS_INTERVAL,default=0s" validate:"gte=0"`
	CensoredWords   string        `env:"CENSORED_WORDS"`
	CharReplacement string        `env:"CHARACTER_REPLACEMENT,default=*"`
	DirectoryFile   string        `env:"DIRECTORY_FILE"`
}

// LoadConfig reads the configuration from the environment and checks its bounds.
func LoadConfig() (Config, error) {
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return config, fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	if _, err := CharacterRune(c.CharReplacement); err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidConfig, err)
	}
	return nil
}

// FeedSettings maps the configuration onto the simulation tunables.
func (c Config) FeedSettings() simulation.Settings {
	return simulation.Settings{
		HistorySize:     c.HistorySize,
		HistoryLookback: c.HistoryLookback,
		SeedDelay:       c.SeedDelay,
		TickPeriod:      c.TickPeriod,
		SkipProbability: c.SkipProbability,
		SendLatency:     c.SendLatency,
	}
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
