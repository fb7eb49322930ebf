// Package config holds the engine knobs that are tuned per deployment rather
// than per cartridge.
package config

import (
	"github.com/myrjola/gumshoe/internal/envstruct"
	"github.com/myrjola/gumshoe/internal/errors"
	"os"
	"time"
)

type Config struct {
	// CartridgeLocator is an http(s) URL or file path to the cartridge document.
	CartridgeLocator string `env:"GUMSHOE_CARTRIDGE" envDefault:"./cartridge.json"`
	// SQLiteURL is the path to the image cache database or ":memory:".
	SQLiteURL string `env:"GUMSHOE_SQLITE_URL" envDefault:"./gumshoe.sqlite"`

	// ImageConcurrency is the number of image generation requests in flight per batch.
	ImageConcurrency int `env:"GUMSHOE_IMAGE_CONCURRENCY" envDefault:"2"`
	// ImageBatchDelay is the pause between image generation batches.
	ImageBatchDelay time.Duration `env:"GUMSHOE_IMAGE_BATCH_DELAY" envDefault:"1s"`

	// InitialTimeSpent seeds the investigation clock, in minutes.
	InitialTimeSpent int `env:"GUMSHOE_INITIAL_TIME_SPENT" envDefault:"0"`
	// AccusationThreshold is the minutes of investigation required before the
	// player may accuse a suspect.
	AccusationThreshold int `env:"GUMSHOE_ACCUSATION_THRESHOLD" envDefault:"120"`
	// QuestionTimeCost is charged for every interrogation question, in minutes.
	QuestionTimeCost int `env:"GUMSHOE_QUESTION_TIME_COST" envDefault:"5"`
	// TestimonyTimeCost is charged when an interrogation answer is promoted to a
	// testimony, in minutes.
	TestimonyTimeCost int `env:"GUMSHOE_TESTIMONY_TIME_COST" envDefault:"10"`
}

// Load populates a Config from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := envstruct.Populate(&cfg, os.LookupEnv); err != nil {
		return Config{}, errors.Wrap(err, "populate config")
	}
	return cfg, nil
}
