// Package config resolves the daemon configuration from an optional
// YAML/JSON file plus command-line flags. Flags win over file values.
package config

import (
	"errors"
	"fmt"
	"strings"

	"vocabpop/internal/notify"
	"vocabpop/internal/storage"
	logx "vocabpop/pkg/logx"
)

type Config struct {
	Vocab    VocabConfig    `json:"vocab"`
	Rotation RotationConfig `json:"rotation"`
	Logging  logx.Config    `json:"logging"`
	Notify   notify.Config  `json:"notify"`
	Storage  storage.Config `json:"storage"`
}

type VocabConfig struct {
	Dir string `json:"dir,omitempty"`
	// Shuffle permutes the list once at load time.
	Shuffle bool `json:"shuffle,omitempty"`
	// AnnotateReadings derives missing readings via morphological analysis.
	AnnotateReadings bool `json:"annotate_readings,omitempty"`
}

type RotationConfig struct {
	// Cadence accepts a Go duration ("25m"), HH:MM ("02:30"),
	// or a cron expression ("0 9 * * *").
	Cadence string `json:"cadence,omitempty"`
	// Tick bounds how quickly the wait notices a trigger or shutdown.
	Tick string `json:"tick,omitempty"`
	// Force shows a single notification and exits. Flag only.
	Force bool `json:"-"`
}

// Default returns the baseline configuration; file values and flags are
// layered on top.
func Default() *Config {
	return &Config{
		Vocab: VocabConfig{
			Dir:     "vocab",
			Shuffle: true,
		},
		Rotation: RotationConfig{
			Cadence: "1m",
			Tick:    "1s",
		},
		Logging: logx.Config{
			Level:   "info",
			Console: true,
		},
		Notify: notify.Config{
			Driver:     "desktop",
			RatePerMin: 12,
		},
		Storage: storage.Config{
			Driver: "none",
		},
	}
}

// Validate rejects configurations the daemon cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Vocab.Dir) == "" {
		return errors.New("vocab.dir is required")
	}
	if strings.TrimSpace(c.Rotation.Cadence) == "" {
		return errors.New("rotation.cadence is required")
	}
	if _, err := DurationField("rotation.tick", c.Rotation.Tick, 0); err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(c.Notify.Driver)) {
	case "", "desktop", "console":
	default:
		return fmt.Errorf("notify.driver: unknown driver %q", c.Notify.Driver)
	}

	switch strings.ToLower(strings.TrimSpace(c.Storage.Driver)) {
	case "", "none", "file", "sqlite", "sqlite3":
	default:
		return fmt.Errorf("storage.driver: unknown driver %q", c.Storage.Driver)
	}
	if d := strings.ToLower(strings.TrimSpace(c.Storage.Driver)); d != "" && d != "none" {
		if strings.TrimSpace(c.Storage.Path) == "" {
			return errors.New("storage.path is required when storage is enabled")
		}
	}
	return nil
}
