package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads envFile (if it exists) into the process environment and applies the
// SYSTEST_* variables to the config. Variables already set in the environment win over
// the file.
func (c *Config) LoadEnv(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
	}

	if v := os.Getenv(EnvConfigPath); v != "" {
		c.ConfigPath = v
	}
	if v := os.Getenv(EnvProducerApp); v != "" {
		c.ProducerApp = v
	}
	if v := os.Getenv(EnvConsumerApp); v != "" {
		c.ConsumerApp = v
	}
	if v := os.Getenv(EnvTransportApp); v != "" {
		c.TransportApp = v
	}
	if v := os.Getenv(EnvResultsDSN); v != "" {
		c.ResultsDSN = v
	}
	if v := os.Getenv(EnvKillGrace); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d < 0 {
			return fmt.Errorf("invalid %s %q", EnvKillGrace, v)
		}
		c.KillGrace = d
	}
	return nil
}
