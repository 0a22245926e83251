// Package config handles loading and parsing application configuration.
// It supports three sources (in priority order):
//  1. A path passed in explicitly (wired to the root command's --config flag)
//  2. An environment variable:  CONFIG_PATH=/path/to/config.yaml
//  3. Environment variables / built-in defaults, when no file is given
//
// Source 3 is the common case: with no flags and no environment the
// program runs against ./scheduler.db, the same fixed local file the
// system has always used.
package config

import (
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration structure.
// Every field maps to a key in the YAML file AND can be overridden by the
// corresponding environment variable (env:"..."). env-default supplies
// the value when neither source sets one.
type Config struct {
	// Env controls log format and verbosity.
	// Valid values: "dev", "staging", "prod"
	Env string `yaml:"env" env:"ENV" env-default:"dev"`

	// StoragePath is the filesystem path to the SQLite .db file.
	StoragePath string `yaml:"storage_path" env:"STORAGE_PATH" env-default:"scheduler.db"`
}

// MustLoad reads, validates, and returns the application config.
//
// The name follows the Go convention: "Must" functions are allowed to
// fatal on failure, so if this returns, the config is valid. path may be
// empty — CONFIG_PATH is tried next, and with neither set the config is
// built from environment variables and defaults alone.
func MustLoad(path string) *Config {
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}

	var cfg Config

	if path == "" {
		// No file anywhere — env vars and env-default tags are enough.
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			log.Fatalf("cannot read config from environment: %s", err.Error())
		}
		return &cfg
	}

	// Verify the file exists before trying to read it, for a clear
	// message rather than a cryptic "open: no such file" later.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Fatalf("config file does not exist: %s", path)
	}

	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		log.Fatalf("cannot read config: %s", err.Error())
	}

	return &cfg
}
