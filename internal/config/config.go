// Package config loads the command line settings from the environment and optional .env files.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/cast"
)

const (
	EnvLogLevel     = "CALLDATA_LOG_LEVEL"
	EnvSafeVersion  = "CALLDATA_SAFE_VERSION"
	EnvOutputIndent = "CALLDATA_OUTPUT_INDENT"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

type Config struct {
	LogLevel string `validate:"oneof=debug info warn error"`
	// SafeVersion selects the MultiSend release used to unpack batches.
	SafeVersion  string `validate:"oneof=1.3.0 1.4.1"`
	OutputIndent int    `validate:"gte=0,lte=8"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		LogLevel:     "warn",
		SafeVersion:  "1.4.1",
		OutputIndent: 2,
	}
}

// Validate checks that every setting holds a supported value.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	return nil
}

// Load reads the settings from the process environment and the given .env files. Missing files
// are skipped. Variables already set in the environment take precedence over the files, and
// earlier files over later ones.
func Load(envFiles ...string) (Config, error) {
	return LoadWith(os.LookupEnv, envFiles...)
}

// LoadWith is Load with a custom environment lookup.
func LoadWith(lookup func(string) (string, bool), envFiles ...string) (Config, error) {
	fileEnv := make(map[string]string)
	for i := len(envFiles) - 1; i >= 0; i-- {
		values, err := godotenv.Read(envFiles[i])
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return Config{}, fmt.Errorf("failed to read %s: %w", envFiles[i], err)
		}
		for k, v := range values {
			fileEnv[k] = v
		}
	}

	get := func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := fileEnv[key]

		return v, ok
	}

	cfg := Default()
	if v, ok := get(EnvLogLevel); ok {
		cfg.LogLevel = v
	}
	if v, ok := get(EnvSafeVersion); ok {
		cfg.SafeVersion = v
	}
	if v, ok := get(EnvOutputIndent); ok {
		indent, err := cast.ToIntE(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid %s: %w", EnvOutputIndent, err)
		}
		cfg.OutputIndent = indent
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}
