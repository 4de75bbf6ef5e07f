// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Daco Labs

// Package config handles apisheet configuration.
package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// CurrentConfigVersion is the current version of the config file format.
const CurrentConfigVersion = 1

// DefaultFileName is the config file looked up when none is given.
const DefaultFileName = "apisheet.yaml"

// EnvPrefix prefixes every environment variable read into the config.
const EnvPrefix = "APISHEET_"

// ErrInvalidConfig indicates the configuration could not be loaded or
// failed validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config represents the apisheet.yaml configuration file.
type Config struct {
	Version int           `koanf:"version" yaml:"version"`
	Output  OutputConfig  `koanf:"output" yaml:"output"`
	Log     LogConfig     `koanf:"log" yaml:"log"`
	Flatten FlattenConfig `koanf:"flatten" yaml:"flatten"`
}

// OutputConfig controls how tables are written.
type OutputConfig struct {
	Format string `koanf:"format" yaml:"format" validate:"required,oneof=csv markdown json yaml"`
	Dir    string `koanf:"dir" yaml:"dir" validate:"required"`
}

// LogConfig controls diagnostic logging.
type LogConfig struct {
	Level  string `koanf:"level" yaml:"level" validate:"required,oneof=trace debug info warn error disabled"`
	Pretty bool   `koanf:"pretty" yaml:"pretty"`
}

// FlattenConfig controls schema flattening.
type FlattenConfig struct {
	// Strict turns recursive schema references into errors instead of
	// skipping them.
	Strict bool `koanf:"strict" yaml:"strict"`
}

// Defaults returns the configuration used when nothing else is set.
func Defaults() map[string]any {
	return map[string]any{
		"version":        CurrentConfigVersion,
		"output.format":  "csv",
		"output.dir":     ".",
		"log.level":      "info",
		"log.pretty":     false,
		"flatten.strict": false,
	}
}

// Load resolves the configuration from, in increasing priority: defaults,
// the YAML file at path, APISHEET_ environment variables and overrides.
// A missing file is not an error. Override keys use dotted paths such as
// "output.format".
func Load(path string, overrides map[string]any) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(Defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if len(overrides) > 0 {
		if err := k.Load(confmap.Provider(overrides, "."), nil); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// envKey maps APISHEET_OUTPUT_FORMAT to output.format.
func envKey(s string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, EnvPrefix)), "_", ".")
}

// Save writes the Config to a file path.
func (c *Config) Save(path string) error {
	f, err := os.Create(path) //nolint:gosec // path is provided by caller
	if err != nil {
		return err
	}
	defer f.Close() //nolint:errcheck

	enc := yamlv3.NewEncoder(f)
	enc.SetIndent(2)
	return enc.Encode(c)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("koanf"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks the configuration for required fields and valid values.
func (c *Config) Validate() error {
	if c.Version != CurrentConfigVersion {
		return fmt.Errorf("%w: unsupported config version %d", ErrInvalidConfig, c.Version)
	}

	if err := validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
		}
		msgs := make([]string, len(verrs))
		for i, fe := range verrs {
			msgs[i] = fieldMessage(fe)
		}
		return fmt.Errorf("%w: %s", ErrInvalidConfig, strings.Join(msgs, "; "))
	}
	return nil
}

func fieldMessage(fe validator.FieldError) string {
	key := fe.Namespace()
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	switch fe.Tag() {
	case "required":
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %q", key, fe.Param(), fe.Value())
	default:
		return fmt.Sprintf("%s failed %s validation", key, fe.Tag())
	}
}
