// Package config loads runtime settings and the business policy ranges.
//
// Settings come from three layers, later layers winning: built-in defaults,
// an optional YAML file, then command-line flags (applied by the cli
// package). The merged result is validated before use.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/roach88/hotelite/internal/grammar"
)

// Config is the complete runtime configuration.
type Config struct {
	// Database is the SQLite file path.
	Database string `yaml:"database" validate:"required"`

	// Format is the output format, "text" or "json".
	Format string `yaml:"format" validate:"oneof=text json"`

	// Policy holds the age and satisfaction ranges.
	Policy grammar.Policy `yaml:"policy"`
}

// DefaultDatabase is the database path used when none is configured.
const DefaultDatabase = "hotelite.db"

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Database: DefaultDatabase,
		Format:   "text",
		Policy:   grammar.DefaultPolicy(),
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. An empty path returns the validated defaults.
func Load(path string) (Config, error) {
	if path == "" {
		cfg := Default()
		return cfg, cfg.Validate()
	}

	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML from r over the defaults. Unknown keys are an error.
func Parse(r io.Reader) (Config, error) {
	cfg := Default()

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parse YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and reports every violation at once.
func (c Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return fmt.Errorf("validate config: %w", err)
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, describe(fe))
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

func describe(fe validator.FieldError) string {
	field := strings.TrimPrefix(fe.Namespace(), "Config.")
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "gtefield":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	case "gte":
		return fmt.Sprintf("%s must be >= %s, got %v", field, fe.Param(), fe.Value())
	}
	return fmt.Sprintf("%s failed %s", field, fe.Tag())
}
