// Package yaml loads postcard configuration files.
package yaml

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/postcard"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config is the on-disk configuration. Zero values mean "use the default".
type Config struct {
	// Addr is the HTTP API bind address.
	Addr string `yaml:"addr" validate:"omitempty,hostname_port"`

	// DB is the path of the preset database.
	DB string `yaml:"db"`

	// Timeout bounds each upstream fetch, e.g. "15s".
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`

	// Render fetches pages through a headless browser.
	Render bool `yaml:"render"`

	// RateLimit is the sustained API request rate per second; RateBurst the
	// bucket size.
	RateLimit float64 `yaml:"rate_limit" validate:"min=0"`
	RateBurst int     `yaml:"rate_burst" validate:"min=0"`

	// Titler picks the title scraper used under the scrape title policy.
	Titler string `yaml:"titler" validate:"omitempty,oneof=trafilatura readability"`

	Profile postcard.Profile `yaml:"profile"`
}

// DefaultConfig returns a Config carrying the default profile.
func DefaultConfig() *Config {
	return &Config{
		Profile: postcard.DefaultProfile(),
	}
}

// Load reads and validates the config file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, postcard.Errorf(postcard.EINVALID, "config file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML on top of DefaultConfig and validates the result.
// Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, postcard.Errorf(postcard.EINVALID, "invalid config: %v", err)
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks struct tags on cfg and its profile.
func Validate(cfg *Config) error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate config: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %q", strings.TrimPrefix(fe.Namespace(), "Config."), fe.Tag()))
	}
	return postcard.Errorf(postcard.EINVALID, "invalid config: %s", strings.Join(msgs, "; "))
}
