package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for file extensions other than .toml, .yaml and .yml
var ErrUnsupportedFormat = errors.New("unsupported config format")

// DefaultPath is where the application looks when no -config flag is given
const DefaultPath = "~/.config/ascii3d/config.toml"

// ResolvePath expands a leading ~ and cleans the path
func ResolvePath(path string) (string, error) {
	expanded, err := homedir.Expand(path)
	if err != nil {
		return "", fmt.Errorf("expand %q: %w", path, err)
	}
	return filepath.Clean(expanded), nil
}

// Load reads path over the defaults and validates the result
// Fields absent from the file keep their default value; unknown fields are an error.
func Load(path string) (Config, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, err
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := Decode(&cfg, data, filepath.Ext(resolved)); err != nil {
		return Config{}, fmt.Errorf("%s: %w", resolved, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%s: %w", resolved, err)
	}
	return cfg, nil
}

// LoadOptional loads path if it exists, otherwise returns the defaults
func LoadOptional(path string) (Config, bool, error) {
	resolved, err := ResolvePath(path)
	if err != nil {
		return Config{}, false, err
	}
	if _, err := os.Stat(resolved); errors.Is(err, os.ErrNotExist) {
		return Default(), false, nil
	}
	cfg, err := Load(resolved)
	return cfg, err == nil, err
}

// Decode merges data in the format named by ext into cfg
func Decode(cfg *Config, data []byte, ext string) error {
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return fmt.Errorf("toml: %s", strict.String())
			}
			return fmt.Errorf("toml: %w", err)
		}
		return nil

	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return fmt.Errorf("yaml: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
}
