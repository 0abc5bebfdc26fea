// Package config provides the per-user settings file of the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Known keys.
const (
	KeyBaseURL = "baseUrl"
)

// DefaultBaseURL is used when no base URL is configured.
const DefaultBaseURL = "https://daymet.ornl.gov/single-pixel"

const (
	appDir     = "ornl"
	fileName   = "config.json"
	configType = "json"
)

// Config errors.
var (
	ErrInvalidValue = errors.New("invalid configuration value")
	ErrNoConfigDir  = errors.New("user config directory is not available")
)

// Store is a JSON key-value file. It is read on every call, so a value
// written by Set is seen by the next Get. Keys are case-insensitive.
type Store struct {
	path string
}

// New creates a store backed by the file at path.
func New(path string) *Store {
	return &Store{path: path}
}

// DefaultPath returns the settings file location inside the user config directory.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoConfigDir, err)
	}

	return filepath.Join(dir, appDir, fileName), nil
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (any, bool, error) {
	v, err := s.load()
	if err != nil {
		return nil, false, err
	}

	if !v.IsSet(key) {
		return nil, false, nil
	}

	return v.Get(key), true, nil
}

// Set stores value under key.
func (s *Store) Set(key string, value any) error {
	if err := validate(key, value); err != nil {
		return err
	}

	v, err := s.load()
	if err != nil {
		return err
	}

	v.Set(key, value)

	err = os.MkdirAll(filepath.Dir(s.path), 0o700)
	if err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	err = v.WriteConfigAs(s.path)
	if err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// All returns every stored value.
func (s *Store) All() (map[string]any, error) {
	v, err := s.load()
	if err != nil {
		return nil, err
	}

	return v.AllSettings(), nil
}

// Clear removes all stored values.
func (s *Store) Clear() error {
	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear config: %w", err)
	}

	return nil
}

// BaseURL returns the configured base URL or DefaultBaseURL.
func (s *Store) BaseURL() (string, error) {
	v, err := s.load()
	if err != nil {
		return "", err
	}

	v.SetDefault(KeyBaseURL, DefaultBaseURL)

	if url, ok := v.Get(KeyBaseURL).(string); ok && url != "" {
		return url, nil
	}

	return DefaultBaseURL, nil
}

func validate(key string, value any) error {
	switch key {
	case KeyBaseURL:
		if _, ok := value.(string); !ok {
			return fmt.Errorf("%w: %s must be a string", ErrInvalidValue, key)
		}
	}

	return nil
}

// load returns a fresh viper instance holding the file contents.
// A missing or empty file is an empty store.
func (s *Store) load() (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigFile(s.path)
	v.SetConfigType(configType)
	v.SetConfigPermissions(0o600)

	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return v, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if info.Size() == 0 {
		return v, nil
	}

	err = v.ReadInConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to decode config %s: %w", s.path, err)
	}

	return v, nil
}
