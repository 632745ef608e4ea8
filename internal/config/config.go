// Package config reads and writes the per-profile configuration store at
// ~/.ck-prism/config.json.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudkeeper/ck-prism/models"
	"github.com/spf13/afero"
)

const (
	DefaultPrismDomain = "prism.cloudkeeper.com"
	DefaultRealm       = "sso"
	DefaultClientID    = "ckauth-cli"
	DefaultRegion      = "us-east-1"
)

// ErrNotConfigured indicates the config store (or the requested profile)
// does not exist; the user must run `ck-prism configure`.
var ErrNotConfigured = errors.New("configuration not found")

// IdentityBaseURL derives the login endpoint base for a Prism domain.
func IdentityBaseURL(domain string) string {
	return "https://login." + strings.TrimSuffix(domain, "/")
}

// APIEndpoint derives the credential exchange endpoint for a Prism domain.
func APIEndpoint(domain string) string {
	return "https://cli." + strings.TrimSuffix(domain, "/") + "/exchange"
}

type Store struct {
	fs         afero.Fs
	getHomeDir func() (string, error)
}

func NewStore() *Store {
	return &Store{
		fs:         afero.NewOsFs(),
		getHomeDir: os.UserHomeDir,
	}
}

func NewStoreWithFs(fs afero.Fs, getHomeDir func() (string, error)) *Store {
	return &Store{fs: fs, getHomeDir: getHomeDir}
}

func (s *Store) configDir() (string, error) {
	homeDir, err := s.getHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ck-prism"), nil
}

func (s *Store) configPath() (string, error) {
	dir, err := s.configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadAll returns the full profile-name to config mapping. A missing file
// is ErrNotConfigured; a malformed file is a configuration error telling
// the user to re-run the wizard.
func (s *Store) LoadAll() (map[string]models.ProfileConfig, error) {
	path, err := s.configPath()
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotConfigured
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var profiles map[string]models.ProfileConfig
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("configuration file is invalid: %w (run 'ck-prism configure')", err)
	}
	if len(profiles) == 0 {
		return nil, ErrNotConfigured
	}

	return profiles, nil
}

// LoadProfile returns the configuration for one named profile.
func (s *Store) LoadProfile(profile string) (*models.ProfileConfig, error) {
	profiles, err := s.LoadAll()
	if err != nil {
		return nil, err
	}

	cfg, ok := profiles[profile]
	if !ok {
		return nil, fmt.Errorf("profile %q not found: %w", profile, ErrNotConfigured)
	}
	return &cfg, nil
}

// SaveProfile inserts or replaces one profile's configuration, preserving
// all other profiles in the store.
func (s *Store) SaveProfile(profile string, cfg *models.ProfileConfig) error {
	dir, err := s.configDir()
	if err != nil {
		return err
	}
	if err := s.fs.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	profiles, err := s.LoadAll()
	if err != nil {
		// Start fresh on first configure or when the store is unreadable.
		profiles = make(map[string]models.ProfileConfig)
	}
	profiles[profile] = *cfg

	data, err := json.MarshalIndent(profiles, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal configuration: %w", err)
	}

	path, err := s.configPath()
	if err != nil {
		return err
	}
	if err := afero.WriteFile(s.fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
