// Package tokenstore persists per-profile OIDC token records under
// ~/.ck-prism/tokens with owner-only permissions.
package tokenstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cloudkeeper/ck-prism/models"
	"github.com/spf13/afero"
	log "github.com/sirupsen/logrus"
)

type Store interface {
	Load(profile string) (*models.TokenRecord, error)
	Save(profile string, record *models.TokenRecord) error
}

type FileStore struct {
	fs         afero.Fs
	getHomeDir func() (string, error)
}

func NewFileStore() *FileStore {
	return &FileStore{
		fs:         afero.NewOsFs(),
		getHomeDir: os.UserHomeDir,
	}
}

// NewFileStoreWithFs is used by tests to run the store on an in-memory
// filesystem.
func NewFileStoreWithFs(fs afero.Fs, getHomeDir func() (string, error)) *FileStore {
	return &FileStore{fs: fs, getHomeDir: getHomeDir}
}

func (s *FileStore) tokenFilePath(profile string) (string, error) {
	homeDir, err := s.getHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".ck-prism", "tokens", profile+"_tokens.json"), nil
}

// Load returns the cached record for a profile, or nil when no usable
// record exists. A missing or malformed file triggers a full re-login, not
// an error.
func (s *FileStore) Load(profile string) (*models.TokenRecord, error) {
	path, err := s.tokenFilePath(profile)
	if err != nil {
		return nil, err
	}

	data, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read token file: %w", err)
	}

	var record models.TokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		log.Debugf("discarding malformed token file for profile %s: %v", profile, err)
		return nil, nil
	}

	return &record, nil
}

// Save writes the record for a profile, creating parent directories as
// needed and restricting the file to owner read/write.
func (s *FileStore) Save(profile string, record *models.TokenRecord) error {
	path, err := s.tokenFilePath(profile)
	if err != nil {
		return err
	}

	if err := s.fs.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}

	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal token record: %w", err)
	}

	if err := afero.WriteFile(s.fs, path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}

	// WriteFile does not change the mode of an existing file.
	if err := s.fs.Chmod(path, 0o600); err != nil {
		return fmt.Errorf("failed to restrict token file permissions: %w", err)
	}

	return nil
}
