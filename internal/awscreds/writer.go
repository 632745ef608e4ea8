// Package awscreds writes exchanged credentials into the standard AWS CLI
// files (~/.aws/credentials and ~/.aws/config).
package awscreds

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/cloudkeeper/ck-prism/models"
	"github.com/spf13/afero"
	"gopkg.in/ini.v1"
)

type Writer interface {
	WriteCredentials(profile, region string, creds *models.AWSCredentials) error
}

type FileWriter struct {
	fs         afero.Fs
	getHomeDir func() (string, error)
}

func NewFileWriter() *FileWriter {
	return &FileWriter{
		fs:         afero.NewOsFs(),
		getHomeDir: os.UserHomeDir,
	}
}

func NewFileWriterWithFs(fs afero.Fs, getHomeDir func() (string, error)) *FileWriter {
	return &FileWriter{fs: fs, getHomeDir: getHomeDir}
}

// WriteCredentials replaces the profile's section in ~/.aws/credentials and
// sets region/output in ~/.aws/config, preserving every other section.
func (w *FileWriter) WriteCredentials(profile, region string, creds *models.AWSCredentials) error {
	homeDir, err := w.getHomeDir()
	if err != nil {
		return fmt.Errorf("failed to get user home directory: %w", err)
	}

	awsDir := filepath.Join(homeDir, ".aws")
	if err := w.fs.MkdirAll(awsDir, 0o700); err != nil {
		return fmt.Errorf("failed to create .aws directory: %w", err)
	}

	credentialsPath := filepath.Join(awsDir, "credentials")
	if err := w.updateIniFile(credentialsPath, profile, []keyValue{
		{"aws_access_key_id", creds.AccessKeyID},
		{"aws_secret_access_key", creds.SecretAccessKey},
		{"aws_session_token", creds.SessionToken},
	}, true); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	configSection := profile
	if profile != "default" {
		configSection = "profile " + profile
	}
	configPath := filepath.Join(awsDir, "config")
	if err := w.updateIniFile(configPath, configSection, []keyValue{
		{"region", region},
		{"output", "json"},
	}, false); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Println("\nAWS credentials written to ~/.aws/credentials")
	printExpiration(creds.Expiration)
	return nil
}

type keyValue struct {
	key   string
	value string
}

// updateIniFile round-trips an INI file, replacing (or merging into) one
// section. replace drops any stale keys left from a previous session.
// Keys are written in a fixed order so repeated writes of the same values
// leave the file byte-identical.
func (w *FileWriter) updateIniFile(path, section string, values []keyValue, replace bool) error {
	file := ini.Empty()
	if data, err := afero.ReadFile(w.fs, path); err == nil {
		file, err = ini.Load(data)
		if err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	}

	if replace {
		file.DeleteSection(section)
	}
	sec, err := file.NewSection(section)
	if err != nil {
		return err
	}
	for _, kv := range values {
		sec.Key(kv.key).SetValue(kv.value)
	}

	out, err := w.fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := file.WriteTo(out); err != nil {
		return err
	}
	return nil
}

// printExpiration reports when the credentials expire. When the API omits
// an expiration, a one-hour estimate is shown; the estimate is display-only
// and never persisted.
func printExpiration(expiration string) {
	if expiration == "" {
		expiration = time.Now().Add(time.Hour).Format("2006-01-02 15:04:05")
	}
	fmt.Printf("Credentials expire at: %s\n", expiration)
}
