package config_test

import (
	"path/filepath"
	"testing"

	"github.com/cloudkeeper/ck-prism/internal/config"
	"github.com/cloudkeeper/ck-prism/models"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() (*config.Store, afero.Fs) {
	fs := afero.NewMemMapFs()
	store := config.NewStoreWithFs(fs, func() (string, error) {
		return "/home/user", nil
	})
	return store, fs
}

func configPath() string {
	return filepath.Join("/home/user", ".ck-prism", "config.json")
}

func sampleProfile() *models.ProfileConfig {
	return &models.ProfileConfig{
		PrismDomain:     "prism.cloudkeeper.com",
		Realm:           "sso",
		ClientID:        "ckauth-cli",
		IdentityBaseURL: "https://login.prism.cloudkeeper.com",
		APIEndpoint:     "https://cli.prism.cloudkeeper.com/exchange",
		Region:          "us-east-1",
		Output:          "json",
		RoleARN:         "arn:aws:iam::111122223333:role/Admin",
		AccountID:       "111122223333",
		RoleName:        "Admin",
	}
}

func TestLoadAllMissingFile(t *testing.T) {
	store, _ := newTestStore()

	_, err := store.LoadAll()
	assert.ErrorIs(t, err, config.ErrNotConfigured)
}

func TestLoadAllMalformedFile(t *testing.T) {
	store, fs := newTestStore()

	require.NoError(t, fs.MkdirAll(filepath.Dir(configPath()), 0o700))
	require.NoError(t, afero.WriteFile(fs, configPath(), []byte("{oops"), 0o600))

	_, err := store.LoadAll()
	require.Error(t, err)
	assert.NotErrorIs(t, err, config.ErrNotConfigured)
	assert.Contains(t, err.Error(), "configure")
}

func TestSaveAndLoadProfile(t *testing.T) {
	store, _ := newTestStore()

	require.NoError(t, store.SaveProfile("prod", sampleProfile()))

	loaded, err := store.LoadProfile("prod")
	require.NoError(t, err)
	assert.Equal(t, sampleProfile(), loaded)
}

func TestLoadProfileUnknownName(t *testing.T) {
	store, _ := newTestStore()

	require.NoError(t, store.SaveProfile("prod", sampleProfile()))

	_, err := store.LoadProfile("staging")
	assert.ErrorIs(t, err, config.ErrNotConfigured)
}

func TestSaveProfilePreservesOthers(t *testing.T) {
	store, _ := newTestStore()

	first := sampleProfile()
	require.NoError(t, store.SaveProfile("prod", first))

	second := sampleProfile()
	second.RoleName = "ReadOnly"
	second.RoleARN = "arn:aws:iam::444455556666:role/ReadOnly"
	second.AccountID = "444455556666"
	require.NoError(t, store.SaveProfile("staging", second))

	profiles, err := store.LoadAll()
	require.NoError(t, err)
	assert.Len(t, profiles, 2)
	assert.Equal(t, "Admin", profiles["prod"].RoleName)
	assert.Equal(t, "ReadOnly", profiles["staging"].RoleName)
}

func TestSaveProfileReplacesExisting(t *testing.T) {
	store, _ := newTestStore()

	require.NoError(t, store.SaveProfile("prod", sampleProfile()))

	updated := sampleProfile()
	updated.Region = "eu-west-1"
	require.NoError(t, store.SaveProfile("prod", updated))

	loaded, err := store.LoadProfile("prod")
	require.NoError(t, err)
	assert.Equal(t, "eu-west-1", loaded.Region)
}

func TestEndpointDerivation(t *testing.T) {
	assert.Equal(t, "https://login.prism.cloudkeeper.com", config.IdentityBaseURL("prism.cloudkeeper.com"))
	assert.Equal(t, "https://cli.prism.cloudkeeper.com/exchange", config.APIEndpoint("prism.cloudkeeper.com"))
	assert.Equal(t, "https://login.myprism.xyz.in", config.IdentityBaseURL("myprism.xyz.in"))
}

func TestWizardDefaultsBuiltIns(t *testing.T) {
	store, _ := newTestStore()

	defaults := store.LoadWizardDefaults()
	assert.Equal(t, config.DefaultPrismDomain, defaults.PrismDomain)
	assert.Equal(t, config.DefaultRealm, defaults.Realm)
	assert.Equal(t, config.DefaultClientID, defaults.ClientID)
	assert.Equal(t, config.DefaultRegion, defaults.Region)
}

func TestWizardDefaultsOverrides(t *testing.T) {
	store, fs := newTestStore()

	path := filepath.Join("/home/user", ".ck-prism", "defaults.yaml")
	require.NoError(t, fs.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, afero.WriteFile(fs, path, []byte("prism_domain: prism-eu.cloudkeeper.com\nregion: eu-central-1\n"), 0o600))

	defaults := store.LoadWizardDefaults()
	assert.Equal(t, "prism-eu.cloudkeeper.com", defaults.PrismDomain)
	assert.Equal(t, "eu-central-1", defaults.Region)
	// Unset fields keep their built-in values.
	assert.Equal(t, config.DefaultRealm, defaults.Realm)
	assert.Equal(t, config.DefaultClientID, defaults.ClientID)
}
