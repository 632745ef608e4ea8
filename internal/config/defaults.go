package config

import (
	"path/filepath"

	"github.com/cloudkeeper/ck-prism/models"
	"github.com/spf13/afero"
	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// LoadWizardDefaults reads the optional defaults file that pre-seeds the
// configure wizard's prompts. Any field left empty (or the whole file
// missing) falls back to the built-in defaults.
func (s *Store) LoadWizardDefaults() models.WizardDefaults {
	defaults := models.WizardDefaults{
		PrismDomain: DefaultPrismDomain,
		Realm:       DefaultRealm,
		ClientID:    DefaultClientID,
		Region:      DefaultRegion,
	}

	dir, err := s.configDir()
	if err != nil {
		return defaults
	}

	data, err := afero.ReadFile(s.fs, filepath.Join(dir, "defaults.yaml"))
	if err != nil {
		return defaults
	}

	var overrides models.WizardDefaults
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		log.Debugf("ignoring malformed defaults.yaml: %v", err)
		return defaults
	}

	if overrides.PrismDomain != "" {
		defaults.PrismDomain = overrides.PrismDomain
	}
	if overrides.Realm != "" {
		defaults.Realm = overrides.Realm
	}
	if overrides.ClientID != "" {
		defaults.ClientID = overrides.ClientID
	}
	if overrides.Region != "" {
		defaults.Region = overrides.Region
	}

	return defaults
}
