package models

// ProfileConfig is the persisted configuration for one named profile.
// It is written by the configure wizard and read-only everywhere else.
type ProfileConfig struct {
	PrismDomain     string `json:"prism_domain"`
	Realm           string `json:"realm"`
	ClientID        string `json:"client_id"`
	IdentityBaseURL string `json:"identity_base_url"`
	APIEndpoint     string `json:"api_endpoint"`
	Region          string `json:"region"`
	Output          string `json:"output,omitempty"`
	RoleARN         string `json:"role_arn"`
	AccountID       string `json:"account_id"`
	RoleName        string `json:"role_name"`
}

// WizardDefaults pre-seeds the configure wizard's prompts. Loaded from an
// optional defaults file; zero values fall back to built-in defaults.
type WizardDefaults struct {
	PrismDomain string `yaml:"prism_domain"`
	Realm       string `yaml:"realm"`
	ClientID    string `yaml:"client_id"`
	Region      string `yaml:"region"`
}
