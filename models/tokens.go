package models

import "time"

// TokenRecord holds the OIDC tokens cached for a single profile.
// ExpiresAt is absolute (seconds since epoch, UTC), computed once at
// exchange or refresh time from the provider's expires_in.
type TokenRecord struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	IDToken      string `json:"id_token,omitempty"`
	ExpiresAt    int64  `json:"expires_at"`
}

// ValidFor reports whether the access token is still usable at the given
// time, allowing for a safety buffer before the real expiry.
func (t *TokenRecord) ValidFor(now time.Time, buffer time.Duration) bool {
	return t.AccessToken != "" && t.ExpiresAt > now.Add(buffer).Unix()
}
