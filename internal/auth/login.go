package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cloudkeeper/ck-prism/models"
	"github.com/pkg/browser"
	log "github.com/sirupsen/logrus"
)

const (
	// Scope requested on every interactive login; offline_access is needed
	// for the refresh grant.
	authScope = "openid profile email offline_access"

	// Fallback lifetime when the provider omits expires_in.
	defaultExpiresIn = 300
)

// BrowserOpener launches the system browser. Failure to open is never
// fatal; the auth URL is always printed as a fallback.
type BrowserOpener interface {
	Open(url string) error
}

type SystemBrowser struct{}

func (SystemBrowser) Open(url string) error {
	return browser.OpenURL(url)
}

// LoginFlow drives a single interactive authorization-code login:
// build the authorization request, wait for the loopback callback, then
// exchange the code for tokens.
type LoginFlow struct {
	HTTPClient *http.Client
	Browser    BrowserOpener
}

func NewLoginFlow() *LoginFlow {
	return &LoginFlow{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
		Browser:    SystemBrowser{},
	}
}

// tokenEndpoint returns the provider's token URL for a profile's realm.
func tokenEndpoint(cfg *models.ProfileConfig) string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/token",
		strings.TrimSuffix(cfg.IdentityBaseURL, "/"), cfg.Realm)
}

func authEndpoint(cfg *models.ProfileConfig) string {
	return fmt.Sprintf("%s/realms/%s/protocol/openid-connect/auth",
		strings.TrimSuffix(cfg.IdentityBaseURL, "/"), cfg.Realm)
}

// InteractiveLogin runs the full browser-based login and returns the
// resulting token record. The callback listener is always torn down before
// this function returns.
func (f *LoginFlow) InteractiveLogin(ctx context.Context, cfg *models.ProfileConfig) (*models.TokenRecord, error) {
	pkce, err := NewPKCEContext()
	if err != nil {
		return nil, err
	}

	server := NewCallbackServer(pkce.State)
	port, err := server.Start()
	if err != nil {
		return nil, err
	}
	defer server.Shutdown()

	redirectURI := RedirectURI(port)

	params := url.Values{}
	params.Set("response_type", "code")
	params.Set("client_id", cfg.ClientID)
	params.Set("redirect_uri", redirectURI)
	params.Set("scope", authScope)
	params.Set("code_challenge", pkce.CodeChallenge)
	params.Set("code_challenge_method", "S256")
	params.Set("state", pkce.State)
	params.Set("prompt", "consent")

	authURL := authEndpoint(cfg) + "?" + params.Encode()

	fmt.Println("\nOpening browser for authentication...")
	if err := f.Browser.Open(authURL); err != nil {
		log.Debugf("browser launch failed: %v", err)
	}
	fmt.Printf("\nIf the browser did not open, visit:\n%s\n\n", authURL)
	fmt.Println("Waiting for authentication...")

	result, err := server.Wait(ctx)
	if err != nil {
		return nil, err
	}
	if result.Err != "" {
		return nil, fmt.Errorf("authentication failed: %s", result.Err)
	}

	return f.exchangeCode(ctx, cfg, result.Code, pkce.CodeVerifier, redirectURI)
}

func (f *LoginFlow) exchangeCode(ctx context.Context, cfg *models.ProfileConfig, code, verifier, redirectURI string) (*models.TokenRecord, error) {
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("client_id", cfg.ClientID)
	form.Set("code", code)
	form.Set("redirect_uri", redirectURI)
	form.Set("code_verifier", verifier)

	record, err := f.postTokenForm(ctx, cfg, form)
	if err != nil {
		return nil, err
	}

	fmt.Println("Authentication successful!")
	return record, nil
}

// Refresh attempts a refresh-token grant. The caller decides whether a
// failure falls through to a full interactive login.
func (f *LoginFlow) Refresh(ctx context.Context, cfg *models.ProfileConfig, refreshToken string) (*models.TokenRecord, error) {
	form := url.Values{}
	form.Set("grant_type", "refresh_token")
	form.Set("client_id", cfg.ClientID)
	form.Set("refresh_token", refreshToken)

	record, err := f.postTokenForm(ctx, cfg, form)
	if err != nil {
		return nil, err
	}

	// Providers may not rotate the refresh token on every grant.
	if record.RefreshToken == "" {
		record.RefreshToken = refreshToken
	}
	return record, nil
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	IDToken      string `json:"id_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func (f *LoginFlow) postTokenForm(ctx context.Context, cfg *models.ProfileConfig, form url.Values) (*models.TokenRecord, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenEndpoint(cfg), strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build token request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := f.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("token request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read token response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("token exchange failed: %s", strings.TrimSpace(string(body)))
	}

	var tr tokenResponse
	if err := json.Unmarshal(body, &tr); err != nil {
		return nil, fmt.Errorf("failed to parse token response: %w", err)
	}

	expiresIn := tr.ExpiresIn
	if expiresIn == 0 {
		expiresIn = defaultExpiresIn
	}

	return &models.TokenRecord{
		AccessToken:  tr.AccessToken,
		RefreshToken: tr.RefreshToken,
		IDToken:      tr.IDToken,
		ExpiresAt:    time.Now().Unix() + expiresIn,
	}, nil
}
