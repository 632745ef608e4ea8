package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cloudkeeper/ck-prism/internal/auth"
	"github.com/cloudkeeper/ck-prism/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedBrowser plays the user's part: instead of opening a real
// browser it immediately follows the redirect URI with a scripted query.
type scriptedBrowser struct {
	t     *testing.T
	query func(authQuery url.Values) string
}

func (b *scriptedBrowser) Open(authURL string) error {
	parsed, err := url.Parse(authURL)
	require.NoError(b.t, err)
	q := parsed.Query()
	redirectURI := q.Get("redirect_uri")
	require.NotEmpty(b.t, redirectURI)

	go func() {
		resp, err := http.Get(redirectURI + "?" + b.query(q))
		if err == nil {
			resp.Body.Close()
		}
	}()
	return nil
}

func testConfig(baseURL string) *models.ProfileConfig {
	return &models.ProfileConfig{
		Realm:           "sso",
		ClientID:        "ckauth-cli",
		IdentityBaseURL: baseURL,
		APIEndpoint:     baseURL + "/exchange",
	}
}

func TestInteractiveLoginHappyPath(t *testing.T) {
	var tokenCalls int32

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/realms/sso/protocol/openid-connect/token", r.URL.Path)
		atomic.AddInt32(&tokenCalls, 1)

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "ckauth-cli", r.PostForm.Get("client_id"))
		assert.Equal(t, "auth-code-xyz", r.PostForm.Get("code"))
		assert.NotEmpty(t, r.PostForm.Get("code_verifier"))
		assert.NotEmpty(t, r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"a","expires_in":60}`))
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{
		HTTPClient: provider.Client(),
		Browser: &scriptedBrowser{t: t, query: func(q url.Values) string {
			return "code=auth-code-xyz&state=" + q.Get("state")
		}},
	}

	before := time.Now().Unix()
	record, err := flow.InteractiveLogin(context.Background(), testConfig(provider.URL))
	require.NoError(t, err)

	assert.Equal(t, "a", record.AccessToken)
	assert.Empty(t, record.RefreshToken)
	assert.InDelta(t, before+60, record.ExpiresAt, 5)
	assert.Equal(t, int32(1), atomic.LoadInt32(&tokenCalls))
}

func TestInteractiveLoginAuthURLParameters(t *testing.T) {
	var authQuery url.Values

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"a","expires_in":60}`))
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{
		HTTPClient: provider.Client(),
		Browser: &scriptedBrowser{t: t, query: func(q url.Values) string {
			authQuery = q
			return "code=c&state=" + q.Get("state")
		}},
	}

	_, err := flow.InteractiveLogin(context.Background(), testConfig(provider.URL))
	require.NoError(t, err)

	assert.Equal(t, "code", authQuery.Get("response_type"))
	assert.Equal(t, "ckauth-cli", authQuery.Get("client_id"))
	assert.Equal(t, "openid profile email offline_access", authQuery.Get("scope"))
	assert.Equal(t, "S256", authQuery.Get("code_challenge_method"))
	assert.Equal(t, "consent", authQuery.Get("prompt"))
	assert.NotEmpty(t, authQuery.Get("code_challenge"))
	assert.NotEmpty(t, authQuery.Get("state"))
}

func TestInteractiveLoginUserDenial(t *testing.T) {
	var tokenCalls int32

	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&tokenCalls, 1)
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{
		HTTPClient: provider.Client(),
		Browser: &scriptedBrowser{t: t, query: func(q url.Values) string {
			return "error=access_denied"
		}},
	}

	_, err := flow.InteractiveLogin(context.Background(), testConfig(provider.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access_denied")

	// The code exchange must never start after a denial.
	assert.Equal(t, int32(0), atomic.LoadInt32(&tokenCalls))
}

func TestInteractiveLoginTokenEndpointFailure(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{
		HTTPClient: provider.Client(),
		Browser: &scriptedBrowser{t: t, query: func(q url.Values) string {
			return "code=c&state=" + q.Get("state")
		}},
	}

	_, err := flow.InteractiveLogin(context.Background(), testConfig(provider.URL))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid_grant")
}

func TestRefreshCarriesForwardOldRefreshToken(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "refresh_token", r.PostForm.Get("grant_type"))
		assert.Equal(t, "old-refresh", r.PostForm.Get("refresh_token"))

		// Provider did not rotate the refresh token.
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-access","expires_in":300}`))
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{HTTPClient: provider.Client()}

	record, err := flow.Refresh(context.Background(), testConfig(provider.URL), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-access", record.AccessToken)
	assert.Equal(t, "old-refresh", record.RefreshToken)
}

func TestRefreshRotatedToken(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"new-access","refresh_token":"new-refresh","expires_in":300}`))
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{HTTPClient: provider.Client()}

	record, err := flow.Refresh(context.Background(), testConfig(provider.URL), "old-refresh")
	require.NoError(t, err)
	assert.Equal(t, "new-refresh", record.RefreshToken)
}

func TestRefreshFailureReturnsError(t *testing.T) {
	provider := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_grant"}`))
	}))
	defer provider.Close()

	flow := &auth.LoginFlow{HTTPClient: provider.Client()}

	_, err := flow.Refresh(context.Background(), testConfig(provider.URL), "stale")
	require.Error(t, err)
}
