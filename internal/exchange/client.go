// Package exchange calls the Prism backend API that converts a verified
// identity token into role listings and temporary AWS credentials.
package exchange

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/cloudkeeper/ck-prism/models"
)

type Client interface {
	ListRoles(ctx context.Context, cfg *models.ProfileConfig, accessToken string) ([]models.RoleEntry, map[string]string, error)
	ExchangeRole(ctx context.Context, cfg *models.ProfileConfig, accessToken, roleARN string) (*models.AWSCredentials, error)
}

type APIClient struct {
	HTTPClient *http.Client
}

func NewAPIClient() *APIClient {
	return &APIClient{
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *APIClient) post(ctx context.Context, cfg *models.ProfileConfig, accessToken string, payload map[string]string) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, cfg.APIEndpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error connecting to API: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read API response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("API request failed: %s", strings.TrimSpace(string(respBody)))
	}

	return respBody, nil
}

// ListRoles returns the roles available to the authenticated identity,
// plus an account-id to account-name mapping when the API provides one.
//
// Accepted response shapes, in precedence order:
//
//	{"available_roles": [...], "account_names": {...}}
//	{"roles": [...]}
//	[...]
//
// Role entries may be bare ARN strings or objects carrying a "role_arn" or
// "arn" key. Anything else is fatal, with the payload surfaced.
func (c *APIClient) ListRoles(ctx context.Context, cfg *models.ProfileConfig, accessToken string) ([]models.RoleEntry, map[string]string, error) {
	body, err := c.post(ctx, cfg, accessToken, map[string]string{
		"token": accessToken,
		"realm": cfg.Realm,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch available roles: %w", err)
	}

	rawRoles, accountNames, err := decodeRoleList(body)
	if err != nil {
		return nil, nil, err
	}

	var roles []models.RoleEntry
	for _, raw := range rawRoles {
		entry, ok := parseRoleEntry(raw)
		if !ok {
			continue
		}
		roles = append(roles, entry)
	}

	return roles, accountNames, nil
}

type roleListEnvelope struct {
	AvailableRoles []json.RawMessage `json:"available_roles"`
	Roles          []json.RawMessage `json:"roles"`
	AccountNames   map[string]string `json:"account_names"`
}

func decodeRoleList(body []byte) ([]json.RawMessage, map[string]string, error) {
	var envelope roleListEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.AvailableRoles != nil {
			return envelope.AvailableRoles, envelope.AccountNames, nil
		}
		if envelope.Roles != nil {
			return envelope.Roles, envelope.AccountNames, nil
		}
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(body, &bare); err == nil {
		return bare, nil, nil
	}

	return nil, nil, fmt.Errorf("unexpected role list format: %s", strings.TrimSpace(string(body)))
}

// parseRoleEntry normalizes one raw role into a RoleEntry. Entries whose
// ARN cannot be parsed are skipped rather than failing the whole listing.
func parseRoleEntry(raw json.RawMessage) (models.RoleEntry, bool) {
	var fullARN string

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		fullARN = s
	} else {
		var obj map[string]any
		if err := json.Unmarshal(raw, &obj); err != nil {
			return models.RoleEntry{}, false
		}
		if v, ok := obj["role_arn"].(string); ok {
			fullARN = v
		} else if v, ok := obj["arn"].(string); ok {
			fullARN = v
		} else {
			return models.RoleEntry{}, false
		}
	}

	// The API may return "role-arn,idp-arn" pairs.
	roleARN := strings.SplitN(fullARN, ",", 2)[0]

	// arn:aws:iam::ACCOUNT_ID:role/ROLE_NAME
	parts := strings.Split(roleARN, ":")
	if len(parts) < 6 {
		return models.RoleEntry{}, false
	}

	return models.RoleEntry{
		RoleName:  strings.TrimPrefix(parts[5], "role/"),
		AccountID: parts[4],
		RoleARN:   roleARN,
		FullARN:   fullARN,
	}, true
}

// ExchangeRole converts the identity token into temporary AWS credentials
// for the selected role. The response may be wrapped in a "credentials"
// object or flat, with snake_case or PascalCase field names.
func (c *APIClient) ExchangeRole(ctx context.Context, cfg *models.ProfileConfig, accessToken, roleARN string) (*models.AWSCredentials, error) {
	body, err := c.post(ctx, cfg, accessToken, map[string]string{
		"token":         accessToken,
		"realm":         cfg.Realm,
		"selected_role": roleARN,
	})
	if err != nil {
		return nil, fmt.Errorf("AWS credential exchange failed: %w", err)
	}

	return decodeCredentials(body)
}

type credentialFields struct {
	AccessKeyID     string `json:"access_key_id"`
	AccessKeyIDPC   string `json:"AccessKeyId"`
	SecretAccessKey string `json:"secret_access_key"`
	SecretAccessPC  string `json:"SecretAccessKey"`
	SessionToken    string `json:"session_token"`
	SessionTokenPC  string `json:"SessionToken"`
	Expiration      string `json:"expiration"`
	ExpirationPC    string `json:"Expiration"`
}

type credentialEnvelope struct {
	Credentials *credentialFields `json:"credentials"`
	credentialFields
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func decodeCredentials(body []byte) (*models.AWSCredentials, error) {
	var envelope credentialEnvelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("invalid credentials format received: %s", strings.TrimSpace(string(body)))
	}

	fields := envelope.credentialFields
	if envelope.Credentials != nil {
		fields = *envelope.Credentials
	}

	creds := &models.AWSCredentials{
		AccessKeyID:     firstNonEmpty(fields.AccessKeyID, fields.AccessKeyIDPC),
		SecretAccessKey: firstNonEmpty(fields.SecretAccessKey, fields.SecretAccessPC),
		SessionToken:    firstNonEmpty(fields.SessionToken, fields.SessionTokenPC),
		Expiration:      firstNonEmpty(fields.Expiration, fields.ExpirationPC),
	}

	if creds.AccessKeyID == "" || creds.SecretAccessKey == "" || creds.SessionToken == "" {
		return nil, fmt.Errorf("invalid credentials format received: %s", strings.TrimSpace(string(body)))
	}

	return creds, nil
}
