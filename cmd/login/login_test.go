package login_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/cloudkeeper/ck-prism/cmd/login"
	"github.com/cloudkeeper/ck-prism/internal/config"
	"github.com/cloudkeeper/ck-prism/models"
	mock_ckprism "github.com/cloudkeeper/ck-prism/tests/mock"
	"github.com/golang/mock/gomock"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type deps struct {
	tokens   *mock_ckprism.MockTokenProvider
	exchange *mock_ckprism.MockClient
	writer   *mock_ckprism.MockWriter
	verifier *mock_ckprism.MockVerifier
	fs       afero.Fs
}

func newLoginDeps(ctrl *gomock.Controller) (login.Dependencies, *deps) {
	d := &deps{
		tokens:   mock_ckprism.NewMockTokenProvider(ctrl),
		exchange: mock_ckprism.NewMockClient(ctrl),
		writer:   mock_ckprism.NewMockWriter(ctrl),
		verifier: mock_ckprism.NewMockVerifier(ctrl),
		fs:       afero.NewMemMapFs(),
	}
	configStore := config.NewStoreWithFs(d.fs, func() (string, error) {
		return "/home/user", nil
	})
	return login.Dependencies{
		ConfigStore: configStore,
		Tokens:      d.tokens,
		Exchange:    d.exchange,
		Writer:      d.writer,
		Verifier:    d.verifier,
	}, d
}

func seedProfile(t *testing.T, loginDeps login.Dependencies, name string) *models.ProfileConfig {
	t.Helper()
	cfg := &models.ProfileConfig{
		PrismDomain:     "prism.cloudkeeper.com",
		Realm:           "sso",
		ClientID:        "ckauth-cli",
		IdentityBaseURL: "https://login.prism.cloudkeeper.com",
		APIEndpoint:     "https://cli.prism.cloudkeeper.com/exchange",
		Region:          "us-east-1",
		RoleARN:         "arn:aws:iam::111122223333:role/Admin",
		AccountID:       "111122223333",
		RoleName:        "Admin",
	}
	require.NoError(t, loginDeps.ConfigStore.SaveProfile(name, cfg))
	return cfg
}

func TestLoginCommandHappyPath(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loginDeps, d := newLoginDeps(ctrl)
	cfg := seedProfile(t, loginDeps, "prod")

	tokens := &models.TokenRecord{AccessToken: "access", ExpiresAt: time.Now().Unix() + 600}
	creds := &models.AWSCredentials{
		AccessKeyID:     "AKIA",
		SecretAccessKey: "s",
		SessionToken:    "t",
		Expiration:      "2026-09-01T12:00:00Z",
	}

	d.tokens.EXPECT().GetValidToken(gomock.Any(), "prod", cfg).Return(tokens, nil)
	d.exchange.EXPECT().ExchangeRole(gomock.Any(), cfg, "access", cfg.RoleARN).Return(creds, nil)
	d.writer.EXPECT().WriteCredentials("prod", "us-east-1", creds).Return(nil)
	d.verifier.EXPECT().VerifySession(gomock.Any(), "us-east-1", creds).
		Return("arn:aws:sts::111122223333:assumed-role/Admin/session", nil)

	cmd := login.NewLoginCommand(loginDeps)
	cmd.SetArgs([]string{"--profile", "prod"})
	require.NoError(t, cmd.Execute())
}

func TestLoginCommandMissingConfiguration(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loginDeps, _ := newLoginDeps(ctrl)

	cmd := login.NewLoginCommand(loginDeps)
	cmd.SetArgs([]string{"--profile", "prod"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrNotConfigured)
	assert.Contains(t, err.Error(), "configure")
}

func TestLoginCommandVerifierFailureIsNonFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loginDeps, d := newLoginDeps(ctrl)
	cfg := seedProfile(t, loginDeps, "prod")

	tokens := &models.TokenRecord{AccessToken: "access", ExpiresAt: time.Now().Unix() + 600}
	creds := &models.AWSCredentials{AccessKeyID: "AKIA", SecretAccessKey: "s", SessionToken: "t"}

	d.tokens.EXPECT().GetValidToken(gomock.Any(), "prod", cfg).Return(tokens, nil)
	d.exchange.EXPECT().ExchangeRole(gomock.Any(), cfg, "access", cfg.RoleARN).Return(creds, nil)
	d.writer.EXPECT().WriteCredentials("prod", "us-east-1", creds).Return(nil)
	d.verifier.EXPECT().VerifySession(gomock.Any(), "us-east-1", creds).
		Return("", fmt.Errorf("sts unreachable"))

	cmd := login.NewLoginCommand(loginDeps)
	cmd.SetArgs([]string{"--profile", "prod"})
	require.NoError(t, cmd.Execute())
}

func TestLoginCommandExchangeFailureIsFatal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loginDeps, d := newLoginDeps(ctrl)
	cfg := seedProfile(t, loginDeps, "prod")

	tokens := &models.TokenRecord{AccessToken: "access", ExpiresAt: time.Now().Unix() + 600}

	d.tokens.EXPECT().GetValidToken(gomock.Any(), "prod", cfg).Return(tokens, nil)
	d.exchange.EXPECT().ExchangeRole(gomock.Any(), cfg, "access", cfg.RoleARN).
		Return(nil, fmt.Errorf("AWS credential exchange failed: bad token"))

	cmd := login.NewLoginCommand(loginDeps)
	cmd.SetArgs([]string{"--profile", "prod"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exchange failed")
}

func TestLoginCommandMissingRoleARN(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loginDeps, _ := newLoginDeps(ctrl)
	cfg := seedProfile(t, loginDeps, "prod")
	cfg.RoleARN = ""
	require.NoError(t, loginDeps.ConfigStore.SaveProfile("prod", cfg))

	cmd := login.NewLoginCommand(loginDeps)
	cmd.SetArgs([]string{"--profile", "prod"})
	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing a role")
}
