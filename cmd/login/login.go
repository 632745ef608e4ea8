package login

import (
	"context"
	"errors"
	"fmt"

	"github.com/cloudkeeper/ck-prism/internal/awscreds"
	"github.com/cloudkeeper/ck-prism/internal/config"
	"github.com/cloudkeeper/ck-prism/internal/exchange"
	"github.com/cloudkeeper/ck-prism/models"
	generalutils "github.com/cloudkeeper/ck-prism/utils/general"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// TokenProvider resolves a valid access token for a profile, however it
// has to (cache, refresh, or interactive login).
type TokenProvider interface {
	GetValidToken(ctx context.Context, profile string, cfg *models.ProfileConfig) (*models.TokenRecord, error)
}

type Dependencies struct {
	ConfigStore *config.Store
	Tokens      TokenProvider
	Exchange    exchange.Client
	Writer      awscreds.Writer
	Verifier    awscreds.Verifier
}

func NewLoginCommand(deps Dependencies) *cobra.Command {
	var profile string

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate and get AWS credentials",
		Long:  "Obtains a valid access token for the profile, exchanges it for temporary AWS credentials, and writes them to ~/.aws/credentials.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := generalutils.HandleSignals()
			return runLogin(ctx, deps, profile)
		},
	}

	loginCmd.Flags().StringVar(&profile, "profile", "default", "Profile to log in with")

	return loginCmd
}

func runLogin(ctx context.Context, deps Dependencies, profile string) error {
	if profile != "default" {
		fmt.Printf("Using %s profile\n", profile)
	}

	cfg, err := deps.ConfigStore.LoadProfile(profile)
	if err != nil {
		if errors.Is(err, config.ErrNotConfigured) {
			return fmt.Errorf("%w: run 'ck-prism configure'", err)
		}
		return err
	}

	if cfg.RoleARN == "" {
		return fmt.Errorf("profile %q is missing a role; run 'ck-prism configure' again", profile)
	}

	tokens, err := deps.Tokens.GetValidToken(ctx, profile, cfg)
	if err != nil {
		return err
	}

	fmt.Printf("Exchanging token for AWS credentials for role: %s...\n", cfg.RoleARN)
	creds, err := deps.Exchange.ExchangeRole(ctx, cfg, tokens.AccessToken, cfg.RoleARN)
	if err != nil {
		return err
	}

	if err := deps.Writer.WriteCredentials(profile, cfg.Region, creds); err != nil {
		return err
	}

	roleARN, err := deps.Verifier.VerifySession(ctx, cfg.Region, creds)
	if err != nil {
		log.Warnf("could not verify session with STS: %v", err)
		roleARN = cfg.RoleARN
	}

	generalutils.PrintSessionSummary(profile, cfg.AccountID, "", cfg.RoleName, roleARN, creds.Expiration)
	return nil
}
