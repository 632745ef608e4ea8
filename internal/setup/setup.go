// Package setup implements the interactive configure wizard: it logs the
// user in, discovers the roles their identity can assume, and persists a
// named profile for later logins.
package setup

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/cloudkeeper/ck-prism/internal/config"
	"github.com/cloudkeeper/ck-prism/internal/exchange"
	"github.com/cloudkeeper/ck-prism/internal/tokenstore"
	"github.com/cloudkeeper/ck-prism/models"
	promptutils "github.com/cloudkeeper/ck-prism/utils/prompt"
)

// LoginRunner is the slice of the login flow the wizard needs: a one-shot
// interactive authentication.
type LoginRunner interface {
	InteractiveLogin(ctx context.Context, cfg *models.ProfileConfig) (*models.TokenRecord, error)
}

type Wizard struct {
	Prompter    promptutils.Prompter
	Flow        LoginRunner
	Exchange    exchange.Client
	ConfigStore *config.Store
	TokenStore  tokenstore.Store
}

// Run walks the user through configuring one profile. The tokens obtained
// during the wizard login are persisted so the first `login` afterwards
// needs no re-authentication.
func (w *Wizard) Run(ctx context.Context) error {
	defaults := w.ConfigStore.LoadWizardDefaults()

	fmt.Println("\nConfiguring ck-prism")
	fmt.Println(strings.Repeat("=", 50))
	fmt.Println("\n  Examples: prism.cloudkeeper.com, prism-eu.cloudkeeper.com, myprism.xyz.in")

	domain, err := w.Prompter.PromptWithDefault("Enter Prism domain", defaults.PrismDomain)
	if err != nil {
		return err
	}
	fmt.Printf("Using Prism domain: %s\n", domain)

	realm, err := w.Prompter.PromptWithDefault(
		fmt.Sprintf("Enter Prism tenant (for sso.%s, enter 'sso')", domain), defaults.Realm)
	if err != nil {
		return err
	}
	realm = strings.Trim(realm, "'")

	cfg := &models.ProfileConfig{
		PrismDomain:     domain,
		Realm:           realm,
		ClientID:        defaults.ClientID,
		IdentityBaseURL: config.IdentityBaseURL(domain),
		APIEndpoint:     config.APIEndpoint(domain),
	}

	fmt.Printf("\nLogging in to realm '%s' to fetch available roles...\n", realm)
	tokens, err := w.Flow.InteractiveLogin(ctx, cfg)
	if err != nil {
		return err
	}

	fmt.Println("\nFetching available roles...")
	roles, accountNames, err := w.Exchange.ListRoles(ctx, cfg, tokens.AccessToken)
	if err != nil {
		return err
	}
	if len(roles) == 0 {
		return fmt.Errorf("no roles found for this user")
	}

	selected, err := w.selectRole(roles, accountNames)
	if err != nil {
		return err
	}
	fmt.Printf("\nSelected Role: %s (%s)\n", selected.RoleName, selected.RoleARN)

	defaultName := fmt.Sprintf("%s-%s", selected.AccountID, selected.RoleName)
	profileName, err := w.Prompter.PromptWithDefault("Enter Profile Name", defaultName)
	if err != nil {
		return err
	}

	region, err := w.Prompter.PromptWithDefault("Enter AWS Region", defaults.Region)
	if err != nil {
		return err
	}

	cfg.Region = region
	cfg.Output = "json"
	cfg.RoleARN = selected.FullARN
	cfg.AccountID = selected.AccountID
	cfg.RoleName = selected.RoleName

	if err := w.ConfigStore.SaveProfile(profileName, cfg); err != nil {
		return err
	}
	if err := w.TokenStore.Save(profileName, tokens); err != nil {
		return err
	}

	fmt.Printf("\nConfiguration saved for profile '%s'!\n", profileName)
	fmt.Printf("You can now login using: ck-prism login --profile %s\n", profileName)
	return nil
}

// selectRole groups the role list by AWS account, prompts for an account
// and then for one of its roles.
func (w *Wizard) selectRole(roles []models.RoleEntry, accountNames map[string]string) (*models.RoleEntry, error) {
	byAccount := make(map[string][]models.RoleEntry)
	for _, role := range roles {
		byAccount[role.AccountID] = append(byAccount[role.AccountID], role)
	}

	accountIDs := make([]string, 0, len(byAccount))
	for id := range byAccount {
		accountIDs = append(accountIDs, id)
	}
	sort.Strings(accountIDs)

	fmt.Printf("\nAvailable Accounts: %d\n", len(accountIDs))

	labels := make([]string, 0, len(accountIDs))
	labelToID := make(map[string]string, len(accountIDs))
	for _, id := range accountIDs {
		label := id
		if name := accountNames[id]; name != "" {
			label = fmt.Sprintf("%s (%s)", id, name)
		}
		labels = append(labels, label)
		labelToID[label] = id
	}

	chosenLabel, err := w.Prompter.SelectFromList("Select an account", labels)
	if err != nil {
		return nil, err
	}
	accountID := labelToID[chosenLabel]

	accountRoles := byAccount[accountID]
	roleNames := make([]string, 0, len(accountRoles))
	for _, role := range accountRoles {
		roleNames = append(roleNames, role.RoleName)
	}

	chosenRole, err := w.Prompter.SelectFromList(
		fmt.Sprintf("Select a role for account %s", accountID), roleNames)
	if err != nil {
		return nil, err
	}

	for i := range accountRoles {
		if accountRoles[i].RoleName == chosenRole {
			return &accountRoles[i], nil
		}
	}
	return nil, fmt.Errorf("selected role %q not found", chosenRole)
}
