package root

import (
	cmdConfigure "github.com/cloudkeeper/ck-prism/cmd/configure"
	cmdLogin "github.com/cloudkeeper/ck-prism/cmd/login"
	"github.com/cloudkeeper/ck-prism/internal/auth"
	"github.com/cloudkeeper/ck-prism/internal/awscreds"
	"github.com/cloudkeeper/ck-prism/internal/config"
	"github.com/cloudkeeper/ck-prism/internal/exchange"
	"github.com/cloudkeeper/ck-prism/internal/setup"
	"github.com/cloudkeeper/ck-prism/internal/tokenstore"
	promptutils "github.com/cloudkeeper/ck-prism/utils/prompt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var verbose bool

var RootCmd = &cobra.Command{
	Use:   "ck-prism",
	Short: "CloudKeeper Prism CLI",
	Long:  "Authenticates with CloudKeeper Prism and provides temporary AWS credentials.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

func init() {
	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	configStore := config.NewStore()
	tokenStore := tokenstore.NewFileStore()
	flow := auth.NewLoginFlow()
	exchangeClient := exchange.NewAPIClient()

	RootCmd.AddCommand(cmdLogin.NewLoginCommand(cmdLogin.Dependencies{
		ConfigStore: configStore,
		Tokens:      auth.NewTokenManager(tokenStore, flow),
		Exchange:    exchangeClient,
		Writer:      awscreds.NewFileWriter(),
		Verifier:    awscreds.NewSTSVerifier(),
	}))

	RootCmd.AddCommand(cmdConfigure.NewConfigureCommand(&setup.Wizard{
		Prompter:    promptutils.NewPrompter(),
		Flow:        flow,
		Exchange:    exchangeClient,
		ConfigStore: configStore,
		TokenStore:  tokenStore,
	}))
}
