package configure

import (
	"github.com/cloudkeeper/ck-prism/internal/setup"
	generalutils "github.com/cloudkeeper/ck-prism/utils/general"
	"github.com/spf13/cobra"
)

func NewConfigureCommand(wizard *setup.Wizard) *cobra.Command {
	return &cobra.Command{
		Use:   "configure",
		Short: "Configure authentication settings",
		Long:  "Runs the interactive setup wizard: logs in, discovers available roles, and saves a named profile.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			ctx := generalutils.HandleSignals()
			return wizard.Run(ctx)
		},
	}
}
