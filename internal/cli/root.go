package cli

import (
	"github.com/spf13/cobra"
)

func Execute() error {
	return NewRoot().Execute()
}

func NewRoot() *cobra.Command {
	root := &cobra.Command{
		Use:           "reportctl",
		Short:         "Score generated reports before they reach a customer",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		EvaluateCmd(),
		RulesCmd(),
		MigrateCmd(),
	)
	return root
}
