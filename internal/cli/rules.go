package cli

import (
	"github.com/spf13/cobra"
)

func RulesCmd() *cobra.Command {
	var rulesPath string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "Print the effective rule set as YAML",
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := loadRules(rulesPath)
			if err != nil {
				return err
			}
			data, err := set.Rules.Marshal()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringVar(&rulesPath, "rules", "", "Rule overrides (YAML) to merge over the defaults")
	return cmd
}
