package cli

import (
	"fmt"

	"github.com/reportgate/backend/internal/config"
	"github.com/reportgate/backend/internal/database"
	"github.com/spf13/cobra"
)

func MigrateCmd() *cobra.Command {
	var envFile string
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(envFile)
			if err != nil {
				return err
			}
			db, err := database.Connect(cfg.DB)
			if err != nil {
				return err
			}
			defer db.Close()

			if err := database.Migrate(db); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied to %s@%s/%s\n", cfg.DB.User, cfg.DB.Host, cfg.DB.Name)
			return nil
		},
	}
	cmd.Flags().StringVar(&envFile, "env", ".env", "Environment file to load before reading configuration")
	return cmd
}
