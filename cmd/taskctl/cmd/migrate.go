package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/templui/taskflow/internal/db"
)

func MigrateCmd(env *Env) *cobra.Command {
	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := env.DB()
			if err != nil {
				return err
			}
			err = db.RunMigrations(cmd.Context(), database.DB, env.Driver)
			if err != nil {
				return err
			}
			return printVersion(cmd, env)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			database, err := env.DB()
			if err != nil {
				return err
			}
			err = db.MigrateDown(cmd.Context(), database.DB, env.Driver)
			if err != nil {
				return err
			}
			return printVersion(cmd, env)
		},
	})

	migrateCmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Print the applied migration version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return printVersion(cmd, env)
		},
	})

	return migrateCmd
}

func printVersion(cmd *cobra.Command, env *Env) error {
	database, err := env.DB()
	if err != nil {
		return err
	}

	version, err := db.Version(cmd.Context(), database.DB, env.Driver)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "version %d\n", version)
	return nil
}
