package main

import (
	"log/slog"
	"os"
	_ "time/tzdata"

	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
	"github.com/templui/taskflow/cmd/taskctl/cmd"
	"github.com/templui/taskflow/internal/config"
	"github.com/templui/taskflow/internal/db"
	"github.com/templui/taskflow/internal/logger"
	"github.com/templui/taskflow/internal/service"
)

func main() {
	cfg := config.LoadTool()

	logger.Init(logger.Options{
		Dev:         cfg.IsDevelopment(),
		Service:     "taskctl",
		Environment: cfg.AppEnv,
	})

	env := &cmd.Env{
		Driver:   cfg.DBDriver,
		Open:     func() (*sqlx.DB, error) { return db.Init(cfg.DBDriver, cfg.DBConnection) },
		Location: cfg.Location(),
		Email: service.NewEmailService(
			cfg.ResendAPIKey,
			cfg.EmailFrom,
			cfg.AppURL,
			cfg.AppName,
			cfg.IsDevelopment(),
		),
	}
	defer func() {
		err := env.Close()
		if err != nil {
			slog.Error("failed to close database", "error", err)
		}
	}()

	rootCmd := &cobra.Command{
		Use:          "taskctl",
		Short:        "Operator tools for taskflow",
		SilenceUsage: true,
	}

	rootCmd.AddCommand(cmd.MigrateCmd(env))
	rootCmd.AddCommand(cmd.GoalsCmd(env))

	if err := rootCmd.Execute(); err != nil {
		_ = env.Close()
		os.Exit(1)
	}
}
