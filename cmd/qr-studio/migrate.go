package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/qr-studio/internal/database"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Управление схемой базы данных",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Применить все новые миграции",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return database.Migrate(cfg, logger)
		},
	})

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "Откатить последние миграции",
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}
			return database.MigrateDown(cfg, steps, logger)
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "число откатываемых миграций")
	cmd.AddCommand(down)

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Показать текущую версию схемы",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig()
			if err != nil {
				return err
			}
			version, dirty, err := database.MigrationVersion(cfg)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "version=%d dirty=%t\n", version, dirty)
			return nil
		},
	})

	return cmd
}
