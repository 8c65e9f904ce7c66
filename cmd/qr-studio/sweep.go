package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/qr-studio/internal/database"
	"github.com/bigkaa/goartstore/qr-studio/internal/repository"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
)

func sweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Однократно удалить осиротевшие файлы из хранилища",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			pool, err := database.Connect(ctx, cfg, logger)
			if err != nil {
				return err
			}
			defer pool.Close()

			store, err := openStore(ctx, cfg, logger)
			if err != nil {
				return err
			}

			sweeper := service.NewSweepService(store, repository.NewArtifactRepository(pool),
				cfg.SweepInterval, cfg.SweepGrace, logger)
			res := sweeper.RunOnce(ctx)

			fmt.Fprintf(cmd.OutOrStdout(), "scanned=%d young=%d deleted=%d errors=%d duration=%s\n",
				res.Scanned, res.Young, res.Deleted, res.Errors, res.Duration)
			if res.Errors > 0 {
				return fmt.Errorf("очистка завершена с ошибками: %d", res.Errors)
			}
			return nil
		},
	}
}
