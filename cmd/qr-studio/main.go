// QR Studio — сервис создания, хранения и выдачи QR-артефактов.
// Подкоманды: serve (HTTP API), migrate, sweep, render.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/qr-studio/internal/config"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "qr-studio",
		Short:         "QR Studio: QR-артефакты по структурированным данным",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(sweepCmd())
	rootCmd.AddCommand(renderCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig загружает конфигурацию и настраивает логгер.
func loadConfig() (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return cfg, config.SetupLogger(cfg), nil
}
