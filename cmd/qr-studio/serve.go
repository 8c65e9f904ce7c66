package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/stdlib"
	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/qr-studio/internal/api/handlers"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/middleware"
	"github.com/bigkaa/goartstore/qr-studio/internal/config"
	"github.com/bigkaa/goartstore/qr-studio/internal/database"
	"github.com/bigkaa/goartstore/qr-studio/internal/repository"
	"github.com/bigkaa/goartstore/qr-studio/internal/server"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage/filestore"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage/miniostore"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Запустить HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

//nolint:funlen // последовательная сборка зависимостей
func runServe(ctx context.Context) error {
	// 1. Конфигурация и логгер
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.RequireAuth(); err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	logger.Info("Запуск QR Studio",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("storage_backend", cfg.StorageBackend),
	)

	// 2. Миграции и подключение к PostgreSQL
	if err := database.Migrate(cfg, logger); err != nil {
		return err
	}

	pool, err := database.Connect(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer pool.Close()

	// *sql.DB поверх пула для topologymetrics
	sqlDB := stdlib.OpenDBFromPool(pool)
	defer sqlDB.Close()

	// 3. Хранилище файлов
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		return err
	}

	// 4. Репозитории
	txRunner := repository.NewTxRunner(pool)
	artifactRepo := repository.NewArtifactRepository(pool)

	// 5. Сервисы
	cache := service.NewCacheService(cfg.CacheSize, cfg.CacheTTL)
	artifactService := service.NewArtifactService(txRunner, artifactRepo, store, cache, service.ArtifactConfig{
		RasterSize:     cfg.RasterSize,
		FreeDailyLimit: cfg.FreeDailyLimit,
		PersistTimeout: cfg.PersistTimeout,
	}, logger)
	downloadService := service.NewDownloadService(artifactRepo, store, cache, logger)
	previewService := service.NewPreviewService(cfg.MaxLogoBytes, logger)

	// 6. Фоновая очистка осиротевших файлов
	sweepService := service.NewSweepService(store, artifactRepo, cfg.SweepInterval, cfg.SweepGrace, logger)
	sweepService.Start(ctx)
	defer sweepService.Stop()

	readiness := map[string]handlers.ReadinessChecker{
		"postgresql": database.NewReadinessChecker(pool),
		"storage":    storage.NewReadinessChecker(store),
	}

	// 7. Мониторинг зависимостей; ошибка не блокирует запуск
	dephealthService, err := service.NewDephealthService(service.DephealthConfig{
		ServiceID:     "qr-studio",
		Group:         cfg.DephealthGroup,
		DB:            sqlDB,
		PostgresURL:   cfg.DatabaseURL(),
		MinioURL:      cfg.MinioURL(),
		CheckInterval: cfg.DephealthCheckInterval,
	}, logger)
	if err != nil {
		logger.Warn("Не удалось создать сервис мониторинга зависимостей",
			slog.String("error", err.Error()),
		)
	} else {
		if err := dephealthService.Start(ctx); err != nil {
			logger.Warn("Не удалось запустить мониторинг зависимостей",
				slog.String("error", err.Error()),
			)
		}
		defer dephealthService.Stop()
		readiness["dependencies"] = dephealthService
	}

	// 8. JWT
	jwtAuth, err := middleware.NewJWTAuth(middleware.JWTAuthConfig{
		JWKSURL:         cfg.JWTJWKSURL,
		Issuer:          cfg.JWTIssuer,
		ClientTimeout:   cfg.JWKSClientTimeout,
		RefreshInterval: cfg.JWKSRefreshInterval,
		Leeway:          cfg.JWTLeeway,
	}, logger)
	if err != nil {
		return err
	}

	// 9. Обработчики и маршруты (generated.ServerInterface)
	healthHandler := handlers.NewHealthHandler(readiness)
	apiHandler := handlers.NewAPIHandler(artifactService, downloadService, previewService,
		healthHandler, cfg.MaxLogoBytes, logger)

	router := server.NewRouter(apiHandler, jwtAuth.Middleware(),
		middleware.MetricsMiddleware(),
		middleware.RequestLogger(logger),
	)

	// 10. HTTP-сервер до сигнала завершения
	srv := server.New(cfg, logger, router)
	if err := srv.Run(ctx); err != nil {
		return err
	}

	logger.Info("QR Studio остановлен")
	return nil
}

// openStore создаёт хранилище выбранного бэкенда с ограничением параллелизма.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (storage.Store, error) {
	var store storage.Store
	switch cfg.StorageBackend {
	case config.StorageBackendMinio:
		ms, err := miniostore.New(ctx, miniostore.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		}, logger)
		if err != nil {
			return nil, err
		}
		store = ms
	default:
		fs, err := filestore.New(cfg.DataDir)
		if err != nil {
			return nil, err
		}
		logger.Info("Файловое хранилище инициализировано", slog.String("data_dir", fs.DataDir()))
		store = fs
	}
	return storage.NewBounded(store, cfg.StorageConcurrency), nil
}
