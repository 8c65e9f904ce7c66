// dephealth.go — мониторинг зависимостей через topologymetrics SDK.
//
// QR Studio мониторит:
//   - PostgreSQL — SQL checker через существующий pgxpool (critical)
//   - MinIO — HTTP checker к /minio/health/live, только при QS_STORAGE_BACKEND=minio (critical)
//
// Метрики app_dependency_* доступны на /metrics вместе с остальными,
// сводное состояние — в /health/ready как проверка "dependencies".
package service

import (
	"context"
	"database/sql"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/BigKAA/topologymetrics/sdk-go/dephealth"
	_ "github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/httpcheck" // регистрация HTTP checker factory
	"github.com/BigKAA/topologymetrics/sdk-go/dephealth/checks/pgcheck"
	"github.com/prometheus/client_golang/prometheus"
)

// minioHealthPath — liveness endpoint MinIO.
const minioHealthPath = "/minio/health/live"

// DephealthConfig — параметры мониторинга зависимостей.
type DephealthConfig struct {
	// ServiceID — имя вершины графа приложения
	ServiceID string
	// Group — имя группы в метриках (QS_DEPHEALTH_GROUP)
	Group string
	// DB — *sql.DB, полученный из pgxpool через stdlib.OpenDBFromPool()
	DB *sql.DB
	// PostgresURL — URL PostgreSQL для лейблов, не для подключения
	PostgresURL string
	// MinioURL — базовый URL MinIO; пусто, если используется файловое хранилище
	MinioURL string
	// CheckInterval — интервал проверки (QS_DEPHEALTH_CHECK_INTERVAL)
	CheckInterval time.Duration
}

// DephealthService — сервис мониторинга зависимостей.
type DephealthService struct {
	dh     *dephealth.DepHealth
	logger *slog.Logger
}

// NewDephealthService создаёт сервис с глобальным Prometheus registry.
func NewDephealthService(cfg DephealthConfig, logger *slog.Logger) (*DephealthService, error) {
	return newDephealthService(cfg, logger)
}

// NewDephealthServiceWithRegisterer создаёт сервис с указанным registerer.
func NewDephealthServiceWithRegisterer(
	cfg DephealthConfig,
	logger *slog.Logger,
	registerer prometheus.Registerer,
) (*DephealthService, error) {
	return newDephealthService(cfg, logger, dephealth.WithRegisterer(registerer))
}

func newDephealthService(cfg DephealthConfig, logger *slog.Logger, extraOpts ...dephealth.Option) (*DephealthService, error) {
	opts := make([]dephealth.Option, 0, 3+len(extraOpts))
	opts = append(opts,
		dephealth.WithLogger(logger),
		dephealth.AddDependency("postgresql", dephealth.TypePostgres,
			pgcheck.New(pgcheck.WithDB(cfg.DB)),
			dephealth.FromURL(cfg.PostgresURL),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		),
	)

	if cfg.MinioURL != "" {
		opts = append(opts, dephealth.HTTP("minio",
			dephealth.FromURL(cfg.MinioURL),
			dephealth.WithHTTPHealthPath(minioHealthPath),
			dephealth.CheckInterval(cfg.CheckInterval),
			dephealth.Critical(true),
		))
	}
	opts = append(opts, extraOpts...)

	dh, err := dephealth.New(cfg.ServiceID, cfg.Group, opts...)
	if err != nil {
		return nil, err
	}

	return &DephealthService{
		dh:     dh,
		logger: logger.With(slog.String("component", "dephealth")),
	}, nil
}

// Start запускает периодическую проверку зависимостей.
func (ds *DephealthService) Start(ctx context.Context) error {
	ds.logger.Info("Мониторинг зависимостей запущен")
	return ds.dh.Start(ctx)
}

// Stop останавливает мониторинг.
func (ds *DephealthService) Stop() {
	ds.dh.Stop()
	ds.logger.Info("Мониторинг зависимостей остановлен")
}

// Health возвращает состояние зависимостей: "имя:host:port" → true, если ok.
func (ds *DephealthService) Health() map[string]bool {
	return ds.dh.Health()
}

// CheckReady — результат последних фоновых проверок для readiness.
// Недоступная зависимость даёт degraded: fail решают прямые проверки
// PostgreSQL и хранилища в том же ответе.
func (ds *DephealthService) CheckReady() (status, message string) {
	return readinessFromHealth(ds.Health())
}

func readinessFromHealth(health map[string]bool) (status, message string) {
	if len(health) == 0 {
		return "ok", "проверки ещё не выполнялись"
	}
	var down []string
	for key, healthy := range health {
		if !healthy {
			down = append(down, key)
		}
	}
	if len(down) == 0 {
		return "ok", "все зависимости доступны"
	}
	slices.Sort(down)
	return "degraded", "недоступны: " + strings.Join(down, ", ")
}
