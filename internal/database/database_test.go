package database

import (
	"context"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/goartstore/qr-studio/internal/config"
)

// setupTestDB запускает PostgreSQL в Docker-контейнере через testcontainers
// и возвращает конфигурацию для подключения к нему.
func setupTestDB(t *testing.T) *config.Config {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"docker.io/postgres:17-alpine",
		postgres.WithDatabase("qrstudio_test"),
		postgres.WithUsername("qrstudio"),
		postgres.WithPassword("test-password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Не удалось запустить PostgreSQL контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Не удалось получить host контейнера: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Не удалось получить port контейнера: %v", err)
	}

	t.Setenv("QS_DB_HOST", host)
	t.Setenv("QS_DB_PORT", port.Port())
	t.Setenv("QS_DB_NAME", "qrstudio_test")
	t.Setenv("QS_DB_USER", "qrstudio")
	t.Setenv("QS_DB_PASSWORD", "test-password")
	t.Setenv("QS_DB_SSL_MODE", "disable")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}
	return cfg
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestConnect(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	pool, err := Connect(ctx, cfg, testLogger())
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("pool.Ping() вернул ошибку: %v", err)
	}
}

func TestMigrate(t *testing.T) {
	cfg := setupTestDB(t)
	logger := testLogger()

	version, _, err := MigrationVersion(cfg)
	if err != nil {
		t.Fatalf("MigrationVersion() до миграций: %v", err)
	}
	if version != 0 {
		t.Errorf("версия пустой базы = %d, ожидалась 0", version)
	}

	if err := Migrate(cfg, logger); err != nil {
		t.Fatalf("Migrate() вернул ошибку: %v", err)
	}
	// Повторное применение — без ошибки (ErrNoChange)
	if err := Migrate(cfg, logger); err != nil {
		t.Fatalf("Повторный Migrate() вернул ошибку: %v", err)
	}

	ctx := context.Background()
	pool, err := Connect(ctx, cfg, logger)
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer pool.Close()

	for _, table := range []string{"owners", "qr_artifacts", "qr_creation_log"} {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (
				SELECT FROM information_schema.tables
				WHERE table_schema = 'public' AND table_name = $1
			)`, table).Scan(&exists)
		if err != nil {
			t.Fatalf("Ошибка проверки таблицы %s: %v", table, err)
		}
		if !exists {
			t.Errorf("Таблица %s не создана", table)
		}
	}

	if err := MigrateDown(cfg, 1, logger); err != nil {
		t.Fatalf("MigrateDown() вернул ошибку: %v", err)
	}
	version, _, err = MigrationVersion(cfg)
	if err != nil {
		t.Fatalf("MigrationVersion() после отката: %v", err)
	}
	if version != 0 {
		t.Errorf("версия после отката = %d, ожидалась 0", version)
	}
}

func TestMigrateDown_InvalidSteps(t *testing.T) {
	if err := MigrateDown(&config.Config{}, 0, testLogger()); err == nil {
		t.Error("ожидалась ошибка при steps = 0")
	}
}

func TestReadinessChecker(t *testing.T) {
	cfg := setupTestDB(t)
	ctx := context.Background()

	pool, err := Connect(ctx, cfg, testLogger())
	if err != nil {
		t.Fatalf("Connect() вернул ошибку: %v", err)
	}
	defer pool.Close()

	status, msg := NewReadinessChecker(pool).CheckReady()
	if status != "ok" {
		t.Errorf("CheckReady() status = %q, message = %q; ожидали ok", status, msg)
	}
}
