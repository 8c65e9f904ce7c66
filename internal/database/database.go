// Пакет database — подключение к PostgreSQL через pgxpool,
// управление схемой (golang-migrate) и проверка готовности.
package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/bigkaa/goartstore/qr-studio/internal/config"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// Connect создаёт пул подключений к PostgreSQL.
// Выполняет ping для проверки доступности.
func Connect(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseDSN())
	if err != nil {
		return nil, fmt.Errorf("ошибка парсинга DSN: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания пула подключений: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ошибка подключения к PostgreSQL: %w", err)
	}

	logger.Info("Подключение к PostgreSQL установлено",
		slog.String("host", cfg.DBHost),
		slog.Int("port", cfg.DBPort),
		slog.String("database", cfg.DBName),
	)

	return pool, nil
}

// newMigrator создаёт экземпляр golang-migrate поверх embedded FS.
func newMigrator(cfg *config.Config) (*migrate.Migrate, error) {
	source, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return nil, fmt.Errorf("ошибка создания источника миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", source, cfg.MigrateURL())
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации миграций: %w", err)
	}
	return m, nil
}

// Migrate применяет все SQL-миграции к базе данных.
// Повторный вызов без новых миграций не считается ошибкой.
func Migrate(cfg *config.Config, logger *slog.Logger) error {
	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка применения миграций: %w", err)
	}

	version, dirty, _ := m.Version()
	logger.Info("Миграции применены",
		slog.Uint64("version", uint64(version)),
		slog.Bool("dirty", dirty),
	)

	return nil
}

// MigrateDown откатывает steps последних миграций.
func MigrateDown(cfg *config.Config, steps int, logger *slog.Logger) error {
	if steps < 1 {
		return fmt.Errorf("число шагов отката должно быть >= 1, получено %d", steps)
	}

	m, err := newMigrator(cfg)
	if err != nil {
		return err
	}
	defer m.Close()

	if err := m.Steps(-steps); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("ошибка отката миграций: %w", err)
	}

	logger.Info("Миграции откачены", slog.Int("steps", steps))
	return nil
}

// MigrationVersion возвращает текущую версию схемы.
// Для пустой базы возвращает 0 без ошибки.
func MigrationVersion(cfg *config.Config) (version uint, dirty bool, err error) {
	m, err := newMigrator(cfg)
	if err != nil {
		return 0, false, err
	}
	defer m.Close()

	version, dirty, err = m.Version()
	if errors.Is(err, migrate.ErrNilVersion) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("ошибка чтения версии миграций: %w", err)
	}
	return version, dirty, nil
}

// ReadinessChecker — проверка готовности PostgreSQL для health endpoint.
// Реализует интерфейс handlers.ReadinessChecker.
type ReadinessChecker struct {
	pool *pgxpool.Pool
}

// NewReadinessChecker создаёт проверку готовности PostgreSQL.
func NewReadinessChecker(pool *pgxpool.Pool) *ReadinessChecker {
	return &ReadinessChecker{pool: pool}
}

// CheckReady проверяет подключение к PostgreSQL через ping.
// Возвращает статус ("ok", "fail") и сообщение.
func (c *ReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.pool.Ping(ctx); err != nil {
		return "fail", fmt.Sprintf("PostgreSQL недоступен: %v", err)
	}
	return "ok", "подключение активно"
}
