// Пакет config — загрузка и валидация конфигурации QR Studio
// из переменных окружения (префикс QS_).
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Версия приложения, задаётся при сборке через -ldflags.
var Version = "dev"

// Бэкенды хранилища артефактов.
const (
	StorageBackendFS    = "fs"
	StorageBackendMinio = "minio"
)

// Config содержит все параметры конфигурации QR Studio.
type Config struct {
	// --- Сервер ---

	// Порт HTTP-сервера
	Port int
	// Уровень логирования (debug, info, warn, error)
	LogLevel slog.Level
	// Формат логов (json, text)
	LogFormat string

	// --- HTTP Server Timeouts ---

	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration

	// Таймаут graceful shutdown
	ShutdownTimeout time.Duration

	// --- PostgreSQL ---

	DBHost     string
	DBPort     int
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string

	// --- Хранилище артефактов ---

	// Бэкенд хранилища: fs или minio
	StorageBackend string
	// Корневая директория растровых файлов (для fs)
	DataDir string
	// Максимальное число одновременных операций с хранилищем
	StorageConcurrency int64

	MinioEndpoint  string
	MinioAccessKey string
	MinioSecretKey string
	MinioBucket    string
	MinioUseSSL    bool

	// --- Рендеринг и квоты ---

	// Размер растрового артефакта в пикселях (сторона квадрата)
	RasterSize int
	// Дневной лимит создания артефактов для бесплатного плана
	FreeDailyLimit int
	// Таймаут транзакции сохранения (не зависит от отмены клиентом)
	PersistTimeout time.Duration
	// Максимальный размер логотипа в байтах
	MaxLogoBytes int64

	// --- Фоновая очистка осиротевших файлов ---

	SweepInterval time.Duration
	// Файлы моложе grace-периода не удаляются
	SweepGrace time.Duration

	// --- Кэш записей артефактов ---

	CacheSize int
	CacheTTL  time.Duration

	// --- JWT ---

	// URL JWKS endpoint (обязателен для serve, см. RequireAuth)
	JWTJWKSURL          string
	JWTIssuer           string
	JWTLeeway           time.Duration
	JWKSClientTimeout   time.Duration
	JWKSRefreshInterval time.Duration

	// --- topologymetrics ---

	DephealthGroup         string
	DephealthCheckInterval time.Duration
}

// Load загружает конфигурацию из переменных окружения.
// Возвращает ошибку, если обязательные переменные не заданы
// или значения некорректны.
//
//nolint:cyclop,funlen // линейная загрузка большого числа параметров
func Load() (*Config, error) {
	cfg := &Config{}
	var err error

	// --- Сервер ---

	cfg.Port, err = getEnvInt("QS_PORT", 8040)
	if err != nil {
		return nil, fmt.Errorf("QS_PORT: %w", err)
	}
	if cfg.Port < 1 || cfg.Port > 65535 {
		return nil, fmt.Errorf("QS_PORT: порт %d вне диапазона 1-65535", cfg.Port)
	}

	cfg.LogLevel, err = parseLogLevel(getEnvDefault("QS_LOG_LEVEL", "info"))
	if err != nil {
		return nil, fmt.Errorf("QS_LOG_LEVEL: %w", err)
	}

	cfg.LogFormat = getEnvDefault("QS_LOG_FORMAT", "json")
	if cfg.LogFormat != "json" && cfg.LogFormat != "text" {
		return nil, fmt.Errorf("QS_LOG_FORMAT: недопустимый формат %q, допустимые: json, text", cfg.LogFormat)
	}

	if cfg.HTTPReadTimeout, err = getEnvDuration("QS_HTTP_READ_TIMEOUT", 30*time.Second); err != nil {
		return nil, fmt.Errorf("QS_HTTP_READ_TIMEOUT: %w", err)
	}
	if cfg.HTTPWriteTimeout, err = getEnvDuration("QS_HTTP_WRITE_TIMEOUT", 60*time.Second); err != nil {
		return nil, fmt.Errorf("QS_HTTP_WRITE_TIMEOUT: %w", err)
	}
	if cfg.HTTPIdleTimeout, err = getEnvDuration("QS_HTTP_IDLE_TIMEOUT", 120*time.Second); err != nil {
		return nil, fmt.Errorf("QS_HTTP_IDLE_TIMEOUT: %w", err)
	}
	if cfg.ShutdownTimeout, err = getEnvDuration("QS_SHUTDOWN_TIMEOUT", 5*time.Second); err != nil {
		return nil, fmt.Errorf("QS_SHUTDOWN_TIMEOUT: %w", err)
	}

	// --- PostgreSQL ---

	if cfg.DBHost, err = getEnvRequired("QS_DB_HOST"); err != nil {
		return nil, err
	}
	if cfg.DBPort, err = getEnvInt("QS_DB_PORT", 5432); err != nil {
		return nil, fmt.Errorf("QS_DB_PORT: %w", err)
	}
	if cfg.DBName, err = getEnvRequired("QS_DB_NAME"); err != nil {
		return nil, err
	}
	if cfg.DBUser, err = getEnvRequired("QS_DB_USER"); err != nil {
		return nil, err
	}
	if cfg.DBPassword, err = getEnvRequired("QS_DB_PASSWORD"); err != nil {
		return nil, err
	}
	cfg.DBSSLMode = getEnvDefault("QS_DB_SSL_MODE", "disable")
	validSSLModes := map[string]bool{"disable": true, "require": true, "verify-ca": true, "verify-full": true}
	if !validSSLModes[cfg.DBSSLMode] {
		return nil, fmt.Errorf("QS_DB_SSL_MODE: недопустимое значение %q, допустимые: disable, require, verify-ca, verify-full", cfg.DBSSLMode)
	}

	// --- Хранилище ---

	cfg.StorageBackend = getEnvDefault("QS_STORAGE_BACKEND", StorageBackendFS)
	switch cfg.StorageBackend {
	case StorageBackendFS:
		cfg.DataDir = getEnvDefault("QS_DATA_DIR", "/var/lib/qr-studio/artifacts")
	case StorageBackendMinio:
		if cfg.MinioEndpoint, err = getEnvRequired("QS_MINIO_ENDPOINT"); err != nil {
			return nil, err
		}
		if cfg.MinioAccessKey, err = getEnvRequired("QS_MINIO_ACCESS_KEY"); err != nil {
			return nil, err
		}
		if cfg.MinioSecretKey, err = getEnvRequired("QS_MINIO_SECRET_KEY"); err != nil {
			return nil, err
		}
		cfg.MinioBucket = getEnvDefault("QS_MINIO_BUCKET", "qr-artifacts")
		if cfg.MinioUseSSL, err = getEnvBool("QS_MINIO_USE_SSL", false); err != nil {
			return nil, fmt.Errorf("QS_MINIO_USE_SSL: %w", err)
		}
	default:
		return nil, fmt.Errorf("QS_STORAGE_BACKEND: недопустимое значение %q, допустимые: fs, minio", cfg.StorageBackend)
	}

	concurrency, err := getEnvInt("QS_STORAGE_CONCURRENCY", 16)
	if err != nil {
		return nil, fmt.Errorf("QS_STORAGE_CONCURRENCY: %w", err)
	}
	if concurrency < 1 {
		return nil, fmt.Errorf("QS_STORAGE_CONCURRENCY: значение должно быть >= 1")
	}
	cfg.StorageConcurrency = int64(concurrency)

	// --- Рендеринг и квоты ---

	if cfg.RasterSize, err = getEnvInt("QS_RASTER_SIZE", 300); err != nil {
		return nil, fmt.Errorf("QS_RASTER_SIZE: %w", err)
	}
	if cfg.RasterSize < 64 || cfg.RasterSize > 4096 {
		return nil, fmt.Errorf("QS_RASTER_SIZE: размер %d вне диапазона 64-4096", cfg.RasterSize)
	}

	if cfg.FreeDailyLimit, err = getEnvInt("QS_FREE_DAILY_LIMIT", 3); err != nil {
		return nil, fmt.Errorf("QS_FREE_DAILY_LIMIT: %w", err)
	}
	if cfg.FreeDailyLimit < 0 {
		return nil, fmt.Errorf("QS_FREE_DAILY_LIMIT: значение должно быть >= 0")
	}

	if cfg.PersistTimeout, err = getEnvDurationFallback("QS_PERSIST_TIMEOUT", 30*time.Second); err != nil {
		return nil, fmt.Errorf("QS_PERSIST_TIMEOUT: %w", err)
	}

	maxLogo, err := getEnvInt("QS_MAX_LOGO_BYTES", 512*1024)
	if err != nil {
		return nil, fmt.Errorf("QS_MAX_LOGO_BYTES: %w", err)
	}
	cfg.MaxLogoBytes = int64(maxLogo)

	// --- Sweep ---

	if cfg.SweepInterval, err = getEnvDurationFallback("QS_SWEEP_INTERVAL", time.Hour); err != nil {
		return nil, fmt.Errorf("QS_SWEEP_INTERVAL: %w", err)
	}
	if cfg.SweepGrace, err = getEnvDurationFallback("QS_SWEEP_GRACE", time.Hour); err != nil {
		return nil, fmt.Errorf("QS_SWEEP_GRACE: %w", err)
	}
	if cfg.SweepGrace <= cfg.PersistTimeout {
		return nil, fmt.Errorf("QS_SWEEP_GRACE: %s должен быть больше QS_PERSIST_TIMEOUT (%s)", cfg.SweepGrace, cfg.PersistTimeout)
	}

	// --- Кэш ---

	if cfg.CacheSize, err = getEnvInt("QS_CACHE_SIZE", 1000); err != nil {
		return nil, fmt.Errorf("QS_CACHE_SIZE: %w", err)
	}
	if cfg.CacheSize < 1 {
		return nil, fmt.Errorf("QS_CACHE_SIZE: значение должно быть >= 1")
	}
	if cfg.CacheTTL, err = getEnvDurationFallback("QS_CACHE_TTL", 5*time.Minute); err != nil {
		return nil, fmt.Errorf("QS_CACHE_TTL: %w", err)
	}

	// --- JWT ---

	cfg.JWTJWKSURL = getEnvDefault("QS_JWT_JWKS_URL", "")
	cfg.JWTIssuer = getEnvDefault("QS_JWT_ISSUER", "")
	if cfg.JWTLeeway, err = getEnvDuration("QS_JWT_LEEWAY", 5*time.Second); err != nil {
		return nil, fmt.Errorf("QS_JWT_LEEWAY: %w", err)
	}
	if cfg.JWKSClientTimeout, err = getEnvDurationFallback("QS_JWKS_CLIENT_TIMEOUT", 10*time.Second); err != nil {
		return nil, fmt.Errorf("QS_JWKS_CLIENT_TIMEOUT: %w", err)
	}
	if cfg.JWKSRefreshInterval, err = getEnvDurationFallback("QS_JWKS_REFRESH_INTERVAL", 15*time.Minute); err != nil {
		return nil, fmt.Errorf("QS_JWKS_REFRESH_INTERVAL: %w", err)
	}

	// --- topologymetrics ---

	cfg.DephealthGroup = getEnvDefault("QS_DEPHEALTH_GROUP", "qr-studio")
	if cfg.DephealthCheckInterval, err = getEnvDurationFallback("QS_DEPHEALTH_CHECK_INTERVAL", 15*time.Second); err != nil {
		return nil, fmt.Errorf("QS_DEPHEALTH_CHECK_INTERVAL: %w", err)
	}

	return cfg, nil
}

// RequireAuth проверяет параметры, обязательные для HTTP-сервера.
// Команды migrate и sweep работают без JWKS.
func (c *Config) RequireAuth() error {
	if c.JWTJWKSURL == "" {
		return fmt.Errorf("QS_JWT_JWKS_URL: обязательная переменная окружения не задана")
	}
	return nil
}

// DatabaseDSN возвращает строку подключения к PostgreSQL для pgxpool.
func (c *Config) DatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBName, c.DBUser, c.DBPassword, c.DBSSLMode,
	)
}

// DatabaseURL возвращает URL PostgreSQL без пароля (для лейблов topologymetrics).
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s@%s:%d/%s", c.DBUser, c.DBHost, c.DBPort, c.DBName)
}

// MinioURL возвращает базовый URL MinIO или пустую строку для файлового хранилища.
func (c *Config) MinioURL() string {
	if c.StorageBackend != StorageBackendMinio {
		return ""
	}
	scheme := "http"
	if c.MinioUseSSL {
		scheme = "https"
	}
	return scheme + "://" + c.MinioEndpoint
}

// MigrateURL возвращает URL для golang-migrate (драйвер pgx5).
func (c *Config) MigrateURL() string {
	return fmt.Sprintf(
		"pgx5://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode,
	)
}

// SetupLogger настраивает глобальный slog-логгер на основе конфигурации.
func SetupLogger(cfg *Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}

	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}

// --- Вспомогательные функции ---

// getEnvRequired возвращает значение переменной окружения или ошибку, если она не задана.
func getEnvRequired(key string) (string, error) {
	val := os.Getenv(key)
	if val == "" {
		return "", fmt.Errorf("%s: обязательная переменная окружения не задана", key)
	}
	return val, nil
}

// getEnvDefault возвращает значение переменной окружения или значение по умолчанию.
func getEnvDefault(key, defaultVal string) string {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	return val
}

// getEnvInt возвращает целочисленное значение переменной окружения или значение по умолчанию.
func getEnvInt(key string, defaultVal int) (int, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("некорректное целое число: %q", val)
	}
	return n, nil
}

// getEnvDuration возвращает time.Duration из переменной окружения или значение по умолчанию.
func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	return d, nil
}

// getEnvDurationFallback возвращает time.Duration из переменной окружения.
// Если переменная не задана, используется fallbackVal.
// Если задана — парсится и валидируется (> 0).
func getEnvDurationFallback(key string, fallbackVal time.Duration) (time.Duration, error) {
	val := os.Getenv(key)
	if val == "" {
		return fallbackVal, nil
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return 0, fmt.Errorf("некорректная длительность: %q (используйте формат Go: 30s, 1h, 15m)", val)
	}
	if d <= 0 {
		return 0, fmt.Errorf("значение должно быть > 0")
	}
	return d, nil
}

// getEnvBool возвращает булево значение переменной окружения или значение по умолчанию.
func getEnvBool(key string, defaultVal bool) (bool, error) {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal, nil
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return false, fmt.Errorf("некорректное булево значение: %q (допустимые: true, false, 1, 0)", val)
	}
	return b, nil
}

// parseLogLevel преобразует строку уровня логирования в slog.Level.
func parseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("недопустимый уровень %q, допустимые: debug, info, warn, error", level)
	}
}
