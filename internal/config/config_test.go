package config

import (
	"log/slog"
	"strings"
	"testing"
	"time"
)

// setEnvs устанавливает переменные окружения на время теста.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

// minimalEnvs возвращает минимальный набор обязательных переменных.
func minimalEnvs() map[string]string {
	return map[string]string{
		"QS_DB_HOST":     "localhost",
		"QS_DB_NAME":     "qrstudio",
		"QS_DB_USER":     "qrstudio",
		"QS_DB_PASSWORD": "secret",
	}
}

func TestLoad_MinimalConfig(t *testing.T) {
	setEnvs(t, minimalEnvs())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}

	if cfg.Port != 8040 {
		t.Errorf("Port = %d, ожидается 8040", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, ожидается Info", cfg.LogLevel)
	}
	if cfg.LogFormat != "json" {
		t.Errorf("LogFormat = %q, ожидается json", cfg.LogFormat)
	}
	if cfg.DBPort != 5432 {
		t.Errorf("DBPort = %d, ожидается 5432", cfg.DBPort)
	}
	if cfg.StorageBackend != StorageBackendFS {
		t.Errorf("StorageBackend = %q, ожидается fs", cfg.StorageBackend)
	}
	if cfg.DataDir != "/var/lib/qr-studio/artifacts" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}
	if cfg.StorageConcurrency != 16 {
		t.Errorf("StorageConcurrency = %d, ожидается 16", cfg.StorageConcurrency)
	}
	if cfg.RasterSize != 300 {
		t.Errorf("RasterSize = %d, ожидается 300", cfg.RasterSize)
	}
	if cfg.FreeDailyLimit != 3 {
		t.Errorf("FreeDailyLimit = %d, ожидается 3", cfg.FreeDailyLimit)
	}
	if cfg.PersistTimeout != 30*time.Second {
		t.Errorf("PersistTimeout = %v, ожидается 30s", cfg.PersistTimeout)
	}
	if cfg.SweepGrace != time.Hour {
		t.Errorf("SweepGrace = %v, ожидается 1h", cfg.SweepGrace)
	}
	if cfg.JWTJWKSURL != "" {
		t.Errorf("JWTJWKSURL = %q, ожидается пустая строка", cfg.JWTJWKSURL)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	for _, key := range []string{"QS_DB_HOST", "QS_DB_NAME", "QS_DB_USER", "QS_DB_PASSWORD"} {
		t.Run(key, func(t *testing.T) {
			envs := minimalEnvs()
			delete(envs, key)
			setEnvs(t, envs)
			t.Setenv(key, "")

			_, err := Load()
			if err == nil {
				t.Fatalf("ожидалась ошибка при отсутствии %s", key)
			}
			if !strings.Contains(err.Error(), key) {
				t.Errorf("ошибка %q должна содержать имя переменной %s", err, key)
			}
		})
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"порт не число", "QS_PORT", "abc"},
		{"порт вне диапазона", "QS_PORT", "70000"},
		{"уровень логов", "QS_LOG_LEVEL", "verbose"},
		{"формат логов", "QS_LOG_FORMAT", "xml"},
		{"ssl mode", "QS_DB_SSL_MODE", "prefer-maybe"},
		{"бэкенд", "QS_STORAGE_BACKEND", "ftp"},
		{"конкурентность", "QS_STORAGE_CONCURRENCY", "0"},
		{"размер растра", "QS_RASTER_SIZE", "10"},
		{"лимит", "QS_FREE_DAILY_LIMIT", "-1"},
		{"таймаут", "QS_PERSIST_TIMEOUT", "0s"},
		{"grace меньше таймаута", "QS_SWEEP_GRACE", "10s"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setEnvs(t, minimalEnvs())
			t.Setenv(tt.key, tt.val)

			if _, err := Load(); err == nil {
				t.Fatalf("ожидалась ошибка для %s=%q", tt.key, tt.val)
			}
		})
	}
}

func TestLoad_MinioBackend(t *testing.T) {
	setEnvs(t, minimalEnvs())
	t.Setenv("QS_STORAGE_BACKEND", "minio")

	if _, err := Load(); err == nil {
		t.Fatal("ожидалась ошибка: не заданы параметры MinIO")
	}

	t.Setenv("QS_MINIO_ENDPOINT", "minio:9000")
	t.Setenv("QS_MINIO_ACCESS_KEY", "minioadmin")
	t.Setenv("QS_MINIO_SECRET_KEY", "minioadmin")
	t.Setenv("QS_MINIO_USE_SSL", "true")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() вернул ошибку: %v", err)
	}
	if cfg.MinioBucket != "qr-artifacts" {
		t.Errorf("MinioBucket = %q, ожидается qr-artifacts", cfg.MinioBucket)
	}
	if !cfg.MinioUseSSL {
		t.Error("MinioUseSSL = false, ожидается true")
	}
}

func TestDatabaseURLs(t *testing.T) {
	cfg := &Config{
		DBHost: "db", DBPort: 5433, DBName: "qr", DBUser: "u", DBPassword: "p", DBSSLMode: "disable",
	}

	if got := cfg.DatabaseDSN(); got != "host=db port=5433 dbname=qr user=u password=p sslmode=disable" {
		t.Errorf("DatabaseDSN() = %q", got)
	}
	if got := cfg.MigrateURL(); got != "pgx5://u:p@db:5433/qr?sslmode=disable" {
		t.Errorf("MigrateURL() = %q", got)
	}
	if got := cfg.DatabaseURL(); strings.Contains(got, "p@") {
		t.Errorf("DatabaseURL() не должен содержать пароль: %q", got)
	}
}

func TestParseLogLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		"INFO":    slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
	}
	for in, want := range tests {
		got, err := parseLogLevel(in)
		if err != nil {
			t.Errorf("parseLogLevel(%q) ошибка: %v", in, err)
			continue
		}
		if got != want {
			t.Errorf("parseLogLevel(%q) = %v, ожидается %v", in, got, want)
		}
	}
}

func TestRequireAuth(t *testing.T) {
	cfg := &Config{}
	if err := cfg.RequireAuth(); err == nil {
		t.Error("ожидалась ошибка без QS_JWT_JWKS_URL")
	}
	cfg.JWTJWKSURL = "https://idp.example.com/certs"
	if err := cfg.RequireAuth(); err != nil {
		t.Errorf("RequireAuth() = %v, ожидался nil", err)
	}
}
