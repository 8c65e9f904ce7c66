package service

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // драйвер pgx для database/sql
	"github.com/prometheus/client_golang/prometheus"
)

// unreachableDB — *sql.DB на закрытый порт: sql.Open не подключается,
// проверка PostgreSQL просто завершается ошибкой.
func unreachableDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("pgx", "postgres://qs:qs@127.0.0.1:1/qs?connect_timeout=1")
	if err != nil {
		t.Fatalf("sql.Open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newTestDephealth(t *testing.T, minioURL string) *DephealthService {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// Изолированный Prometheus registry для тестов
	reg := prometheus.NewRegistry()

	ds, err := NewDephealthServiceWithRegisterer(DephealthConfig{
		ServiceID:     "qr-studio-test",
		Group:         "qr-studio",
		DB:            unreachableDB(t),
		PostgresURL:   "postgres://qs:qs@127.0.0.1:1/qs",
		MinioURL:      minioURL,
		CheckInterval: time.Second,
	}, logger, reg)
	if err != nil {
		t.Fatalf("Ошибка создания DephealthService: %v", err)
	}
	return ds
}

func TestNewDephealthService_WithoutMinio(t *testing.T) {
	ds := newTestDephealth(t, "")
	if ds == nil {
		t.Fatal("DephealthService nil")
	}
}

func TestDephealthService_MinioHealth(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		healthy bool
	}{
		{"MinIO доступен", http.StatusOK, true},
		{"MinIO отвечает 503", http.StatusServiceUnavailable, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotPath atomic.Value
			mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotPath.Store(r.URL.Path)
				w.WriteHeader(tt.status)
			}))
			defer mockServer.Close()

			ds := newTestDephealth(t, mockServer.URL)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := ds.Start(ctx); err != nil {
				t.Fatalf("Ошибка запуска: %v", err)
			}

			// Даём время на первую проверку (интервал 1s + запас)
			time.Sleep(3 * time.Second)

			health := ds.Health()
			found := false
			for key, val := range health {
				if strings.HasPrefix(key, "minio:") {
					found = true
					if val != tt.healthy {
						t.Errorf("minio health = %v для ключа %q, ожидалось %v", val, key, tt.healthy)
					}
				}
			}
			if !found {
				t.Errorf("Нет записи для minio в Health(), keys=%v", healthKeys(health))
			}
			if p, _ := gotPath.Load().(string); p != minioHealthPath {
				t.Errorf("путь проверки = %q, ожидался %q", p, minioHealthPath)
			}

			// PostgreSQL на закрытом порту — готовность degraded, не fail
			status, msg := ds.CheckReady()
			if status != "degraded" || !strings.Contains(msg, "postgresql:") {
				t.Errorf("CheckReady() = %q, %q; ожидали degraded с postgresql", status, msg)
			}

			ds.Stop()
		})
	}
}

func TestReadinessFromHealth(t *testing.T) {
	tests := []struct {
		name       string
		health     map[string]bool
		wantStatus string
		wantMsg    string
	}{
		{"нет данных", nil, "ok", "не выполнялись"},
		{"все доступны", map[string]bool{"postgresql:db:5432": true, "minio:s3:9000": true}, "ok", "доступны"},
		{
			"часть недоступна",
			map[string]bool{"postgresql:db:5432": true, "minio:s3:9000": false, "a:b:1": false},
			"degraded",
			"недоступны: a:b:1, minio:s3:9000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := readinessFromHealth(tt.health)
			if status != tt.wantStatus || !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("readinessFromHealth() = %q, %q; ожидали %q, %q", status, msg, tt.wantStatus, tt.wantMsg)
			}
		})
	}
}

func healthKeys(m map[string]bool) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}
