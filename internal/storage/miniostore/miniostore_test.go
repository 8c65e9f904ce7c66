package miniostore

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
)

// setupMinio запускает MinIO в Docker-контейнере и возвращает Store.
func setupMinio(t *testing.T) *Store {
	t.Helper()

	if os.Getenv("TEST_INTEGRATION") == "" {
		t.Skip("Пропуск интеграционного теста: TEST_INTEGRATION не установлена")
	}

	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "docker.io/minio/minio:latest",
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     "minioadmin",
				"MINIO_ROOT_PASSWORD": "minioadmin",
			},
			Cmd: []string{"server", "/data"},
			WaitingFor: wait.ForHTTP("/minio/health/live").
				WithPort("9000/tcp").
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Не удалось запустить MinIO контейнер: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Logf("Ошибка остановки контейнера: %v", err)
		}
	})

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	if err != nil {
		t.Fatalf("Не удалось получить адрес контейнера: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	store, err := New(ctx, Config{
		Endpoint:  endpoint,
		AccessKey: "minioadmin",
		SecretKey: "minioadmin",
		Bucket:    "qr-test",
	}, logger)
	if err != nil {
		t.Fatalf("New() ошибка: %v", err)
	}
	return store
}

func TestStore_Lifecycle(t *testing.T) {
	store := setupMinio(t)
	ctx := context.Background()

	if err := store.Ping(ctx); err != nil {
		t.Fatalf("Ping() ошибка: %v", err)
	}

	content := []byte("\x89PNG объект")
	path, err := store.Save(ctx, content, "png")
	if err != nil {
		t.Fatalf("Save() ошибка: %v", err)
	}

	data, err := store.Read(ctx, path)
	if err != nil {
		t.Fatalf("Read() ошибка: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("содержимое не совпадает")
	}

	list, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() ошибка: %v", err)
	}
	if len(list) != 1 || list[0].Path != path || list[0].ModTime.IsZero() {
		t.Errorf("List() = %+v", list)
	}

	if err := store.Delete(ctx, path); err != nil {
		t.Fatalf("Delete() ошибка: %v", err)
	}
	if _, err := store.Read(ctx, path); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("после удаления ожидалась ErrNotFound, получено %v", err)
	}
	if err := store.Delete(ctx, path); err != nil {
		t.Errorf("повторное удаление: %v", err)
	}
}
