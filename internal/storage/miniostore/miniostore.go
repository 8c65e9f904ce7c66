// Пакет miniostore — хранение файлов артефактов в бакете MinIO/S3.
package miniostore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
)

// Config — параметры подключения к MinIO.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store — файлы артефактов как объекты одного бакета.
type Store struct {
	client *minio.Client
	bucket string
	logger *slog.Logger
}

// New создаёт клиент MinIO и создаёт бакет, если его нет.
func New(ctx context.Context, cfg Config, logger *slog.Logger) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации клиента MinIO: %w", err)
	}

	logger = logger.With(slog.String("component", "miniostore"), slog.String("bucket", cfg.Bucket))

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки существования бакета %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("ошибка создания бакета %q: %w", cfg.Bucket, err)
		}
		logger.Info("Бакет создан")
	}

	logger.Info("Клиент MinIO инициализирован", slog.String("endpoint", cfg.Endpoint))

	return &Store{client: client, bucket: cfg.Bucket, logger: logger}, nil
}

// Save загружает data как объект <uuid>.<ext>.
func (s *Store) Save(ctx context.Context, data []byte, ext string) (string, error) {
	name, err := storage.NewName(ext)
	if err != nil {
		return "", err
	}

	_, err = s.client.PutObject(ctx, s.bucket, name, bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: storage.ContentType(ext)})
	if err != nil {
		return "", fmt.Errorf("ошибка загрузки объекта %s в MinIO: %w", name, err)
	}

	s.logger.Debug("Объект загружен", slog.String("path", name), slog.Int("size", len(data)))
	return name, nil
}

// Read скачивает объект целиком.
func (s *Store) Read(ctx context.Context, path string) ([]byte, error) {
	if err := storage.ValidatePath(path); err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, path, minio.GetObjectOptions{})
	if err != nil {
		return nil, s.mapError(path, err)
	}
	defer obj.Close()

	// GetObject ленивый: NoSuchKey приходит при первом чтении
	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, s.mapError(path, err)
	}
	return data, nil
}

// Delete удаляет объект. Удаление отсутствующего объекта в S3 успешно.
func (s *Store) Delete(ctx context.Context, path string) error {
	if err := storage.ValidatePath(path); err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, path, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("ошибка удаления объекта %s из MinIO: %w", path, err)
	}
	return nil
}

// List возвращает объекты артефактов в корне бакета.
func (s *Store) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	var result []storage.ObjectInfo
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("ошибка получения списка объектов MinIO: %w", obj.Err)
		}
		if !storage.IsArtifactPath(obj.Key) {
			continue
		}
		result = append(result, storage.ObjectInfo{
			Path:    obj.Key,
			Size:    obj.Size,
			ModTime: obj.LastModified,
		})
	}
	return result, nil
}

// Ping проверяет доступность бакета.
func (s *Store) Ping(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return fmt.Errorf("MinIO недоступен: %w", err)
	}
	if !exists {
		return fmt.Errorf("бакет %q не существует", s.bucket)
	}
	return nil
}

// mapError преобразует NoSuchKey в storage.ErrNotFound.
func (s *Store) mapError(path string, err error) error {
	if minio.ToErrorResponse(err).Code == "NoSuchKey" {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, path)
	}
	return fmt.Errorf("ошибка получения объекта %s из MinIO: %w", path, err)
}
