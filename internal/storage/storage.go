// Пакет storage — хранилище растровых файлов артефактов.
// Реализации: filestore (локальный диск) и miniostore (MinIO/S3).
// Файл записывается один раз под уникальным именем и не перезаписывается.
package storage

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
)

// Ошибки хранилища.
var (
	// ErrNotFound — файл не найден.
	ErrNotFound = errors.New("файл не найден в хранилище")
	// ErrInvalidPath — путь не является именем файла артефакта.
	ErrInvalidPath = errors.New("некорректный путь файла")
)

// ObjectInfo — сведения о сохранённом файле.
type ObjectInfo struct {
	// Path — относительный путь (имя) файла
	Path    string
	Size    int64
	ModTime time.Time
}

// Store — операции с файлами артефактов.
type Store interface {
	// Save записывает data под новым уникальным именем с расширением ext
	// и возвращает относительный путь.
	Save(ctx context.Context, data []byte, ext string) (string, error)
	// Read возвращает содержимое файла. Отсутствующий файл — ErrNotFound.
	Read(ctx context.Context, path string) ([]byte, error)
	// Delete удаляет файл. Удаление отсутствующего файла не является ошибкой.
	Delete(ctx context.Context, path string) error
	// List возвращает все файлы артефактов.
	List(ctx context.Context) ([]ObjectInfo, error)
	// Ping проверяет доступность хранилища.
	Ping(ctx context.Context) error
}

var (
	pathPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}\.[a-z]{2,4}$`)
	extPattern  = regexp.MustCompile(`^[a-z]{2,4}$`)
)

// NewName возвращает имя нового файла: <uuid>.<ext>.
func NewName(ext string) (string, error) {
	if !extPattern.MatchString(ext) {
		return "", fmt.Errorf("%w: расширение %q", ErrInvalidPath, ext)
	}
	return uuid.New().String() + "." + ext, nil
}

// ValidatePath проверяет, что path — имя файла артефакта без каталогов.
func ValidatePath(path string) error {
	if !pathPattern.MatchString(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}

// IsArtifactPath сообщает, похож ли path на имя файла артефакта.
// Используется при обходе хранилища, чтобы не трогать посторонние файлы.
func IsArtifactPath(path string) bool {
	return pathPattern.MatchString(path)
}

// ContentType возвращает MIME-тип по расширению файла артефакта.
func ContentType(ext string) string {
	switch ext {
	case "png":
		return "image/png"
	case "jpg", "jpeg":
		return "image/jpeg"
	case "svg":
		return "image/svg+xml"
	default:
		return "application/octet-stream"
	}
}

// ReadinessChecker — проверка готовности хранилища для health endpoint.
type ReadinessChecker struct {
	store Store
}

// NewReadinessChecker создаёт проверку готовности хранилища.
func NewReadinessChecker(store Store) *ReadinessChecker {
	return &ReadinessChecker{store: store}
}

// CheckReady возвращает статус ("ok", "fail") и сообщение.
func (c *ReadinessChecker) CheckReady() (status string, message string) {
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := c.store.Ping(ctx); err != nil {
		return "fail", fmt.Sprintf("хранилище недоступно: %v", err)
	}
	return "ok", "хранилище доступно"
}
