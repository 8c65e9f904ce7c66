// Пакет filestore — хранение файлов артефактов на локальном диске.
// Запись: temp файл → fsync → atomic rename, поэтому файл под
// итоговым именем всегда полный.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
)

const tmpSuffix = ".tmp"

// FileStore — файлы артефактов в одной директории.
type FileStore struct {
	// dataDir — корневая директория хранения (QS_DATA_DIR)
	dataDir string
}

// New создаёт FileStore. Создаёт директорию, если она не существует.
func New(dataDir string) (*FileStore, error) {
	if err := os.MkdirAll(dataDir, 0o750); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию данных %s: %w", dataDir, err)
	}
	return &FileStore{dataDir: dataDir}, nil
}

// Save записывает data в новый файл <uuid>.<ext>.
// При ошибке temp файл удаляется.
func (fs *FileStore) Save(_ context.Context, data []byte, ext string) (string, error) {
	name, err := storage.NewName(ext)
	if err != nil {
		return "", err
	}
	fullPath := filepath.Join(fs.dataDir, name)
	tmpPath := fullPath + tmpSuffix

	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", fmt.Errorf("ошибка создания временного файла: %w", err)
	}

	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка записи данных: %w", err)
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка fsync: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка закрытия файла: %w", err)
	}

	if err := os.Rename(tmpPath, fullPath); err != nil {
		os.Remove(tmpPath)
		return "", fmt.Errorf("ошибка атомарного переименования: %w", err)
	}

	return name, nil
}

// Read читает файл целиком.
func (fs *FileStore) Read(_ context.Context, path string) ([]byte, error) {
	if err := storage.ValidatePath(path); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filepath.Join(fs.dataDir, path))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, path)
		}
		return nil, fmt.Errorf("ошибка чтения файла %s: %w", path, err)
	}
	return data, nil
}

// Delete удаляет файл. Возвращает nil, если файла уже нет.
func (fs *FileStore) Delete(_ context.Context, path string) error {
	if err := storage.ValidatePath(path); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(fs.dataDir, path))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("ошибка удаления файла %s: %w", path, err)
	}
	return nil
}

// List возвращает файлы артефактов. Временные и посторонние файлы пропускаются.
func (fs *FileStore) List(ctx context.Context) ([]storage.ObjectInfo, error) {
	entries, err := os.ReadDir(fs.dataDir)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения директории %s: %w", fs.dataDir, err)
	}

	result := make([]storage.ObjectInfo, 0, len(entries))
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		name := e.Name()
		if e.IsDir() || strings.HasSuffix(name, tmpSuffix) || !storage.IsArtifactPath(name) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			// Файл удалён между ReadDir и Stat
			if errors.Is(err, os.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("ошибка получения информации о файле %s: %w", name, err)
		}
		result = append(result, storage.ObjectInfo{
			Path:    name,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return result, nil
}

// Ping проверяет, что директория данных существует.
func (fs *FileStore) Ping(_ context.Context) error {
	info, err := os.Stat(fs.dataDir)
	if err != nil {
		return fmt.Errorf("директория данных недоступна: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s не является директорией", fs.dataDir)
	}
	return nil
}

// DataDir возвращает путь к директории данных.
func (fs *FileStore) DataDir() string {
	return fs.dataDir
}
