package filestore

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
)

func TestNew_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "artifacts")

	fs, err := New(dir)
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}
	if fs.DataDir() != dir {
		t.Errorf("ожидался путь %s, получен %s", dir, fs.DataDir())
	}
	if err := fs.Ping(context.Background()); err != nil {
		t.Errorf("Ping() = %v", err)
	}
}

func TestSaveReadDelete(t *testing.T) {
	ctx := context.Background()
	fs, err := New(t.TempDir())
	if err != nil {
		t.Fatalf("ошибка создания FileStore: %v", err)
	}

	content := []byte("\x89PNG тестовые данные")
	path, err := fs.Save(ctx, content, "png")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}
	if !strings.HasSuffix(path, ".png") || strings.Contains(path, string(os.PathSeparator)) {
		t.Errorf("некорректное имя файла: %s", path)
	}
	if _, err := os.Stat(filepath.Join(fs.DataDir(), path+tmpSuffix)); !os.IsNotExist(err) {
		t.Error("временный файл не удалён после rename")
	}

	data, err := fs.Read(ctx, path)
	if err != nil {
		t.Fatalf("ошибка чтения: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("содержимое не совпадает")
	}

	if err := fs.Delete(ctx, path); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if _, err := fs.Read(ctx, path); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("после удаления ожидалась ErrNotFound, получено %v", err)
	}
	// Повторное удаление — без ошибки
	if err := fs.Delete(ctx, path); err != nil {
		t.Errorf("повторное удаление: %v", err)
	}
}

func TestSave_UniqueNames(t *testing.T) {
	ctx := context.Background()
	fs, _ := New(t.TempDir())

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		path, err := fs.Save(ctx, []byte("x"), "png")
		if err != nil {
			t.Fatalf("ошибка сохранения: %v", err)
		}
		if seen[path] {
			t.Fatalf("повтор имени файла: %s", path)
		}
		seen[path] = true
	}
}

func TestSave_InvalidExt(t *testing.T) {
	fs, _ := New(t.TempDir())
	if _, err := fs.Save(context.Background(), []byte("x"), "../png"); !errors.Is(err, storage.ErrInvalidPath) {
		t.Errorf("ожидалась ErrInvalidPath, получено %v", err)
	}
}

func TestPathTraversalRejected(t *testing.T) {
	ctx := context.Background()
	fs, _ := New(t.TempDir())

	for _, p := range []string{"../etc/passwd", "/etc/passwd", "a/b.png", ""} {
		if _, err := fs.Read(ctx, p); !errors.Is(err, storage.ErrInvalidPath) {
			t.Errorf("Read(%q): ожидалась ErrInvalidPath, получено %v", p, err)
		}
		if err := fs.Delete(ctx, p); !errors.Is(err, storage.ErrInvalidPath) {
			t.Errorf("Delete(%q): ожидалась ErrInvalidPath, получено %v", p, err)
		}
	}
}

func TestList_SkipsForeignFiles(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	fs, _ := New(dir)

	path, err := fs.Save(ctx, []byte("data"), "png")
	if err != nil {
		t.Fatalf("ошибка сохранения: %v", err)
	}

	// Посторонние файлы и незавершённая запись
	os.WriteFile(filepath.Join(dir, "README"), []byte("x"), 0o640)
	os.WriteFile(filepath.Join(dir, path+tmpSuffix), []byte("x"), 0o640)
	os.Mkdir(filepath.Join(dir, "sub"), 0o750)

	list, err := fs.List(ctx)
	if err != nil {
		t.Fatalf("ошибка List: %v", err)
	}
	if len(list) != 1 || list[0].Path != path {
		t.Fatalf("List() = %+v, ожидался только %s", list, path)
	}
	if list[0].Size != 4 || list[0].ModTime.IsZero() {
		t.Errorf("некорректные сведения: %+v", list[0])
	}
}
