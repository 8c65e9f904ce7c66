package main

import (
	"bytes"
	"errors"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bigkaa/goartstore/qr-studio/internal/payload"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
)

const urlData = `{"url":"https://example.com"}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRenderArtifact_PNG(t *testing.T) {
	var buf bytes.Buffer
	err := renderArtifact(renderOptions{kind: "url", data: urlData, format: "png", size: 120}, &buf, testLogger())
	if err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}

	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("результат не PNG: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 120 {
		t.Errorf("размер %dx%d, ожидали 120x120", b.Dx(), b.Dy())
	}
}

func TestRenderArtifact_JPEGWithColors(t *testing.T) {
	var buf bytes.Buffer
	opts := renderOptions{kind: "url", data: urlData, format: "jpg", size: 100, foreground: "#123456", background: "#fff"}
	if err := renderArtifact(opts, &buf, testLogger()); err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}
	if _, err := jpeg.Decode(&buf); err != nil {
		t.Fatalf("результат не JPEG: %v", err)
	}
}

func TestRenderArtifact_SVG(t *testing.T) {
	var buf bytes.Buffer
	opts := renderOptions{kind: "sms", data: `{"number":"+15551234","message":"Hi"}`, format: "svg", shape: "dot"}
	if err := renderArtifact(opts, &buf, testLogger()); err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}
	out := buf.String()
	if !strings.HasPrefix(strings.TrimSpace(out), "<?xml") {
		t.Errorf("ожидали SVG-документ, получено %.40q", out)
	}
	if !strings.Contains(out, "<circle") {
		t.Error("форма dot должна давать круги")
	}
}

func TestRenderArtifact_DataFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	if err := os.WriteFile(path, []byte(urlData), 0o600); err != nil {
		t.Fatal(err)
	}

	var buf bytes.Buffer
	if err := renderArtifact(renderOptions{kind: "url", data: "@" + path, format: "png"}, &buf, testLogger()); err != nil {
		t.Fatalf("renderArtifact: %v", err)
	}
	if buf.Len() == 0 {
		t.Error("пустой результат")
	}
}

func TestRenderArtifact_Errors(t *testing.T) {
	tests := []struct {
		name string
		opts renderOptions
		want error
	}{
		{"неизвестный формат", renderOptions{kind: "url", data: urlData, format: "gif"}, service.ErrUnsupportedFormat},
		{"неизвестный тип", renderOptions{kind: "fax", data: urlData, format: "png"}, payload.ErrUnknownKind},
		{"нет обязательного поля", renderOptions{kind: "url", data: `{}`, format: "png"}, payload.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := renderArtifact(tt.opts, &buf, testLogger())
			if !errors.Is(err, tt.want) {
				t.Fatalf("ошибка %v, ожидали %v", err, tt.want)
			}
			if buf.Len() != 0 {
				t.Error("при ошибке ничего не должно записываться")
			}
		})
	}
}

func TestRenderCmd_RequiresFlags(t *testing.T) {
	cmd := renderCmd()
	cmd.SetArgs([]string{"--kind", "url"})
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	if err := cmd.Execute(); err == nil {
		t.Fatal("ожидали ошибку без --data")
	}
}

func TestRenderCmd_WritesFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "qr.png")
	cmd := renderCmd()
	cmd.SetArgs([]string{"--kind", "url", "--data", urlData, "--out", out})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if _, err := png.Decode(f); err != nil {
		t.Fatalf("файл не PNG: %v", err)
	}
}
