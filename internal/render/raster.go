package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"

	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

// Параметры растра по умолчанию.
const (
	DefaultRasterSize = 300
	DefaultQuietZone  = 4
	JPEGQuality       = 90
)

// RasterOptions — параметры растрового режима.
type RasterOptions struct {
	// Size — сторона изображения в пикселях
	Size int
	// QuietZone — светлая рамка вокруг символа в модулях
	QuietZone  int
	Foreground color.RGBA
	Background color.RGBA
}

// DefaultRasterOptions возвращает чёрный символ на белом фоне 300×300.
func DefaultRasterOptions() RasterOptions {
	return RasterOptions{
		Size:       DefaultRasterSize,
		QuietZone:  DefaultQuietZone,
		Foreground: color.RGBA{A: 0xff},
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
	}
}

// Raster рисует матрицу в изображение ровно Size×Size пикселей.
// Если на модуль приходится хотя бы один пиксель, модули одинаковые
// по размеру, а остаток распределяется по краям; иначе пиксели
// сопоставляются модулям пропорционально.
func Raster(m *symbol.Matrix, opts RasterOptions) *image.Paletted {
	if opts.Size <= 0 {
		opts.Size = DefaultRasterSize
	}
	if opts.QuietZone < 0 {
		opts.QuietZone = 0
	}

	palette := color.Palette{opts.Background, opts.Foreground}
	img := image.NewPaletted(image.Rect(0, 0, opts.Size, opts.Size), palette)

	total := m.Size + 2*opts.QuietZone
	scale := opts.Size / total
	offset := (opts.Size - scale*total) / 2

	for py := 0; py < opts.Size; py++ {
		for px := 0; px < opts.Size; px++ {
			var mx, my int
			if scale >= 1 {
				if px < offset || py < offset {
					continue
				}
				mx = (px-offset)/scale - opts.QuietZone
				my = (py-offset)/scale - opts.QuietZone
			} else {
				mx = px*total/opts.Size - opts.QuietZone
				my = py*total/opts.Size - opts.QuietZone
			}
			if m.At(mx, my) {
				img.SetColorIndex(px, py, 1)
			}
		}
	}
	return img
}

// EncodePNG записывает изображение в формате PNG.
func EncodePNG(w io.Writer, img image.Image) error {
	if err := png.Encode(w, img); err != nil {
		return fmt.Errorf("ошибка кодирования PNG: %w", err)
	}
	return nil
}

// EncodeJPEG записывает изображение в формате JPEG с качеством JPEGQuality.
func EncodeJPEG(w io.Writer, img image.Image) error {
	if err := jpeg.Encode(w, img, &jpeg.Options{Quality: JPEGQuality}); err != nil {
		return fmt.Errorf("ошибка кодирования JPEG: %w", err)
	}
	return nil
}

// PNGToJPEG перекодирует сохранённый PNG в JPEG.
func PNGToJPEG(data []byte) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("ошибка декодирования PNG: %w", err)
	}
	var buf bytes.Buffer
	if err := EncodeJPEG(&buf, img); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
