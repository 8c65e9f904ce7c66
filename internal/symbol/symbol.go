// Пакет symbol — граница с библиотекой генерации QR-символов.
// Символ всегда строится с максимальным уровнем коррекции ошибок (H),
// чтобы логотип в центре не мешал распознаванию.
package symbol

import (
	"errors"
	"fmt"
	"image"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// FinderSize — сторона квадрата поискового узора в модулях.
const FinderSize = 7

// ErrEncodingTooLarge — полезная нагрузка не помещается в символ
// при уровне коррекции H.
var ErrEncodingTooLarge = errors.New("данные не помещаются в QR-символ")

// Matrix — квадратная матрица модулей QR-символа без рамки.
type Matrix struct {
	// Size — число модулей по стороне
	Size int
	// Modules — модули построчно: Modules[y][x] == true для тёмного модуля
	Modules [][]bool
	// Version — версия символа (1..40)
	Version int
	// Finders — левые верхние углы трёх поисковых узоров
	Finders [3]image.Point
}

// Generate строит матрицу для текста payload.
func Generate(payload string) (*Matrix, error) {
	q, err := qrcode.New(payload, qrcode.Highest)
	if err != nil {
		if strings.Contains(err.Error(), "too long") {
			return nil, fmt.Errorf("%w: %d байт", ErrEncodingTooLarge, len(payload))
		}
		return nil, fmt.Errorf("ошибка генерации QR-символа: %w", err)
	}
	q.DisableBorder = true

	bitmap := q.Bitmap()
	size := len(bitmap)

	return &Matrix{
		Size:    size,
		Modules: bitmap,
		Version: q.VersionNumber,
		Finders: [3]image.Point{
			{X: 0, Y: 0},
			{X: size - FinderSize, Y: 0},
			{X: 0, Y: size - FinderSize},
		},
	}, nil
}

// At сообщает, тёмный ли модуль (x, y). Координаты вне матрицы — светлые.
func (m *Matrix) At(x, y int) bool {
	if x < 0 || y < 0 || x >= m.Size || y >= m.Size {
		return false
	}
	return m.Modules[y][x]
}

// InFinder сообщает, принадлежит ли модуль (x, y) одному из блоков 7×7
// поисковых узоров.
func (m *Matrix) InFinder(x, y int) bool {
	for _, f := range m.Finders {
		if x >= f.X && x < f.X+FinderSize && y >= f.Y && y < f.Y+FinderSize {
			return true
		}
	}
	return false
}
