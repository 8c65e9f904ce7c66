// Пакет render — отрисовка матрицы QR-символа в растровое изображение
// (хранение, скачивание) и в стилизованный SVG (предпросмотр).
package render

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

// Ошибки рендеринга.
var (
	// ErrInvalidColor — цвет не в формате #RRGGBB или #RGB.
	ErrInvalidColor = errors.New("некорректный цвет")
	// ErrInvalidLogo — логотип не декодируется или превышает лимит размера.
	ErrInvalidLogo = errors.New("некорректный логотип")
)

// Shape — форма тёмного модуля в векторном режиме. Закрытый набор значений.
type Shape string

const (
	ShapeSquare   Shape = "square"
	ShapeDot      Shape = "dot"
	ShapeRounded  Shape = "rounded"
	ShapeDiamond  Shape = "diamond"
	ShapeTriangle Shape = "triangle"
)

// Shapes — все поддерживаемые формы.
var Shapes = []Shape{ShapeSquare, ShapeDot, ShapeRounded, ShapeDiamond, ShapeTriangle}

// ParseShape возвращает форму по идентификатору. Пустой идентификатор
// означает квадрат. Для неизвестного идентификатора возвращает
// ShapeSquare и ok = false: стиль деградирует, рендер не прерывается.
func ParseShape(s string) (shape Shape, ok bool) {
	switch Shape(strings.ToLower(strings.TrimSpace(s))) {
	case "", ShapeSquare:
		return ShapeSquare, true
	case ShapeDot:
		return ShapeDot, true
	case ShapeRounded, "rounded-square":
		return ShapeRounded, true
	case ShapeDiamond:
		return ShapeDiamond, true
	case ShapeTriangle:
		return ShapeTriangle, true
	default:
		return ShapeSquare, false
	}
}

// ModuleShape — полная функция выбора формы модуля (x, y) для стиля style.
// Модули поисковых узоров всегда квадратные: сканеры опираются на их
// точный силуэт.
func ModuleShape(m *symbol.Matrix, x, y int, style Shape) Shape {
	if m.InFinder(x, y) {
		return ShapeSquare
	}
	switch style {
	case ShapeSquare, ShapeDot, ShapeRounded, ShapeDiamond, ShapeTriangle:
		return style
	default:
		return ShapeSquare
	}
}

// ParseColor разбирает цвет #RRGGBB или #RGB.
func ParseColor(s string) (color.RGBA, error) {
	hex, ok := strings.CutPrefix(strings.TrimSpace(s), "#")
	if !ok {
		return color.RGBA{}, fmt.Errorf("%w: %q (ожидается #RRGGBB или #RGB)", ErrInvalidColor, s)
	}
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q (ожидается #RRGGBB или #RGB)", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, nil
}

// Hex возвращает цвет в виде #rrggbb (альфа-канал игнорируется).
func Hex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
