package render

import (
	"fmt"
	"image"
	"image/color"
	"io"

	svg "github.com/ajstarks/svgo"

	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

// DefaultModulePx — сторона модуля в SVG-единицах.
const DefaultModulePx = 10

// VectorOptions — параметры стилизованного векторного режима.
type VectorOptions struct {
	Shape      Shape
	Foreground color.RGBA
	Background color.RGBA
	// ModulePx — сторона модуля в SVG-единицах
	ModulePx  int
	QuietZone int
	// Logo — необязательный логотип в центре символа
	Logo image.Image
	// LogoRatio — доля ширины символа под подложку логотипа, не больше MaxLogoRatio
	LogoRatio float64
}

// DefaultVectorOptions возвращает квадратные чёрные модули на белом фоне.
func DefaultVectorOptions() VectorOptions {
	return VectorOptions{
		Shape:      ShapeSquare,
		Foreground: color.RGBA{A: 0xff},
		Background: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		ModulePx:   DefaultModulePx,
		QuietZone:  DefaultQuietZone,
	}
}

func (o VectorOptions) normalized() VectorOptions {
	if o.ModulePx <= 0 {
		o.ModulePx = DefaultModulePx
	}
	if o.QuietZone < 0 {
		o.QuietZone = 0
	}
	return o
}

// Cell — тёмный модуль с выбранной формой.
type Cell struct {
	X, Y  int
	Shape Shape
}

// Layout сопоставляет каждому тёмному модулю форму через ModuleShape.
// Порядок: построчно, слева направо.
func Layout(m *symbol.Matrix, opts VectorOptions) []Cell {
	cells := make([]Cell, 0, m.Size*m.Size/2)
	for y := 0; y < m.Size; y++ {
		for x := 0; x < m.Size; x++ {
			if !m.At(x, y) {
				continue
			}
			cells = append(cells, Cell{X: x, Y: y, Shape: ModuleShape(m, x, y, opts.Shape)})
		}
	}
	return cells
}

// WriteSVG записывает стилизованный символ в формате SVG.
func WriteSVG(w io.Writer, m *symbol.Matrix, opts VectorOptions) error {
	opts = opts.normalized()
	ew := &errWriter{w: w}

	mp := opts.ModulePx
	side := (m.Size + 2*opts.QuietZone) * mp
	origin := opts.QuietZone * mp
	fill := "fill:" + Hex(opts.Foreground)

	canvas := svg.New(ew)
	canvas.Start(side, side)
	canvas.Rect(0, 0, side, side, "fill:"+Hex(opts.Background))

	canvas.Gstyle(fill)
	for _, c := range Layout(m, opts) {
		drawModule(canvas, origin+c.X*mp, origin+c.Y*mp, mp, c.Shape)
	}
	canvas.Gend()

	if opts.Logo != nil {
		box := LogoBox(m.Size, mp, opts.QuietZone, opts.LogoRatio)
		canvas.Rect(box.Min.X, box.Min.Y, box.Dx(), box.Dy(), "fill:"+Hex(opts.Background))

		pad := int(float64(box.Dx()) * logoPaddingRatio)
		inner := box.Dx() - 2*pad
		if inner > 0 {
			scaled := fitLogo(opts.Logo, inner)
			uri, err := logoDataURI(scaled)
			if err != nil {
				return err
			}
			sb := scaled.Bounds()
			x := box.Min.X + (box.Dx()-sb.Dx())/2
			y := box.Min.Y + (box.Dy()-sb.Dy())/2
			canvas.Image(x, y, sb.Dx(), sb.Dy(), uri)
		}
	}

	canvas.End()
	if ew.err != nil {
		return fmt.Errorf("ошибка записи SVG: %w", ew.err)
	}
	return nil
}

// drawModule рисует один модуль со стороной mp в точке (x, y).
func drawModule(canvas *svg.SVG, x, y, mp int, shape Shape) {
	switch shape {
	case ShapeDot:
		canvas.Circle(x+mp/2, y+mp/2, mp/2)
	case ShapeRounded:
		r := max(mp/3, 1)
		canvas.Roundrect(x, y, mp, mp, r, r)
	case ShapeDiamond:
		canvas.Polygon(
			[]int{x + mp/2, x + mp, x + mp/2, x},
			[]int{y, y + mp/2, y + mp, y + mp/2},
		)
	case ShapeTriangle:
		canvas.Polygon(
			[]int{x + mp/2, x + mp, x},
			[]int{y, y + mp, y + mp},
		)
	default:
		canvas.Rect(x, y, mp, mp)
	}
}

// errWriter запоминает первую ошибку записи: svgo не возвращает ошибки.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
