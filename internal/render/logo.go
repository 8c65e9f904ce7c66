package render

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
)

// MaxLogoRatio — жёсткий потолок доли ширины символа под логотип.
// Запросы больше потолка ограничиваются, а не отклоняются.
const MaxLogoRatio = 0.20

// logoPaddingRatio — доля стороны подложки, оставляемая полем вокруг логотипа.
const logoPaddingRatio = 0.1

// DecodeLogo декодирует логотип PNG или JPEG размером не более maxBytes.
func DecodeLogo(data []byte, maxBytes int64) (image.Image, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("%w: пустые данные", ErrInvalidLogo)
	}
	if maxBytes > 0 && int64(len(data)) > maxBytes {
		return nil, fmt.Errorf("%w: размер %d байт превышает лимит %d", ErrInvalidLogo, len(data), maxBytes)
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidLogo, err)
	}
	if format != "png" && format != "jpeg" {
		return nil, fmt.Errorf("%w: неподдерживаемый формат %s", ErrInvalidLogo, format)
	}
	if b := img.Bounds(); b.Dx() == 0 || b.Dy() == 0 {
		return nil, fmt.Errorf("%w: пустое изображение", ErrInvalidLogo)
	}
	return img, nil
}

// clampLogoRatio ограничивает запрошенную долю диапазоном (0, MaxLogoRatio].
// Нулевая или отрицательная доля означает максимум.
func clampLogoRatio(ratio float64) float64 {
	if ratio <= 0 || ratio > MaxLogoRatio {
		return MaxLogoRatio
	}
	return ratio
}

// LogoBox возвращает квадрат непрозрачной подложки логотипа в пикселях
// относительно всего холста. Сторона не превышает MaxLogoRatio от ширины символа.
func LogoBox(symbolSize, modulePx, quietZone int, ratio float64) image.Rectangle {
	symbolPx := symbolSize * modulePx
	side := int(float64(symbolPx) * clampLogoRatio(ratio))
	canvas := symbolPx + 2*quietZone*modulePx
	origin := (canvas - side) / 2
	return image.Rect(origin, origin, origin+side, origin+side)
}

// fitLogo масштабирует логотип (CatmullRom) с сохранением пропорций
// так, чтобы он вписывался в квадрат side×side.
func fitLogo(logo image.Image, side int) *image.RGBA {
	sb := logo.Bounds()
	w, h := side, side
	if sb.Dx() > sb.Dy() {
		h = side * sb.Dy() / sb.Dx()
	} else if sb.Dy() > sb.Dx() {
		w = side * sb.Dx() / sb.Dy()
	}
	w, h = max(w, 1), max(h, 1)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), logo, sb, draw.Over, nil)
	return dst
}

// logoDataURI кодирует изображение как data:image/png;base64 для <image>.
func logoDataURI(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return "", fmt.Errorf("ошибка кодирования логотипа: %w", err)
	}
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}
