// style.go — разбор параметров оформления векторного режима.
package service

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/qr-studio/internal/render"
)

var styleFallbacksTotal = promauto.NewCounter(prometheus.CounterOpts{
	Name: "qs_style_fallbacks_total",
	Help: "Количество запросов с неизвестной формой модуля (отрисованы квадратами).",
})

// StyleParams — оформление стилизованного SVG в том виде, в каком оно пришло от клиента.
type StyleParams struct {
	// Shape — форма модулей; неизвестная заменяется квадратом
	Shape string
	// Foreground, Background — цвета #RRGGBB или #RGB; пусто — по умолчанию
	Foreground string
	Background string
	// Logo — PNG или JPEG; пусто — без логотипа
	Logo []byte
	// LogoRatio — доля ширины символа под логотип, ограничивается render.MaxLogoRatio
	LogoRatio float64
}

// VectorOptions преобразует параметры оформления в render.VectorOptions.
// Некорректный цвет или логотип — ошибка валидации, неизвестная форма — нет.
func VectorOptions(p StyleParams, maxLogoBytes int64, logger *slog.Logger) (render.VectorOptions, error) {
	opts := render.DefaultVectorOptions()

	shape, ok := render.ParseShape(p.Shape)
	if !ok {
		styleFallbacksTotal.Inc()
		logger.Warn("Неизвестная форма модуля, используется square",
			slog.String("shape", p.Shape),
		)
	}
	opts.Shape = shape

	if p.Foreground != "" {
		c, err := render.ParseColor(p.Foreground)
		if err != nil {
			return opts, err
		}
		opts.Foreground = c
	}
	if p.Background != "" {
		c, err := render.ParseColor(p.Background)
		if err != nil {
			return opts, err
		}
		opts.Background = c
	}

	if len(p.Logo) > 0 {
		logo, err := render.DecodeLogo(p.Logo, maxLogoBytes)
		if err != nil {
			return opts, err
		}
		opts.Logo = logo
		opts.LogoRatio = p.LogoRatio
	}

	return opts, nil
}
