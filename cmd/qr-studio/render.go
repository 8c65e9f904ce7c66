package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/payload"
	"github.com/bigkaa/goartstore/qr-studio/internal/render"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

// renderOptions — параметры локального рендеринга без БД и хранилища.
type renderOptions struct {
	kind         string
	data         string
	format       string
	size         int
	shape        string
	foreground   string
	background   string
	logoPath     string
	logoRatio    float64
	maxLogoBytes int64
	out          string
}

func renderCmd() *cobra.Command {
	opts := renderOptions{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Сгенерировать QR-символ локально",
		Long: `Кодирует структурированные данные и записывает изображение в файл или stdout.
Не обращается к базе данных и хранилищу, квота не расходуется.

Примеры:
  qr-studio render --kind url --data '{"url":"https://example.com"}' --out qr.png
  qr-studio render --kind sms --data '{"number":"+15551234","message":"Hi"}' --format svg --shape dot`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			w := cmd.OutOrStdout()
			if opts.out != "" && opts.out != "-" {
				f, err := os.Create(opts.out)
				if err != nil {
					return fmt.Errorf("ошибка создания файла %q: %w", opts.out, err)
				}
				defer f.Close()
				w = f
			}
			logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: slog.LevelWarn}))
			return renderArtifact(opts, w, logger)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.kind, "kind", "", "тип данных: sms, mail, wifi, vcard, url")
	flags.StringVar(&opts.data, "data", "", "данные в JSON; @path — прочитать из файла")
	flags.StringVar(&opts.format, "format", "png", "формат: png, jpeg, svg")
	flags.IntVar(&opts.size, "size", render.DefaultRasterSize, "сторона растра в пикселях")
	flags.StringVar(&opts.shape, "shape", "", "форма модулей svg")
	flags.StringVar(&opts.foreground, "fg", "", "цвет модулей #RRGGBB")
	flags.StringVar(&opts.background, "bg", "", "цвет фона #RRGGBB")
	flags.StringVar(&opts.logoPath, "logo", "", "PNG или JPEG логотип для svg")
	flags.Float64Var(&opts.logoRatio, "logo-ratio", 0, "доля ширины символа под логотип")
	flags.Int64Var(&opts.maxLogoBytes, "max-logo-bytes", 512<<10, "максимальный размер логотипа")
	flags.StringVar(&opts.out, "out", "", "файл результата; пусто или - для stdout")
	_ = cmd.MarkFlagRequired("kind")
	_ = cmd.MarkFlagRequired("data")

	return cmd
}

// renderArtifact кодирует данные и пишет изображение в w.
func renderArtifact(opts renderOptions, w io.Writer, logger *slog.Logger) error {
	data := []byte(opts.data)
	if len(opts.data) > 1 && opts.data[0] == '@' {
		raw, err := os.ReadFile(opts.data[1:])
		if err != nil {
			return fmt.Errorf("ошибка чтения данных: %w", err)
		}
		data = raw
	}

	format, err := service.ParseFormat(opts.format)
	if err != nil {
		return err
	}

	if format == service.FormatSVG {
		style := service.StyleParams{
			Shape:      opts.shape,
			Foreground: opts.foreground,
			Background: opts.background,
			LogoRatio:  opts.logoRatio,
		}
		if opts.logoPath != "" {
			logo, err := os.ReadFile(opts.logoPath)
			if err != nil {
				return fmt.Errorf("ошибка чтения логотипа: %w", err)
			}
			style.Logo = logo
		}
		svg, err := service.NewPreviewService(opts.maxLogoBytes, logger).Preview(context.Background(), service.PreviewParams{
			Kind:  model.Kind(opts.kind),
			Data:  json.RawMessage(data),
			Style: style,
		})
		if err != nil {
			return err
		}
		_, err = w.Write(svg)
		return err
	}

	canonical, err := payload.Encode(model.Kind(opts.kind), data)
	if err != nil {
		return err
	}
	m, err := symbol.Generate(canonical)
	if err != nil {
		return err
	}

	rasterOpts := render.DefaultRasterOptions()
	rasterOpts.Size = opts.size
	if opts.foreground != "" {
		if rasterOpts.Foreground, err = render.ParseColor(opts.foreground); err != nil {
			return err
		}
	}
	if opts.background != "" {
		if rasterOpts.Background, err = render.ParseColor(opts.background); err != nil {
			return err
		}
	}
	img := render.Raster(m, rasterOpts)

	var buf bytes.Buffer
	if format == service.FormatJPEG {
		err = render.EncodeJPEG(&buf, img)
	} else {
		err = render.EncodePNG(&buf, img)
	}
	if err != nil {
		return err
	}
	_, err = w.Write(buf.Bytes())
	return err
}
