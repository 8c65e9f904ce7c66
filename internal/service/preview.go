// preview.go — предпросмотр стилизованного SVG без сохранения.
package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/payload"
)

// PreviewParams — данные и оформление предпросмотра.
type PreviewParams struct {
	Kind  model.Kind
	Data  json.RawMessage
	Style StyleParams
}

// PreviewService — кодирование, символ и SVG без обращения к хранилищу и БД.
type PreviewService struct {
	maxLogoBytes int64
	logger       *slog.Logger
}

// NewPreviewService создаёт сервис предпросмотра.
func NewPreviewService(maxLogoBytes int64, logger *slog.Logger) *PreviewService {
	return &PreviewService{
		maxLogoBytes: maxLogoBytes,
		logger:       logger.With(slog.String("component", "preview_service")),
	}
}

// Preview возвращает SVG-документ для данных p.
func (s *PreviewService) Preview(_ context.Context, p PreviewParams) ([]byte, error) {
	canonical, err := payload.Encode(p.Kind, p.Data)
	if err != nil {
		return nil, err
	}

	opts, err := VectorOptions(p.Style, s.maxLogoBytes, s.logger)
	if err != nil {
		return nil, err
	}

	return vectorFromPayload(canonical, opts)
}
