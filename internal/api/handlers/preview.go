// preview.go — POST /api/v1/preview: стилизованный SVG без сохранения.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/goartstore/qr-studio/internal/api/errors"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/generated"
	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
)

// Preview кодирует данные и возвращает SVG. Квота не расходуется.
func (h *APIHandler) Preview(w http.ResponseWriter, r *http.Request) {
	if _, ok := h.owner(w, r); !ok {
		return
	}

	// base64 увеличивает логотип на треть
	limit := maxJSONBody + h.maxLogoBytes*4/3 + 4
	var req generated.PreviewJSONRequestBody
	if err := decodeJSON(w, r, limit, &req); err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}
	data, err := rawData(req.Data)
	if err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	svg, err := h.previews.Preview(r.Context(), service.PreviewParams{
		Kind:  model.Kind(req.Kind),
		Data:  data,
		Style: styleParams(req.Style),
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "image/svg+xml")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(svg)
}

func styleParams(s *generated.PreviewStyle) service.StyleParams {
	if s == nil {
		return service.StyleParams{}
	}
	return service.StyleParams{
		Shape:      deref(s.Shape),
		Foreground: deref(s.Foreground),
		Background: deref(s.Background),
		Logo:       deref(s.Logo),
		LogoRatio:  deref(s.LogoRatio),
	}
}
