// download.go — GET /api/v1/artifacts/{id}/download?format=&shape=&fg=&bg=.
package handlers

import (
	"mime"
	"net/http"
	"strconv"

	apierrors "github.com/bigkaa/goartstore/qr-studio/internal/api/errors"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/generated"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
)

// DownloadArtifact отдаёт артефакт в запрошенном формате (по умолчанию png).
// Параметры оформления учитываются только для svg.
func (h *APIHandler) DownloadArtifact(w http.ResponseWriter, r *http.Request, id generated.ArtifactId, params generated.DownloadArtifactParams) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var rawFormat string
	if params.Format != nil {
		rawFormat = string(*params.Format)
	}
	format, err := service.ParseFormat(rawFormat)
	if err != nil {
		apierrors.UnsupportedFormat(w, err.Error())
		return
	}

	opts, err := service.VectorOptions(service.StyleParams{
		Shape:      deref(params.Shape),
		Foreground: deref(params.Fg),
		Background: deref(params.Bg),
	}, h.maxLogoBytes, h.logger)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	d, err := h.downloads.Render(r.Context(), owner, id.String(), format, opts)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", d.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(d.Data)))
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": d.Filename}))
	w.Header().Set("Cache-Control", "private, max-age=3600")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(d.Data)
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
