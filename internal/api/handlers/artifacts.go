// artifacts.go — CRUD артефактов владельца:
// POST/GET /api/v1/artifacts, GET/PATCH/DELETE /api/v1/artifacts/{id}.
package handlers

import (
	"net/http"

	apierrors "github.com/bigkaa/goartstore/qr-studio/internal/api/errors"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/generated"
	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
)

// toArtifact — представление артефакта в API. Путь файла не раскрывается.
func toArtifact(a *model.Artifact) generated.Artifact {
	return generated.Artifact{
		Id:               parseUUID(a.ID),
		Kind:             generated.ArtifactKind(a.Kind),
		Data:             generated.StructuredData(a.StructuredData),
		CanonicalPayload: a.CanonicalPayload,
		Label:            a.Label,
		CreatedAt:        a.CreatedAt.UTC(),
		TrackingEnabled:  a.TrackingEnabled,
		ScanCount:        a.ScanCount,
	}
}

// CreateArtifact — POST /api/v1/artifacts.
func (h *APIHandler) CreateArtifact(w http.ResponseWriter, r *http.Request) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req generated.CreateArtifactJSONRequestBody
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}
	data, err := rawData(req.Data)
	if err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	a, err := h.artifacts.Create(r.Context(), service.CreateParams{
		OwnerID: owner,
		Kind:    model.Kind(req.Kind),
		Data:    data,
		Label:   req.Label,
	})
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	w.Header().Set("Location", "/api/v1/artifacts/"+a.ID)
	writeJSON(w, http.StatusCreated, toArtifact(a))
}

// ListArtifacts — GET /api/v1/artifacts?limit=&offset=.
func (h *APIHandler) ListArtifacts(w http.ResponseWriter, r *http.Request, params generated.ListArtifactsParams) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	limit, offset := paginationDefaults(params.Limit, params.Offset)

	items, total, err := h.artifacts.List(r.Context(), owner, limit, offset)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}

	resp := generated.ArtifactList{
		Items:  make([]generated.Artifact, 0, len(items)),
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
	for _, a := range items {
		resp.Items = append(resp.Items, toArtifact(a))
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetArtifact — GET /api/v1/artifacts/{id}.
func (h *APIHandler) GetArtifact(w http.ResponseWriter, r *http.Request, id generated.ArtifactId) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	a, err := h.artifacts.Get(r.Context(), owner, id.String())
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArtifact(a))
}

// UpdateArtifact — PATCH /api/v1/artifacts/{id}. Меняется только метка.
func (h *APIHandler) UpdateArtifact(w http.ResponseWriter, r *http.Request, id generated.ArtifactId) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	var req generated.UpdateArtifactJSONRequestBody
	if err := decodeJSON(w, r, maxJSONBody, &req); err != nil {
		apierrors.ValidationError(w, err.Error())
		return
	}

	a, err := h.artifacts.UpdateLabel(r.Context(), owner, id.String(), req.Label)
	if err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toArtifact(a))
}

// DeleteArtifact — DELETE /api/v1/artifacts/{id}.
func (h *APIHandler) DeleteArtifact(w http.ResponseWriter, r *http.Request, id generated.ArtifactId) {
	owner, ok := h.owner(w, r)
	if !ok {
		return
	}

	if err := h.artifacts.Delete(r.Context(), owner, id.String()); err != nil {
		h.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// paginationDefaults нормализует limit (1..MaxListLimit) и offset (>= 0).
func paginationDefaults(limit, offset *int) (limitVal, offsetVal int) {
	limitVal = service.DefaultListLimit
	if limit != nil {
		limitVal = min(max(*limit, 1), service.MaxListLimit)
	}
	if offset != nil {
		offsetVal = max(*offset, 0)
	}
	return limitVal, offsetVal
}
