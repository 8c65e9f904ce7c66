// Пакет handlers — HTTP-обработчики API QR Studio.
// APIHandler реализует generated.ServerInterface: маршруты и разбор
// параметров пути и query — в сгенерированном коде, здесь — вызов
// сервисного слоя и отображение его ошибок в единый формат apierrors.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	apierrors "github.com/bigkaa/goartstore/qr-studio/internal/api/errors"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/generated"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/middleware"
	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/render"
	"github.com/bigkaa/goartstore/qr-studio/internal/service"
)

// maxJSONBody — лимит тела запроса без логотипа.
const maxJSONBody = 64 << 10

// ArtifactService — операции с артефактами владельца.
type ArtifactService interface {
	Create(ctx context.Context, p service.CreateParams) (*model.Artifact, error)
	Get(ctx context.Context, ownerID, id string) (*model.Artifact, error)
	List(ctx context.Context, ownerID string, limit, offset int) ([]*model.Artifact, int, error)
	UpdateLabel(ctx context.Context, ownerID, id string, label *string) (*model.Artifact, error)
	Delete(ctx context.Context, ownerID, id string) error
}

// DownloadService — выдача артефакта в формате скачивания.
type DownloadService interface {
	Render(ctx context.Context, ownerID, artifactID string, format service.Format, opts render.VectorOptions) (*service.Download, error)
}

// PreviewService — предпросмотр SVG без сохранения.
type PreviewService interface {
	Preview(ctx context.Context, p service.PreviewParams) ([]byte, error)
}

// APIHandler — обработчик API QR Studio.
type APIHandler struct {
	artifacts    ArtifactService
	downloads    DownloadService
	previews     PreviewService
	health       *HealthHandler
	maxLogoBytes int64
	logger       *slog.Logger
}

var _ generated.ServerInterface = (*APIHandler)(nil)

// NewAPIHandler создаёт обработчик API.
// maxLogoBytes ограничивает логотип в запросе предпросмотра.
func NewAPIHandler(
	artifacts ArtifactService,
	downloads DownloadService,
	previews PreviewService,
	health *HealthHandler,
	maxLogoBytes int64,
	logger *slog.Logger,
) *APIHandler {
	return &APIHandler{
		artifacts:    artifacts,
		downloads:    downloads,
		previews:     previews,
		health:       health,
		maxLogoBytes: maxLogoBytes,
		logger:       logger.With(slog.String("component", "api_handler")),
	}
}

// --- Health endpoints (делегируются в HealthHandler) ---

// HealthLive — liveness probe.
func (h *APIHandler) HealthLive(w http.ResponseWriter, r *http.Request) {
	h.health.HealthLive(w, r)
}

// HealthReady — readiness probe.
func (h *APIHandler) HealthReady(w http.ResponseWriter, r *http.Request) {
	h.health.HealthReady(w, r)
}

// GetMetrics — Prometheus метрики.
func (h *APIHandler) GetMetrics(w http.ResponseWriter, r *http.Request) {
	h.health.GetMetrics(w, r)
}

// ParamErrorHandler — ErrorHandlerFunc для сгенерированного роутера:
// ошибка разбора параметра пути или query — 400 VALIDATION_ERROR.
func ParamErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	var formatErr *generated.InvalidParamFormatError
	if errors.As(err, &formatErr) {
		apierrors.ValidationError(w, fmt.Sprintf("Некорректное значение параметра %s", formatErr.ParamName))
		return
	}
	apierrors.ValidationError(w, err.Error())
}

// owner возвращает sub из JWT. Пустой sub — 401.
func (h *APIHandler) owner(w http.ResponseWriter, r *http.Request) (string, bool) {
	sub := middleware.SubjectFromContext(r.Context())
	if sub == "" {
		apierrors.Unauthorized(w, "Требуется аутентификация")
		return "", false
	}
	return sub, true
}

// writeServiceError отображает ошибку сервисного слоя в HTTP-ответ.
func (h *APIHandler) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var quotaErr *service.QuotaError

	switch {
	case service.IsValidation(err):
		apierrors.ValidationError(w, err.Error())
	case errors.Is(err, service.ErrUnsupportedFormat):
		apierrors.UnsupportedFormat(w, err.Error())
	case errors.Is(err, service.ErrOwnerNotFound):
		apierrors.OwnerNotFound(w, "Владелец не зарегистрирован")
	case errors.Is(err, service.ErrNotFound):
		apierrors.NotFound(w, "Артефакт не найден")
	case errors.As(err, &quotaErr):
		apierrors.QuotaExceeded(w, quotaErr.ResetAt, quotaErr.Error())
	case errors.Is(err, service.ErrEncodingTooLarge):
		apierrors.EncodingTooLarge(w, "Данные не помещаются в QR-код")
	case errors.Is(err, service.ErrStorageFailure):
		h.logger.Error("Сбой хранилища",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		apierrors.StorageFailure(w, "Хранилище временно недоступно, повторите запрос")
	default:
		h.logger.Error("Внутренняя ошибка",
			slog.String("path", r.URL.Path),
			slog.String("error", err.Error()),
		)
		apierrors.InternalError(w, "Внутренняя ошибка")
	}
}

// decodeJSON читает тело не длиннее limit байт. Неизвестные поля — ошибка.
func decodeJSON(w http.ResponseWriter, r *http.Request, limit int64, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return fmt.Errorf("тело запроса больше %d байт", maxErr.Limit)
		}
		return fmt.Errorf("некорректный JSON: %w", err)
	}
	return nil
}

// rawData возвращает поле data запроса; отсутствие и null — ошибка.
func rawData(data generated.StructuredData) (json.RawMessage, error) {
	if len(data) == 0 || string(data) == "null" {
		return nil, errors.New("не задано поле data")
	}
	return json.RawMessage(data), nil
}

// parseUUID приводит идентификатор артефакта к типу API.
// Идентификаторы выдаёт сервис, ошибка разбора даёт нулевой UUID.
func parseUUID(id string) uuid.UUID {
	u, _ := uuid.Parse(id)
	return u
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
