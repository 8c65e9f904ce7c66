// download.go — выдача артефакта в запрошенном формате.
// png — сохранённый растр без изменений, jpeg — перекодированный растр,
// svg — символ заново строится из канонического текста.
// Ничего не сохраняет.
package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/render"
	"github.com/bigkaa/goartstore/qr-studio/internal/repository"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

// Format — формат скачивания.
type Format string

const (
	FormatPNG  Format = "png"
	FormatJPEG Format = "jpeg"
	FormatSVG  Format = "svg"
)

// Prometheus-метрики download.
var (
	downloadsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qs_downloads_total",
		Help: "Общее количество скачиваний (по формату и статусу).",
	}, []string{"format", "status"})

	downloadDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "qs_download_duration_seconds",
		Help:    "Длительность подготовки скачивания (по формату).",
		Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
	}, []string{"format"})
)

// ParseFormat разбирает формат. Пустая строка — png.
// Принимаются также имена raster-a, raster-b, vector и jpg.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "png", "raster-a":
		return FormatPNG, nil
	case "jpeg", "jpg", "raster-b":
		return FormatJPEG, nil
	case "svg", "vector":
		return FormatSVG, nil
	default:
		return "", fmt.Errorf("%w: %q, допустимые: png, jpeg, svg", ErrUnsupportedFormat, s)
	}
}

// ContentType возвращает MIME-тип формата.
func (f Format) ContentType() string {
	return storage.ContentType(string(f))
}

// Download — готовый к отдаче файл.
type Download struct {
	Data        []byte
	ContentType string
	// Filename — имя для Content-Disposition
	Filename string
}

// DownloadService — преобразование артефакта в формат скачивания.
type DownloadService struct {
	artifacts repository.ArtifactRepository
	store     storage.Store
	cache     *CacheService
	logger    *slog.Logger
}

// NewDownloadService создаёт сервис скачивания.
func NewDownloadService(
	artifacts repository.ArtifactRepository,
	store storage.Store,
	cache *CacheService,
	logger *slog.Logger,
) *DownloadService {
	return &DownloadService{
		artifacts: artifacts,
		store:     store,
		cache:     cache,
		logger:    logger.With(slog.String("component", "download_service")),
	}
}

// Render возвращает артефакт artifactID в формате format.
// Если ownerID не пуст, чужой артефакт неотличим от отсутствующего.
// opts используются только для svg.
func (ds *DownloadService) Render(
	ctx context.Context,
	ownerID, artifactID string,
	format Format,
	opts render.VectorOptions,
) (*Download, error) {
	start := time.Now()

	d, err := ds.render(ctx, ownerID, artifactID, format, opts)

	status := "ok"
	switch {
	case err == nil:
		downloadDuration.WithLabelValues(string(format)).Observe(time.Since(start).Seconds())
	case errors.Is(err, ErrNotFound):
		status = "not_found"
	case errors.Is(err, ErrUnsupportedFormat):
		status = "bad_format"
	default:
		status = "error"
	}
	downloadsTotal.WithLabelValues(string(format), status).Inc()

	return d, err
}

func (ds *DownloadService) render(
	ctx context.Context,
	ownerID, artifactID string,
	format Format,
	opts render.VectorOptions,
) (*Download, error) {
	switch format {
	case FormatPNG, FormatJPEG, FormatSVG:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}

	a, cached, err := ds.getArtifact(ctx, artifactID)
	if err != nil {
		return nil, err
	}
	if ownerID != "" && a.OwnerID != ownerID {
		return nil, ErrNotFound
	}

	d := &Download{
		ContentType: format.ContentType(),
		Filename:    a.ID + "." + string(format),
	}

	switch format {
	case FormatPNG:
		d.Data, err = ds.loadRaster(ctx, a, cached)
	case FormatJPEG:
		var raw []byte
		if raw, err = ds.loadRaster(ctx, a, cached); err == nil {
			d.Data, err = render.PNGToJPEG(raw)
		}
	case FormatSVG:
		d.Data, err = vectorFromPayload(a.CanonicalPayload, opts)
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// getArtifact возвращает запись из кэша или БД; cached — запись взята из кэша.
func (ds *DownloadService) getArtifact(ctx context.Context, id string) (a *model.Artifact, cached bool, err error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, false, ErrNotFound
	}
	if hit, ok := ds.cache.Get(id); ok {
		return hit, true, nil
	}
	a, err = ds.fetchArtifact(ctx, id)
	return a, false, err
}

func (ds *DownloadService) fetchArtifact(ctx context.Context, id string) (*model.Artifact, error) {
	a, err := ds.artifacts.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение артефакта %s: %w", id, err)
	}
	ds.cache.Set(a)
	return a, nil
}

// loadRaster читает растр артефакта. Запись из кэша могла пережить
// удаление артефакта на другой реплике: при отсутствии файла она
// вытесняется, и артефакт перечитывается из БД.
func (ds *DownloadService) loadRaster(ctx context.Context, a *model.Artifact, cached bool) ([]byte, error) {
	if cached {
		data, err := ds.store.Read(ctx, a.ArtifactPath)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return nil, fmt.Errorf("%w: чтение растра: %w", ErrStorageFailure, err)
		}
		ds.cache.Delete(a.ID)
		ds.logger.Debug("Запись кэша устарела, артефакт перечитывается из БД",
			slog.String("artifact_id", a.ID),
		)
		if a, err = ds.fetchArtifact(ctx, a.ID); err != nil {
			return nil, err
		}
	}
	return ds.readRaster(ctx, a)
}

// readRaster читает сохранённый PNG. Отсутствие файла при наличии записи
// нарушает инвариант хранилища и логируется как ошибка.
func (ds *DownloadService) readRaster(ctx context.Context, a *model.Artifact) ([]byte, error) {
	data, err := ds.store.Read(ctx, a.ArtifactPath)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ds.logger.Error("Файл артефакта отсутствует в хранилище",
				slog.String("artifact_id", a.ID),
				slog.String("path", a.ArtifactPath),
			)
		}
		return nil, fmt.Errorf("%w: чтение растра: %w", ErrStorageFailure, err)
	}
	return data, nil
}

// vectorFromPayload строит SVG из канонического текста.
func vectorFromPayload(canonical string, opts render.VectorOptions) ([]byte, error) {
	matrix, err := symbol.Generate(canonical)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := render.WriteSVG(&buf, matrix, opts); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
