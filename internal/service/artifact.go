// artifact.go — создание QR-артефактов с квотой бесплатного плана.
//
// Порядок создания:
//  1. Кодирование данных и генерация символа (ошибки — до любых побочных эффектов)
//  2. Растр PNG записывается в хранилище под новым <uuid>.png
//  3. Транзакция: блокировка строки владельца, проверка квоты, вставка
//     артефакта и записи журнала, коммит
//  4. Любой сбой на шаге 3 — откат и удаление файла из шага 2
//
// Транзакция выполняется на контексте без отмены (с таймаутом
// QS_PERSIST_TIMEOUT), чтобы отключение клиента не оставляло файл
// без записи и без очистки.
package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
	"github.com/bigkaa/goartstore/qr-studio/internal/payload"
	"github.com/bigkaa/goartstore/qr-studio/internal/render"
	"github.com/bigkaa/goartstore/qr-studio/internal/repository"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

// MaxLabelLength — максимальная длина метки в символах.
const MaxLabelLength = 200

// Параметры пагинации списка.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

// Prometheus-метрики создания артефактов.
var (
	artifactsCreatedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qs_artifacts_created_total",
		Help: "Общее количество созданных артефактов (по типу данных).",
	}, []string{"kind"})

	createFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qs_create_failures_total",
		Help: "Количество неудачных созданий артефактов (по причине).",
	}, []string{"reason"})

	compensatingDeletesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "qs_compensating_deletes_total",
		Help: "Количество компенсирующих удалений файлов (по результату).",
	}, []string{"result"})

	orphanDeleteFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qs_artifact_file_delete_failures_total",
		Help: "Количество неудачных удалений файла после удаления записи артефакта.",
	})

	createDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qs_create_duration_seconds",
		Help:    "Длительность создания артефакта (рендер + сохранение + транзакция).",
		Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
	})
)

// ArtifactConfig — параметры ArtifactService.
type ArtifactConfig struct {
	// RasterSize — сторона растра в пикселях
	RasterSize int
	// FreeDailyLimit — дневной лимит созданий для бесплатного плана
	FreeDailyLimit int
	// PersistTimeout — таймаут транзакции сохранения
	PersistTimeout time.Duration
}

// CreateParams — параметры создания артефакта.
type CreateParams struct {
	// OwnerID — владелец (sub из JWT)
	OwnerID string
	Kind    model.Kind
	// Data — структурированные данные в JSON
	Data json.RawMessage
	// Label — необязательная метка
	Label *string
}

// ArtifactService — создание, чтение, переименование и удаление артефактов.
type ArtifactService struct {
	creations repository.CreationRunner
	artifacts repository.ArtifactRepository
	store     storage.Store
	cache     *CacheService
	cfg       ArtifactConfig
	now       func() time.Time
	logger    *slog.Logger
}

// NewArtifactService создаёт сервис артефактов.
func NewArtifactService(
	creations repository.CreationRunner,
	artifacts repository.ArtifactRepository,
	store storage.Store,
	cache *CacheService,
	cfg ArtifactConfig,
	logger *slog.Logger,
) *ArtifactService {
	if cfg.RasterSize <= 0 {
		cfg.RasterSize = render.DefaultRasterSize
	}
	if cfg.PersistTimeout <= 0 {
		cfg.PersistTimeout = 30 * time.Second
	}
	return &ArtifactService{
		creations: creations,
		artifacts: artifacts,
		store:     store,
		cache:     cache,
		cfg:       cfg,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "artifact_service")),
	}
}

// Create кодирует данные, сохраняет растр и атомарно записывает артефакт
// с проверкой квоты. При любой ошибке после записи файла файл удаляется.
func (s *ArtifactService) Create(ctx context.Context, p CreateParams) (*model.Artifact, error) {
	start := time.Now()
	defer func() { createDuration.Observe(time.Since(start).Seconds()) }()

	if strings.TrimSpace(p.OwnerID) == "" {
		return nil, fmt.Errorf("%w: не задан владелец", ErrValidation)
	}
	label, err := normalizeLabel(p.Label)
	if err != nil {
		return nil, err
	}

	// 1. Кодирование и символ — без побочных эффектов
	canonical, err := payload.Encode(p.Kind, p.Data)
	if err != nil {
		createFailuresTotal.WithLabelValues("validation").Inc()
		return nil, err
	}
	matrix, err := symbol.Generate(canonical)
	if err != nil {
		createFailuresTotal.WithLabelValues("too_large").Inc()
		return nil, err
	}

	opts := render.DefaultRasterOptions()
	opts.Size = s.cfg.RasterSize
	var buf bytes.Buffer
	if err := render.EncodePNG(&buf, render.Raster(matrix, opts)); err != nil {
		return nil, err
	}

	// 2. Запись файла
	path, err := s.store.Save(ctx, buf.Bytes(), "png")
	if err != nil {
		createFailuresTotal.WithLabelValues("storage").Inc()
		return nil, fmt.Errorf("%w: запись растра: %w", ErrStorageFailure, err)
	}

	artifact := &model.Artifact{
		ID:               uuid.New().String(),
		OwnerID:          p.OwnerID,
		Kind:             p.Kind,
		StructuredData:   p.Data,
		CanonicalPayload: canonical,
		ArtifactPath:     path,
		Label:            label,
	}

	// 3. Транзакция, не зависящая от отмены клиентом
	txCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	defer cancel()

	err = s.creations.RunCreation(txCtx, func(tx repository.CreationTx) error {
		return s.persist(txCtx, tx, artifact)
	})
	if err != nil {
		// 4. Компенсирующее удаление только что записанного файла
		s.compensate(ctx, path, err)
		return nil, s.classifyPersistError(err)
	}

	artifactsCreatedTotal.WithLabelValues(string(artifact.Kind)).Inc()
	s.cache.Set(artifact)

	s.logger.Info("Артефакт создан",
		slog.String("artifact_id", artifact.ID),
		slog.String("owner_id", artifact.OwnerID),
		slog.String("kind", string(artifact.Kind)),
		slog.Int("version", matrix.Version),
	)
	return artifact, nil
}

// persist — шаги транзакции создания.
func (s *ArtifactService) persist(ctx context.Context, tx repository.CreationTx, a *model.Artifact) error {
	plan, err := tx.LockOwnerPlan(ctx, a.OwnerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: %s", ErrOwnerNotFound, a.OwnerID)
		}
		return err
	}

	// Время берётся под блокировкой владельца: окно квоты согласовано
	// с порядком коммитов
	now := s.now().UTC()

	if plan != model.PlanPaid {
		dayStart := startOfUTCDay(now)
		count, err := tx.CountCreatedSince(ctx, a.OwnerID, dayStart)
		if err != nil {
			return err
		}
		if count >= s.cfg.FreeDailyLimit {
			return &QuotaError{Limit: s.cfg.FreeDailyLimit, ResetAt: dayStart.Add(24 * time.Hour)}
		}
	}

	a.CreatedAt = now
	if err := tx.InsertArtifact(ctx, a); err != nil {
		return err
	}
	return tx.AppendCreationLog(ctx, &model.CreationLogEntry{
		ArtifactID: a.ID,
		OwnerID:    a.OwnerID,
		Kind:       a.Kind,
		CreatedAt:  now,
	})
}

// compensate удаляет файл неудавшегося создания. Ошибка удаления
// логируется: файл подберёт фоновая очистка.
func (s *ArtifactService) compensate(ctx context.Context, path string, cause error) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.cfg.PersistTimeout)
	defer cancel()

	if err := s.store.Delete(ctx, path); err != nil {
		compensatingDeletesTotal.WithLabelValues("error").Inc()
		s.logger.Error("Не удалось удалить файл неудавшегося создания",
			slog.String("path", path),
			slog.String("cause", cause.Error()),
			slog.String("error", err.Error()),
		)
		return
	}
	compensatingDeletesTotal.WithLabelValues("ok").Inc()
	s.logger.Debug("Файл неудавшегося создания удалён",
		slog.String("path", path),
		slog.String("cause", cause.Error()),
	)
}

// classifyPersistError сохраняет доменные ошибки, остальные сводит к ErrStorageFailure.
func (s *ArtifactService) classifyPersistError(err error) error {
	switch {
	case errors.Is(err, ErrOwnerNotFound):
		createFailuresTotal.WithLabelValues("owner_not_found").Inc()
		return err
	case errors.Is(err, ErrQuotaExceeded):
		createFailuresTotal.WithLabelValues("quota").Inc()
		return err
	default:
		createFailuresTotal.WithLabelValues("persist").Inc()
		s.logger.Error("Ошибка сохранения артефакта", slog.String("error", err.Error()))
		return fmt.Errorf("%w: %w", ErrStorageFailure, err)
	}
}

// Get возвращает артефакт владельца.
func (s *ArtifactService) Get(ctx context.Context, ownerID, id string) (*model.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	a, err := s.artifacts.GetByOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("получение артефакта %s: %w", id, err)
	}
	return a, nil
}

// List возвращает страницу артефактов владельца и общее количество.
// limit приводится к диапазону 1..MaxListLimit, по умолчанию DefaultListLimit.
func (s *ArtifactService) List(ctx context.Context, ownerID string, limit, offset int) ([]*model.Artifact, int, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = min(limit, MaxListLimit)
	offset = max(offset, 0)

	items, total, err := s.artifacts.ListByOwner(ctx, ownerID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("список артефактов: %w", err)
	}
	return items, total, nil
}

// UpdateLabel меняет метку. Пустая метка или nil снимает её.
func (s *ArtifactService) UpdateLabel(ctx context.Context, ownerID, id string, label *string) (*model.Artifact, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrNotFound
	}
	normalized, err := normalizeLabel(label)
	if err != nil {
		return nil, err
	}

	a, err := s.artifacts.UpdateLabel(ctx, ownerID, id, normalized)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("обновление метки %s: %w", id, err)
	}
	s.cache.Delete(id)
	return a, nil
}

// Delete удаляет запись, затем файл. Ошибка удаления файла не возвращается:
// файл без записи подберёт фоновая очистка.
func (s *ArtifactService) Delete(ctx context.Context, ownerID, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrNotFound
	}

	path, err := s.artifacts.DeleteByOwner(ctx, ownerID, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("удаление артефакта %s: %w", id, err)
	}
	s.cache.Delete(id)

	if err := s.store.Delete(context.WithoutCancel(ctx), path); err != nil {
		orphanDeleteFailuresTotal.Inc()
		s.logger.Warn("Файл удалённого артефакта не удалён, остаётся для фоновой очистки",
			slog.String("artifact_id", id),
			slog.String("path", path),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("Артефакт удалён",
		slog.String("artifact_id", id),
		slog.String("owner_id", ownerID),
	)
	return nil
}

// normalizeLabel обрезает пробелы; пустая метка означает её отсутствие.
func normalizeLabel(label *string) (*string, error) {
	if label == nil {
		return nil, nil
	}
	v := strings.TrimSpace(*label)
	if v == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(v) > MaxLabelLength {
		return nil, fmt.Errorf("%w: метка длиннее %d символов", ErrValidation, MaxLabelLength)
	}
	return &v, nil
}

// startOfUTCDay возвращает полночь UTC суток t.
func startOfUTCDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
