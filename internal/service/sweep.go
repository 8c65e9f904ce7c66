// sweep.go — фоновая очистка осиротевших файлов артефактов.
//
// Осиротевший файл — файл в хранилище без записи в qr_artifacts.
// Появляется, если компенсирующее удаление не удалось или процесс
// завершился между записью файла и коммитом. Файлы моложе grace-периода
// не трогаются: их создание может быть ещё в транзакции.
//
// Запускается как горутина с периодическим тикером (QS_SWEEP_INTERVAL)
// или однократно командой qr-studio sweep.
package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/bigkaa/goartstore/qr-studio/internal/repository"
	"github.com/bigkaa/goartstore/qr-studio/internal/storage"
)

// sweepBatchSize — число путей в одном запросе проверки существования записей.
const sweepBatchSize = 500

// Prometheus метрики очистки.
var (
	sweepRunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qs_sweep_runs_total",
		Help: "Общее количество запусков очистки осиротевших файлов",
	})

	sweepFilesDeletedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qs_sweep_files_deleted_total",
		Help: "Общее количество осиротевших файлов, удалённых очисткой",
	})

	sweepErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "qs_sweep_errors_total",
		Help: "Общее количество ошибок очистки",
	})

	sweepDurationSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "qs_sweep_duration_seconds",
		Help:    "Длительность очистки в секундах",
		Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60},
	})
)

// SweepResult — результат одного запуска очистки.
type SweepResult struct {
	// Scanned — количество файлов в хранилище
	Scanned int
	// Young — файлы моложе grace-периода (пропущены)
	Young int
	// Deleted — удалённые осиротевшие файлы
	Deleted int
	// Errors — ошибки листинга, проверки или удаления
	Errors int
	// Duration — длительность выполнения
	Duration time.Duration
}

// SweepService — периодическая очистка осиротевших файлов.
type SweepService struct {
	store     storage.Store
	artifacts repository.ArtifactRepository
	interval  time.Duration
	grace     time.Duration
	now       func() time.Time
	logger    *slog.Logger

	mu     sync.Mutex // защита от параллельного запуска RunOnce
	cancel context.CancelFunc
	done   chan struct{}
}

// NewSweepService создаёт сервис очистки.
func NewSweepService(
	store storage.Store,
	artifacts repository.ArtifactRepository,
	interval time.Duration,
	grace time.Duration,
	logger *slog.Logger,
) *SweepService {
	return &SweepService{
		store:     store,
		artifacts: artifacts,
		interval:  interval,
		grace:     grace,
		now:       time.Now,
		logger:    logger.With(slog.String("component", "sweep")),
	}
}

// Start запускает фоновую горутину очистки.
func (s *SweepService) Start(ctx context.Context) {
	sweepCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(sweepCtx)

	s.logger.Info("Очистка осиротевших файлов запущена",
		slog.String("interval", s.interval.String()),
		slog.String("grace", s.grace.String()),
	)
}

// Stop останавливает фоновую горутину и ждёт её завершения.
func (s *SweepService) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("Очистка осиротевших файлов остановлена")
}

func (s *SweepService) run(ctx context.Context) {
	defer close(s.done)

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce выполняет один проход очистки. Параллельные вызовы сериализуются.
func (s *SweepService) RunOnce(ctx context.Context) *SweepResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	result := &SweepResult{}
	sweepRunsTotal.Inc()

	defer func() {
		result.Duration = time.Since(start)
		sweepDurationSeconds.Observe(result.Duration.Seconds())
		sweepFilesDeletedTotal.Add(float64(result.Deleted))
		sweepErrorsTotal.Add(float64(result.Errors))
	}()

	objects, err := s.store.List(ctx)
	if err != nil {
		result.Errors++
		s.logger.Error("Ошибка получения списка файлов", slog.String("error", err.Error()))
		return result
	}
	result.Scanned = len(objects)

	cutoff := s.now().Add(-s.grace)
	candidates := make([]string, 0, len(objects))
	for _, obj := range objects {
		if obj.ModTime.After(cutoff) {
			result.Young++
			continue
		}
		candidates = append(candidates, obj.Path)
	}

	for from := 0; from < len(candidates); from += sweepBatchSize {
		if ctx.Err() != nil {
			break
		}
		batch := candidates[from:min(from+sweepBatchSize, len(candidates))]
		s.sweepBatch(ctx, batch, result)
	}

	s.logger.Info("Очистка завершена",
		slog.Int("scanned", result.Scanned),
		slog.Int("young", result.Young),
		slog.Int("deleted", result.Deleted),
		slog.Int("errors", result.Errors),
		slog.String("duration", time.Since(start).String()),
	)
	return result
}

// sweepBatch удаляет файлы пакета, на которые не ссылаются записи.
func (s *SweepService) sweepBatch(ctx context.Context, batch []string, result *SweepResult) {
	existing, err := s.artifacts.ExistingPaths(ctx, batch)
	if err != nil {
		result.Errors++
		s.logger.Error("Ошибка проверки записей артефактов", slog.String("error", err.Error()))
		return
	}

	for _, path := range batch {
		if existing[path] {
			continue
		}
		if err := s.store.Delete(ctx, path); err != nil {
			result.Errors++
			s.logger.Warn("Не удалось удалить осиротевший файл",
				slog.String("path", path),
				slog.String("error", err.Error()),
			)
			continue
		}
		result.Deleted++
		s.logger.Debug("Осиротевший файл удалён", slog.String("path", path))
	}
}
