// Пакет server — HTTP-сервер QR Studio с graceful shutdown.
// Без TLS: TLS termination на API Gateway.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goartstore/qr-studio/internal/api/generated"
	"github.com/bigkaa/goartstore/qr-studio/internal/api/handlers"
	"github.com/bigkaa/goartstore/qr-studio/internal/config"
)

// Server — HTTP-сервер QR Studio.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// NewRouter собирает маршруты из generated.HandlerWithOptions.
// middlewares применяются ко всем маршрутам в порядке передачи,
// auth — ко всем, кроме /health/ и /metrics.
func NewRouter(
	handler generated.ServerInterface,
	auth func(http.Handler) http.Handler,
	middlewares ...func(http.Handler) http.Handler,
) chi.Router {
	router := chi.NewRouter()
	for _, mw := range middlewares {
		router.Use(mw)
	}
	router.Use(JWTAuthWithExclusions(auth, "/health/", "/metrics"))

	generated.HandlerWithOptions(handler, generated.ChiServerOptions{
		BaseRouter:       router,
		ErrorHandlerFunc: handlers.ParamErrorHandler,
	})
	return router
}

// JWTAuthWithExclusions пропускает без mw запросы, путь которых
// начинается с одного из excludePrefixes.
func JWTAuthWithExclusions(mw func(http.Handler) http.Handler, excludePrefixes ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		protected := mw(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, prefix := range excludePrefixes {
				if strings.HasPrefix(r.URL.Path, prefix) {
					next.ServeHTTP(w, r)
					return
				}
			}
			protected.ServeHTTP(w, r)
		})
	}
}

// New создаёт HTTP-сервер с таймаутами из конфигурации.
func New(cfg *config.Config, logger *slog.Logger, handler http.Handler) *Server {
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  cfg.HTTPReadTimeout,
		WriteTimeout: cfg.HTTPWriteTimeout,
		IdleTimeout:  cfg.HTTPIdleTimeout,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Run запускает сервер и ждёт SIGINT/SIGTERM или отмены ctx,
// после чего выполняет graceful shutdown.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case <-ctx.Done():
		s.logger.Info("Контекст сервера отменён")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
