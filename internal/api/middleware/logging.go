// logging.go — access log HTTP-запросов через slog.
// Владелец попадает в запись, если запрос прошёл JWT-аутентификацию:
// RequestLogger стоит снаружи auth, поэтому sub передаётся обратно
// через общий для запроса accessEntry.
package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type accessEntryKey struct{}

// accessEntry — данные запроса, которые заполняют внутренние middleware.
type accessEntry struct {
	ownerID string
}

// recordOwner сохраняет sub в accessEntry текущего запроса, если он есть.
func recordOwner(ctx context.Context, subject string) {
	if e, ok := ctx.Value(accessEntryKey{}).(*accessEntry); ok {
		e.ownerID = subject
	}
}

// statusRecorder запоминает статус-код и число записанных байт.
type statusRecorder struct {
	http.ResponseWriter
	status int
	bytes  int64
}

func (rec *statusRecorder) WriteHeader(code int) {
	rec.status = code
	rec.ResponseWriter.WriteHeader(code)
}

func (rec *statusRecorder) Write(b []byte) (int, error) {
	n, err := rec.ResponseWriter.Write(b)
	rec.bytes += int64(n)
	return n, err
}

// Unwrap даёт http.ResponseController доступ к исходному ResponseWriter.
func (rec *statusRecorder) Unwrap() http.ResponseWriter {
	return rec.ResponseWriter
}

// RequestLogger пишет одну запись на запрос: метод, путь, статус,
// длительность, размер ответа, адрес клиента и owner_id (после auth).
// Уровень: INFO (1xx-3xx), WARN (4xx), ERROR (5xx).
func RequestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			entry := &accessEntry{}
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r.WithContext(context.WithValue(r.Context(), accessEntryKey{}, entry)))

			attrs := []slog.Attr{
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.Int("status", rec.status),
				slog.Duration("duration", time.Since(start)),
				slog.Int64("bytes", rec.bytes),
				slog.String("remote_addr", r.RemoteAddr),
			}
			if entry.ownerID != "" {
				attrs = append(attrs, slog.String("owner_id", entry.ownerID))
			}
			logger.LogAttrs(r.Context(), levelForStatus(rec.status), "HTTP запрос", attrs...)
		})
	}
}

func levelForStatus(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}
