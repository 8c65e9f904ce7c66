// auth.go — JWT middleware: RS256 + JWKS.
// sub из токена — идентификатор владельца артефактов.
// Публичные endpoints (health, metrics) — без аутентификации.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/MicahParks/keyfunc/v3"
	"github.com/golang-jwt/jwt/v5"

	apierrors "github.com/bigkaa/goartstore/qr-studio/internal/api/errors"
)

type contextKey string

// ContextKeySubject — ключ sub из JWT в контексте запроса.
const ContextKeySubject contextKey = "jwt_subject"

// JWTAuthConfig — параметры JWT middleware.
type JWTAuthConfig struct {
	// JWKSURL — URL JWKS endpoint
	JWKSURL string
	// Issuer — ожидаемый iss; пусто — не проверяется
	Issuer string
	// ClientTimeout — таймаут HTTP-клиента JWKS
	ClientTimeout time.Duration
	// RefreshInterval — интервал обновления ключей
	RefreshInterval time.Duration
	// Leeway — допустимое отклонение часов
	Leeway time.Duration
}

// JWTAuth — middleware JWT-аутентификации.
type JWTAuth struct {
	jwks   keyfunc.Keyfunc
	issuer string
	leeway time.Duration
	logger *slog.Logger
}

// NewJWTAuth создаёт middleware с фоновым обновлением JWKS.
// Старт не блокируется недоступностью JWKS endpoint.
func NewJWTAuth(cfg JWTAuthConfig, logger *slog.Logger) (*JWTAuth, error) {
	storage, err := jwkset.NewStorageFromHTTP(cfg.JWKSURL, jwkset.HTTPClientStorageOptions{
		Client:                    &http.Client{Timeout: cfg.ClientTimeout},
		NoErrorReturnFirstHTTPReq: true,
		RefreshInterval:           cfg.RefreshInterval,
		RefreshErrorHandler: func(_ context.Context, err error) {
			logger.Error("Ошибка обновления JWKS",
				slog.String("error", err.Error()),
				slog.String("url", cfg.JWKSURL),
			)
		},
	})
	if err != nil {
		return nil, fmt.Errorf("создание JWKS storage: %w", err)
	}

	k, err := keyfunc.New(keyfunc.Options{Storage: storage})
	if err != nil {
		return nil, fmt.Errorf("создание keyfunc: %w", err)
	}

	return &JWTAuth{
		jwks:   k,
		issuer: cfg.Issuer,
		leeway: cfg.Leeway,
		logger: logger.With(slog.String("component", "jwt_auth")),
	}, nil
}

// NewJWTAuthWithKeyfunc создаёт middleware с готовой keyfunc (тесты).
func NewJWTAuthWithKeyfunc(kf keyfunc.Keyfunc, issuer string, leeway time.Duration, logger *slog.Logger) *JWTAuth {
	return &JWTAuth{
		jwks:   kf,
		issuer: issuer,
		leeway: leeway,
		logger: logger.With(slog.String("component", "jwt_auth")),
	}
}

// Middleware извлекает Bearer token, проверяет подпись RS256, exp и iss
// и помещает sub в контекст запроса.
func (j *JWTAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				apierrors.Unauthorized(w, "Отсутствует заголовок Authorization")
				return
			}

			scheme, tokenString, ok := strings.Cut(authHeader, " ")
			if !ok || !strings.EqualFold(scheme, "Bearer") {
				apierrors.Unauthorized(w, "Неверный формат Authorization: ожидается Bearer <token>")
				return
			}
			if tokenString == "" {
				apierrors.Unauthorized(w, "Пустой Bearer token")
				return
			}

			parserOpts := []jwt.ParserOption{
				jwt.WithValidMethods([]string{"RS256"}),
				jwt.WithExpirationRequired(),
				jwt.WithLeeway(j.leeway),
			}
			if j.issuer != "" {
				parserOpts = append(parserOpts, jwt.WithIssuer(j.issuer))
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, j.jwks.KeyfuncCtx(r.Context()), parserOpts...)
			if err != nil {
				j.logger.Debug("JWT валидация не пройдена",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				apierrors.Unauthorized(w, "Невалидный или просроченный токен")
				return
			}
			if !token.Valid {
				apierrors.Unauthorized(w, "Невалидный токен")
				return
			}

			subject, err := claims.GetSubject()
			if err != nil || subject == "" {
				apierrors.Unauthorized(w, "Отсутствует sub в токене")
				return
			}

			next.ServeHTTP(w, r.WithContext(WithSubject(r.Context(), subject)))
		})
	}
}

// SubjectFromContext возвращает sub из контекста или пустую строку.
func SubjectFromContext(ctx context.Context) string {
	subject, _ := ctx.Value(ContextKeySubject).(string)
	return subject
}

// WithSubject помещает sub в контекст и в запись access log запроса.
// Вызывается JWT middleware; тесты и локальные вызовы используют его в обход JWT.
func WithSubject(ctx context.Context, subject string) context.Context {
	recordOwner(ctx, subject)
	return context.WithValue(ctx, ContextKeySubject, subject)
}
