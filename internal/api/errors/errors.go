// Пакет errors — конструкторы ошибок HTTP API.
// Единый формат: {"error": {"code": "...", "message": "..."}}.
// Все HTTP-ответы с ошибками должны использовать WriteError.
package errors //nolint:revive // имя пакета совпадает со stdlib

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"
)

// Машиночитаемые коды ошибок.
const (
	CodeValidationError   = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeOwnerNotFound     = "OWNER_NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeQuotaExceeded     = "QUOTA_EXCEEDED"
	CodeEncodingTooLarge  = "ENCODING_TOO_LARGE"
	CodeUnsupportedFormat = "UNSUPPORTED_FORMAT"
	CodeStorageFailure    = "STORAGE_FAILURE"
	CodeInternalError     = "INTERNAL_ERROR"
)

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// WriteError записывает ответ ошибки в стандартном формате.
// statusCode — HTTP статус-код, code — машиночитаемый код, message — описание.
func WriteError(w http.ResponseWriter, statusCode int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(errorBody{
		Error: errorDetail{
			Code:    code,
			Message: message,
		},
	})
}

// ValidationError — 400 некорректные входные данные.
func ValidationError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeValidationError, message)
}

// UnsupportedFormat — 400 неизвестный формат скачивания.
func UnsupportedFormat(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusBadRequest, CodeUnsupportedFormat, message)
}

// NotFound — 404 ресурс не найден.
func NotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeNotFound, message)
}

// OwnerNotFound — 404 владелец токена не зарегистрирован.
func OwnerNotFound(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusNotFound, CodeOwnerNotFound, message)
}

// Unauthorized — 401 требуется аутентификация.
func Unauthorized(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnauthorized, CodeUnauthorized, message)
}

// EncodingTooLarge — 422 данные не помещаются в QR-символ.
func EncodingTooLarge(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusUnprocessableEntity, CodeEncodingTooLarge, message)
}

// QuotaExceeded — 429 дневной лимит исчерпан.
// Retry-After — секунды до resetAt, не меньше 1.
func QuotaExceeded(w http.ResponseWriter, resetAt time.Time, message string) {
	secs := math.Ceil(time.Until(resetAt).Seconds())
	w.Header().Set("Retry-After", strconv.Itoa(int(max(secs, 1))))
	WriteError(w, http.StatusTooManyRequests, CodeQuotaExceeded, message)
}

// StorageFailure — 503 сбой хранилища, повтор безопасен.
func StorageFailure(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusServiceUnavailable, CodeStorageFailure, message)
}

// InternalError — 500 внутренняя ошибка.
func InternalError(w http.ResponseWriter, message string) {
	WriteError(w, http.StatusInternalServerError, CodeInternalError, message)
}
