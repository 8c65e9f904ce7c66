// errors.go — ошибки бизнес-логики сервисного слоя.
package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/bigkaa/goartstore/qr-studio/internal/payload"
	"github.com/bigkaa/goartstore/qr-studio/internal/render"
	"github.com/bigkaa/goartstore/qr-studio/internal/symbol"
)

var (
	// ErrNotFound — артефакт не найден (или принадлежит другому владельцу).
	ErrNotFound = errors.New("артефакт не найден")
	// ErrOwnerNotFound — владелец отсутствует в таблице owners.
	ErrOwnerNotFound = errors.New("владелец не найден")
	// ErrQuotaExceeded — дневной лимит создания исчерпан. Конкретика — в *QuotaError.
	ErrQuotaExceeded = errors.New("дневной лимит создания исчерпан")
	// ErrEncodingTooLarge — данные не помещаются в QR-символ.
	ErrEncodingTooLarge = symbol.ErrEncodingTooLarge
	// ErrStorageFailure — сбой хранилища файлов или базы данных; повтор безопасен.
	ErrStorageFailure = errors.New("сбой хранилища")
	// ErrUnsupportedFormat — неизвестный формат скачивания.
	ErrUnsupportedFormat = errors.New("неподдерживаемый формат")
	// ErrValidation — ошибка валидации входных данных.
	ErrValidation = errors.New("ошибка валидации")
)

// QuotaError — отказ по квоте бесплатного плана.
// errors.Is(err, ErrQuotaExceeded) == true.
type QuotaError struct {
	// Limit — дневной лимит созданий
	Limit int
	// ResetAt — начало следующих суток UTC
	ResetAt time.Time
}

func (e *QuotaError) Error() string {
	return fmt.Sprintf("дневной лимит %d артефактов для бесплатного плана исчерпан, сброс в %s",
		e.Limit, e.ResetAt.UTC().Format(time.RFC3339))
}

// Is сопоставляет QuotaError с ErrQuotaExceeded.
func (e *QuotaError) Is(target error) bool {
	return target == ErrQuotaExceeded
}

// IsValidation сообщает, вызвана ли ошибка некорректным вводом клиента.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation) ||
		errors.Is(err, payload.ErrValidation) ||
		errors.Is(err, payload.ErrUnknownKind) ||
		errors.Is(err, render.ErrInvalidColor) ||
		errors.Is(err, render.ErrInvalidLogo)
}
