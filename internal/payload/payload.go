// Пакет payload — детерминированное преобразование структурированных
// данных в канонический текст, который кодируется в QR-символ.
//
// Форматы являются контрактом со сторонними сканерами: любое
// отклонение ломает распознавание на реальных устройствах.
package payload

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
)

// Ошибки кодирования.
var (
	// ErrValidation — отсутствует обязательное поле или значение недопустимо.
	ErrValidation = errors.New("некорректные данные")
	// ErrUnknownKind — тип данных не поддерживается.
	ErrUnknownKind = errors.New("неизвестный тип данных")
)

// Encode декодирует structuredData в типизированный ввод для kind
// и возвращает канонический текст.
func Encode(kind model.Kind, data json.RawMessage) (string, error) {
	switch kind {
	case model.KindSMS:
		var in SMS
		if err := decodeStrict(data, &in); err != nil {
			return "", err
		}
		return EncodeSMS(in)
	case model.KindMail:
		var in Mail
		if err := decodeStrict(data, &in); err != nil {
			return "", err
		}
		return EncodeMail(in)
	case model.KindWiFi:
		var in WiFi
		if err := decodeStrict(data, &in); err != nil {
			return "", err
		}
		return EncodeWiFi(in)
	case model.KindVCard:
		var in VCard
		if err := decodeStrict(data, &in); err != nil {
			return "", err
		}
		return EncodeVCard(in)
	case model.KindURL:
		var in URL
		if err := decodeStrict(data, &in); err != nil {
			return "", err
		}
		return EncodeURL(in)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}

// decodeStrict разбирает JSON-объект, отвергая неизвестные поля.
func decodeStrict(data json.RawMessage, dst any) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: пустые данные", ErrValidation)
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	if dec.More() {
		return fmt.Errorf("%w: лишние данные после JSON-объекта", ErrValidation)
	}
	return nil
}

// required возвращает ошибку валидации, если значение пустое.
func required(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: поле %s обязательно", ErrValidation, field)
	}
	return nil
}
