// Пакет model — доменные модели QR Studio.
// Artifact — маппинг таблицы qr_artifacts, Owner — таблицы owners
// (владеет сервис аккаунтов, здесь только чтение плана).
package model

import (
	"encoding/json"
	"time"
)

// Kind — тип структурированных данных артефакта.
type Kind string

const (
	KindSMS   Kind = "sms"
	KindMail  Kind = "mail"
	KindWiFi  Kind = "wifi"
	KindVCard Kind = "vcard"
	KindURL   Kind = "url"
)

// Kinds — все поддерживаемые типы в порядке отображения.
var Kinds = []Kind{KindSMS, KindMail, KindWiFi, KindVCard, KindURL}

// Valid сообщает, входит ли k в закрытый набор типов.
func (k Kind) Valid() bool {
	switch k {
	case KindSMS, KindMail, KindWiFi, KindVCard, KindURL:
		return true
	}
	return false
}

// Plan — тарифный план владельца.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPaid Plan = "paid"
)

// Artifact — QR-артефакт в таблице qr_artifacts.
// Все поля, кроме Label, неизменяемы после создания.
type Artifact struct {
	// ID — UUID артефакта
	ID string
	// OwnerID — идентификатор владельца (sub из JWT)
	OwnerID string
	// Kind — тип данных
	Kind Kind
	// StructuredData — исходный типизированный ввод (JSON)
	StructuredData json.RawMessage
	// CanonicalPayload — точный текст, закодированный в символ
	CanonicalPayload string
	// ArtifactPath — относительный путь растрового файла в хранилище
	ArtifactPath string
	// Label — пользовательская метка (опционально)
	Label *string
	// CreatedAt — время создания (UTC), основа окна квоты
	CreatedAt time.Time
	// TrackingEnabled и ScanCount ведёт сервис статистики
	TrackingEnabled bool
	ScanCount       int64
}

// CreationLogEntry — запись журнала qr_creation_log.
type CreationLogEntry struct {
	ArtifactID string
	OwnerID    string
	Kind       Kind
	CreatedAt  time.Time
}
