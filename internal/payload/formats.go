package payload

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// SMS — черновик SMS-сообщения.
type SMS struct {
	Number  string `json:"number"`
	Message string `json:"message"`
}

// EncodeSMS формирует SMSTO:<number>:<message>.
func EncodeSMS(in SMS) (string, error) {
	if err := required("number", in.Number); err != nil {
		return "", err
	}
	if err := required("message", in.Message); err != nil {
		return "", err
	}
	return "SMSTO:" + in.Number + ":" + in.Message, nil
}

// Mail — черновик письма.
type Mail struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// EncodeMail формирует mailto:-ссылку. Тема и тело кодируются
// процентной кодировкой, пробел всегда как %20.
func EncodeMail(in Mail) (string, error) {
	if err := required("to", in.To); err != nil {
		return "", err
	}
	if err := required("subject", in.Subject); err != nil {
		return "", err
	}
	if err := required("body", in.Body); err != nil {
		return "", err
	}
	return "mailto:" + in.To +
		"?subject=" + percentEncode(in.Subject) +
		"&body=" + percentEncode(in.Body), nil
}

// percentEncode кодирует строку для query-части mailto:.
// url.QueryEscape кодирует пробел как "+", что mailto-клиенты
// показывают буквально, поэтому он заменяется на %20.
func percentEncode(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// Допустимые значения шифрования WiFi.
const (
	WiFiWPA    = "WPA"
	WiFiWEP    = "WEP"
	WiFiNoPass = "nopass"
)

// WiFi — учётные данные беспроводной сети.
type WiFi struct {
	SSID       string `json:"ssid"`
	Password   string `json:"password"`
	Encryption string `json:"encryption"`
	Hidden     bool   `json:"hidden"`
}

// EncodeWiFi формирует WIFI:T:<enc>;S:<ssid>;P:<password>;H:<hidden>;;.
// Пустое шифрование означает WPA. Для открытой сети (nopass) пароль не обязателен.
func EncodeWiFi(in WiFi) (string, error) {
	if err := required("ssid", in.SSID); err != nil {
		return "", err
	}

	enc := in.Encryption
	if enc == "" {
		enc = WiFiWPA
	}
	switch enc {
	case WiFiWPA, WiFiWEP:
		if err := required("password", in.Password); err != nil {
			return "", err
		}
	case WiFiNoPass:
	default:
		return "", fmt.Errorf("%w: недопустимое шифрование %q, допустимые: WPA, WEP, nopass", ErrValidation, enc)
	}

	return "WIFI:T:" + enc +
		";S:" + in.SSID +
		";P:" + in.Password +
		";H:" + strconv.FormatBool(in.Hidden) + ";;", nil
}

// VCard — контактная карточка.
type VCard struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Company   string `json:"company,omitempty"`
	Title     string `json:"title,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Email     string `json:"email,omitempty"`
	Website   string `json:"website,omitempty"`
	Address   string `json:"address,omitempty"`
}

// EncodeVCard формирует vCard 3.0. Строки необязательных полей
// без значения не выводятся.
func EncodeVCard(in VCard) (string, error) {
	if err := required("firstName", in.FirstName); err != nil {
		return "", err
	}
	if err := required("lastName", in.LastName); err != nil {
		return "", err
	}

	lines := []string{
		"BEGIN:VCARD",
		"VERSION:3.0",
		"N:" + in.LastName + ";" + in.FirstName + ";;;",
		"FN:" + in.FirstName + " " + in.LastName,
	}

	optional := []struct {
		prefix, value, suffix string
	}{
		{"ORG:", in.Company, ""},
		{"TITLE:", in.Title, ""},
		{"TEL:", in.Phone, ""},
		{"EMAIL:", in.Email, ""},
		{"URL:", in.Website, ""},
		{"ADR:;;", in.Address, ";;;;"},
	}
	for _, o := range optional {
		if strings.TrimSpace(o.value) == "" {
			continue
		}
		lines = append(lines, o.prefix+o.value+o.suffix)
	}

	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\n"), nil
}

// URL — произвольная ссылка.
type URL struct {
	URL string `json:"url"`
}

// EncodeURL возвращает ссылку без изменений.
func EncodeURL(in URL) (string, error) {
	if err := required("url", in.URL); err != nil {
		return "", err
	}
	return in.URL, nil
}
