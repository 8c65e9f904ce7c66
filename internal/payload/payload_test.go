package payload

import (
	"encoding/json"
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/emersion/go-vcard"

	"github.com/bigkaa/goartstore/qr-studio/internal/domain/model"
)

func TestEncode_Examples(t *testing.T) {
	tests := []struct {
		name string
		kind model.Kind
		data string
		want string
	}{
		{
			name: "wifi",
			kind: model.KindWiFi,
			data: `{"ssid":"Cafe","password":"secret1","encryption":"WPA","hidden":false}`,
			want: "WIFI:T:WPA;S:Cafe;P:secret1;H:false;;",
		},
		{
			name: "wifi по умолчанию WPA",
			kind: model.KindWiFi,
			data: `{"ssid":"Cafe","password":"secret1"}`,
			want: "WIFI:T:WPA;S:Cafe;P:secret1;H:false;;",
		},
		{
			name: "wifi открытая скрытая сеть",
			kind: model.KindWiFi,
			data: `{"ssid":"Lab","encryption":"nopass","hidden":true}`,
			want: "WIFI:T:nopass;S:Lab;P:;H:true;;",
		},
		{
			name: "sms",
			kind: model.KindSMS,
			data: `{"number":"+15551234","message":"Hi"}`,
			want: "SMSTO:+15551234:Hi",
		},
		{
			name: "mail",
			kind: model.KindMail,
			data: `{"to":"a@b.co","subject":"Hello world","body":"x&y=z"}`,
			want: "mailto:a@b.co?subject=Hello%20world&body=x%26y%3Dz",
		},
		{
			name: "url",
			kind: model.KindURL,
			data: `{"url":"https://example.com/a b?q=1"}`,
			want: "https://example.com/a b?q=1",
		},
		{
			name: "vcard минимальная",
			kind: model.KindVCard,
			data: `{"firstName":"Ada","lastName":"Lovelace"}`,
			want: "BEGIN:VCARD\nVERSION:3.0\nN:Lovelace;Ada;;;\nFN:Ada Lovelace\nEND:VCARD",
		},
		{
			name: "vcard полная",
			kind: model.KindVCard,
			data: `{"firstName":"Ada","lastName":"Lovelace","company":"Engines","title":"Analyst",` +
				`"phone":"+441234","email":"ada@example.com","website":"https://ada.example","address":"12 St James Sq"}`,
			want: "BEGIN:VCARD\nVERSION:3.0\nN:Lovelace;Ada;;;\nFN:Ada Lovelace\nORG:Engines\nTITLE:Analyst\n" +
				"TEL:+441234\nEMAIL:ada@example.com\nURL:https://ada.example\nADR:;;12 St James Sq;;;;\nEND:VCARD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Encode(tt.kind, json.RawMessage(tt.data))
			if err != nil {
				t.Fatalf("Encode() ошибка: %v", err)
			}
			if got != tt.want {
				t.Errorf("Encode() = %q, ожидалось %q", got, tt.want)
			}
		})
	}
}

func TestEncode_Deterministic(t *testing.T) {
	inputs := map[model.Kind]string{
		model.KindSMS:   `{"number":"+1","message":"m"}`,
		model.KindMail:  `{"to":"a@b.c","subject":"s ü","body":"b\nc"}`,
		model.KindWiFi:  `{"ssid":"s","password":"p","hidden":true}`,
		model.KindVCard: `{"firstName":"A","lastName":"B","email":"a@b.c"}`,
		model.KindURL:   `{"url":"https://x.y"}`,
	}
	for kind, data := range inputs {
		first, err := Encode(kind, json.RawMessage(data))
		if err != nil {
			t.Fatalf("%s: ошибка: %v", kind, err)
		}
		for i := 0; i < 5; i++ {
			again, _ := Encode(kind, json.RawMessage(data))
			if again != first {
				t.Fatalf("%s: результат изменился: %q != %q", kind, again, first)
			}
		}
	}
}

func TestEncode_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		kind model.Kind
		data string
	}{
		{"sms без номера", model.KindSMS, `{"message":"Hi"}`},
		{"sms без текста", model.KindSMS, `{"number":"+1"}`},
		{"mail без адреса", model.KindMail, `{"subject":"s","body":"b"}`},
		{"wifi без ssid", model.KindWiFi, `{"password":"p"}`},
		{"wifi WPA без пароля", model.KindWiFi, `{"ssid":"s"}`},
		{"wifi неизвестное шифрование", model.KindWiFi, `{"ssid":"s","password":"p","encryption":"ROT13"}`},
		{"vcard без фамилии", model.KindVCard, `{"firstName":"A"}`},
		{"url пробелы", model.KindURL, `{"url":"   "}`},
		{"неизвестное поле", model.KindURL, `{"url":"https://x","extra":1}`},
		{"пустые данные", model.KindSMS, ``},
		{"не JSON", model.KindSMS, `number=1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Encode(tt.kind, json.RawMessage(tt.data))
			if !errors.Is(err, ErrValidation) {
				t.Errorf("ожидалась ErrValidation, получено: %v", err)
			}
		})
	}
}

func TestEncode_UnknownKind(t *testing.T) {
	_, err := Encode("geo", json.RawMessage(`{}`))
	if !errors.Is(err, ErrUnknownKind) {
		t.Errorf("ожидалась ErrUnknownKind, получено: %v", err)
	}
}

func TestVCard_RoundTrip(t *testing.T) {
	in := VCard{
		FirstName: "Grace",
		LastName:  "Hopper",
		Title:     "Rear Admiral",
		Email:     "grace@navy.example",
		Address:   "1 Navy Way",
	}
	text, err := EncodeVCard(in)
	if err != nil {
		t.Fatalf("EncodeVCard() ошибка: %v", err)
	}

	card, err := vcard.NewDecoder(strings.NewReader(text)).Decode()
	if err != nil {
		t.Fatalf("vcard.Decode() ошибка: %v", err)
	}

	name := card.Name()
	if name == nil || name.GivenName != in.FirstName || name.FamilyName != in.LastName {
		t.Errorf("N = %+v, ожидалось %s %s", name, in.FirstName, in.LastName)
	}
	if got := card.Value(vcard.FieldFormattedName); got != "Grace Hopper" {
		t.Errorf("FN = %q", got)
	}
	if got := card.Value(vcard.FieldTitle); got != in.Title {
		t.Errorf("TITLE = %q, ожидалось %q", got, in.Title)
	}
	if got := card.Value(vcard.FieldEmail); got != in.Email {
		t.Errorf("EMAIL = %q, ожидалось %q", got, in.Email)
	}
	if addr := card.Address(); addr == nil || addr.StreetAddress != in.Address {
		t.Errorf("ADR = %+v, ожидался адрес %q", addr, in.Address)
	}

	// Пустые необязательные поля не должны появляться даже как пустые ключи
	for _, field := range []string{vcard.FieldOrganization, vcard.FieldTelephone, vcard.FieldURL} {
		if _, ok := card[field]; ok {
			t.Errorf("поле %s не должно присутствовать", field)
		}
	}
	if strings.Contains(text, "\n\n") {
		t.Error("vCard содержит пустую строку")
	}
}

// parseWiFi разбирает WIFI:-строку в пары ключ-значение.
func parseWiFi(t *testing.T, s string) map[string]string {
	t.Helper()
	if !strings.HasPrefix(s, "WIFI:") || !strings.HasSuffix(s, ";;") {
		t.Fatalf("некорректная WIFI-строка: %q", s)
	}
	fields := map[string]string{}
	for _, part := range strings.Split(strings.TrimSuffix(strings.TrimPrefix(s, "WIFI:"), ";;"), ";") {
		k, v, ok := strings.Cut(part, ":")
		if !ok {
			t.Fatalf("поле без разделителя: %q", part)
		}
		fields[k] = v
	}
	return fields
}

func TestWiFi_RoundTrip(t *testing.T) {
	in := WiFi{SSID: "Home Net", Password: "p@ss word", Encryption: WiFiWEP, Hidden: true}
	text, err := EncodeWiFi(in)
	if err != nil {
		t.Fatalf("EncodeWiFi() ошибка: %v", err)
	}

	got := parseWiFi(t, text)
	want := map[string]string{"T": "WEP", "S": "Home Net", "P": "p@ss word", "H": "true"}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, ожидалось %q", k, got[k], v)
		}
	}
	if len(got) != len(want) {
		t.Errorf("лишние поля: %v", got)
	}
}

func TestSMS_RoundTrip(t *testing.T) {
	text, err := EncodeSMS(SMS{Number: "+15551234", Message: "See you at 5: ok?"})
	if err != nil {
		t.Fatalf("EncodeSMS() ошибка: %v", err)
	}
	rest, ok := strings.CutPrefix(text, "SMSTO:")
	if !ok {
		t.Fatalf("нет префикса SMSTO: %q", text)
	}
	number, message, _ := strings.Cut(rest, ":")
	if number != "+15551234" || message != "See you at 5: ok?" {
		t.Errorf("number = %q, message = %q", number, message)
	}
}

func TestMail_RoundTrip(t *testing.T) {
	in := Mail{To: "team@example.com", Subject: "Q3 plan & budget", Body: "Hi all,\nsee 50% below?"}
	text, err := EncodeMail(in)
	if err != nil {
		t.Fatalf("EncodeMail() ошибка: %v", err)
	}
	if strings.Contains(text, "+") {
		t.Errorf("пробел закодирован как '+': %q", text)
	}

	u, err := url.Parse(text)
	if err != nil {
		t.Fatalf("url.Parse() ошибка: %v", err)
	}
	if u.Scheme != "mailto" || u.Opaque != in.To {
		t.Errorf("scheme = %q, opaque = %q", u.Scheme, u.Opaque)
	}
	q := u.Query()
	if q.Get("subject") != in.Subject {
		t.Errorf("subject = %q, ожидалось %q", q.Get("subject"), in.Subject)
	}
	if q.Get("body") != in.Body {
		t.Errorf("body = %q, ожидалось %q", q.Get("body"), in.Body)
	}
}
