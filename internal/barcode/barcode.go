// Package barcode проверяет данные для генерации QR, Code 128 и EAN-13
// и работает с пресетами. Сами изображения строит клиент.
package barcode

import (
	"errors"
	"fmt"
	"strings"
)

// Type тип кода.
type Type string

const (
	QR      Type = "qr"
	Code128 Type = "code128"
	EAN13   Type = "ean13"
)

const (
	// qrMaxBytes ёмкость QR версии 40 в байтовом режиме с уровнем коррекции L.
	qrMaxBytes = 2953
	// code128MaxLen практический предел длины для печати на этикетке.
	code128MaxLen = 80
)

var (
	ErrUnknownType = errors.New("unknown code type")
	ErrEmptyData   = errors.New("data is empty")
	ErrDataTooLong = errors.New("data is too long")
	ErrInvalidData = errors.New("data contains characters not allowed for the code type")
	ErrBadChecksum = errors.New("EAN-13 check digit mismatch")
	ErrEmptyName   = errors.New("preset name is empty")
)

// ParseType возвращает Type для строки без учёта регистра.
func ParseType(s string) (Type, error) {
	switch t := Type(strings.ToLower(strings.TrimSpace(s))); t {
	case QR, Code128, EAN13:
		return t, nil
	default:
		return "", fmt.Errorf("barcode.ParseType: %q: %w", s, ErrUnknownType)
	}
}

// Normalize проверяет data для типа t и возвращает строку, которую нужно кодировать.
// Для EAN-13 из 12 цифр дописывается контрольная цифра.
func Normalize(t Type, data string) (string, error) {
	const op = "barcode.Normalize"

	if data == "" {
		return "", fmt.Errorf("%s: %w", op, ErrEmptyData)
	}

	switch t {
	case QR:
		if len(data) > qrMaxBytes {
			return "", fmt.Errorf("%s: %d bytes: %w", op, len(data), ErrDataTooLong)
		}
		return data, nil
	case Code128:
		if len(data) > code128MaxLen {
			return "", fmt.Errorf("%s: %d chars: %w", op, len(data), ErrDataTooLong)
		}
		for i := 0; i < len(data); i++ {
			if data[i] > 127 {
				return "", fmt.Errorf("%s: %w", op, ErrInvalidData)
			}
		}
		return data, nil
	case EAN13:
		return normalizeEAN13(data)
	default:
		return "", fmt.Errorf("%s: %q: %w", op, t, ErrUnknownType)
	}
}

func normalizeEAN13(data string) (string, error) {
	const op = "barcode.normalizeEAN13"

	for _, r := range data {
		if r < '0' || r > '9' {
			return "", fmt.Errorf("%s: %w", op, ErrInvalidData)
		}
	}
	switch len(data) {
	case 12:
		return data + string(rune('0'+CheckDigit(data))), nil
	case 13:
		if CheckDigit(data[:12]) != int(data[12]-'0') {
			return "", fmt.Errorf("%s: %w", op, ErrBadChecksum)
		}
		return data, nil
	default:
		return "", fmt.Errorf("%s: need 12 or 13 digits, got %d: %w", op, len(data), ErrInvalidData)
	}
}

// CheckDigit считает контрольную цифру EAN-13 для 12 цифр.
// Веса 1 и 3 чередуются слева направо.
func CheckDigit(digits12 string) int {
	sum := 0
	for i := 0; i < 12 && i < len(digits12); i++ {
		d := int(digits12[i] - '0')
		if i%2 == 1 {
			d *= 3
		}
		sum += d
	}
	return (10 - sum%10) % 10
}

// SplitLines разбивает текст пакетной генерации на непустые строки без пробелов по краям.
func SplitLines(text string) []string {
	var out []string
	for _, line := range strings.Split(text, "\n") {
		if l := strings.TrimSpace(line); l != "" {
			out = append(out, l)
		}
	}
	return out
}
