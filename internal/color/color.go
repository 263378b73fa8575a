// Package color содержит преобразования цвета между HEX, RGB и CMYK,
// а также подбор ближайшего цвета Pantone из встроенной палитры.
// RGB используется как каноническое промежуточное представление.
package color

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// ErrInvalidFormat возвращается, если входная строка не является корректным цветом.
var ErrInvalidFormat = errors.New("invalid color format")

// Kind задаёт формат входного значения для Convert.
type Kind string

const (
	// KindHex строка из 6 шестнадцатеричных цифр, допускается ведущий '#'.
	KindHex Kind = "hex"
	// KindRGB три целых числа через запятую.
	KindRGB Kind = "rgb"
	// KindCMYK четыре целых числа через запятую, проценты.
	KindCMYK Kind = "cmyk"
)

var hexPattern = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// RGB цвет в пространстве sRGB, каналы 0..255.
type RGB struct {
	R, G, B int
}

// CMYK цвет в процентах 0..100.
type CMYK struct {
	C, M, Y, K int
}

// String возвращает каналы в виде "r, g, b".
func (c RGB) String() string {
	return fmt.Sprintf("%d, %d, %d", c.R, c.G, c.B)
}

// String возвращает каналы в виде "c, m, y, k".
func (c CMYK) String() string {
	return fmt.Sprintf("%d, %d, %d, %d", c.C, c.M, c.Y, c.K)
}

// Result результат Convert: исходный цвет во всех поддерживаемых представлениях.
type Result struct {
	RGB             RGB
	Hex             string
	CMYK            CMYK
	PantoneCoated   string
	PantoneUncoated string
}

// HexToRGB разбирает строку вида "#ff0000" или "FF0000".
func HexToRGB(hex string) (RGB, error) {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return RGB{}, ErrInvalidFormat
	}
	var ch [3]int
	for i := range ch {
		v, err := strconv.ParseUint(m[i+1], 16, 8)
		if err != nil {
			return RGB{}, ErrInvalidFormat
		}
		ch[i] = int(v)
	}
	return RGB{R: ch[0], G: ch[1], B: ch[2]}, nil
}

// RGBToHex возвращает строку в нижнем регистре с ведущим '#'.
func RGBToHex(r, g, b int) string {
	return fmt.Sprintf("#%02x%02x%02x", clamp(r, 255), clamp(g, 255), clamp(b, 255))
}

// RGBToCMYK переводит RGB в CMYK с округлением до целых процентов.
// Для чистого чёрного (k = 1) c, m, y равны нулю.
func RGBToCMYK(r, g, b int) CMYK {
	rn := float64(clamp(r, 255)) / 255
	gn := float64(clamp(g, 255)) / 255
	bn := float64(clamp(b, 255)) / 255

	k := 1 - math.Max(rn, math.Max(gn, bn))
	if k == 1 {
		return CMYK{K: 100}
	}
	c := (1 - rn - k) / (1 - k)
	m := (1 - gn - k) / (1 - k)
	y := (1 - bn - k) / (1 - k)

	return CMYK{
		C: percent(c),
		M: percent(m),
		Y: percent(y),
		K: percent(k),
	}
}

// CMYKToRGB выполняет обратное преобразование, входные значения в процентах.
func CMYKToRGB(c, m, y, k int) RGB {
	cn := float64(clamp(c, 100)) / 100
	mn := float64(clamp(m, 100)) / 100
	yn := float64(clamp(y, 100)) / 100
	kn := float64(clamp(k, 100)) / 100

	return RGB{
		R: int(math.Round(255 * (1 - cn) * (1 - kn))),
		G: int(math.Round(255 * (1 - mn) * (1 - kn))),
		B: int(math.Round(255 * (1 - yn) * (1 - kn))),
	}
}

// Convert разбирает value согласно kind и возвращает цвет во всех представлениях.
func Convert(kind Kind, value string) (Result, error) {
	const op = "color.Convert"

	var rgb RGB
	switch Kind(strings.ToLower(string(kind))) {
	case KindHex:
		parsed, err := HexToRGB(strings.TrimSpace(value))
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
		rgb = parsed
	case KindRGB:
		parts, err := parseInts(value, 3)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
		rgb = RGB{R: clamp(parts[0], 255), G: clamp(parts[1], 255), B: clamp(parts[2], 255)}
	case KindCMYK:
		parts, err := parseInts(value, 4)
		if err != nil {
			return Result{}, fmt.Errorf("%s: %w", op, err)
		}
		rgb = CMYKToRGB(parts[0], parts[1], parts[2], parts[3])
	default:
		return Result{}, fmt.Errorf("%s: unknown type %q: %w", op, kind, ErrInvalidFormat)
	}

	swatch := NearestPantone(rgb)
	return Result{
		RGB:             rgb,
		Hex:             RGBToHex(rgb.R, rgb.G, rgb.B),
		CMYK:            RGBToCMYK(rgb.R, rgb.G, rgb.B),
		PantoneCoated:   swatch.Coated(),
		PantoneUncoated: swatch.Uncoated(),
	}, nil
}

func parseInts(value string, want int) ([]int, error) {
	parts := strings.Split(value, ",")
	if len(parts) != want {
		return nil, ErrInvalidFormat
	}
	out := make([]int, 0, want)
	for _, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, ErrInvalidFormat
		}
		out = append(out, v)
	}
	return out, nil
}

func percent(v float64) int {
	return int(math.Round(v * 100))
}

func clamp(v, upper int) int {
	if v < 0 {
		return 0
	}
	if v > upper {
		return upper
	}
	return v
}
