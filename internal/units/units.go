// Package units переводит единицы, которыми пользуется препресс:
// миллиметры и дюймы, линиатуру (LPI) и разрешение (DPI).
package units

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

const (
	// MMPerInch миллиметров в дюйме.
	MMPerInch = 25.4
	// DPIPerLPI приближённое соотношение разрешения и линиатуры (16 уровней на точку растра).
	DPIPerLPI = 16.0
)

// ErrUnknownUnit возвращается для неподдерживаемой единицы.
var ErrUnknownUnit = errors.New("unknown unit")

// ErrInvalidValue возвращается для NaN и бесконечностей.
var ErrInvalidValue = errors.New("invalid value")

// Unit единица измерения входного значения.
type Unit string

const (
	MM   Unit = "mm"
	Inch Unit = "inch"
	LPI  Unit = "lpi"
	DPI  Unit = "dpi"
)

// Length длина в обеих единицах.
type Length struct {
	MM   float64 `json:"mm"`
	Inch float64 `json:"inch"`
}

// Resolution линиатура и соответствующее разрешение.
type Resolution struct {
	LPI float64 `json:"lpi"`
	DPI float64 `json:"dpi"`
}

func LengthFromMM(mm float64) Length         { return Length{MM: mm, Inch: mm / MMPerInch} }
func LengthFromInch(in float64) Length       { return Length{MM: in * MMPerInch, Inch: in} }
func ResolutionFromLPI(l float64) Resolution { return Resolution{LPI: l, DPI: l * DPIPerLPI} }
func ResolutionFromDPI(d float64) Resolution { return Resolution{LPI: d / DPIPerLPI, DPI: d} }

// Convert возвращает Length для mm/inch и Resolution для lpi/dpi.
func Convert(unit Unit, value float64) (any, error) {
	const op = "units.Convert"
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return nil, fmt.Errorf("%s: %w", op, ErrInvalidValue)
	}

	switch Unit(strings.ToLower(string(unit))) {
	case MM:
		return LengthFromMM(value), nil
	case Inch:
		return LengthFromInch(value), nil
	case LPI:
		return ResolutionFromLPI(value), nil
	case DPI:
		return ResolutionFromDPI(value), nil
	default:
		return nil, fmt.Errorf("%s: %q: %w", op, unit, ErrUnknownUnit)
	}
}
