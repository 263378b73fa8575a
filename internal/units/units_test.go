package units

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		name  string
		unit  Unit
		value float64
		want  any
	}{
		{name: "mm to inch", unit: MM, value: 25.4, want: Length{MM: 25.4, Inch: 1}},
		{name: "inch to mm", unit: Inch, value: 2, want: Length{MM: 50.8, Inch: 2}},
		{name: "lpi to dpi", unit: LPI, value: 150, want: Resolution{LPI: 150, DPI: 2400}},
		{name: "dpi to lpi", unit: DPI, value: 2540, want: Resolution{LPI: 158.75, DPI: 2540}},
		{name: "unit is case insensitive", unit: "MM", value: 0, want: Length{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Convert(tt.unit, tt.value)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConvert_Errors(t *testing.T) {
	_, err := Convert("cm", 1)
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = Convert(MM, math.NaN())
	assert.ErrorIs(t, err, ErrInvalidValue)

	_, err = Convert(DPI, math.Inf(1))
	assert.ErrorIs(t, err, ErrInvalidValue)
}
