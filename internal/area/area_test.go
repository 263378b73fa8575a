package area

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		rows      []Row
		wantClean float64
		wantBleed float64
	}{
		{
			name:      "single row",
			rows:      []Row{{Width: 310, Height: 210, Quantity: 1}},
			wantClean: 0.0651,
			wantBleed: 0.071764,
		},
		{
			name: "quantity multiplies area",
			rows: []Row{
				{Width: 1000, Height: 1000, Quantity: 2},
				{Width: 100, Height: 100, Quantity: 3},
			},
			wantClean: 2.03,
			wantBleed: 2*1.012*1.012 + 3*0.112*0.112,
		},
		{
			name:      "zero quantity",
			rows:      []Row{{Width: 310, Height: 210, Quantity: 0}},
			wantClean: 0,
			wantBleed: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Calculate(tt.rows)
			require.NoError(t, err)
			require.Len(t, got.Rows, len(tt.rows))
			assert.InDelta(t, tt.wantClean, got.TotalClean, 1e-9)
			assert.InDelta(t, tt.wantBleed, got.TotalBleed, 1e-9)
		})
	}
}

func TestCalculate_RowLimits(t *testing.T) {
	_, err := Calculate(nil)
	assert.ErrorIs(t, err, ErrNoRows)

	rows := make([]Row, MaxRows+1)
	_, err = Calculate(rows)
	assert.ErrorIs(t, err, ErrTooManyRows)

	_, err = Calculate(rows[:MaxRows])
	assert.NoError(t, err)
}
