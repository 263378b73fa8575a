package distortion

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculate(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name            string
		printLength     float64
		thickness       float64
		wantCoefficient float64
		wantPlateLength float64
		wantDifference  float64
	}{
		{
			name:            "2.54 mm plate, 1000 mm print",
			printLength:     1000,
			thickness:       2.54,
			wantCoefficient: 98.484,
			wantPlateLength: 984.84,
			wantDifference:  1.516,
		},
		{
			name:            "1.14 mm plate, 500 mm print",
			printLength:     500,
			thickness:       1.14,
			wantCoefficient: 98.788,
			wantPlateLength: 493.94,
			wantDifference:  1.212,
		},
		{
			name:            "thickness with float noise hits the same row",
			printLength:     1000,
			thickness:       2.5400000001,
			wantCoefficient: 98.484,
			wantPlateLength: 984.84,
			wantDifference:  1.516,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Calculate(tt.printLength, tt.thickness)
			require.NoError(t, err)
			assert.InDelta(t, tt.wantCoefficient, got.Coefficient, 1e-9)
			assert.InDelta(t, tt.wantPlateLength, got.PlateLength, 1e-9)
			assert.InDelta(t, tt.wantDifference, got.Difference, 1e-9)
		})
	}
}

func TestCalculate_Errors(t *testing.T) {
	table := DefaultTable()

	tests := []struct {
		name        string
		printLength float64
		thickness   float64
		wantErr     error
	}{
		{name: "unknown thickness", printLength: 1000, thickness: 2.55, wantErr: ErrUnknownThickness},
		{name: "zero print length", printLength: 0, thickness: 2.54, wantErr: ErrInvalidPrintLength},
		{name: "negative print length", printLength: -10, thickness: 2.54, wantErr: ErrInvalidPrintLength},
		{name: "NaN print length", printLength: math.NaN(), thickness: 2.54, wantErr: ErrInvalidPrintLength},
		{name: "NaN thickness", printLength: 1000, thickness: math.NaN(), wantErr: ErrUnknownThickness},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := table.Calculate(tt.printLength, tt.thickness)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, Result{}, got)
		})
	}
}

func TestDefaultTable(t *testing.T) {
	a := DefaultTable()
	b := DefaultTable()
	require.Equal(t, 16, a.Len())

	a.Add(Entry{Thickness: 7, K: 45, Difference: 8})
	assert.Equal(t, 17, a.Len())
	assert.Equal(t, 16, b.Len(), "tables do not share storage")
}

func TestTable_Edit(t *testing.T) {
	table := NewTable([]Entry{{Thickness: 1.14, K: 6.06, Difference: 1.0821}})

	t.Run("add and look up", func(t *testing.T) {
		table.Add(Entry{Thickness: 1.7, K: 9.9, Difference: 1.7679})
		e, ok := table.Lookup(1.70)
		require.True(t, ok)
		assert.Equal(t, 9.9, e.K)
	})

	t.Run("update cell", func(t *testing.T) {
		require.NoError(t, table.Update(1, FieldK, 10))
		e, ok := table.Lookup(1.7)
		require.True(t, ok)
		assert.Equal(t, 10.0, e.K)

		require.NoError(t, table.Update(1, FieldThickness, 1.8))
		_, ok = table.Lookup(1.7)
		assert.False(t, ok)
	})

	t.Run("update errors", func(t *testing.T) {
		assert.ErrorIs(t, table.Update(5, FieldK, 1), ErrIndexOutOfRange)
		assert.ErrorIs(t, table.Update(0, "width", 1), ErrUnknownField)
	})

	t.Run("remove keeps at least one row", func(t *testing.T) {
		require.NoError(t, table.Remove(0))
		assert.Equal(t, 1, table.Len())
		assert.ErrorIs(t, table.Remove(0), ErrLastEntry)
		assert.ErrorIs(t, table.Remove(3), ErrIndexOutOfRange)
	})

	t.Run("duplicate thickness picks the first row", func(t *testing.T) {
		tbl := NewTable([]Entry{{Thickness: 2, K: 1}, {Thickness: 2, K: 2}})
		e, ok := tbl.Lookup(2)
		require.True(t, ok)
		assert.Equal(t, 1.0, e.K)
	})
}

func TestEntries_ReturnsCopy(t *testing.T) {
	table := DefaultTable()
	entries := table.Entries()
	entries[0].K = 999

	e, ok := table.Lookup(0.76)
	require.True(t, ok)
	assert.Equal(t, 3.67, e.K)
}
