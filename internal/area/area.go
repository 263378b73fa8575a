// Package area считает площадь форм в квадратных метрах: чистую площадь
// и площадь с припуском (bleed) по 12 мм на каждое измерение.
package area

import (
	"errors"
	"fmt"
)

const (
	// BleedMargin припуск в миллиметрах, добавляемый к ширине и высоте.
	BleedMargin = 12.0
	// MaxRows максимальное число строк в одном расчёте.
	MaxRows = 10

	mm2PerM2 = 1_000_000.0
)

var (
	// ErrNoRows расчёт без строк.
	ErrNoRows = errors.New("at least one row is required")
	// ErrTooManyRows превышен MaxRows.
	ErrTooManyRows = errors.New("too many rows")
)

// Row размеры формы в миллиметрах и количество.
type Row struct {
	Width    float64 `json:"width" validate:"gte=0"`
	Height   float64 `json:"height" validate:"gte=0"`
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// RowResult площади одной строки в м².
type RowResult struct {
	Row
	CleanArea float64 `json:"cleanArea"`
	BleedArea float64 `json:"bleedArea"`
}

// Result построчные площади и итоги.
type Result struct {
	Rows       []RowResult `json:"rows"`
	TotalClean float64     `json:"totalClean"`
	TotalBleed float64     `json:"totalBleed"`
}

// Clean возвращает площадь без припуска.
func (r Row) Clean() float64 {
	return r.Width * r.Height / mm2PerM2 * r.Quantity
}

// Bleed возвращает площадь с припуском BleedMargin.
func (r Row) Bleed() float64 {
	return (r.Width + BleedMargin) * (r.Height + BleedMargin) / mm2PerM2 * r.Quantity
}

// Calculate считает площади для 1..MaxRows строк.
func Calculate(rows []Row) (Result, error) {
	const op = "area.Calculate"

	switch {
	case len(rows) == 0:
		return Result{}, fmt.Errorf("%s: %w", op, ErrNoRows)
	case len(rows) > MaxRows:
		return Result{}, fmt.Errorf("%s: %d rows, max %d: %w", op, len(rows), MaxRows, ErrTooManyRows)
	}

	res := Result{Rows: make([]RowResult, 0, len(rows))}
	for _, r := range rows {
		rr := RowResult{Row: r, CleanArea: r.Clean(), BleedArea: r.Bleed()}
		res.TotalClean += rr.CleanArea
		res.TotalBleed += rr.BleedArea
		res.Rows = append(res.Rows, rr)
	}
	return res, nil
}
