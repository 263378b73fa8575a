// Package distortion рассчитывает коэффициент дисторсии флексоформы:
// поправку к длине макета, компенсирующую растяжение пластины при монтаже на цилиндр.
//
// Константа K берётся из таблицы по толщине пластины. Толщина сравнивается
// как дискретный ключ в сотых долях миллиметра, а не как число с плавающей точкой.
package distortion

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrUnknownThickness в таблице нет строки для запрошенной толщины.
	ErrUnknownThickness = errors.New("unknown plate thickness")
	// ErrInvalidPrintLength длина печати не положительна или не число.
	ErrInvalidPrintLength = errors.New("print length must be a positive number")
	// ErrLastEntry попытка удалить последнюю строку таблицы.
	ErrLastEntry = errors.New("table must keep at least one entry")
	// ErrIndexOutOfRange индекс строки вне таблицы.
	ErrIndexOutOfRange = errors.New("entry index out of range")
	// ErrUnknownField неизвестное имя колонки при редактировании.
	ErrUnknownField = errors.New("unknown table field")
)

// Entry строка таблицы дисторсии.
type Entry struct {
	Thickness  float64 `json:"thickness" validate:"gte=0"`
	K          float64 `json:"k" validate:"gte=0"`
	Difference float64 `json:"difference" validate:"gte=0"`
}

// Key возвращает дискретный ключ строки.
func (e Entry) Key() int {
	return Key(e.Thickness)
}

// Key переводит толщину в сотые доли миллиметра: Key(2.54) == 254.
func Key(thickness float64) int {
	return int(math.Round(thickness * 100))
}

// Field редактируемая колонка таблицы.
type Field string

const (
	FieldThickness  Field = "thickness"
	FieldK          Field = "k"
	FieldDifference Field = "difference"
)

// Result результат расчёта.
type Result struct {
	Coefficient float64 `json:"coefficient"`
	PlateLength float64 `json:"plateLength"`
	Difference  float64 `json:"difference"`
}

var seed = []Entry{
	{Thickness: 0.76, K: 3.6700, Difference: 0.6554},
	{Thickness: 1.14, K: 6.0600, Difference: 1.0821},
	{Thickness: 1.70, K: 9.9000, Difference: 1.7679},
	{Thickness: 2.29, K: 13.5700, Difference: 2.4232},
	{Thickness: 2.54, K: 15.1600, Difference: 2.7071},
	{Thickness: 2.72, K: 16.2800, Difference: 2.9071},
	{Thickness: 2.84, K: 17.0800, Difference: 3.0500},
	{Thickness: 3.18, K: 19.1500, Difference: 3.4196},
	{Thickness: 3.94, K: 23.9400, Difference: 4.2750},
	{Thickness: 4.32, K: 26.3400, Difference: 4.7036},
	{Thickness: 4.70, K: 28.7300, Difference: 5.1304},
	{Thickness: 5.00, K: 30.6400, Difference: 5.4714},
	{Thickness: 5.51, K: 33.8400, Difference: 6.0429},
	{Thickness: 6.02, K: 37.0000, Difference: 6.6071},
	{Thickness: 6.35, K: 39.1000, Difference: 6.9821},
	{Thickness: 6.50, K: 40.0400, Difference: 7.1500},
}

// Table редактируемая в памяти таблица констант. Не потокобезопасна:
// таблица принадлежит одному запросу или одной пользовательской сессии.
type Table struct {
	entries []Entry
}

// DefaultTable возвращает новую копию стандартной таблицы из 16 строк.
func DefaultTable() *Table {
	return NewTable(seed)
}

// NewTable создаёт таблицу из копии переданных строк.
func NewTable(entries []Entry) *Table {
	t := &Table{entries: make([]Entry, len(entries))}
	copy(t.entries, entries)
	return t
}

// Entries возвращает копию строк таблицы.
func (t *Table) Entries() []Entry {
	out := make([]Entry, len(t.entries))
	copy(out, t.entries)
	return out
}

// Len возвращает количество строк.
func (t *Table) Len() int {
	return len(t.entries)
}

// Lookup ищет первую строку с тем же ключом толщины.
func (t *Table) Lookup(thickness float64) (Entry, bool) {
	if math.IsNaN(thickness) || math.IsInf(thickness, 0) {
		return Entry{}, false
	}
	key := Key(thickness)
	for _, e := range t.entries {
		if e.Key() == key {
			return e, true
		}
	}
	return Entry{}, false
}

// Add добавляет строку в конец таблицы. Уникальность толщины не проверяется.
func (t *Table) Add(e Entry) {
	t.entries = append(t.entries, e)
}

// Update изменяет одну ячейку строки index.
func (t *Table) Update(index int, field Field, value float64) error {
	const op = "distortion.Table.Update"
	if index < 0 || index >= len(t.entries) {
		return fmt.Errorf("%s: %w", op, ErrIndexOutOfRange)
	}
	switch field {
	case FieldThickness:
		t.entries[index].Thickness = value
	case FieldK:
		t.entries[index].K = value
	case FieldDifference:
		t.entries[index].Difference = value
	default:
		return fmt.Errorf("%s: %q: %w", op, field, ErrUnknownField)
	}
	return nil
}

// Remove удаляет строку index; последняя строка не удаляется.
func (t *Table) Remove(index int) error {
	const op = "distortion.Table.Remove"
	if index < 0 || index >= len(t.entries) {
		return fmt.Errorf("%s: %w", op, ErrIndexOutOfRange)
	}
	if len(t.entries) <= 1 {
		return fmt.Errorf("%s: %w", op, ErrLastEntry)
	}
	t.entries = append(t.entries[:index], t.entries[index+1:]...)
	return nil
}

// Calculate находит K для толщины и применяет формулу
//
//	z = K * 100 / printLength
//	coefficient = 100 - z
//	plateLength = printLength * coefficient / 100
//
// При ошибке возвращается нулевой Result.
func (t *Table) Calculate(printLength, thickness float64) (Result, error) {
	const op = "distortion.Calculate"

	if math.IsNaN(printLength) || math.IsInf(printLength, 0) || printLength <= 0 {
		return Result{}, fmt.Errorf("%s: %w", op, ErrInvalidPrintLength)
	}
	entry, ok := t.Lookup(thickness)
	if !ok {
		return Result{}, fmt.Errorf("%s: %.2f mm: %w", op, thickness, ErrUnknownThickness)
	}

	z := entry.K * 100 / printLength
	coefficient := 100 - z
	return Result{
		Coefficient: coefficient,
		PlateLength: printLength * coefficient / 100,
		Difference:  z,
	}, nil
}
