package barcode

import "fmt"

// Preset сохранённая пользователем комбинация типа кода и данных.
type Preset struct {
	Name string `json:"name"`
	Type Type   `json:"type"`
	Data string `json:"data"`
}

// Validate проверяет пресет и возвращает его с нормализованными данными.
func (p Preset) Validate() (Preset, error) {
	const op = "barcode.Preset.Validate"
	if p.Name == "" {
		return p, fmt.Errorf("%s: %w", op, ErrEmptyName)
	}
	t, err := ParseType(string(p.Type))
	if err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}
	data, err := Normalize(t, p.Data)
	if err != nil {
		return p, fmt.Errorf("%s: %w", op, err)
	}
	return Preset{Name: p.Name, Type: t, Data: data}, nil
}
