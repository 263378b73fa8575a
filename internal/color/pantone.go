package color

import (
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Swatch эталонный цвет Pantone Solid Coated и его приближение в sRGB.
type Swatch struct {
	Name string
	Hex  string

	lab colorful.Color
}

// Coated возвращает метку для мелованной бумаги, например "Pantone 185 C".
func (s Swatch) Coated() string {
	return "Pantone " + s.Name + " C"
}

// Uncoated возвращает метку того же номера для немелованной бумаги.
func (s Swatch) Uncoated() string {
	return "Pantone " + s.Name + " U"
}

// Приближения sRGB для распространённых плашечных цветов.
// Для флексопечати этого достаточно для подсказки оператору, но не для цветопробы.
var palette = mustPalette([]Swatch{
	{Name: "Yellow", Hex: "#fedd00"},
	{Name: "012", Hex: "#ffd700"},
	{Name: "116", Hex: "#ffcd00"},
	{Name: "123", Hex: "#ffc72c"},
	{Name: "130", Hex: "#f2a900"},
	{Name: "137", Hex: "#ffa300"},
	{Name: "151", Hex: "#ff8200"},
	{Name: "165", Hex: "#ff671f"},
	{Name: "Orange 021", Hex: "#fe5000"},
	{Name: "Warm Red", Hex: "#f9423a"},
	{Name: "Red 032", Hex: "#ef3340"},
	{Name: "485", Hex: "#da291c"},
	{Name: "185", Hex: "#e4002b"},
	{Name: "186", Hex: "#c8102e"},
	{Name: "199", Hex: "#d50032"},
	{Name: "200", Hex: "#ba0c2f"},
	{Name: "213", Hex: "#e31c79"},
	{Name: "Rhodamine Red", Hex: "#e10098"},
	{Name: "Rubine Red", Hex: "#ce0058"},
	{Name: "Purple", Hex: "#bb29bb"},
	{Name: "Violet", Hex: "#440099"},
	{Name: "2685", Hex: "#330072"},
	{Name: "Blue 072", Hex: "#10069f"},
	{Name: "Reflex Blue", Hex: "#001489"},
	{Name: "286", Hex: "#0033a0"},
	{Name: "2728", Hex: "#0047bb"},
	{Name: "293", Hex: "#003da5"},
	{Name: "300", Hex: "#005eb8"},
	{Name: "Process Blue", Hex: "#0085ca"},
	{Name: "299", Hex: "#00a3e0"},
	{Name: "2995", Hex: "#00a9e0"},
	{Name: "320", Hex: "#009ca6"},
	{Name: "Green", Hex: "#00ab84"},
	{Name: "347", Hex: "#009a44"},
	{Name: "355", Hex: "#009639"},
	{Name: "368", Hex: "#78be20"},
	{Name: "375", Hex: "#97d700"},
	{Name: "382", Hex: "#c4d600"},
	{Name: "469", Hex: "#693f23"},
	{Name: "4625", Hex: "#4f2c1d"},
	{Name: "Cool Gray 1", Hex: "#d9d9d6"},
	{Name: "Cool Gray 7", Hex: "#97999b"},
	{Name: "Cool Gray 11", Hex: "#53565a"},
	{Name: "Black", Hex: "#2d2926"},
})

func mustPalette(swatches []Swatch) []Swatch {
	for i := range swatches {
		c, err := colorful.Hex(swatches[i].Hex)
		if err != nil {
			panic("color: bad palette entry " + swatches[i].Name + ": " + err.Error())
		}
		swatches[i].lab = c
	}
	return swatches
}

// NearestPantone возвращает ближайший по расстоянию в CIE Lab цвет палитры.
// Результат детерминирован: одинаковый вход даёт одинаковую метку.
func NearestPantone(c RGB) Swatch {
	target := colorful.Color{
		R: float64(clamp(c.R, 255)) / 255,
		G: float64(clamp(c.G, 255)) / 255,
		B: float64(clamp(c.B, 255)) / 255,
	}

	best := palette[0]
	bestDist := target.DistanceLab(best.lab)
	for _, s := range palette[1:] {
		if d := target.DistanceLab(s.lab); d < bestDist {
			best, bestDist = s, d
		}
	}
	return best
}
