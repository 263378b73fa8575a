// Package barcode реализует HTTP обработчик проверки данных для QR и штрихкодов.
//
// Принимает либо список пресетов, либо пакет строк одного типа кода и
// возвращает результат проверки для каждого элемента. Изображения строит клиент.
package barcode

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/flexo-toolkit/internal/barcode"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
)

// maxItems ограничивает размер одного пакета.
const maxItems = 500

// Request пресеты или пакетный текст. Lines разбивается по переводам строк.
type Request struct {
	Presets []barcode.Preset `json:"presets,omitempty"`
	Type    string           `json:"type,omitempty" example:"ean13"`
	Lines   string           `json:"lines,omitempty" example:"400638133393\n4006381333931"`
}

// Item результат проверки одного элемента.
type Item struct {
	Name  string       `json:"name,omitempty"`
	Type  barcode.Type `json:"type,omitempty"`
	Input string       `json:"input"`
	Data  string       `json:"data,omitempty"`
	Valid bool         `json:"valid"`
	Error string       `json:"error,omitempty"`
}

// Response результаты в порядке запроса.
type Response struct {
	Items []Item `json:"items"`
	Valid int    `json:"valid"`
}

type Handler struct {
	log *slog.Logger
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log}
}

// ServeHTTP godoc
// @Summary Проверка данных кодов
// @Description Проверяет пресеты {name, type, data} или строки lines для одного type. Для EAN-13 из 12 цифр дописывает контрольную цифру.
// @Tags Tools
// @Accept json
// @Produce json
// @Param request body Request true "Пресеты или пакет строк"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tools/barcode/validate [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tools.barcode"
	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		log.Error("failed to decode request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	var items []Item
	switch {
	case len(req.Presets) > 0:
		if len(req.Presets) > maxItems {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("too many items"))
			return
		}
		items = validatePresets(req.Presets)
	case req.Type != "":
		t, err := barcode.ParseType(req.Type)
		if err != nil {
			log.Info("unknown code type", slog.String("type", req.Type))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error(barcode.ErrUnknownType.Error()))
			return
		}
		lines := barcode.SplitLines(req.Lines)
		if len(lines) == 0 {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("field lines is a required field"))
			return
		}
		if len(lines) > maxItems {
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.Error("too many items"))
			return
		}
		items = validateLines(t, lines)
	default:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("presets or type with lines are required"))
		return
	}

	res := Response{Items: items}
	for _, it := range items {
		if it.Valid {
			res.Valid++
		}
	}
	render.JSON(w, r, res)
}

func validatePresets(presets []barcode.Preset) []Item {
	items := make([]Item, 0, len(presets))
	for _, p := range presets {
		it := Item{Name: p.Name, Type: p.Type, Input: p.Data}
		saved, err := p.Validate()
		if err != nil {
			it.Error = err.Error()
		} else {
			it.Type = saved.Type
			it.Data = saved.Data
			it.Valid = true
		}
		items = append(items, it)
	}
	return items
}

func validateLines(t barcode.Type, lines []string) []Item {
	items := make([]Item, 0, len(lines))
	for _, line := range lines {
		it := Item{Type: t, Input: line}
		data, err := barcode.Normalize(t, line)
		if err != nil {
			it.Error = err.Error()
		} else {
			it.Data = data
			it.Valid = true
		}
		items = append(items, it)
	}
	return items
}
