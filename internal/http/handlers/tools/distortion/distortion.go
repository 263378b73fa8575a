// Package distortion реализует HTTP обработчики калькулятора дисторсии.
//
// Таблица констант не хранится на сервере: клиент может прислать свою
// копию в поле table, иначе используется стандартная. Правки из поля edits
// применяются к выбранной таблице по порядку перед расчётом.
package distortion

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/flexo-toolkit/internal/distortion"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
)

// Request тело запроса расчёта.
type Request struct {
	PrintLength    float64            `json:"printLength" validate:"gt=0" example:"500"`
	PlateThickness float64            `json:"plateThickness" validate:"gt=0" example:"1.7"`
	Table          []distortion.Entry `json:"table,omitempty" validate:"omitempty,dive"`
	Edits          []Edit             `json:"edits,omitempty" validate:"omitempty,max=100,dive"`
}

// Edit одна правка таблицы: add добавляет Entry, update меняет ячейку
// Field строки Index, remove удаляет строку Index.
type Edit struct {
	Op    string            `json:"op" validate:"required,oneof=add update remove" example:"update"`
	Index int               `json:"index" validate:"gte=0" example:"2"`
	Field distortion.Field  `json:"field,omitempty" validate:"omitempty,oneof=thickness k difference" example:"k"`
	Value float64           `json:"value,omitempty" validate:"gte=0" example:"10"`
	Entry *distortion.Entry `json:"entry,omitempty"`
}

var errMissingEntry = errors.New("entry is required for add")

// TableResponse строки стандартной таблицы.
type TableResponse struct {
	Entries []distortion.Entry `json:"entries"`
}

type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log, validate: validator.New()}
}

// Calculate godoc
// @Summary Расчёт дисторсии
// @Description Коэффициент дисторсии и длина формы для длины печати и толщины пластины.
// @Tags Tools
// @Accept json
// @Produce json
// @Param request body Request true "Длина печати, толщина пластины, необязательные таблица и правки"
// @Success 200 {object} distortion.Result
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tools/distortion [post]
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tools.distortion.Calculate"
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
	if err := h.validate.Struct(req); err != nil {
		var validateErr validator.ValidationErrors
		if errors.As(err, &validateErr) {
			log.Info("invalid distortion request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		log.Error("failed to validate request", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	table := distortion.DefaultTable()
	if len(req.Table) > 0 {
		table = distortion.NewTable(req.Table)
	}
	if err := applyEdits(table, req.Edits); err != nil {
		log.Info("failed to apply table edits", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(editError(err)))
		return
	}

	res, err := table.Calculate(req.PrintLength, req.PlateThickness)
	switch {
	case errors.Is(err, distortion.ErrUnknownThickness):
		log.Info("unknown plate thickness", slog.Float64("thickness", req.PlateThickness))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(distortion.ErrUnknownThickness.Error()))
		return
	case errors.Is(err, distortion.ErrInvalidPrintLength):
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(distortion.ErrInvalidPrintLength.Error()))
		return
	case err != nil:
		log.Error("failed to calculate distortion", sl.Err(err))
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, response.Error("internal service error"))
		return
	}

	render.JSON(w, r, res)
}

func applyEdits(table *distortion.Table, edits []Edit) error {
	const op = "handlers.tools.distortion.applyEdits"
	for i, e := range edits {
		var err error
		switch e.Op {
		case "add":
			if e.Entry == nil {
				err = errMissingEntry
				break
			}
			table.Add(*e.Entry)
		case "update":
			err = table.Update(e.Index, e.Field, e.Value)
		case "remove":
			err = table.Remove(e.Index)
		}
		if err != nil {
			return fmt.Errorf("%s: edit %d: %w", op, i, err)
		}
	}
	return nil
}

func editError(err error) string {
	for _, known := range []error{
		errMissingEntry,
		distortion.ErrIndexOutOfRange,
		distortion.ErrLastEntry,
		distortion.ErrUnknownField,
	} {
		if errors.Is(err, known) {
			return known.Error()
		}
	}
	return "invalid table edit"
}

// Table godoc
// @Summary Стандартная таблица дисторсии
// @Tags Tools
// @Produce json
// @Success 200 {object} TableResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tools/distortion/table [get]
func (h *Handler) Table(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, TableResponse{Entries: distortion.DefaultTable().Entries()})
}
