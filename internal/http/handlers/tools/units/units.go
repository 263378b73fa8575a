// Package units реализует HTTP обработчик конвертера единиц.
package units

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
	"github.com/magabrotheeeer/flexo-toolkit/internal/units"
)

// Request единица и значение.
type Request struct {
	Unit  string  `json:"unit" validate:"required,oneof=mm inch lpi dpi" example:"mm"`
	Value float64 `json:"value" example:"25.4"`
}

type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Конвертер единиц
// @Description mm и inch возвращают {mm, inch}, lpi и dpi возвращают {lpi, dpi}.
// @Tags Tools
// @Accept json
// @Produce json
// @Param request body Request true "Единица и значение"
// @Success 200 {object} units.Length
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tools/units [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tools.units"
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
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	res, err := units.Convert(units.Unit(req.Unit), req.Value)
	if err != nil {
		log.Info("failed to convert units", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, res)
}
