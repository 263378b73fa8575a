// Package area реализует HTTP обработчик калькулятора площади форм.
package area

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/flexo-toolkit/internal/area"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
)

// Request строки расчёта, от 1 до 10.
type Request struct {
	Rows []area.Row `json:"rows" validate:"required,min=1,max=10,dive"`
}

type Handler struct {
	log      *slog.Logger
	validate *validator.Validate
}

func New(log *slog.Logger) *Handler {
	return &Handler{log: log, validate: validator.New()}
}

// ServeHTTP godoc
// @Summary Площадь форм
// @Description Чистая площадь и площадь с припуском 12 мм в м² по строкам и итого.
// @Tags Tools
// @Accept json
// @Produce json
// @Param request body Request true "Размеры форм в мм и количество"
// @Success 200 {object} area.Result
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Failure 403 {object} response.ErrorResponse
// @Router /tools/area [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.tools.area"
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
			log.Info("invalid area request", sl.Err(err))
			render.Status(r, http.StatusBadRequest)
			render.JSON(w, r, response.ValidationError(validateErr))
			return
		}
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request"))
		return
	}

	res, err := area.Calculate(req.Rows)
	if err != nil {
		log.Info("failed to calculate area", sl.Err(err))
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(err.Error()))
		return
	}

	render.JSON(w, r, res)
}
