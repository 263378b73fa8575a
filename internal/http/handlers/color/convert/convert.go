// Package convert реализует публичный HTTP обработчик конвертации цвета.
package convert

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/magabrotheeeer/flexo-toolkit/internal/color"
	"github.com/magabrotheeeer/flexo-toolkit/internal/http/response"
	"github.com/magabrotheeeer/flexo-toolkit/internal/lib/sl"
)

const invalidFormat = "Invalid color format"

// Request тело запроса: type одно из hex, rgb, cmyk.
type Request struct {
	Type  string `json:"type" validate:"required" example:"hex"`
	Value string `json:"value" validate:"required" example:"#FF0000"`
}

// Response цвет во всех представлениях.
type Response struct {
	RGB             string `json:"rgb" example:"255, 0, 0"`
	Hex             string `json:"hex" example:"#ff0000"`
	CMYK            string `json:"cmyk" example:"0, 100, 100, 0"`
	PantoneCoated   string `json:"pantoneCoated" example:"Pantone Orange 021 C"`
	PantoneUncoated string `json:"pantoneUncoated" example:"Pantone Orange 021 U"`
}

type Handler struct {
	log         *slog.Logger
	conversions *prometheus.CounterVec
	validate    *validator.Validate
}

// New создаёт обработчик. conversions может быть nil.
func New(log *slog.Logger, conversions *prometheus.CounterVec) *Handler {
	return &Handler{log: log, conversions: conversions, validate: validator.New()}
}

func (h *Handler) count(kind, result string) {
	if h.conversions == nil {
		return
	}
	switch color.Kind(kind) {
	case color.KindHex, color.KindRGB, color.KindCMYK:
	default:
		kind = "unknown"
	}
	h.conversions.WithLabelValues(kind, result).Inc()
}

// ServeHTTP godoc
// @Summary Конвертация цвета
// @Description Переводит HEX, RGB или CMYK во все представления и подбирает ближайший Pantone.
// @Tags Color
// @Accept json
// @Produce json
// @Param request body Request true "Тип и значение цвета"
// @Success 200 {object} Response
// @Failure 400 {object} response.ErrorResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /color/convert [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.color.convert"
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
	kind := strings.ToLower(req.Type)
	if err := h.validate.Struct(req); err != nil {
		log.Info("invalid color request", sl.Err(err))
		h.count(kind, "invalid")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(invalidFormat))
		return
	}

	res, err := color.Convert(color.Kind(kind), req.Value)
	if err != nil {
		log.Info("invalid color value", sl.Err(err), slog.String("type", req.Type))
		h.count(kind, "invalid")
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, response.Error(invalidFormat))
		return
	}

	h.count(kind, "success")
	render.JSON(w, r, Response{
		RGB:             res.RGB.String(),
		Hex:             res.Hex,
		CMYK:            res.CMYK.String(),
		PantoneCoated:   res.PantoneCoated,
		PantoneUncoated: res.PantoneUncoated,
	})
}
