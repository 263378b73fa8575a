package area

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flexo-toolkit/internal/area"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler_ServeHTTP(t *testing.T) {
	t.Run("two rows", func(t *testing.T) {
		body := `{"rows":[{"width":1000,"height":1000,"quantity":1},{"width":88,"height":188,"quantity":2}]}`
		rr := httptest.NewRecorder()

		New(newNoopLogger()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/tools/area", strings.NewReader(body)))

		require.Equal(t, http.StatusOK, rr.Code)
		var got area.Result
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got.Rows, 2)
		assert.InDelta(t, 1.0, got.Rows[0].CleanArea, 1e-9)
		assert.InDelta(t, 1.024144, got.Rows[0].BleedArea, 1e-9)
		assert.InDelta(t, 0.04, got.Rows[1].BleedArea, 1e-9)
		assert.InDelta(t, got.Rows[0].CleanArea+got.Rows[1].CleanArea, got.TotalClean, 1e-9)
		assert.InDelta(t, 1.064144, got.TotalBleed, 1e-9)
	})

	tests := []struct {
		name string
		body string
	}{
		{name: "no rows", body: `{"rows":[]}`},
		{name: "missing rows", body: `{}`},
		{name: "negative width", body: `{"rows":[{"width":-1,"height":1,"quantity":1}]}`},
		{name: "eleven rows", body: `{"rows":[` + strings.TrimSuffix(strings.Repeat(`{"width":1,"height":1,"quantity":1},`, 11), ",") + `]}`},
		{name: "broken json", body: `{"rows":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()

			New(newNoopLogger()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/tools/area", strings.NewReader(tt.body)))

			assert.Equal(t, http.StatusBadRequest, rr.Code)
		})
	}
}
