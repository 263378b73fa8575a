package convert

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/flexo-toolkit/internal/metrics"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func TestHandler_ServeHTTP(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		wantStatus int
		wantRGB    string
		wantHex    string
		wantCMYK   string
	}{
		{
			name:       "hex red",
			body:       `{"type":"hex","value":"#FF0000"}`,
			wantStatus: http.StatusOK,
			wantRGB:    "255, 0, 0",
			wantHex:    "#ff0000",
			wantCMYK:   "0, 100, 100, 0",
		},
		{
			name:       "rgb black",
			body:       `{"type":"rgb","value":"0,0,0"}`,
			wantStatus: http.StatusOK,
			wantRGB:    "0, 0, 0",
			wantHex:    "#000000",
			wantCMYK:   "0, 0, 0, 100",
		},
		{
			name:       "cmyk white",
			body:       `{"type":"CMYK","value":"0, 0, 0, 0"}`,
			wantStatus: http.StatusOK,
			wantRGB:    "255, 255, 255",
			wantHex:    "#ffffff",
			wantCMYK:   "0, 0, 0, 0",
		},
		{
			name:       "rgb with two parts",
			body:       `{"type":"rgb","value":"1,2"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown type",
			body:       `{"type":"lab","value":"1,2,3"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing value",
			body:       `{"type":"hex"}`,
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "broken json",
			body:       `{"type":`,
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/color/convert", strings.NewReader(tt.body))
			rr := httptest.NewRecorder()

			New(newNoopLogger(), nil).ServeHTTP(rr, req)

			require.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantStatus != http.StatusOK {
				return
			}
			var got Response
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
			assert.Equal(t, tt.wantRGB, got.RGB)
			assert.Equal(t, tt.wantHex, got.Hex)
			assert.Equal(t, tt.wantCMYK, got.CMYK)
			assert.NotEmpty(t, got.PantoneCoated)
			assert.NotEmpty(t, got.PantoneUncoated)
		})
	}
}

func TestHandler_InvalidFormatMessage(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/color/convert", strings.NewReader(`{"type":"rgb","value":"1,2"}`))
	rr := httptest.NewRecorder()

	New(newNoopLogger(), nil).ServeHTTP(rr, req)

	assert.JSONEq(t, `{"status":"Error","error":"Invalid color format"}`, rr.Body.String())
}

func TestHandler_CountsConversions(t *testing.T) {
	m := metrics.NewNoop()
	h := New(newNoopLogger(), m.ColorConversions)

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"hex","value":"00ff00"}`)))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"type":"xyz","value":"1"}`)))

	assert.InDelta(t, 1, testutil.ToFloat64(m.ColorConversions.WithLabelValues("hex", "success")), 1e-9)
	assert.InDelta(t, 1, testutil.ToFloat64(m.ColorConversions.WithLabelValues("unknown", "invalid")), 1e-9)
}
