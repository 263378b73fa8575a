package barcode

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

	"github.com/magabrotheeeer/flexo-toolkit/internal/barcode"
)

func newNoopLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{}))
}

func serve(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()
	rr := httptest.NewRecorder()
	New(newNoopLogger()).ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/tools/barcode/validate", strings.NewReader(body)))
	return rr
}

func TestHandler_Presets(t *testing.T) {
	rr := serve(t, `{"presets":[
		{"name":"site","type":"QR","data":"https://example.com"},
		{"name":"","type":"qr","data":"x"},
		{"name":"milk","type":"ean13","data":"400638133393"}
	]}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var got Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Items, 3)
	assert.Equal(t, 2, got.Valid)

	assert.True(t, got.Items[0].Valid)
	assert.Equal(t, barcode.QR, got.Items[0].Type)

	assert.False(t, got.Items[1].Valid)
	assert.Contains(t, got.Items[1].Error, barcode.ErrEmptyName.Error())

	assert.True(t, got.Items[2].Valid)
	assert.Equal(t, "4006381333931", got.Items[2].Data)
}

func TestHandler_Lines(t *testing.T) {
	rr := serve(t, `{"type":"ean13","lines":"4006381333931\n\n  4006381333932 \nabc"}`)

	require.Equal(t, http.StatusOK, rr.Code)
	var got Response
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
	require.Len(t, got.Items, 3)
	assert.Equal(t, 1, got.Valid)
	assert.True(t, got.Items[0].Valid)
	assert.Equal(t, "4006381333932", got.Items[1].Input)
	assert.Contains(t, got.Items[1].Error, "check digit")
	assert.False(t, got.Items[2].Valid)
}

func TestHandler_BadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "empty", body: `{}`},
		{name: "unknown type", body: `{"type":"pdf417","lines":"a"}`},
		{name: "blank lines", body: `{"type":"qr","lines":"\n \n"}`},
		{name: "broken json", body: `{"presets":`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, http.StatusBadRequest, serve(t, tt.body).Code)
		})
	}
}
