package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("wrapped: %w", types.ErrInvalidInput), http.StatusBadRequest},
		{types.ErrNotFound, http.StatusNotFound},
		{types.ErrProviderUnavailable, http.StatusServiceUnavailable},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, StatusFor(tt.err), tt.err.Error())
	}
}

func TestDecodeAndValidate(t *testing.T) {
	decode := func(body string) error {
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
		var dst types.PlanRequest
		return DecodeAndValidate(httptest.NewRecorder(), req, &dst)
	}

	assert.NoError(t, decode(`{"date":"2025-06-01","tags":["музеи"]}`))

	tests := []struct {
		name string
		body string
	}{
		{"empty body", ``},
		{"unknown field", `{"date":"2025-06-01","foo":1}`},
		{"missing date", `{"tags":["park"]}`},
		{"bad date", `{"date":"01.06.2025"}`},
		{"radius too large", `{"date":"2025-06-01","radius_m":5000}`},
		{"bad pace", `{"date":"2025-06-01","pace":"sprint"}`},
		{"latitude out of range", `{"date":"2025-06-01","user_location":{"lat":91,"lon":39}}`},
		{"two values", `{"date":"2025-06-01"}{"date":"2025-06-02"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := decode(tt.body)
			require.Error(t, err)
			assert.ErrorIs(t, err, types.ErrInvalidInput)
		})
	}
}

func TestErrorResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	middleware.RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ErrorResponse(w, r, http.StatusBadRequest, "bad things")
	})).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body types.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.False(t, body.Success)
	assert.Equal(t, "bad things", body.Error)
	assert.NotEmpty(t, body.RequestID)
}
