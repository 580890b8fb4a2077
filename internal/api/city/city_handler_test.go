package city

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/FACorreiaa/go-route-planner/internal/types"
)

type stubService struct {
	cities []types.CitySummary
	err    error
}

func (s stubService) Cities(context.Context) ([]types.CitySummary, error) {
	return s.cities, s.err
}

func TestGetAllCities(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	t.Run("ok", func(t *testing.T) {
		h := NewCityHandler(stubService{cities: []types.CitySummary{
			{Name: "Азов", Center: types.GeoPoint{Lat: 47.1121, Lon: 39.4231}, Places: 2},
		}}, logger)
		rec := httptest.NewRecorder()
		h.GetAllCities(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"name":"Азов","center":{"lat":47.1121,"lon":39.4231},"places":2}]`, rec.Body.String())
	})

	t.Run("service failure", func(t *testing.T) {
		h := NewCityHandler(stubService{err: errors.New("db down")}, logger)
		rec := httptest.NewRecorder()
		h.GetAllCities(rec, httptest.NewRequest(http.MethodGet, "/api/v1/cities", nil))

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "Failed to retrieve cities")
	})
}
