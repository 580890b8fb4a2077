package city

import (
	"context"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"

	"github.com/FACorreiaa/go-route-planner/internal/api"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

// Service lists the cities routes can be planned in.
type Service interface {
	Cities(ctx context.Context) ([]types.CitySummary, error)
}

type Handler struct {
	logger  *slog.Logger
	service Service
}

func NewCityHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
	}
}

// GetAllCities godoc
// @Summary      List cities
// @Description  Lists the cities known to the planner with their center and number of catalog places
// @Tags         Cities
// @Produce      json
// @Success      200 {array} types.CitySummary
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /cities [get]
func (h *Handler) GetAllCities(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("CityHandler").Start(r.Context(), "GetAllCities")
	defer span.End()

	l := h.logger.With(slog.String("method", "GetAllCities"))

	cities, err := h.service.Cities(ctx)
	if err != nil {
		l.ErrorContext(ctx, "Failed to retrieve cities", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Service operation failed")
		api.ErrorResponse(w, r, http.StatusInternalServerError, "Failed to retrieve cities")
		return
	}

	l.DebugContext(ctx, "Returning cities", slog.Int("count", len(cities)))
	span.SetStatus(codes.Ok, "Cities returned successfully")
	api.WriteJSONResponse(w, r, http.StatusOK, cities)
}
