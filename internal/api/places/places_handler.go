package places

import (
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-planner/internal/api"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const (
	defaultSearchLimit = 20
	maxSearchLimit     = 100
)

// SearchResponse is returned by the places endpoint.
type SearchResponse struct {
	Places []types.Place `json:"places"`
	Count  int           `json:"count"`
}

type Handler struct {
	service Service
	logger  *slog.Logger
	now     func() time.Time
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
		now:     time.Now,
	}
}

// SearchPlaces godoc
// @Summary      Search places
// @Description  Searches places around a point with the places provider, falling back to the seed catalog
// @Tags         Places
// @Produce      json
// @Param        q       query  string  false  "Free-text query"
// @Param        city    query  string  false  "City used for the default point and the seed fallback"
// @Param        lat     query  number  false  "Latitude, defaults to the city center"
// @Param        lon     query  number  false  "Longitude, defaults to the city center"
// @Param        radius  query  int     false  "Search radius in meters (100-2000)"  default(2000)
// @Param        limit   query  int     false  "Maximum results (1-100)"             default(20)
// @Success      200 {object} SearchResponse
// @Failure      400 {object} types.Response "Invalid query parameters"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /places [get]
func (h *Handler) SearchPlaces(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlacesHandler").Start(r.Context(), "SearchPlaces", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/places"),
	))
	defer span.End()

	l := h.logger.With(slog.String("method", "SearchPlaces"))

	q, err := h.parseSearch(r)
	if err != nil {
		l.WarnContext(ctx, "Invalid search parameters", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid parameters")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	found, err := h.service.Search(ctx, q)
	if err != nil {
		l.ErrorContext(ctx, "Search failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		api.ErrorResponse(w, r, api.StatusFor(err), "Failed to search places")
		return
	}

	span.SetStatus(codes.Ok, "places returned")
	api.WriteJSONResponse(w, r, http.StatusOK, SearchResponse{Places: found, Count: len(found)})
}

func (h *Handler) parseSearch(r *http.Request) (SearchQuery, error) {
	values := r.URL.Query()
	city := strings.TrimSpace(values.Get("city"))
	if city == "" {
		city = types.DefaultCity
	}
	q := SearchQuery{
		Query:   strings.TrimSpace(values.Get("q")),
		City:    city,
		Point:   types.CityCenter(city),
		RadiusM: MaxRadiusM,
		Limit:   defaultSearchLimit,
		Date:    h.now().In(types.PlannerZone),
	}

	latRaw, lonRaw := values.Get("lat"), values.Get("lon")
	if latRaw != "" || lonRaw != "" {
		lat, err := strconv.ParseFloat(latRaw, 64)
		if err != nil {
			return q, badParam("lat")
		}
		lon, err := strconv.ParseFloat(lonRaw, 64)
		if err != nil {
			return q, badParam("lon")
		}
		q.Point = types.GeoPoint{Lat: lat, Lon: lon}
		if err := api.ValidateStruct(q.Point); err != nil {
			return q, err
		}
	}
	if raw := values.Get("radius"); raw != "" {
		radius, err := strconv.Atoi(raw)
		if err != nil || radius < MinRadiusM || radius > MaxRadiusM {
			return q, badParam("radius")
		}
		q.RadiusM = radius
	}
	if raw := values.Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 1 || limit > maxSearchLimit {
			return q, badParam("limit")
		}
		q.Limit = limit
	}
	return q, nil
}

type paramError string

func (e paramError) Error() string { return "invalid query parameter: " + string(e) }

func (e paramError) Unwrap() error { return types.ErrInvalidInput }

func badParam(name string) error { return paramError(name) }
