package assistant

import (
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-planner/internal/api"
)

type Handler struct {
	service Service
	logger  *slog.Logger
}

func NewHandler(service Service, logger *slog.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// NextStep godoc
// @Summary      Next conversation step
// @Description  Returns the next question (mode=ask) or the completed preferences (mode=ready). Without a model the flow is date, tags, budget, pace.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request body NextRequest true "Preferences known so far"
// @Success      200 {object} Step
// @Failure      400 {object} types.Response "Invalid request body"
// @Router       /llm/next [post]
func (h *Handler) NextStep(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssistantHandler").Start(r.Context(), "NextStep", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/llm/next"),
	))
	defer span.End()

	var req NextRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "Invalid next-step request", slog.String("method", "NextStep"), slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, h.service.NextStep(ctx, req.KnownPrefs))
}

// Explain godoc
// @Summary      Explain a route
// @Description  Returns a short explanation of a planned route. Without a model a template is used.
// @Tags         Assistant
// @Accept       json
// @Produce      json
// @Param        request body ExplainRequest true "Preferences and stops from /plan"
// @Success      200 {object} ExplainResponse
// @Failure      400 {object} types.Response "Invalid request body"
// @Router       /llm/explain [post]
func (h *Handler) Explain(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("AssistantHandler").Start(r.Context(), "Explain", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/llm/explain"),
	))
	defer span.End()

	var req ExplainRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		h.logger.WarnContext(ctx, "Invalid explain request", slog.String("method", "Explain"), slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	api.WriteJSONResponse(w, r, http.StatusOK, ExplainResponse{Text: h.service.Explain(ctx, req.Prefs, req.Stops)})
}
