package tags

import (
	"log/slog"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-planner/internal/api"
	"github.com/FACorreiaa/go-route-planner/internal/tags"
)

var _ Handler = (*HandlerImpl)(nil)

type Handler interface {
	GetTags(w http.ResponseWriter, r *http.Request)
	NormalizeTags(w http.ResponseWriter, r *http.Request)
}

// TagsResponse lists canonical tags.
type TagsResponse struct {
	Tags []string `json:"tags"`
}

// NormalizeRequest carries free-text interests.
type NormalizeRequest struct {
	Tags []string `json:"tags" validate:"required,max=50"`
}

// NormalizeResponse splits the input into canonical tags and values that
// matched nothing.
type NormalizeResponse struct {
	Tags    []string `json:"tags"`
	Dropped []string `json:"dropped"`
}

type HandlerImpl struct {
	logger *slog.Logger
}

func NewHandlerImpl(logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{logger: logger}
}

// GetTags godoc
// @Summary      List tags
// @Description  Returns the canonical interest tags accepted by the planner
// @Tags         Tags
// @Produce      json
// @Success      200 {object} TagsResponse
// @Router       /tags [get]
func (h *HandlerImpl) GetTags(w http.ResponseWriter, r *http.Request) {
	_, span := otel.Tracer("TagsHandler").Start(r.Context(), "GetTags", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/tags"),
	))
	defer span.End()

	api.WriteJSONResponse(w, r, http.StatusOK, TagsResponse{Tags: tags.Allowed()})
}

// NormalizeTags godoc
// @Summary      Normalize tags
// @Description  Maps free-text interests (Russian or English) onto canonical tags
// @Tags         Tags
// @Accept       json
// @Produce      json
// @Param        request body NormalizeRequest true "Free-text tags"
// @Success      200 {object} NormalizeResponse
// @Failure      400 {object} types.Response "Invalid request body"
// @Router       /tags/normalize [post]
func (h *HandlerImpl) NormalizeTags(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("TagsHandler").Start(r.Context(), "NormalizeTags", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/tags/normalize"),
	))
	defer span.End()

	l := h.logger.With(slog.String("method", "NormalizeTags"))

	var req NormalizeRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid normalize request", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	resp := NormalizeResponse{Tags: []string{}, Dropped: []string{}}
	resp.Tags = append(resp.Tags, tags.Normalize(req.Tags).Strings()...)
	for _, raw := range req.Tags {
		if strings.TrimSpace(raw) != "" && len(tags.Normalize([]string{raw})) == 0 {
			resp.Dropped = append(resp.Dropped, raw)
		}
	}

	span.SetAttributes(attribute.Int("tags.dropped", len(resp.Dropped)))
	api.WriteJSONResponse(w, r, http.StatusOK, resp)
}
