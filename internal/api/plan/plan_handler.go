package plan

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/FACorreiaa/go-route-planner/internal/api"
	"github.com/FACorreiaa/go-route-planner/internal/itinerary"
	"github.com/FACorreiaa/go-route-planner/internal/types"
)

const calendarContentType = "text/calendar; charset=utf-8"

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

// PlanTrip godoc
// @Summary      Plan a day route
// @Description  Builds an ordered, scheduled single-day route with its calendar export
// @Tags         Plan
// @Accept       json
// @Produce      json
// @Param        request body types.PlanRequest true "Planning request"
// @Success      200 {object} types.PlanResponse
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      429 {object} types.Response "Too many requests"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /plan [post]
func (h *Handler) PlanTrip(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanHandler").Start(r.Context(), "PlanTrip", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/plan"),
	))
	defer span.End()

	l := h.logger.With(slog.String("method", "PlanTrip"))

	var req types.PlanRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid plan request", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.PlanTrip(ctx, req)
	if err != nil {
		h.fail(w, r, span, l, err, api.StatusFor(err), "Failed to plan route")
		return
	}

	span.SetStatus(codes.Ok, "route planned")
	api.WriteJSONResponse(w, r, http.StatusOK, types.PlanResponse{
		Stops:        it.Stops,
		TotalTime:    it.TotalTimeHuman,
		TotalMinutes: it.TotalMinutes,
		ICS:          it.CalendarPayload,
	})
}

// PlanTripICS godoc
// @Summary      Plan a day route as a calendar file
// @Description  Same as /plan but returns the iCalendar document as an attachment
// @Tags         Plan
// @Accept       json
// @Produce      text/calendar
// @Param        request body types.PlanRequest true "Planning request"
// @Success      200 {string} string "iCalendar document"
// @Failure      400 {object} types.Response "Invalid request"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /plan/ics [post]
func (h *Handler) PlanTripICS(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanHandler").Start(r.Context(), "PlanTripICS", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/plan/ics"),
	))
	defer span.End()

	l := h.logger.With(slog.String("method", "PlanTripICS"))

	var req types.PlanRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid plan request", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	it, err := h.service.PlanTrip(ctx, req)
	if err != nil {
		h.fail(w, r, span, l, err, api.StatusFor(err), "Failed to plan route")
		return
	}

	span.SetStatus(codes.Ok, "calendar exported")
	writeCalendar(w, fmt.Sprintf("route_%s.ics", req.Date), it.CalendarPayload)
}

// ExportCalendar godoc
// @Summary      Export stops as a calendar file
// @Description  Renders already planned stops as an iCalendar attachment
// @Tags         Plan
// @Accept       json
// @Produce      text/calendar
// @Param        request body types.CalendarRequest true "Stops to export"
// @Success      200 {string} string "iCalendar document"
// @Failure      400 {object} types.Response "Invalid request or timestamps"
// @Failure      500 {object} types.Response "Internal Server Error"
// @Router       /calendar [post]
func (h *Handler) ExportCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("PlanHandler").Start(r.Context(), "ExportCalendar", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/api/v1/calendar"),
	))
	defer span.End()

	l := h.logger.With(slog.String("method", "ExportCalendar"))

	var req types.CalendarRequest
	if err := api.DecodeAndValidate(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid calendar request", slog.Any("error", err))
		span.SetStatus(codes.Error, "invalid request")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	payload, err := h.service.ExportCalendar(ctx, req)
	if err != nil {
		status := api.StatusFor(err)
		if errors.Is(err, itinerary.ErrInvalidTime) {
			status = http.StatusBadRequest
		}
		h.fail(w, r, span, l, err, status, "Failed to export calendar")
		return
	}

	span.SetStatus(codes.Ok, "calendar exported")
	writeCalendar(w, "route.ics", payload)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, span trace.Span, l *slog.Logger, err error, status int, message string) {
	if status >= http.StatusInternalServerError {
		l.ErrorContext(r.Context(), message, slog.Any("error", err))
	} else {
		l.WarnContext(r.Context(), message, slog.Any("error", err))
		message = err.Error()
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, message)
	api.ErrorResponse(w, r, status, message)
}

func writeCalendar(w http.ResponseWriter, filename, payload string) {
	w.Header().Set("Content-Type", calendarContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(payload))
}
