package dashboard

import (
	"campus/infras/otel"
	"campus/internal/domains/dashboard/service"
	"campus/shared/constant"
	"campus/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Dashboard
	otel    otel.Otel
}

func New(service service.Dashboard, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/dashboard", func(routerGroup chi.Router) {
		routerGroup.Get("/summary", handler.GetSummary)
		routerGroup.Get("/calendar", handler.GetCalendar)
	})
}

// GetSummary retrieves the caller's dashboard summary.
// @Summary Get dashboard summary
// @Description Retrieve counts of the authenticated user's active and pending requests plus their most recent expenses.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.SummaryResponse] "Dashboard summary"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/summary [get]
// @Security BearerAuth
func (handler *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetSummary")
	defer scope.End()

	summary, err := handler.service.Summary(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get dashboard summary")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Dashboard summary retrieved successfully")

	response.WithJSON(w, http.StatusOK, summary)
}

// GetCalendar retrieves the shared campus calendar.
// @Summary Get the campus calendar
// @Description Retrieve approved activity reservations, gate passes and locker reservations as calendar events.
// @Tags Dashboard
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.CalendarResponse] "Calendar events"
// @Failure 500 {object} response.Error
// @Router /v1/dashboard/calendar [get]
// @Security BearerAuth
func (handler *Handler) GetCalendar(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetCalendar")
	defer scope.End()

	calendar, err := handler.service.Calendar(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get calendar")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Calendar retrieved successfully")

	response.WithJSON(w, http.StatusOK, calendar)
}
