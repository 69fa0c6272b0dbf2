package activity

import (
	"campus/infras/otel"
	"campus/internal/domains/activity/model"
	"campus/internal/domains/activity/model/dto"
	"campus/internal/domains/activity/service"
	"campus/shared"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/shared/failure"
	"campus/shared/validator"
	"campus/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Activity
	otel    otel.Otel
}

func New(service service.Activity, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/activities", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// CreateReservation handles the creation of a new activity space reservation.
// @Summary Create an activity space reservation
// @Description Book the activity space for a time slot on a given date. The slot is checked against other active reservations on the same date.
// @Tags Activity
// @Accept json
// @Produce json
// @Param request body dto.CreateActivityReservationRequest true "Create Activity Reservation Request"
// @Success 201 {object} response.Data[dto.ActivityReservationResponse] "Activity reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateActivityReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create activity reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Activity reservation created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetMyReservations retrieves the caller's activity space reservations.
// @Summary Get my activity reservations
// @Description Retrieve the authenticated user's activity space reservations with optional filtering and pagination.
// @Tags Activity
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (Pending, Approved, Rejected)"
// @Param activity_date query string false "Filter by activity date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetActivityReservationsResponse] "List of activity reservations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities [get]
// @Security BearerAuth
func (handler *Handler) GetMyReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyReservations")
	defer scope.End()

	userID, ok := ctx.Value(constant.ContextKeyUserID).(string)
	if !ok || userID == "" {
		log.Error().Msg("failed to get user ID from context")
		response.WithError(w, failure.Unauthorized("unauthorized"))

		return
	}

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	filterGroup := shared.FilterByOwner(userID, model.FieldUserID, model.TableName)

	if status := r.URL.Query().Get(model.FieldStatus); status != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldStatus,
			Operator: gDto.FilterOperatorEq,
			Value:    status,
			Table:    model.TableName,
		})
	}

	if activityDate := r.URL.Query().Get(model.FieldActivityDate); activityDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldActivityDate,
			Operator: gDto.FilterOperatorEq,
			Value:    activityDate,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Activity reservations retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves an activity reservation by its ID.
// @Summary Get an activity reservation by ID
// @Description Retrieve an activity space reservation. Reservations of other users are not visible.
// @Tags Activity
// @Accept json
// @Produce json
// @Param id path string true "Activity Reservation ID"
// @Success 200 {object} response.Data[dto.ActivityReservationResponse] "Activity reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Activity reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation updates an existing activity reservation by its ID.
// @Summary Update an activity reservation by ID
// @Description Update the slot, name or description of an existing reservation. The overlap check re-runs.
// @Tags Activity
// @Accept json
// @Produce json
// @Param id path string true "Activity Reservation ID"
// @Param request body dto.UpdateActivityReservationRequest true "Update Activity Reservation Request"
// @Success 200 {object} response.Message "Activity reservation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateActivityReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update activity reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Activity reservation updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Activity reservation updated successfully")
}

// DeleteReservation deletes an activity reservation by its ID.
// @Summary Delete an activity reservation by ID
// @Description Cancel an activity space reservation using its unique identifier.
// @Tags Activity
// @Accept json
// @Produce json
// @Param id path string true "Activity Reservation ID"
// @Success 200 {object} response.Message "Activity reservation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/activities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete activity reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Activity reservation deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Activity reservation deleted successfully")
}
