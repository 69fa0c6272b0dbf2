package locker

import (
	"campus/infras/otel"
	"campus/internal/domains/locker/model"
	"campus/internal/domains/locker/model/dto"
	"campus/internal/domains/locker/service"
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
	service service.Locker
	otel    otel.Otel
}

func New(service service.Locker, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/lockers", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateReservation)
		routerGroup.Get("/", handler.GetMyReservations)
		routerGroup.Get("/{id}", handler.GetReservationByID)
		routerGroup.Patch("/{id}", handler.UpdateReservation)
		routerGroup.Delete("/{id}", handler.DeleteReservation)
	})
}

// CreateReservation handles the creation of a new locker reservation.
// @Summary Create a locker reservation
// @Description Reserve a locker for a date range. The window is checked against other active reservations of the same locker.
// @Tags Locker
// @Accept json
// @Produce json
// @Param request body dto.CreateLockerReservationRequest true "Create Locker Reservation Request"
// @Success 201 {object} response.Data[dto.LockerReservationResponse] "Locker reservation created successfully"
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lockers [post]
// @Security BearerAuth
func (handler *Handler) CreateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservation")
	defer scope.End()

	req := dto.CreateLockerReservationRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	reservation, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create locker reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Locker reservation created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, reservation)
}

// GetMyReservations retrieves the caller's locker reservations.
// @Summary Get my locker reservations
// @Description Retrieve the authenticated user's locker reservations with optional filtering and pagination.
// @Tags Locker
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (Pending, Approved, Rejected)"
// @Param locker_number query string false "Filter by locker number"
// @Success 200 {object} response.Data[dto.GetLockerReservationsResponse] "List of locker reservations"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lockers [get]
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

	if lockerNumber := r.URL.Query().Get(model.FieldLockerNumber); lockerNumber != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldLockerNumber,
			Operator: gDto.FilterOperatorEq,
			Value:    lockerNumber,
			Table:    model.TableName,
		})
	}

	reservations, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locker reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Locker reservations retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetReservationByID retrieves a locker reservation by its ID.
// @Summary Get a locker reservation by ID
// @Description Retrieve a locker reservation. Reservations of other users are not visible.
// @Tags Locker
// @Accept json
// @Produce json
// @Param id path string true "Locker Reservation ID"
// @Success 200 {object} response.Data[dto.LockerReservationResponse] "Locker reservation details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lockers/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetReservationByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetReservationByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	reservation, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locker reservation by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Locker reservation retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservation)
}

// UpdateReservation updates an existing locker reservation by its ID.
// @Summary Update a locker reservation by ID
// @Description Update the window, locker number or purpose of an existing reservation. The overlap check re-runs.
// @Tags Locker
// @Accept json
// @Produce json
// @Param id path string true "Locker Reservation ID"
// @Param request body dto.UpdateLockerReservationRequest true "Update Locker Reservation Request"
// @Success 200 {object} response.Message "Locker reservation updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lockers/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateLockerReservationRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update locker reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Locker reservation updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Locker reservation updated successfully")
}

// DeleteReservation deletes a locker reservation by its ID.
// @Summary Delete a locker reservation by ID
// @Description Cancel a locker reservation using its unique identifier.
// @Tags Locker
// @Accept json
// @Produce json
// @Param id path string true "Locker Reservation ID"
// @Success 200 {object} response.Message "Locker reservation deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/lockers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteReservation")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete locker reservation")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Locker reservation deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Locker reservation deleted successfully")
}
