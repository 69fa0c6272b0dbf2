package gatepass

import (
	"campus/infras/otel"
	"campus/internal/domains/gatepass/model"
	"campus/internal/domains/gatepass/model/dto"
	"campus/internal/domains/gatepass/service"
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
	service service.GatePass
	otel    otel.Otel
}

func New(service service.GatePass, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/gate-passes", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateGatePass)
		routerGroup.Get("/", handler.GetMyGatePasses)
		routerGroup.Get("/{id}", handler.GetGatePassByID)
		routerGroup.Patch("/{id}", handler.UpdateGatePass)
		routerGroup.Delete("/{id}", handler.DeleteGatePass)
	})
}

// CreateGatePass handles the creation of a new gate pass request.
// @Summary Create a gate pass request
// @Description Request permission to leave campus. The return date and time are optional but must be provided together.
// @Tags GatePass
// @Accept json
// @Produce json
// @Param request body dto.CreateGatePassRequest true "Create Gate Pass Request"
// @Success 201 {object} response.Data[dto.GatePassResponse] "Gate pass created successfully"
// @Failure 400 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gate-passes [post]
// @Security BearerAuth
func (handler *Handler) CreateGatePass(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateGatePass")
	defer scope.End()

	req := dto.CreateGatePassRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	gatePass, err := handler.service.Create(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to create gate pass")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gate pass created successfully by user " + user)

	response.WithJSON(w, http.StatusCreated, gatePass)
}

// GetMyGatePasses retrieves the caller's gate passes.
// @Summary Get my gate passes
// @Description Retrieve the authenticated user's gate passes with optional filtering and pagination.
// @Tags GatePass
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Param status query string false "Filter by status (Pending, Approved, Rejected)"
// @Param exit_date query string false "Filter by exit date (YYYY-MM-DD)"
// @Success 200 {object} response.Data[dto.GetGatePassesResponse] "List of gate passes"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gate-passes [get]
// @Security BearerAuth
func (handler *Handler) GetMyGatePasses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyGatePasses")
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

	if exitDate := r.URL.Query().Get(model.FieldExitDate); exitDate != "" {
		filterGroup.Filters = append(filterGroup.Filters, gDto.Filter{
			Field:    model.FieldExitDate,
			Operator: gDto.FilterOperatorEq,
			Value:    exitDate,
			Table:    model.TableName,
		})
	}

	gatePasses, err := handler.service.GetAll(ctx, queryParams, filterGroup)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gate passes")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gate passes retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, gatePasses)
}

// GetGatePassByID retrieves a gate pass by its ID.
// @Summary Get a gate pass by ID
// @Description Retrieve a gate pass. Gate passes of other users are not visible.
// @Tags GatePass
// @Accept json
// @Produce json
// @Param id path string true "Gate Pass ID"
// @Success 200 {object} response.Data[dto.GatePassResponse] "Gate pass details"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gate-passes/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetGatePassByID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGatePassByID")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	gatePass, err := handler.service.Get(ctx, id)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gate pass by ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gate pass retrieved successfully")

	response.WithJSON(w, http.StatusOK, gatePass)
}

// UpdateGatePass updates an existing gate pass by its ID.
// @Summary Update a gate pass by ID
// @Description Update the destination, reason or schedule of an existing gate pass.
// @Tags GatePass
// @Accept json
// @Produce json
// @Param id path string true "Gate Pass ID"
// @Param request body dto.UpdateGatePassRequest true "Update Gate Pass Request"
// @Success 200 {object} response.Message "Gate pass updated successfully"
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gate-passes/{id} [patch]
// @Security BearerAuth
func (handler *Handler) UpdateGatePass(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateGatePass")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	req := dto.UpdateGatePassRequest{}
	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	if err := handler.service.Update(ctx, req, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to update gate pass")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gate pass updated successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gate pass updated successfully")
}

// DeleteGatePass deletes a gate pass by its ID.
// @Summary Delete a gate pass by ID
// @Description Cancel a gate pass request using its unique identifier.
// @Tags GatePass
// @Accept json
// @Produce json
// @Param id path string true "Gate Pass ID"
// @Success 200 {object} response.Message "Gate pass deleted successfully"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/gate-passes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGatePass(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteGatePass")
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to delete gate pass")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Gate pass deleted successfully by user " + user)

	response.WithMessage(w, http.StatusOK, "Gate pass deleted successfully")
}
