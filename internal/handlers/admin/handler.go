package admin

import (
	"campus/infras/otel"
	"campus/internal/domains/admin/service"
	"campus/shared/constant"
	gDto "campus/shared/dto"
	"campus/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.Admin
	otel    otel.Otel
}

func New(service service.Admin, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/lockers", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetLockerReservations)
		routerGroup.Patch("/{id}/approve", handler.ApproveLockerReservation)
		routerGroup.Patch("/{id}/reject", handler.RejectLockerReservation)
		routerGroup.Delete("/{id}", handler.DeleteLockerReservation)
	})
	router.Route("/activities", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetActivityReservations)
		routerGroup.Patch("/{id}/approve", handler.ApproveActivityReservation)
		routerGroup.Patch("/{id}/reject", handler.RejectActivityReservation)
		routerGroup.Delete("/{id}", handler.DeleteActivityReservation)
	})
	router.Route("/gate-passes", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetGatePasses)
		routerGroup.Patch("/{id}/approve", handler.ApproveGatePass)
		routerGroup.Patch("/{id}/reject", handler.RejectGatePass)
		routerGroup.Delete("/{id}", handler.DeleteGatePass)
	})
}

// GetLockerReservations retrieves locker reservations of all users.
// @Summary Get all locker reservations
// @Description Retrieve locker reservations of every user with pagination, newest first. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[lockerDto.GetLockerReservationsResponse] "List of locker reservations"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lockers [get]
// @Security BearerAuth
func (handler *Handler) GetLockerReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetLockerReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reservations, err := handler.service.ListLockers(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get locker reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Locker reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetActivityReservations retrieves activity reservations of all users.
// @Summary Get all activity reservations
// @Description Retrieve activity space reservations of every user with pagination, newest first. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[activityDto.GetActivityReservationsResponse] "List of activity reservations"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/activities [get]
// @Security BearerAuth
func (handler *Handler) GetActivityReservations(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetActivityReservations")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	reservations, err := handler.service.ListActivities(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get activity reservations")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Activity reservations retrieved successfully")

	response.WithJSON(w, http.StatusOK, reservations)
}

// GetGatePasses retrieves gate passes of all users.
// @Summary Get all gate passes
// @Description Retrieve gate passes of every user with pagination, newest first. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param pagination query gDto.QueryParams false "Pagination parameters"
// @Success 200 {object} response.Data[gatepassDto.GetGatePassesResponse] "List of gate passes"
// @Failure 403 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gate-passes [get]
// @Security BearerAuth
func (handler *Handler) GetGatePasses(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetGatePasses")
	defer scope.End()

	queryParams := gDto.QueryParams{}
	queryParams.FromRequest(r, true)

	gatePasses, err := handler.service.ListGatePasses(ctx, queryParams)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get gate passes")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("Gate passes retrieved successfully")

	response.WithJSON(w, http.StatusOK, gatePasses)
}

// ApproveLockerReservation approves a locker reservation.
// @Summary Approve a locker reservation
// @Description Set a locker reservation to Approved and notify its owner by email. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Locker Reservation ID"
// @Success 200 {object} response.Message "Request reviewed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lockers/{id}/approve [patch]
// @Security BearerAuth
func (handler *Handler) ApproveLockerReservation(w http.ResponseWriter, r *http.Request) {
	handler.review(w, r, service.KindLocker, constant.StatusApproved, "ApproveLockerReservation")
}

// RejectLockerReservation rejects a locker reservation.
// @Summary Reject a locker reservation
// @Description Set a locker reservation to Rejected and notify its owner by email. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Locker Reservation ID"
// @Success 200 {object} response.Message "Request reviewed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lockers/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectLockerReservation(w http.ResponseWriter, r *http.Request) {
	handler.review(w, r, service.KindLocker, constant.StatusRejected, "RejectLockerReservation")
}

// ApproveActivityReservation approves an activity reservation.
// @Summary Approve an activity reservation
// @Description Set an activity reservation to Approved and notify its owner by email. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Activity Reservation ID"
// @Success 200 {object} response.Message "Request reviewed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/activities/{id}/approve [patch]
// @Security BearerAuth
func (handler *Handler) ApproveActivityReservation(w http.ResponseWriter, r *http.Request) {
	handler.review(w, r, service.KindActivity, constant.StatusApproved, "ApproveActivityReservation")
}

// RejectActivityReservation rejects an activity reservation.
// @Summary Reject an activity reservation
// @Description Set an activity reservation to Rejected and notify its owner by email. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Activity Reservation ID"
// @Success 200 {object} response.Message "Request reviewed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/activities/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectActivityReservation(w http.ResponseWriter, r *http.Request) {
	handler.review(w, r, service.KindActivity, constant.StatusRejected, "RejectActivityReservation")
}

// ApproveGatePass approves a gate pass.
// @Summary Approve a gate pass
// @Description Set a gate pass to Approved and notify its owner by email. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Gate Pass ID"
// @Success 200 {object} response.Message "Request reviewed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gate-passes/{id}/approve [patch]
// @Security BearerAuth
func (handler *Handler) ApproveGatePass(w http.ResponseWriter, r *http.Request) {
	handler.review(w, r, service.KindGatePass, constant.StatusApproved, "ApproveGatePass")
}

// RejectGatePass rejects a gate pass.
// @Summary Reject a gate pass
// @Description Set a gate pass to Rejected and notify its owner by email. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Gate Pass ID"
// @Success 200 {object} response.Message "Request reviewed successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gate-passes/{id}/reject [patch]
// @Security BearerAuth
func (handler *Handler) RejectGatePass(w http.ResponseWriter, r *http.Request) {
	handler.review(w, r, service.KindGatePass, constant.StatusRejected, "RejectGatePass")
}

// DeleteLockerReservation deletes any user's locker reservation.
// @Summary Delete a locker reservation
// @Description Delete a locker reservation regardless of its owner. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Locker Reservation ID"
// @Success 200 {object} response.Message "Request deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/lockers/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteLockerReservation(w http.ResponseWriter, r *http.Request) {
	handler.remove(w, r, service.KindLocker, "DeleteLockerReservation")
}

// DeleteActivityReservation deletes any user's activity reservation.
// @Summary Delete an activity reservation
// @Description Delete an activity reservation regardless of its owner. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Activity Reservation ID"
// @Success 200 {object} response.Message "Request deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/activities/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteActivityReservation(w http.ResponseWriter, r *http.Request) {
	handler.remove(w, r, service.KindActivity, "DeleteActivityReservation")
}

// DeleteGatePass deletes any user's gate pass.
// @Summary Delete a gate pass
// @Description Delete a gate pass regardless of its owner. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Gate Pass ID"
// @Success 200 {object} response.Message "Request deleted successfully"
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/gate-passes/{id} [delete]
// @Security BearerAuth
func (handler *Handler) DeleteGatePass(w http.ResponseWriter, r *http.Request) {
	handler.remove(w, r, service.KindGatePass, "DeleteGatePass")
}

func (handler *Handler) review(w http.ResponseWriter, r *http.Request, kind, status, operation string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+operation)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.SetStatus(ctx, kind, id, status); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("kind", kind).Msg("failed to review request")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Request reviewed successfully by admin " + user)

	response.WithMessage(w, http.StatusOK, "Request reviewed successfully")
}

func (handler *Handler) remove(w http.ResponseWriter, r *http.Request, kind, operation string) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+"."+operation)
	defer scope.End()

	id := chi.URLParam(r, constant.RequestParamID)

	if err := handler.service.Delete(ctx, kind, id); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("kind", kind).Msg("failed to delete request")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("Request deleted successfully by admin " + user)

	response.WithMessage(w, http.StatusOK, "Request deleted successfully")
}
