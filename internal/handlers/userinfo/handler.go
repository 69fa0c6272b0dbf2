package userinfo

import (
	"campus/infras/otel"
	"campus/internal/domains/userinfo/model/dto"
	"campus/internal/domains/userinfo/service"
	"campus/shared/constant"
	"campus/shared/validator"
	"campus/transport/http/response"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rs/zerolog/log"
)

type Handler struct {
	service service.UserInfo
	otel    otel.Otel
}

func New(service service.UserInfo, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Route("/profile", func(routerGroup chi.Router) {
		routerGroup.Get("/", handler.GetMyProfile)
		routerGroup.Put("/", handler.UpsertMyProfile)
	})
}

// AdminRouter exposes profile lookups for the admin surface.
func (handler *Handler) AdminRouter(router chi.Router) {
	router.Get("/profiles/{id}", handler.GetProfileByUserID)
}

// GetMyProfile retrieves the caller's profile.
// @Summary Get my profile
// @Description Retrieve the authenticated user's profile. Users without a saved profile get a skeleton built from their account.
// @Tags Profile
// @Accept json
// @Produce json
// @Success 200 {object} response.Data[dto.UserInfoResponse] "User profile"
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profile [get]
// @Security BearerAuth
func (handler *Handler) GetMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetMyProfile")
	defer scope.End()

	profile, err := handler.service.GetMine(ctx)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user profile")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User profile retrieved successfully")

	response.WithJSON(w, http.StatusOK, profile)
}

// UpsertMyProfile creates or replaces the caller's profile.
// @Summary Upsert my profile
// @Description Create the authenticated user's profile or replace it if one already exists.
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.UpsertUserInfoRequest true "Upsert Profile Request"
// @Success 200 {object} response.Data[dto.UserInfoResponse] "User profile saved successfully"
// @Failure 400 {object} response.Error
// @Failure 401 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/profile [put]
// @Security BearerAuth
func (handler *Handler) UpsertMyProfile(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpsertMyProfile")
	defer scope.End()

	req := dto.UpsertUserInfoRequest{}

	if err := validator.Validate(r.Body, &req); err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to validate request body")

		response.WithError(w, err)

		return
	}

	profile, err := handler.service.Upsert(ctx, req)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to upsert user profile")

		response.WithError(w, err)

		return
	}

	user, _ := ctx.Value(constant.ContextKeyUserID).(string)
	scope.AddEvent("User profile saved successfully by user " + user)

	response.WithJSON(w, http.StatusOK, profile)
}

// GetProfileByUserID retrieves a user's profile by their user ID.
// @Summary Get a profile by user ID
// @Description Retrieve any user's profile by their user ID. Admin only.
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "User ID"
// @Success 200 {object} response.Data[dto.UserInfoResponse] "User profile"
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/admin/profiles/{id} [get]
// @Security BearerAuth
func (handler *Handler) GetProfileByUserID(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetProfileByUserID")
	defer scope.End()

	userID := chi.URLParam(r, constant.RequestParamID)

	profile, err := handler.service.GetByUserID(ctx, userID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Msg("failed to get user profile by user ID")

		response.WithError(w, err)

		return
	}

	scope.AddEvent("User profile retrieved successfully for user " + userID)

	response.WithJSON(w, http.StatusOK, profile)
}
