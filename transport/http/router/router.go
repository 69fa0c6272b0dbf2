package router

import (
	"campus/internal/handlers/activity"
	"campus/internal/handlers/admin"
	"campus/internal/handlers/auth"
	"campus/internal/handlers/dashboard"
	"campus/internal/handlers/expense"
	"campus/internal/handlers/gatepass"
	"campus/internal/handlers/locker"
	"campus/internal/handlers/userinfo"
	"campus/transport/http/middleware"

	_ "campus/docs"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger"
)

type DomainHandlers struct {
	Auth      auth.Handler
	Locker    locker.Handler
	Activity  activity.Handler
	GatePass  gatepass.Handler
	UserInfo  userinfo.Handler
	Expense   expense.Handler
	Dashboard dashboard.Handler
	Admin     admin.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
	AppMiddleware  middleware.AppMiddleware
	AuthRole       middleware.AuthRole
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Use(r.AppMiddleware.CORS)
	router.Use(r.AppMiddleware.Tracing)
	router.Use(r.AppMiddleware.RateLimit())

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)

		routerGroup.Group(func(protected chi.Router) {
			protected.Use(r.AuthRole.APIKey)
			protected.Use(r.AuthRole.Auth)

			r.DomainHandlers.Auth.ProtectedRouter(protected)
			r.DomainHandlers.Locker.Router(protected)
			r.DomainHandlers.Activity.Router(protected)
			r.DomainHandlers.GatePass.Router(protected)
			r.DomainHandlers.UserInfo.Router(protected)
			r.DomainHandlers.Expense.Router(protected)
			r.DomainHandlers.Dashboard.Router(protected)

			protected.Route("/admin", func(adminGroup chi.Router) {
				adminGroup.Use(r.AuthRole.RBAC)

				r.DomainHandlers.Admin.Router(adminGroup)
				r.DomainHandlers.UserInfo.AdminRouter(adminGroup)
			})
		})
	})
}

func New(domainHandlers DomainHandlers, appMiddleware middleware.AppMiddleware, authRole middleware.AuthRole) Router {
	return Router{
		DomainHandlers: domainHandlers,
		AppMiddleware:  appMiddleware,
		AuthRole:       authRole,
	}
}
