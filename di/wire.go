//go:build wireinject
// +build wireinject

package di

import (
	"campus/config"
	"campus/infras/jwt"
	"campus/infras/mailer"
	"campus/infras/otel"
	"campus/infras/postgres"
	"campus/infras/redis"
	"campus/permissions"
	"campus/shared/cache"
	"campus/transport/http"
	"campus/transport/http/middleware"
	"campus/transport/http/router"

	"github.com/google/wire"

	activityRepository "campus/internal/domains/activity/repository"
	activityService "campus/internal/domains/activity/service"
	adminService "campus/internal/domains/admin/service"
	authService "campus/internal/domains/auth/service"
	dashboardService "campus/internal/domains/dashboard/service"
	expenseRepository "campus/internal/domains/expense/repository"
	expenseService "campus/internal/domains/expense/service"
	gatepassRepository "campus/internal/domains/gatepass/repository"
	gatepassService "campus/internal/domains/gatepass/service"
	lockerRepository "campus/internal/domains/locker/repository"
	lockerService "campus/internal/domains/locker/service"
	userRepository "campus/internal/domains/user/repository"
	userinfoRepository "campus/internal/domains/userinfo/repository"
	userinfoService "campus/internal/domains/userinfo/service"

	activityHandler "campus/internal/handlers/activity"
	adminHandler "campus/internal/handlers/admin"
	authHandler "campus/internal/handlers/auth"
	dashboardHandler "campus/internal/handlers/dashboard"
	expenseHandler "campus/internal/handlers/expense"
	gatepassHandler "campus/internal/handlers/gatepass"
	lockerHandler "campus/internal/handlers/locker"
	userinfoHandler "campus/internal/handlers/userinfo"
)

var configurations = wire.NewSet(
	config.Get,
)

var infrastructures = wire.NewSet(
	postgres.New,
	otel.New,
	redis.New,
	jwt.New,
	mailer.New,
)

var middlewares = wire.NewSet(
	permissions.Get,
	middleware.NewAppMiddleware,
	middleware.NewAuthRoleMiddleware,
)

var sharedHelpers = wire.NewSet(
	cache.NewRedisCache,
)

var lockerDomain = wire.NewSet(
	lockerRepository.New,
	lockerService.New,
)

var activityDomain = wire.NewSet(
	activityRepository.New,
	activityService.New,
)

var gatepassDomain = wire.NewSet(
	gatepassRepository.New,
	gatepassService.New,
)

var userinfoDomain = wire.NewSet(
	userinfoRepository.New,
	userinfoService.New,
)

var expenseDomain = wire.NewSet(
	expenseRepository.New,
	expenseService.New,
)

var dashboardDomain = wire.NewSet(
	dashboardService.New,
)

var adminDomain = wire.NewSet(
	adminService.New,
)

var authDomain = wire.NewSet(
	userRepository.New,
	authService.New,
)

var domains = wire.NewSet(
	lockerDomain,
	activityDomain,
	gatepassDomain,
	userinfoDomain,
	expenseDomain,
	dashboardDomain,
	adminDomain,
	authDomain,
)

var routing = wire.NewSet(
	wire.Struct(new(router.DomainHandlers), "*"),
	authHandler.New,
	lockerHandler.New,
	activityHandler.New,
	gatepassHandler.New,
	userinfoHandler.New,
	expenseHandler.New,
	dashboardHandler.New,
	adminHandler.New,
	router.New,
)

func InitializeService() *http.HTTP {
	wire.Build(
		configurations,
		infrastructures,
		middlewares,
		sharedHelpers,
		domains,
		routing,
		http.New,
	)

	return &http.HTTP{}
}
