package main

import (
	"campus/config"
	"campus/di"
	"campus/shared/logger"
)

// @title Campus Student Services API
// @version 1.0
// @description Locker reservations, activity space bookings, gate passes, expenses and student profiles.
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Get()

	logger.InitLogger()

	logger.SetLogLevel(cfg)

	http := di.InitializeService()
	http.Serve()
}
