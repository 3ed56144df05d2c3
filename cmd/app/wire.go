//go:build wireinject
// +build wireinject

package main

import (
	"milkline/config"
	"milkline/internal/command"
	"milkline/internal/cron"
	"milkline/internal/database"
	"milkline/internal/database/client"
	mongoRepo "milkline/internal/database/mongodb/repository"
	"milkline/internal/handler"
	"milkline/internal/middleware"
	"milkline/internal/router"
	"milkline/internal/service"
	"milkline/internal/telemetry"

	"github.com/google/wire"
	"go.uber.org/zap"
)

// wireApp init application.
func wireApp(*config.Configuration, *zap.Logger) (*App, func(), error) {
	panic(
		wire.Build(
			database.ProviderSet,
			service.ProviderSet,
			handler.ProviderSet,
			middleware.ProviderSet,
			router.ProviderSet,
			cron.ProviderSet,
			newHttpServer,
			telemetry.ProviderSet,
			newApp,
		),
	)
}

// wireCommand init application.
func wireCommand(*config.Configuration, *zap.Logger) (*command.Command, func(), error) {
	panic(wire.Build(
		command.ProviderSet,
		client.NewMongoClient,
		mongoRepo.NewAdminRepository,
	))
}
