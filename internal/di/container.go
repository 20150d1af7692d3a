// Package di provides dependency injection configuration for the Wayfarer server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/wayfarerapp/wayfarer-server/internal/auth"
	"github.com/wayfarerapp/wayfarer-server/internal/config"
	"github.com/wayfarerapp/wayfarer-server/internal/di/providers"
	"github.com/wayfarerapp/wayfarer-server/internal/logger"
	"github.com/wayfarerapp/wayfarer-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideSlogLogger)
	do.Provide(injector, providers.ProvideValidator)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvidePlanService)
	do.Provide(injector, providers.ProvideJoinService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle
// management. This triggers lazy initialization of the core services.
func Bootstrap(injector *do.RootScope) error {
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.PlanService](injector)
	_ = do.MustInvoke[*service.JoinService](injector)

	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
