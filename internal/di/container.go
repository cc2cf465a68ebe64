// Package di provides dependency injection configuration for the Shopmate server.
package di

import (
	"github.com/samber/do/v2"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
	"github.com/shopmateapp/shopmate-server/internal/auth"
	"github.com/shopmateapp/shopmate-server/internal/config"
	"github.com/shopmateapp/shopmate-server/internal/di/providers"
	"github.com/shopmateapp/shopmate-server/internal/logger"
	"github.com/shopmateapp/shopmate-server/internal/service"
)

// NewContainer creates and configures the DI container with all providers.
func NewContainer() *do.RootScope {
	injector := do.New()

	// Core infrastructure
	do.Provide(injector, providers.ProvideConfig)
	do.Provide(injector, providers.ProvideLogger)
	do.Provide(injector, providers.ProvideAuthKey)

	// Database layer
	do.Provide(injector, providers.ProvideStore)

	// Auth layer
	do.Provide(injector, providers.ProvideTokenService)

	// Business services
	do.Provide(injector, providers.ProvideAuthService)
	do.Provide(injector, providers.ProvideContactService)
	do.Provide(injector, providers.ProvideInventoryService)
	do.Provide(injector, providers.ProvideEventService)

	// Assistant
	do.Provide(injector, providers.ProvideUnderstander)
	do.Provide(injector, providers.ProvideDispatcher)
	do.Provide(injector, providers.ProvideCommandService)

	// Server
	do.Provide(injector, providers.ProvideHTTPServer)

	return injector
}

// Bootstrap initializes all services and returns handles for lifecycle management.
// This triggers lazy initialization of all core services.
func Bootstrap(injector *do.RootScope) error {
	// Invoke core services to trigger initialization
	_ = do.MustInvoke[*config.Config](injector)
	_ = do.MustInvoke[*logger.Logger](injector)
	_ = do.MustInvoke[providers.AuthKey](injector)
	_ = do.MustInvoke[*providers.StoreHandle](injector)
	_ = do.MustInvoke[*auth.TokenService](injector)

	// Business services
	_ = do.MustInvoke[*service.AuthService](injector)
	_ = do.MustInvoke[*service.ContactService](injector)
	_ = do.MustInvoke[*service.InventoryService](injector)
	_ = do.MustInvoke[*service.EventService](injector)

	// Assistant
	_ = do.MustInvoke[assistant.Understander](injector)
	_ = do.MustInvoke[*assistant.Dispatcher](injector)
	_ = do.MustInvoke[*service.CommandService](injector)

	// Server
	_ = do.MustInvoke[*providers.HTTPServerHandle](injector)

	return nil
}
