package providers

import (
	"github.com/samber/do/v2"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
	"github.com/shopmateapp/shopmate-server/internal/assistant/nlu"
	"github.com/shopmateapp/shopmate-server/internal/auth"
	"github.com/shopmateapp/shopmate-server/internal/config"
	"github.com/shopmateapp/shopmate-server/internal/logger"
	"github.com/shopmateapp/shopmate-server/internal/service"
)

// ProvideAuthService provides the authentication service.
func ProvideAuthService(i do.Injector) (*service.AuthService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	tokenService := do.MustInvoke[*auth.TokenService](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewAuthService(storeHandle.Store, tokenService, log.Logger), nil
}

// ProvideContactService provides the contact service.
func ProvideContactService(i do.Injector) (*service.ContactService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewContactService(storeHandle.Store, log.Logger), nil
}

// ProvideInventoryService provides the book and transaction service.
func ProvideInventoryService(i do.Injector) (*service.InventoryService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewInventoryService(storeHandle.Store, log.Logger), nil
}

// ProvideEventService provides the event service.
func ProvideEventService(i do.Injector) (*service.EventService, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewEventService(storeHandle.Store, log.Logger), nil
}

// ProvideUnderstander selects the command interpreter. With an assistant
// service configured we call out to it, otherwise the built-in keyword
// interpreter keeps the server fully offline-capable.
func ProvideUnderstander(i do.Injector) (assistant.Understander, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Assistant.ServiceURL != "" {
		log.Info("Using language-understanding service", "url", cfg.Assistant.ServiceURL)
		return nlu.NewClient(cfg.Assistant.ServiceURL, cfg.Assistant.Timeout, log.Logger), nil
	}

	log.Info("Using built-in keyword interpreter")
	return assistant.NewKeywordUnderstander(), nil
}

// ProvideDispatcher provides the intent dispatcher.
func ProvideDispatcher(i do.Injector) (*assistant.Dispatcher, error) {
	storeHandle := do.MustInvoke[*StoreHandle](i)
	log := do.MustInvoke[*logger.Logger](i)

	return assistant.NewDispatcher(storeHandle.Store, log.Logger), nil
}

// ProvideCommandService provides the assistant command service.
func ProvideCommandService(i do.Injector) (*service.CommandService, error) {
	understander := do.MustInvoke[assistant.Understander](i)
	dispatcher := do.MustInvoke[*assistant.Dispatcher](i)
	log := do.MustInvoke[*logger.Logger](i)

	return service.NewCommandService(understander, dispatcher, log.Logger), nil
}
