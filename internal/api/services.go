package api

import (
	"github.com/shopmateapp/shopmate-server/internal/service"
)

// Services groups all business logic services used by the API server.
// This reduces the parameter count for NewServer and improves testability.
type Services struct {
	Auth      *service.AuthService
	Contact   *service.ContactService
	Inventory *service.InventoryService
	Event     *service.EventService
	Command   *service.CommandService
}
