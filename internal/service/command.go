package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
)

// CommandService runs the assistant pipeline: understand the free text,
// parse the interpretation into a typed intent, and dispatch it.
type CommandService struct {
	understander assistant.Understander
	dispatcher   *assistant.Dispatcher
	logger       *slog.Logger
}

func NewCommandService(understander assistant.Understander, dispatcher *assistant.Dispatcher, logger *slog.Logger) *CommandService {
	return &CommandService{
		understander: understander,
		dispatcher:   dispatcher,
		logger:       logger,
	}
}

// Execute runs one command for one caller and always returns an envelope.
// Understander and parse failures become failure envelopes here for the
// same reason dispatch failures do: the caller renders Message verbatim.
func (s *CommandService) Execute(ctx context.Context, command string, caller assistant.Caller) assistant.Result {
	command = strings.TrimSpace(command)
	if command == "" {
		return assistant.Result{Success: false, Message: "Tell me what you'd like to do."}
	}

	interpretation, err := s.understander.Understand(ctx, command, caller.IsAdmin())
	if err != nil {
		s.logger.Error("understander failed", "error", err)
		return assistant.Result{Success: false, Message: "I couldn't reach the assistant service. Please try again."}
	}

	intent, err := assistant.ParseIntent(interpretation)
	if err != nil {
		// Parse errors carry user-facing messages (missing name, bad price).
		return assistant.Result{Success: false, Message: err.Error()}
	}

	s.logger.Debug("dispatching command",
		"intent", intent.Tag(),
		"user_id", caller.UserID,
	)
	return s.dispatcher.Dispatch(ctx, intent, caller)
}
