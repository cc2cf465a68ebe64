package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
)

func (s *Server) registerAssistantRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "execute-command",
		Method:      http.MethodPost,
		Path:        "/api/v1/assistant/command",
		Summary:     "Execute an assistant command",
		Description: "Interprets a free-text command and performs the matching shop operation. The caller's permissions come from the access token.",
		Tags:        []string{"Assistant"},
		Security:    []map[string][]string{{"bearer": {}}},
	}, s.handleCommand)
}

// CommandRequest is the request body for assistant commands.
type CommandRequest struct {
	Command string `json:"command" validate:"required,max=2000" doc:"Free-text command, e.g. \"sell 2 copies of Dune to Sarah\""`
}

// CommandInput wraps the command request for Huma.
type CommandInput struct {
	Body CommandRequest
}

// CommandOutput wraps the assistant result for Huma.
type CommandOutput struct {
	Body assistant.Result
}

func (s *Server) handleCommand(ctx context.Context, input *CommandInput) (*CommandOutput, error) {
	caller, ok := callerFrom(ctx)
	if !ok {
		return nil, huma.Error401Unauthorized("Invalid or missing token")
	}

	result := s.services.Command.Execute(ctx, input.Body.Command, caller)
	return &CommandOutput{Body: result}, nil
}
