package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopmateapp/shopmate-server/internal/http/response"
	"github.com/shopmateapp/shopmate-server/internal/service"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.services.Inventory.ListTransactions(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, txns, s.logger)
}

func (s *Server) handleGetTransaction(w http.ResponseWriter, r *http.Request) {
	txn, err := s.services.Inventory.GetTransaction(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, txn, s.logger)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req service.TransactionRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	txn, err := s.services.Inventory.CreateTransaction(r.Context(), req, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, txn, s.logger)
}

// handleReplaceTransaction swaps a sale for a corrected one. Stock moves
// for the old and new lines settle in a single atomic write.
func (s *Server) handleReplaceTransaction(w http.ResponseWriter, r *http.Request) {
	var req service.TransactionRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	txn, err := s.services.Inventory.ReplaceTransaction(r.Context(), chi.URLParam(r, "id"), req, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, txn, s.logger)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Inventory.DeleteTransaction(r.Context(), chi.URLParam(r, "id"), actorName(r)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
