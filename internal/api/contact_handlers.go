package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopmateapp/shopmate-server/internal/http/response"
	"github.com/shopmateapp/shopmate-server/internal/service"
)

// actorName returns the display name of the authenticated caller for audit
// stamps. Handlers behind requireAuth always have one.
func actorName(r *http.Request) string {
	caller, _ := callerFrom(r.Context())
	return caller.Name
}

func (s *Server) handleListContacts(w http.ResponseWriter, r *http.Request) {
	contacts, err := s.services.Contact.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, contacts, s.logger)
}

func (s *Server) handleGetContact(w http.ResponseWriter, r *http.Request) {
	contact, err := s.services.Contact.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, contact, s.logger)
}

func (s *Server) handleContactTransactions(w http.ResponseWriter, r *http.Request) {
	txns, err := s.services.Contact.Transactions(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, txns, s.logger)
}

func (s *Server) handleCreateContact(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	contact, err := s.services.Contact.Create(r.Context(), req, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, contact, s.logger)
}

func (s *Server) handleUpdateContact(w http.ResponseWriter, r *http.Request) {
	var req service.ContactRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	contact, err := s.services.Contact.Update(r.Context(), chi.URLParam(r, "id"), req, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, contact, s.logger)
}

func (s *Server) handleDeleteContact(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Contact.Delete(r.Context(), chi.URLParam(r, "id"), actorName(r)); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}
