package api

import (
	"encoding/json/v2"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shopmateapp/shopmate-server/internal/http/response"
	"github.com/shopmateapp/shopmate-server/internal/service"
)

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.services.Event.List(r.Context())
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, events, s.logger)
}

func (s *Server) handleGetEvent(w http.ResponseWriter, r *http.Request) {
	event, err := s.services.Event.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, event, s.logger)
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var req service.EventRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	event, err := s.services.Event.Create(r.Context(), req, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Created(w, event, s.logger)
}

func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	var req service.EventRequest
	if err := json.UnmarshalRead(r.Body, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	event, err := s.services.Event.Update(r.Context(), chi.URLParam(r, "id"), req, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, event, s.logger)
}

func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	if err := s.services.Event.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.NoContent(w)
}

func (s *Server) handleAddAttendee(w http.ResponseWriter, r *http.Request) {
	s.setAttendance(w, r, true)
}

func (s *Server) handleRemoveAttendee(w http.ResponseWriter, r *http.Request) {
	s.setAttendance(w, r, false)
}

func (s *Server) setAttendance(w http.ResponseWriter, r *http.Request, attending bool) {
	eventID := chi.URLParam(r, "id")
	contactID := chi.URLParam(r, "contactID")

	event, err := s.services.Event.SetAttendance(r.Context(), eventID, contactID, attending, actorName(r))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}
	response.Success(w, event, s.logger)
}
