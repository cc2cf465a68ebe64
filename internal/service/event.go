package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/id"
	"github.com/shopmateapp/shopmate-server/internal/store"
	"github.com/shopmateapp/shopmate-server/internal/validation"
)

// EventService manages events and attendance.
type EventService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

func NewEventService(st *store.Store, logger *slog.Logger) *EventService {
	return &EventService{store: st, validator: validation.New(), logger: logger}
}

// EventRequest is the form payload for creating or updating an event.
type EventRequest struct {
	Name        string    `json:"name" validate:"required"`
	StartsAt    time.Time `json:"starts_at,omitzero"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`
}

func (s *EventService) Create(ctx context.Context, req EventRequest, actor string) (*domain.Event, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	eventID, err := id.Generate("event")
	if err != nil {
		return nil, fmt.Errorf("generate event ID: %w", err)
	}

	event := &domain.Event{
		Name:        req.Name,
		StartsAt:    req.StartsAt,
		Location:    req.Location,
		Description: req.Description,
	}
	if event.StartsAt.IsZero() {
		event.StartsAt = time.Now()
	}
	event.ID = eventID
	event.Stamp(actor)

	if err := s.store.Events.Create(ctx, eventID, event); err != nil {
		return nil, fmt.Errorf("create event: %w", err)
	}

	s.logger.Info("event created", "event_id", eventID, "name", event.Name)
	return event, nil
}

func (s *EventService) Get(ctx context.Context, eventID string) (*domain.Event, error) {
	event, err := s.store.Events.Get(ctx, eventID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("event %s not found", eventID)
		}
		return nil, fmt.Errorf("get event: %w", err)
	}
	return event, nil
}

func (s *EventService) List(ctx context.Context) ([]*domain.Event, error) {
	return s.store.Events.All(ctx)
}

func (s *EventService) Update(ctx context.Context, eventID string, req EventRequest, actor string) (*domain.Event, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.store.Events.Mutate(ctx, eventID, func(e *domain.Event) error {
		e.Name = req.Name
		if !req.StartsAt.IsZero() {
			e.StartsAt = req.StartsAt
		}
		e.Location = req.Location
		e.Description = req.Description
		e.Touch(actor)
		updated = e
		return nil
	})
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("event %s not found", eventID)
		}
		return nil, fmt.Errorf("update event: %w", err)
	}
	return updated, nil
}

func (s *EventService) Delete(ctx context.Context, eventID string) error {
	if _, err := s.Get(ctx, eventID); err != nil {
		return err
	}
	if err := s.store.Events.Delete(ctx, eventID); err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	s.logger.Info("event deleted", "event_id", eventID)
	return nil
}

// SetAttendance marks a contact attending or not attending. Both
// directions are idempotent.
func (s *EventService) SetAttendance(ctx context.Context, eventID, contactID string, attending bool, actor string) (*domain.Event, error) {
	return s.store.SetAttendance(ctx, actor, eventID, contactID, attending)
}
