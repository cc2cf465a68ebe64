package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shopmateapp/shopmate-server/internal/assistant"
	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/id"
	"github.com/shopmateapp/shopmate-server/internal/normalize"
	"github.com/shopmateapp/shopmate-server/internal/store"
	"github.com/shopmateapp/shopmate-server/internal/validation"
)

// ContactService manages the contact collection.
type ContactService struct {
	store     *store.Store
	validator *validation.Validator
	logger    *slog.Logger
}

func NewContactService(st *store.Store, logger *slog.Logger) *ContactService {
	return &ContactService{store: st, validator: validation.New(), logger: logger}
}

// ContactRequest is the form payload for creating or updating a contact.
// Name parts may be omitted in favor of a single free-text name, which
// goes through the same splitting rule the assistant uses.
type ContactRequest struct {
	Name         string   `json:"name,omitempty"`
	Honorific    string   `json:"honorific,omitempty"`
	FirstName    string   `json:"first_name,omitempty"`
	LastName     string   `json:"last_name,omitempty"`
	Suffix       string   `json:"suffix,omitempty"`
	Categories   []string `json:"categories,omitempty"`
	Email        string   `json:"email,omitempty" validate:"omitempty,email"`
	Phone        string   `json:"phone,omitempty"`
	AddressLines []string `json:"address_lines,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}

func (s *ContactService) Create(ctx context.Context, req ContactRequest, actor string) (*domain.Contact, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	first, last := req.FirstName, req.LastName
	if first == "" && last == "" {
		first, last = assistant.SplitName(req.Name)
	}

	email := normalize.Email(req.Email)
	if email == "" {
		email = assistant.PlaceholderEmail(first + " " + last)
	}

	contactID, err := id.Generate("contact")
	if err != nil {
		return nil, fmt.Errorf("generate contact ID: %w", err)
	}

	contact := &domain.Contact{
		Honorific:    req.Honorific,
		FirstName:    first,
		LastName:     last,
		Suffix:       req.Suffix,
		Categories:   assistant.DefaultCategories(req.Categories),
		Email:        email,
		Phone:        req.Phone,
		AddressLines: req.AddressLines,
		Notes:        req.Notes,
	}
	contact.ID = contactID
	contact.Stamp(actor)

	if err := s.store.Contacts.Create(ctx, contactID, contact); err != nil {
		return nil, fmt.Errorf("create contact: %w", err)
	}

	s.logger.Info("contact created", "contact_id", contactID)
	return contact, nil
}

func (s *ContactService) Get(ctx context.Context, contactID string) (*domain.Contact, error) {
	contact, err := s.store.Contacts.Get(ctx, contactID)
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("contact %s not found", contactID)
		}
		return nil, fmt.Errorf("get contact: %w", err)
	}
	return contact, nil
}

func (s *ContactService) List(ctx context.Context) ([]*domain.Contact, error) {
	return s.store.Contacts.All(ctx)
}

func (s *ContactService) Update(ctx context.Context, contactID string, req ContactRequest, actor string) (*domain.Contact, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	var updated *domain.Contact
	err := s.store.Contacts.Mutate(ctx, contactID, func(c *domain.Contact) error {
		if req.FirstName != "" {
			c.FirstName = req.FirstName
		}
		if req.LastName != "" {
			c.LastName = req.LastName
		}
		c.Honorific = req.Honorific
		c.Suffix = req.Suffix
		if len(req.Categories) > 0 {
			c.Categories = assistant.DefaultCategories(req.Categories)
		}
		if req.Email != "" {
			c.Email = normalize.Email(req.Email)
		}
		c.Phone = req.Phone
		c.AddressLines = req.AddressLines
		c.Notes = req.Notes
		c.Touch(actor)
		updated = c
		return nil
	})
	if err != nil {
		if domainerrors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFoundf("contact %s not found", contactID)
		}
		return nil, fmt.Errorf("update contact: %w", err)
	}
	return updated, nil
}

// Delete removes a contact and drops it from every event's attendee list.
func (s *ContactService) Delete(ctx context.Context, contactID, actor string) error {
	if _, err := s.Get(ctx, contactID); err != nil {
		return err
	}
	if err := s.store.Contacts.Delete(ctx, contactID); err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	if err := s.store.RemoveAttendeeEverywhere(ctx, actor, contactID); err != nil {
		return fmt.Errorf("remove contact from events: %w", err)
	}

	s.logger.Info("contact deleted", "contact_id", contactID)
	return nil
}

// Transactions lists the sales recorded against a contact.
func (s *ContactService) Transactions(ctx context.Context, contactID string) ([]*domain.Transaction, error) {
	if _, err := s.Get(ctx, contactID); err != nil {
		return nil, err
	}
	return s.store.TransactionsForContact(ctx, contactID)
}
