package store

import (
	"context"

	"github.com/dgraph-io/badger/v4"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
)

// SetAttendance marks a contact as attending or not attending an event.
// The attendee list behaves as a set: marking an existing attendee again,
// or removing an absent one, is a no-op rather than an error. The contact
// must exist when being added.
func (s *Store) SetAttendance(ctx context.Context, actor, eventID, contactID string, attending bool) (*domain.Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var updated *domain.Event
	err := s.updateWithRetry(func(txn *badger.Txn) error {
		var event domain.Event
		if err := getDoc(txn, eventPrefix+eventID, &event); err != nil {
			if err == ErrNotFound {
				return domainerrors.NotFoundf("event %s not found", eventID)
			}
			return err
		}

		if attending {
			var contact domain.Contact
			if err := getDoc(txn, contactPrefix+contactID, &contact); err != nil {
				if err == ErrNotFound {
					return domainerrors.NotFoundf("contact %s not found", contactID)
				}
				return err
			}
		}

		var changed bool
		if attending {
			changed = event.AddAttendee(contactID)
		} else {
			changed = event.RemoveAttendee(contactID)
		}

		if changed {
			event.Touch(actor)
			if err := setDoc(txn, eventPrefix+eventID, &event); err != nil {
				return err
			}
		}

		updated = &event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// RemoveAttendeeEverywhere drops the contact from every event's attendee
// list. Called when a contact is deleted so events never point at ghosts.
func (s *Store) RemoveAttendeeEverywhere(ctx context.Context, actor, contactID string) error {
	events, err := s.Events.All(ctx)
	if err != nil {
		return err
	}

	for _, event := range events {
		if !event.HasAttendee(contactID) {
			continue
		}
		err := s.Events.Mutate(ctx, event.ID, func(e *domain.Event) error {
			if e.RemoveAttendee(contactID) {
				e.Touch(actor)
			}
			return nil
		})
		if err != nil && err != ErrNotFound {
			return err
		}
	}
	return nil
}
