package domain

import (
	"slices"
	"time"
)

// Event represents an in-store event contacts can attend.
type Event struct {
	Audit
	Name        string    `json:"name"`
	StartsAt    time.Time `json:"starts_at"`
	Location    string    `json:"location,omitempty"`
	Description string    `json:"description,omitempty"`

	// AttendeeIDs is a duplicate-free set of contact IDs. Order carries no
	// meaning.
	AttendeeIDs []string `json:"attendee_ids,omitempty"`
}

// HasAttendee reports whether the contact is registered for the event.
func (e *Event) HasAttendee(contactID string) bool {
	return slices.Contains(e.AttendeeIDs, contactID)
}

// AddAttendee registers a contact for the event. Returns false if the
// contact was already registered (no-op).
func (e *Event) AddAttendee(contactID string) bool {
	if e.HasAttendee(contactID) {
		return false
	}
	e.AttendeeIDs = append(e.AttendeeIDs, contactID)
	return true
}

// RemoveAttendee unregisters a contact. Returns false if the contact was
// not registered (no-op).
func (e *Event) RemoveAttendee(contactID string) bool {
	before := len(e.AttendeeIDs)
	e.AttendeeIDs = slices.DeleteFunc(e.AttendeeIDs, func(id string) bool {
		return id == contactID
	})
	return len(e.AttendeeIDs) != before
}
