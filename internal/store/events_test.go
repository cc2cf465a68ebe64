package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
)

func seedEvent(t *testing.T, s *Store, id, name string) *domain.Event {
	t.Helper()

	e := &domain.Event{
		Name:     name,
		StartsAt: time.Date(2026, 9, 12, 18, 0, 0, 0, time.UTC),
	}
	e.ID = id
	e.Stamp("test")
	require.NoError(t, s.Events.Create(context.Background(), id, e))
	return e
}

func TestSetAttendance_Add(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedEvent(t, s, "event-1", "Poetry Night")

	event, err := s.SetAttendance(ctx, "tester", "event-1", "contact-1", true)
	require.NoError(t, err)
	assert.True(t, event.HasAttendee("contact-1"))

	got, err := s.Events.Get(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"contact-1"}, got.AttendeeIDs)
}

func TestSetAttendance_AddTwiceKeepsOneEntry(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedEvent(t, s, "event-1", "Poetry Night")

	_, err := s.SetAttendance(ctx, "tester", "event-1", "contact-1", true)
	require.NoError(t, err)
	_, err = s.SetAttendance(ctx, "tester", "event-1", "contact-1", true)
	require.NoError(t, err)

	got, err := s.Events.Get(ctx, "event-1")
	require.NoError(t, err)
	assert.Len(t, got.AttendeeIDs, 1)
}

func TestSetAttendance_RemoveAbsentIsNoop(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedEvent(t, s, "event-1", "Poetry Night")

	event, err := s.SetAttendance(ctx, "tester", "event-1", "contact-1", false)
	require.NoError(t, err)
	assert.Empty(t, event.AttendeeIDs)
}

func TestSetAttendance_UnknownEvent(t *testing.T) {
	s := setupTestStore(t)
	seedContact(t, s, "contact-1", "Jane", "Doe")

	_, err := s.SetAttendance(context.Background(), "tester", "event-missing", "contact-1", true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestSetAttendance_UnknownContact(t *testing.T) {
	s := setupTestStore(t)
	seedEvent(t, s, "event-1", "Poetry Night")

	_, err := s.SetAttendance(context.Background(), "tester", "event-1", "contact-missing", true)
	assert.ErrorIs(t, err, domainerrors.ErrNotFound)
}

func TestRemoveAttendeeEverywhere(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	seedContact(t, s, "contact-1", "Jane", "Doe")
	seedContact(t, s, "contact-2", "John", "Smith")
	seedEvent(t, s, "event-1", "Poetry Night")
	seedEvent(t, s, "event-2", "Book Club")

	for _, eventID := range []string{"event-1", "event-2"} {
		_, err := s.SetAttendance(ctx, "tester", eventID, "contact-1", true)
		require.NoError(t, err)
	}
	_, err := s.SetAttendance(ctx, "tester", "event-1", "contact-2", true)
	require.NoError(t, err)

	require.NoError(t, s.RemoveAttendeeEverywhere(ctx, "tester", "contact-1"))

	one, err := s.Events.Get(ctx, "event-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"contact-2"}, one.AttendeeIDs)

	two, err := s.Events.Get(ctx, "event-2")
	require.NoError(t, err)
	assert.Empty(t, two.AttendeeIDs)
}
