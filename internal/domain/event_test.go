package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEvent_AddAttendee_Idempotent(t *testing.T) {
	e := &Event{Name: "Author Signing"}

	assert.True(t, e.AddAttendee("contact-1"))
	assert.False(t, e.AddAttendee("contact-1"), "second add should be a no-op")
	assert.Equal(t, []string{"contact-1"}, e.AttendeeIDs)
}

func TestEvent_RemoveAttendee_NonMemberIsNoop(t *testing.T) {
	e := &Event{AttendeeIDs: []string{"contact-1", "contact-2"}}

	assert.False(t, e.RemoveAttendee("contact-9"))
	assert.Len(t, e.AttendeeIDs, 2)

	assert.True(t, e.RemoveAttendee("contact-1"))
	assert.Equal(t, []string{"contact-2"}, e.AttendeeIDs)
}

func TestUser_IsAdmin(t *testing.T) {
	assert.True(t, (&User{Role: RoleAdmin}).IsAdmin())
	assert.True(t, (&User{Role: RoleStaff, IsRoot: true}).IsAdmin())
	assert.False(t, (&User{Role: RoleStaff}).IsAdmin())
}
