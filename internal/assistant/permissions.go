package assistant

import "github.com/shopmateapp/shopmate-server/internal/domain"

// Caller identifies who issued a command. Role and identity come from the
// verified token, never from the request body or the understander.
type Caller struct {
	UserID string
	Name   string
	Role   domain.Role
	IsRoot bool
}

// IsAdmin reports whether the caller may run mutating intents.
func (c Caller) IsAdmin() bool {
	return c.IsRoot || c.Role == domain.RoleAdmin
}

// readOnlyIntents are allowed to every authenticated role. Everything
// else mutates the store and requires admin. Unknown is listed because a
// conversational reply is harmless for anyone.
var readOnlyIntents = map[Tag]bool{
	TagFindContact: true,
	TagFindBook:    true,
	TagCheckStock:  true,
	TagCountBooks:  true,
	TagFindEvent:   true,
	TagUnknown:     true,
}

// IsAllowed is the permission gate: (role, intent) to a yes or no. It is
// consulted before any resolution or store access, so a denied caller
// learns nothing about whether a matching record exists.
func IsAllowed(caller Caller, tag Tag) bool {
	if readOnlyIntents[tag] {
		return true
	}
	return caller.IsAdmin()
}
