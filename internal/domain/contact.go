package domain

import (
	"slices"
	"strings"
)

// CategoryOther is the fallback category assigned when a contact is created
// without one. Tests and the assistant's defaulting rules rely on this exact value.
const CategoryOther = "Other"

// CategorySet is a duplicate-free set of category tags.
// Stored as a JSON array; legacy documents that carried a single scalar
// category are converted by the store's startup migration, never here.
type CategorySet []string

// Contains reports whether the set includes the given category.
func (s CategorySet) Contains(category string) bool {
	return slices.Contains(s, category)
}

// Add returns the set with the category included. Adding a member that is
// already present is a no-op.
func (s CategorySet) Add(category string) CategorySet {
	if s.Contains(category) {
		return s
	}
	return append(s, category)
}

// Remove returns the set without the given category. Removing a non-member
// is a no-op.
func (s CategorySet) Remove(category string) CategorySet {
	return slices.DeleteFunc(s, func(c string) bool { return c == category })
}

// Contact represents a person the shop does business with.
type Contact struct {
	Audit
	Honorific    string      `json:"honorific,omitempty"`
	FirstName    string      `json:"first_name"`
	LastName     string      `json:"last_name"`
	Suffix       string      `json:"suffix,omitempty"`
	Categories   CategorySet `json:"categories"`
	Email        string      `json:"email,omitempty"`
	Phone        string      `json:"phone,omitempty"`
	AddressLines []string    `json:"address_lines,omitempty"`
	Notes        string      `json:"notes,omitempty"`
}

// DisplayName returns the contact's full name for denormalized references
// and fuzzy matching.
func (c *Contact) DisplayName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}
