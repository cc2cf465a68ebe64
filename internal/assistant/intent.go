// Package assistant turns free-text commands into store operations. An
// external language-understanding service (or the built-in keyword
// fallback) produces an intent tag plus loosely structured fields; this
// package parses those into typed intents, checks the caller's role,
// resolves entity references, and executes against the document store.
package assistant

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tag identifies one recognized command intent.
type Tag string

const (
	TagAddContact         Tag = "add_contact"
	TagFindContact        Tag = "find_contact"
	TagUpdateContactNotes Tag = "update_contact_notes"
	TagDeleteContact      Tag = "delete_contact"
	TagAddBook            Tag = "add_book"
	TagFindBook           Tag = "find_book"
	TagCheckStock         Tag = "check_stock"
	TagRestockBook        Tag = "restock_book"
	TagDeleteBook         Tag = "delete_book"
	TagRecordSale         Tag = "record_sale"
	TagVoidSale           Tag = "void_sale"
	TagCountBooks         Tag = "count_books"
	TagCreateEvent        Tag = "create_event"
	TagFindEvent          Tag = "find_event"
	TagRSVP               Tag = "rsvp"
	TagUnknown            Tag = "unknown"
)

// Intent is the closed set of commands the dispatcher executes. Each
// variant carries its own typed payload; the dispatcher switches over the
// concrete types, so an unhandled variant is a compile-visible gap rather
// than a silent string mismatch.
type Intent interface {
	Tag() Tag
	isIntent()
}

// AddContact creates a contact. All fields except Name may be absent and
// are filled by the documented defaulting rules at parse time.
type AddContact struct {
	Honorific    string
	FirstName    string
	LastName     string
	Suffix       string
	Categories   []string
	Email        string
	Phone        string
	AddressLines []string
	Notes        string
}

// FindContact looks up contacts by a free-text reference.
type FindContact struct {
	Query string
}

// UpdateContactNotes replaces the notes on one resolved contact.
type UpdateContactNotes struct {
	Query string
	Notes string
}

// DeleteContact removes one resolved contact.
type DeleteContact struct {
	Query string
}

// AddBook creates a book. Price defaults to zero and stock to zero when
// the command does not mention them.
type AddBook struct {
	Title     string
	Author    string
	ISBN      string
	Publisher string
	Genre     string
	Year      int
	Price     decimal.Decimal
	Stock     int
}

// FindBook looks up books by a free-text reference.
type FindBook struct {
	Query string
}

// CheckStock reports the stock level of one resolved book.
type CheckStock struct {
	Query string
}

// RestockBook adds copies of one resolved book to stock.
type RestockBook struct {
	Query    string
	Quantity int
}

// DeleteBook removes one resolved book.
type DeleteBook struct {
	Query string
}

// SaleLine names a book by free-text reference with a quantity.
type SaleLine struct {
	BookQuery string
	Quantity  int
}

// RecordSale records a sale of one or more books to a resolved contact.
type RecordSale struct {
	ContactQuery string
	Lines        []SaleLine
	Date         time.Time
}

// VoidSale deletes one resolved transaction and refunds its stock.
type VoidSale struct {
	Query string
}

// CountBooks reports title and copy counts across the inventory.
type CountBooks struct{}

// CreateEvent creates an in-store event.
type CreateEvent struct {
	Name        string
	StartsAt    time.Time
	Location    string
	Description string
}

// FindEvent looks up events by a free-text reference.
type FindEvent struct {
	Query string
}

// RSVP marks a resolved contact as attending or not attending a resolved
// event.
type RSVP struct {
	EventQuery   string
	ContactQuery string
	Attending    bool
}

// Unknown is anything the understander could not map to a command. It is
// conversational, not an error; dispatch succeeds with the understander's
// own response text and no side effect.
type Unknown struct {
	ResponseText string
}

func (AddContact) Tag() Tag         { return TagAddContact }
func (FindContact) Tag() Tag        { return TagFindContact }
func (UpdateContactNotes) Tag() Tag { return TagUpdateContactNotes }
func (DeleteContact) Tag() Tag      { return TagDeleteContact }
func (AddBook) Tag() Tag            { return TagAddBook }
func (FindBook) Tag() Tag           { return TagFindBook }
func (CheckStock) Tag() Tag         { return TagCheckStock }
func (RestockBook) Tag() Tag        { return TagRestockBook }
func (DeleteBook) Tag() Tag         { return TagDeleteBook }
func (RecordSale) Tag() Tag         { return TagRecordSale }
func (VoidSale) Tag() Tag           { return TagVoidSale }
func (CountBooks) Tag() Tag         { return TagCountBooks }
func (CreateEvent) Tag() Tag        { return TagCreateEvent }
func (FindEvent) Tag() Tag          { return TagFindEvent }
func (RSVP) Tag() Tag               { return TagRSVP }
func (Unknown) Tag() Tag            { return TagUnknown }

func (AddContact) isIntent()         {}
func (FindContact) isIntent()        {}
func (UpdateContactNotes) isIntent() {}
func (DeleteContact) isIntent()      {}
func (AddBook) isIntent()            {}
func (FindBook) isIntent()           {}
func (CheckStock) isIntent()         {}
func (RestockBook) isIntent()        {}
func (DeleteBook) isIntent()         {}
func (RecordSale) isIntent()         {}
func (VoidSale) isIntent()           {}
func (CountBooks) isIntent()         {}
func (CreateEvent) isIntent()        {}
func (FindEvent) isIntent()          {}
func (RSVP) isIntent()               {}
func (Unknown) isIntent()            {}

// Result is the uniform envelope every dispatch returns. Failures are
// values, never panics or raw errors crossing the boundary.
type Result struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Payload any    `json:"payload,omitempty"`
}
