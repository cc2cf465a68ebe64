package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/id"
	"github.com/shopmateapp/shopmate-server/internal/store"
)

// Dispatcher executes typed intents against the store. Every branch
// returns a Result envelope; no error escapes Dispatch, and a failure
// message is always safe to show the user verbatim.
type Dispatcher struct {
	store *store.Store
	log   *slog.Logger
}

func NewDispatcher(st *store.Store, log *slog.Logger) *Dispatcher {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	return &Dispatcher{store: st, log: log}
}

// Dispatch runs one intent for one caller. The permission gate runs
// before anything touches the store, so a denied caller cannot probe for
// record existence through error messages.
func (d *Dispatcher) Dispatch(ctx context.Context, intent Intent, caller Caller) Result {
	if !IsAllowed(caller, intent.Tag()) {
		return failure("You don't have permission to do that. Ask an admin for help.")
	}

	switch it := intent.(type) {
	case AddContact:
		return d.addContact(ctx, it, caller)
	case FindContact:
		return d.findContacts(ctx, it)
	case UpdateContactNotes:
		return d.updateContactNotes(ctx, it, caller)
	case DeleteContact:
		return d.deleteContact(ctx, it, caller)
	case AddBook:
		return d.addBook(ctx, it, caller)
	case FindBook:
		return d.findBooks(ctx, it)
	case CheckStock:
		return d.checkStock(ctx, it)
	case RestockBook:
		return d.restockBook(ctx, it, caller)
	case DeleteBook:
		return d.deleteBook(ctx, it)
	case RecordSale:
		return d.recordSale(ctx, it, caller)
	case VoidSale:
		return d.voidSale(ctx, it, caller)
	case CountBooks:
		return d.countBooks(ctx)
	case CreateEvent:
		return d.createEvent(ctx, it, caller)
	case FindEvent:
		return d.findEvents(ctx, it)
	case RSVP:
		return d.rsvp(ctx, it, caller)
	case Unknown:
		msg := it.ResponseText
		if msg == "" {
			msg = "I'm not sure how to help with that, but I'm happy to chat."
		}
		return Result{Success: true, Message: msg}
	default:
		// A tag with no handler is conversational, never an error.
		return Result{Success: true}
	}
}

func (d *Dispatcher) addContact(ctx context.Context, it AddContact, caller Caller) Result {
	contact := &domain.Contact{
		Honorific:    it.Honorific,
		FirstName:    it.FirstName,
		LastName:     it.LastName,
		Suffix:       it.Suffix,
		Categories:   it.Categories,
		Email:        it.Email,
		Phone:        it.Phone,
		AddressLines: it.AddressLines,
		Notes:        it.Notes,
	}
	contactID, err := id.Generate("contact")
	if err != nil {
		return d.storeFailure("generate contact id", err)
	}
	contact.ID = contactID
	contact.Stamp(caller.Name)

	if err := d.store.Contacts.Create(ctx, contactID, contact); err != nil {
		return d.storeFailure("create contact", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Added %s to your contacts.", contact.DisplayName()),
		Payload: contact,
	}
}

func (d *Dispatcher) findContacts(ctx context.Context, it FindContact) Result {
	res, fail := d.resolveContacts(ctx, it.Query)
	if fail != nil {
		return *fail
	}
	// A lookup with several hits is a search result, not an error.
	if res.Outcome == Ambiguous {
		return Result{
			Success: true,
			Message: fmt.Sprintf("I found %d contacts matching %q.", len(res.Matches), it.Query),
			Payload: res.Matches,
		}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %s.", res.Match.DisplayName()),
		Payload: []*domain.Contact{res.Match},
	}
}

func (d *Dispatcher) updateContactNotes(ctx context.Context, it UpdateContactNotes, caller Caller) Result {
	contact, fail := d.resolveOneContact(ctx, it.Query)
	if fail != nil {
		return *fail
	}

	err := d.store.Contacts.Mutate(ctx, contact.ID, func(c *domain.Contact) error {
		c.Notes = it.Notes
		c.Touch(caller.Name)
		return nil
	})
	if err != nil {
		return d.storeFailure("update contact notes", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Updated notes for %s.", contact.DisplayName()),
	}
}

func (d *Dispatcher) deleteContact(ctx context.Context, it DeleteContact, caller Caller) Result {
	contact, fail := d.resolveOneContact(ctx, it.Query)
	if fail != nil {
		return *fail
	}

	if err := d.store.Contacts.Delete(ctx, contact.ID); err != nil {
		return d.storeFailure("delete contact", err)
	}
	if err := d.store.RemoveAttendeeEverywhere(ctx, caller.Name, contact.ID); err != nil {
		return d.storeFailure("remove contact from events", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Removed %s from your contacts.", contact.DisplayName()),
	}
}

func (d *Dispatcher) addBook(ctx context.Context, it AddBook, caller Caller) Result {
	book := &domain.Book{
		Title:     it.Title,
		Author:    it.Author,
		ISBN:      it.ISBN,
		Publisher: it.Publisher,
		Genre:     it.Genre,
		Year:      it.Year,
		Price:     it.Price,
		Stock:     it.Stock,
	}
	bookID, err := id.Generate("book")
	if err != nil {
		return d.storeFailure("generate book id", err)
	}
	book.ID = bookID
	book.Stamp(caller.Name)

	if err := d.store.Books.Create(ctx, bookID, book); err != nil {
		return d.storeFailure("create book", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Added %q to the inventory with %d in stock.", book.Title, book.Stock),
		Payload: book,
	}
}

func (d *Dispatcher) findBooks(ctx context.Context, it FindBook) Result {
	res, fail := d.resolveBooks(ctx, it.Query)
	if fail != nil {
		return *fail
	}
	if res.Outcome == Ambiguous {
		return Result{
			Success: true,
			Message: fmt.Sprintf("I found %d books matching %q.", len(res.Matches), it.Query),
			Payload: res.Matches,
		}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %q by %s.", res.Match.Title, res.Match.Author),
		Payload: []*domain.Book{res.Match},
	}
}

func (d *Dispatcher) checkStock(ctx context.Context, it CheckStock) Result {
	book, fail := d.resolveOneBook(ctx, it.Query)
	if fail != nil {
		return *fail
	}

	var msg string
	switch book.Stock {
	case 0:
		msg = fmt.Sprintf("%q is out of stock.", book.Title)
	case 1:
		msg = fmt.Sprintf("There is 1 copy of %q in stock.", book.Title)
	default:
		msg = fmt.Sprintf("There are %d copies of %q in stock.", book.Stock, book.Title)
	}
	return Result{Success: true, Message: msg, Payload: book}
}

func (d *Dispatcher) restockBook(ctx context.Context, it RestockBook, caller Caller) Result {
	book, fail := d.resolveOneBook(ctx, it.Query)
	if fail != nil {
		return *fail
	}

	updated, err := d.store.AdjustStock(ctx, caller.Name, book.ID, it.Quantity)
	if err != nil {
		return d.storeFailure("restock book", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Added %d copies of %q. Now %d in stock.", it.Quantity, updated.Title, updated.Stock),
		Payload: updated,
	}
}

func (d *Dispatcher) deleteBook(ctx context.Context, it DeleteBook) Result {
	book, fail := d.resolveOneBook(ctx, it.Query)
	if fail != nil {
		return *fail
	}

	if err := d.store.Books.Delete(ctx, book.ID); err != nil {
		return d.storeFailure("delete book", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Removed %q from the inventory.", book.Title),
	}
}

func (d *Dispatcher) recordSale(ctx context.Context, it RecordSale, caller Caller) Result {
	contact, fail := d.resolveOneContact(ctx, it.ContactQuery)
	if fail != nil {
		return *fail
	}

	lines := make([]store.LineRequest, 0, len(it.Lines))
	for _, line := range it.Lines {
		book, fail := d.resolveOneBook(ctx, line.BookQuery)
		if fail != nil {
			return *fail
		}
		lines = append(lines, store.LineRequest{BookID: book.ID, Quantity: line.Quantity})
	}

	txn, err := d.store.CreateTransaction(ctx, caller.Name, contact.ID, lines, it.Date)
	if err != nil {
		return d.storeFailure("record sale", err)
	}

	copies := 0
	for _, line := range txn.Lines {
		copies += line.Quantity
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Recorded a sale of %d to %s for $%s.",
			copies, txn.ContactName, txn.TotalPrice.StringFixed(2)),
		Payload: txn,
	}
}

func (d *Dispatcher) voidSale(ctx context.Context, it VoidSale, caller Caller) Result {
	txn, fail := d.resolveOneTransaction(ctx, it.Query)
	if fail != nil {
		return *fail
	}

	if err := d.store.DeleteTransaction(ctx, caller.Name, txn.ID); err != nil {
		return d.storeFailure("void sale", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Voided the $%s sale to %s and returned the books to stock.",
			txn.TotalPrice.StringFixed(2), txn.ContactName),
	}
}

func (d *Dispatcher) countBooks(ctx context.Context) Result {
	books, err := d.store.Books.All(ctx)
	if err != nil {
		return d.storeFailure("count books", err)
	}

	copies := 0
	for _, b := range books {
		copies += b.Stock
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("You have %d titles and %d copies in stock.", len(books), copies),
		Payload: map[string]int{"titles": len(books), "copies": copies},
	}
}

func (d *Dispatcher) createEvent(ctx context.Context, it CreateEvent, caller Caller) Result {
	event := &domain.Event{
		Name:        it.Name,
		StartsAt:    it.StartsAt,
		Location:    it.Location,
		Description: it.Description,
	}
	if event.StartsAt.IsZero() {
		event.StartsAt = time.Now()
	}
	eventID, err := id.Generate("event")
	if err != nil {
		return d.storeFailure("generate event id", err)
	}
	event.ID = eventID
	event.Stamp(caller.Name)

	if err := d.store.Events.Create(ctx, eventID, event); err != nil {
		return d.storeFailure("create event", err)
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Created the event %q.", event.Name),
		Payload: event,
	}
}

func (d *Dispatcher) findEvents(ctx context.Context, it FindEvent) Result {
	res, fail := d.resolveEvents(ctx, it.Query)
	if fail != nil {
		return *fail
	}
	if res.Outcome == Ambiguous {
		return Result{
			Success: true,
			Message: fmt.Sprintf("I found %d events matching %q.", len(res.Matches), it.Query),
			Payload: res.Matches,
		}
	}
	return Result{
		Success: true,
		Message: fmt.Sprintf("Found %q on %s.", res.Match.Name, res.Match.StartsAt.Format("Jan 2, 2006")),
		Payload: []*domain.Event{res.Match},
	}
}

func (d *Dispatcher) rsvp(ctx context.Context, it RSVP, caller Caller) Result {
	event, fail := d.resolveOneEvent(ctx, it.EventQuery)
	if fail != nil {
		return *fail
	}
	contact, fail := d.resolveOneContact(ctx, it.ContactQuery)
	if fail != nil {
		return *fail
	}

	updated, err := d.store.SetAttendance(ctx, caller.Name, event.ID, contact.ID, it.Attending)
	if err != nil {
		return d.storeFailure("update attendance", err)
	}

	var msg string
	if it.Attending {
		msg = fmt.Sprintf("%s is attending %q.", contact.DisplayName(), updated.Name)
	} else {
		msg = fmt.Sprintf("%s is no longer attending %q.", contact.DisplayName(), updated.Name)
	}
	return Result{Success: true, Message: msg, Payload: updated}
}

// --- resolution helpers ---

func (d *Dispatcher) resolveContacts(ctx context.Context, query string) (Resolution[domain.Contact], *Result) {
	candidates, err := d.store.Contacts.All(ctx)
	if err != nil {
		r := d.storeFailure("list contacts", err)
		return Resolution[domain.Contact]{}, &r
	}
	res := Resolve(candidates, query, func(c *domain.Contact) []string {
		return []string{c.DisplayName(), c.Email}
	})
	if res.Outcome == NotFound {
		r := failure(fmt.Sprintf("I couldn't find a contact matching %q.", query))
		return res, &r
	}
	return res, nil
}

func (d *Dispatcher) resolveOneContact(ctx context.Context, query string) (*domain.Contact, *Result) {
	res, fail := d.resolveContacts(ctx, query)
	if fail != nil {
		return nil, fail
	}
	if res.Outcome == Ambiguous {
		r := failure(fmt.Sprintf(
			"I found %d contacts matching %q. Can you be more specific?", len(res.Matches), query))
		return nil, &r
	}
	return res.Match, nil
}

func (d *Dispatcher) resolveBooks(ctx context.Context, query string) (Resolution[domain.Book], *Result) {
	candidates, err := d.store.Books.All(ctx)
	if err != nil {
		r := d.storeFailure("list books", err)
		return Resolution[domain.Book]{}, &r
	}
	res := Resolve(candidates, query, func(b *domain.Book) []string {
		return []string{b.Title, b.Author, b.ISBN}
	})
	if res.Outcome == NotFound {
		r := failure(fmt.Sprintf("I couldn't find a book matching %q.", query))
		return res, &r
	}
	return res, nil
}

func (d *Dispatcher) resolveOneBook(ctx context.Context, query string) (*domain.Book, *Result) {
	res, fail := d.resolveBooks(ctx, query)
	if fail != nil {
		return nil, fail
	}
	if res.Outcome == Ambiguous {
		r := failure(fmt.Sprintf(
			"I found %d books matching %q. Can you be more specific?", len(res.Matches), query))
		return nil, &r
	}
	return res.Match, nil
}

func (d *Dispatcher) resolveEvents(ctx context.Context, query string) (Resolution[domain.Event], *Result) {
	candidates, err := d.store.Events.All(ctx)
	if err != nil {
		r := d.storeFailure("list events", err)
		return Resolution[domain.Event]{}, &r
	}
	res := Resolve(candidates, query, func(e *domain.Event) []string {
		return []string{e.Name, e.Location}
	})
	if res.Outcome == NotFound {
		r := failure(fmt.Sprintf("I couldn't find an event matching %q.", query))
		return res, &r
	}
	return res, nil
}

func (d *Dispatcher) resolveOneEvent(ctx context.Context, query string) (*domain.Event, *Result) {
	res, fail := d.resolveEvents(ctx, query)
	if fail != nil {
		return nil, fail
	}
	if res.Outcome == Ambiguous {
		r := failure(fmt.Sprintf(
			"I found %d events matching %q. Can you be more specific?", len(res.Matches), query))
		return nil, &r
	}
	return res.Match, nil
}

func (d *Dispatcher) resolveOneTransaction(ctx context.Context, query string) (*domain.Transaction, *Result) {
	candidates, err := d.store.Transactions.All(ctx)
	if err != nil {
		r := d.storeFailure("list transactions", err)
		return nil, &r
	}
	res := Resolve(candidates, query, func(t *domain.Transaction) []string {
		fields := []string{t.ID, t.ContactName}
		for _, line := range t.Lines {
			fields = append(fields, line.Title)
		}
		return fields
	})
	switch res.Outcome {
	case NotFound:
		r := failure(fmt.Sprintf("I couldn't find a sale matching %q.", query))
		return nil, &r
	case Ambiguous:
		r := failure(fmt.Sprintf(
			"I found %d sales matching %q. Can you be more specific?", len(res.Matches), query))
		return nil, &r
	}
	return res.Match, nil
}

// --- failure helpers ---

func failure(msg string) Result {
	return Result{Success: false, Message: msg}
}

// storeFailure converts an operation error into a failure envelope.
// Domain errors carry messages written for users and pass through;
// anything else is logged in full and replaced with a generic message so
// store internals never leak into chat.
func (d *Dispatcher) storeFailure(op string, err error) Result {
	var derr *domainerrors.Error
	if domainerrors.As(err, &derr) {
		switch derr.Code {
		case domainerrors.CodeValidation, domainerrors.CodeNotFound, domainerrors.CodeAmbiguous:
			return failure(derr.Message)
		}
	}

	if d.log != nil {
		d.log.Error("assistant command failed", "operation", op, "error", err)
	}
	return failure("Something went wrong on my end. Please try again.")
}
