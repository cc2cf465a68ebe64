package assistant

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	"github.com/shopmateapp/shopmate-server/internal/errors"
	"github.com/shopmateapp/shopmate-server/internal/normalize"
)

// ParseIntent converts an interpretation into a typed intent, applying
// the defaulting rules for creation intents and rejecting lookup intents
// with a blank reference. Tags the dispatcher does not recognize come
// back as Unknown, which dispatches as a conversational no-op.
func ParseIntent(in *Interpretation) (Intent, error) {
	f := fields(in.Fields)

	switch in.Tag {
	case TagAddContact:
		return parseAddContact(f)

	case TagFindContact:
		query, err := f.query("who to look for", "query", "name")
		if err != nil {
			return nil, err
		}
		return FindContact{Query: query}, nil

	case TagUpdateContactNotes:
		query, err := f.query("whose notes to update", "query", "name")
		if err != nil {
			return nil, err
		}
		return UpdateContactNotes{Query: query, Notes: f.str("notes", "note")}, nil

	case TagDeleteContact:
		query, err := f.query("who to delete", "query", "name")
		if err != nil {
			return nil, err
		}
		return DeleteContact{Query: query}, nil

	case TagAddBook:
		return parseAddBook(f)

	case TagFindBook:
		query, err := f.query("which book to look for", "query", "title", "name")
		if err != nil {
			return nil, err
		}
		return FindBook{Query: query}, nil

	case TagCheckStock:
		query, err := f.query("which book to check", "query", "title", "name")
		if err != nil {
			return nil, err
		}
		return CheckStock{Query: query}, nil

	case TagRestockBook:
		query, err := f.query("which book to restock", "query", "title", "name")
		if err != nil {
			return nil, err
		}
		qty := f.integer("quantity", "count")
		if qty <= 0 {
			qty = 1
		}
		return RestockBook{Query: query, Quantity: qty}, nil

	case TagDeleteBook:
		query, err := f.query("which book to delete", "query", "title", "name")
		if err != nil {
			return nil, err
		}
		return DeleteBook{Query: query}, nil

	case TagRecordSale:
		return parseRecordSale(f)

	case TagVoidSale:
		query, err := f.query("which sale to void", "query", "transaction", "contact", "name")
		if err != nil {
			return nil, err
		}
		return VoidSale{Query: query}, nil

	case TagCountBooks:
		return CountBooks{}, nil

	case TagCreateEvent:
		name := f.str("name", "title")
		if name == "" {
			return nil, errors.Validation("I need a name for the event.")
		}
		return CreateEvent{
			Name:        name,
			StartsAt:    f.when("starts_at", "date", "when"),
			Location:    f.str("location", "where"),
			Description: f.str("description"),
		}, nil

	case TagFindEvent:
		query, err := f.query("which event to look for", "query", "name", "title")
		if err != nil {
			return nil, err
		}
		return FindEvent{Query: query}, nil

	case TagRSVP:
		event, err := f.query("which event", "event", "event_query")
		if err != nil {
			return nil, err
		}
		contact, err := f.query("who is attending", "contact", "contact_query", "name")
		if err != nil {
			return nil, err
		}
		attending := true
		if v, ok := f.boolean("attending"); ok {
			attending = v
		}
		return RSVP{EventQuery: event, ContactQuery: contact, Attending: attending}, nil

	default:
		return Unknown{ResponseText: in.ResponseText}, nil
	}
}

func parseAddContact(f fields) (Intent, error) {
	name := normalize.CollapseSpaces(f.str("name", "full_name"))
	first := f.str("first_name")
	last := f.str("last_name")
	if first == "" && last == "" {
		first, last = SplitName(name)
	} else if last == "" {
		last = fallbackLastName
	} else if first == "" {
		first = fallbackFirstName
	}

	email := normalize.Email(f.str("email"))
	if email == "" {
		source := name
		if source == "" {
			source = first + " " + last
		}
		email = PlaceholderEmail(source)
	}

	return AddContact{
		Honorific:    f.str("honorific"),
		FirstName:    first,
		LastName:     last,
		Suffix:       f.str("suffix"),
		Categories:   DefaultCategories(f.strs("categories", "category")),
		Email:        email,
		Phone:        f.str("phone"),
		AddressLines: f.strs("address_lines", "address"),
		Notes:        f.str("notes"),
	}, nil
}

func parseAddBook(f fields) (Intent, error) {
	title := normalize.CollapseSpaces(f.str("title", "name"))
	if title == "" {
		return nil, errors.Validation("I need a title to add a book.")
	}

	price, err := f.price("price")
	if err != nil {
		return nil, err
	}
	if err := domain.ValidatePrice(price); err != nil {
		return nil, err
	}

	stock := f.integer("stock", "quantity", "copies")
	if stock < 0 {
		return nil, errors.Validation("stock can't be negative")
	}

	return AddBook{
		Title:     title,
		Author:    f.str("author"),
		ISBN:      f.str("isbn"),
		Publisher: f.str("publisher"),
		Genre:     f.str("genre"),
		Year:      f.integer("year"),
		Price:     price,
		Stock:     stock,
	}, nil
}

func parseRecordSale(f fields) (Intent, error) {
	contact, err := f.query("who bought it", "contact", "contact_query", "customer", "name")
	if err != nil {
		return nil, err
	}

	var lines []SaleLine
	for _, raw := range f.list("lines", "items", "books") {
		m, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		lf := fields(m)
		book := lf.str("book", "title", "query")
		if book == "" {
			continue
		}
		qty := lf.integer("quantity", "count")
		if qty <= 0 {
			qty = 1
		}
		lines = append(lines, SaleLine{BookQuery: book, Quantity: qty})
	}

	// A sale for a single title often arrives as flat book/quantity
	// fields rather than a line list.
	if len(lines) == 0 {
		if book := f.str("book", "title"); book != "" {
			qty := f.integer("quantity", "count")
			if qty <= 0 {
				qty = 1
			}
			lines = append(lines, SaleLine{BookQuery: book, Quantity: qty})
		}
	}
	if len(lines) == 0 {
		return nil, errors.Validation("I need at least one book to record a sale.")
	}

	return RecordSale{ContactQuery: contact, Lines: lines, Date: f.when("date", "transaction_date")}, nil
}

// fields wraps the untrusted JSON-decoded field map with loose accessors.
// Values arrive as whatever the decoder produced, so every accessor
// copes with strings and float64 numbers alike.
type fields map[string]any

// str returns the first non-blank string value among keys.
func (f fields) str(keys ...string) string {
	for _, key := range keys {
		if v, ok := f[key]; ok {
			if s, ok := v.(string); ok {
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			}
		}
	}
	return ""
}

// query is str with a validation error when every key is blank.
func (f fields) query(what string, keys ...string) (string, error) {
	if q := f.str(keys...); q != "" {
		return q, nil
	}
	return "", errors.Validationf("I need to know %s.", what)
}

// strs accepts either a list of strings or a single string value.
func (f fields) strs(keys ...string) []string {
	for _, key := range keys {
		switch v := f[key].(type) {
		case []any:
			var out []string
			for _, item := range v {
				if s, ok := item.(string); ok && strings.TrimSpace(s) != "" {
					out = append(out, strings.TrimSpace(s))
				}
			}
			if len(out) > 0 {
				return out
			}
		case []string:
			return v
		case string:
			if s := strings.TrimSpace(v); s != "" {
				return []string{s}
			}
		}
	}
	return nil
}

func (f fields) list(keys ...string) []any {
	for _, key := range keys {
		if v, ok := f[key].([]any); ok {
			return v
		}
	}
	return nil
}

func (f fields) integer(keys ...string) int {
	for _, key := range keys {
		switch v := f[key].(type) {
		case float64:
			return int(v)
		case int:
			return v
		case string:
			if n, err := strconv.Atoi(strings.TrimSpace(v)); err == nil {
				return n
			}
		}
	}
	return 0
}

func (f fields) boolean(keys ...string) (bool, bool) {
	for _, key := range keys {
		switch v := f[key].(type) {
		case bool:
			return v, true
		case string:
			if b, err := strconv.ParseBool(strings.TrimSpace(v)); err == nil {
				return b, true
			}
		}
	}
	return false, false
}

// price parses a decimal from a number or string, defaulting to zero when
// absent. An unparseable value is a validation error, not silently zero.
func (f fields) price(keys ...string) (decimal.Decimal, error) {
	for _, key := range keys {
		switch v := f[key].(type) {
		case float64:
			return decimal.NewFromFloat(v).Round(2), nil
		case string:
			s := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(v), "$"))
			if s == "" {
				continue
			}
			d, err := decimal.NewFromString(s)
			if err != nil {
				return decimal.Zero, errors.Validationf("I couldn't read %q as a price.", v)
			}
			return d, nil
		}
	}
	return decimal.Zero, nil
}

func (f fields) when(keys ...string) time.Time {
	for _, key := range keys {
		s, ok := f[key].(string)
		if !ok {
			continue
		}
		for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
			if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
				return t
			}
		}
	}
	return time.Time{}
}
