package assistant

import (
	"context"
	"regexp"
	"strconv"
	"strings"
)

// KeywordUnderstander is the offline fallback behind the Understander
// interface: a fixed set of phrase patterns instead of a language model.
// It keeps the assistant usable in development and seeding when no NLU
// service is configured. Patterns are matched in order; the first hit
// wins.
type KeywordUnderstander struct{}

func NewKeywordUnderstander() *KeywordUnderstander {
	return &KeywordUnderstander{}
}

var (
	sellPattern    = regexp.MustCompile(`^(?:sell|sold)\s+(?:(\d+)\s+)?(?:cop(?:y|ies)\s+of\s+)?(.+?)\s+to\s+(.+)$`)
	restockPattern = regexp.MustCompile(`^(?:restock|add)\s+(\d+)\s+(?:cop(?:y|ies)\s+of\s+)?(.+)$`)
	notesPattern   = regexp.MustCompile(`^(?:update\s+)?notes?\s+for\s+(.+?)\s*[:,]\s*(.+)$`)
	rsvpPattern    = regexp.MustCompile(`^(.+?)\s+is\s+(not\s+)?(?:attending|coming\s+to|going\s+to)\s+(.+)$`)
	stockPattern   = regexp.MustCompile(`^how\s+many\s+(?:copies\s+of\s+)?(.+?)\s+(?:do\s+we\s+have\s+)?(?:are\s+)?in\s+stock\??$`)
)

func (u *KeywordUnderstander) Understand(_ context.Context, command string, _ bool) (*Interpretation, error) {
	text := strings.TrimSpace(command)
	lower := strings.ToLower(text)

	if lower == "how many books do we have?" || lower == "how many books" ||
		lower == "how many books do we have" || lower == "count books" {
		return interp(TagCountBooks, nil), nil
	}

	if m := stockPattern.FindStringSubmatch(lower); m != nil {
		return interp(TagCheckStock, fields{"query": m[1]}), nil
	}

	for prefix, tag := range map[string]Tag{
		"add contact ":    TagAddContact,
		"new contact ":    TagAddContact,
		"find contact ":   TagFindContact,
		"look up ":        TagFindContact,
		"who is ":         TagFindContact,
		"delete contact ": TagDeleteContact,
		"remove contact ": TagDeleteContact,
		"add book ":       TagAddBook,
		"new book ":       TagAddBook,
		"find book ":      TagFindBook,
		"check stock of ": TagCheckStock,
		"delete book ":    TagDeleteBook,
		"remove book ":    TagDeleteBook,
		"void sale ":      TagVoidSale,
		"void the sale ":  TagVoidSale,
		"refund ":         TagVoidSale,
		"create event ":   TagCreateEvent,
		"new event ":      TagCreateEvent,
		"find event ":     TagFindEvent,
	} {
		if strings.HasPrefix(lower, prefix) {
			rest := strings.TrimSpace(text[len(prefix):])
			return keywordIntent(tag, rest), nil
		}
	}

	if m := notesPattern.FindStringSubmatch(text); m != nil {
		return interp(TagUpdateContactNotes, fields{"query": m[1], "notes": m[2]}), nil
	}

	if m := sellPattern.FindStringSubmatch(lower); m != nil {
		qty := 1
		if m[1] != "" {
			qty, _ = strconv.Atoi(m[1])
		}
		return interp(TagRecordSale, fields{
			"contact":  m[3],
			"book":     m[2],
			"quantity": qty,
		}), nil
	}

	if m := restockPattern.FindStringSubmatch(lower); m != nil {
		qty, _ := strconv.Atoi(m[1])
		return interp(TagRestockBook, fields{"query": m[2], "quantity": qty}), nil
	}

	if m := rsvpPattern.FindStringSubmatch(text); m != nil {
		return interp(TagRSVP, fields{
			"contact":   m[1],
			"event":     m[3],
			"attending": m[2] == "",
		}), nil
	}

	return &Interpretation{
		Tag:          TagUnknown,
		ResponseText: "I didn't catch that. Try something like \"find contact Jane\" or \"how many books do we have?\"",
	}, nil
}

// keywordIntent maps the text after a recognized prefix onto the field
// the parser expects for that tag.
func keywordIntent(tag Tag, rest string) *Interpretation {
	switch tag {
	case TagAddContact:
		f := fields{"name": rest}
		// "add contact Jane Doe, jane@example.com"
		if name, email, ok := strings.Cut(rest, ","); ok && strings.Contains(email, "@") {
			f["name"] = strings.TrimSpace(name)
			f["email"] = strings.TrimSpace(email)
		}
		return interp(tag, f)
	case TagAddBook:
		f := fields{}
		title := rest
		// "add book Dune by Frank Herbert for $9.99"
		if t, price, ok := cutLast(title, " for $"); ok {
			f["price"] = price
			title = t
		}
		if t, author, ok := cutLast(title, " by "); ok {
			f["author"] = author
			title = t
		}
		f["title"] = strings.TrimSpace(title)
		return interp(tag, f)
	case TagCreateEvent:
		f := fields{"name": rest}
		if name, loc, ok := cutLast(rest, " at "); ok {
			f["name"] = strings.TrimSpace(name)
			f["location"] = strings.TrimSpace(loc)
		}
		return interp(tag, f)
	default:
		return interp(tag, fields{"query": rest})
	}
}

func cutLast(s, sep string) (before, after string, found bool) {
	i := strings.LastIndex(strings.ToLower(s), strings.ToLower(sep))
	if i < 0 {
		return s, "", false
	}
	return s[:i], s[i+len(sep):], true
}

func interp(tag Tag, f fields) *Interpretation {
	return &Interpretation{Tag: tag, Fields: f}
}
