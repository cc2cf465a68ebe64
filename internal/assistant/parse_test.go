package assistant

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	domainerrors "github.com/shopmateapp/shopmate-server/internal/errors"
)

func mustParse(t *testing.T, tag Tag, f map[string]any) Intent {
	t.Helper()

	intent, err := ParseIntent(&Interpretation{Tag: tag, Fields: f})
	require.NoError(t, err)
	return intent
}

func TestParseIntent_AddContact_Defaults(t *testing.T) {
	intent := mustParse(t, TagAddContact, map[string]any{"name": "Marcus Aurelius"})

	add, ok := intent.(AddContact)
	require.True(t, ok)
	assert.Equal(t, "Marcus", add.FirstName)
	assert.Equal(t, "Aurelius", add.LastName)
	assert.Equal(t, "marcus.aurelius@example.com", add.Email)
	assert.Equal(t, []string{domain.CategoryOther}, []string(add.Categories))
}

func TestParseIntent_AddContact_ExplicitFieldsWin(t *testing.T) {
	intent := mustParse(t, TagAddContact, map[string]any{
		"name":       "ignored",
		"first_name": "Jane",
		"last_name":  "Doe",
		"email":      "Jane@Example.COM",
		"category":   "Customer",
	})

	add := intent.(AddContact)
	assert.Equal(t, "Jane", add.FirstName)
	assert.Equal(t, "Doe", add.LastName)
	assert.Equal(t, "jane@example.com", add.Email)
	assert.Equal(t, []string{"Customer"}, []string(add.Categories))
}

func TestParseIntent_AddContact_NoName(t *testing.T) {
	intent := mustParse(t, TagAddContact, map[string]any{})

	add := intent.(AddContact)
	assert.Equal(t, "New", add.FirstName)
	assert.Equal(t, "Contact", add.LastName)
	assert.Equal(t, "new.contact@example.com", add.Email)
}

func TestParseIntent_FindContact_BlankQuery(t *testing.T) {
	_, err := ParseIntent(&Interpretation{Tag: TagFindContact, Fields: map[string]any{"query": "  "}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestParseIntent_AddBook_PriceDefaultsToZero(t *testing.T) {
	intent := mustParse(t, TagAddBook, map[string]any{"title": "Dune"})

	book := intent.(AddBook)
	assert.True(t, book.Price.IsZero())
	assert.Equal(t, 0, book.Stock)
}

func TestParseIntent_AddBook_PriceFromString(t *testing.T) {
	intent := mustParse(t, TagAddBook, map[string]any{"title": "Dune", "price": "$9.99", "stock": float64(3)})

	book := intent.(AddBook)
	assert.True(t, book.Price.Equal(decimal.RequireFromString("9.99")))
	assert.Equal(t, 3, book.Stock)
}

func TestParseIntent_AddBook_BadPrice(t *testing.T) {
	_, err := ParseIntent(&Interpretation{Tag: TagAddBook, Fields: map[string]any{
		"title": "Dune", "price": "cheap",
	}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestParseIntent_AddBook_NegativePrice(t *testing.T) {
	_, err := ParseIntent(&Interpretation{Tag: TagAddBook, Fields: map[string]any{
		"title": "Dune", "price": float64(-1),
	}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestParseIntent_RecordSale_LineList(t *testing.T) {
	intent := mustParse(t, TagRecordSale, map[string]any{
		"contact": "Jane",
		"lines": []any{
			map[string]any{"book": "Dune", "quantity": float64(2)},
			map[string]any{"book": "Hyperion"},
		},
	})

	sale := intent.(RecordSale)
	assert.Equal(t, "Jane", sale.ContactQuery)
	require.Len(t, sale.Lines, 2)
	assert.Equal(t, SaleLine{BookQuery: "Dune", Quantity: 2}, sale.Lines[0])
	assert.Equal(t, SaleLine{BookQuery: "Hyperion", Quantity: 1}, sale.Lines[1])
}

func TestParseIntent_RecordSale_FlatFields(t *testing.T) {
	intent := mustParse(t, TagRecordSale, map[string]any{
		"contact": "Jane", "book": "Dune", "quantity": "3",
	})

	sale := intent.(RecordSale)
	require.Len(t, sale.Lines, 1)
	assert.Equal(t, SaleLine{BookQuery: "Dune", Quantity: 3}, sale.Lines[0])
}

func TestParseIntent_RecordSale_NoBooks(t *testing.T) {
	_, err := ParseIntent(&Interpretation{Tag: TagRecordSale, Fields: map[string]any{"contact": "Jane"}})
	assert.ErrorIs(t, err, domainerrors.ErrValidation)
}

func TestParseIntent_RestockBook_QuantityDefaultsToOne(t *testing.T) {
	intent := mustParse(t, TagRestockBook, map[string]any{"query": "Dune"})
	assert.Equal(t, 1, intent.(RestockBook).Quantity)
}

func TestParseIntent_RSVP_AttendingDefaultsTrue(t *testing.T) {
	intent := mustParse(t, TagRSVP, map[string]any{"event": "Poetry Night", "contact": "Jane"})

	rsvp := intent.(RSVP)
	assert.True(t, rsvp.Attending)

	intent = mustParse(t, TagRSVP, map[string]any{
		"event": "Poetry Night", "contact": "Jane", "attending": false,
	})
	assert.False(t, intent.(RSVP).Attending)
}

func TestParseIntent_UnrecognizedTag(t *testing.T) {
	intent := mustParse(t, Tag("tell_joke"), nil)

	unknown, ok := intent.(Unknown)
	require.True(t, ok)
	assert.Empty(t, unknown.ResponseText)
}

func TestParseIntent_CreateEvent_ParsesDate(t *testing.T) {
	intent := mustParse(t, TagCreateEvent, map[string]any{
		"name": "Poetry Night", "date": "2026-09-12",
	})

	event := intent.(CreateEvent)
	assert.Equal(t, 2026, event.StartsAt.Year())
	assert.Equal(t, "Poetry Night", event.Name)
}
