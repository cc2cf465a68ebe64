package assistant

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func understand(t *testing.T, command string) *Interpretation {
	t.Helper()

	in, err := NewKeywordUnderstander().Understand(context.Background(), command, true)
	require.NoError(t, err)
	return in
}

func TestKeywordUnderstander_Contacts(t *testing.T) {
	in := understand(t, "add contact Jane Doe, jane@shop.example")
	assert.Equal(t, TagAddContact, in.Tag)
	assert.Equal(t, "Jane Doe", in.Fields["name"])
	assert.Equal(t, "jane@shop.example", in.Fields["email"])

	in = understand(t, "find contact Smith")
	assert.Equal(t, TagFindContact, in.Tag)
	assert.Equal(t, "Smith", in.Fields["query"])

	in = understand(t, "delete contact Jane Doe")
	assert.Equal(t, TagDeleteContact, in.Tag)
}

func TestKeywordUnderstander_Books(t *testing.T) {
	in := understand(t, "add book Dune by Frank Herbert for $9.99")
	assert.Equal(t, TagAddBook, in.Tag)
	assert.Equal(t, "Dune", in.Fields["title"])
	assert.Equal(t, "Frank Herbert", in.Fields["author"])
	assert.Equal(t, "9.99", in.Fields["price"])

	in = understand(t, "how many copies of Dune in stock?")
	assert.Equal(t, TagCheckStock, in.Tag)
	assert.Equal(t, "dune", in.Fields["query"])

	in = understand(t, "restock 5 copies of Dune")
	assert.Equal(t, TagRestockBook, in.Tag)
	assert.Equal(t, 5, in.Fields["quantity"])
}

func TestKeywordUnderstander_Sales(t *testing.T) {
	in := understand(t, "sell 2 copies of Dune to Jane")
	assert.Equal(t, TagRecordSale, in.Tag)
	assert.Equal(t, "dune", in.Fields["book"])
	assert.Equal(t, "jane", in.Fields["contact"])
	assert.Equal(t, 2, in.Fields["quantity"])

	in = understand(t, "sold Dune to Jane")
	assert.Equal(t, TagRecordSale, in.Tag)
	assert.Equal(t, 1, in.Fields["quantity"])
}

func TestKeywordUnderstander_Events(t *testing.T) {
	in := understand(t, "create event Poetry Night at the back room")
	assert.Equal(t, TagCreateEvent, in.Tag)
	assert.Equal(t, "Poetry Night", in.Fields["name"])
	assert.Equal(t, "the back room", in.Fields["location"])

	in = understand(t, "Jane Doe is attending Poetry Night")
	assert.Equal(t, TagRSVP, in.Tag)
	assert.Equal(t, "Jane Doe", in.Fields["contact"])
	assert.Equal(t, "Poetry Night", in.Fields["event"])
	assert.Equal(t, true, in.Fields["attending"])

	in = understand(t, "Jane Doe is not attending Poetry Night")
	assert.Equal(t, TagRSVP, in.Tag)
	assert.Equal(t, false, in.Fields["attending"])
}

func TestKeywordUnderstander_CountAndUnknown(t *testing.T) {
	in := understand(t, "how many books do we have?")
	assert.Equal(t, TagCountBooks, in.Tag)

	in = understand(t, "what's the meaning of life?")
	assert.Equal(t, TagUnknown, in.Tag)
	assert.NotEmpty(t, in.ResponseText)
}

func TestKeywordUnderstander_RoundTripsThroughParser(t *testing.T) {
	commands := []string{
		"add contact Jane Doe",
		"find contact Smith",
		"add book Dune by Frank Herbert for $9.99",
		"sell 2 copies of Dune to Jane",
		"create event Poetry Night at the shop",
		"how many books do we have?",
		"complete nonsense",
	}

	for _, command := range commands {
		in := understand(t, command)
		_, err := ParseIntent(in)
		assert.NoError(t, err, "command %q", command)
	}
}
