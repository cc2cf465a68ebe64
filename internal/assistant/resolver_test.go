package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopmateapp/shopmate-server/internal/domain"
)

func contactNamed(first, last, email string) *domain.Contact {
	return &domain.Contact{FirstName: first, LastName: last, Email: email}
}

func contactFields(c *domain.Contact) []string {
	return []string{c.DisplayName(), c.Email}
}

func TestResolve_ExactlyOneMatch(t *testing.T) {
	candidates := []*domain.Contact{
		contactNamed("John", "Smith", "john@example.com"),
		contactNamed("Alice", "Jones", "alice@example.com"),
	}

	res := Resolve(candidates, "smith", contactFields)
	require.Equal(t, Found, res.Outcome)
	assert.Equal(t, "John", res.Match.FirstName)
}

func TestResolve_Ambiguous(t *testing.T) {
	candidates := []*domain.Contact{
		contactNamed("John", "Smith", "john@example.com"),
		contactNamed("Jane", "Smith", "jane@example.com"),
	}

	res := Resolve(candidates, "Smith", contactFields)
	require.Equal(t, Ambiguous, res.Outcome)
	assert.Nil(t, res.Match)
	assert.Len(t, res.Matches, 2)
}

func TestResolve_NotFound(t *testing.T) {
	candidates := []*domain.Contact{
		contactNamed("John", "Smith", "john@example.com"),
	}

	res := Resolve(candidates, "zzz-no-such-name", contactFields)
	assert.Equal(t, NotFound, res.Outcome)
	assert.Equal(t, "zzz-no-such-name", res.Query)
	assert.Empty(t, res.Matches)
}

func TestResolve_CaseAndAccentInsensitive(t *testing.T) {
	candidates := []*domain.Contact{
		contactNamed("José", "García", "jose@example.com"),
	}

	res := Resolve(candidates, "garcia", contactFields)
	assert.Equal(t, Found, res.Outcome)

	res = Resolve(candidates, "JOSÉ", contactFields)
	assert.Equal(t, Found, res.Outcome)
}

func TestResolve_MatchesAnyField(t *testing.T) {
	candidates := []*domain.Contact{
		contactNamed("John", "Smith", "jsmith@acme.example"),
	}

	res := Resolve(candidates, "acme", contactFields)
	assert.Equal(t, Found, res.Outcome)
}

func TestResolve_BlankQuery(t *testing.T) {
	candidates := []*domain.Contact{
		contactNamed("John", "Smith", "john@example.com"),
	}

	res := Resolve(candidates, "   ", contactFields)
	assert.Equal(t, NotFound, res.Outcome)
}
