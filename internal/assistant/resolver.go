package assistant

import (
	"strings"

	"github.com/shopmateapp/shopmate-server/internal/normalize"
)

// Outcome classifies a resolution attempt.
type Outcome int

const (
	NotFound Outcome = iota
	Found
	Ambiguous
)

// Resolution is the result of matching a free-text reference against a
// candidate collection. Match is set only when Outcome is Found; Matches
// carries every hit and has at least two entries when Ambiguous.
type Resolution[T any] struct {
	Outcome Outcome
	Query   string
	Match   *T
	Matches []*T
}

// Resolve matches query against candidates by case-insensitive substring
// containment. A candidate matches when the folded query appears inside
// the folded text of any one field. Exactly one hit resolves; several
// hits are Ambiguous and the caller must ask for a narrower reference,
// never act on the first match.
func Resolve[T any](candidates []*T, query string, fieldsOf func(*T) []string) Resolution[T] {
	needle := normalize.Fold(normalize.CollapseSpaces(query))

	res := Resolution[T]{Query: query}
	if needle == "" {
		return res
	}

	for _, candidate := range candidates {
		for _, field := range fieldsOf(candidate) {
			if field == "" {
				continue
			}
			if strings.Contains(normalize.Fold(field), needle) {
				res.Matches = append(res.Matches, candidate)
				break
			}
		}
	}

	switch len(res.Matches) {
	case 0:
		res.Outcome = NotFound
	case 1:
		res.Outcome = Found
		res.Match = res.Matches[0]
	default:
		res.Outcome = Ambiguous
	}
	return res
}
