package assistant

import (
	"strings"

	"github.com/shopmateapp/shopmate-server/internal/domain"
	"github.com/shopmateapp/shopmate-server/internal/normalize"
)

// Fallback values used when a command names a contact without enough
// detail to fill required fields. These exact strings are load-bearing:
// seeded data and user expectations depend on them, so they must not
// drift between releases.
const (
	fallbackFirstName  = "New"
	fallbackLastName   = "Contact"
	fallbackEmailLocal = "contact"
	placeholderDomain  = "example.com"
)

// SplitName applies the documented name-splitting rule: first token
// becomes the first name, the remaining tokens joined by spaces become
// the last name. One token yields only a first name with the fallback
// last name; no tokens yield both fallbacks. The rule is deliberately
// naive; it is a default for terse commands, not a name parser.
func SplitName(full string) (first, last string) {
	tokens := strings.Fields(full)
	switch len(tokens) {
	case 0:
		return fallbackFirstName, fallbackLastName
	case 1:
		return tokens[0], fallbackLastName
	default:
		return tokens[0], strings.Join(tokens[1:], " ")
	}
}

// PlaceholderEmail synthesizes a syntactically valid email from a free
// text name: lower-cased, diacritics folded, unsafe characters stripped,
// spaces becoming dots. "Mary Anne O'Neil" yields
// "mary.anne.oneil@example.com".
func PlaceholderEmail(name string) string {
	local := normalize.EmailLocal(name)
	if local == "" {
		local = fallbackEmailLocal
	}
	return local + "@" + placeholderDomain
}

// DefaultCategories returns the given categories deduplicated, or the
// designated "Other" tag when none were supplied. A contact always
// carries at least one category.
func DefaultCategories(categories []string) domain.CategorySet {
	var set domain.CategorySet
	for _, c := range categories {
		c = normalize.CollapseSpaces(c)
		if c != "" {
			set = set.Add(c)
		}
	}
	if len(set) == 0 {
		set = domain.CategorySet{domain.CategoryOther}
	}
	return set
}
