package assistant

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shopmateapp/shopmate-server/internal/domain"
)

func TestSplitName(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantFirst string
		wantLast  string
	}{
		{"two tokens", "Jane Doe", "Jane", "Doe"},
		{"three tokens", "Mary Anne Smith", "Mary", "Anne Smith"},
		{"one token", "Cher", "Cher", "Contact"},
		{"empty", "", "New", "Contact"},
		{"whitespace only", "   ", "New", "Contact"},
		{"extra spaces", "  Jane   Doe  ", "Jane", "Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := SplitName(tt.input)
			assert.Equal(t, tt.wantFirst, first)
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestPlaceholderEmail(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mary Anne O'Neil", "mary.anne.oneil@example.com"},
		{"Jane Doe", "jane.doe@example.com"},
		{"José García", "jose.garcia@example.com"},
		{"", "contact@example.com"},
		{"!!!", "contact@example.com"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, PlaceholderEmail(tt.input), "input %q", tt.input)
	}
}

func TestDefaultCategories(t *testing.T) {
	assert.Equal(t, domain.CategorySet{domain.CategoryOther}, DefaultCategories(nil))
	assert.Equal(t, domain.CategorySet{domain.CategoryOther}, DefaultCategories([]string{"", "  "}))
	assert.Equal(t, domain.CategorySet{"Customer"}, DefaultCategories([]string{"Customer", "Customer"}))
	assert.Equal(t, domain.CategorySet{"Customer", "Vendor"}, DefaultCategories([]string{"Customer", "Vendor"}))
}
