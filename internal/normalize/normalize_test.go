package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"John Smith", "john smith"},
		{"Renée", "renee"},
		{"BJÖRK", "bjork"},
		{"already lower", "already lower"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Fold(tt.input), "input %q", tt.input)
	}
}

func TestEmail(t *testing.T) {
	assert.Equal(t, "jane@example.com", Email("  Jane@Example.COM "))
}

func TestEmailLocal(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Mary Anne O'Neil", "mary.anne.oneil"},
		{"John Smith", "john.smith"},
		{"  padded  name  ", "padded.name"},
		{"weird!!chars##", "weirdchars"},
		{"___", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, EmailLocal(tt.input), "input %q", tt.input)
	}
}

func TestCollapseSpaces(t *testing.T) {
	assert.Equal(t, "John Q Smith", CollapseSpaces("  John   Q  Smith "))
	assert.Equal(t, "", CollapseSpaces("   "))
}
