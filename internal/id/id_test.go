package id

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	got, err := Generate("contact")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, "contact-"))
	// Prefix, dash, 21-character NanoID.
	assert.Len(t, got, len("contact")+1+21)
}

func TestGenerate_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for range 100 {
		got, err := Generate("txn")
		require.NoError(t, err)
		assert.False(t, seen[got], "duplicate ID generated: %s", got)
		seen[got] = true
	}
}

func TestMustGenerate(t *testing.T) {
	got := MustGenerate("book")
	assert.True(t, strings.HasPrefix(got, "book-"))
}
