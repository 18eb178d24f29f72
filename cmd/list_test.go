package cmd

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "exactly-ten", truncateString("exactly-ten", 11))
	assert.Equal(t, "abcdefg...", truncateString("abcdefghijk", 10))
}

func TestTruncateStringMultiByte(t *testing.T) {
	got := truncateString("日本語のタイトルがとても長い場合でも壊れない", 10)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "日本語のタイト...", got)

	// Untruncated multi-byte strings pass through whole.
	assert.Equal(t, "émoji 🚀", truncateString("émoji 🚀", 10))
}
