package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	out, err := Render("# Hello\n\nSome **bold** text.")
	require.NoError(t, err)
	assert.Contains(t, out, "<h1>Hello</h1>")
	assert.Contains(t, out, "<strong>bold</strong>")
}

func TestRenderGFMTable(t *testing.T) {
	out, err := Render("| a | b |\n|---|---|\n| 1 | 2 |")
	require.NoError(t, err)
	assert.Contains(t, out, "<table>")
}

func TestRenderSafeStripsScripts(t *testing.T) {
	out, err := RenderSafe("hello <script>alert(1)</script> world")
	require.NoError(t, err)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "hello")
}

func TestSanitizeKeepsBasicMarkup(t *testing.T) {
	out := Sanitize(`<p>ok</p><img src="x" onerror="alert(1)">`)
	assert.Contains(t, out, "<p>ok</p>")
	assert.NotContains(t, out, "onerror")
}

func TestExtractRunBlocks(t *testing.T) {
	src := "Intro\n\n" +
		"```python:run\nprint('one')\n```\n\n" +
		"```python\nprint('display only')\n```\n\n" +
		"```python:run\nprint('two')\n```\n"

	blocks := ExtractRunBlocks(src)
	require.Len(t, blocks, 2)
	assert.Equal(t, "print('one')\n", blocks[0])
	assert.Equal(t, "print('two')\n", blocks[1])
}

func TestExtractRunBlocksNone(t *testing.T) {
	assert.Nil(t, ExtractRunBlocks("no code here"))
	assert.Nil(t, ExtractRunBlocks("```python\nprint('nope')\n```"))
}
