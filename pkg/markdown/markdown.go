// Package markdown wraps the rendering and sanitization collaborators behind
// the two narrow calls the rest of the tool uses.
package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithRendererOptions(
		// Single newlines become <br>, matching the editor the documents
		// were written in.
		html.WithHardWraps(),
	),
)

var policy = bluemonday.UGCPolicy()

// Render converts markdown source to HTML. The output is not sanitized;
// callers displaying user-authored content should use RenderSafe.
func Render(src string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return buf.String(), nil
}

// Sanitize strips unsafe HTML.
func Sanitize(htmlSrc string) string {
	return policy.Sanitize(htmlSrc)
}

// RenderSafe renders markdown and sanitizes the result.
func RenderSafe(src string) (string, error) {
	out, err := Render(src)
	if err != nil {
		return "", err
	}
	return Sanitize(out), nil
}

var runBlockPattern = regexp.MustCompile("(?s)```python:run\n(.*?)```")

// ExtractRunBlocks returns the bodies of all ```python:run fenced blocks in
// source order. Plain ```python blocks are display-only and not extracted.
func ExtractRunBlocks(src string) []string {
	matches := runBlockPattern.FindAllStringSubmatch(src, -1)
	if len(matches) == 0 {
		return nil
	}
	blocks := make([]string, 0, len(matches))
	for _, m := range matches {
		blocks = append(blocks, m[1])
	}
	return blocks
}
