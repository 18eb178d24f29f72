package frontmatter

import (
	"fmt"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

var frontmatterPattern = regexp.MustCompile(`(?s)^---\n(.*?)\n---\n?(.*)`)

// Frontmatter is the structured metadata block at the top of an exported
// markdown document.
type Frontmatter struct {
	ID       string `yaml:"id"`
	Title    string `yaml:"title"`
	Category string `yaml:"category,omitempty"`
	Created  string `yaml:"created"`
	Modified string `yaml:"modified"`
}

// Parse extracts frontmatter from content and returns the parsed data and
// body. Content without a frontmatter block returns (nil, content, nil).
func Parse(content string) (*Frontmatter, string, error) {
	matches := frontmatterPattern.FindStringSubmatch(content)
	if len(matches) != 3 {
		return nil, content, nil
	}

	var fm Frontmatter
	if err := yaml.Unmarshal([]byte(matches[1]), &fm); err != nil {
		return nil, content, fmt.Errorf("failed to parse frontmatter: %w", err)
	}
	return &fm, matches[2], nil
}

// Build creates the YAML frontmatter string in a stable field order.
func Build(fm *Frontmatter) string {
	var sb strings.Builder
	sb.WriteString("---\n")
	sb.WriteString(fmt.Sprintf("id: %s\n", fm.ID))
	sb.WriteString(fmt.Sprintf("title: %s\n", quoteIfNeeded(fm.Title)))
	if fm.Category != "" {
		sb.WriteString(fmt.Sprintf("category: %s\n", fm.Category))
	}
	sb.WriteString(fmt.Sprintf("created: %s\n", fm.Created))
	sb.WriteString(fmt.Sprintf("modified: %s\n", fm.Modified))
	sb.WriteString("---")
	return sb.String()
}

// BuildContent combines frontmatter and body into a complete document.
func BuildContent(fm *Frontmatter, body string) string {
	return Build(fm) + "\n\n" + body
}

// quoteIfNeeded wraps titles containing YAML-significant characters.
func quoteIfNeeded(s string) string {
	if strings.ContainsAny(s, ":#[]{}\"'") {
		return fmt.Sprintf("%q", s)
	}
	return s
}
