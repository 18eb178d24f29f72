package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/kbtools/kb/pkg/frontmatter"
	"github.com/kbtools/kb/pkg/models"
)

// ExportVersion is the envelope format version written by Export.
const ExportVersion = "1.0"

// Envelope is the JSON export file format, compatible with the original web
// application's export files in both directions.
type Envelope struct {
	Folders    []*models.Folder   `json:"folders"`
	Documents  []*models.Document `json:"documents"`
	ExportDate time.Time          `json:"exportDate"`
	Version    string             `json:"version"`
}

// Export serializes the current state into an export envelope.
func (s *Store) Export() *Envelope {
	return &Envelope{
		Folders:    s.folders,
		Documents:  s.documents,
		ExportDate: time.Now(),
		Version:    ExportVersion,
	}
}

// ExportTo writes the export envelope as indented JSON to path.
func (s *Store) ExportTo(path string) error {
	data, err := json.MarshalIndent(s.Export(), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}
	return nil
}

// Import merges an export envelope into the store by concatenation. There is
// no deduplication and no id-collision handling; imported entities are
// appended as-is. Validation happens before any mutation, so a rejected
// import leaves the store unchanged.
func (s *Store) Import(data []byte) (folders, documents int, err error) {
	// Decode into a raw shape first so a file missing either array is
	// rejected outright instead of silently importing half the data.
	var raw struct {
		Folders   json.RawMessage `json:"folders"`
		Documents json.RawMessage `json:"documents"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return 0, 0, fmt.Errorf("invalid import file: %w", err)
	}
	if raw.Folders == nil || raw.Documents == nil {
		return 0, 0, fmt.Errorf("invalid import file: missing folders or documents")
	}

	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return 0, 0, fmt.Errorf("invalid import file: %w", err)
	}

	s.folders = append(s.folders, env.Folders...)
	s.documents = append(s.documents, env.Documents...)

	if err := s.Save(); err != nil {
		return len(env.Folders), len(env.Documents), err
	}
	return len(env.Folders), len(env.Documents), nil
}

// ImportFile reads and merges an export file.
func (s *Store) ImportFile(path string) (folders, documents int, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, 0, fmt.Errorf("read import file: %w", err)
	}
	return s.Import(data)
}

// ExportFiles writes each document as a markdown file with YAML frontmatter
// under dir, using the folder hierarchy as the directory layout. Documents
// with dangling folder references land at the root, same as rendering.
func (s *Store) ExportFiles(dir string) (int, error) {
	written := 0
	used := make(map[string]bool)
	for _, doc := range s.documents {
		rel := filepath.Join(s.folderPathSegments(doc.FolderID)...)
		target := filepath.Join(dir, rel)
		if err := os.MkdirAll(target, 0755); err != nil {
			return written, fmt.Errorf("create export dir: %w", err)
		}

		fm := &frontmatter.Frontmatter{
			ID:       doc.ID,
			Title:    doc.Title,
			Category: string(doc.Category),
			Created:  doc.CreatedAt.Format("2006-01-02 15:04:05"),
			Modified: doc.UpdatedAt.Format("2006-01-02 15:04:05"),
		}
		content := frontmatter.BuildContent(fm, doc.Content)

		// Distinct titles can slugify to the same filename; suffix the
		// later ones instead of overwriting.
		name := slugify(doc.Title)
		path := filepath.Join(target, name+".md")
		for n := 2; used[path]; n++ {
			path = filepath.Join(target, fmt.Sprintf("%s_%d.md", name, n))
		}
		used[path] = true

		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

// folderPathSegments resolves a folder id to its ancestor folder names, root
// first. A dangling parent reference terminates the walk.
func (s *Store) folderPathSegments(folderID string) []string {
	var segments []string
	seen := make(map[string]bool)
	for id := folderID; id != ""; {
		if seen[id] {
			// Imports are unvalidated, so a parent chain can contain a cycle.
			break
		}
		seen[id] = true

		folder := s.FolderByID(id)
		if folder == nil {
			break
		}
		segments = append([]string{slugify(folder.Name)}, segments...)
		id = folder.ParentID
	}
	return segments
}

// slugify lowercases and replaces non-alphanumerics with underscores, the
// same filename derivation the sync path uses.
func slugify(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "untitled"
	}
	return b.String()
}
