// Package hierarchy answers structural queries over the flat entity lists.
// Relationships are derived by scanning on every call rather than maintained
// incrementally; at the expected dataset sizes (hundreds of entries) a full
// scan per query is simpler than keeping indices consistent.
package hierarchy

import (
	"github.com/kbtools/kb/pkg/models"
)

// Source is the read side of the entity store the index queries against.
type Source interface {
	Folders() []*models.Folder
	Documents() []*models.Document
	FolderByID(id string) *models.Folder
}

// Index is a derived, read-only view over a Source. It holds no state of its
// own; every query reflects the source's current lists.
type Index struct {
	src Source
}

// New returns an index over the given source.
func New(src Source) *Index {
	return &Index{src: src}
}

// RootFolders returns folders with no parent reference, in input order.
func (ix *Index) RootFolders() []*models.Folder {
	var roots []*models.Folder
	for _, f := range ix.src.Folders() {
		if f.ParentID == "" {
			roots = append(roots, f)
		}
	}
	return roots
}

// RootDocuments returns documents placed at the root, in input order.
func (ix *Index) RootDocuments() []*models.Document {
	var roots []*models.Document
	for _, d := range ix.src.Documents() {
		if d.FolderID == "" {
			roots = append(roots, d)
		}
	}
	return roots
}

// ChildFolders returns folders whose parent is folderID, in input order.
func (ix *Index) ChildFolders(folderID string) []*models.Folder {
	var children []*models.Folder
	for _, f := range ix.src.Folders() {
		if f.ParentID != "" && f.ParentID == folderID {
			children = append(children, f)
		}
	}
	return children
}

// ChildDocuments returns documents contained in folderID, in input order.
func (ix *Index) ChildDocuments(folderID string) []*models.Document {
	var children []*models.Document
	for _, d := range ix.src.Documents() {
		if d.FolderID != "" && d.FolderID == folderID {
			children = append(children, d)
		}
	}
	return children
}

// PathTo walks parent links upward from folderID and returns the folder
// chain ordered root first. A parent id that does not resolve to an existing
// folder terminates the walk as if the root had been reached; dangling
// references must not break path display. PathTo("") returns nil.
func (ix *Index) PathTo(folderID string) []*models.Folder {
	var path []*models.Folder
	seen := make(map[string]bool)
	for id := folderID; id != ""; {
		if seen[id] {
			// Imports are unvalidated, so a parent chain can contain a cycle.
			break
		}
		seen[id] = true

		folder := ix.src.FolderByID(id)
		if folder == nil {
			break
		}
		path = append([]*models.Folder{folder}, path...)
		id = folder.ParentID
	}
	return path
}
