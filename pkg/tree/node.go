package tree

import (
	"github.com/kbtools/kb/pkg/hierarchy"
	"github.com/kbtools/kb/pkg/models"
)

// NodeKind distinguishes the two entity kinds appearing in the tree.
type NodeKind string

const (
	KindFolder   NodeKind = "folder"
	KindDocument NodeKind = "document"
)

// Node is a single node in the rendered document tree. Folder nodes own
// their children; document nodes are leaves.
type Node struct {
	Kind     NodeKind
	ID       string
	Name     string
	Icon     string
	Expanded bool
	Active   bool

	Folder   *models.Folder
	Document *models.Document
	Children []*Node
}

// HasChildren reports whether the node carries any child nodes. Collapsed
// folders keep their children in the structure; collapse only affects
// visibility at render time.
func (n *Node) HasChildren() bool {
	return len(n.Children) > 0
}

// Options control a tree build.
type Options struct {
	// ActiveDocumentID marks the matching document node as active.
	ActiveDocumentID string
	// Overlay maps folder id to a transient expand state that shadows the
	// persisted one. Used by the read-only view context, where toggling
	// must not write back to the store.
	Overlay map[string]bool
}

// Build constructs the nested node structure for the whole hierarchy:
// root folders first, then root documents, recursing into each folder with
// child folders ahead of child documents. Input order is preserved within
// each group.
func Build(ix *hierarchy.Index, opts Options) []*Node {
	var nodes []*Node
	for _, f := range ix.RootFolders() {
		nodes = append(nodes, buildFolder(ix, f, opts, make(map[string]bool)))
	}
	for _, d := range ix.RootDocuments() {
		nodes = append(nodes, buildDocument(d, opts))
	}
	return nodes
}

func buildFolder(ix *hierarchy.Index, folder *models.Folder, opts Options, onPath map[string]bool) *Node {
	expanded := folder.Expanded
	if opts.Overlay != nil {
		if v, ok := opts.Overlay[folder.ID]; ok {
			expanded = v
		}
	}

	node := &Node{
		Kind:     KindFolder,
		ID:       folder.ID,
		Name:     folder.Name,
		Icon:     folder.Icon,
		Expanded: expanded,
		Folder:   folder,
	}

	// A cyclic parent chain from an unvalidated import would otherwise
	// recurse forever.
	if onPath[folder.ID] {
		return node
	}
	onPath[folder.ID] = true
	defer delete(onPath, folder.ID)

	for _, child := range ix.ChildFolders(folder.ID) {
		node.Children = append(node.Children, buildFolder(ix, child, opts, onPath))
	}
	for _, doc := range ix.ChildDocuments(folder.ID) {
		node.Children = append(node.Children, buildDocument(doc, opts))
	}
	return node
}

func buildDocument(doc *models.Document, opts Options) *Node {
	return &Node{
		Kind:     KindDocument,
		ID:       doc.ID,
		Name:     doc.Title,
		Icon:     doc.Category.Icon(),
		Active:   doc.ID == opts.ActiveDocumentID,
		Document: doc,
	}
}

// Flatten walks the built tree depth-first and returns the visible rows:
// children of collapsed folders are skipped, never removed. Depth is the
// nesting level used for indentation.
func Flatten(nodes []*Node) []Row {
	var rows []Row
	flattenInto(nodes, 0, &rows)
	return rows
}

// Row pairs a visible node with its nesting depth.
type Row struct {
	Node  *Node
	Depth int
}

func flattenInto(nodes []*Node, depth int, out *[]Row) {
	for _, n := range nodes {
		*out = append(*out, Row{Node: n, Depth: depth})
		if n.Kind == KindFolder && n.Expanded {
			flattenInto(n.Children, depth+1, out)
		}
	}
}
