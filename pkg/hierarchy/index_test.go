package hierarchy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbtools/kb/pkg/models"
)

// fakeSource is an in-memory Source for index tests.
type fakeSource struct {
	folders   []*models.Folder
	documents []*models.Document
}

func (f *fakeSource) Folders() []*models.Folder     { return f.folders }
func (f *fakeSource) Documents() []*models.Document { return f.documents }
func (f *fakeSource) FolderByID(id string) *models.Folder {
	for _, folder := range f.folders {
		if folder.ID == id {
			return folder
		}
	}
	return nil
}

func folder(id, name, parentID string) *models.Folder {
	return &models.Folder{ID: id, Name: name, ParentID: parentID}
}

func document(id, title, folderID string) *models.Document {
	return &models.Document{ID: id, Title: title, FolderID: folderID}
}

func TestRoots(t *testing.T) {
	src := &fakeSource{
		folders: []*models.Folder{
			folder("a", "A", ""),
			folder("b", "B", "a"),
			folder("c", "C", ""),
		},
		documents: []*models.Document{
			document("d1", "Rooted", ""),
			document("d2", "Nested", "a"),
		},
	}
	ix := New(src)

	roots := ix.RootFolders()
	require.Len(t, roots, 2)
	assert.Equal(t, "a", roots[0].ID)
	assert.Equal(t, "c", roots[1].ID)

	docs := ix.RootDocuments()
	require.Len(t, docs, 1)
	assert.Equal(t, "d1", docs[0].ID)
}

func TestChildren(t *testing.T) {
	src := &fakeSource{
		folders: []*models.Folder{
			folder("a", "A", ""),
			folder("b", "B", "a"),
			folder("c", "C", "a"),
		},
		documents: []*models.Document{
			document("d1", "One", "a"),
			document("d2", "Two", "b"),
			document("d3", "Three", "a"),
		},
	}
	ix := New(src)

	children := ix.ChildFolders("a")
	require.Len(t, children, 2)
	assert.Equal(t, "b", children[0].ID)
	assert.Equal(t, "c", children[1].ID)

	docs := ix.ChildDocuments("a")
	require.Len(t, docs, 2)
	assert.Equal(t, "d1", docs[0].ID)
	assert.Equal(t, "d3", docs[1].ID)

	assert.Empty(t, ix.ChildFolders("missing"))
	assert.Empty(t, ix.ChildDocuments("missing"))
}

func TestPathTo(t *testing.T) {
	src := &fakeSource{
		folders: []*models.Folder{
			folder("a", "A", ""),
			folder("b", "B", "a"),
			folder("c", "C", "b"),
		},
	}
	ix := New(src)

	path := ix.PathTo("c")
	require.Len(t, path, 3)
	assert.Equal(t, "a", path[0].ID)
	assert.Equal(t, "b", path[1].ID)
	assert.Equal(t, "c", path[2].ID)

	assert.Nil(t, ix.PathTo(""))
}

func TestPathToDanglingParent(t *testing.T) {
	src := &fakeSource{
		folders: []*models.Folder{
			folder("b", "B", "gone"),
			folder("c", "C", "b"),
		},
	}
	ix := New(src)

	path := ix.PathTo("c")
	require.Len(t, path, 2)
	assert.Equal(t, "b", path[0].ID)
	assert.Equal(t, "c", path[1].ID)
}

func TestPathToCycle(t *testing.T) {
	src := &fakeSource{
		folders: []*models.Folder{
			folder("a", "A", "b"),
			folder("b", "B", "a"),
		},
	}
	ix := New(src)

	path := ix.PathTo("a")
	require.Len(t, path, 2)
	assert.Equal(t, "b", path[0].ID)
	assert.Equal(t, "a", path[1].ID)
}
