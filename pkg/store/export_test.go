package store

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbtools/kb/pkg/models"
)

func TestExportEnvelope(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateFolder("Projects", "", "")
	require.NoError(t, err)
	_, err = s.CreateDocument("Plan", "", "")
	require.NoError(t, err)

	env := s.Export()
	assert.Len(t, env.Folders, 1)
	assert.Len(t, env.Documents, 1)
	assert.Equal(t, ExportVersion, env.Version)
	assert.False(t, env.ExportDate.IsZero())
}

func TestExportImportRoundTrip(t *testing.T) {
	src := newTestStore(t)

	folder, err := src.CreateFolder("Projects", "🚀", "")
	require.NoError(t, err)
	doc, err := src.CreateDocument("Plan", models.CategoryCode, folder.ID)
	require.NoError(t, err)
	_, err = src.UpdateDocument(doc.ID, "Plan", "# body", "")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "export.json")
	require.NoError(t, src.ExportTo(path))

	dst := newTestStore(t)
	folders, documents, err := dst.ImportFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, folders)
	assert.Equal(t, 1, documents)

	require.Len(t, dst.Documents(), 1)
	assert.Equal(t, "Plan", dst.Documents()[0].Title)
	assert.Equal(t, "# body", dst.Documents()[0].Content)
	assert.Equal(t, folder.ID, dst.Documents()[0].FolderID)
}

func TestImportConcatenates(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateFolder("Existing", "", "")
	require.NoError(t, err)
	_, err = s.CreateDocument("Existing doc", "", "")
	require.NoError(t, err)

	data, err := json.Marshal(map[string]any{
		"folders": []map[string]any{
			{"id": "f1", "name": "A"},
			{"id": "f2", "name": "B"},
		},
		"documents": []map[string]any{
			{"id": "d1", "title": "One"},
			{"id": "d2", "title": "Two"},
			{"id": "d3", "title": "Three"},
		},
	})
	require.NoError(t, err)

	folders, documents, err := s.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 2, folders)
	assert.Equal(t, 3, documents)
	assert.Len(t, s.Folders(), 3)
	assert.Len(t, s.Documents(), 4)
}

func TestImportRejectsMissingArrays(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateDocument("Keep", "", "")
	require.NoError(t, err)

	cases := []string{
		`{}`,
		`{"folders": []}`,
		`{"documents": []}`,
		`not json at all`,
	}
	for _, c := range cases {
		_, _, err := s.Import([]byte(c))
		assert.Error(t, err, "input: %s", c)
	}

	// Rejected imports leave the store untouched.
	assert.Len(t, s.Documents(), 1)
	assert.Empty(t, s.Folders())
}

func TestImportNormalizesLegacyNumericIDs(t *testing.T) {
	s := newTestStore(t)

	data := []byte(`{
		"folders": [
			{"id": 1700000000001, "name": "Web", "icon": "📁", "expanded": true, "createdAt": "2024-01-15T10:30:00.000Z"}
		],
		"documents": [
			{"id": 1700000000002, "title": "Note", "content": "hi", "category": "notes", "folderId": 1700000000001, "createdAt": "2024-01-15T10:31:00.000Z", "updatedAt": "2024-01-15T10:32:00.000Z"}
		],
		"exportDate": "2024-01-15T12:00:00.000Z",
		"version": "1.0"
	}`)

	folders, documents, err := s.Import(data)
	require.NoError(t, err)
	assert.Equal(t, 1, folders)
	assert.Equal(t, 1, documents)

	folder := s.Folders()[0]
	doc := s.Documents()[0]
	assert.Equal(t, "1700000000001", folder.ID)
	assert.Equal(t, "1700000000002", doc.ID)
	assert.Equal(t, folder.ID, doc.FolderID)
	assert.Equal(t, models.CategoryNotes, doc.Category)
	assert.Equal(t, 2024, doc.CreatedAt.Year())
}

func TestExportFiles(t *testing.T) {
	s := newTestStore(t)

	parent, err := s.CreateFolder("Projects", "", "")
	require.NoError(t, err)
	child, err := s.CreateFolder("Go Stuff", "", parent.ID)
	require.NoError(t, err)

	doc, err := s.CreateDocument("My Plan!", models.CategoryGeneral, child.ID)
	require.NoError(t, err)
	_, err = s.UpdateDocument(doc.ID, "My Plan!", "# Plan", "")
	require.NoError(t, err)
	_, err = s.CreateDocument("Rootless", "", "")
	require.NoError(t, err)

	dir := t.TempDir()
	written, err := s.ExportFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	nested := filepath.Join(dir, "projects", "go_stuff", "my_plan_.md")
	content, err := os.ReadFile(nested)
	require.NoError(t, err)
	assert.Contains(t, string(content), "title: My Plan!")
	assert.Contains(t, string(content), "# Plan")

	_, err = os.Stat(filepath.Join(dir, "rootless.md"))
	assert.NoError(t, err)
}

func TestExportFilesCyclicParentChain(t *testing.T) {
	s := newTestStore(t)

	// Import appends entities as-is, so a cyclic parent chain is reachable
	// state. The export walk must terminate on it.
	data := []byte(`{
		"folders": [
			{"id": "a", "name": "A", "parentId": "b"},
			{"id": "b", "name": "B", "parentId": "a"}
		],
		"documents": [
			{"id": "d1", "title": "Trapped", "content": "x", "folderId": "a"}
		]
	}`)
	_, _, err := s.Import(data)
	require.NoError(t, err)

	dir := t.TempDir()
	type result struct {
		written int
		err     error
	}
	done := make(chan result, 1)
	go func() {
		written, err := s.ExportFiles(dir)
		done <- result{written, err}
	}()

	select {
	case res := <-done:
		require.NoError(t, res.err)
		assert.Equal(t, 1, res.written)
	case <-time.After(3 * time.Second):
		t.Fatal("ExportFiles did not terminate on cyclic parent chain")
	}

	_, err = os.Stat(filepath.Join(dir, "b", "a", "trapped.md"))
	assert.NoError(t, err)
}

func TestExportFilesDuplicateSlugs(t *testing.T) {
	s := newTestStore(t)

	_, err := s.CreateDocument("Plan!", "", "")
	require.NoError(t, err)
	_, err = s.CreateDocument("Plan?", "", "")
	require.NoError(t, err)

	dir := t.TempDir()
	written, err := s.ExportFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, 2, written)

	// Both documents survive: the colliding slug gets a numeric suffix.
	_, err = os.Stat(filepath.Join(dir, "plan_.md"))
	assert.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, "plan__2.md"))
	assert.NoError(t, err)
}

func TestSlugify(t *testing.T) {
	assert.Equal(t, "hello_world", slugify("Hello World"))
	assert.Equal(t, "api_v2_notes", slugify("API v2 Notes"))
	assert.Equal(t, "untitled", slugify(""))
	assert.Equal(t, "___", slugify("日本語"))
}
