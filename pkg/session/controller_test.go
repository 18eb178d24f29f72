package session

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbtools/kb/pkg/hierarchy"
	"github.com/kbtools/kb/pkg/models"
	"github.com/kbtools/kb/pkg/store"
)

func newTestController(t *testing.T) (*Controller, *store.Store) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	st, err := store.Open(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	ix := hierarchy.New(st)
	return New(st, ix, log), st
}

func TestStartsIdle(t *testing.T) {
	c, _ := newTestController(t)

	assert.Nil(t, c.Current())
	assert.Equal(t, NoDocumentSentinel, c.Breadcrumb())
}

func TestOpenAndClose(t *testing.T) {
	c, st := newTestController(t)

	folder, err := st.CreateFolder("F1", "", "")
	require.NoError(t, err)
	doc, err := st.CreateDocument("Notes", "", folder.ID)
	require.NoError(t, err)

	c.Open(doc.ID)
	require.NotNil(t, c.Current())
	assert.Equal(t, doc.ID, c.Current().ID)
	assert.Equal(t, folder.ID, c.CurrentFolderID())

	// Opening the already-open document changes nothing.
	c.Open(doc.ID)
	assert.Equal(t, doc.ID, c.Current().ID)

	c.Close()
	assert.Nil(t, c.Current())
	assert.Equal(t, "", c.CurrentFolderID())

	// The document itself is untouched by closing.
	assert.NotNil(t, st.DocumentByID(doc.ID))
}

func TestOpenUnknownIDIsSilentlyIgnored(t *testing.T) {
	c, st := newTestController(t)

	doc, err := st.CreateDocument("Notes", "", "")
	require.NoError(t, err)
	c.Open(doc.ID)

	c.Open("no-such-id")
	require.NotNil(t, c.Current())
	assert.Equal(t, doc.ID, c.Current().ID)

	c.Close()
	c.Open("no-such-id")
	assert.Nil(t, c.Current())
}

func TestSaveRequiresOpenDocument(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.Save("Title", "content", "")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestSaveUpdatesAndNotifies(t *testing.T) {
	c, st := newTestController(t)

	doc, err := st.CreateDocument("Draft", "", "")
	require.NoError(t, err)
	c.Open(doc.ID)

	var notified *models.Document
	c.OnSave(func(d *models.Document) { notified = d })

	saved, err := c.Save("Final", "# body", models.CategoryCode)
	require.NoError(t, err)
	assert.Equal(t, "Final", saved.Title)
	assert.Equal(t, "# body", saved.Content)
	assert.Equal(t, models.CategoryCode, saved.Category)

	require.NotNil(t, notified)
	assert.Equal(t, saved.ID, notified.ID)
}

func TestDelete(t *testing.T) {
	c, st := newTestController(t)

	doc, err := st.CreateDocument("Doomed", "", "")
	require.NoError(t, err)

	assert.ErrorIs(t, c.Delete(true), ErrNoDocument)

	c.Open(doc.ID)
	assert.ErrorIs(t, c.Delete(false), ErrNotConfirmed)
	require.NotNil(t, c.Current())

	require.NoError(t, c.Delete(true))
	assert.Nil(t, c.Current())
	assert.Nil(t, st.DocumentByID(doc.ID))
}

func TestBreadcrumb(t *testing.T) {
	c, st := newTestController(t)

	f1, err := st.CreateFolder("F1", "", "")
	require.NoError(t, err)
	doc, err := st.CreateDocument("Notes", "", f1.ID)
	require.NoError(t, err)

	assert.Equal(t, "F1 / Notes", c.BreadcrumbFor(doc.ID))
	assert.Equal(t, NoDocumentSentinel, c.BreadcrumbFor("missing"))

	c.Open(doc.ID)
	assert.Equal(t, "F1 / Notes", c.Breadcrumb())
}

func TestBreadcrumbNestedAndRoot(t *testing.T) {
	c, st := newTestController(t)

	parent, err := st.CreateFolder("Projects", "", "")
	require.NoError(t, err)
	child, err := st.CreateFolder("Go", "", parent.ID)
	require.NoError(t, err)

	nested, err := st.CreateDocument("Notes", "", child.ID)
	require.NoError(t, err)
	rooted, err := st.CreateDocument("Readme", "", "")
	require.NoError(t, err)

	assert.Equal(t, "Projects / Go / Notes", c.BreadcrumbFor(nested.ID))
	assert.Equal(t, "Readme", c.BreadcrumbFor(rooted.ID))
}

func TestSessionSurvivesRestart(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	dir := t.TempDir()

	st, err := store.Open(dir, log)
	require.NoError(t, err)
	c := New(st, hierarchy.New(st), log)

	doc, err := st.CreateDocument("Notes", "", "")
	require.NoError(t, err)
	c.Open(doc.ID)
	require.NoError(t, st.Close())

	st2, err := store.Open(dir, log)
	require.NoError(t, err)
	defer st2.Close()

	c2 := New(st2, hierarchy.New(st2), log)
	require.NotNil(t, c2.Current())
	assert.Equal(t, doc.ID, c2.Current().ID)
}

func TestSessionResetsWhenDocumentGone(t *testing.T) {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	dir := t.TempDir()

	st, err := store.Open(dir, log)
	require.NoError(t, err)
	c := New(st, hierarchy.New(st), log)

	doc, err := st.CreateDocument("Notes", "", "")
	require.NoError(t, err)
	c.Open(doc.ID)
	require.NoError(t, st.RemoveDocument(doc.ID))
	require.NoError(t, st.Close())

	st2, err := store.Open(dir, log)
	require.NoError(t, err)
	defer st2.Close()

	c2 := New(st2, hierarchy.New(st2), log)
	assert.Nil(t, c2.Current())
}
