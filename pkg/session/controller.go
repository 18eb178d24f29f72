// Package session tracks the single document currently open for editing and
// mediates load, save and delete between the store and the editing surface.
package session

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/kbtools/kb/pkg/hierarchy"
	"github.com/kbtools/kb/pkg/models"
	"github.com/kbtools/kb/pkg/store"
)

// NoDocumentSentinel is the breadcrumb shown when nothing is open.
const NoDocumentSentinel = "No document selected"

// ErrNoDocument is returned by operations that require an open document.
var ErrNoDocument = fmt.Errorf("no document is currently open")

// ErrNotConfirmed is returned by Delete when confirmation was withheld.
var ErrNotConfirmed = fmt.Errorf("deletion not confirmed")

// state persisted in the session record so the open document survives
// process boundaries.
type state struct {
	DocumentID string `json:"document_id,omitempty"`
	FolderID   string `json:"folder_id,omitempty"`
}

// Controller is the active document controller. At most one document is open
// at a time; the open/closed distinction lives here, not on the entity.
type Controller struct {
	store *store.Store
	index *hierarchy.Index
	log   *logrus.Logger

	current state

	// afterSave, when set, runs after every successful save. It must not
	// block: the save path fires it and returns.
	afterSave func(doc *models.Document)
}

// New restores the controller from the persisted session record. A session
// pointing at a document that no longer exists resets to idle.
func New(st *store.Store, ix *hierarchy.Index, log *logrus.Logger) *Controller {
	c := &Controller{store: st, index: ix, log: log}
	if _, err := st.GetJSON(store.KeySession, &c.current); err != nil {
		log.WithError(err).Warn("malformed session record, starting idle")
		c.current = state{}
	}
	if c.current.DocumentID != "" && st.DocumentByID(c.current.DocumentID) == nil {
		c.current = state{}
	}
	return c
}

// OnSave registers a hook fired after each successful save.
func (c *Controller) OnSave(fn func(doc *models.Document)) {
	c.afterSave = fn
}

// Current returns the open document, or nil when idle.
func (c *Controller) Current() *models.Document {
	if c.current.DocumentID == "" {
		return nil
	}
	return c.store.DocumentByID(c.current.DocumentID)
}

// CurrentFolderID returns the folder context of the open document.
func (c *Controller) CurrentFolderID() string {
	return c.current.FolderID
}

// Open makes docID the open document and its folder the current context.
// An id that does not resolve is silently ignored: the controller keeps its
// previous state, open or idle. Opening is idempotent.
func (c *Controller) Open(docID string) {
	doc := c.store.DocumentByID(docID)
	if doc == nil {
		return
	}
	c.current = state{DocumentID: doc.ID, FolderID: doc.FolderID}
	c.persist()
}

// Save writes the edited field values back onto the open document, refreshes
// its timestamp and persists. Unlike Open, saving with nothing open is a
// direct user action and reports ErrNoDocument.
func (c *Controller) Save(title, content string, category models.Category) (*models.Document, error) {
	doc := c.Current()
	if doc == nil {
		return nil, ErrNoDocument
	}

	updated, err := c.store.UpdateDocument(doc.ID, title, content, category)
	if err != nil {
		return updated, err
	}
	if c.afterSave != nil {
		c.afterSave(updated)
	}
	return updated, nil
}

// Delete removes the open document and returns the controller to idle.
// It requires explicit confirmation and is a no-op when nothing is open.
func (c *Controller) Delete(confirmed bool) error {
	doc := c.Current()
	if doc == nil {
		return ErrNoDocument
	}
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := c.store.RemoveDocument(doc.ID); err != nil {
		return err
	}
	c.current = state{}
	c.persist()
	return nil
}

// Close returns the controller to idle without touching the document.
func (c *Controller) Close() {
	c.current = state{}
	c.persist()
}

// Breadcrumb composes the folder path of the open document with its title,
// e.g. "Projects / Go / Notes". When idle it returns the sentinel.
func (c *Controller) Breadcrumb() string {
	doc := c.Current()
	if doc == nil {
		return NoDocumentSentinel
	}
	return c.BreadcrumbFor(doc.ID)
}

// BreadcrumbFor composes the breadcrumb for a specific document id. Unknown
// ids yield the sentinel.
func (c *Controller) BreadcrumbFor(docID string) string {
	doc := c.store.DocumentByID(docID)
	if doc == nil {
		return NoDocumentSentinel
	}

	var parts []string
	for _, folder := range c.index.PathTo(doc.FolderID) {
		parts = append(parts, folder.Name)
	}
	parts = append(parts, doc.Title)
	return strings.Join(parts, " / ")
}

// persist writes the session record. Failure is logged, not surfaced: the
// in-memory controller state stays authoritative for the session.
func (c *Controller) persist() {
	if err := c.store.PutJSON(store.KeySession, c.current); err != nil {
		c.log.WithError(err).Warn("failed to persist session state")
	}
}
