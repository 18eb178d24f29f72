package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/sirupsen/logrus"

	"github.com/kbtools/kb/pkg/models"
)

// Record keys. Each key holds one independently serialized JSON value,
// mirroring the original per-key browser storage layout.
const (
	keyFolders   = "kb_folders"
	keyDocuments = "kb_documents"

	KeySettings      = "kb_settings"
	KeyGitHubConfig  = "kb_github_config"
	KeySession       = "kb_session"
	KeyGitHubCommits = "kb_github_commits"
)

// Store holds the authoritative in-memory folder and document lists and
// persists them to a key-value table in SQLite. The in-memory lists remain
// the source of truth for the session even when a persist fails.
type Store struct {
	db  *sql.DB
	log *logrus.Logger

	folders   []*models.Folder
	documents []*models.Document
}

// Open opens (creating if needed) the store database under dataDir and loads
// the persisted entity lists. Malformed persisted state is logged and
// replaced with empty lists; it is never surfaced as an error.
func Open(dataDir string, log *logrus.Logger) (*Store, error) {
	if log == nil {
		log = logrus.New()
		log.SetOutput(os.Stderr)
		log.SetLevel(logrus.WarnLevel)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	dbPath := filepath.Join(dataDir, "kb.db")
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: db, log: log}
	if err := s.init(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize store: %w", err)
	}

	s.Load()
	return s, nil
}

// init creates the database schema
func (s *Store) init() error {
	schema := `
	CREATE TABLE IF NOT EXISTS records (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// getRecord reads one raw record. Missing keys return ("", false, nil).
func (s *Store) getRecord(key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM records WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// putRecord writes one raw record.
func (s *Store) putRecord(key, value string) error {
	_, err := s.db.Exec(`
	INSERT INTO records (key, value, updated_at) VALUES (?, ?, ?)
	ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now())
	return err
}

// Load reads the persisted folder and document lists into memory. Missing or
// unparseable records reset the affected list to empty; the failure is
// logged and not propagated, since no prior valid in-memory state is lost.
func (s *Store) Load() {
	s.folders = []*models.Folder{}
	s.documents = []*models.Document{}

	if raw, ok, err := s.getRecord(keyFolders); err != nil {
		s.log.WithError(err).Warn("failed to read folders record")
	} else if ok {
		var folders []*models.Folder
		if err := json.Unmarshal([]byte(raw), &folders); err != nil {
			s.log.WithError(err).Warn("malformed folders record, starting empty")
		} else {
			s.folders = folders
		}
	}

	if raw, ok, err := s.getRecord(keyDocuments); err != nil {
		s.log.WithError(err).Warn("failed to read documents record")
	} else if ok {
		var documents []*models.Document
		if err := json.Unmarshal([]byte(raw), &documents); err != nil {
			s.log.WithError(err).Warn("malformed documents record, starting empty")
		} else {
			s.documents = documents
		}
	}
}

// Save serializes both entity lists and writes them to the database. On
// failure the in-memory state is left untouched and remains authoritative;
// the caller decides how to surface the error.
func (s *Store) Save() error {
	foldersJSON, err := json.Marshal(s.folders)
	if err != nil {
		return fmt.Errorf("marshal folders: %w", err)
	}
	documentsJSON, err := json.Marshal(s.documents)
	if err != nil {
		return fmt.Errorf("marshal documents: %w", err)
	}

	if err := s.putRecord(keyFolders, string(foldersJSON)); err != nil {
		return fmt.Errorf("persist folders: %w", err)
	}
	if err := s.putRecord(keyDocuments, string(documentsJSON)); err != nil {
		return fmt.Errorf("persist documents: %w", err)
	}
	return nil
}

// Folders returns the in-memory folder list in insertion order.
func (s *Store) Folders() []*models.Folder {
	return s.folders
}

// Documents returns the in-memory document list in insertion order.
func (s *Store) Documents() []*models.Document {
	return s.documents
}

// FolderByID looks up a folder. Returns nil when the id is unknown.
func (s *Store) FolderByID(id string) *models.Folder {
	for _, f := range s.folders {
		if f.ID == id {
			return f
		}
	}
	return nil
}

// DocumentByID looks up a document. Returns nil when the id is unknown.
func (s *Store) DocumentByID(id string) *models.Document {
	for _, d := range s.documents {
		if d.ID == id {
			return d
		}
	}
	return nil
}

// CreateFolder appends a new folder and persists. The name must be
// non-empty; parentID is not validated against existing folders, matching
// the lenient dangling-reference policy used at render time.
func (s *Store) CreateFolder(name, icon, parentID string) (*models.Folder, error) {
	if name == "" {
		return nil, fmt.Errorf("folder name must not be empty")
	}
	if icon == "" {
		icon = models.DefaultFolderIcon
	}

	folder := &models.Folder{
		ID:        models.NewID(),
		Name:      name,
		Icon:      icon,
		ParentID:  parentID,
		Expanded:  true,
		CreatedAt: time.Now(),
	}
	s.folders = append(s.folders, folder)

	if err := s.Save(); err != nil {
		return folder, err
	}
	return folder, nil
}

// CreateDocument appends a new document and persists. An empty title becomes
// the default title; an empty category becomes general.
func (s *Store) CreateDocument(title string, category models.Category, folderID string) (*models.Document, error) {
	if title == "" {
		title = models.DefaultTitle
	}
	if category == "" {
		category = models.CategoryGeneral
	}

	now := time.Now()
	doc := &models.Document{
		ID:        models.NewID(),
		Title:     title,
		Category:  category,
		FolderID:  folderID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.documents = append(s.documents, doc)

	if err := s.Save(); err != nil {
		return doc, err
	}
	return doc, nil
}

// UpdateDocument writes new field values onto an existing document,
// refreshes UpdatedAt and persists.
func (s *Store) UpdateDocument(id, title, content string, category models.Category) (*models.Document, error) {
	doc := s.DocumentByID(id)
	if doc == nil {
		return nil, fmt.Errorf("document not found: %s", id)
	}
	if title == "" {
		title = models.DefaultTitle
	}
	doc.Title = title
	doc.Content = content
	if category != "" {
		doc.Category = category
	}
	doc.UpdatedAt = time.Now()

	if err := s.Save(); err != nil {
		return doc, err
	}
	return doc, nil
}

// RemoveDocument filters the document out of the list and persists. Removing
// an unknown id is a no-op.
func (s *Store) RemoveDocument(id string) error {
	kept := s.documents[:0]
	for _, d := range s.documents {
		if d.ID != id {
			kept = append(kept, d)
		}
	}
	s.documents = kept
	return s.Save()
}

// RemoveFolder deletes a folder. Deletion is blocked while the folder still
// contains child folders or documents; callers must empty it first. There is
// no cascade and no promotion of children.
func (s *Store) RemoveFolder(id string) error {
	if s.FolderByID(id) == nil {
		return fmt.Errorf("folder not found: %s", id)
	}
	for _, f := range s.folders {
		if f.ParentID == id {
			return fmt.Errorf("folder is not empty: contains folder %q", f.Name)
		}
	}
	for _, d := range s.documents {
		if d.FolderID == id {
			return fmt.Errorf("folder is not empty: contains document %q", d.Title)
		}
	}

	kept := s.folders[:0]
	for _, f := range s.folders {
		if f.ID != id {
			kept = append(kept, f)
		}
	}
	s.folders = kept
	return s.Save()
}

// SetExpanded flips a folder's persisted expand state.
func (s *Store) SetExpanded(id string, expanded bool) error {
	folder := s.FolderByID(id)
	if folder == nil {
		return fmt.Errorf("folder not found: %s", id)
	}
	folder.Expanded = expanded
	return s.Save()
}

// Stats summarizes the store contents for the overview display.
type Stats struct {
	Documents  int `json:"documents"`
	Folders    int `json:"folders"`
	CodeBlocks int `json:"code_blocks"`
}

// ComputeStats counts documents, folders and fenced code blocks.
func (s *Store) ComputeStats() Stats {
	st := Stats{
		Documents: len(s.documents),
		Folders:   len(s.folders),
	}
	for _, d := range s.documents {
		fences := 0
		for i := 0; i+3 <= len(d.Content); i++ {
			if d.Content[i:i+3] == "```" {
				fences++
				i += 2
			}
		}
		st.CodeBlocks += fences / 2
	}
	return st
}

// RecentDocuments returns up to n documents ordered by UpdatedAt descending.
func (s *Store) RecentDocuments(n int) []*models.Document {
	recent := make([]*models.Document, len(s.documents))
	copy(recent, s.documents)
	// Insertion sort keeps the original list order for equal timestamps.
	for i := 1; i < len(recent); i++ {
		for j := i; j > 0 && recent[j].UpdatedAt.After(recent[j-1].UpdatedAt); j-- {
			recent[j], recent[j-1] = recent[j-1], recent[j]
		}
	}
	if n >= 0 && n < len(recent) {
		recent = recent[:n]
	}
	return recent
}

// GetJSON reads an auxiliary record (settings, session, sync config) into v.
// Missing records leave v untouched and return false.
func (s *Store) GetJSON(key string, v any) (bool, error) {
	raw, ok, err := s.getRecord(key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return false, fmt.Errorf("unmarshal record %s: %w", key, err)
	}
	return true, nil
}

// PutJSON writes an auxiliary record.
func (s *Store) PutJSON(key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal record %s: %w", key, err)
	}
	return s.putRecord(key, string(raw))
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
