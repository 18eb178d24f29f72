package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Category classifies a document for icon selection. Unknown values are
// tolerated and render with the general icon.
type Category string

const (
	CategoryGeneral      Category = "general"
	CategoryCode         Category = "code"
	CategoryArchitecture Category = "architecture"
	CategoryAPI          Category = "api"
	CategoryTutorial     Category = "tutorial"
	CategoryNotes        Category = "notes"
	CategoryPython       Category = "python"
)

// Categories lists the known categories in display order.
var Categories = []Category{
	CategoryGeneral,
	CategoryCode,
	CategoryArchitecture,
	CategoryAPI,
	CategoryTutorial,
	CategoryNotes,
	CategoryPython,
}

var categoryIcons = map[Category]string{
	CategoryGeneral:      "📄",
	CategoryCode:         "💻",
	CategoryArchitecture: "🏗️",
	CategoryAPI:          "🔌",
	CategoryTutorial:     "🎓",
	CategoryNotes:        "📝",
	CategoryPython:       "🐍",
}

// Icon returns the display glyph for the category.
func (c Category) Icon() string {
	if icon, ok := categoryIcons[c]; ok {
		return icon
	}
	return categoryIcons[CategoryGeneral]
}

// FolderIcons is the fixed palette a folder icon is chosen from.
var FolderIcons = []string{"📁", "📂", "🗂️", "📚", "🔧", "🧪", "🚀", "⭐"}

// DefaultFolderIcon is used when no icon is picked at creation.
const DefaultFolderIcon = "📁"

// DefaultTitle is assigned to documents saved with an empty title.
const DefaultTitle = "Untitled"

// Folder is a container in the document hierarchy. ParentID refers to
// another folder by id; empty means the folder sits at the root.
type Folder struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Icon      string    `json:"icon"`
	ParentID  string    `json:"parentId,omitempty"`
	Expanded  bool      `json:"expanded"`
	CreatedAt time.Time `json:"createdAt"`
}

// Document is a single markdown document. FolderID refers to the containing
// folder by id; empty means root placement.
type Document struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  Category  `json:"category"`
	FolderID  string    `json:"folderId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewID returns a fresh entity identifier. The browser exports this tool can
// import used wall-clock millisecond ids; random UUIDs remove the collision
// window without changing the id's opaque-string contract.
func NewID() string {
	return uuid.NewString()
}

// flexibleID accepts either a JSON string or a JSON number and normalizes it
// to a string. Export files written by the original web app carry numeric
// ids, while everything this tool writes is already a string.
type flexibleID string

func (f *flexibleID) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexibleID(s)
		return nil
	}
	if string(data) == "null" {
		*f = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexibleID(n.String())
	return nil
}

// flexibleTime tolerates the RFC 3339 strings the web app wrote as well as
// Go's own time encoding. A malformed timestamp decodes to the zero time
// rather than failing the whole record set.
type flexibleTime time.Time

func (f *flexibleTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		*f = flexibleTime(time.Time{})
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05.999Z0700"} {
		if t, err := time.Parse(layout, s); err == nil {
			*f = flexibleTime(t)
			return nil
		}
	}
	*f = flexibleTime(time.Time{})
	return nil
}

// UnmarshalJSON normalizes numeric ids and parent references to strings so
// identifier comparison is always string equality after load.
func (f *Folder) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        flexibleID   `json:"id"`
		Name      string       `json:"name"`
		Icon      string       `json:"icon"`
		ParentID  flexibleID   `json:"parentId"`
		Expanded  bool         `json:"expanded"`
		CreatedAt flexibleTime `json:"createdAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	f.ID = string(raw.ID)
	f.Name = raw.Name
	f.Icon = raw.Icon
	f.ParentID = string(raw.ParentID)
	f.Expanded = raw.Expanded
	f.CreatedAt = time.Time(raw.CreatedAt)
	return nil
}

// UnmarshalJSON normalizes numeric ids and folder references to strings.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID        flexibleID   `json:"id"`
		Title     string       `json:"title"`
		Content   string       `json:"content"`
		Category  Category     `json:"category"`
		FolderID  flexibleID   `json:"folderId"`
		CreatedAt flexibleTime `json:"createdAt"`
		UpdatedAt flexibleTime `json:"updatedAt"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	d.ID = string(raw.ID)
	d.Title = raw.Title
	d.Content = raw.Content
	d.Category = raw.Category
	d.FolderID = string(raw.FolderID)
	d.CreatedAt = time.Time(raw.CreatedAt)
	d.UpdatedAt = time.Time(raw.UpdatedAt)
	return nil
}

// WordCount returns the whitespace-separated word count of the content.
func (d *Document) WordCount() int {
	count := 0
	inWord := false
	for _, r := range d.Content {
		switch r {
		case ' ', '\t', '\n', '\r':
			inWord = false
		default:
			if !inWord {
				count++
			}
			inWord = true
		}
	}
	return count
}

// ReadMinutes estimates reading time at 200 words per minute, minimum 1.
func (d *Document) ReadMinutes() int {
	minutes := (d.WordCount() + 199) / 200
	if minutes < 1 {
		minutes = 1
	}
	return minutes
}
