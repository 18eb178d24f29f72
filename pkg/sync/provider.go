package sync

import (
	"context"
	"time"
)

// Provider is a remote destination a saved document can be pushed to.
type Provider interface {
	// Name returns the provider's name (e.g., "github").
	Name() string
	// CreateItem pushes one document to the remote and returns the created
	// item, or an item carrying a manual-submission URL when the provider
	// cannot create it directly.
	CreateItem(ctx context.Context, filename, content, message string) (*Item, error)
	// TestConnection verifies the provider's configuration against the
	// remote without creating anything.
	TestConnection(ctx context.Context) (*ConnectionInfo, error)
}

// Item describes the result of pushing a document.
type Item struct {
	ID        string    // Remote identifier, e.g. an issue number.
	Title     string
	URL       string
	Manual    bool // True when the item must be submitted by hand via URL.
	CreatedAt time.Time
}

// ConnectionInfo summarizes a connection test.
type ConnectionInfo struct {
	Reachable bool
	Private   bool
	HasToken  bool
	Detail    string
}

// Result is delivered on the dispatcher's result channel for each
// fire-and-forget push.
type Result struct {
	Provider string
	Filename string
	Item     *Item
	Err      error
}

// CommitEntry is one line of the push history ring.
type CommitEntry struct {
	Filename  string    `json:"filename"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
	Status    string    `json:"status"` // "created" or "manual_pending"
	ItemID    string    `json:"item_id,omitempty"`
	IssueURL  string    `json:"issue_url,omitempty"`
}

// HistoryLimit caps the push history ring.
const HistoryLimit = 50
