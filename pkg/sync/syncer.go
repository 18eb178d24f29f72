package sync

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kbtools/kb/pkg/store"
)

// Syncer dispatches documents to providers without blocking the caller.
// Pushes run in their own goroutines and report on the Results channel; the
// entity mutation path never waits on them.
type Syncer struct {
	provider Provider
	store    *store.Store
	log      *logrus.Logger
	results  chan Result
}

// NewSyncer wires a syncer over one provider. The results channel is
// buffered so a slow consumer never stalls a push goroutine's final send.
func NewSyncer(p Provider, st *store.Store, log *logrus.Logger) *Syncer {
	return &Syncer{
		provider: p,
		store:    st,
		log:      log,
		results:  make(chan Result, 16),
	}
}

// Provider exposes the wired provider, for connection checks.
func (s *Syncer) Provider() Provider {
	return s.provider
}

// Results delivers one Result per dispatched push.
func (s *Syncer) Results() <-chan Result {
	return s.results
}

// Dispatch pushes a document asynchronously and returns immediately.
func (s *Syncer) Dispatch(ctx context.Context, filename, content, message string) {
	go func() {
		item, err := s.provider.CreateItem(ctx, filename, content, message)
		if err != nil {
			s.log.WithError(err).WithField("filename", filename).Warn("remote sync failed")
		} else {
			s.record(filename, message, item)
		}
		select {
		case s.results <- Result{Provider: s.provider.Name(), Filename: filename, Item: item, Err: err}:
		default:
			// Nobody consuming; drop rather than leak the goroutine.
		}
	}()
}

// Push pushes a document synchronously. Used by the explicit sync command,
// where the user is waiting for the outcome.
func (s *Syncer) Push(ctx context.Context, filename, content, message string) (*Item, error) {
	item, err := s.provider.CreateItem(ctx, filename, content, message)
	if err != nil {
		return nil, err
	}
	s.record(filename, message, item)
	return item, nil
}

// record appends the push to the history ring, newest first, trimmed to
// HistoryLimit. History write failures are logged and swallowed; the push
// itself already succeeded.
func (s *Syncer) record(filename, message string, item *Item) {
	var history []CommitEntry
	if _, err := s.store.GetJSON(store.KeyGitHubCommits, &history); err != nil {
		s.log.WithError(err).Warn("malformed sync history record")
		history = nil
	}

	entry := CommitEntry{
		Filename:  filename,
		Message:   message,
		Timestamp: time.Now(),
	}
	if item.Manual {
		entry.Status = "manual_pending"
		entry.IssueURL = item.URL
	} else {
		entry.Status = "created"
		entry.ItemID = item.ID
		entry.IssueURL = item.URL
	}

	history = append([]CommitEntry{entry}, history...)
	if len(history) > HistoryLimit {
		history = history[:HistoryLimit]
	}
	if err := s.store.PutJSON(store.KeyGitHubCommits, history); err != nil {
		s.log.WithError(err).Warn("failed to persist sync history")
	}
}

// History returns the recorded pushes, newest first.
func (s *Syncer) History() []CommitEntry {
	var history []CommitEntry
	if _, err := s.store.GetJSON(store.KeyGitHubCommits, &history); err != nil {
		s.log.WithError(err).Warn("malformed sync history record")
		return nil
	}
	return history
}

// Filename derives the remote filename from a document title: lowercased,
// non-alphanumerics replaced with underscores.
func Filename(title string) string {
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

// Message expands a commit template for a filename.
func Message(template, filename string) string {
	if template == "" {
		template = DefaultCommitTemplate
	}
	return strings.ReplaceAll(template, "{filename}", filename)
}
