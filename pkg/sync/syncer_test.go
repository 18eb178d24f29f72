package sync

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kbtools/kb/pkg/store"
)

// fakeProvider records pushes and returns a canned item or error.
type fakeProvider struct {
	item  *Item
	err   error
	calls []string
}

func (f *fakeProvider) Name() string { return "fake" }

func (f *fakeProvider) CreateItem(ctx context.Context, filename, content, message string) (*Item, error) {
	f.calls = append(f.calls, filename)
	if f.err != nil {
		return nil, f.err
	}
	return f.item, nil
}

func (f *fakeProvider) TestConnection(ctx context.Context) (*ConnectionInfo, error) {
	return &ConnectionInfo{Reachable: true}, nil
}

func newTestSyncer(t *testing.T, p Provider) (*Syncer, *store.Store) {
	t.Helper()
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)

	st, err := store.Open(t.TempDir(), log)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	return NewSyncer(p, st, log), st
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "my_api_notes", Filename("My API Notes"))
	assert.Equal(t, "v2_design", Filename("v2 Design"))
	assert.Equal(t, "untitled", Filename(""))
	assert.Equal(t, "___", Filename("!!!"))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Update documentation: notes", Message("", "notes"))
	assert.Equal(t, "docs: notes saved", Message("docs: {filename} saved", "notes"))
	assert.Equal(t, "no placeholder", Message("no placeholder", "notes"))
}

func TestDecodeConfig(t *testing.T) {
	cfg, err := DecodeConfig(map[string]any{
		"owner":           "octocat",
		"repo":            "kb",
		"token":           "tok",
		"auto_commit":     true,
		"commit_template": "save {filename}",
	})
	require.NoError(t, err)
	assert.Equal(t, "octocat", cfg.Owner)
	assert.Equal(t, "kb", cfg.Repo)
	assert.Equal(t, "tok", cfg.Token)
	assert.True(t, cfg.AutoCommit)
	assert.Equal(t, "save {filename}", cfg.CommitTemplate)
	assert.Equal(t, "main", cfg.Branch)
	assert.True(t, cfg.Enabled())
}

func TestDecodeConfigDefaults(t *testing.T) {
	cfg, err := DecodeConfig(nil)
	require.NoError(t, err)
	assert.Equal(t, "main", cfg.Branch)
	assert.Equal(t, DefaultCommitTemplate, cfg.CommitTemplate)
	assert.False(t, cfg.Enabled())
}

func TestPushRecordsHistory(t *testing.T) {
	p := &fakeProvider{item: &Item{ID: "42", Title: "[KB-SAVE] notes", URL: "https://example.com/42"}}
	s, _ := newTestSyncer(t, p)

	item, err := s.Push(context.Background(), "notes", "content", "Update documentation: notes")
	require.NoError(t, err)
	assert.Equal(t, "42", item.ID)
	assert.Equal(t, []string{"notes"}, p.calls)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "notes", history[0].Filename)
	assert.Equal(t, "created", history[0].Status)
	assert.Equal(t, "42", history[0].ItemID)
	assert.Equal(t, "https://example.com/42", history[0].IssueURL)
}

func TestPushManualItemRecordsPending(t *testing.T) {
	p := &fakeProvider{item: &Item{Title: "[KB-SAVE] notes", URL: "https://example.com/new", Manual: true}}
	s, _ := newTestSyncer(t, p)

	_, err := s.Push(context.Background(), "notes", "content", "msg")
	require.NoError(t, err)

	history := s.History()
	require.Len(t, history, 1)
	assert.Equal(t, "manual_pending", history[0].Status)
	assert.Empty(t, history[0].ItemID)
}

func TestPushErrorNotRecorded(t *testing.T) {
	p := &fakeProvider{err: fmt.Errorf("boom")}
	s, _ := newTestSyncer(t, p)

	_, err := s.Push(context.Background(), "notes", "content", "msg")
	require.Error(t, err)
	assert.Empty(t, s.History())
}

func TestHistoryNewestFirstAndCapped(t *testing.T) {
	p := &fakeProvider{item: &Item{ID: "1", URL: "u"}}
	s, _ := newTestSyncer(t, p)

	for i := 0; i < HistoryLimit+5; i++ {
		_, err := s.Push(context.Background(), fmt.Sprintf("doc_%d", i), "c", "m")
		require.NoError(t, err)
	}

	history := s.History()
	require.Len(t, history, HistoryLimit)
	assert.Equal(t, fmt.Sprintf("doc_%d", HistoryLimit+4), history[0].Filename)
}

func TestDispatchDeliversResult(t *testing.T) {
	p := &fakeProvider{item: &Item{ID: "7", URL: "u"}}
	s, _ := newTestSyncer(t, p)

	s.Dispatch(context.Background(), "notes", "content", "msg")

	select {
	case res := <-s.Results():
		require.NoError(t, res.Err)
		assert.Equal(t, "fake", res.Provider)
		assert.Equal(t, "notes", res.Filename)
		assert.Equal(t, "7", res.Item.ID)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}

func TestDispatchDeliversError(t *testing.T) {
	p := &fakeProvider{err: fmt.Errorf("boom")}
	s, _ := newTestSyncer(t, p)

	s.Dispatch(context.Background(), "notes", "content", "msg")

	select {
	case res := <-s.Results():
		assert.Error(t, res.Err)
		assert.Nil(t, res.Item)
	case <-time.After(2 * time.Second):
		t.Fatal("no result delivered")
	}
}
