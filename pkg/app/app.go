// Package app wires the store, index, session controller and collaborators
// into one application context. Exactly one App exists per process; it is
// constructed at startup and injected into each command, replacing any need
// for ambient globals.
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"github.com/kbtools/kb/pkg/hierarchy"
	"github.com/kbtools/kb/pkg/models"
	"github.com/kbtools/kb/pkg/runner"
	"github.com/kbtools/kb/pkg/session"
	"github.com/kbtools/kb/pkg/store"
	kbsync "github.com/kbtools/kb/pkg/sync"
	"github.com/kbtools/kb/pkg/sync/github"
)

// Config is what the App needs from the configuration layer.
type Config struct {
	DataDir string
	Editor  string
	Python  string
	// GitHub is the raw "github" config map; the persisted github-config
	// record overrides it when present.
	GitHub map[string]any
}

// App is the application context handed to every command.
type App struct {
	Store   *store.Store
	Index   *hierarchy.Index
	Session *session.Controller
	Syncer  *kbsync.Syncer
	Runner  *runner.Runner
	GitHub  *kbsync.Config
	Log     *logrus.Logger
	Editor  string
}

// New builds the application context: opens the store, restores the session
// and wires the sync collaborator. Auto-commit, when configured, hooks the
// session's save path with a non-blocking dispatch.
func New(cfg *Config) (*App, error) {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(logrus.WarnLevel)

	st, err := store.Open(cfg.DataDir, log)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	ix := hierarchy.New(st)
	ctl := session.New(st, ix, log)

	ghCfg, err := kbsync.DecodeConfig(cfg.GitHub)
	if err != nil {
		log.WithError(err).Warn("invalid github config, sync disabled")
		ghCfg = &kbsync.Config{}
		ghCfg.ApplyDefaults()
	}
	// Settings saved at runtime live in the store record and shadow the
	// config file.
	if _, err := st.GetJSON(store.KeyGitHubConfig, ghCfg); err != nil {
		log.WithError(err).Warn("malformed github config record")
	}
	ghCfg.ApplyDefaults()

	syncer := kbsync.NewSyncer(github.NewProvider(ghCfg), st, log)

	a := &App{
		Store:   st,
		Index:   ix,
		Session: ctl,
		Syncer:  syncer,
		Runner:  runner.New(cfg.Python),
		GitHub:  ghCfg,
		Log:     log,
		Editor:  cfg.Editor,
	}

	if ghCfg.AutoCommit && ghCfg.Enabled() {
		ctl.OnSave(func(doc *models.Document) {
			filename := kbsync.Filename(doc.Title)
			a.Syncer.Dispatch(context.Background(), filename, doc.Content, kbsync.Message(ghCfg.CommitTemplate, filename))
		})
	}

	return a, nil
}

// Settings reads the persisted settings record, falling back to defaults.
func (a *App) Settings() models.Settings {
	s := models.DefaultSettings()
	if _, err := a.Store.GetJSON(store.KeySettings, &s); err != nil {
		a.Log.WithError(err).Warn("malformed settings record, using defaults")
		return models.DefaultSettings()
	}
	return s
}

// SaveSettings persists the settings record.
func (a *App) SaveSettings(s models.Settings) error {
	return a.Store.PutJSON(store.KeySettings, s)
}

// SaveGitHubConfig persists the github config record.
func (a *App) SaveGitHubConfig() error {
	return a.Store.PutJSON(store.KeyGitHubConfig, a.GitHub)
}

// Close releases the store.
func (a *App) Close() error {
	return a.Store.Close()
}
