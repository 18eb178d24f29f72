//go:build integration

package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
)

func TestIntegration(t *testing.T) {
	// Skip if not running integration tests
	if os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test. Set RUN_INTEGRATION_TESTS=1 to run.")
	}

	tmpDir := t.TempDir()
	dataDir := filepath.Join(tmpDir, "data")

	// Test 1: Build application context
	t.Run("CreateApp", func(t *testing.T) {
		a, err := app.New(&app.Config{DataDir: dataDir, Editor: "vim"})
		if err != nil {
			t.Fatalf("Failed to create app: %v", err)
		}
		defer a.Close()

		if a.Store == nil || a.Index == nil || a.Session == nil {
			t.Error("App context is incomplete")
		}
	})

	// Test 2: Full document lifecycle across a restart
	t.Run("DocumentLifecycle", func(t *testing.T) {
		a, err := app.New(&app.Config{DataDir: dataDir, Editor: "vim"})
		if err != nil {
			t.Fatalf("Failed to create app: %v", err)
		}

		folder, err := a.Store.CreateFolder("Projects", "", "")
		if err != nil {
			t.Fatalf("Failed to create folder: %v", err)
		}
		doc, err := a.Store.CreateDocument("Notes", models.CategoryNotes, folder.ID)
		if err != nil {
			t.Fatalf("Failed to create document: %v", err)
		}
		a.Session.Open(doc.ID)
		if _, err := a.Session.Save("Notes", "# hello", ""); err != nil {
			t.Fatalf("Failed to save: %v", err)
		}
		if got := a.Session.Breadcrumb(); got != "Projects / Notes" {
			t.Errorf("Expected breadcrumb 'Projects / Notes', got %q", got)
		}
		a.Close()

		// Reopen and verify everything survived
		a2, err := app.New(&app.Config{DataDir: dataDir, Editor: "vim"})
		if err != nil {
			t.Fatalf("Failed to reopen app: %v", err)
		}
		defer a2.Close()

		cur := a2.Session.Current()
		if cur == nil {
			t.Fatal("Session did not survive restart")
		}
		if cur.Content != "# hello" {
			t.Errorf("Expected saved content, got %q", cur.Content)
		}
	})

	// Test 3: Export and import round trip
	t.Run("ExportImport", func(t *testing.T) {
		a, err := app.New(&app.Config{DataDir: dataDir, Editor: "vim"})
		if err != nil {
			t.Fatalf("Failed to create app: %v", err)
		}
		defer a.Close()

		exportPath := filepath.Join(tmpDir, "export.json")
		if err := a.Store.ExportTo(exportPath); err != nil {
			t.Fatalf("Failed to export: %v", err)
		}

		fresh, err := app.New(&app.Config{DataDir: filepath.Join(tmpDir, "fresh")})
		if err != nil {
			t.Fatalf("Failed to create fresh app: %v", err)
		}
		defer fresh.Close()

		folders, documents, err := fresh.Store.ImportFile(exportPath)
		if err != nil {
			t.Fatalf("Failed to import: %v", err)
		}
		if folders != 1 || documents != 1 {
			t.Errorf("Expected 1 folder and 1 document, got %d and %d", folders, documents)
		}
	})
}
