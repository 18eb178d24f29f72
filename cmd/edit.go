package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
	"github.com/kbtools/kb/pkg/session"
)

func NewEditCmd(kb **app.App) *cobra.Command {
	var (
		title    string
		category string
	)

	cmd := &cobra.Command{
		Use:   "edit [title-or-id]",
		Short: "Edit a document in $EDITOR and save it",
		Long: `Open the document's content in the configured editor, then save the
result back. Without an argument, edits the currently open document.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			if len(args) > 0 {
				doc := resolveDocument(a, args[0])
				if doc == nil {
					return fmt.Errorf("document not found: %s", args[0])
				}
				a.Session.Open(doc.ID)
			}

			doc := a.Session.Current()
			if doc == nil {
				return session.ErrNoDocument
			}

			content, err := editInEditor(a.Editor, doc.Content)
			if err != nil {
				return err
			}

			newTitle := doc.Title
			if cmd.Flags().Changed("title") {
				newTitle = title
			}
			newCategory := doc.Category
			if cmd.Flags().Changed("category") {
				newCategory = models.Category(category)
			}

			updated, err := a.Session.Save(newTitle, content, newCategory)
			if err != nil {
				return fmt.Errorf("save document: %w", err)
			}
			fmt.Printf("Saved: %s\n", a.Session.BreadcrumbFor(updated.ID))

			// Auto-commit runs detached from the save; give its result a
			// moment to arrive so the outcome can be reported, then move on.
			if a.GitHub.AutoCommit && a.GitHub.Enabled() {
				select {
				case res := <-a.Syncer.Results():
					reportSyncResult(res)
				case <-time.After(15 * time.Second):
					fmt.Println("GitHub sync still running; check 'kb sync history' later")
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&title, "title", "t", "", "Set a new title while saving")
	cmd.Flags().StringVarP(&category, "category", "c", "", "Set a new category while saving")

	return cmd
}

// editInEditor round-trips content through the user's editor via a temp
// file and returns what was written back.
func editInEditor(editor, content string) (string, error) {
	if editor == "" {
		editor = os.Getenv("EDITOR")
	}
	if editor == "" {
		editor = "vim" // fallback
	}

	tmpDir, err := os.MkdirTemp("", "kb-edit-")
	if err != nil {
		return "", err
	}
	defer os.RemoveAll(tmpDir)

	path := filepath.Join(tmpDir, "document.md")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		return "", err
	}

	c := exec.Command(editor, path)
	c.Stdin = os.Stdin
	c.Stdout = os.Stdout
	c.Stderr = os.Stderr
	if err := c.Run(); err != nil {
		return "", fmt.Errorf("run editor: %w", err)
	}

	edited, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return string(edited), nil
}
