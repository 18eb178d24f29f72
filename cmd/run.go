package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/runner"
)

func NewRunCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run [title-or-id]",
		Short: "Execute the python:run blocks of a document",
		Long: `Extract all python:run fenced code blocks from a document, join
them into one script and execute it with the configured interpreter.
With no argument the currently open document is used.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			var docID string
			if len(args) > 0 {
				doc := resolveDocument(a, args[0])
				if doc == nil {
					return fmt.Errorf("document not found: %s", args[0])
				}
				docID = doc.ID
			} else {
				cur := a.Session.Current()
				if cur == nil {
					return fmt.Errorf("no document is open")
				}
				docID = cur.ID
			}
			doc := a.Store.DocumentByID(docID)

			lines, done, err := a.Runner.Run(cmd.Context(), doc.Content)
			if err != nil {
				if errors.Is(err, runner.ErrNoBlocks) {
					fmt.Printf("%q has no python:run blocks\n", doc.Title)
					return nil
				}
				return err
			}

			for line := range lines {
				fmt.Println(line)
			}
			if err := <-done; err != nil {
				return fmt.Errorf("script failed: %w", err)
			}
			return nil
		},
	}

	return cmd
}
