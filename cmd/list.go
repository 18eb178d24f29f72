package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
)

var titleCaser = cases.Title(language.English)

func NewListCmd(kb **app.App) *cobra.Command {
	var (
		listFolder   string
		listCategory string
		listJSON     bool
	)

	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List documents",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			docs := a.Store.Documents()

			if listFolder != "" {
				f := resolveFolder(a, listFolder)
				if f == nil {
					return fmt.Errorf("folder not found: %s", listFolder)
				}
				docs = a.Index.ChildDocuments(f.ID)
			}

			if listCategory != "" {
				var filtered []*models.Document
				for _, d := range docs {
					if string(d.Category) == listCategory {
						filtered = append(filtered, d)
					}
				}
				docs = filtered
			}

			if len(docs) == 0 {
				if listJSON {
					fmt.Println("[]")
				} else {
					fmt.Println("No documents found")
				}
				return nil
			}

			if listJSON {
				return outputJSON(docs)
			}
			printDocumentsTable(a, docs)
			return nil
		},
	}

	cmd.Flags().StringVarP(&listFolder, "folder", "f", "", "Only documents in this folder")
	cmd.Flags().StringVarP(&listCategory, "category", "c", "", "Only documents in this category")
	cmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")

	return cmd
}

func printDocumentsTable(a *app.App, docs []*models.Document) {
	active := ""
	if doc := a.Session.Current(); doc != nil {
		active = doc.ID
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\tCATEGORY\tUPDATED\tTITLE\tWORDS")
	for _, d := range docs {
		marker := ""
		if d.ID == active {
			marker = "*"
		}
		category := fmt.Sprintf("%s %s", d.Category.Icon(), titleCaser.String(string(d.Category)))
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			marker, category, d.UpdatedAt.Format("2006-01-02"), truncateString(d.Title, 40), d.WordCount())
	}
	w.Flush()
}

// truncateString shortens s to maxLen runes. Counting runes rather than
// bytes keeps multi-byte titles from being cut mid-character.
func truncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen-3]) + "..."
}

func outputJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// resolveDocument finds a document by exact id, exact title, then unique
// case-insensitive title prefix.
func resolveDocument(a *app.App, arg string) *models.Document {
	if d := a.Store.DocumentByID(arg); d != nil {
		return d
	}
	for _, d := range a.Store.Documents() {
		if strings.EqualFold(d.Title, arg) {
			return d
		}
	}
	var match *models.Document
	for _, d := range a.Store.Documents() {
		if strings.HasPrefix(strings.ToLower(d.Title), strings.ToLower(arg)) {
			if match != nil {
				return nil // ambiguous
			}
			match = d
		}
	}
	return match
}
