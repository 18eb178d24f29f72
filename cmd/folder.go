package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
)

func NewFolderCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "folder",
		Short: "Manage folders",
	}

	cmd.AddCommand(newFolderNewCmd(kb))
	cmd.AddCommand(newFolderListCmd(kb))
	cmd.AddCommand(newFolderDeleteCmd(kb))
	cmd.AddCommand(newFolderIconsCmd())

	return cmd
}

func newFolderNewCmd(kb **app.App) *cobra.Command {
	var (
		icon   string
		parent string
	)

	cmd := &cobra.Command{
		Use:   "new <name>",
		Short: "Create a new folder",
		Long: `Create a new folder, optionally nested under a parent.

Examples:
  kb folder new "Projects"
  kb folder new "Go" --parent Projects --icon 🚀`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			parentID := ""
			if parent != "" {
				folder := resolveFolder(a, parent)
				if folder == nil {
					return fmt.Errorf("parent folder not found: %s", parent)
				}
				parentID = folder.ID
			}

			folder, err := a.Store.CreateFolder(args[0], icon, parentID)
			if err != nil {
				return err
			}

			fmt.Printf("Created folder %s %s (%s)\n", folder.Icon, folder.Name, folder.ID)
			return nil
		},
	}

	cmd.Flags().StringVarP(&icon, "icon", "i", models.DefaultFolderIcon, "Folder icon (see 'kb folder icons')")
	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent folder by name or id")

	return cmd
}

func newFolderListCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "list",
		Short:   "List all folders",
		Aliases: []string{"ls"},
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			folders := a.Store.Folders()
			if len(folders) == 0 {
				fmt.Println("No folders yet")
				return nil
			}

			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "ICON\tNAME\tPATH\tID")
			for _, f := range folders {
				path := folderPath(a, f)
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.Icon, f.Name, path, f.ID)
			}
			return w.Flush()
		},
	}

	return cmd
}

func newFolderDeleteCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <name-or-id>",
		Short: "Delete an empty folder",
		Long:  "Delete a folder. Folders still containing documents or subfolders are refused.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			folder := resolveFolder(a, args[0])
			if folder == nil {
				return fmt.Errorf("folder not found: %s", args[0])
			}
			if err := a.Store.RemoveFolder(folder.ID); err != nil {
				return err
			}
			fmt.Printf("Deleted folder %s\n", folder.Name)
			return nil
		},
	}

	return cmd
}

func newFolderIconsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "icons",
		Short: "Show the folder icon palette",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(strings.Join(models.FolderIcons, "  "))
			return nil
		},
	}
}

// resolveFolder finds a folder by exact id, then by case-insensitive name.
func resolveFolder(a *app.App, arg string) *models.Folder {
	if f := a.Store.FolderByID(arg); f != nil {
		return f
	}
	for _, f := range a.Store.Folders() {
		if strings.EqualFold(f.Name, arg) {
			return f
		}
	}
	return nil
}

// folderPath renders the ancestor chain as "A / B / C".
func folderPath(a *app.App, f *models.Folder) string {
	var names []string
	for _, p := range a.Index.PathTo(f.ID) {
		names = append(names, p.Name)
	}
	return strings.Join(names, " / ")
}
