package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	kbsync "github.com/kbtools/kb/pkg/sync"
)

func NewSyncCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Push documents to the configured remote",
	}

	cmd.AddCommand(newSyncTestCmd(kb))
	cmd.AddCommand(newSyncPushCmd(kb))
	cmd.AddCommand(newSyncHistoryCmd(kb))
	cmd.AddCommand(newSyncConfigCmd(kb))

	return cmd
}

func newSyncTestCmd(kb **app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Test the remote connection",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			if !a.GitHub.Enabled() {
				return fmt.Errorf("sync is not configured; run 'kb sync config --owner <owner> --repo <repo>'")
			}

			info, err := a.Syncer.Provider().TestConnection(cmd.Context())
			if err != nil {
				return fmt.Errorf("connection failed: %w", err)
			}

			fmt.Printf("Repository %s/%s is reachable\n", a.GitHub.Owner, a.GitHub.Repo)
			if info.Private {
				fmt.Println("Visibility: private")
			} else {
				fmt.Println("Visibility: public")
			}
			if info.HasToken {
				fmt.Println("Token: configured")
			} else {
				fmt.Println("Token: not set (saves fall back to prefilled issue links)")
			}
			if info.Detail != "" {
				fmt.Println(info.Detail)
			}
			return nil
		},
	}
}

func newSyncPushCmd(kb **app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "push [title-or-id]",
		Short: "Push a document to the remote",
		Long: `Push a document to the configured repository. With no argument
the currently open document is pushed.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			if !a.GitHub.Enabled() {
				return fmt.Errorf("sync is not configured; run 'kb sync config --owner <owner> --repo <repo>'")
			}

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
			filename := kbsync.Filename(doc.Title)
			message := kbsync.Message(a.GitHub.CommitTemplate, filename)

			item, err := a.Syncer.Push(cmd.Context(), filename, doc.Content, message)
			if err != nil {
				return fmt.Errorf("push failed: %w", err)
			}
			reportSyncResult(kbsync.Result{
				Provider: a.Syncer.Provider().Name(),
				Filename: filename,
				Item:     item,
			})
			return nil
		},
	}
}

func newSyncHistoryCmd(kb **app.App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded pushes",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			history := a.Syncer.History()
			if len(history) == 0 {
				fmt.Println("No sync history")
				return nil
			}
			if limit > 0 && len(history) > limit {
				history = history[:limit]
			}

			for _, e := range history {
				status := e.Status
				if status == "manual_pending" {
					status = "manual"
				}
				fmt.Printf("%s  %-8s %s\n", e.Timestamp.Format("2006-01-02 15:04"), status, e.Filename)
				if e.IssueURL != "" {
					fmt.Printf("  %s\n", e.IssueURL)
				}
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Number of entries to show (0 for all)")

	return cmd
}

func newSyncConfigCmd(kb **app.App) *cobra.Command {
	var (
		owner      string
		repo       string
		token      string
		branch     string
		template   string
		autoCommit bool
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show or update sync configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb

			changed := false
			if cmd.Flags().Changed("owner") {
				a.GitHub.Owner = owner
				changed = true
			}
			if cmd.Flags().Changed("repo") {
				a.GitHub.Repo = repo
				changed = true
			}
			if cmd.Flags().Changed("token") {
				a.GitHub.Token = token
				changed = true
			}
			if cmd.Flags().Changed("branch") {
				a.GitHub.Branch = branch
				changed = true
			}
			if cmd.Flags().Changed("template") {
				a.GitHub.CommitTemplate = template
				changed = true
			}
			if cmd.Flags().Changed("auto-commit") {
				a.GitHub.AutoCommit = autoCommit
				changed = true
			}

			if changed {
				a.GitHub.ApplyDefaults()
				if err := a.SaveGitHubConfig(); err != nil {
					return fmt.Errorf("failed to save config: %w", err)
				}
				fmt.Println("Sync configuration saved")
				return nil
			}

			fmt.Printf("Owner:       %s\n", orUnset(a.GitHub.Owner))
			fmt.Printf("Repo:        %s\n", orUnset(a.GitHub.Repo))
			fmt.Printf("Branch:      %s\n", orUnset(a.GitHub.Branch))
			fmt.Printf("Token:       %s\n", maskToken(a.GitHub.Token))
			fmt.Printf("Template:    %s\n", a.GitHub.CommitTemplate)
			fmt.Printf("Auto-commit: %v\n", a.GitHub.AutoCommit)
			return nil
		},
	}

	cmd.Flags().StringVar(&owner, "owner", "", "Repository owner")
	cmd.Flags().StringVar(&repo, "repo", "", "Repository name")
	cmd.Flags().StringVar(&token, "token", "", "Personal access token")
	cmd.Flags().StringVar(&branch, "branch", "", "Branch name")
	cmd.Flags().StringVar(&template, "template", "", "Commit message template ({filename} is expanded)")
	cmd.Flags().BoolVar(&autoCommit, "auto-commit", false, "Push automatically on save")

	return cmd
}

// reportSyncResult prints one push outcome. Shared with the edit command's
// auto-commit wait.
func reportSyncResult(res kbsync.Result) {
	if res.Err != nil {
		fmt.Printf("Sync failed for %s: %v\n", res.Filename, res.Err)
		return
	}
	if res.Item == nil {
		return
	}
	if res.Item.Manual {
		fmt.Printf("No token configured; open this link to file the save manually:\n  %s\n", res.Item.URL)
		return
	}
	fmt.Printf("Created %s for %s\n  %s\n", res.Item.Title, res.Filename, res.Item.URL)
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

func maskToken(token string) string {
	if token == "" {
		return "(not set)"
	}
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", 8) + token[len(token)-4:]
}
