package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/kbtools/kb/pkg/app"
	"github.com/kbtools/kb/pkg/models"
)

func NewSettingsCmd(kb **app.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show or change application settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb
			s := a.Settings()

			fmt.Printf("theme:            %s\n", s.Theme)
			fmt.Printf("accent-color:     %s\n", s.AccentColor)
			fmt.Printf("editor-font-size: %d\n", s.EditorFontSize)
			fmt.Printf("auto-save:        %v\n", s.AutoSave)
			fmt.Printf("live-preview:     %v\n", s.LivePreview)
			fmt.Printf("python-preload:   %v\n", s.PythonPreload)
			return nil
		},
	}

	cmd.AddCommand(newSettingsSetCmd(kb))
	cmd.AddCommand(newSettingsResetCmd(kb))

	return cmd
}

func newSettingsSetCmd(kb **app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one setting",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb
			s := a.Settings()

			key, value := args[0], args[1]
			switch key {
			case "theme":
				s.Theme = value
			case "accent-color":
				s.AccentColor = value
			case "editor-font-size":
				n, err := strconv.Atoi(value)
				if err != nil {
					return fmt.Errorf("editor-font-size must be a number")
				}
				s.EditorFontSize = n
			case "auto-save":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("auto-save must be true or false")
				}
				s.AutoSave = b
			case "live-preview":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("live-preview must be true or false")
				}
				s.LivePreview = b
			case "python-preload":
				b, err := strconv.ParseBool(value)
				if err != nil {
					return fmt.Errorf("python-preload must be true or false")
				}
				s.PythonPreload = b
			default:
				return fmt.Errorf("unknown setting: %s", key)
			}

			if err := a.SaveSettings(s); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			fmt.Printf("Set %s to %s\n", key, value)
			return nil
		},
	}
}

func newSettingsResetCmd(kb **app.App) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Restore default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := *kb
			if err := a.SaveSettings(models.DefaultSettings()); err != nil {
				return fmt.Errorf("failed to save settings: %w", err)
			}
			fmt.Println("Settings restored to defaults")
			return nil
		},
	}
}
