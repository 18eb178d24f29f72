package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kbtools/kb/pkg/app"
)

var cfgFile string

// InitConfig wires viper: config file, env overrides and defaults.
func InitConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		configDir := filepath.Join(home, ".config", "kb")
		viper.AddConfigPath(configDir)
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("KB")

	viper.SetDefault("data_dir", filepath.Join(os.Getenv("HOME"), ".local", "share", "kb"))
	viper.SetDefault("editor", os.Getenv("EDITOR"))
	viper.SetDefault("python", "python3")

	// Missing config file is fine; defaults and env cover local use.
	_ = viper.ReadInConfig()
}

// InitApp constructs the application context from the loaded configuration.
func InitApp() (*app.App, error) {
	return app.New(&app.Config{
		DataDir: viper.GetString("data_dir"),
		Editor:  viper.GetString("editor"),
		Python:  viper.GetString("python"),
		GitHub:  viper.GetStringMap("github"),
	})
}

// AddGlobalFlags registers the flags shared by every subcommand.
func AddGlobalFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/kb/config.yaml)")
}
