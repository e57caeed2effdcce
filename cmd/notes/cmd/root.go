package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"notetaking-be/internal/pkg/logger"
	"notetaking-be/pkg/noteclient"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

const cliModule = "notes_cli"

var (
	cfgFile   string
	serverURL string

	log   logger.ILogger = logger.NewNopLogger()
	store *noteclient.Store
)

var rootCmd = &cobra.Command{
	Use:   "notes",
	Short: "Command line client for the notes server",
	Long: `notes lists, creates, edits and deletes text, audio and image notes
on a running notes server.

Configuration is read from ~/.notes/config.yaml, ./config.yaml or NOTES_* environment
variables; flags take precedence.`,
	PersistentPreRunE: setupStore,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		log.Error(cliModule, "Command failed", map[string]interface{}{"error": err})
		fmt.Fprintln(os.Stderr, color.RedString("Error: %v", err))
		_ = log.Sync()
		os.Exit(1)
	}
	_ = log.Sync()
}

func setupStore(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(); err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if serverURL != "" {
		viper.Set("server_url", serverURL)
	}

	if path := viper.GetString("log_file"); path != "" {
		log = logger.NewIsolatedLogger(path)
	}

	timeout := time.Duration(viper.GetInt("timeout_seconds")) * time.Second
	client := noteclient.NewClient(viper.GetString("server_url"), noteclient.WithTimeout(timeout))

	store = noteclient.NewStore(client, noteclient.DefaultDetailTTL)
	store.Subscribe(func(s noteclient.State) {
		details := map[string]interface{}{
			"notes":   len(s.Notes),
			"loading": s.Loading,
		}
		if s.Err != nil {
			details["error"] = s.Err.Error()
		}
		log.Debug(cliModule, "Store updated", details)
	})

	log.Debug(cliModule, "Client configured", map[string]interface{}{
		"command":    cmd.Name(),
		"server_url": viper.GetString("server_url"),
		"timeout":    timeout.String(),
	})
	return nil
}

func loadConfig() error {
	viper.SetDefault("server_url", "http://localhost:5000")
	viper.SetDefault("timeout_seconds", 30)
	viper.SetDefault("log_file", "")

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".notes"))
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NOTES")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ~/.notes/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "notes server URL")

	rootCmd.AddCommand(listCmd, showCmd, createCmd, updateCmd, deleteCmd)
}
