package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/aretw0/jot/internal/config"
)

var (
	cfgFile string
	verbose bool

	// cfg is loaded before every command runs.
	cfg *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "jot",
	Short: "Create, edit, list and delete short text notes",
	Long: `jot keeps short text notes in a local store (a JSON file, SQLite or memory)
or, when an API base URL is configured, on a remote notes server.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := bindFlags(cmd); err != nil {
			return err
		}
		if err := config.Init(cfgFile); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		cfg = loaded

		level := parseLevel(cfg.Logging.Level)
		if verbose {
			level = slog.LevelDebug
		}
		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
		return nil
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $XDG_CONFIG_HOME/jot/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().String("api-base", "", "Base URL of the notes API (enables remote mode)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory of the local store")
	rootCmd.PersistentFlags().String("storage", "", "Local storage driver: file, sqlite or memory")
}

// bindFlags maps the persistent flags onto their configuration keys.
func bindFlags(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	for key, name := range map[string]string{
		"api.base_url":   "api-base",
		"storage.dir":    "data-dir",
		"storage.driver": "storage",
	} {
		if err := viper.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	return nil
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "error":
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}
