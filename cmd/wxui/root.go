// Package main provides the CLI entrypoint for wxui.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/wxui/internal/config"
	"github.com/jmylchreest/wxui/internal/events"
	"github.com/jmylchreest/wxui/internal/settings"
)

// Build-time variables (set via ldflags)
var (
	version   = "dev"
	commit    = "unknown"
	buildTime = "unknown"
)

// Global configuration and state
var (
	cfg        *config.Config
	globalOpts struct {
		verbose      bool
		configPath   string
		settingsPath string
	}
	logger *slog.Logger

	settingsStore *settings.Store
	bus           *events.Bus
)

var errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F55023")).Bold(true)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "wxui",
	Short: "Theme and weather metric presenter",
	Long: `wxui manages the display theme and the weather metric strips.

It reads and writes the same preference file as wxuid, so changes made
here are picked up by a running daemon.

Running wxui without a subcommand opens the theme picker.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildTime),
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig(globalOpts.configPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		setupLogger()

		path := globalOpts.settingsPath
		if path == "" {
			path = cfg.ResolvedSettingsPath()
		}
		settingsStore, err = settings.Open(path, logger)
		if err != nil {
			return fmt.Errorf("failed to open settings: %w", err)
		}
		bus = events.NewBus()
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if bus != nil {
			bus.Close()
		}
		if settingsStore != nil {
			return settingsStore.Close()
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runThemeSelect(cmd, args)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		reportError(err)
		os.Exit(1)
	}
}

func main() {
	Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&globalOpts.verbose, "verbose", "v", false,
		"Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&globalOpts.configPath, "config", "",
		"Path to config file (default: ~/.config/wxui/config.toml)")
	rootCmd.PersistentFlags().StringVar(&globalOpts.settingsPath, "settings", "",
		"Path to settings file (default: ~/.config/wxui/settings.toml)")
}

// setupLogger configures the global slog logger.
func setupLogger() {
	level := parseLevel(cfg.Log.Level)
	if globalOpts.verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{
		Level: level,
	}

	// Log to stderr so stdout is clean for output
	handler := slog.NewTextHandler(os.Stderr, opts)
	logger = slog.New(handler)
	slog.SetDefault(logger)
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

// reportError prints an error for the user on stderr.
func reportError(err error) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("error:")+" "+err.Error())
}
