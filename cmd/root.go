package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ChheanSilapin/yt-tool/internal/config"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var (
	verbose    bool
	quiet      bool
	configPath string
	logFormat  string
)

var rootCmd = &cobra.Command{
	Use:   "yt-tool",
	Short: "Turn word-level transcripts into karaoke-style ASS captions",
	Long: `yt-tool converts a word-timestamped speech transcript into an ASS subtitle
document that shows a few words at a time and highlights the word being spoken.
The document is ready to be burned into short-form video by a compositor.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if useJSONLogs(logFormat, os.Stderr) {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

// useJSONLogs picks JSON for "json", text for "text" and, for "auto", text
// only when w is a terminal.
func useJSONLogs(format string, w io.Writer) bool {
	switch format {
	case "json":
		return true
	case "text":
		return false
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return !(isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd))
}

// loadConfig reads --config, or the per-user file when it exists.
func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath, false)
	}
	cfg, err := config.Load(config.DefaultPath(), true)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.DefaultPath(), err)
	}
	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file (.yaml or .toml)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "auto", "log format: text, json, auto")
}
