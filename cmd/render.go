package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/ChheanSilapin/yt-tool/internal/transcript"
	"github.com/ChheanSilapin/yt-tool/internal/worker"

	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render <transcript>",
	Short: "Render one transcript into an ASS caption file",
	Long: `Render a word-level transcript (.json, .srt, .vtt, .ass) into an ASS subtitle
file with karaoke-style word highlighting.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

var (
	renderStyle     styleFlags
	renderOutput    string
	renderAlso      []string
	renderSaveJSON  bool
	renderSkipEmpty bool
)

func init() {
	renderStyle.register(renderCmd.Flags())
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "output ASS path (default: <input>.ass)")
	renderCmd.Flags().StringSliceVar(&renderAlso, "also", nil, "also write plain captions: srt, vtt")
	renderCmd.Flags().BoolVar(&renderSaveJSON, "save-json", false, "save the normalized words as JSON alongside the captions")
	renderCmd.Flags().BoolVar(&renderSkipEmpty, "skip-empty", false, "do not write a document when there is nothing to caption")

	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	absPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", args[0])
	}
	if !transcript.Supported(absPath) {
		return fmt.Errorf("unsupported file type: %s", filepath.Ext(absPath))
	}

	cfg, err := renderStyle.buildConfig(cmd.Flags())
	if err != nil {
		return err
	}
	exports, err := parseExports(renderAlso)
	if err != nil {
		return err
	}

	seed := renderStyle.resolveSeed(cmd.Flags())
	slog.Debug("chunk seed", "seed", seed)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := worker.Run(ctx, worker.Options{
		InputPath:  absPath,
		OutputPath: renderOutput,
		Config:     cfg,
		Seed:       seed,
		Exports:    exports,
		SaveJSON:   renderSaveJSON,
		SkipEmpty:  renderSkipEmpty,
	})
	if err != nil {
		return err
	}

	if !quiet {
		slog.Info("done", "output", outcome.Output, "cues", outcome.Cues, "seed", outcome.Seed)
	}
	return nil
}
