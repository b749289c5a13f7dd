package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/ChheanSilapin/yt-tool/internal/pipeline"
	"github.com/ChheanSilapin/yt-tool/internal/transcript"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/spf13/cobra"
)

var previewCmd = &cobra.Command{
	Use:   "preview <transcript>",
	Short: "Print the caption cues of a transcript without writing files",
	Args:  cobra.ExactArgs(1),
	RunE:  runPreview,
}

var previewStyle styleFlags

func init() {
	previewStyle.register(previewCmd.Flags())
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := previewStyle.buildConfig(cmd.Flags())
	if err != nil {
		return err
	}
	words, err := transcript.ReadFile(args[0])
	if err != nil {
		return err
	}

	seed := previewStyle.resolveSeed(cmd.Flags())
	result, err := pipeline.Process(words, pipeline.Options{Config: cfg, Seed: seed})
	if err != nil {
		return err
	}

	renderCueTable(cmd.OutOrStdout(), result.Cues)
	if !quiet {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d words, %d chunks, %d cues (seed %d)\n",
			len(result.Words), len(result.Chunks), len(result.Cues), seed)
	}
	return nil
}

func renderCueTable(w io.Writer, cues []pipeline.Cue) {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"#", "Start", "End", "Text"})
	for i, c := range cues {
		tw.AppendRow(table.Row{
			i + 1,
			strconv.FormatFloat(c.Start, 'f', 2, 64),
			strconv.FormatFloat(c.End, 'f', 2, 64),
			c.Text,
		})
	}
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, Align: text.AlignRight},
		{Number: 3, Align: text.AlignRight},
		{Number: 4, AlignHeader: text.AlignLeft},
	})
	tw.Render()
}
