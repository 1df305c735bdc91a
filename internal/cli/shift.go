package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var shiftCmd = &cobra.Command{
	Use:   "shift [subtitle_file]",
	Short: "Shift all captions of a SubRip file by a fixed offset",
	Long: `Parse a SubRip file, optionally clean and shift its captions, and write it back.

Sequence numbers are regenerated and blank-line spacing is normalized. Without
--output the input file is overwritten. Captions shifted before the start of
the media are written as 00:00:00,000.

A line with "-->" that is not a valid time period is an error. With --lenient
it is kept as caption text instead and logged as a warning; the written file
then still contains that line and fails a strict read.

Examples:
  subtitler shift movie.srt --time 00:00:02,500
  subtitler shift movie.srt --time=-00:00:01,000 -o fixed.srt
  subtitler shift movie.srt -t 00:00:03,000 --indexes 10-20
  subtitler shift movie.srt --nodeaf`,
	Args: cobra.ExactArgs(1),
	RunE: runShift,
}

func init() {
	rootCmd.AddCommand(shiftCmd)
	addProcessFlags(shiftCmd)
}

func runShift(cmd *cobra.Command, args []string) error {
	inputPath := args[0]
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("subtitle file not found: %s", inputPath)
	}

	if outputPath == "" {
		outputPath = inputPath
	}

	opts := processOptionsFromFlags(cmd, cfg)

	logger.Infow("Starting subtitle shift",
		"input", inputPath,
		"output", outputPath,
		"time", opts.Offset,
		"indexes", opts.Indexes,
		"nodeaf", opts.NoDeaf,
	)

	result, err := process(logger, cfg, inputPath, outputPath, opts)
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles written: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Captions: %d\n", result.Captions)
	if result.Removed > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "  Removed: %d\n", result.Removed)
	}

	return nil
}
