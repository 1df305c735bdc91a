package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/embatbr/subtitler/internal/video"
	"github.com/spf13/cobra"
)

var extractCmd = &cobra.Command{
	Use:   "extract [video_file]",
	Short: "Extract an embedded subtitle track from a video file",
	Long: `Extract a text subtitle stream from a video container with ffmpeg and save it
as SubRip. The extracted captions go through the same processing as the shift
command, so they can be re-timed or cleaned in one step.

ffmpeg must be on PATH, or set SUBTITLER_FFMPEG_PATH.

Examples:
  subtitler extract movie.mkv
  subtitler extract movie.mkv --stream 1 -o movie.en.srt
  subtitler extract movie.mkv --time=-00:00:00,750 --nodeaf`,
	Args: cobra.ExactArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().
		IntP("stream", "s", 0, "Subtitle stream to extract (0 = first subtitle stream)")
	addProcessFlags(extractCmd)
}

func runExtract(cmd *cobra.Command, args []string) error {
	videoPath := args[0]

	stream, _ := cmd.Flags().GetInt("stream")
	outputPath, _ := cmd.Flags().GetString("output")

	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if !video.IsVideoFile(videoPath) {
		logger.Warnw("Input does not look like a video file, trying anyway",
			"input", videoPath,
		)
	}

	if outputPath == "" {
		outputPath = strings.TrimSuffix(videoPath, filepath.Ext(videoPath)) + ".srt"
	}

	tempDir, err := os.MkdirTemp("", "subtitler-*")
	if err != nil {
		return fmt.Errorf("failed to create temp directory: %w", err)
	}
	defer os.RemoveAll(tempDir)

	rawPath := filepath.Join(tempDir, "extracted.srt")

	logger.Infow("Extracting subtitles",
		"video", videoPath,
		"stream", stream,
		"output", outputPath,
	)

	extractor := video.NewExtractor()
	opts := video.ExtractSubtitleOptions{Stream: stream}

	ctx := context.Background()
	if err := extractor.ExtractSubtitles(ctx, videoPath, rawPath, opts); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	result, err := process(logger, cfg, rawPath, outputPath, processOptionsFromFlags(cmd, cfg))
	if err != nil {
		return err
	}

	absOutput, _ := filepath.Abs(outputPath)
	fmt.Fprintf(cmd.OutOrStdout(), "Subtitles extracted successfully: %s\n", absOutput)
	fmt.Fprintf(cmd.OutOrStdout(), "  Captions: %d\n", result.Captions)

	return nil
}
