package video

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"

	ffmpegbin "github.com/embatbr/subtitler/internal/ffmpeg"
)

// defines interface for pulling subtitle tracks out of video containers
type Extractor interface {
	ExtractSubtitles(
		ctx context.Context,
		videoPath, outputPath string,
		opts ExtractSubtitleOptions,
	) error
}

// holds options for subtitle extraction
type ExtractSubtitleOptions struct {
	Stream int // position among the subtitle streams, 0 is the first
}

func DefaultExtractSubtitleOptions() ExtractSubtitleOptions {
	return ExtractSubtitleOptions{Stream: 0}
}

// default implementation using ffmpeg
type FFmpegExtractor struct {
	ffmpegPath func() (string, error)
}

func NewExtractor() *FFmpegExtractor {
	return &FFmpegExtractor{ffmpegPath: ffmpegbin.FFmpegPath}
}

// converts one embedded text subtitle stream to SubRip
func (e *FFmpegExtractor) ExtractSubtitles(
	ctx context.Context,
	videoPath, outputPath string,
	opts ExtractSubtitleOptions,
) error {
	if _, err := os.Stat(videoPath); os.IsNotExist(err) {
		return fmt.Errorf("video file not found: %s", videoPath)
	}
	if opts.Stream < 0 {
		return fmt.Errorf("subtitle stream must not be negative, got %d", opts.Stream)
	}

	outputDir := filepath.Dir(outputPath)
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	ffmpegPath, err := e.ffmpegPath()
	if err != nil {
		return err
	}

	var stderr bytes.Buffer
	cmd := extractStream(videoPath, outputPath, opts).
		SetFfmpegPath(ffmpegPath).
		WithErrorOutput(&stderr).
		Compile()

	if err := runContext(ctx, cmd); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("ffmpeg extraction canceled: %w", ctxErr)
		}
		return fmt.Errorf(
			"ffmpeg extraction failed: %w: %s",
			err,
			lastLine(stderr.String()),
		)
	}

	return nil
}

func extractStream(videoPath, outputPath string, opts ExtractSubtitleOptions) *ffmpeg.Stream {
	// one subtitle stream, converted to SubRip
	kwargs := ffmpeg.KwArgs{
		"map": fmt.Sprintf("0:s:%d", opts.Stream),
		"c:s": "srt",
	}

	return ffmpeg.Input(videoPath).
		Output(outputPath, kwargs).
		OverWriteOutput()
}

// runs cmd and kills it when ctx is done
func runContext(ctx context.Context, cmd *exec.Cmd) error {
	if err := cmd.Start(); err != nil {
		return err
	}

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		_ = cmd.Process.Kill()
		<-done
		return ctx.Err()
	}
}

func lastLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// reports whether the path looks like a video container
func IsVideoFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mkv", ".mp4", ".m4v", ".mov", ".webm", ".avi", ".ts", ".m2ts":
		return true
	default:
		return false
	}
}
