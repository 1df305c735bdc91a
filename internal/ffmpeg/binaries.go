package ffmpeg

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"
)

// overrides the PATH lookup
const EnvFFmpegPath = "SUBTITLER_FFMPEG_PATH"

var ErrNotFound = errors.New("ffmpeg binary not found")

var (
	ensureOnce sync.Once
	ensureErr  error
	ensurePath string
)

// FFmpegPath resolves the ffmpeg executable once per process.
func FFmpegPath() (string, error) {
	ensureOnce.Do(func() {
		ensurePath, ensureErr = resolve(os.Getenv(EnvFFmpegPath), exec.LookPath)
	})
	return ensurePath, ensureErr
}

func resolve(override string, lookPath func(string) (string, error)) (string, error) {
	if override != "" {
		if !fileExists(override) {
			return "", fmt.Errorf("%w: %s=%s does not exist", ErrNotFound, EnvFFmpegPath, override)
		}
		return override, nil
	}

	found, err := lookPath("ffmpeg" + executableSuffix())
	if err != nil {
		return "", fmt.Errorf(
			"%w: install ffmpeg or set %s: %v",
			ErrNotFound,
			EnvFFmpegPath,
			err,
		)
	}
	return found, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
