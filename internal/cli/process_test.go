package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/embatbr/subtitler/internal/config"
	"github.com/embatbr/subtitler/internal/logging"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const sampleSRT = `1
00:00:01,000 --> 00:00:03,000
Hello

2
00:00:04,000 --> 00:00:06,000
[door slams]

3
00:00:07,000 --> 00:00:09,000
ANNA: World
`

func writeSample(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "movie.srt")
	if err := os.WriteFile(path, []byte(sampleSRT), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

func TestProcessShiftsAndCleans(t *testing.T) {
	input := writeSample(t)
	output := filepath.Join(filepath.Dir(input), "out.srt")

	opts := processOptions{Offset: "00:00:02,000", NoDeaf: true}
	result, err := process(logging.NewNop(), config.Default(), input, output, opts)
	if err != nil {
		t.Fatalf("process returned error: %v", err)
	}

	if result.Captions != 2 || result.Removed != 1 || !result.Shifted {
		t.Errorf("unexpected result %+v", result)
	}

	want := "1\n00:00:03,000 --> 00:00:05,000\nHello\n\n2\n00:00:09,000 --> 00:00:11,000\nWorld\n"
	if got := readFile(t, output); got != want {
		t.Errorf("output = %q, want %q", got, want)
	}
	if readFile(t, input) != sampleSRT {
		t.Error("input file should be untouched when an output path is given")
	}
}

func TestProcessSelectedIndexes(t *testing.T) {
	input := writeSample(t)

	opts := processOptions{Offset: "-00:00:00,500", Indexes: "2-3"}
	if _, err := process(logging.NewNop(), nil, input, input, opts); err != nil {
		t.Fatalf("process returned error: %v", err)
	}

	got := readFile(t, input)
	for _, want := range []string{
		"00:00:01,000 --> 00:00:03,000",
		"00:00:03,500 --> 00:00:05,500",
		"00:00:06,500 --> 00:00:08,500",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestProcessWarnsOnNegativeTimes(t *testing.T) {
	input := writeSample(t)
	core, logs := observer.New(zapcore.WarnLevel)

	opts := processOptions{Offset: "-00:00:05,000"}
	result, err := process(logging.New(core), nil, input, input, opts)
	if err != nil {
		t.Fatalf("process returned error: %v", err)
	}

	if result.Clamped != 2 {
		t.Errorf("Clamped = %d, want 2", result.Clamped)
	}
	if logs.Len() != 1 {
		t.Fatalf("expected 1 warning, got %d", logs.Len())
	}

	got := readFile(t, input)
	if !strings.HasPrefix(got, "1\n00:00:00,000 --> 00:00:00,000\nHello\n") {
		t.Errorf("expected first caption clamped to zero, got:\n%s", got)
	}
	if !strings.Contains(got, "00:00:00,000 --> 00:00:01,000") {
		t.Errorf("expected second caption to straddle zero, got:\n%s", got)
	}
}

func TestProcessRejectsBadArgumentsBeforeWriting(t *testing.T) {
	tests := []struct {
		name string
		opts processOptions
	}{
		{"bad time", processOptions{Offset: "2s"}},
		{"bad indexes", processOptions{Offset: "00:00:01,000", Indexes: "x"}},
		{"indexes without time", processOptions{Indexes: "1"}},
		{"index out of range", processOptions{Offset: "00:00:01,000", Indexes: "9"}},
		{"huge index range", processOptions{Offset: "00:00:01,000", Indexes: "1-2000000000"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := writeSample(t)
			output := filepath.Join(filepath.Dir(input), "out.srt")

			_, err := process(logging.NewNop(), nil, input, output, tt.opts)
			if err == nil {
				t.Fatal("expected error")
			}
			if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
				t.Errorf("output should not be written on error")
			}
		})
	}
}

func TestProcessStrictAndLenient(t *testing.T) {
	content := "1\n00:00:01,000 --> 00:00:02,000\nHi\n\n2\n00:00:03.000 --> 00:00:04,000\nThere\n"
	input := filepath.Join(t.TempDir(), "bad.srt")
	if err := os.WriteFile(input, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	output := filepath.Join(filepath.Dir(input), "out.srt")

	_, err := process(logging.NewNop(), nil, input, output, processOptions{})
	if err == nil || !strings.Contains(err.Error(), "line 6") {
		t.Errorf("expected parse error at line 6, got %v", err)
	}

	core, logs := observer.New(zapcore.WarnLevel)
	result, err := process(logging.New(core), nil, input, output, processOptions{Lenient: true})
	if err != nil {
		t.Fatalf("lenient process returned error: %v", err)
	}
	if result.Captions != 1 {
		t.Errorf("expected malformed caption to be absorbed, got %d captions", result.Captions)
	}

	warnings := logs.FilterMessage("Malformed time period kept as caption text").All()
	if len(warnings) != 1 {
		t.Fatalf("expected 1 absorb warning, got %d", len(warnings))
	}
	if line := warnings[0].ContextMap()["line"]; line != int64(6) {
		t.Errorf("warning line = %v, want 6", line)
	}
}

func TestShiftCommandOverwritesInput(t *testing.T) {
	input := writeSample(t)

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"shift", input, "--time=-00:00:01,000"})
	defer rootCmd.SetArgs(nil)

	if err := Execute(); err != nil {
		t.Fatalf("Execute returned error: %v", err)
	}

	got := readFile(t, input)
	if !strings.HasPrefix(got, "1\n00:00:00,000 --> 00:00:02,000\nHello\n") {
		t.Errorf("unexpected output:\n%s", got)
	}
	if !strings.Contains(out.String(), "Captions: 3") {
		t.Errorf("unexpected command output %q", out.String())
	}
}
