package subtitle

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	msPerHour   = 60 * 60 * 1000
	msPerMinute = 60 * 1000
	msPerSecond = 1000
)

var timestampRegex = regexp.MustCompile(`^(\d{2}):(\d{2}):(\d{2}),(\d{3})$`)

// point in the media as total elapsed milliseconds
type Timestamp int64

// direction of a shift
type Sign int

const (
	Forward  Sign = 1
	Backward Sign = -1
)

func NewTimestamp(hours, minutes, seconds, millis int) Timestamp {
	return Timestamp(
		int64(hours)*msPerHour +
			int64(minutes)*msPerMinute +
			int64(seconds)*msPerSecond +
			int64(millis),
	)
}

// ParseTimestamp accepts exactly HH:MM:SS,mmm. Minutes and seconds are not
// range checked, so 00:99:99,000 is a valid input.
func ParseTimestamp(text string) (Timestamp, error) {
	matches := timestampRegex.FindStringSubmatch(text)
	if len(matches) != 5 {
		return 0, &FormatError{Text: text}
	}

	// the regex guarantees four digit groups, Atoi cannot fail
	h, _ := strconv.Atoi(matches[1])
	m, _ := strconv.Atoi(matches[2])
	s, _ := strconv.Atoi(matches[3])
	ms, _ := strconv.Atoi(matches[4])

	return NewTimestamp(h, m, s, ms), nil
}

// ParseOffset reads a shift argument of the form [+|-]HH:MM:SS,mmm.
func ParseOffset(text string) (Timestamp, Sign, error) {
	sign := Forward
	switch {
	case strings.HasPrefix(text, "-"):
		sign = Backward
		text = text[1:]
	case strings.HasPrefix(text, "+"):
		text = text[1:]
	}

	delta, err := ParseTimestamp(text)
	if err != nil {
		return 0, Forward, err
	}
	return delta, sign, nil
}

// Add returns t + sign*delta. The result may be negative.
func (t Timestamp) Add(delta Timestamp, sign Sign) Timestamp {
	return t + Timestamp(sign)*delta
}

// String renders HH:MM:SS,mmm. Hours are never wrapped; negative values
// render as 00:00:00,000.
func (t Timestamp) String() string {
	total := int64(t)
	if total < 0 {
		total = 0
	}

	hours := total / msPerHour
	minutes := (total % msPerHour) / msPerMinute
	seconds := (total % msPerMinute) / msPerSecond
	millis := total % msPerSecond

	return fmt.Sprintf("%02d:%02d:%02d,%03d", hours, minutes, seconds, millis)
}

func (t Timestamp) Duration() time.Duration {
	return time.Duration(t) * time.Millisecond
}

func (t Timestamp) IsNegative() bool {
	return t < 0
}
