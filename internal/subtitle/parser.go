package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

const (
	periodArrow = "-->"
	maxLineSize = 1024 * 1024
)

var periodRegex = regexp.MustCompile(
	`^\s*(\d{2}:\d{2}:\d{2},\d{3})\s*-->\s*(\d{2}:\d{2}:\d{2},\d{3})\s*$`,
)

type ParseOptions struct {
	// absorb malformed period lines into caption text instead of failing
	Lenient bool

	// called for each malformed period line absorbed in lenient mode
	OnAbsorb func(*ParseError)
}

type sourceLine struct {
	number int
	text   string
}

type period struct {
	ok    bool
	start Timestamp
	end   Timestamp
}

func Parse(text string, opts ParseOptions) (*Document, error) {
	return ParseReader(strings.NewReader(text), opts)
}

// ParseReader builds a Document from SubRip text. Blank lines are dropped
// before anything else, including blank lines inside a caption body. The line
// right before each period line is the sequence number and is discarded;
// numbering is regenerated on render.
func ParseReader(r io.Reader, opts ParseOptions) (*Document, error) {
	lines, err := readLines(r)
	if err != nil {
		return nil, err
	}

	periods := make([]period, len(lines))
	for i, line := range lines {
		p, err := classifyLine(line, opts)
		if err != nil {
			return nil, err
		}
		periods[i] = p
	}

	doc := &Document{}
	var current *Caption
	var textLines []string

	flush := func() {
		if current == nil {
			return
		}
		current.Text = strings.Join(textLines, "\n")
		doc.Captions = append(doc.Captions, *current)
		current = nil
		textLines = nil
	}

	for i, line := range lines {
		if periods[i].ok {
			flush()
			current = &Caption{Start: periods[i].start, End: periods[i].end}
			continue
		}

		// sequence number of the next caption
		if i+1 < len(lines) && periods[i+1].ok {
			continue
		}

		if current != nil {
			textLines = append(textLines, line.text)
		}
	}
	flush()

	return doc, nil
}

func readLines(r io.Reader) ([]sourceLine, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	var lines []sourceLine
	lineNum := 0

	for scanner.Scan() {
		line := scanner.Text()
		lineNum++

		if lineNum == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}

		if strings.TrimSpace(line) == "" {
			continue
		}

		lines = append(lines, sourceLine{number: lineNum, text: line})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading subtitle data: %w", err)
	}

	return lines, nil
}

// classifyLine tells period lines from content. In strict mode a line that
// carries the arrow token but does not match the period shape is an error.
func classifyLine(line sourceLine, opts ParseOptions) (period, error) {
	matches := periodRegex.FindStringSubmatch(line.text)
	if len(matches) == 3 {
		start, err := ParseTimestamp(matches[1])
		if err != nil {
			return period{}, &ParseError{Line: line.number, Text: line.text, Err: err}
		}
		end, err := ParseTimestamp(matches[2])
		if err != nil {
			return period{}, &ParseError{Line: line.number, Text: line.text, Err: err}
		}
		return period{ok: true, start: start, end: end}, nil
	}

	if !strings.Contains(line.text, periodArrow) {
		return period{}, nil
	}

	perr := &ParseError{
		Line: line.number,
		Text: line.text,
		Err:  periodTokenError(line.text),
	}
	if !opts.Lenient {
		return period{}, perr
	}
	if opts.OnAbsorb != nil {
		opts.OnAbsorb(perr)
	}
	return period{}, nil
}

// finds the first side of the arrow that is not a clean timestamp
func periodTokenError(text string) error {
	start, end, _ := strings.Cut(text, periodArrow)
	for _, token := range []string{start, end} {
		token = strings.TrimSpace(token)
		if _, err := ParseTimestamp(token); err != nil {
			return err
		}
	}
	return &FormatError{Text: strings.TrimSpace(text)}
}
