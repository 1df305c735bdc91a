package subtitle

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

var (
	reSpaces        = regexp.MustCompile(`\s{2,}`)
	reSpeakerLabels = regexp.MustCompile(`^(\s*-?\s*)[A-Z][A-Z']+(?: [A-Z][A-Z']*)*:(?:\s+|$)`)
)

// rewrites the text of one caption, "" means the caption should go
type CaptionFilter interface {
	Clean(text string) string
}

type Delimiter struct {
	Left  string
	Right string
}

// DeafRules selects what hearing-impaired annotations get removed.
// Delimiters: sound descriptions such as [door slams] or (laughs).
// SpeakerLabels: leading upper-case names, e.g. "JOHN: Hi" becomes "Hi".
// MusicSymbols: any line containing one of these runes is dropped.
// DropLineContains: any line containing one of these substrings is dropped.
type DeafRules struct {
	Delimiters       []Delimiter
	SpeakerLabels    bool
	MusicSymbols     string
	DropLineContains []string
}

func DefaultDeafRules() DeafRules {
	return DeafRules{
		Delimiters: []Delimiter{
			{Left: "[", Right: "]"},
			{Left: "(", Right: ")"},
		},
		SpeakerLabels: true,
		MusicSymbols:  "♪♫♬",
	}
}

type DeafFilter struct {
	rules      DeafRules
	delimiters []*regexp.Regexp
}

func NewDeafFilter(rules DeafRules) (*DeafFilter, error) {
	f := &DeafFilter{rules: rules}
	for _, d := range rules.Delimiters {
		if d.Left == "" || d.Right == "" {
			return nil, fmt.Errorf("delimiter pair %q/%q must not be empty", d.Left, d.Right)
		}
		re, err := regexp.Compile(
			regexp.QuoteMeta(d.Left) + `.*?` + regexp.QuoteMeta(d.Right),
		)
		if err != nil {
			return nil, fmt.Errorf("compile delimiter %s%s: %w", d.Left, d.Right, err)
		}
		f.delimiters = append(f.delimiters, re)
	}
	return f, nil
}

// Clean applies the rules line by line and joins what is left.
func (f *DeafFilter) Clean(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if line = f.cleanLine(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

func (f *DeafFilter) cleanLine(line string) string {
	if f.rules.MusicSymbols != "" &&
		strings.ContainsAny(line, f.rules.MusicSymbols) {
		return ""
	}
	for _, s := range f.rules.DropLineContains {
		if s != "" && strings.Contains(line, s) {
			return ""
		}
	}

	for _, re := range f.delimiters {
		line = re.ReplaceAllString(line, "")
	}

	if f.rules.SpeakerLabels {
		line = reSpeakerLabels.ReplaceAllString(line, "$1")
	}

	line = strings.TrimSpace(reSpaces.ReplaceAllString(line, " "))
	if !hasAlphanumeric(line) {
		return ""
	}
	return line
}

func hasAlphanumeric(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

// Filter rewrites every caption's text through f and removes the captions
// left empty. It returns how many were removed.
func (d *Document) Filter(f CaptionFilter) int {
	kept := d.Captions[:0]
	removed := 0
	for _, c := range d.Captions {
		c.Text = f.Clean(c.Text)
		if c.Text == "" {
			removed++
			continue
		}
		kept = append(kept, c)
	}
	d.Captions = kept
	return removed
}
