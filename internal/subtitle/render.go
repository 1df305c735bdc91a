package subtitle

import (
	"fmt"
	"strings"
	"unicode"
)

// Render serializes the document as SubRip text numbered from 1, with
// trailing whitespace trimmed. An empty document renders as "".
func (d *Document) Render() string {
	var sb strings.Builder
	for i, c := range d.Captions {
		// index (1-based)
		sb.WriteString(fmt.Sprintf("%d\n", i+1))

		// timestamps: 00:00:00,000 --> 00:00:00,000
		sb.WriteString(fmt.Sprintf("%s --> %s\n", c.Start, c.End))

		sb.WriteString(c.Text)
		sb.WriteString("\n\n")
	}

	return strings.TrimRightFunc(sb.String(), unicode.IsSpace)
}
