package subtitle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Shift moves the start and end of every caption by sign*delta.
func (d *Document) Shift(delta Timestamp, sign Sign) {
	for i := range d.Captions {
		d.Captions[i].Start = d.Captions[i].Start.Add(delta, sign)
		d.Captions[i].End = d.Captions[i].End.Add(delta, sign)
	}
}

// IndexRange is an inclusive span of 1-based caption positions.
type IndexRange struct {
	First int
	Last  int
}

// ShiftSelected shifts only the captions covered by ranges. Every range is
// checked against the document before any caption is touched. No ranges
// shifts every caption.
func (d *Document) ShiftSelected(delta Timestamp, sign Sign, ranges []IndexRange) error {
	if len(ranges) == 0 {
		d.Shift(delta, sign)
		return nil
	}

	for _, r := range ranges {
		if r.First < 1 || r.Last < r.First || r.Last > len(d.Captions) {
			return fmt.Errorf(
				"%w: %s (document has %d captions)",
				ErrIndexOutOfRange,
				r,
				len(d.Captions),
			)
		}
	}

	for _, r := range mergeRanges(ranges) {
		for i := r.First - 1; i < r.Last; i++ {
			c := &d.Captions[i]
			c.Start = c.Start.Add(delta, sign)
			c.End = c.End.Add(delta, sign)
		}
	}

	return nil
}

func (r IndexRange) String() string {
	if r.First == r.Last {
		return strconv.Itoa(r.First)
	}
	return fmt.Sprintf("%d-%d", r.First, r.Last)
}

// ParseIndexes reads a comma separated list of 1-based caption positions and
// inclusive ranges, e.g. "1,3,5-7". Ranges are never expanded; the result is
// sorted with overlapping or adjacent ranges merged.
func ParseIndexes(text string) ([]IndexRange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	var ranges []IndexRange
	for _, part := range strings.Split(text, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			return nil, fmt.Errorf("empty element in index list %q", text)
		}

		lo, hi, isRange := strings.Cut(part, "-")
		first, err := parseIndex(lo)
		if err != nil {
			return nil, err
		}
		if !isRange {
			ranges = append(ranges, IndexRange{First: first, Last: first})
			continue
		}

		last, err := parseIndex(hi)
		if err != nil {
			return nil, err
		}
		if last < first {
			return nil, fmt.Errorf("invalid index range %q: end before start", part)
		}
		ranges = append(ranges, IndexRange{First: first, Last: last})
	}

	return mergeRanges(ranges), nil
}

func mergeRanges(ranges []IndexRange) []IndexRange {
	sorted := append([]IndexRange(nil), ranges...)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].First < sorted[j].First
	})

	var merged []IndexRange
	for _, r := range sorted {
		if n := len(merged); n > 0 && r.First <= merged[n-1].Last+1 {
			if r.Last > merged[n-1].Last {
				merged[n-1].Last = r.Last
			}
			continue
		}
		merged = append(merged, r)
	}
	return merged
}

func parseIndex(s string) (int, error) {
	s = strings.TrimSpace(s)
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid caption index %q: %w", s, err)
	}
	if i < 1 {
		return 0, fmt.Errorf("invalid caption index %d: indexes start at 1", i)
	}
	return i, nil
}
