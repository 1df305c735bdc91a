package subtitle

// represents single displayed caption
type Caption struct {
	Start Timestamp
	End   Timestamp
	Text  string
}

// represents a whole subtitle file, captions kept in file order
type Document struct {
	Captions []Caption
}

func (d *Document) Len() int {
	return len(d.Captions)
}

// counts captions whose start or end fell below zero
func (d *Document) NegativeCount() int {
	n := 0
	for _, c := range d.Captions {
		if c.Start.IsNegative() || c.End.IsNegative() {
			n++
		}
	}
	return n
}
