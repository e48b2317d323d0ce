package document

// Point addresses a caret position: a block key and a rune offset within it.
type Point struct {
	Key    string
	Offset int
}

// Selection is an anchor/focus pair. The focus is where the caret is drawn;
// the anchor is where the selection started.
type Selection struct {
	Anchor Point
	Focus  Point
}

// Collapsed returns a caret selection at offset in the block with key.
func Collapsed(key string, offset int) Selection {
	p := Point{Key: key, Offset: offset}
	return Selection{Anchor: p, Focus: p}
}

// Span returns a selection from start to end within one block.
func Span(key string, start, end int) Selection {
	return Selection{
		Anchor: Point{Key: key, Offset: start},
		Focus:  Point{Key: key, Offset: end},
	}
}

// IsCollapsed reports whether anchor and focus coincide.
func (s Selection) IsCollapsed() bool {
	return s.Anchor == s.Focus
}
