package document

import "github.com/rivo/uniseg"

// Caret movement. Every move accepts a new selection and drops the inline
// style override, the same way a click elsewhere in the text would.

// MoveLeft collapses a range to its start, or steps the caret back one
// grapheme, wrapping to the end of the previous block.
func (s Snapshot) MoveLeft() Snapshot {
	start, end, ok := s.orderedSelection()
	if !ok {
		return s
	}
	if start != end {
		return s.collapseAt(start)
	}
	return s.collapseAt(s.pointBefore(start))
}

// MoveRight collapses a range to its end, or steps the caret forward one
// grapheme, wrapping to the start of the next block.
func (s Snapshot) MoveRight() Snapshot {
	start, end, ok := s.orderedSelection()
	if !ok {
		return s
	}
	if start != end {
		return s.collapseAt(end)
	}
	return s.collapseAt(s.pointAfter(end))
}

// ExtendLeft moves the focus back one grapheme, keeping the anchor.
func (s Snapshot) ExtendLeft() Snapshot {
	if _, _, ok := s.orderedSelection(); !ok {
		return s
	}
	focus := s.pointBefore(s.clampPoint(s.selection.Focus))
	return s.ForceSelection(Selection{Anchor: s.selection.Anchor, Focus: focus})
}

// ExtendRight moves the focus forward one grapheme, keeping the anchor.
func (s Snapshot) ExtendRight() Snapshot {
	if _, _, ok := s.orderedSelection(); !ok {
		return s
	}
	focus := s.pointAfter(s.clampPoint(s.selection.Focus))
	return s.ForceSelection(Selection{Anchor: s.selection.Anchor, Focus: focus})
}

// MoveUp puts the caret in the previous block at the same offset, clamped.
func (s Snapshot) MoveUp() Snapshot {
	return s.moveVertical(-1)
}

// MoveDown puts the caret in the next block at the same offset, clamped.
func (s Snapshot) MoveDown() Snapshot {
	return s.moveVertical(1)
}

// MoveLineStart puts the caret at the start of the focused block.
func (s Snapshot) MoveLineStart() Snapshot {
	focus := s.selection.Focus
	if s.indexOf(focus.Key) < 0 {
		return s
	}
	return s.collapseAt(Point{Key: focus.Key, Offset: 0})
}

// MoveLineEnd puts the caret at the end of the focused block.
func (s Snapshot) MoveLineEnd() Snapshot {
	b, ok := s.BlockForKey(s.selection.Focus.Key)
	if !ok {
		return s
	}
	return s.collapseAt(Point{Key: b.key, Offset: b.Len()})
}

// MoveDocStart puts the caret at the start of the first block.
func (s Snapshot) MoveDocStart() Snapshot {
	return s.collapseAt(Point{Key: s.blocks[0].key, Offset: 0})
}

// MoveDocEnd puts the caret at the end of the last block.
func (s Snapshot) MoveDocEnd() Snapshot {
	last := s.blocks[len(s.blocks)-1]
	return s.collapseAt(Point{Key: last.key, Offset: last.Len()})
}

// SelectAll selects from the start of the first block to the end of the last.
func (s Snapshot) SelectAll() Snapshot {
	last := s.blocks[len(s.blocks)-1]
	return s.ForceSelection(Selection{
		Anchor: Point{Key: s.blocks[0].key, Offset: 0},
		Focus:  Point{Key: last.key, Offset: last.Len()},
	})
}

// CollapseToEnd collapses the selection onto its end point. A collapsed
// selection is returned as is, keeping any inline style override.
func (s Snapshot) CollapseToEnd() Snapshot {
	start, end, ok := s.orderedSelection()
	if !ok || start == end {
		return s
	}
	return s.collapseAt(end)
}

func (s Snapshot) moveVertical(delta int) Snapshot {
	focus := s.clampPoint(s.selection.Focus)
	idx := s.indexOf(focus.Key)
	if idx < 0 {
		return s
	}
	target := idx + delta
	if target < 0 || target >= len(s.blocks) {
		return s.collapseAt(focus)
	}
	b := s.blocks[target]
	return s.collapseAt(Point{Key: b.key, Offset: b.clampOffset(focus.Offset)})
}

func (s Snapshot) collapseAt(p Point) Snapshot {
	return s.ForceSelection(Selection{Anchor: p, Focus: p})
}

// pointBefore returns the position one grapheme before p in a known block.
func (s Snapshot) pointBefore(p Point) Point {
	idx := s.indexOf(p.Key)
	b := s.blocks[idx]
	if p.Offset > 0 {
		return Point{Key: b.key, Offset: p.Offset - lastGraphemeLen(b.text[:p.Offset])}
	}
	if idx > 0 {
		prev := s.blocks[idx-1]
		return Point{Key: prev.key, Offset: prev.Len()}
	}
	return p
}

// pointAfter returns the position one grapheme after p in a known block.
func (s Snapshot) pointAfter(p Point) Point {
	idx := s.indexOf(p.Key)
	b := s.blocks[idx]
	if p.Offset < b.Len() {
		return Point{Key: b.key, Offset: p.Offset + firstGraphemeLen(b.text[p.Offset:])}
	}
	if idx < len(s.blocks)-1 {
		return Point{Key: s.blocks[idx+1].key, Offset: 0}
	}
	return p
}

// lastGraphemeLen returns the rune length of the final grapheme cluster.
func lastGraphemeLen(runes []rune) int {
	n := 0
	g := uniseg.NewGraphemes(string(runes))
	for g.Next() {
		n = len(g.Runes())
	}
	return max(n, 1)
}

// firstGraphemeLen returns the rune length of the leading grapheme cluster.
func firstGraphemeLen(runes []rune) int {
	g := uniseg.NewGraphemes(string(runes))
	if g.Next() {
		return len(g.Runes())
	}
	return 1
}
