// Package document implements the editor's immutable rich-text model.
//
// A Snapshot holds an ordered list of blocks, a selection and an optional
// inline style override. Every operation returns a new Snapshot and leaves
// its receiver untouched, so a snapshot can be kept around (for dirty
// tracking, or as the last saved state) without copying.
//
// Offsets are rune offsets within a block. Selections naming a block that
// does not exist are tolerated: reads report nothing and edits return the
// snapshot unchanged.
package document

import (
	"slices"
	"strings"
)

// Snapshot is one immutable state of the document.
type Snapshot struct {
	blocks      []Block
	selection   Selection
	override    StyleSet
	hasOverride bool
}

// Empty returns a document with a single empty block and the caret in it.
func Empty() Snapshot {
	b := NewBlock("", "")
	return Snapshot{
		blocks:    []Block{b},
		selection: Collapsed(b.key, 0),
	}
}

// FromText returns an unstyled document with one block per line of text.
// The caret is placed at the start of the first block.
func FromText(text string) Snapshot {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, len(lines))
	for i, line := range lines {
		blocks[i] = NewBlock("", line)
	}
	return Snapshot{
		blocks:    blocks,
		selection: Collapsed(blocks[0].key, 0),
	}
}

// FromBlocks returns a document holding blocks with the caret at the start
// of the first one. An empty slice yields Empty().
func FromBlocks(blocks []Block) Snapshot {
	if len(blocks) == 0 {
		return Empty()
	}
	return Snapshot{
		blocks:    slices.Clone(blocks),
		selection: Collapsed(blocks[0].key, 0),
	}
}

// Blocks returns the blocks in document order.
func (s Snapshot) Blocks() []Block {
	return slices.Clone(s.blocks)
}

// BlockCount returns the number of blocks.
func (s Snapshot) BlockCount() int {
	return len(s.blocks)
}

// BlockAt returns the block at index i.
func (s Snapshot) BlockAt(i int) (Block, bool) {
	if i < 0 || i >= len(s.blocks) {
		return Block{}, false
	}
	return s.blocks[i], true
}

// BlockForKey returns the block with the given key.
func (s Snapshot) BlockForKey(key string) (Block, bool) {
	return s.BlockAt(s.indexOf(key))
}

// IndexOf returns the position of the block with key, or -1.
func (s Snapshot) IndexOf(key string) int {
	return s.indexOf(key)
}

func (s Snapshot) indexOf(key string) int {
	return slices.IndexFunc(s.blocks, func(b Block) bool { return b.key == key })
}

// Selection returns the current selection as stored.
func (s Snapshot) Selection() Selection {
	return s.selection
}

// SelectionStart returns whichever of anchor and focus comes first in the
// document. When either point names an unknown block the anchor is returned.
func (s Snapshot) SelectionStart() Point {
	start, _, ok := s.orderedSelection()
	if !ok {
		return s.selection.Anchor
	}
	return start
}

// SelectionEnd returns whichever of anchor and focus comes last.
func (s Snapshot) SelectionEnd() Point {
	_, end, ok := s.orderedSelection()
	if !ok {
		return s.selection.Focus
	}
	return end
}

// CurrentBlock returns the block containing the selection start.
func (s Snapshot) CurrentBlock() (Block, bool) {
	return s.BlockForKey(s.SelectionStart().Key)
}

// InlineStyleOverride returns the styles that the next insertion will carry
// when one has been set on a collapsed selection.
func (s Snapshot) InlineStyleOverride() (StyleSet, bool) {
	return s.override, s.hasOverride
}

// SetInlineStyleOverride makes the next insertion carry exactly set.
func (s Snapshot) SetInlineStyleOverride(set StyleSet) Snapshot {
	s.override = NewStyleSet(set...)
	s.hasOverride = true
	return s
}

// ForceSelection replaces the selection. Offsets inside known blocks are
// clamped to the block length; the inline style override is dropped.
func (s Snapshot) ForceSelection(sel Selection) Snapshot {
	s.selection = Selection{
		Anchor: s.clampPoint(sel.Anchor),
		Focus:  s.clampPoint(sel.Focus),
	}
	s.override = nil
	s.hasOverride = false
	return s
}

// IsEmpty reports whether the document holds no text at all.
func (s Snapshot) IsEmpty() bool {
	return len(s.blocks) == 1 && s.blocks[0].Len() == 0
}

// PlainText joins the block texts with newlines.
func (s Snapshot) PlainText() string {
	lines := make([]string, len(s.blocks))
	for i, b := range s.blocks {
		lines[i] = b.Text()
	}
	return strings.Join(lines, "\n")
}

// ContentEqual reports whether both snapshots hold the same blocks,
// ignoring selection and style override.
func (s Snapshot) ContentEqual(other Snapshot) bool {
	return slices.EqualFunc(s.blocks, other.blocks, Block.Equal)
}

// CurrentInlineStyle returns the styles an insertion at the selection would
// carry: the override when set, otherwise the style of the neighbouring text.
func (s Snapshot) CurrentInlineStyle() StyleSet {
	if s.hasOverride {
		return s.override
	}

	start := s.SelectionStart()
	idx := s.indexOf(start.Key)
	if idx < 0 {
		return nil
	}
	b := s.blocks[idx]

	if !s.selection.IsCollapsed() && start.Offset < b.Len() {
		return b.StyleAt(start.Offset)
	}
	if start.Offset > 0 {
		return b.StyleAt(start.Offset - 1)
	}
	if b.Len() > 0 {
		return b.StyleAt(0)
	}
	// Empty block: continue the style of the nearest text above.
	for i := idx - 1; i >= 0; i-- {
		if n := s.blocks[i].Len(); n > 0 {
			return s.blocks[i].StyleAt(n - 1)
		}
	}
	return nil
}

// ReplaceText replaces the range between start and end with text. The new
// text carries no styles. Newlines in text start new blocks. The caret ends
// up collapsed after the inserted text.
func (s Snapshot) ReplaceText(start, end Point, text string) Snapshot {
	return s.replaceRange(start, end, text, nil)
}

// InsertText replaces the selection with text using the current inline style.
func (s Snapshot) InsertText(text string) Snapshot {
	return s.replaceRange(s.SelectionStart(), s.SelectionEnd(), text, s.CurrentInlineStyle())
}

// SplitBlock removes the selection and breaks the block at the caret.
func (s Snapshot) SplitBlock() Snapshot {
	return s.replaceRange(s.SelectionStart(), s.SelectionEnd(), "\n", nil)
}

// ToggleInlineStyle toggles style over the selection. On a range the style is
// removed when every character already has it and added otherwise. On a
// collapsed selection the override for the next insertion is toggled.
func (s Snapshot) ToggleInlineStyle(style Style) Snapshot {
	if s.selection.IsCollapsed() {
		current := s.CurrentInlineStyle()
		if current.Has(style) {
			return s.SetInlineStyleOverride(current.Without(style))
		}
		return s.SetInlineStyleOverride(current.With(style))
	}

	start, end, ok := s.orderedSelection()
	if !ok {
		return s
	}
	every := true
	s.eachInRange(start, end, func(b Block, from, to int) {
		for i := from; i < to; i++ {
			if !b.StyleAt(i).Has(style) {
				every = false
			}
		}
	})
	if every {
		return s.restyleRange(start, end, func(set StyleSet) StyleSet { return set.Without(style) })
	}
	return s.restyleRange(start, end, func(set StyleSet) StyleSet { return set.With(style) })
}

// ApplyInlineStyle adds style to the selection, or to the override when the
// selection is collapsed.
func (s Snapshot) ApplyInlineStyle(style Style) Snapshot {
	if s.selection.IsCollapsed() {
		return s.SetInlineStyleOverride(s.CurrentInlineStyle().With(style))
	}
	start, end, ok := s.orderedSelection()
	if !ok {
		return s
	}
	return s.restyleRange(start, end, func(set StyleSet) StyleSet { return set.With(style) })
}

// Backspace deletes the selection, or the grapheme before the caret, joining
// with the previous block at a block start.
func (s Snapshot) Backspace() Snapshot {
	start, end, ok := s.orderedSelection()
	if !ok {
		return s
	}
	if start != end {
		return s.replaceRange(start, end, "", nil)
	}

	idx := s.indexOf(start.Key)
	b := s.blocks[idx]
	if start.Offset > 0 {
		n := lastGraphemeLen(b.text[:start.Offset])
		return s.replaceRange(Point{Key: b.key, Offset: start.Offset - n}, start, "", nil)
	}
	if idx == 0 {
		return s
	}
	prev := s.blocks[idx-1]
	return s.replaceRange(Point{Key: prev.key, Offset: prev.Len()}, start, "", nil)
}

// Delete deletes the selection, or the grapheme after the caret, joining
// with the next block at a block end.
func (s Snapshot) Delete() Snapshot {
	start, end, ok := s.orderedSelection()
	if !ok {
		return s
	}
	if start != end {
		return s.replaceRange(start, end, "", nil)
	}

	idx := s.indexOf(start.Key)
	b := s.blocks[idx]
	if start.Offset < b.Len() {
		n := firstGraphemeLen(b.text[start.Offset:])
		return s.replaceRange(start, Point{Key: b.key, Offset: start.Offset + n}, "", nil)
	}
	if idx == len(s.blocks)-1 {
		return s
	}
	next := s.blocks[idx+1]
	return s.replaceRange(start, Point{Key: next.key, Offset: 0}, "", nil)
}

// replaceRange is the single edit primitive: remove [start, end), insert text
// with every rune carrying style, collapse the caret after it.
func (s Snapshot) replaceRange(start, end Point, text string, style StyleSet) Snapshot {
	start, end = s.clampPoint(start), s.clampPoint(end)
	si, ei := s.indexOf(start.Key), s.indexOf(end.Key)
	if si < 0 || ei < 0 {
		return s
	}
	if s.comparePoints(end, start) < 0 {
		start, end = end, start
		si, ei = ei, si
	}

	// Collapse [start, end) into a single block.
	first := s.blocks[si]
	_, tail := s.blocks[ei].split(end.Offset, "")
	merged := first.splice(start.Offset, first.Len(), nil, nil).join(tail)

	lines := strings.Split(text, "\n")
	var (
		inserted []Block
		caret    Point
	)
	if len(lines) == 1 {
		runes := []rune(lines[0])
		merged = merged.splice(start.Offset, start.Offset, runes, style)
		inserted = []Block{merged}
		caret = Point{Key: merged.key, Offset: start.Offset + len(runes)}
	} else {
		taken := make(map[string]bool, len(lines))
		head, rest := merged.split(start.Offset, s.freshKey(taken))
		head = head.splice(head.Len(), head.Len(), []rune(lines[0]), style)
		inserted = append(inserted, head)
		for _, line := range lines[1 : len(lines)-1] {
			mid := Block{key: s.freshKey(taken), typ: BlockUnstyled}
			inserted = append(inserted, mid.splice(0, 0, []rune(line), style))
		}
		last := []rune(lines[len(lines)-1])
		rest = rest.splice(0, 0, last, style)
		inserted = append(inserted, rest)
		caret = Point{Key: rest.key, Offset: len(last)}
	}

	s.blocks = slices.Concat(s.blocks[:si], inserted, s.blocks[ei+1:])
	s.selection = Selection{Anchor: caret, Focus: caret}
	s.override = nil
	s.hasOverride = false
	return s
}

// restyleRange applies fn to the styles of every rune between start and end.
// The selection is kept; the override is dropped.
func (s Snapshot) restyleRange(start, end Point, fn func(StyleSet) StyleSet) Snapshot {
	blocks := slices.Clone(s.blocks)
	s.eachInRange(start, end, func(b Block, from, to int) {
		blocks[s.indexOf(b.key)] = b.restyle(from, to, fn)
	})
	s.blocks = blocks
	s.override = nil
	s.hasOverride = false
	return s
}

// eachInRange calls fn with the rune span of every block touched by [start, end).
func (s Snapshot) eachInRange(start, end Point, fn func(b Block, from, to int)) {
	si, ei := s.indexOf(start.Key), s.indexOf(end.Key)
	if si < 0 || ei < 0 {
		return
	}
	for i := si; i <= ei; i++ {
		b := s.blocks[i]
		from, to := 0, b.Len()
		if i == si {
			from = start.Offset
		}
		if i == ei {
			to = end.Offset
		}
		fn(b, from, to)
	}
}

// orderedSelection returns the selection points in document order. ok is
// false when either point names an unknown block.
func (s Snapshot) orderedSelection() (start, end Point, ok bool) {
	a, f := s.clampPoint(s.selection.Anchor), s.clampPoint(s.selection.Focus)
	if s.indexOf(a.Key) < 0 || s.indexOf(f.Key) < 0 {
		return Point{}, Point{}, false
	}
	if s.comparePoints(f, a) < 0 {
		return f, a, true
	}
	return a, f, true
}

// comparePoints orders two points in known blocks.
func (s Snapshot) comparePoints(a, b Point) int {
	ai, bi := s.indexOf(a.Key), s.indexOf(b.Key)
	if ai != bi {
		return ai - bi
	}
	return a.Offset - b.Offset
}

func (s Snapshot) clampPoint(p Point) Point {
	if idx := s.indexOf(p.Key); idx >= 0 {
		p.Offset = s.blocks[idx].clampOffset(p.Offset)
	}
	return p
}

// freshKey returns a key not used by any block nor already in taken.
func (s Snapshot) freshKey(taken map[string]bool) string {
	for {
		key := newKey()
		if !taken[key] && s.indexOf(key) < 0 {
			taken[key] = true
			return key
		}
	}
}
