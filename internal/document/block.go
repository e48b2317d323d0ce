package document

import (
	"slices"
	"strings"

	"github.com/google/uuid"
)

// BlockType identifies the paragraph-level kind of a block.
type BlockType string

// BlockUnstyled is the only block type the editor produces.
const BlockUnstyled BlockType = "unstyled"

// Block is one paragraph of the document. Offsets into a block count runes.
// A Block is a value; its slices are shared between snapshots and never
// written after construction.
type Block struct {
	key    string
	typ    BlockType
	text   []rune
	styles []StyleSet // one entry per rune
}

// NewBlock creates an unstyled block holding text. An empty key is replaced
// by a freshly generated one.
func NewBlock(key, text string) Block {
	if key == "" {
		key = newKey()
	}
	runes := []rune(text)
	return Block{
		key:    key,
		typ:    BlockUnstyled,
		text:   runes,
		styles: make([]StyleSet, len(runes)),
	}
}

// Key returns the block's stable identifier.
func (b Block) Key() string { return b.key }

// Type returns the block type.
func (b Block) Type() BlockType { return b.typ }

// Text returns the block's text.
func (b Block) Text() string { return string(b.text) }

// Len returns the block length in runes.
func (b Block) Len() int { return len(b.text) }

// Runes returns a copy of the block text as runes.
func (b Block) Runes() []rune { return slices.Clone(b.text) }

// StyleAt returns the styles of the rune at offset, or nil when out of range.
func (b Block) StyleAt(offset int) StyleSet {
	if offset < 0 || offset >= len(b.styles) {
		return nil
	}
	return b.styles[offset]
}

// Equal reports whether two blocks have the same key, type, text and styles.
func (b Block) Equal(other Block) bool {
	if b.key != other.key || b.typ != other.typ || !slices.Equal(b.text, other.text) {
		return false
	}
	for i := range b.styles {
		if !b.styles[i].Equal(other.styles[i]) {
			return false
		}
	}
	return true
}

// clampOffset bounds offset to [0, Len()].
func (b Block) clampOffset(offset int) int {
	return max(0, min(offset, len(b.text)))
}

// splice replaces runes [from, to) with text, every inserted rune carrying style.
func (b Block) splice(from, to int, text []rune, style StyleSet) Block {
	from, to = b.clampOffset(from), b.clampOffset(to)
	if to < from {
		from, to = to, from
	}

	newText := make([]rune, 0, len(b.text)-(to-from)+len(text))
	newText = append(newText, b.text[:from]...)
	newText = append(newText, text...)
	newText = append(newText, b.text[to:]...)

	newStyles := make([]StyleSet, 0, len(newText))
	newStyles = append(newStyles, b.styles[:from]...)
	for range text {
		newStyles = append(newStyles, style)
	}
	newStyles = append(newStyles, b.styles[to:]...)

	b.text = newText
	b.styles = newStyles
	return b
}

// restyle returns a copy with fn applied to the styles of runes [from, to).
func (b Block) restyle(from, to int, fn func(StyleSet) StyleSet) Block {
	from, to = b.clampOffset(from), b.clampOffset(to)
	styles := slices.Clone(b.styles)
	for i := from; i < to; i++ {
		styles[i] = fn(styles[i])
	}
	b.styles = styles
	return b
}

// split cuts the block at offset. The head keeps the key; the tail gets tailKey.
func (b Block) split(offset int, tailKey string) (Block, Block) {
	offset = b.clampOffset(offset)
	head := Block{
		key:    b.key,
		typ:    b.typ,
		text:   slices.Clone(b.text[:offset]),
		styles: slices.Clone(b.styles[:offset]),
	}
	tail := Block{
		key:    tailKey,
		typ:    b.typ,
		text:   slices.Clone(b.text[offset:]),
		styles: slices.Clone(b.styles[offset:]),
	}
	return head, tail
}

// join appends other's content to b, keeping b's key and type.
func (b Block) join(other Block) Block {
	return Block{
		key:    b.key,
		typ:    b.typ,
		text:   append(slices.Clone(b.text), other.text...),
		styles: append(slices.Clone(b.styles), other.styles...),
	}
}

// newKey returns a short random block key.
func newKey() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}
