package document

import (
	"encoding/json"
	"fmt"
	"slices"
	"strings"
)

// RawContent is the serialized form of a document: a list of blocks with
// their inline style ranges. Offsets and lengths count runes.
type RawContent struct {
	Blocks    []RawBlock     `json:"blocks" yaml:"blocks"`
	EntityMap map[string]any `json:"entityMap" yaml:"entityMap"`
}

// RawBlock is the serialized form of one block.
type RawBlock struct {
	Key               string           `json:"key" yaml:"key"`
	Text              string           `json:"text" yaml:"text"`
	Type              BlockType        `json:"type" yaml:"type"`
	Depth             int              `json:"depth" yaml:"depth"`
	InlineStyleRanges []RawStyleRange  `json:"inlineStyleRanges" yaml:"inlineStyleRanges"`
	EntityRanges      []RawEntityRange `json:"entityRanges" yaml:"entityRanges"`
	Data              map[string]any   `json:"data" yaml:"data"`
}

// RawStyleRange marks Length runes starting at Offset with Style.
type RawStyleRange struct {
	Offset int   `json:"offset" yaml:"offset"`
	Length int   `json:"length" yaml:"length"`
	Style  Style `json:"style" yaml:"style"`
}

// RawEntityRange is accepted on input for compatibility and otherwise ignored.
type RawEntityRange struct {
	Offset int `json:"offset" yaml:"offset"`
	Length int `json:"length" yaml:"length"`
	Key    int `json:"key" yaml:"key"`
}

// RangeError reports an inline style range that does not fit its block.
type RangeError struct {
	Block  string
	Range  RawStyleRange
	Length int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("block %q: style range %s at %d+%d outside text of length %d",
		e.Block, e.Range.Style, e.Range.Offset, e.Range.Length, e.Length)
}

// ToRaw converts a snapshot into its serialized form. Per-rune styles are
// coalesced into maximal ranges ordered by offset, then style name.
func ToRaw(s Snapshot) RawContent {
	raw := RawContent{
		Blocks:    make([]RawBlock, 0, len(s.blocks)),
		EntityMap: map[string]any{},
	}
	for _, b := range s.blocks {
		raw.Blocks = append(raw.Blocks, RawBlock{
			Key:               b.key,
			Text:              b.Text(),
			Type:              b.typ,
			InlineStyleRanges: styleRanges(b),
			EntityRanges:      []RawEntityRange{},
			Data:              map[string]any{},
		})
	}
	return raw
}

// FromRaw rebuilds a snapshot from its serialized form. The caret is placed
// at the start of the first block.
func FromRaw(raw RawContent) (Snapshot, error) {
	if len(raw.Blocks) == 0 {
		return Empty(), nil
	}

	seen := make(map[string]bool, len(raw.Blocks))
	blocks := make([]Block, 0, len(raw.Blocks))
	for i, rb := range raw.Blocks {
		if rb.Key != "" && seen[rb.Key] {
			return Snapshot{}, fmt.Errorf("block %d: duplicate key %q", i, rb.Key)
		}

		b := NewBlock(rb.Key, rb.Text)
		for seen[b.key] {
			b.key = newKey()
		}
		seen[b.key] = true
		if rb.Type != "" {
			b.typ = rb.Type
		}

		for _, r := range rb.InlineStyleRanges {
			if r.Offset < 0 || r.Length < 0 || r.Offset > b.Len() || r.Length > b.Len()-r.Offset {
				return Snapshot{}, &RangeError{Block: b.key, Range: r, Length: b.Len()}
			}
			if r.Style == "" {
				return Snapshot{}, fmt.Errorf("block %q: style range at %d has no style", b.key, r.Offset)
			}
			for j := r.Offset; j < r.Offset+r.Length; j++ {
				b.styles[j] = b.styles[j].With(r.Style)
			}
		}
		blocks = append(blocks, b)
	}
	return FromBlocks(blocks), nil
}

// Marshal serializes a snapshot to JSON.
func Marshal(s Snapshot) ([]byte, error) {
	data, err := json.Marshal(ToRaw(s))
	if err != nil {
		return nil, fmt.Errorf("encoding document: %w", err)
	}
	return data, nil
}

// Unmarshal parses JSON produced by Marshal.
func Unmarshal(data []byte) (Snapshot, error) {
	var raw RawContent
	if err := json.Unmarshal(data, &raw); err != nil {
		return Snapshot{}, fmt.Errorf("decoding document: %w", err)
	}
	if raw.Blocks == nil {
		return Snapshot{}, fmt.Errorf("decoding document: missing blocks")
	}
	s, err := FromRaw(raw)
	if err != nil {
		return Snapshot{}, fmt.Errorf("decoding document: %w", err)
	}
	return s, nil
}

// styleRanges coalesces a block's per-rune styles into ranges.
func styleRanges(b Block) []RawStyleRange {
	ranges := []RawStyleRange{}
	open := map[Style]int{} // style -> start offset of the run in progress

	closeRun := func(style Style, end int) {
		ranges = append(ranges, RawStyleRange{Offset: open[style], Length: end - open[style], Style: style})
		delete(open, style)
	}

	for i, set := range b.styles {
		for style := range open {
			if !set.Has(style) {
				closeRun(style, i)
			}
		}
		for _, style := range set {
			if _, ok := open[style]; !ok {
				open[style] = i
			}
		}
	}
	for style := range open {
		closeRun(style, len(b.styles))
	}

	slices.SortFunc(ranges, func(x, y RawStyleRange) int {
		if x.Offset != y.Offset {
			return x.Offset - y.Offset
		}
		return strings.Compare(string(x.Style), string(y.Style))
	})
	return ranges
}
