package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/draftpad/internal/document"
)

// styled returns a one-block document with style applied to [from, to).
func styled(text string, spans ...span) document.Snapshot {
	s := document.FromText(text)
	b, _ := s.BlockAt(0)
	for _, sp := range spans {
		s = s.ForceSelection(document.Span(b.Key(), sp.from, sp.to)).ApplyInlineStyle(sp.style)
	}
	return s
}

type span struct {
	from, to int
	style    document.Style
}

func TestFromSnapshot(t *testing.T) {
	tests := []struct {
		name string
		doc  document.Snapshot
		want string
	}{
		{
			name: "empty document",
			doc:  document.Empty(),
			want: "\n",
		},
		{
			name: "plain paragraphs",
			doc:  document.FromText("one\ntwo"),
			want: "one\n\ntwo\n",
		},
		{
			name: "full heading block",
			doc:  styled("Title", span{0, 5, document.StyleHeading}),
			want: "# Title\n",
		},
		{
			name: "partial heading is bold",
			doc:  styled("big small", span{0, 3, document.StyleHeading}),
			want: "**big** small\n",
		},
		{
			name: "bold keeps spaces outside markers",
			doc:  styled("a bold b", span{1, 7, document.StyleBold}),
			want: "a **bold** b\n",
		},
		{
			name: "underline",
			doc:  styled("under", span{0, 5, document.StyleUnderline}),
			want: "<u>under</u>\n",
		},
		{
			name: "bold and underline",
			doc:  styled("both", span{0, 4, document.StyleBold}, span{0, 4, document.StyleUnderline}),
			want: "**<u>both</u>**\n",
		},
		{
			name: "red is dropped",
			doc:  styled("red", span{0, 3, document.StyleRed}),
			want: "red\n",
		},
		{
			name: "markdown syntax is escaped",
			doc:  document.FromText("# not *a* heading"),
			want: `\# not \*a\* heading` + "\n",
		},
		{
			name: "leading list marker is escaped",
			doc:  document.FromText("- item"),
			want: `\- item` + "\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, FromSnapshot(tt.doc))
		})
	}
}
