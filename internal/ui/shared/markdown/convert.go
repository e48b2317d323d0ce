package markdown

import (
	"strings"
	"unicode"

	"github.com/zjrosen/draftpad/internal/document"
)

// escaper backslash-escapes characters markdown would read as syntax.
var escaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"`", "\\`",
	"#", `\#`,
	"<", `\<`,
	"[", `\[`,
	"]", `\]`,
)

// FromSnapshot converts a document to markdown, one paragraph per block.
// A block styled HEADING throughout becomes a "# " heading; elsewhere
// HEADING and BOLD become strong emphasis and UNDERLINE becomes <u>.
// RED has no markdown form and is dropped.
func FromSnapshot(s document.Snapshot) string {
	blocks := s.Blocks()
	out := make([]string, 0, len(blocks))
	for _, b := range blocks {
		out = append(out, convertBlock(b))
	}
	return strings.Join(out, "\n\n") + "\n"
}

func convertBlock(b document.Block) string {
	runes := b.Runes()
	if len(runes) == 0 {
		return ""
	}

	heading := true
	for i := range runes {
		if !b.StyleAt(i).Has(document.StyleHeading) {
			heading = false
			break
		}
	}

	var out strings.Builder
	if heading {
		out.WriteString("# ")
	}
	for i := 0; i < len(runes); {
		set := normalize(b.StyleAt(i), heading)
		j := i + 1
		for j < len(runes) && normalize(b.StyleAt(j), heading).Equal(set) {
			j++
		}
		out.WriteString(wrapRun(string(runes[i:j]), set))
		i = j
	}

	text := out.String()
	if !heading && len(text) > 0 && strings.ContainsRune("-+>", rune(text[0])) {
		text = `\` + text
	}
	return text
}

// normalize reduces a style set to the markers markdown can express.
func normalize(set document.StyleSet, heading bool) document.StyleSet {
	var out []document.Style
	if set.Has(document.StyleBold) || (!heading && set.Has(document.StyleHeading)) {
		out = append(out, document.StyleBold)
	}
	if set.Has(document.StyleUnderline) {
		out = append(out, document.StyleUnderline)
	}
	return document.NewStyleSet(out...)
}

// wrapRun escapes text and wraps it in emphasis markers. Surrounding
// whitespace stays outside the markers so they still parse.
func wrapRun(text string, set document.StyleSet) string {
	core := strings.TrimFunc(text, unicode.IsSpace)
	if core == "" || set.IsEmpty() {
		return escaper.Replace(text)
	}
	lead := text[:strings.Index(text, core)]
	trail := text[len(lead)+len(core):]

	core = escaper.Replace(core)
	if set.Has(document.StyleUnderline) {
		core = "<u>" + core + "</u>"
	}
	if set.Has(document.StyleBold) {
		core = "**" + core + "**"
	}
	return lead + core + trail
}
