// Package markdown converts documents to markdown and renders markdown
// for the terminal.
package markdown

import (
	"fmt"

	"github.com/charmbracelet/glamour"

	"github.com/zjrosen/draftpad/internal/document"
)

// noMarginStyle is a JSON style that removes document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer wraps glamour with draftpad's configuration.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// New creates a markdown renderer with the given width and glamour style
// name ("dark", "light", "notty", ...). Defaults to "dark" if empty.
// A fixed style avoids the terminal background query WithAutoStyle makes.
func New(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the configured word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown to styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}

// RenderSnapshot converts snap to markdown and renders it.
func (r *Renderer) RenderSnapshot(snap document.Snapshot) (string, error) {
	out, err := r.renderer.Render(FromSnapshot(snap))
	if err != nil {
		return "", fmt.Errorf("rendering document: %w", err)
	}
	return out, nil
}
