// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor     = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#CCCCCC"}
	TextMutedColor       = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#696969"} // Hints, help text, footers
	TextPlaceholderColor = lipgloss.AdaptiveColor{Light: "#666666", Dark: "#777777"}
	HeadingColor         = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#D9DCCF", Dark: "#696969"}
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}
	StatusInfoColor    = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#54A0FF"}

	// Buttons
	ButtonTextColor      = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}
	ButtonPrimaryBgColor = lipgloss.AdaptiveColor{Light: "#475569", Dark: "#475569"} // slate-600

	ButtonSecondaryBgColor      = lipgloss.AdaptiveColor{Light: "#2D3436", Dark: "#2D3436"}
	ButtonSecondaryFocusBgColor = lipgloss.AdaptiveColor{Light: "#636E72", Dark: "#636E72"}
	ButtonDangerBgColor         = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#922B21"}
	ButtonDangerFocusBgColor    = lipgloss.AdaptiveColor{Light: "#E74C3C", Dark: "#E74C3C"}

	// Overlays
	OverlayTitleColor  = lipgloss.AdaptiveColor{Light: "#1F1F1F", Dark: "#FFFFFF"}
	OverlayBorderColor = lipgloss.AdaptiveColor{Light: "#8A8A8A", Dark: "#8C8C8C"}

	// SaveButtonStyle draws the SAVE button in the title bar.
	SaveButtonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Bold(true).
			Foreground(ButtonTextColor).
			Background(ButtonPrimaryBgColor)

	baseButtonStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true)

	SecondaryButtonStyle        = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonSecondaryBgColor)
	SecondaryButtonFocusedStyle = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonSecondaryFocusBgColor).Underline(true)
	DangerButtonStyle           = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonDangerBgColor)
	DangerButtonFocusedStyle    = baseButtonStyle.Foreground(ButtonTextColor).Background(ButtonDangerFocusBgColor).Underline(true)

	TitleStyle       = lipgloss.NewStyle().Bold(true).Foreground(TextPrimaryColor)
	ModifiedStyle    = lipgloss.NewStyle().Foreground(StatusWarningColor)
	MutedStyle       = lipgloss.NewStyle().Foreground(TextMutedColor)
	PlaceholderStyle = lipgloss.NewStyle().Foreground(TextPlaceholderColor).Italic(true)
)
