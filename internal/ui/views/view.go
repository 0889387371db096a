package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// StatusKind selects the status line style
type StatusKind int

const (
	StatusInfo StatusKind = iota
	StatusError
	StatusSuccess
)

// ViewState contains all the state needed for rendering
type ViewState struct {
	Width          int
	Height         int
	Frame          GridFrame
	ViewportOffset int
	ViewportHeight int
	HasResults     bool
	Searching      bool
	SpinnerFrame   string
	PendingCount   int
	SharingLabel   string
	Dragging       bool
	TextInput      string // rendered search field, empty when not searching
	StatusMessage  string
	StatusKind     StatusKind
	HelpLine       string
}

// ChromeRows is the number of lines around the grid: title, status and help.
// The search field takes one more when shown.
const ChromeRows = 3

// Renderer handles all view rendering
type Renderer struct {
	styles *Styles
	grid   *GridRenderer
}

// NewRenderer creates a new renderer
func NewRenderer(color bool, artCacheSize int) *Renderer {
	styles := NewStyles()
	return &Renderer{
		styles: styles,
		grid:   NewGridRenderer(styles, NewArtRenderer(color, artCacheSize)),
	}
}

// Grid returns the grid renderer
func (r *Renderer) Grid() *GridRenderer {
	return r.grid
}

// Render produces the complete view
func (r *Renderer) Render(state ViewState) string {
	content := &strings.Builder{}

	content.WriteString(r.renderTitle(state))
	content.WriteString("\n")

	if state.TextInput != "" {
		content.WriteString(state.TextInput)
		content.WriteString("\n")
	}

	content.WriteString(r.renderViewport(state))
	content.WriteString("\n")

	content.WriteString(r.renderStatus(state))
	content.WriteString("\n")
	content.WriteString(r.styles.Help.Render(state.HelpLine))

	return r.styles.Main.Render(content.String())
}

func (r *Renderer) renderTitle(state ViewState) string {
	logo := r.styles.Title.Render("photogrid")

	var indicators []string
	if state.Searching {
		indicators = append(indicators, r.styles.StatusLoading.Render(
			fmt.Sprintf("%s Searching %d", state.SpinnerFrame, state.PendingCount)))
	}
	if state.Dragging {
		indicators = append(indicators, r.styles.DropTarget.Render("[Moving]"))
	}
	if state.SharingLabel != "" {
		indicators = append(indicators, r.styles.Sharing.Render("[Sharing] "+state.SharingLabel))
	}
	if len(indicators) == 0 {
		return logo
	}

	right := strings.Join(indicators, "  ")
	termWidth := state.Width
	if termWidth <= 0 {
		termWidth = 80
	}
	padding := termWidth - 2 - lipgloss.Width(logo) - lipgloss.Width(right)
	if padding < 2 {
		padding = 2
	}
	return logo + strings.Repeat(" ", padding) + right
}

func (r *Renderer) renderViewport(state ViewState) string {
	height := state.ViewportHeight
	if height < 1 {
		height = 1
	}

	if !state.HasResults {
		lines := make([]string, height)
		msg := "Press / to search Flickr"
		if state.Searching {
			msg = "Searching..."
		}
		lines[0] = r.styles.Dim.Render(msg)
		return strings.Join(lines, "\n")
	}

	all := state.Frame.Lines
	start := state.ViewportOffset
	if start > len(all) {
		start = len(all)
	}
	if start < 0 {
		start = 0
	}
	end := start + height
	if end > len(all) {
		end = len(all)
	}

	visible := make([]string, 0, height)
	visible = append(visible, all[start:end]...)
	for len(visible) < height {
		visible = append(visible, "")
	}

	if start > 0 {
		visible[0] = r.styles.Scroll.Render("↑ (more above)")
	}
	if end < len(all) && height > 1 {
		visible[len(visible)-1] = r.styles.Scroll.Render("↓ (more below)")
	}
	return strings.Join(visible, "\n")
}

func (r *Renderer) renderStatus(state ViewState) string {
	switch state.StatusKind {
	case StatusError:
		return r.styles.StatusError.Render(state.StatusMessage)
	case StatusSuccess:
		return r.styles.StatusSuccess.Render(state.StatusMessage)
	default:
		return r.styles.StatusLoading.Render(state.StatusMessage)
	}
}
