package views

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"photogrid/internal/domain"
	"photogrid/internal/gallery"
	"photogrid/internal/ui/logic"
)

// GridState contains what the grid renderer needs
type GridState struct {
	Width  int // columns available to the grid
	Height int // rows available to the grid
	Rows   []logic.Row
	Layout gallery.Layout
	Data   gallery.GridDataProvider

	Cursor     domain.CellRef
	HasCursor  bool
	Sharing    bool
	DragSource *domain.CellRef
}

// GridFrame is a rendered grid and where each cell ended up
type GridFrame struct {
	Lines      []string
	CellTop    map[domain.CellRef]int // first line to keep visible, the section header on a first row
	CellBottom map[domain.CellRef]int // one past its last line
}

// Span returns the lines occupied by ref
func (f GridFrame) Span(ref domain.CellRef) (int, int, bool) {
	top, ok := f.CellTop[ref]
	if !ok {
		return 0, 0, false
	}
	return top, f.CellBottom[ref], true
}

// GridRenderer draws search result sections as rows of photo cells
type GridRenderer struct {
	styles *Styles
	art    *ArtRenderer
}

// NewGridRenderer creates a grid renderer
func NewGridRenderer(styles *Styles, art *ArtRenderer) *GridRenderer {
	return &GridRenderer{styles: styles, art: art}
}

// Render lays out and draws every row of the grid
func (g *GridRenderer) Render(state GridState) GridFrame {
	frame := GridFrame{
		CellTop:    make(map[domain.CellRef]int),
		CellBottom: make(map[domain.CellRef]int),
	}

	// Layout units are terminal pixels: one column wide, half a row tall
	bounds := domain.Size{Width: float64(state.Width), Height: float64(state.Height * 2)}
	insets := state.Layout.Insets
	indent := strings.Repeat(" ", int(insets.Left))
	topRows := halfRows(insets.Top)
	bottomRows := halfRows(insets.Bottom)
	spacingRows := int(state.Layout.LineSpacing() / 2)

	for i, row := range state.Rows {
		firstInSection := i == 0 || state.Rows[i-1].Section != row.Section
		lastInSection := i == len(state.Rows)-1 || state.Rows[i+1].Section != row.Section

		top := len(frame.Lines)
		if firstInSection {
			if i > 0 {
				frame.Lines = append(frame.Lines, "")
				top++
			}
			frame.Lines = append(frame.Lines, g.renderHeader(state, row.Section))
			frame.Lines = appendBlank(frame.Lines, topRows)
		}

		lines := g.renderRow(state, row, bounds)
		for _, line := range lines {
			frame.Lines = append(frame.Lines, indent+line)
		}
		for _, ref := range row.Cells {
			frame.CellTop[ref] = top
			frame.CellBottom[ref] = len(frame.Lines)
		}

		if lastInSection {
			frame.Lines = appendBlank(frame.Lines, bottomRows)
		} else {
			frame.Lines = appendBlank(frame.Lines, spacingRows)
		}
	}

	return frame
}

func (g *GridRenderer) renderHeader(state GridState, section int) string {
	term := state.Data.SearchTerm(section)
	count := state.Data.Items(section)
	header := g.styles.SectionHeader.Render(term)
	return header + g.styles.Dim.Render(fmt.Sprintf("  %d photos", count))
}

// renderRow draws the cells of one row side by side
func (g *GridRenderer) renderRow(state GridState, row logic.Row, bounds domain.Size) []string {
	gap := strings.Repeat(" ", int(state.Layout.Insets.Left))

	var blocks [][]string
	var widths []int
	height := 0
	for _, ref := range row.Cells {
		block, width := g.renderCell(state, ref, bounds)
		blocks = append(blocks, block)
		widths = append(widths, width)
		if len(block) > height {
			height = len(block)
		}
	}

	lines := make([]string, height)
	for l := 0; l < height; l++ {
		parts := make([]string, len(blocks))
		for b, block := range blocks {
			if l < len(block) {
				parts[b] = block[l]
			} else {
				parts[b] = strings.Repeat(" ", widths[b])
			}
		}
		lines[l] = strings.Join(parts, gap)
	}
	return lines
}

// renderCell returns the art and caption lines of one cell and its width
func (g *GridRenderer) renderCell(state GridState, ref domain.CellRef, bounds domain.Size) ([]string, int) {
	size := state.Data.CellSize(ref, bounds)
	width := int(math.Max(size.Width, 1))
	artRows := int(math.Max(size.Height/2, 1))

	photo, ok := state.Data.Photo(ref)
	if !ok {
		// Drop slot past the end of a section
		block := make([]string, artRows+1)
		for i := range block {
			block[i] = strings.Repeat(" ", width)
		}
		block[artRows/2] = g.styles.DropTarget.Render(fit("  ↓ drop here", width))
		block[artRows] = g.caption(state, ref, "", width)
		return block, width
	}

	expanded := state.Data.IsExpanded(ref)
	img := photo.Thumbnail
	if expanded && photo.LargeImage != nil {
		img = photo.LargeImage
	}

	art := g.art.Render(img, width, artRows)
	block := make([]string, 0, artRows+1)
	for _, line := range art {
		if img == nil {
			line = g.styles.Placeholder.Render(line)
		}
		block = append(block, line)
	}

	title := photo.Title
	if title == "" {
		title = photo.ID
	}
	if expanded && photo.LargeImage == nil {
		title += " (loading)"
	}
	block = append(block, g.caption(state, ref, title, width))
	return block, width
}

func (g *GridRenderer) caption(state GridState, ref domain.CellRef, title string, width int) string {
	isCursor := state.HasCursor && state.Cursor == ref
	isSource := state.DragSource != nil && *state.DragSource == ref

	prefix := "  "
	switch {
	case isSource:
		prefix = "⇄ "
	case state.Sharing && state.Data.IsSelected(ref):
		prefix = "✓ "
	case state.Sharing:
		prefix = "○ "
	}
	if isCursor && state.DragSource != nil && !isSource {
		prefix = "↓ "
	}

	text := fit(prefix+title, width)
	switch {
	case isCursor:
		return g.styles.Cursor.Render(text)
	case isSource:
		return g.styles.DragSource.Render(text)
	case state.Sharing && state.Data.IsSelected(ref):
		return g.styles.Selected.Render(text)
	default:
		return g.styles.Caption.Render(text)
	}
}

// fit truncates or pads s to exactly width columns
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		runes := []rune(s)
		for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
			runes = runes[:len(runes)-1]
		}
		s = string(runes) + "…"
	}
	if pad := width - lipgloss.Width(s); pad > 0 {
		s += strings.Repeat(" ", pad)
	}
	return s
}

func halfRows(pixels float64) int {
	return int(math.Ceil(pixels / 2))
}

func appendBlank(lines []string, n int) []string {
	for i := 0; i < n; i++ {
		lines = append(lines, "")
	}
	return lines
}
