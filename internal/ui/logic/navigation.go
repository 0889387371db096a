package logic

import (
	"photogrid/internal/domain"
)

// Grid is the data the navigator walks over
type Grid interface {
	Sections() int
	Items(section int) int
}

// Row is one visual row of the grid, inside a single section
type Row struct {
	Section int
	Cells   []domain.CellRef
}

// BuildRows lays the grid out in flow order. A row holds up to columns cells;
// the expanded cell fills a row on its own. extra adds slots past the last
// item of a section (used for drop targets) and may be nil.
func BuildRows(grid Grid, columns int, expanded *domain.CellRef, extra func(section int) int) []Row {
	if columns <= 0 {
		columns = 1
	}

	var rows []Row
	for section := 0; section < grid.Sections(); section++ {
		slots := grid.Items(section)
		if extra != nil {
			slots += extra(section)
		}

		current := Row{Section: section}
		flush := func() {
			if len(current.Cells) > 0 {
				rows = append(rows, current)
				current = Row{Section: section}
			}
		}

		for item := 0; item < slots; item++ {
			ref := domain.CellRef{Section: section, Item: item}
			if expanded != nil && *expanded == ref {
				flush()
				current.Cells = append(current.Cells, ref)
				flush()
				continue
			}
			current.Cells = append(current.Cells, ref)
			if len(current.Cells) == columns {
				flush()
			}
		}
		flush()
	}
	return rows
}

// Navigator moves a cursor over a set of rows
type Navigator struct {
	rows []Row
}

// NewNavigator creates a navigator over rows
func NewNavigator(rows []Row) *Navigator {
	return &Navigator{rows: rows}
}

// Locate returns the row and column of ref
func (n *Navigator) Locate(ref domain.CellRef) (int, int, bool) {
	for r, row := range n.rows {
		for c, cell := range row.Cells {
			if cell == ref {
				return r, c, true
			}
		}
	}
	return 0, 0, false
}

// First returns the first cell, if any
func (n *Navigator) First() (domain.CellRef, bool) {
	if len(n.rows) == 0 {
		return domain.CellRef{}, false
	}
	return n.rows[0].Cells[0], true
}

// Clamp returns ref when it is on the grid, otherwise the nearest cell before it
func (n *Navigator) Clamp(ref domain.CellRef) (domain.CellRef, bool) {
	if _, _, ok := n.Locate(ref); ok {
		return ref, true
	}
	var last domain.CellRef
	found := false
	for _, row := range n.rows {
		for _, cell := range row.Cells {
			if cell.Section > ref.Section || (cell.Section == ref.Section && cell.Item > ref.Item) {
				if found {
					return last, true
				}
				return cell, true
			}
			last = cell
			found = true
		}
	}
	return last, found
}

// Move returns the cell reached from cur in direction. pageRows is the number
// of rows a page step covers.
func (n *Navigator) Move(cur domain.CellRef, direction string, pageRows int) domain.CellRef {
	if len(n.rows) == 0 {
		return cur
	}
	r, c, ok := n.Locate(cur)
	if !ok {
		first, _ := n.First()
		return first
	}
	if pageRows < 1 {
		pageRows = 1
	}

	switch direction {
	case "left":
		if c > 0 {
			return n.rows[r].Cells[c-1]
		}
		if r > 0 {
			prev := n.rows[r-1].Cells
			return prev[len(prev)-1]
		}
	case "right":
		if c < len(n.rows[r].Cells)-1 {
			return n.rows[r].Cells[c+1]
		}
		if r < len(n.rows)-1 {
			return n.rows[r+1].Cells[0]
		}
	case "up":
		return n.cellAt(r-1, c)
	case "down":
		return n.cellAt(r+1, c)
	case "pageup":
		return n.cellAt(r-pageRows, c)
	case "pagedown":
		return n.cellAt(r+pageRows, c)
	case "home":
		return n.rows[0].Cells[0]
	case "end":
		last := n.rows[len(n.rows)-1].Cells
		return last[len(last)-1]
	}
	return cur
}

// cellAt returns the cell at row r, clamping the row and the column
func (n *Navigator) cellAt(r, c int) domain.CellRef {
	if r < 0 {
		r = 0
	}
	if r >= len(n.rows) {
		r = len(n.rows) - 1
	}
	cells := n.rows[r].Cells
	if c >= len(cells) {
		c = len(cells) - 1
	}
	return cells[c]
}
