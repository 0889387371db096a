package input

import (
	"photogrid/internal/domain"
)

// GridState is the part of the gallery controller the input layer reads
type GridState interface {
	Sections() int
	Items(section int) int
	Sharing() bool
	CanDrag(ref domain.CellRef) bool
}

// ModelContext implements the Context interface for the input handler
type ModelContext struct {
	Grid      GridState
	CursorRef domain.CellRef
	DragRef   *domain.CellRef
}

// Cursor returns the cell under the cursor, if it holds a photo
func (c *ModelContext) Cursor() (domain.CellRef, bool) {
	if c.CursorRef.Section < 0 || c.CursorRef.Section >= c.Grid.Sections() {
		return domain.CellRef{}, false
	}
	if c.CursorRef.Item < 0 || c.CursorRef.Item >= c.Grid.Items(c.CursorRef.Section) {
		return domain.CellRef{}, false
	}
	return c.CursorRef, true
}

// HasPhotos reports whether any search has been added
func (c *ModelContext) HasPhotos() bool {
	return c.Grid.Sections() > 0
}

func (c *ModelContext) Sharing() bool {
	return c.Grid.Sharing()
}

func (c *ModelContext) CanDrag(ref domain.CellRef) bool {
	return c.Grid.CanDrag(ref)
}

func (c *ModelContext) DragSource() (domain.CellRef, bool) {
	if c.DragRef == nil {
		return domain.CellRef{}, false
	}
	return *c.DragRef, true
}
