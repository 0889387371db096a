package gallery

import "photogrid/internal/domain"

// Redraw tells the host which parts of the grid changed
type Redraw struct {
	Full     bool             // reload every section
	Cells    []domain.CellRef // reload only these cells
	ScrollTo *domain.CellRef  // bring this cell into view once reloaded
}

// IsEmpty reports whether nothing needs redrawing
func (r Redraw) IsEmpty() bool {
	return !r.Full && len(r.Cells) == 0 && r.ScrollTo == nil
}

// LargeImageRequest asks the host to fetch the large image of an expanded photo.
// Generation identifies the expansion target the request was issued for.
type LargeImageRequest struct {
	Ref        domain.CellRef
	Photo      *domain.Photo
	Generation uint64
}

// Publisher receives domain events
type Publisher interface {
	Publish(event domain.DomainEvent)
}

// GridDataProvider feeds a grid widget
type GridDataProvider interface {
	Sections() int
	Items(section int) int
	SearchTerm(section int) string
	Photo(ref domain.CellRef) (*domain.Photo, bool)
	IsExpanded(ref domain.CellRef) bool
	IsSelected(ref domain.CellRef) bool
	CellSize(ref domain.CellRef, bounds domain.Size) domain.Size
}

// SelectionHandler receives taps on grid cells
type SelectionHandler interface {
	Tap(ref domain.CellRef) (Redraw, *LargeImageRequest)
}

// ReorderHandler receives drag and drop events
type ReorderHandler interface {
	CanDrag(ref domain.CellRef) bool
	Move(src, dst domain.CellRef) (Redraw, error)
}

// ShareHandler drives the share action
type ShareHandler interface {
	Share() ShareDecision
	CompleteShare(count int, err error) Redraw
}

var (
	_ GridDataProvider = (*Controller)(nil)
	_ SelectionHandler = (*Controller)(nil)
	_ ReorderHandler   = (*Controller)(nil)
	_ ShareHandler     = (*Controller)(nil)
)
