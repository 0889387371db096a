package gallery

import (
	"math"

	"photogrid/internal/domain"
)

// DefaultColumns is the number of thumbnails per row
const DefaultColumns = 3

// Layout computes cell geometry for the grid
type Layout struct {
	Columns int
	Insets  domain.Insets
}

// NewLayout creates a layout, falling back to DefaultColumns
func NewLayout(columns int, insets domain.Insets) Layout {
	if columns <= 0 {
		columns = DefaultColumns
	}
	return Layout{Columns: columns, Insets: insets}
}

// ThumbnailSide returns the side of a square grid cell for the given container width
func (l Layout) ThumbnailSide(containerWidth float64) float64 {
	paddingSpace := l.Insets.Left * float64(l.Columns+1)
	side := (containerWidth - paddingSpace) / float64(l.Columns)
	return math.Max(side, 0)
}

// ContentSize is the container minus the section insets
func (l Layout) ContentSize(bounds domain.Size) domain.Size {
	return domain.Size{
		Width:  math.Max(bounds.Width-(l.Insets.Left+l.Insets.Right), 0),
		Height: math.Max(bounds.Height-(l.Insets.Top+l.Insets.Bottom), 0),
	}
}

// ExpandedSize returns the size of photo when it is the expanded cell
func (l Layout) ExpandedSize(photo *domain.Photo, bounds domain.Size) domain.Size {
	return photo.SizeToFillWidth(l.ContentSize(bounds))
}

// LineSpacing is the vertical gap between rows
func (l Layout) LineSpacing() float64 {
	return l.Insets.Left
}
