package domain

import "image"

// Size is a width/height pair in layout units
type Size struct {
	Width  float64
	Height float64
}

// Insets are the margins around a grid section
type Insets struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// CellRef identifies one photo in the grid by section (search group) and item (row)
type CellRef struct {
	Section int
	Item    int
}

// Photo represents one search hit
type Photo struct {
	ID     string
	Farm   int
	Server string
	Secret string
	Title  string

	Thumbnail  image.Image // downloaded with the search, nil if that failed
	LargeImage image.Image // nil until fetched, then cached here
}

// Size returns the natural size of the photo, taken from its thumbnail
func (p *Photo) Size() Size {
	if p.Thumbnail == nil {
		return Size{}
	}
	b := p.Thumbnail.Bounds()
	return Size{Width: float64(b.Dx()), Height: float64(b.Dy())}
}

// SizeToFillWidth scales the photo to the available width, keeping its aspect
// ratio, and clamps it to the available height.
func (p *Photo) SizeToFillWidth(available Size) Size {
	natural := p.Size()
	if natural.Width <= 0 || natural.Height <= 0 {
		return available
	}

	aspectRatio := natural.Width / natural.Height
	out := available
	out.Height = out.Width / aspectRatio

	if out.Height > available.Height {
		out.Height = available.Height
		out.Width = available.Height * aspectRatio
	}

	return out
}

// SearchResultGroup holds the photos found for one search term
type SearchResultGroup struct {
	SearchTerm string
	Photos     []*Photo
}
