package views

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/nfnt/resize"
)

// asciiRamp is used when colour output is off, darkest first
const asciiRamp = " .:-=+*#%@"

type artKey struct {
	img    image.Image
	width  int
	height int
}

// ArtRenderer turns images into terminal text. Each character cell shows two
// vertically stacked pixels using the upper half block.
type ArtRenderer struct {
	color bool
	cache *lru.Cache[artKey, []string]
}

// NewArtRenderer creates a renderer caching up to size rendered images
func NewArtRenderer(color bool, size int) *ArtRenderer {
	if size <= 0 {
		size = 128
	}
	cache, _ := lru.New[artKey, []string](size)
	return &ArtRenderer{color: color, cache: cache}
}

// Render draws img fitted and centered in width columns by height rows
func (a *ArtRenderer) Render(img image.Image, width, height int) []string {
	if width <= 0 || height <= 0 {
		return nil
	}
	if img == nil {
		return placeholder(width, height)
	}

	key := artKey{img: img, width: width, height: height}
	if lines, ok := a.cache.Get(key); ok {
		return lines
	}

	lines := a.render(img, width, height)
	a.cache.Add(key, lines)
	return lines
}

func (a *ArtRenderer) render(img image.Image, width, height int) []string {
	scaled := resize.Thumbnail(uint(width), uint(height*2), img, resize.Bilinear)
	b := scaled.Bounds()
	offX := (width - b.Dx()) / 2
	offY := (height*2 - b.Dy()) / 2

	pixel := func(x, y int) (color.Color, bool) {
		px, py := x-offX, y-offY
		if px < 0 || py < 0 || px >= b.Dx() || py >= b.Dy() {
			return nil, false
		}
		return scaled.At(b.Min.X+px, b.Min.Y+py), true
	}

	lines := make([]string, height)
	for row := 0; row < height; row++ {
		var sb strings.Builder
		for x := 0; x < width; x++ {
			top, hasTop := pixel(x, row*2)
			bottom, hasBottom := pixel(x, row*2+1)
			sb.WriteString(a.cell(top, hasTop, bottom, hasBottom))
		}
		lines[row] = sb.String()
	}
	return lines
}

func (a *ArtRenderer) cell(top color.Color, hasTop bool, bottom color.Color, hasBottom bool) string {
	if !a.color {
		switch {
		case hasTop && hasBottom:
			return rampChar((luminance(top) + luminance(bottom)) / 2)
		case hasTop:
			return rampChar(luminance(top))
		case hasBottom:
			return rampChar(luminance(bottom))
		default:
			return " "
		}
	}

	switch {
	case hasTop && hasBottom:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Background(hexColor(bottom)).Render("▀")
	case hasTop:
		return lipgloss.NewStyle().Foreground(hexColor(top)).Render("▀")
	case hasBottom:
		return lipgloss.NewStyle().Foreground(hexColor(bottom)).Render("▄")
	default:
		return " "
	}
}

func placeholder(width, height int) []string {
	lines := make([]string, height)
	row := strings.Repeat("░", width)
	for i := range lines {
		lines[i] = row
	}
	return lines
}

func hexColor(c color.Color) lipgloss.Color {
	r, g, b, _ := c.RGBA()
	return lipgloss.Color(fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8))
}

// luminance returns 0..1
func luminance(c color.Color) float64 {
	r, g, b, _ := c.RGBA()
	return (0.299*float64(r) + 0.587*float64(g) + 0.114*float64(b)) / 0xffff
}

func rampChar(l float64) string {
	i := int(l * float64(len(asciiRamp)-1))
	if i < 0 {
		i = 0
	}
	if i >= len(asciiRamp) {
		i = len(asciiRamp) - 1
	}
	return string(asciiRamp[i])
}
