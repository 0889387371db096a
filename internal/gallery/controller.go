package gallery

import (
	"errors"
	"fmt"
	"image"
	"log"
	"strings"

	"photogrid/internal/domain"
)

// ErrEmptyQuery is returned when a search is submitted without text
var ErrEmptyQuery = errors.New("empty search query")

// ShareKind is the outcome of the share action
type ShareKind int

const (
	ShareNone    ShareKind = iota // nothing to do
	ShareToggled                  // sharing mode was toggled instead of sharing
	ShareImages                   // Photos should be handed to the share target
)

// ShareDecision is returned by Controller.Share
type ShareDecision struct {
	Kind   ShareKind
	Photos []*domain.Photo // selected photos that have a thumbnail
	Redraw Redraw
}

// Controller owns the results store and the expansion, selection and sharing state.
// It is not safe for concurrent use; the host calls it from its event loop only.
type Controller struct {
	store  *Store
	layout Layout
	bus    Publisher

	expanded   *domain.CellRef
	generation uint64

	sharing  bool
	selected []*domain.Photo

	pendingSearches int
}

// NewController creates a controller. bus may be nil.
func NewController(layout Layout, bus Publisher) *Controller {
	return &Controller{
		store:  NewStore(),
		layout: layout,
		bus:    bus,
	}
}

func (c *Controller) publish(event domain.DomainEvent) {
	if c.bus != nil {
		c.bus.Publish(event)
	}
}

// Store exposes the results store
func (c *Controller) Store() *Store {
	return c.store
}

// Layout returns the grid layout
func (c *Controller) Layout() Layout {
	return c.layout
}

// Search submission

// SubmitSearch validates query and marks a search as in flight.
// It returns the term the host should search for.
func (c *Controller) SubmitSearch(query string) (string, error) {
	term := strings.TrimSpace(query)
	if term == "" {
		return "", ErrEmptyQuery
	}
	c.pendingSearches++
	c.publish(domain.SearchStartedEvent{Term: term})
	return term, nil
}

// CompleteSearch applies the result of a search issued by SubmitSearch
func (c *Controller) CompleteSearch(term string, group *domain.SearchResultGroup, err error) Redraw {
	if c.pendingSearches > 0 {
		c.pendingSearches--
	}

	if err != nil {
		log.Printf("Error searching %q: %v", term, err)
		c.publish(domain.SearchFailedEvent{Term: term, Err: err})
		return Redraw{}
	}
	if group == nil {
		return Redraw{}
	}

	log.Printf("Found %d matching %s", len(group.Photos), group.SearchTerm)
	c.store.Prepend(group)

	// Existing sections moved down by one; keep expansion on the same photo
	if c.expanded != nil {
		c.expanded.Section++
	}

	c.publish(domain.SearchCompletedEvent{Term: group.SearchTerm, PhotoCount: len(group.Photos)})
	return Redraw{Full: true}
}

// Searching reports whether any search is in flight
func (c *Controller) Searching() bool {
	return c.pendingSearches > 0
}

// PendingSearches returns the number of searches in flight
func (c *Controller) PendingSearches() int {
	return c.pendingSearches
}

// Grid data

func (c *Controller) Sections() int {
	return c.store.Sections()
}

func (c *Controller) Items(section int) int {
	return c.store.Items(section)
}

func (c *Controller) SearchTerm(section int) string {
	group, ok := c.store.Group(section)
	if !ok {
		return ""
	}
	return group.SearchTerm
}

func (c *Controller) Photo(ref domain.CellRef) (*domain.Photo, bool) {
	return c.store.Photo(ref)
}

// CellSize returns the size of the cell at ref inside a container of bounds
func (c *Controller) CellSize(ref domain.CellRef, bounds domain.Size) domain.Size {
	if c.IsExpanded(ref) {
		if photo, ok := c.store.Photo(ref); ok {
			return c.layout.ExpandedSize(photo, bounds)
		}
	}
	side := c.layout.ThumbnailSide(bounds.Width)
	return domain.Size{Width: side, Height: side}
}

// Expansion

// Expanded returns the expanded cell, if any
func (c *Controller) Expanded() (domain.CellRef, bool) {
	if c.expanded == nil {
		return domain.CellRef{}, false
	}
	return *c.expanded, true
}

func (c *Controller) IsExpanded(ref domain.CellRef) bool {
	return c.expanded != nil && *c.expanded == ref
}

// Generation identifies the current expansion target
func (c *Controller) Generation() uint64 {
	return c.generation
}

// Tap handles a tap on a cell: selection while sharing, expansion otherwise
func (c *Controller) Tap(ref domain.CellRef) (Redraw, *LargeImageRequest) {
	if _, ok := c.store.Photo(ref); !ok {
		return Redraw{}, nil
	}
	if c.sharing {
		return c.ToggleSelection(ref), nil
	}
	if c.IsExpanded(ref) {
		return c.Collapse(), nil
	}
	return c.Expand(ref)
}

// Expand makes ref the expanded cell. The returned request is non-nil when the
// large image still has to be fetched.
func (c *Controller) Expand(ref domain.CellRef) (Redraw, *LargeImageRequest) {
	photo, ok := c.store.Photo(ref)
	if !ok || c.IsExpanded(ref) {
		return Redraw{}, nil
	}

	cells := []domain.CellRef{ref}
	if c.expanded != nil {
		cells = append(cells, *c.expanded)
	}

	target := ref
	c.expanded = &target
	c.generation++

	redraw := Redraw{Cells: cells, ScrollTo: &target}
	if photo.LargeImage != nil {
		return redraw, nil
	}
	return redraw, &LargeImageRequest{Ref: ref, Photo: photo, Generation: c.generation}
}

// Collapse clears the expanded cell
func (c *Controller) Collapse() Redraw {
	if c.expanded == nil {
		return Redraw{}
	}
	old := *c.expanded
	c.expanded = nil
	c.generation++
	return Redraw{Cells: []domain.CellRef{old}}
}

// CompleteLargeImage applies a finished large image fetch. The image is cached on
// the photo either way; the cell is only redrawn when req still matches the
// current expansion target.
func (c *Controller) CompleteLargeImage(req LargeImageRequest, img image.Image, err error) (Redraw, bool) {
	if req.Photo == nil {
		return Redraw{}, false
	}
	if err != nil {
		log.Printf("Error loading large image for %s: %v", req.Photo.ID, err)
		c.publish(domain.LargeImageFailedEvent{PhotoID: req.Photo.ID, Err: err})
		return Redraw{}, false
	}

	if img != nil && req.Photo.LargeImage == nil {
		req.Photo.LargeImage = img
	}

	if c.expanded == nil || req.Generation != c.generation {
		c.publish(domain.LargeImageLoadedEvent{PhotoID: req.Photo.ID, Applied: false})
		return Redraw{}, false
	}

	c.publish(domain.LargeImageLoadedEvent{PhotoID: req.Photo.ID, Applied: true})
	return Redraw{Cells: []domain.CellRef{*c.expanded}}, true
}

// Sharing

// Sharing reports whether sharing mode is on
func (c *Controller) Sharing() bool {
	return c.sharing
}

// EnterSharing switches taps to selection. Selection and expansion are cleared.
func (c *Controller) EnterSharing() Redraw {
	c.selected = nil
	c.Collapse()
	if !c.sharing {
		c.sharing = true
		c.publish(domain.SharingChangedEvent{Sharing: true})
	}
	return Redraw{Full: true}
}

// ExitSharing switches taps back to expansion and clears the selection
func (c *Controller) ExitSharing() Redraw {
	c.selected = nil
	if c.sharing {
		c.sharing = false
		c.publish(domain.SharingChangedEvent{Sharing: false})
	}
	return Redraw{Full: true}
}

// ToggleSelection adds or removes the photo at ref from the selection
func (c *Controller) ToggleSelection(ref domain.CellRef) Redraw {
	if !c.sharing {
		return Redraw{}
	}
	photo, ok := c.store.Photo(ref)
	if !ok {
		return Redraw{}
	}

	if i := c.indexOfSelected(photo); i >= 0 {
		c.selected = append(c.selected[:i], c.selected[i+1:]...)
	} else {
		c.selected = append(c.selected, photo)
	}

	c.publish(domain.SelectionChangedEvent{Total: len(c.selected)})
	return Redraw{Cells: []domain.CellRef{ref}}
}

func (c *Controller) indexOfSelected(photo *domain.Photo) int {
	for i, p := range c.selected {
		if p == photo {
			return i
		}
	}
	return -1
}

func (c *Controller) IsSelected(ref domain.CellRef) bool {
	photo, ok := c.store.Photo(ref)
	return ok && c.indexOfSelected(photo) >= 0
}

// Selected returns the selected photos in selection order
func (c *Controller) Selected() []*domain.Photo {
	return append([]*domain.Photo(nil), c.selected...)
}

// SelectionLabel is the running count shown while sharing
func (c *Controller) SelectionLabel() string {
	if !c.sharing {
		return ""
	}
	return fmt.Sprintf("%d photos selected", len(c.selected))
}

// Share runs the share action. With nothing selected it toggles sharing mode.
func (c *Controller) Share() ShareDecision {
	if c.store.Sections() == 0 {
		return ShareDecision{Kind: ShareNone}
	}

	if len(c.selected) == 0 {
		var redraw Redraw
		if c.sharing {
			redraw = c.ExitSharing()
		} else {
			redraw = c.EnterSharing()
		}
		return ShareDecision{Kind: ShareToggled, Redraw: redraw}
	}

	if !c.sharing {
		return ShareDecision{Kind: ShareNone}
	}

	photos := make([]*domain.Photo, 0, len(c.selected))
	for _, p := range c.selected {
		if p.Thumbnail != nil {
			photos = append(photos, p)
		}
	}
	if len(photos) == 0 {
		return ShareDecision{Kind: ShareNone}
	}

	return ShareDecision{Kind: ShareImages, Photos: photos}
}

// CompleteShare ends a share of count photos started by Share. Success,
// failure and cancellation all leave sharing mode.
func (c *Controller) CompleteShare(count int, err error) Redraw {
	if err != nil {
		log.Printf("Share finished with error: %v", err)
	}
	c.publish(domain.ShareCompletedEvent{Count: count, Err: err})
	return c.ExitSharing()
}

// Reorder

// CanDrag reports whether the photo at ref can be picked up
func (c *Controller) CanDrag(ref domain.CellRef) bool {
	photo, ok := c.store.Photo(ref)
	return ok && photo.Thumbnail != nil
}

// Move removes the photo at src and inserts it at dst, which is its final
// position. An expanded photo that is moved is collapsed; otherwise expansion
// follows its photo.
func (c *Controller) Move(src, dst domain.CellRef) (Redraw, error) {
	photo, ok := c.store.Photo(src)
	if !ok {
		return Redraw{}, fmt.Errorf("move from %v: %w", src, ErrInvalidCell)
	}
	group, ok := c.store.Group(dst.Section)
	if !ok {
		return Redraw{}, fmt.Errorf("move to %v: %w", dst, ErrInvalidCell)
	}
	limit := len(group.Photos)
	if dst.Section == src.Section {
		limit--
	}
	if dst.Item < 0 || dst.Item > limit {
		return Redraw{}, fmt.Errorf("move to %v: %w", dst, ErrInvalidCell)
	}
	if src == dst {
		return Redraw{}, nil
	}

	var expandedPhoto *domain.Photo
	if c.expanded != nil {
		expandedPhoto, _ = c.store.Photo(*c.expanded)
	}

	if _, err := c.store.Remove(src); err != nil {
		return Redraw{}, err
	}
	if err := c.store.Insert(photo, dst); err != nil {
		return Redraw{}, err
	}

	switch {
	case expandedPhoto == nil:
	case expandedPhoto == photo:
		c.expanded = nil
		c.generation++
	default:
		if ref, ok := c.store.IndexOf(expandedPhoto); ok {
			c.expanded = &ref
		}
	}

	c.publish(domain.PhotoMovedEvent{PhotoID: photo.ID, From: src, To: dst})
	target := dst
	return Redraw{Full: true, ScrollTo: &target}, nil
}
