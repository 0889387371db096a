package gallery

import (
	"errors"
	"image"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"photogrid/internal/domain"
)

type recordingBus struct {
	mu     sync.Mutex
	events []domain.DomainEvent
}

func (b *recordingBus) Publish(event domain.DomainEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

func (b *recordingBus) last() domain.DomainEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.events) == 0 {
		return nil
	}
	return b.events[len(b.events)-1]
}

func thumb() image.Image {
	return image.NewRGBA(image.Rect(0, 0, 4, 4))
}

func newTestController(t *testing.T, groups ...*domain.SearchResultGroup) (*Controller, *recordingBus) {
	t.Helper()
	bus := &recordingBus{}
	c := NewController(NewLayout(3, domain.Insets{Top: 2, Left: 2, Bottom: 2, Right: 2}), bus)
	// groups are given oldest first
	for _, g := range groups {
		term, err := c.SubmitSearch(g.SearchTerm)
		require.NoError(t, err)
		c.CompleteSearch(term, g, nil)
	}
	return c, bus
}

func group(term string, ids ...string) *domain.SearchResultGroup {
	g := &domain.SearchResultGroup{SearchTerm: term, Photos: photos(ids...)}
	for _, p := range g.Photos {
		p.Thumbnail = thumb()
	}
	return g
}

func TestSubmitSearchRejectsEmptyQuery(t *testing.T) {
	c, _ := newTestController(t)

	_, err := c.SubmitSearch("   ")
	assert.ErrorIs(t, err, ErrEmptyQuery)
	assert.False(t, c.Searching())
	assert.Equal(t, 0, c.Sections())
}

func TestCompleteSearchPrependsGroups(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a"), group("dogs", "b", "c"))

	assert.Equal(t, 2, c.Sections())
	assert.Equal(t, "dogs", c.SearchTerm(0))
	assert.Equal(t, "cats", c.SearchTerm(1))
	assert.False(t, c.Searching())
	assert.Equal(t, domain.SearchCompletedEvent{Term: "dogs", PhotoCount: 2}, bus.last())
}

func TestCompleteSearchFailureLeavesStoreUnchanged(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a"))

	term, err := c.SubmitSearch("dogs")
	require.NoError(t, err)
	assert.True(t, c.Searching())

	redraw := c.CompleteSearch(term, nil, errors.New("offline"))
	assert.True(t, redraw.IsEmpty())
	assert.Equal(t, 1, c.Sections())
	assert.False(t, c.Searching())
	assert.IsType(t, domain.SearchFailedEvent{}, bus.last())
}

func TestTapExpandsThenCollapses(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a", "b"))
	ref := domain.CellRef{Section: 0, Item: 1}

	redraw, req := c.Tap(ref)
	require.NotNil(t, req)
	assert.Equal(t, ref, req.Ref)
	assert.Equal(t, c.Generation(), req.Generation)
	assert.Equal(t, []domain.CellRef{ref}, redraw.Cells)
	require.NotNil(t, redraw.ScrollTo)
	assert.Equal(t, ref, *redraw.ScrollTo)
	assert.True(t, c.IsExpanded(ref))

	redraw, req = c.Tap(ref)
	assert.Nil(t, req)
	assert.Equal(t, []domain.CellRef{ref}, redraw.Cells)
	assert.False(t, c.IsExpanded(ref))
	_, ok := c.Expanded()
	assert.False(t, ok)
}

func TestExpandAnotherCellRedrawsBoth(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a", "b"))
	first := domain.CellRef{Section: 0, Item: 0}
	second := domain.CellRef{Section: 0, Item: 1}

	c.Tap(first)
	redraw, _ := c.Tap(second)

	assert.Equal(t, []domain.CellRef{second, first}, redraw.Cells)
	assert.True(t, c.IsExpanded(second))
	assert.False(t, c.IsExpanded(first))
}

func TestExpandWithCachedLargeImageSkipsFetch(t *testing.T) {
	g := group("cats", "a")
	g.Photos[0].LargeImage = thumb()
	c, _ := newTestController(t, g)

	_, req := c.Tap(domain.CellRef{})
	assert.Nil(t, req)
}

func TestCellSizeForExpandedCell(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a", "b"))
	bounds := domain.Size{Width: 98, Height: 200}

	assert.Equal(t, domain.Size{Width: 30, Height: 30}, c.CellSize(domain.CellRef{}, bounds))

	c.Tap(domain.CellRef{})
	// square thumbnail fills the content width
	assert.Equal(t, domain.Size{Width: 94, Height: 94}, c.CellSize(domain.CellRef{}, bounds))
}

func TestCompleteLargeImageApplied(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a"))
	_, req := c.Tap(domain.CellRef{})
	require.NotNil(t, req)

	large := image.NewRGBA(image.Rect(0, 0, 40, 40))
	redraw, applied := c.CompleteLargeImage(*req, large, nil)

	assert.True(t, applied)
	assert.Equal(t, []domain.CellRef{{}}, redraw.Cells)
	assert.Same(t, large, req.Photo.LargeImage)
	assert.Equal(t, domain.LargeImageLoadedEvent{PhotoID: "a", Applied: true}, bus.last())
}

func TestCompleteLargeImageStaleIsCachedButNotApplied(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a", "b"))
	_, req := c.Tap(domain.CellRef{Section: 0, Item: 0})
	require.NotNil(t, req)

	// expansion moved on before the fetch finished
	c.Tap(domain.CellRef{Section: 0, Item: 1})

	large := image.NewRGBA(image.Rect(0, 0, 40, 40))
	redraw, applied := c.CompleteLargeImage(*req, large, nil)

	assert.False(t, applied)
	assert.True(t, redraw.IsEmpty())
	assert.Same(t, large, req.Photo.LargeImage)
	assert.Equal(t, domain.LargeImageLoadedEvent{PhotoID: "a", Applied: false}, bus.last())
}

func TestCompleteLargeImageAfterCollapseNotApplied(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a"))
	_, req := c.Tap(domain.CellRef{})
	c.Tap(domain.CellRef{})

	_, applied := c.CompleteLargeImage(*req, thumb(), nil)
	assert.False(t, applied)
}

func TestCompleteLargeImageError(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a"))
	_, req := c.Tap(domain.CellRef{})

	_, applied := c.CompleteLargeImage(*req, nil, errors.New("404"))
	assert.False(t, applied)
	assert.Nil(t, req.Photo.LargeImage)
	assert.IsType(t, domain.LargeImageFailedEvent{}, bus.last())
}

func TestSearchCompletionKeepsExpansionOnSamePhoto(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a", "b"))
	c.Tap(domain.CellRef{Section: 0, Item: 1})

	term, _ := c.SubmitSearch("dogs")
	c.CompleteSearch(term, group("dogs", "x"), nil)

	ref, ok := c.Expanded()
	require.True(t, ok)
	assert.Equal(t, domain.CellRef{Section: 1, Item: 1}, ref)
}

func TestEnterSharingClearsSelectionAndExpansion(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a", "b"))
	c.Tap(domain.CellRef{})

	redraw := c.EnterSharing()
	assert.True(t, redraw.Full)
	assert.True(t, c.Sharing())
	_, ok := c.Expanded()
	assert.False(t, ok)
	assert.Empty(t, c.Selected())
	assert.Equal(t, domain.SharingChangedEvent{Sharing: true}, bus.last())
	assert.Equal(t, "0 photos selected", c.SelectionLabel())

	c.Tap(domain.CellRef{Section: 0, Item: 1})
	assert.Equal(t, "1 photos selected", c.SelectionLabel())

	c.EnterSharing()
	assert.Empty(t, c.Selected())
}

func TestTapWhileSharingTogglesSelection(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a", "b"))
	c.EnterSharing()
	ref := domain.CellRef{Section: 0, Item: 1}

	redraw, req := c.Tap(ref)
	assert.Nil(t, req)
	assert.Equal(t, []domain.CellRef{ref}, redraw.Cells)
	assert.True(t, c.IsSelected(ref))
	assert.False(t, c.IsExpanded(ref))

	c.Tap(ref)
	assert.False(t, c.IsSelected(ref))
}

func TestShareWithoutSearchesDoesNothing(t *testing.T) {
	c, _ := newTestController(t)
	assert.Equal(t, ShareNone, c.Share().Kind)
	assert.False(t, c.Sharing())
}

func TestShareWithEmptySelectionTogglesSharing(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a"))

	decision := c.Share()
	assert.Equal(t, ShareToggled, decision.Kind)
	assert.Empty(t, decision.Photos)
	assert.True(t, c.Sharing())

	decision = c.Share()
	assert.Equal(t, ShareToggled, decision.Kind)
	assert.False(t, c.Sharing())
	assert.Equal(t, "", c.SelectionLabel())
}

func TestShareSelectedPhotos(t *testing.T) {
	g := group("cats", "a", "b", "c")
	g.Photos[2].Thumbnail = nil
	c, bus := newTestController(t, g)
	c.EnterSharing()
	c.Tap(domain.CellRef{Section: 0, Item: 1})
	c.Tap(domain.CellRef{Section: 0, Item: 0})
	c.Tap(domain.CellRef{Section: 0, Item: 2})

	decision := c.Share()
	require.Equal(t, ShareImages, decision.Kind)
	require.Len(t, decision.Photos, 2)
	assert.Equal(t, "b", decision.Photos[0].ID)
	assert.Equal(t, "a", decision.Photos[1].ID)

	redraw := c.CompleteShare(len(decision.Photos), nil)
	assert.True(t, redraw.Full)
	assert.False(t, c.Sharing())
	assert.Empty(t, c.Selected())
	assert.Contains(t, bus.events, domain.ShareCompletedEvent{Count: 2})
}

func TestCompleteShareReportsSharedCount(t *testing.T) {
	c, bus := newTestController(t, group("cats", "a", "b", "c"))
	c.EnterSharing()
	c.Tap(domain.CellRef{Section: 0, Item: 0})
	c.Tap(domain.CellRef{Section: 0, Item: 1})

	decision := c.Share()
	require.Len(t, decision.Photos, 2)

	// selection keeps changing while the share sheet is up
	c.Tap(domain.CellRef{Section: 0, Item: 2})
	c.Tap(domain.CellRef{Section: 0, Item: 0})

	c.CompleteShare(len(decision.Photos), nil)
	assert.Contains(t, bus.events, domain.ShareCompletedEvent{Count: 2})
	assert.NotContains(t, bus.events, domain.ShareCompletedEvent{Count: 3})
}

func TestShareWithOnlyPhotosMissingThumbnails(t *testing.T) {
	g := group("cats", "a")
	g.Photos[0].Thumbnail = nil
	c, _ := newTestController(t, g)
	c.EnterSharing()
	c.Tap(domain.CellRef{})

	assert.Equal(t, ShareNone, c.Share().Kind)
	assert.True(t, c.Sharing())
}

func TestCompleteShareErrorExitsSharing(t *testing.T) {
	c, _ := newTestController(t, group("cats", "a"))
	c.EnterSharing()
	c.Tap(domain.CellRef{})

	c.CompleteShare(1, errors.New("cancelled"))
	assert.False(t, c.Sharing())
	assert.Empty(t, c.Selected())
}

func TestMoveWithinSection(t *testing.T) {
	g := group("cats", "A", "B", "C", "D", "E")
	c, bus := newTestController(t, g)

	redraw, err := c.Move(domain.CellRef{Section: 0, Item: 2}, domain.CellRef{Section: 0, Item: 0})
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "A", "B", "D", "E"}, ids(g))
	assert.True(t, redraw.Full)
	require.NotNil(t, redraw.ScrollTo)
	assert.Equal(t, domain.CellRef{Section: 0, Item: 0}, *redraw.ScrollTo)
	assert.Equal(t, domain.PhotoMovedEvent{
		PhotoID: "C",
		From:    domain.CellRef{Section: 0, Item: 2},
		To:      domain.CellRef{Section: 0, Item: 0},
	}, bus.last())
}

func TestMoveToEndOfSection(t *testing.T) {
	g := group("cats", "A", "B", "C")
	c, _ := newTestController(t, g)

	_, err := c.Move(domain.CellRef{Section: 0, Item: 0}, domain.CellRef{Section: 0, Item: 2})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, ids(g))

	_, err = c.Move(domain.CellRef{Section: 0, Item: 0}, domain.CellRef{Section: 0, Item: 3})
	assert.ErrorIs(t, err, ErrInvalidCell)
	assert.Equal(t, []string{"B", "C", "A"}, ids(g))
}

func TestMoveAcrossSections(t *testing.T) {
	cats := group("cats", "A", "B")
	dogs := group("dogs", "X")
	c, _ := newTestController(t, cats, dogs)

	// dogs is section 0, cats section 1
	_, err := c.Move(domain.CellRef{Section: 1, Item: 0}, domain.CellRef{Section: 0, Item: 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"X", "A"}, ids(dogs))
	assert.Equal(t, []string{"B"}, ids(cats))
}

func TestMoveKeepsExpansionOnItsPhoto(t *testing.T) {
	g := group("cats", "A", "B", "C")
	c, _ := newTestController(t, g)
	c.Tap(domain.CellRef{Section: 0, Item: 1})
	gen := c.Generation()

	_, err := c.Move(domain.CellRef{Section: 0, Item: 2}, domain.CellRef{Section: 0, Item: 0})
	require.NoError(t, err)

	ref, ok := c.Expanded()
	require.True(t, ok)
	assert.Equal(t, domain.CellRef{Section: 0, Item: 2}, ref)
	assert.Equal(t, gen, c.Generation())
}

func TestMovingExpandedPhotoCollapsesIt(t *testing.T) {
	c, _ := newTestController(t, group("cats", "A", "B", "C"))
	_, req := c.Tap(domain.CellRef{Section: 0, Item: 1})

	_, err := c.Move(domain.CellRef{Section: 0, Item: 1}, domain.CellRef{Section: 0, Item: 0})
	require.NoError(t, err)

	_, ok := c.Expanded()
	assert.False(t, ok)
	_, applied := c.CompleteLargeImage(*req, thumb(), nil)
	assert.False(t, applied)
}

func TestMoveSelectionFollowsPhoto(t *testing.T) {
	c, _ := newTestController(t, group("cats", "A", "B", "C"))
	c.EnterSharing()
	c.Tap(domain.CellRef{Section: 0, Item: 0})

	_, err := c.Move(domain.CellRef{Section: 0, Item: 0}, domain.CellRef{Section: 0, Item: 2})
	require.NoError(t, err)
	assert.True(t, c.IsSelected(domain.CellRef{Section: 0, Item: 2}))
	assert.False(t, c.IsSelected(domain.CellRef{Section: 0, Item: 0}))
}

func TestMoveRejectsInvalidCells(t *testing.T) {
	c, _ := newTestController(t, group("cats", "A"))

	_, err := c.Move(domain.CellRef{Section: 0, Item: 4}, domain.CellRef{})
	assert.ErrorIs(t, err, ErrInvalidCell)
	_, err = c.Move(domain.CellRef{}, domain.CellRef{Section: 2, Item: 0})
	assert.ErrorIs(t, err, ErrInvalidCell)

	redraw, err := c.Move(domain.CellRef{}, domain.CellRef{})
	require.NoError(t, err)
	assert.True(t, redraw.IsEmpty())
}

func TestCanDragRequiresThumbnail(t *testing.T) {
	g := group("cats", "A", "B")
	g.Photos[1].Thumbnail = nil
	c, _ := newTestController(t, g)

	assert.True(t, c.CanDrag(domain.CellRef{Section: 0, Item: 0}))
	assert.False(t, c.CanDrag(domain.CellRef{Section: 0, Item: 1}))
	assert.False(t, c.CanDrag(domain.CellRef{Section: 0, Item: 9}))
}
