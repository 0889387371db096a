package domain

// EventType represents the type of domain event
type EventType string

// Event types
const (
	EventSearchStarted    EventType = "SearchStarted"
	EventSearchCompleted  EventType = "SearchCompleted"
	EventSearchFailed     EventType = "SearchFailed"
	EventLargeImageLoaded EventType = "LargeImageLoaded"
	EventLargeImageFailed EventType = "LargeImageFailed"
	EventPhotoMoved       EventType = "PhotoMoved"
	EventSharingChanged   EventType = "SharingChanged"
	EventSelectionChanged EventType = "SelectionChanged"
	EventShareCompleted   EventType = "ShareCompleted"
)

// DomainEvent is the interface for all domain events
type DomainEvent interface {
	Type() EventType
}

// SearchStartedEvent is emitted when a search request is issued
type SearchStartedEvent struct {
	Term string
}

func (e SearchStartedEvent) Type() EventType { return EventSearchStarted }

// SearchCompletedEvent is emitted when a search group was added to the store
type SearchCompletedEvent struct {
	Term       string
	PhotoCount int
}

func (e SearchCompletedEvent) Type() EventType { return EventSearchCompleted }

// SearchFailedEvent is emitted when a search request failed
type SearchFailedEvent struct {
	Term string
	Err  error
}

func (e SearchFailedEvent) Type() EventType { return EventSearchFailed }

// LargeImageLoadedEvent is emitted when a large image arrived.
// Applied is false when the cell was no longer expanded.
type LargeImageLoadedEvent struct {
	PhotoID string
	Applied bool
}

func (e LargeImageLoadedEvent) Type() EventType { return EventLargeImageLoaded }

// LargeImageFailedEvent is emitted when a large image fetch failed
type LargeImageFailedEvent struct {
	PhotoID string
	Err     error
}

func (e LargeImageFailedEvent) Type() EventType { return EventLargeImageFailed }

// PhotoMovedEvent is emitted after a drag and drop reorder
type PhotoMovedEvent struct {
	PhotoID string
	From    CellRef
	To      CellRef
}

func (e PhotoMovedEvent) Type() EventType { return EventPhotoMoved }

// SharingChangedEvent is emitted when sharing mode is entered or left
type SharingChangedEvent struct {
	Sharing bool
}

func (e SharingChangedEvent) Type() EventType { return EventSharingChanged }

// SelectionChangedEvent is emitted when the share selection changes
type SelectionChangedEvent struct {
	Total int
}

func (e SelectionChangedEvent) Type() EventType { return EventSelectionChanged }

// ShareCompletedEvent is emitted when the share target finished, successfully or not
type ShareCompletedEvent struct {
	Count int
	Err   error
}

func (e ShareCompletedEvent) Type() EventType { return EventShareCompleted }
