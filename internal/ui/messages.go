package ui

import (
	"image"

	"photogrid/internal/domain"
	"photogrid/internal/eventbus"
	"photogrid/internal/gallery"
)

// EventMsg wraps a domain event for the UI
type EventMsg struct {
	Event eventbus.DomainEvent
}

// searchResultMsg carries the outcome of a Flickr search
type searchResultMsg struct {
	term  string
	group *domain.SearchResultGroup
	err   error
}

// largeImageMsg carries the outcome of a large image fetch
type largeImageMsg struct {
	req gallery.LargeImageRequest
	img image.Image
	err error
}

// shareDoneMsg is sent when the share target finished
type shareDoneMsg struct {
	count int
	err   error
}

// clearStatusMsg clears the status line if it still shows message seq
type clearStatusMsg struct {
	seq int
}

// pauseRenderingMsg signals to pause Bubble Tea rendering
type pauseRenderingMsg struct{}

// resumeRenderingMsg signals to resume Bubble Tea rendering
type resumeRenderingMsg struct{}
