package handlers

import (
	"errors"
	"fmt"

	"photogrid/internal/eventbus"
	"photogrid/internal/flickr"
	"photogrid/internal/ui/views"
)

// Status is a message for the status line
type Status struct {
	Message string
	Kind    views.StatusKind
}

// EventHandler turns domain events into status line messages
type EventHandler struct{}

// NewEventHandler creates a new event handler
func NewEventHandler() *EventHandler {
	return &EventHandler{}
}

// HandleEvent returns the status to show for event, if any
func (h *EventHandler) HandleEvent(event eventbus.DomainEvent) (Status, bool) {
	switch e := event.(type) {
	case eventbus.SearchCompletedEvent:
		if e.PhotoCount == 0 {
			return Status{Message: fmt.Sprintf("No photos found for %q", e.Term)}, true
		}
		return Status{Message: fmt.Sprintf("Found %d photos for %q", e.PhotoCount, e.Term), Kind: views.StatusSuccess}, true

	case eventbus.SearchFailedEvent:
		return Status{Message: searchFailureMessage(e), Kind: views.StatusError}, true

	case eventbus.LargeImageFailedEvent:
		return Status{Message: fmt.Sprintf("Could not load photo %s: %v", e.PhotoID, e.Err), Kind: views.StatusError}, true

	case eventbus.PhotoMovedEvent:
		return Status{Message: fmt.Sprintf("Moved photo %s", e.PhotoID)}, true

	case eventbus.SharingChangedEvent:
		if e.Sharing {
			return Status{Message: "Select photos with Space, s to share, Esc to cancel"}, true
		}
		return Status{}, false

	case eventbus.ShareCompletedEvent:
		if e.Err != nil {
			return Status{Message: fmt.Sprintf("Share failed: %v", e.Err), Kind: views.StatusError}, true
		}
		return Status{}, false
	}

	return Status{}, false
}

func searchFailureMessage(e eventbus.SearchFailedEvent) string {
	var apiErr *flickr.APIError
	switch {
	case errors.Is(e.Err, flickr.ErrMissingAPIKey):
		return "No Flickr API key: set FLICKR_API_KEY or pass --api-key"
	case errors.As(e.Err, &apiErr):
		return fmt.Sprintf("Flickr refused search for %q: %s", e.Term, apiErr.Message)
	default:
		return fmt.Sprintf("Search for %q failed: %v", e.Term, e.Err)
	}
}
