package share

import (
	"context"
	"errors"
	"fmt"
	"image"
	"strings"

	"photogrid/internal/config"
)

// ErrNothingToShare is returned when Share is called without items
var ErrNothingToShare = errors.New("nothing to share")

// Item is one photo handed to a share target
type Item struct {
	Name  string
	Image image.Image
	URL   string
}

// Sharer hands a set of photos to something outside the app
type Sharer interface {
	Share(ctx context.Context, items []Item) error
	// Describe is shown in the status line after a successful share
	Describe(count int) string
}

// New picks the share target configured in settings
func New(settings config.ShareSettings) (Sharer, error) {
	switch strings.ToLower(settings.Target) {
	case "", "directory":
		return NewDirectorySharer(settings.Directory, settings.Reveal), nil
	case "clipboard":
		return NewClipboardSharer(), nil
	default:
		return nil, fmt.Errorf("unknown share target: %s", settings.Target)
	}
}
