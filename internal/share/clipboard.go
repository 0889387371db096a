package share

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

var writeClipboard = clipboard.WriteAll

// ClipboardSharer copies photo URLs to the system clipboard, one per line
type ClipboardSharer struct{}

func NewClipboardSharer() *ClipboardSharer {
	return &ClipboardSharer{}
}

func (s *ClipboardSharer) Describe(count int) string {
	return fmt.Sprintf("Copied %d photo links", count)
}

func (s *ClipboardSharer) Share(_ context.Context, items []Item) error {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		if item.URL != "" {
			lines = append(lines, item.URL)
		}
	}
	if len(lines) == 0 {
		return ErrNothingToShare
	}
	if err := writeClipboard(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("failed to write clipboard: %w", err)
	}
	return nil
}
