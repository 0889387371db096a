package share

import (
	"context"
	"errors"
	"fmt"
	"image/jpeg"
	"log"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const maxNameLen = 80

// DirectorySharer saves photos as JPEG files in a directory
type DirectorySharer struct {
	dir    string
	reveal bool
}

func NewDirectorySharer(dir string, reveal bool) *DirectorySharer {
	return &DirectorySharer{dir: dir, reveal: reveal}
}

func (s *DirectorySharer) Describe(count int) string {
	return fmt.Sprintf("Saved %d photos to %s", count, s.dir)
}

// Share writes every item with an image. Items are written until the first error.
func (s *DirectorySharer) Share(ctx context.Context, items []Item) error {
	if len(items) == 0 {
		return ErrNothingToShare
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create share directory: %w", err)
	}

	var last string
	for _, item := range items {
		if err := ctx.Err(); err != nil {
			return err
		}
		if item.Image == nil {
			continue
		}
		path, err := uniqueFilePath(s.dir, filenameForItem(item))
		if err != nil {
			return err
		}
		if err := writeJPEG(item, path); err != nil {
			return fmt.Errorf("failed to save %s: %w", item.Name, err)
		}
		log.Printf("Shared %s to %s", item.Name, path)
		last = path
	}

	if s.reveal && last != "" {
		if err := Reveal(last); err != nil {
			log.Printf("Reveal failed: %v", err)
		}
	}
	return nil
}

func writeJPEG(item Item, dest string) error {
	tmp, err := os.CreateTemp(filepath.Dir(dest), "photogrid-*.jpg")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := jpeg.Encode(tmp, item.Image, &jpeg.Options{Quality: 90}); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), dest)
}

func filenameForItem(item Item) string {
	name := strings.Join(strings.Fields(item.Name), " ")
	name = sanitizeFilename(name)
	if !strings.HasSuffix(strings.ToLower(name), ".jpg") {
		name += ".jpg"
	}
	if len(name) > maxNameLen {
		base := strings.TrimSuffix(name, ".jpg")
		name = base[:maxNameLen-len(".jpg")] + ".jpg"
	}
	return name
}

func sanitizeFilename(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r > unicode.MaxASCII:
			b.WriteRune('_')
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	out := strings.Trim(b.String(), "._-")
	if out == "" {
		return "photo"
	}
	return out
}

func uniqueFilePath(dir, filename string) (string, error) {
	path := filepath.Join(dir, filename)
	_, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return path, nil
	}
	if err != nil {
		return "", err
	}

	base := strings.TrimSuffix(filename, filepath.Ext(filename))
	ext := filepath.Ext(filename)
	for i := 1; i < 1000; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s-%d%s", base, i, ext))
		if _, err := os.Stat(candidate); errors.Is(err, os.ErrNotExist) {
			return candidate, nil
		}
	}
	return "", errors.New("could not pick filename")
}
