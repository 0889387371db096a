package gallery

import (
	"errors"
	"fmt"

	"photogrid/internal/domain"
)

// ErrInvalidCell is returned for a cell reference outside the store
var ErrInvalidCell = errors.New("invalid cell")

// Store holds the search result groups, newest first
type Store struct {
	groups []*domain.SearchResultGroup
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Prepend adds a group at position 0
func (s *Store) Prepend(group *domain.SearchResultGroup) {
	s.groups = append([]*domain.SearchResultGroup{group}, s.groups...)
}

// Sections returns the number of groups
func (s *Store) Sections() int {
	return len(s.groups)
}

// Items returns the number of photos in a group, 0 for an unknown section
func (s *Store) Items(section int) int {
	if section < 0 || section >= len(s.groups) {
		return 0
	}
	return len(s.groups[section].Photos)
}

// Group returns the group at section
func (s *Store) Group(section int) (*domain.SearchResultGroup, bool) {
	if section < 0 || section >= len(s.groups) {
		return nil, false
	}
	return s.groups[section], true
}

// Photo returns the photo at ref
func (s *Store) Photo(ref domain.CellRef) (*domain.Photo, bool) {
	group, ok := s.Group(ref.Section)
	if !ok || ref.Item < 0 || ref.Item >= len(group.Photos) {
		return nil, false
	}
	return group.Photos[ref.Item], true
}

// Remove takes the photo at ref out of its group
func (s *Store) Remove(ref domain.CellRef) (*domain.Photo, error) {
	photo, ok := s.Photo(ref)
	if !ok {
		return nil, fmt.Errorf("remove %v: %w", ref, ErrInvalidCell)
	}
	group := s.groups[ref.Section]
	group.Photos = append(group.Photos[:ref.Item], group.Photos[ref.Item+1:]...)
	return photo, nil
}

// Insert puts photo at ref. ref.Item may equal the group length to append.
func (s *Store) Insert(photo *domain.Photo, ref domain.CellRef) error {
	group, ok := s.Group(ref.Section)
	if !ok || ref.Item < 0 || ref.Item > len(group.Photos) {
		return fmt.Errorf("insert %v: %w", ref, ErrInvalidCell)
	}
	group.Photos = append(group.Photos, nil)
	copy(group.Photos[ref.Item+1:], group.Photos[ref.Item:])
	group.Photos[ref.Item] = photo
	return nil
}

// IndexOf finds the cell currently holding photo
func (s *Store) IndexOf(photo *domain.Photo) (domain.CellRef, bool) {
	for section, group := range s.groups {
		for item, p := range group.Photos {
			if p == photo {
				return domain.CellRef{Section: section, Item: item}, true
			}
		}
	}
	return domain.CellRef{}, false
}
