// Package favorite tracks the set of items the user has liked.
package favorite

import (
	"github.com/psingh05395/swadhyatra/internal/domain/catalog"
)

// Set is a duplicate-free collection of favorite items keyed by item
// identifier, kept in insertion order for display.
// Not safe for concurrent use; state is single-owner.
type Set struct {
	items []catalog.Item
	byID  map[string]struct{}
}

// NewSet returns an empty favorite set.
func NewSet() *Set {
	return &Set{byID: make(map[string]struct{})}
}

// Toggle removes the item when it is already a member, otherwise adds it.
// It returns true when the item is a favorite after the call. Toggling twice
// restores the original membership.
func (s *Set) Toggle(item catalog.Item) bool {
	if _, ok := s.byID[item.ID]; ok {
		s.Remove(item.ID)
		return false
	}
	s.Add(item)
	return true
}

// Add inserts the item unless it is already a member.
func (s *Set) Add(item catalog.Item) {
	if _, ok := s.byID[item.ID]; ok {
		return
	}
	s.byID[item.ID] = struct{}{}
	s.items = append(s.items, item)
}

// Remove deletes the item with the given identifier. Removing a non-member
// is a no-op.
func (s *Set) Remove(itemID string) {
	if _, ok := s.byID[itemID]; !ok {
		return
	}
	delete(s.byID, itemID)
	for i := range s.items {
		if s.items[i].ID == itemID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return
		}
	}
}

// IsFavorite reports whether the item is a member of the set.
func (s *Set) IsFavorite(itemID string) bool {
	_, ok := s.byID[itemID]
	return ok
}

// Items returns the favorite items in insertion order.
func (s *Set) Items() []catalog.Item {
	out := make([]catalog.Item, len(s.items))
	copy(out, s.items)
	return out
}

// Len returns the number of favorites.
func (s *Set) Len() int {
	return len(s.items)
}

// Clear removes all favorites.
func (s *Set) Clear() {
	s.items = nil
	s.byID = make(map[string]struct{})
}
