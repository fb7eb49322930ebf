package story

import (
	"github.com/myrjola/gumshoe/internal/models"
)

// ApplyUnlocks fires every unlock edge declared on an object. This is the only
// path that charges time for indirectly revealed locations, sublocations, and
// events; it is meant to run once, when the object is first examined. Each
// edge charges its time cost unconditionally, so calling it twice for the
// same object double-charges.
func (s *Store) ApplyUnlocks(objectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	object, ok := s.objects.get(objectID)
	if !ok {
		return
	}
	for _, unlock := range object.Unlocks {
		s.unlockEntityLocked(unlock.Type, unlock.Ref, unlock.Time)
	}
}

// IsSymbolVisible reports whether an entity can be offered as a drag symbol
// for the timeline board. Characters are always visible; objects and events
// only once unlocked.
func (s *Store) IsSymbolVisible(targetType models.TargetType, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch targetType {
	case models.TargetCharacter:
		_, ok := s.characters.get(id)
		return ok
	case models.TargetEvidence:
		object, ok := s.objects.get(id)
		return ok && object.HasBeenUnlocked
	case models.TargetEvent:
		event, ok := s.events.get(id)
		return ok && event.HasBeenUnlocked
	default:
		return false
	}
}

// SymbolSet is the full set of visible drag symbols partitioned for the
// timeline board.
type SymbolSet struct {
	Persons []models.Character
	Items   []models.StoryObject
	Events  []models.StoryEvent
}

// Symbols returns all currently visible drag symbols.
func (s *Store) Symbols() SymbolSet {
	s.mu.Lock()
	defer s.mu.Unlock()

	set := SymbolSet{
		Persons: s.characters.all(),
		Items:   []models.StoryObject{},
		Events:  []models.StoryEvent{},
	}
	for _, object := range s.objects.all() {
		if object.HasBeenUnlocked {
			set.Items = append(set.Items, object)
		}
	}
	for _, event := range s.events.all() {
		if event.HasBeenUnlocked {
			set.Events = append(set.Events, event)
		}
	}
	return set
}
