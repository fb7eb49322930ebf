package story

import (
	"sort"

	"github.com/myrjola/gumshoe/internal/models"
)

// EvidenceCard is a timeline entry with its source card resolved. Exactly one
// of Object and Character is non-nil, matching the entry's CardType.
type EvidenceCard struct {
	Evidence  models.Evidence
	Object    *models.StoryObject
	Character *models.Character
}

// Selectors are pure reads over the current state. They return copies; the
// collections themselves are never handed out.

func (s *Store) Metadata() models.Metadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.metadata
}

func (s *Store) StoryInfo() models.StoryInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.storyInfo
}

func (s *Store) IntroSlideshow() []models.Slide {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Slide{}, s.introSlideshow...)
}

func (s *Store) Characters() []models.Character {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.characters.all()
}

func (s *Store) Character(id string) (models.Character, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.characters.get(id)
}

func (s *Store) Objects() []models.StoryObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects.all()
}

func (s *Store) Object(id string) (models.StoryObject, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objects.get(id)
}

func (s *Store) Locations() []models.Location {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locations.all()
}

func (s *Store) Location(id string) (models.Location, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locations.get(id)
}

func (s *Store) Events() []models.StoryEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.all()
}

func (s *Store) Event(id string) (models.StoryEvent, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.events.get(id)
}

func (s *Store) Sublocations() []models.Sublocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sublocations.all()
}

func (s *Store) Sublocation(id string) (models.Sublocation, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sublocations.get(id)
}

func (s *Store) Testimonies() []models.Testimony {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.testimonies.all()
}

func (s *Store) Testimony(id string) (models.Testimony, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.testimonies.get(id)
}

func (s *Store) Bounties() []models.Bounty {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bounties.all()
}

func (s *Store) EvidenceGroups() []models.EvidenceGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.EvidenceGroup{}, s.evidenceGroups...)
}

func (s *Store) EvidenceStacks() []models.EvidenceGroup {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.EvidenceGroup{}, s.evidenceStacks...)
}

func (s *Store) CanonicalTimeline() []models.TimelineBeat {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TimelineBeat{}, s.canonicalTimeline...)
}

// Evidence returns the raw timeline entries in collection order.
func (s *Store) Evidence() []models.Evidence {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.Evidence{}, s.evidence...)
}

// EvidenceCards resolves every timeline entry against its source card, sorted
// ascending by collection time.
func (s *Store) EvidenceCards() []EvidenceCard {
	s.mu.Lock()
	defer s.mu.Unlock()

	cards := make([]EvidenceCard, 0, len(s.evidence))
	for _, entry := range s.evidence {
		card := EvidenceCard{Evidence: entry}
		switch entry.CardType {
		case models.CardTypeObject:
			if object, ok := s.objects.get(entry.CardID); ok {
				card.Object = &object
			}
		case models.CardTypeCharacter:
			if character, ok := s.characters.get(entry.CardID); ok {
				card.Character = &character
			}
		}
		cards = append(cards, card)
	}
	sort.SliceStable(cards, func(i, j int) bool {
		return cards[i].Evidence.CollectedAt.Before(cards[j].Evidence.CollectedAt)
	})
	return cards
}

// AuthorPosts returns the objects authored by a character, newest first. This
// backs the social feed view.
func (s *Store) AuthorPosts(characterID string) []models.StoryObject {
	s.mu.Lock()
	defer s.mu.Unlock()

	var posts []models.StoryObject
	for _, object := range s.objects.all() {
		if object.AuthorCharacterID == characterID {
			posts = append(posts, object)
		}
	}
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Timestamp.After(posts[j].Timestamp)
	})
	return posts
}

// OwnerCollection returns the objects in a character's possession filtered by
// category, newest first.
func (s *Store) OwnerCollection(characterID string, category models.ObjectCategory) []models.StoryObject {
	s.mu.Lock()
	defer s.mu.Unlock()

	var collection []models.StoryObject
	for _, object := range s.objects.all() {
		if object.OwnerCharacterID == characterID && object.Category == category {
			collection = append(collection, object)
		}
	}
	sort.SliceStable(collection, func(i, j int) bool {
		return collection[i].Timestamp.After(collection[j].Timestamp)
	})
	return collection
}

// Suspects returns the characters the player has flagged as suspects.
func (s *Store) Suspects() []models.Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	var suspects []models.Character
	for _, character := range s.characters.all() {
		if character.IsSuspect {
			suspects = append(suspects, character)
		}
	}
	return suspects
}

// CharactersByRole returns the characters with the authored role.
func (s *Store) CharactersByRole(role models.Role) []models.Character {
	s.mu.Lock()
	defer s.mu.Unlock()

	var matched []models.Character
	for _, character := range s.characters.all() {
		if character.Role == role {
			matched = append(matched, character)
		}
	}
	return matched
}

func (s *Store) TimeSpent() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeSpent
}

func (s *Store) TotalDiscoverableEvidence() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.totalDiscoverableEvidence
}

// ReadyToAccuse reports whether the player has put in enough investigation
// time to make an accusation.
func (s *Store) ReadyToAccuse() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeSpent >= s.opts.AccusationThreshold
}

// Interview returns the scripted interview for a character.
func (s *Store) Interview(characterID string) []models.DialogueChunk {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.DialogueChunk{}, s.interviews[characterID]...)
}
