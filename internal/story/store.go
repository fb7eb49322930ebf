// Package story owns the normalized runtime state of an investigation: the
// entity collections populated from a cartridge, the player's evidence
// timeline, and the investigation clock. All mutations go through Store
// methods and are serialized behind one mutex, so no interleaving of two
// mutations is observable.
package story

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/myrjola/gumshoe/internal/models"
)

// Options are the deployment-tuned knobs of the investigation.
type Options struct {
	// InitialTimeSpent seeds the investigation clock in minutes.
	InitialTimeSpent int
	// AccusationThreshold is the minutes of investigation required before an
	// accusation may be made.
	AccusationThreshold int
	// QuestionTimeCost is charged per interrogation question.
	QuestionTimeCost int
	// TestimonyTimeCost is charged when an interrogation answer is promoted to
	// a testimony.
	TestimonyTimeCost int
}

// Store holds all story state for one investigation session.
type Store struct {
	mu     sync.Mutex
	logger *slog.Logger
	opts   Options

	metadata          models.Metadata
	storyInfo         models.StoryInfo
	introSlideshow    []models.Slide
	characters        *table[models.Character]
	objects           *table[models.StoryObject]
	locations         *table[models.Location]
	events            *table[models.StoryEvent]
	sublocations      *table[models.Sublocation]
	testimonies       *table[models.Testimony]
	bounties          *table[models.Bounty]
	evidenceGroups    []models.EvidenceGroup
	evidenceStacks    []models.EvidenceGroup
	canonicalTimeline []models.TimelineBeat
	interviews        map[string][]models.DialogueChunk

	// evidence is the player's timeline in collection order. At most one entry
	// exists per CardID.
	evidence []models.Evidence
	// asked tracks how far each scripted interview has progressed.
	asked map[string]int

	timeSpent                 int
	totalDiscoverableEvidence int

	// newID and now are swapped out in tests.
	newID func() string
	now   func() time.Time
}

func NewStore(logger *slog.Logger, opts Options) *Store {
	s := &Store{
		logger:    logger.With("source", "story.Store"),
		opts:      opts,
		newID:     uuid.NewString,
		now:       time.Now,
		timeSpent: opts.InitialTimeSpent,
	}
	s.resetTables()
	return s
}

func (s *Store) resetTables() {
	s.characters = newTable(func(c models.Character) string { return c.ID })
	s.objects = newTable(func(o models.StoryObject) string { return o.ID })
	s.locations = newTable(func(l models.Location) string { return l.ID })
	s.events = newTable(func(e models.StoryEvent) string { return e.ID })
	s.sublocations = newTable(func(sub models.Sublocation) string { return sub.ID })
	s.testimonies = newTable(func(ts models.Testimony) string { return ts.ID })
	s.bounties = newTable(func(b models.Bounty) string { return b.ID })
	s.evidence = []models.Evidence{}
	s.asked = map[string]int{}
}

// Load atomically replaces all collections with the cartridge contents,
// resets the clock, and seeds the timeline with the victim's death at the
// crime scene.
func (s *Store) Load(cart models.Cartridge) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.resetTables()
	s.metadata = cart.Metadata
	s.storyInfo = cart.StoryInfo
	s.introSlideshow = cart.IntroSlideshow
	s.evidenceGroups = cart.EvidenceGroups
	s.evidenceStacks = cart.EvidenceStacks
	s.canonicalTimeline = cart.CanonicalTimeline
	s.interviews = cart.Interviews
	s.timeSpent = s.opts.InitialTimeSpent

	for _, character := range cart.Characters {
		s.characters.upsert(character)
	}
	for _, object := range cart.Objects {
		s.objects.upsert(object)
	}
	for _, location := range cart.Locations {
		s.locations.upsert(location)
	}
	for _, event := range cart.Events {
		s.events.upsert(event)
	}
	for _, sublocation := range cart.Sublocations {
		s.sublocations.upsert(sublocation)
	}
	for _, testimony := range cart.Testimonies {
		s.testimonies.upsert(testimony)
	}
	for _, bounty := range cart.Bounties {
		s.bounties.upsert(bounty)
	}

	// Objects with an author are derived content such as social posts; they do
	// not count towards discoverable evidence. The victim's death makes up the
	// extra one.
	discoverable := 1
	for _, object := range s.objects.all() {
		if object.AuthorCharacterID == "" {
			discoverable++
		}
	}
	s.totalDiscoverableEvidence = discoverable

	s.seedVictimEvidenceLocked()

	s.logger.Info("cartridge loaded",
		slog.String("title", cart.Metadata.Title),
		slog.Int("characters", s.characters.len()),
		slog.Int("objects", s.objects.len()),
		slog.Int("locations", s.locations.len()))
}

// seedVictimEvidenceLocked creates the initial "victim's death" timeline entry
// at the crime scene, falling back to the first location when the crime scene
// is unset. Skipped when the cartridge has no victim.
func (s *Store) seedVictimEvidenceLocked() {
	var victim *models.Character
	for _, character := range s.characters.all() {
		if character.Role == models.RoleVictim {
			victim = &character
			break
		}
	}
	if victim == nil {
		return
	}

	locationID := s.storyInfo.CrimeSceneLocationID
	if _, ok := s.locations.get(locationID); !ok {
		locationID = ""
		if all := s.locations.all(); len(all) > 0 {
			locationID = all[0].ID
		}
	}

	s.appendEvidenceLocked(models.Evidence{
		ID:          s.newID(),
		CardID:      victim.ID,
		CardType:    models.CardTypeCharacter,
		Name:        "Death of " + victim.Name,
		ImagePrompt: "Crime scene photograph. " + victim.Bio,
		CollectedAt: s.now(),
		LocationID:  locationID,
	})
}

// appendEvidenceLocked adds an entry unless one already exists for the same
// card.
func (s *Store) appendEvidenceLocked(entry models.Evidence) {
	for _, existing := range s.evidence {
		if existing.CardID == entry.CardID {
			return
		}
	}
	s.evidence = append(s.evidence, entry)
}

// AddToTimeline places an object on the evidence timeline. The first-ever
// unlock charges the object's TimeToAdd and flips HasBeenUnlocked permanently;
// re-adding a previously unlocked object is free. Unknown objects and objects
// already on the timeline are no-ops.
func (s *Store) AddToTimeline(objectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	object, ok := s.objects.get(objectID)
	if !ok || object.IsEvidence {
		return
	}

	if !object.HasBeenUnlocked {
		s.timeSpent += object.TimeToAdd
	}
	s.objects.update(objectID, func(o *models.StoryObject) {
		o.HasBeenUnlocked = true
		o.IsEvidence = true
	})

	s.appendEvidenceLocked(models.Evidence{
		ID:          s.newID(),
		CardID:      object.ID,
		CardType:    models.CardTypeObject,
		Name:        object.Name,
		ImagePrompt: object.ImagePrompt,
		CollectedAt: s.now(),
		LocationID:  object.LocationFoundID,
	})
}

// RemoveFromTimeline takes an object off the timeline and clears its suspect
// assignments. Time already spent is sunk; there is no refund.
func (s *Store) RemoveFromTimeline(objectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	found := s.objects.update(objectID, func(o *models.StoryObject) {
		o.IsEvidence = false
		o.AssignedSuspectIDs = []string{}
	})
	if !found {
		return
	}

	kept := s.evidence[:0]
	for _, entry := range s.evidence {
		if entry.CardID != objectID {
			kept = append(kept, entry)
		}
	}
	s.evidence = kept
}

// AssignEvidenceToSuspect toggles the suspect's membership in the object's
// assignment list.
func (s *Store) AssignEvidenceToSuspect(objectID, suspectID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.objects.update(objectID, func(o *models.StoryObject) {
		assigned := make([]string, 0, len(o.AssignedSuspectIDs)+1)
		removed := false
		for _, id := range o.AssignedSuspectIDs {
			if id == suspectID {
				removed = true
				continue
			}
			assigned = append(assigned, id)
		}
		if !removed {
			assigned = append(assigned, suspectID)
		}
		o.AssignedSuspectIDs = assigned
	})
}

// UnlockEntity credits timeCost to the clock and reveals the target. The time
// is charged unconditionally on every call; callers must invoke it at most
// once per unlock source. Locations and characters are always visible, so for
// those only the time is charged.
func (s *Store) UnlockEntity(targetType models.TargetType, ref string, timeCost int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.unlockEntityLocked(targetType, ref, timeCost)
}

func (s *Store) unlockEntityLocked(targetType models.TargetType, ref string, timeCost int) {
	s.timeSpent += timeCost

	switch targetType {
	case models.TargetSublocation:
		s.sublocations.update(ref, func(sub *models.Sublocation) {
			if !sub.HasBeenUnlocked {
				sub.HasBeenUnlocked = true
				sub.IsVisible = true
			}
		})
	case models.TargetEvidence:
		s.objects.update(ref, func(o *models.StoryObject) {
			if !o.HasBeenUnlocked {
				o.HasBeenUnlocked = true
			}
		})
	case models.TargetEvent:
		s.events.update(ref, func(e *models.StoryEvent) {
			if !e.HasBeenUnlocked {
				e.HasBeenUnlocked = true
			}
		})
	case models.TargetLocation, models.TargetCharacter:
		// Always visible, only the time cost applies.
	default:
		s.logger.Debug("unlock for unknown target type", slog.String("type", string(targetType)))
	}
}

// SetEvidencePosition records a drag placement on the spatial evidence board.
func (s *Store) SetEvidencePosition(evidenceID string, x, y float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.evidence {
		if s.evidence[i].ID == evidenceID {
			s.evidence[i].Position = &models.BoardPosition{X: x, Y: y}
			return
		}
	}
}

// MarkSuspect flips the player-controlled suspicion flag on a character.
func (s *Store) MarkSuspect(characterID string, isSuspect bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.characters.update(characterID, func(c *models.Character) {
		c.IsSuspect = isSuspect
	})
}

// AskQuestion advances the scripted interview with a character and charges the
// question time cost. Returns false when the character has no further scripted
// answers; no time is charged in that case.
func (s *Store) AskQuestion(characterID string) (models.DialogueChunk, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	chunks := s.interviews[characterID]
	progress := s.asked[characterID]
	if progress >= len(chunks) {
		return models.DialogueChunk{}, false
	}

	s.asked[characterID] = progress + 1
	s.timeSpent += s.opts.QuestionTimeCost
	return chunks[progress], true
}

// AddTestimony synthesizes a testimony from an interrogation answer, attaches
// it to the character, and charges the testimony time cost. Returns the new
// testimony id, or empty string when the character does not exist.
func (s *Store) AddTestimony(characterID, title, content string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.characters.get(characterID); !ok {
		return ""
	}

	testimony := models.Testimony{
		ID:          s.newID(),
		Title:       title,
		Content:     content,
		CharacterID: characterID,
	}
	s.testimonies.upsert(testimony)
	s.characters.update(characterID, func(c *models.Character) {
		c.TestimonyIDs = append(c.TestimonyIDs, testimony.ID)
	})
	s.timeSpent += s.opts.TestimonyTimeCost
	return testimony.ID
}
