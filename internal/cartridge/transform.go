// Package cartridge loads story definition documents and reshapes them into
// the normalized runtime model. Loading is all-or-nothing: a cartridge either
// parses completely or the caller gets an error, but individual missing fields
// inside the document are defaulted rather than rejected.
package cartridge

import (
	"fmt"
	"strings"
	"time"

	"github.com/myrjola/gumshoe/internal/models"
)

// placeholderComponents are the component types the UI renders as buttons on a
// character card. If a character has matching objects but no declared
// component of the type, Transform appends an empty placeholder so the button
// still shows up.
var placeholderComponents = []models.ComponentType{
	models.ComponentSocialMedia,
	models.ComponentPhoneLog,
	models.ComponentCCTV,
	models.ComponentPurchaseInfo,
}

func transform(doc rawDocument) models.Cartridge {
	objects := transformObjects(doc.Objects)
	// Characters can synthesize objects (booking photos), so they are
	// transformed against the mutable object list.
	characters, testimonies := transformCharacters(doc.Characters, &objects)

	for _, raw := range doc.Testimonies {
		testimonies = append(testimonies, models.Testimony{
			ID:          raw.ID,
			Title:       raw.Title,
			Content:     raw.Content,
			CharacterID: raw.CharacterID,
		})
	}

	return models.Cartridge{
		Metadata: models.Metadata{
			Title:   doc.Metadata.Title,
			Author:  doc.Metadata.Author,
			Version: doc.Metadata.Version,
		},
		StoryInfo: models.StoryInfo{
			Title:                doc.StoryInfo.Title,
			Synopsis:             doc.StoryInfo.Synopsis,
			VictimID:             doc.StoryInfo.VictimID,
			CrimeSceneLocationID: doc.StoryInfo.CrimeSceneLocationID,
		},
		IntroSlideshow:    transformSlides(doc.IntroSlideshow),
		Characters:        characters,
		Locations:         transformLocations(doc.Locations),
		Objects:           objects,
		Events:            transformEvents(doc.Events),
		Sublocations:      transformSublocations(doc.Sublocations),
		Testimonies:       testimonies,
		Bounties:          transformBounties(doc.Bounties),
		EvidenceGroups:    transformEvidenceGroups(doc.EvidenceGroups),
		EvidenceStacks:    transformEvidenceGroups(doc.EvidenceStacks),
		CanonicalTimeline: transformTimeline(doc.CanonicalTimeline),
		Interviews:        transformInterviews(doc.Interviews),
		CaseFile:          transformCaseFile(doc.CaseFile),
	}
}

// TestimonyID returns the deterministic id of the testimony synthesized from a
// character's statement.
func TestimonyID(characterID string) string {
	return "testimony-" + characterID
}

// MugshotObjectID returns the deterministic id of the booking photo object
// synthesized for a suspect.
func MugshotObjectID(characterID string) string {
	return "obj_mugshot_" + characterID
}

func transformCharacters(
	raws []rawCharacter,
	objects *[]models.StoryObject,
) ([]models.Character, []models.Testimony) {
	characters := make([]models.Character, 0, len(raws))
	var testimonies []models.Testimony

	for _, raw := range raws {
		character := models.Character{
			ID:                raw.ID,
			Name:              raw.Name,
			Age:               raw.Age,
			Occupation:        raw.Occupation,
			Role:              normalizeRole(raw.Role),
			IsSuspect:         raw.IsSuspect,
			Bio:               raw.Bio,
			Statement:         raw.Statement,
			Components:        transformComponents(raw.Components),
			TestimonyIDs:      []string{},
			RelatedPeople:     emptyIfNil(raw.RelatedPeople),
			KnownLocations:    emptyIfNil(raw.KnownLocations),
			AssociatedObjects: emptyIfNil(raw.AssociatedObjects),
		}
		if character.Bio == "" {
			character.Bio = raw.Description
		}

		if raw.Statement != "" {
			testimony := models.Testimony{
				ID:          TestimonyID(raw.ID),
				Title:       fmt.Sprintf("Statement from %s", raw.Name),
				Content:     raw.Statement,
				CharacterID: raw.ID,
			}
			testimonies = append(testimonies, testimony)
			character.TestimonyIDs = append(character.TestimonyIDs, testimony.ID)
		}

		if raw.PhysicalCharacteristics != nil && character.Role == models.RoleSuspect {
			character.PhysicalCharacteristics = &models.PhysicalCharacteristics{
				Height:   raw.PhysicalCharacteristics.Height,
				Weight:   raw.PhysicalCharacteristics.Weight,
				Eyes:     raw.PhysicalCharacteristics.Eyes,
				Hair:     raw.PhysicalCharacteristics.Hair,
				Features: raw.PhysicalCharacteristics.Features,
			}
			*objects = append(*objects, mugshotObject(character))
		}

		for _, componentType := range placeholderComponents {
			if hasComponent(character, componentType) {
				continue
			}
			if hasObjectsOfCategory(*objects, raw.ID, models.ObjectCategory(componentType)) {
				character.Components = append(character.Components, models.DataComponent{
					Type: componentType,
				})
			}
		}

		characters = append(characters, character)
	}

	return characters, testimonies
}

func mugshotObject(character models.Character) models.StoryObject {
	pc := character.PhysicalCharacteristics
	prompt := fmt.Sprintf(
		"Police booking photograph of %s, %s tall, %s, %s eyes, %s hair. %s",
		character.Name, pc.Height, pc.Weight, pc.Eyes, pc.Hair, pc.Features,
	)
	return models.StoryObject{
		ID:                      MugshotObjectID(character.ID),
		Name:                    fmt.Sprintf("Booking photo: %s", character.Name),
		Description:             fmt.Sprintf("Booking photo of %s.", character.Name),
		UnidentifiedDescription: "A police booking photograph.",
		Category:                models.CategoryPoliceFile,
		Rarity:                  models.RarityIrrelevant,
		TimeToAdd:               0,
		Unlocks:                 []models.Unlock{},
		OwnerCharacterID:        character.ID,
		AssignedSuspectIDs:      []string{},
		ImagePrompt:             prompt,
	}
}

func hasComponent(character models.Character, componentType models.ComponentType) bool {
	for _, component := range character.Components {
		if component.Type == componentType {
			return true
		}
	}
	return false
}

func hasObjectsOfCategory(objects []models.StoryObject, characterID string, category models.ObjectCategory) bool {
	for _, object := range objects {
		if object.Category != category {
			continue
		}
		if object.AuthorCharacterID == characterID || object.OwnerCharacterID == characterID {
			return true
		}
	}
	return false
}

func normalizeRole(role string) models.Role {
	normalized := models.Role(strings.ToLower(strings.TrimSpace(role)))
	switch normalized {
	case models.RoleVictim, models.RoleSuspect, models.RoleWitness, models.RoleClient:
		return normalized
	default:
		return models.RoleOther
	}
}

func transformComponents(raws []rawComponent) []models.DataComponent {
	components := make([]models.DataComponent, 0, len(raws))
	for _, raw := range raws {
		components = append(components, models.DataComponent{
			Type:    models.ComponentType(raw.Type),
			Title:   raw.Title,
			Content: raw.Content,
		})
	}
	return components
}

func transformObjects(raws []rawObject) []models.StoryObject {
	objects := make([]models.StoryObject, 0, len(raws))
	for _, raw := range raws {
		object := models.StoryObject{
			ID:                      raw.ID,
			Name:                    raw.Name,
			Description:             raw.Description,
			UnidentifiedDescription: raw.UnidentifiedDescription,
			Category:                models.ObjectCategory(raw.Category),
			LocationFoundID:         raw.LocationFoundID,
			Rarity:                  models.Rarity(raw.Rarity),
			IsEvidence:              raw.IsEvidence,
			HasBeenUnlocked:         raw.HasBeenUnlocked,
			TimeToAdd:               raw.TimeToAdd,
			Unlocks:                 transformUnlocks(raw.Unlocks),
			AuthorCharacterID:       raw.AuthorCharacterID,
			OwnerCharacterID:        raw.OwnerCharacterID,
			AssignedSuspectIDs:      []string{},
			ImagePrompt:             raw.ImagePrompt,
			Timestamp:               parseTimestamp(raw.Timestamp),
		}
		if object.Category == "" {
			object.Category = models.CategoryPhysical
		}
		if object.Rarity == "" {
			object.Rarity = models.RarityIrrelevant
		}
		if object.UnidentifiedDescription == "" {
			object.UnidentifiedDescription = object.Description
		}
		objects = append(objects, object)
	}
	return objects
}

func transformUnlocks(raws []rawUnlock) []models.Unlock {
	unlocks := make([]models.Unlock, 0, len(raws))
	for _, raw := range raws {
		unlocks = append(unlocks, models.Unlock{
			Type: models.TargetType(strings.ToLower(raw.Type)),
			Ref:  raw.Ref,
			Time: raw.Time,
		})
	}
	return unlocks
}

// parseTimestamp is lenient. Authors mostly write RFC 3339, sometimes just a
// date; anything else sorts as the zero time.
func parseTimestamp(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04", "2006-01-02"} {
		if parsed, err := time.Parse(layout, value); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

func transformLocations(raws []rawLocation) []models.Location {
	locations := make([]models.Location, 0, len(raws))
	for _, raw := range raws {
		location := models.Location{
			ID:          raw.ID,
			Name:        raw.Name,
			Description: raw.Description,
			X:           defaultCoordinate(raw.X),
			Y:           defaultCoordinate(raw.Y),
			Hotspots:    make([]models.Hotspot, 0, len(raw.Hotspots)),
			IsInternal:  raw.IsInternal,
		}
		for i, rawHotspot := range raw.Hotspots {
			hotspot := models.Hotspot{
				ID:         rawHotspot.ID,
				Type:       rawHotspot.Type,
				TargetID:   rawHotspot.TargetID,
				TargetType: models.TargetType(strings.ToLower(rawHotspot.TargetType)),
				X:          defaultCoordinate(rawHotspot.X),
				Y:          defaultCoordinate(rawHotspot.Y),
			}
			if hotspot.ID == "" {
				hotspot.ID = fmt.Sprintf("hs-%s-%d", raw.ID, i)
			}
			if hotspot.Type == "" {
				hotspot.Type = "investigate"
			}
			location.Hotspots = append(location.Hotspots, hotspot)
		}
		locations = append(locations, location)
	}
	return locations
}

func defaultCoordinate(value string) string {
	if value == "" {
		return "50%"
	}
	return value
}

func transformEvents(raws []rawEvent) []models.StoryEvent {
	events := make([]models.StoryEvent, 0, len(raws))
	for _, raw := range raws {
		events = append(events, models.StoryEvent{
			ID:              raw.ID,
			Name:            raw.Name,
			Description:     raw.Description,
			HasBeenUnlocked: raw.HasBeenUnlocked,
			TimeToAdd:       raw.TimeToAdd,
			Unlocks:         transformUnlocks(raw.Unlocks),
		})
	}
	return events
}

func transformSublocations(raws []rawSublocation) []models.Sublocation {
	sublocations := make([]models.Sublocation, 0, len(raws))
	for _, raw := range raws {
		sublocations = append(sublocations, models.Sublocation{
			ID:          raw.ID,
			LocationID:  raw.LocationID,
			Name:        raw.Name,
			Description: raw.Description,
			// Visibility tracks the unlock flag.
			IsVisible:       raw.IsVisible || raw.HasBeenUnlocked,
			HasBeenUnlocked: raw.HasBeenUnlocked,
			TimeToAdd:       raw.TimeToAdd,
			Unlocks:         transformUnlocks(raw.Unlocks),
		})
	}
	return sublocations
}

func transformBounties(raws []rawBounty) []models.Bounty {
	bounties := make([]models.Bounty, 0, len(raws))
	for _, raw := range raws {
		bounties = append(bounties, models.Bounty{
			ID:          raw.ID,
			Title:       raw.Title,
			Description: raw.Description,
			Reward:      raw.Reward,
		})
	}
	return bounties
}

func transformEvidenceGroups(raws []rawEvidenceGroup) []models.EvidenceGroup {
	groups := make([]models.EvidenceGroup, 0, len(raws))
	for _, raw := range raws {
		groups = append(groups, models.EvidenceGroup{
			ID:        raw.ID,
			Name:      raw.Name,
			ObjectIDs: emptyIfNil(raw.ObjectIDs),
		})
	}
	return groups
}

func transformTimeline(raws []rawTimelineBeat) []models.TimelineBeat {
	beats := make([]models.TimelineBeat, 0, len(raws))
	for _, raw := range raws {
		beats = append(beats, models.TimelineBeat{
			Time:        raw.Time,
			EventKey:    raw.EventKey,
			Description: raw.Description,
		})
	}
	return beats
}

func transformSlides(raws []rawSlide) []models.Slide {
	slides := make([]models.Slide, 0, len(raws))
	for _, raw := range raws {
		slides = append(slides, models.Slide{
			Title:       raw.Title,
			Text:        raw.Text,
			ImagePrompt: raw.ImagePrompt,
		})
	}
	return slides
}

func transformInterviews(raws map[string][]rawDialogueChunk) map[string][]models.DialogueChunk {
	interviews := make(map[string][]models.DialogueChunk, len(raws))
	for characterID, chunks := range raws {
		dialogue := make([]models.DialogueChunk, 0, len(chunks))
		for _, chunk := range chunks {
			dialogue = append(dialogue, models.DialogueChunk{
				Question: chunk.Question,
				Answer:   chunk.Answer,
			})
		}
		interviews[characterID] = dialogue
	}
	return interviews
}

func transformCaseFile(raw rawCaseFile) models.CaseFile {
	caseFile := models.CaseFile{
		Clues:   make([]models.Clue, 0, len(raw.Clues)),
		Slots:   []models.EvidenceSlot{},
		Anchors: make([]models.TimelineAnchor, 0, len(raw.Anchors)),
	}

	for _, rawClue := range raw.Clues {
		clue := models.Clue{
			ID:       rawClue.ID,
			EventKey: rawClue.EventKey,
			Text:     rawClue.Text,
			Type:     models.ClueType(strings.ToUpper(rawClue.Type)),
			Category: rawClue.Category,
			Points:   rawClue.Points,
			Bonus:    rawClue.Bonus,
		}
		if clue.Type != models.CluePrimary && clue.Type != models.ClueSupporting {
			if clue.EventKey != "" {
				clue.Type = models.CluePrimary
			} else {
				clue.Type = models.ClueSupporting
			}
		}
		caseFile.Clues = append(caseFile.Clues, clue)
	}

	for _, rawAnchor := range raw.Anchors {
		anchor := models.TimelineAnchor{
			ID:                rawAnchor.ID,
			Title:             rawAnchor.Title,
			SupportingSlotIDs: []string{},
		}

		primary := models.EvidenceSlot{
			ID:              rawAnchor.PrimarySlot.ID,
			CorrectEventKey: rawAnchor.PrimarySlot.CorrectEventKey,
		}
		if primary.ID == "" {
			primary.ID = fmt.Sprintf("%s-primary", rawAnchor.ID)
		}
		anchor.PrimarySlotID = primary.ID
		caseFile.Slots = append(caseFile.Slots, primary)

		for i, rawSupporting := range rawAnchor.SupportingSlots {
			supporting := models.EvidenceSlot{
				ID: rawSupporting.ID,
			}
			if supporting.ID == "" {
				supporting.ID = fmt.Sprintf("%s-support-%d", rawAnchor.ID, i)
			}
			anchor.SupportingSlotIDs = append(anchor.SupportingSlotIDs, supporting.ID)
			caseFile.Slots = append(caseFile.Slots, supporting)
		}

		caseFile.Anchors = append(caseFile.Anchors, anchor)
	}

	return caseFile
}

func emptyIfNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
