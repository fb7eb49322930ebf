package cartridge_test

import (
	"github.com/myrjola/gumshoe/internal/cartridge"
	"github.com/myrjola/gumshoe/internal/models"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestParse_testimonySynthesis(t *testing.T) {
	t.Parallel()
	doc := []byte(`{
		"characters": [
			{"id": "c1", "name": "Ada Marlowe", "role": "Witness", "statement": "I saw nothing"},
			{"id": "c2", "name": "Silent Bob", "role": "witness"}
		]
	}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)

	require.Len(t, cart.Testimonies, 1)
	testimony := cart.Testimonies[0]
	require.Equal(t, "testimony-c1", testimony.ID)
	require.Equal(t, "Statement from Ada Marlowe", testimony.Title)
	require.Equal(t, "I saw nothing", testimony.Content)
	require.Equal(t, "c1", testimony.CharacterID)

	ada := cart.Characters[0]
	require.Equal(t, models.RoleWitness, ada.Role, "role is lower-cased")
	require.Equal(t, []string{"testimony-c1"}, ada.TestimonyIDs)

	bob := cart.Characters[1]
	require.Empty(t, bob.TestimonyIDs, "no testimony without a statement")
}

func TestParse_mugshotSynthesis(t *testing.T) {
	t.Parallel()
	doc := []byte(`{
		"characters": [
			{
				"id": "c1",
				"name": "Vic Santoro",
				"role": "SUSPECT",
				"physicalCharacteristics": {
					"height": "6'1\"",
					"weight": "190 lbs",
					"eyes": "brown",
					"hair": "black",
					"features": "Scar over left eyebrow."
				}
			},
			{
				"id": "c2",
				"name": "Rosa Vane",
				"role": "witness",
				"physicalCharacteristics": {"height": "5'6\"", "weight": "130 lbs", "eyes": "green", "hair": "red"}
			}
		]
	}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)

	require.Len(t, cart.Objects, 1, "only suspects get booking photos")
	mugshot := cart.Objects[0]
	require.Equal(t, "obj_mugshot_c1", mugshot.ID)
	require.Equal(t, models.CategoryPoliceFile, mugshot.Category)
	require.Equal(t, models.RarityIrrelevant, mugshot.Rarity)
	require.Zero(t, mugshot.TimeToAdd)
	require.Equal(t, "c1", mugshot.OwnerCharacterID)
	require.Contains(t, mugshot.ImagePrompt, "Vic Santoro")
	require.Contains(t, mugshot.ImagePrompt, "brown eyes")
	require.Contains(t, mugshot.ImagePrompt, "Scar over left eyebrow.")
}

func TestParse_placeholderComponents(t *testing.T) {
	t.Parallel()
	doc := []byte(`{
		"characters": [
			{"id": "c1", "name": "Ada", "role": "suspect"},
			{
				"id": "c2",
				"name": "Eve",
				"role": "suspect",
				"components": [{"type": "social_media", "title": "Feed", "content": "..."}]
			}
		],
		"objects": [
			{"id": "o1", "name": "Post", "category": "social_media", "authorCharacterId": "c1"},
			{"id": "o2", "name": "Receipt", "category": "purchase_info", "ownerCharacterId": "c2"}
		]
	}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)

	ada := cart.Characters[0]
	require.Len(t, ada.Components, 1)
	require.Equal(t, models.ComponentSocialMedia, ada.Components[0].Type)
	require.Empty(t, ada.Components[0].Content, "placeholder components are empty")

	eve := cart.Characters[1]
	require.Len(t, eve.Components, 2)
	require.Equal(t, models.ComponentSocialMedia, eve.Components[0].Type)
	require.Equal(t, "...", eve.Components[0].Content, "declared component is kept")
	require.Equal(t, models.ComponentPurchaseInfo, eve.Components[1].Type)
}

func TestParse_objectDefaults(t *testing.T) {
	t.Parallel()
	doc := []byte(`{"objects": [{"id": "o1", "name": "Knife"}]}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)

	require.Len(t, cart.Objects, 1)
	object := cart.Objects[0]
	require.Equal(t, models.CategoryPhysical, object.Category)
	require.Equal(t, models.RarityIrrelevant, object.Rarity)
	require.False(t, object.HasBeenUnlocked)
	require.False(t, object.IsEvidence)
	require.Zero(t, object.TimeToAdd)
	require.Empty(t, object.Unlocks)
	require.Empty(t, object.AssignedSuspectIDs)
	require.True(t, object.Timestamp.IsZero())
}

func TestParse_locationDefaults(t *testing.T) {
	t.Parallel()
	doc := []byte(`{
		"locations": [
			{
				"id": "loc1",
				"name": "Harbor",
				"hotspots": [
					{"targetId": "o1", "targetType": "evidence"},
					{"id": "hs-custom", "type": "travel", "targetId": "loc2", "targetType": "location", "x": "10%", "y": "80%"}
				]
			}
		]
	}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)

	require.Len(t, cart.Locations, 1)
	location := cart.Locations[0]
	require.Equal(t, "50%", location.X)
	require.Equal(t, "50%", location.Y)

	require.Len(t, location.Hotspots, 2)
	first := location.Hotspots[0]
	require.Equal(t, "hs-loc1-0", first.ID)
	require.Equal(t, "investigate", first.Type)
	require.Equal(t, "50%", first.X)

	second := location.Hotspots[1]
	require.Equal(t, "hs-custom", second.ID)
	require.Equal(t, "travel", second.Type)
	require.Equal(t, "10%", second.X)
}

func TestParse_sublocationVisibilitySync(t *testing.T) {
	t.Parallel()
	doc := []byte(`{
		"sublocations": [
			{"id": "s1", "locationId": "loc1", "name": "Back room"},
			{"id": "s2", "locationId": "loc1", "name": "Cellar", "hasBeenUnlocked": true}
		]
	}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)

	require.False(t, cart.Sublocations[0].IsVisible)
	require.True(t, cart.Sublocations[1].IsVisible)
}

func TestParse_caseFile(t *testing.T) {
	t.Parallel()
	doc := []byte(`{
		"caseFile": {
			"clues": [
				{"id": "clue1", "eventKey": "murder", "text": "Body found at the docks", "type": "primary", "points": 10, "bonus": 5},
				{"id": "clue2", "text": "Muddy footprints", "category": "anchor-night", "points": 5}
			],
			"anchors": [
				{
					"id": "anchor-night",
					"title": "Night of the murder",
					"primarySlot": {"id": "slot-murder", "correctEventKey": "murder"},
					"supportingSlots": [{"id": "slot-a"}, {}]
				}
			]
		}
	}`)

	cart, err := cartridge.Parse(doc)
	require.NoError(t, err)
	caseFile := cart.CaseFile

	require.Len(t, caseFile.Clues, 2)
	require.Equal(t, models.CluePrimary, caseFile.Clues[0].Type)
	require.Equal(t, models.ClueSupporting, caseFile.Clues[1].Type, "type defaults from event key")

	require.Len(t, caseFile.Anchors, 1)
	anchor := caseFile.Anchors[0]
	require.Equal(t, "slot-murder", anchor.PrimarySlotID)
	require.Equal(t, []string{"slot-a", "anchor-night-support-1"}, anchor.SupportingSlotIDs)

	require.Len(t, caseFile.Slots, 3)
	require.Equal(t, "murder", caseFile.Slots[0].CorrectEventKey)
	require.Empty(t, caseFile.Slots[1].CorrectEventKey, "supporting slots have no event key")
	for _, slot := range caseFile.Slots {
		require.Empty(t, slot.PlacedClueID)
	}
}

func TestParse_malformedJSON(t *testing.T) {
	t.Parallel()
	_, err := cartridge.Parse([]byte(`{"characters": [`))
	require.Error(t, err)
}
