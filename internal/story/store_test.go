package story_test

import (
	"io"
	"testing"
	"time"

	"github.com/myrjola/gumshoe/internal/models"
	"github.com/myrjola/gumshoe/internal/story"
	"github.com/myrjola/gumshoe/internal/testhelpers"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts story.Options) *story.Store {
	t.Helper()
	return story.NewStore(testhelpers.NewLogger(io.Discard), opts)
}

func harborCartridge() models.Cartridge {
	return models.Cartridge{
		Metadata: models.Metadata{Title: "The Harbor Case"},
		StoryInfo: models.StoryInfo{
			VictimID:             "victim",
			CrimeSceneLocationID: "docks",
		},
		Characters: []models.Character{
			{ID: "victim", Name: "Frank Ollis", Role: models.RoleVictim, Bio: "Dock worker."},
			{ID: "marla", Name: "Marla Keene", Role: models.RoleSuspect},
			{ID: "june", Name: "June Ollis", Role: models.RoleWitness},
		},
		Locations: []models.Location{
			{ID: "docks", Name: "The Docks"},
			{ID: "warehouse", Name: "Warehouse 9"},
		},
		Objects: []models.StoryObject{
			{ID: "o1", Name: "Bloody rope", TimeToAdd: 15, LocationFoundID: "docks"},
			{ID: "o2", Name: "Ledger", TimeToAdd: 5},
			{
				ID:                "post1",
				Name:              "Angry post",
				Category:          models.CategorySocialMedia,
				AuthorCharacterID: "marla",
				Timestamp:         time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
			},
			{
				ID:                "post2",
				Name:              "Alibi post",
				Category:          models.CategorySocialMedia,
				AuthorCharacterID: "marla",
				Timestamp:         time.Date(2024, 3, 2, 12, 0, 0, 0, time.UTC),
			},
		},
		Events: []models.StoryEvent{
			{ID: "ev1", Name: "The argument"},
		},
		Sublocations: []models.Sublocation{
			{ID: "sub1", LocationID: "docks", Name: "Crane cabin"},
		},
	}
}

func TestStore_Load(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{InitialTimeSpent: 30})
	s.Load(harborCartridge())

	require.Equal(t, 30, s.TimeSpent())
	// Two authorless objects plus the victim's death.
	require.Equal(t, 3, s.TotalDiscoverableEvidence())

	entries := s.Evidence()
	require.Len(t, entries, 1)
	require.Equal(t, "victim", entries[0].CardID)
	require.Equal(t, models.CardTypeCharacter, entries[0].CardType)
	require.Equal(t, "Death of Frank Ollis", entries[0].Name)
	require.Equal(t, "docks", entries[0].LocationID)
}

func TestStore_Load_crimeSceneFallback(t *testing.T) {
	t.Parallel()
	cart := harborCartridge()
	cart.StoryInfo.CrimeSceneLocationID = "nonexistent"
	s := newTestStore(t, story.Options{})
	s.Load(cart)

	entries := s.Evidence()
	require.Len(t, entries, 1)
	require.Equal(t, "docks", entries[0].LocationID, "falls back to first location")
}

func TestStore_Load_noVictim(t *testing.T) {
	t.Parallel()
	cart := harborCartridge()
	cart.Characters = cart.Characters[1:]
	s := newTestStore(t, story.Options{})
	s.Load(cart)

	require.Empty(t, s.Evidence())
}

func TestStore_AddToTimeline(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{})
	s.Load(harborCartridge())

	s.AddToTimeline("o1")
	require.Equal(t, 15, s.TimeSpent())

	object, ok := s.Object("o1")
	require.True(t, ok)
	require.True(t, object.HasBeenUnlocked)
	require.True(t, object.IsEvidence)

	var matches int
	for _, entry := range s.Evidence() {
		if entry.CardID == "o1" {
			matches++
		}
	}
	require.Equal(t, 1, matches, "exactly one evidence entry per card")

	// Adding again while on the timeline is a no-op.
	s.AddToTimeline("o1")
	require.Equal(t, 15, s.TimeSpent())
	require.Len(t, s.Evidence(), 2) // victim + o1

	// Unknown object is a no-op.
	s.AddToTimeline("nope")
	require.Equal(t, 15, s.TimeSpent())
}

func TestStore_readdAfterRemoveIsFree(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{})
	s.Load(harborCartridge())

	s.AddToTimeline("o1")
	require.Equal(t, 15, s.TimeSpent())

	s.RemoveFromTimeline("o1")
	require.Equal(t, 15, s.TimeSpent(), "no refund on removal")
	object, _ := s.Object("o1")
	require.False(t, object.IsEvidence)
	require.True(t, object.HasBeenUnlocked, "unlock flag never reverts")
	require.Len(t, s.Evidence(), 1)

	s.AddToTimeline("o1")
	require.Equal(t, 15, s.TimeSpent(), "re-add charges nothing")
	require.Len(t, s.Evidence(), 2)
}

func TestStore_RemoveFromTimeline_clearsAssignments(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{})
	s.Load(harborCartridge())

	s.AddToTimeline("o1")
	s.AssignEvidenceToSuspect("o1", "marla")
	object, _ := s.Object("o1")
	require.Equal(t, []string{"marla"}, object.AssignedSuspectIDs)

	// Assigning again toggles the suspect off.
	s.AssignEvidenceToSuspect("o1", "marla")
	object, _ = s.Object("o1")
	require.Empty(t, object.AssignedSuspectIDs)

	s.AssignEvidenceToSuspect("o1", "marla")
	s.RemoveFromTimeline("o1")
	object, _ = s.Object("o1")
	require.Empty(t, object.AssignedSuspectIDs)
}

func TestStore_UnlockEntity(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{})
	s.Load(harborCartridge())

	s.UnlockEntity(models.TargetSublocation, "sub1", 10)
	sublocation, _ := s.Sublocation("sub1")
	require.True(t, sublocation.HasBeenUnlocked)
	require.True(t, sublocation.IsVisible)
	require.Equal(t, 10, s.TimeSpent())

	s.UnlockEntity(models.TargetEvent, "ev1", 5)
	event, _ := s.Event("ev1")
	require.True(t, event.HasBeenUnlocked)

	s.UnlockEntity(models.TargetEvidence, "o2", 0)
	object, _ := s.Object("o2")
	require.True(t, object.HasBeenUnlocked)
	require.False(t, object.IsEvidence, "unlock does not place the object on the timeline")

	// Locations and characters are always visible; only time is charged.
	s.UnlockEntity(models.TargetLocation, "warehouse", 20)
	require.Equal(t, 35, s.TimeSpent())

	// Time is charged even when the target is already unlocked. Callers are
	// responsible for invoking this once per unlock source.
	s.UnlockEntity(models.TargetEvent, "ev1", 5)
	require.Equal(t, 40, s.TimeSpent())

	// An object unlocked through an edge is added to the timeline for free.
	s.AddToTimeline("o2")
	require.Equal(t, 40, s.TimeSpent())
}

func TestStore_SetEvidencePosition(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{})
	s.Load(harborCartridge())
	s.AddToTimeline("o1")

	var evidenceID string
	for _, entry := range s.Evidence() {
		if entry.CardID == "o1" {
			evidenceID = entry.ID
		}
	}
	require.NotEmpty(t, evidenceID)

	s.SetEvidencePosition(evidenceID, 0.25, 0.75)
	for _, entry := range s.Evidence() {
		if entry.ID == evidenceID {
			require.NotNil(t, entry.Position)
			require.InDelta(t, 0.25, entry.Position.X, 1e-9)
			require.InDelta(t, 0.75, entry.Position.Y, 1e-9)
		}
	}
}

func TestStore_selectors(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{})
	s.Load(harborCartridge())

	posts := s.AuthorPosts("marla")
	require.Len(t, posts, 2)
	require.Equal(t, "post2", posts[0].ID, "posts sorted newest first")

	require.Empty(t, s.Suspects())
	s.MarkSuspect("marla", true)
	suspects := s.Suspects()
	require.Len(t, suspects, 1)
	require.Equal(t, "marla", suspects[0].ID)

	victims := s.CharactersByRole(models.RoleVictim)
	require.Len(t, victims, 1)
	require.Equal(t, "victim", victims[0].ID)

	s.AddToTimeline("o1")
	cards := s.EvidenceCards()
	require.Len(t, cards, 2)
	require.NotNil(t, cards[0].Character, "victim entry resolves to a character card")
	require.NotNil(t, cards[1].Object)
	require.False(t, cards[1].Evidence.CollectedAt.Before(cards[0].Evidence.CollectedAt),
		"cards sorted ascending by collection time")
}

func TestStore_OwnerCollection(t *testing.T) {
	t.Parallel()
	cart := harborCartridge()
	cart.Objects = append(cart.Objects,
		models.StoryObject{
			ID:               "receipt1",
			Name:             "Pawn shop receipt",
			Category:         models.CategoryPurchaseInfo,
			OwnerCharacterID: "marla",
			Timestamp:        time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		models.StoryObject{
			ID:               "receipt2",
			Name:             "Hardware store receipt",
			Category:         models.CategoryPurchaseInfo,
			OwnerCharacterID: "marla",
			Timestamp:        time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC),
		},
	)
	s := newTestStore(t, story.Options{})
	s.Load(cart)

	collection := s.OwnerCollection("marla", models.CategoryPurchaseInfo)
	require.Len(t, collection, 2)
	require.Equal(t, "receipt2", collection[0].ID, "newest first")

	require.Empty(t, s.OwnerCollection("marla", models.CategoryCCTV))
}

func TestStore_interrogation(t *testing.T) {
	t.Parallel()
	cart := harborCartridge()
	cart.Interviews = map[string][]models.DialogueChunk{
		"marla": {
			{Question: "Where were you?", Answer: "At the bar."},
			{Question: "Anyone confirm that?", Answer: "Ask the bartender."},
		},
	}
	s := newTestStore(t, story.Options{QuestionTimeCost: 5, TestimonyTimeCost: 10})
	s.Load(cart)

	chunk, ok := s.AskQuestion("marla")
	require.True(t, ok)
	require.Equal(t, "At the bar.", chunk.Answer)
	require.Equal(t, 5, s.TimeSpent())

	_, ok = s.AskQuestion("marla")
	require.True(t, ok)
	require.Equal(t, 10, s.TimeSpent())

	_, ok = s.AskQuestion("marla")
	require.False(t, ok, "script exhausted")
	require.Equal(t, 10, s.TimeSpent(), "no charge without an answer")

	testimonyID := s.AddTestimony("marla", "Bar alibi", "Claims she was at the bar.")
	require.NotEmpty(t, testimonyID)
	require.Equal(t, 20, s.TimeSpent())

	testimony, ok := s.Testimony(testimonyID)
	require.True(t, ok)
	require.Equal(t, "marla", testimony.CharacterID)

	marla, _ := s.Character("marla")
	require.Contains(t, marla.TestimonyIDs, testimonyID)

	require.Empty(t, s.AddTestimony("nobody", "t", "c"), "unknown character is a no-op")
	require.Equal(t, 20, s.TimeSpent())
}

func TestStore_ReadyToAccuse(t *testing.T) {
	t.Parallel()
	s := newTestStore(t, story.Options{AccusationThreshold: 20})
	s.Load(harborCartridge())

	require.False(t, s.ReadyToAccuse())
	s.UnlockEntity(models.TargetLocation, "warehouse", 20)
	require.True(t, s.ReadyToAccuse())
}
