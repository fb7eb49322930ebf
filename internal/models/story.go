package models

import "time"

// TargetType enumerates what an unlock edge can reveal.
type TargetType string

const (
	TargetLocation    TargetType = "location"
	TargetSublocation TargetType = "sublocation"
	TargetEvidence    TargetType = "evidence"
	TargetCharacter   TargetType = "character"
	TargetEvent       TargetType = "event"
)

// Unlock is a declarative edge from one entity to another. Examining the
// source for the first time reveals the target and charges Time minutes.
type Unlock struct {
	Type TargetType
	Ref  string
	Time int
}

// Rarity grades how important an object is to solving the case.
type Rarity string

const (
	RarityIrrelevant Rarity = "irrelevant"
	RarityMaterial   Rarity = "material"
	RarityCritical   Rarity = "critical"
)

// ObjectCategory classifies evidence objects.
type ObjectCategory string

const (
	CategoryPhysical          ObjectCategory = "physical"
	CategoryDocument          ObjectCategory = "document"
	CategoryPoliceFile        ObjectCategory = "police_file"
	CategoryTestimonyFragment ObjectCategory = "testimony_fragment"
	CategorySocialMedia       ObjectCategory = "social_media"
	CategoryPhoneLog          ObjectCategory = "phone_log"
	CategoryCCTV              ObjectCategory = "cctv"
	CategoryPurchaseInfo      ObjectCategory = "purchase_info"
)

// StoryObject is an evidence object or item the player can examine and place
// on their timeline.
type StoryObject struct {
	ID   string
	Name string
	// Description is shown once the object has been identified,
	// UnidentifiedDescription before that.
	Description             string
	UnidentifiedDescription string
	Category                ObjectCategory
	LocationFoundID         string
	Rarity                  Rarity
	// IsEvidence is true while the object sits on the player's timeline.
	IsEvidence bool
	// HasBeenUnlocked records the first-ever unlock. It never reverts to false,
	// and TimeToAdd is charged exactly once, when it flips.
	HasBeenUnlocked bool
	TimeToAdd       int
	Unlocks         []Unlock
	// AuthorCharacterID is set for authored content such as social posts.
	AuthorCharacterID string
	// OwnerCharacterID is set for items found in a character's possession.
	OwnerCharacterID   string
	AssignedSuspectIDs []string
	ImagePrompt        string
	Timestamp          time.Time
}

// StoryEvent is a discoverable happening in the case chronology.
type StoryEvent struct {
	ID              string
	Name            string
	Description     string
	HasBeenUnlocked bool
	TimeToAdd       int
	Unlocks         []Unlock
}

// Sublocation is a hidden area within a location, revealed by unlocks.
type Sublocation struct {
	ID          string
	LocationID  string
	Name        string
	Description string
	// IsVisible tracks whether the sublocation shows up on the map. It is kept
	// in sync with HasBeenUnlocked.
	IsVisible       bool
	HasBeenUnlocked bool
	TimeToAdd       int
	Unlocks         []Unlock
}

// Hotspot is a navigation or interaction target within a location.
type Hotspot struct {
	ID         string
	Type       string
	TargetID   string
	TargetType TargetType
	// X and Y are map coordinates as CSS percentage strings, e.g. "50%".
	X string
	Y string
}

// Location is a visitable place on the case map.
type Location struct {
	ID          string
	Name        string
	Description string
	X           string
	Y           string
	Hotspots    []Hotspot
	IsInternal  bool
}

// Testimony is a statement attributed to a character. Testimonies are
// synthesized from character statements at load time and from interrogation
// answers at runtime.
type Testimony struct {
	ID          string
	Title       string
	Content     string
	CharacterID string
}

// Bounty is an optional side objective with a reward.
type Bounty struct {
	ID          string
	Title       string
	Description string
	Reward      int
}
