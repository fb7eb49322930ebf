package models

// ClueType splits case file clues into primary and supporting pieces.
type ClueType string

const (
	CluePrimary    ClueType = "PRIMARY"
	ClueSupporting ClueType = "SUPPORTING"
)

// Clue is a placeable puzzle piece in the case file. Primary clues match slots
// by event key, supporting clues by anchor category.
type Clue struct {
	ID       string
	EventKey string
	Text     string
	Type     ClueType
	Category string
	Points   int
	Bonus    int
}

// EvidenceSlot is a droppable position in the case file timeline.
// CorrectEventKey is set for primary slots only. PlacedClueID is empty until a
// clue is correctly placed; once set it is never cleared by normal play.
type EvidenceSlot struct {
	ID              string
	CorrectEventKey string
	PlacedClueID    string
}

// TimelineAnchor is a named category tab of the case file puzzle holding one
// primary slot and an ordered list of supporting slots.
type TimelineAnchor struct {
	ID                string
	Title             string
	PrimarySlotID     string
	SupportingSlotIDs []string
}

// CaseFile is the clue-placement puzzle definition of a cartridge.
type CaseFile struct {
	Clues   []Clue
	Slots   []EvidenceSlot
	Anchors []TimelineAnchor
}
