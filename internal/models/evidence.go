package models

import "time"

// CardType discriminates what kind of card an evidence entry points at.
type CardType string

const (
	CardTypeCharacter CardType = "character"
	CardTypeObject    CardType = "object"
)

// BoardPosition is a free-form placement on the spatial evidence board.
type BoardPosition struct {
	X float64
	Y float64
}

// Evidence is a timeline entry: an object or character the player has placed
// into their active investigation timeline. At most one entry exists per
// CardID at any time.
type Evidence struct {
	ID          string
	CardID      string
	CardType    CardType
	Name        string
	ImagePrompt string
	CollectedAt time.Time
	LocationID  string
	Position    *BoardPosition
}
