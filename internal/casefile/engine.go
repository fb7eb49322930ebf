// Package casefile implements the clue-placement puzzle: clues are matched
// against timeline slots grouped under anchors. Invalid input never errors,
// it just leaves the state untouched, because the UI treats a failed drop as
// a shake animation rather than a fault.
package casefile

import (
	"log/slog"
	"sync"

	"github.com/myrjola/gumshoe/internal/models"
)

// ViewMode only affects presentation; the puzzle rules ignore it.
type ViewMode string

const (
	ViewWorkspace ViewMode = "workspace"
	ViewTimeline  ViewMode = "timeline"
)

// Engine is the case file state machine for one investigation session.
type Engine struct {
	mu     sync.Mutex
	logger *slog.Logger

	// initial is kept pristine for Reset.
	initial models.CaseFile

	clues     map[string]models.Clue
	clueOrder []string
	slots     map[string]*models.EvidenceSlot
	slotOrder []string
	anchors   map[string]models.TimelineAnchor

	activeAnchorID      string
	selectedClueID      string
	viewMode            ViewMode
	score               int
	lastIncorrectSlotID string
}

func NewEngine(caseFile models.CaseFile, logger *slog.Logger) *Engine {
	e := &Engine{
		logger:  logger.With("source", "casefile.Engine"),
		initial: caseFile,
	}
	e.rebuild()
	return e
}

// rebuild restores the freshly-loaded state from the initial case file.
func (e *Engine) rebuild() {
	e.clues = make(map[string]models.Clue, len(e.initial.Clues))
	e.clueOrder = make([]string, 0, len(e.initial.Clues))
	for _, clue := range e.initial.Clues {
		e.clues[clue.ID] = clue
		e.clueOrder = append(e.clueOrder, clue.ID)
	}

	e.slots = make(map[string]*models.EvidenceSlot, len(e.initial.Slots))
	e.slotOrder = make([]string, 0, len(e.initial.Slots))
	for _, slot := range e.initial.Slots {
		stored := slot
		stored.PlacedClueID = ""
		e.slots[slot.ID] = &stored
		e.slotOrder = append(e.slotOrder, slot.ID)
	}

	e.anchors = make(map[string]models.TimelineAnchor, len(e.initial.Anchors))
	for _, anchor := range e.initial.Anchors {
		e.anchors[anchor.ID] = anchor
	}

	e.activeAnchorID = ""
	if len(e.initial.Anchors) > 0 {
		e.activeAnchorID = e.initial.Anchors[0].ID
	}
	e.selectedClueID = ""
	e.viewMode = ViewWorkspace
	e.score = 0
	e.lastIncorrectSlotID = ""
}

// SelectClue marks a clue as the one the next PlaceClue call will use.
// Selecting an unknown clue clears the selection.
func (e *Engine) SelectClue(clueID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.clues[clueID]; !ok {
		e.selectedClueID = ""
		return
	}
	e.selectedClueID = clueID
}

// ClearSelection drops the selected clue.
func (e *Engine) ClearSelection() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.selectedClueID = ""
}

// SetActiveAnchor switches the anchor tab. Unknown anchors are ignored.
func (e *Engine) SetActiveAnchor(anchorID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if _, ok := e.anchors[anchorID]; !ok {
		return
	}
	e.activeAnchorID = anchorID
}

// SetViewMode switches between workspace and timeline presentation.
func (e *Engine) SetViewMode(mode ViewMode) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if mode != ViewWorkspace && mode != ViewTimeline {
		return
	}
	e.viewMode = mode
}

// PlaceClue attempts to place the currently selected clue into a slot.
//
// A primary clue is correct iff the slot's declared event key matches the
// clue's. A supporting clue is correct iff the active anchor's primary slot is
// already filled, the slot is one of the anchor's supporting slots, and the
// clue's category equals the anchor id. A correct placement fills the slot,
// adds points plus bonus, and clears the selection and the incorrect marker.
// An incorrect placement only records the slot for transient UI feedback.
// Unresolvable input (no selection, unknown slot, no active anchor, filled
// slot) changes nothing.
func (e *Engine) PlaceClue(slotID string) {
	e.mu.Lock()
	defer e.mu.Unlock()

	clue, ok := e.clues[e.selectedClueID]
	if !ok {
		return
	}
	slot, ok := e.slots[slotID]
	if !ok {
		return
	}
	anchor, ok := e.anchors[e.activeAnchorID]
	if !ok {
		return
	}
	if slot.PlacedClueID != "" {
		return
	}

	correct := false
	switch clue.Type {
	case models.CluePrimary:
		correct = slot.CorrectEventKey != "" && slot.CorrectEventKey == clue.EventKey
	case models.ClueSupporting:
		correct = e.primaryFilled(anchor) &&
			containsString(anchor.SupportingSlotIDs, slotID) &&
			clue.Category == anchor.ID
	}

	if !correct {
		e.lastIncorrectSlotID = slotID
		return
	}

	// The clue stays in the master list; unplaced views filter it out by
	// checking slot references so slot lookups stay consistent.
	slot.PlacedClueID = clue.ID
	e.score += clue.Points + clue.Bonus
	e.selectedClueID = ""
	e.lastIncorrectSlotID = ""

	e.logger.Debug("clue placed",
		slog.String("clue", clue.ID),
		slog.String("slot", slotID),
		slog.Int("score", e.score))
}

func (e *Engine) primaryFilled(anchor models.TimelineAnchor) bool {
	primary, ok := e.slots[anchor.PrimarySlotID]
	return ok && primary.PlacedClueID != ""
}

// Reset restores the freshly-loaded case file: score zero, all slots empty,
// view back to the workspace.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.rebuild()
}

func (e *Engine) Score() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.score
}

func (e *Engine) ViewMode() ViewMode {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.viewMode
}

func (e *Engine) ActiveAnchorID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.activeAnchorID
}

func (e *Engine) SelectedClueID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.selectedClueID
}

// LastIncorrectSlotID identifies the slot of the most recent incorrect
// placement, for transient UI feedback. Empty after a correct placement.
func (e *Engine) LastIncorrectSlotID() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lastIncorrectSlotID
}

// Slot returns a snapshot of a slot.
func (e *Engine) Slot(slotID string) (models.EvidenceSlot, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	slot, ok := e.slots[slotID]
	if !ok {
		return models.EvidenceSlot{}, false
	}
	return *slot, true
}

// Slots returns all slots in declaration order.
func (e *Engine) Slots() []models.EvidenceSlot {
	e.mu.Lock()
	defer e.mu.Unlock()

	slots := make([]models.EvidenceSlot, 0, len(e.slotOrder))
	for _, id := range e.slotOrder {
		slots = append(slots, *e.slots[id])
	}
	return slots
}

// Anchors returns all anchors in declaration order.
func (e *Engine) Anchors() []models.TimelineAnchor {
	e.mu.Lock()
	defer e.mu.Unlock()

	anchors := make([]models.TimelineAnchor, 0, len(e.initial.Anchors))
	for _, anchor := range e.initial.Anchors {
		anchors = append(anchors, e.anchors[anchor.ID])
	}
	return anchors
}

// IsComplete reports whether every slot, primary and supporting, across all
// anchors holds a clue.
func (e *Engine) IsComplete() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	for _, id := range e.slotOrder {
		if e.slots[id].PlacedClueID == "" {
			return false
		}
	}
	return true
}

// UnplacedClues returns the clues not referenced by any slot, in declaration
// order.
func (e *Engine) UnplacedClues() []models.Clue {
	e.mu.Lock()
	defer e.mu.Unlock()

	placed := make(map[string]bool, len(e.slotOrder))
	for _, id := range e.slotOrder {
		if clueID := e.slots[id].PlacedClueID; clueID != "" {
			placed[clueID] = true
		}
	}

	var unplaced []models.Clue
	for _, id := range e.clueOrder {
		if !placed[id] {
			unplaced = append(unplaced, e.clues[id])
		}
	}
	return unplaced
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
