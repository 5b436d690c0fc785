package economy

import (
	"github.com/xtding233/cricket-packs/internal/card"
)

// State is the player's whole economy: wallet, mute flag and collection.
type State struct {
	Coins     int                  `json:"coins"`
	Muted     bool                 `json:"muted"`
	Inventory map[string]card.Card `json:"inventory"` // id -> owned card
	Counts    map[string]int       `json:"counts"`    // id -> copies
}

// NewState returns a fresh game with the given balance and an empty collection.
func NewState(startingCoins int) State {
	return State{
		Coins:     startingCoins,
		Inventory: make(map[string]card.Card),
		Counts:    make(map[string]int),
	}
}

// Clone deep-copies the maps so the copy can be mutated independently.
func (s State) Clone() State {
	out := State{
		Coins:     s.Coins,
		Muted:     s.Muted,
		Inventory: make(map[string]card.Card, len(s.Inventory)),
		Counts:    make(map[string]int, len(s.Counts)),
	}
	for k, v := range s.Inventory {
		out.Inventory[k] = v
	}
	for k, v := range s.Counts {
		out.Counts[k] = v
	}
	return out
}

// Owned reports how many copies of a card id the collection holds.
func (s State) Owned(id string) int { return s.Counts[id] }

// Unique is the number of distinct cards owned.
func (s State) Unique() int { return len(s.Inventory) }

// Reset restores the default balance and clears the collection.
// The mute flag is a setting, not game progress, and survives a reset.
func Reset(s State, startingCoins int) State {
	out := NewState(startingCoins)
	out.Muted = s.Muted
	return out
}
