package pack

import (
	"errors"
	"fmt"
	"strings"

	"github.com/xtding233/cricket-packs/internal/card"
)

const (
	// CardsPerPack is how many cards one pack yields.
	CardsPerPack = 5
	// StartingCoins is the wallet balance for a new or reset game.
	StartingCoins = 2000
)

var ErrUnknownPack = errors.New("unknown pack")

// Definition models a purchasable pack: its price and relative tier odds.
// Odds are weights; they need not sum to 100.
type Definition struct {
	Name  string                `json:"name"`
	Price int                   `json:"price"`
	Odds  map[card.Tier]float64 `json:"odds"`
}

// Chance returns the probability of drawing tier t for one card of this pack.
func (d Definition) Chance(t card.Tier) float64 {
	total := 0.0
	for _, w := range d.Odds {
		total += w
	}
	if total <= 0 {
		return 0
	}
	return d.Odds[t] / total
}

// Tiers returns the tiers with positive odds, in draw order.
func (d Definition) Tiers() []card.Tier {
	var out []card.Tier
	for _, t := range card.Tiers {
		if d.Odds[t] > 0 {
			out = append(out, t)
		}
	}
	return out
}

// Table is the full pack economy: pack definitions in display order,
// duplicate refunds per tier, and wallet defaults.
type Table struct {
	Packs           []Definition
	DuplicateRefund map[card.Tier]int
	StartingCoins   int
	CardsPerPack    int
}

// Get finds a pack by name, case-insensitively.
func (t Table) Get(name string) (Definition, error) {
	for _, d := range t.Packs {
		if strings.EqualFold(d.Name, name) {
			return d, nil
		}
	}
	return Definition{}, fmt.Errorf("%w %q", ErrUnknownPack, name)
}

func (t Table) Names() []string {
	names := make([]string, len(t.Packs))
	for i, d := range t.Packs {
		names[i] = d.Name
	}
	return names
}

// Refund is the coin value of a duplicate of the given tier.
func (t Table) Refund(tier card.Tier) int { return t.DuplicateRefund[tier] }

// Default returns the built-in Bronze/Silver/Gold table.
func Default() Table {
	return Table{
		Packs: []Definition{
			{
				Name:  "Bronze",
				Price: 100,
				Odds:  map[card.Tier]float64{card.Common: 70, card.Rare: 25, card.Epic: 4.5, card.Legend: 0.5},
			},
			{
				Name:  "Silver",
				Price: 500,
				Odds:  map[card.Tier]float64{card.Common: 40, card.Rare: 45, card.Epic: 13, card.Legend: 2},
			},
			{
				Name:  "Gold",
				Price: 1500,
				Odds:  map[card.Tier]float64{card.Common: 20, card.Rare: 50, card.Epic: 25, card.Legend: 5},
			},
		},
		DuplicateRefund: map[card.Tier]int{
			card.Common: 10,
			card.Rare:   30,
			card.Epic:   100,
			card.Legend: 300,
		},
		StartingCoins: StartingCoins,
		CardsPerPack:  CardsPerPack,
	}
}
