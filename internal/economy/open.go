package economy

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/gacha"
	"github.com/xtding233/cricket-packs/internal/pack"
)

// OpenedCard is one card pulled from a pack.
type OpenedCard struct {
	Card        card.Card `json:"card"`
	IsDuplicate bool      `json:"is_duplicate"`
}

// Result summarizes one pack opening.
type Result struct {
	ID          uuid.UUID    `json:"id"`
	Pack        string       `json:"pack"`
	Cards       []OpenedCard `json:"cards"`
	PackPrice   int          `json:"pack_price"`
	GainedCoins int          `json:"gained_coins"`
	Balance     int          `json:"balance"` // wallet right after commit
}

// Duplicates counts the cards that were converted to coins.
func (r *Result) Duplicates() int {
	n := 0
	for _, c := range r.Cards {
		if c.IsDuplicate {
			n++
		}
	}
	return n
}

// HasPremium reports whether the pack contained an Epic or Legend card.
func (r *Result) HasPremium() bool {
	for _, c := range r.Cards {
		if c.Card.Tier.Premium() {
			return true
		}
	}
	return false
}

// Net is the balance change caused by this opening.
func (r *Result) Net() int { return r.GainedCoins - r.PackPrice }

// DrawCard picks a tier by the pack's odds, then a card uniformly from that tier.
func DrawCard(def pack.Definition, cat *card.Catalog, rng gacha.RandomSource) (card.Card, error) {
	tier, err := gacha.WeightedDraw(card.Tiers, def.Odds, rng)
	if err != nil {
		return card.Card{}, fmt.Errorf("pack %s: %w", def.Name, err)
	}
	c, err := gacha.Sample(cat.Pool(tier), rng)
	if err != nil {
		return card.Card{}, fmt.Errorf("pack %s tier %s: %w", def.Name, tier, err)
	}
	return c, nil
}

// OpenPack buys and opens one pack against st and returns the next state.
//
// If the balance is below the price it returns st unchanged and a nil result;
// that is the "not enough coins" outcome, not an error. Errors only come from
// a broken catalog or odds table, in which case nothing is committed.
//
// Duplicates are judged against the counts as they were before the pack was
// opened, so two copies of a card that was not owned are both reported new.
// Every drawn card still increments its count.
func OpenPack(st State, def pack.Definition, tbl pack.Table, cat *card.Catalog, rng gacha.RandomSource) (State, *Result, error) {
	if st.Coins < def.Price {
		return st, nil, nil
	}
	n := tbl.CardsPerPack
	if n <= 0 {
		n = pack.CardsPerPack
	}

	res := &Result{
		ID:        uuid.New(),
		Pack:      def.Name,
		Cards:     make([]OpenedCard, 0, n),
		PackPrice: def.Price,
	}
	for i := 0; i < n; i++ {
		c, err := DrawCard(def, cat, rng)
		if err != nil {
			return st, nil, err
		}
		dup := st.Counts[c.ID] > 0
		res.Cards = append(res.Cards, OpenedCard{Card: c, IsDuplicate: dup})
		if dup {
			res.GainedCoins += tbl.Refund(c.Tier)
		}
	}

	next := st.Clone()
	next.Coins = st.Coins - def.Price + res.GainedCoins
	res.Balance = next.Coins
	for _, oc := range res.Cards {
		next.Inventory[oc.Card.ID] = oc.Card
		next.Counts[oc.Card.ID]++
	}
	return next, res, nil
}
