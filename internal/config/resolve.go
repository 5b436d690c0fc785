// resolve.go
package config

import (
	"fmt"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/pack"
)

// canonicalTier maps "legend", "LEGEND" etc. to the tier spelling; unknown
// names are returned unchanged so validation can report them.
func canonicalTier(s string) string {
	t, err := card.ParseTier(s)
	if err != nil {
		return s
	}
	return string(t)
}

// Resolve turns a validated RawConfig into the engine's pack table.
func Resolve(raw RawConfig) (pack.Table, error) {
	tbl := pack.Table{
		DuplicateRefund: make(map[card.Tier]int, len(card.Tiers)),
		StartingCoins:   pack.StartingCoins,
		CardsPerPack:    pack.CardsPerPack,
	}
	if raw.Economy.StartingCoins != nil {
		tbl.StartingCoins = *raw.Economy.StartingCoins
	}
	if raw.Economy.CardsPerPack != nil {
		tbl.CardsPerPack = *raw.Economy.CardsPerPack
	}
	for k, v := range raw.DuplicateRefund {
		t, err := card.ParseTier(k)
		if err != nil {
			return pack.Table{}, fmt.Errorf("duplicate_refund: %w", err)
		}
		if v != nil {
			tbl.DuplicateRefund[t] = *v
		}
	}
	for _, p := range raw.Packs {
		def := pack.Definition{
			Name: p.Name,
			Odds: make(map[card.Tier]float64, len(card.Tiers)),
		}
		if p.Price != nil {
			def.Price = *p.Price
		}
		for k, v := range p.Odds {
			t, err := card.ParseTier(k)
			if err != nil {
				return pack.Table{}, fmt.Errorf("packs[%s].odds: %w", p.Name, err)
			}
			if v != nil {
				def.Odds[t] = *v
			}
		}
		tbl.Packs = append(tbl.Packs, def)
	}
	return tbl, nil
}
