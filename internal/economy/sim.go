package economy

import (
	"errors"
	"math"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/gacha"
	"github.com/xtding233/cricket-packs/internal/pack"
)

// maxPacksPerRun bounds the first-legend search for packs with tiny odds.
const maxPacksPerRun = 100000

// SimReport describes the long-run behaviour of one pack type.
type SimReport struct {
	Pack   string `json:"pack"`
	Trials int    `json:"trials"`

	// TierCounts counts every card drawn across Trials consecutive packs.
	TierCounts map[card.Tier]int `json:"tier_counts"`
	// Refund is coins refunded per pack while a collection grows from empty.
	Refund gacha.Stats `json:"refund"`
	// FirstLegend is packs opened until the first Legend, over Trials runs.
	// Zero when the pack cannot draw a Legend.
	FirstLegend gacha.Stats `json:"first_legend"`
	// ExpectedRefundCap is the refund per pack once every card is owned.
	ExpectedRefundCap float64 `json:"expected_refund_cap"`
}

// Simulate opens trials packs of def from an empty collection, then runs
// trials independent first-legend searches. The wallet is never a limit.
func Simulate(def pack.Definition, tbl pack.Table, cat *card.Catalog, trials int, rng gacha.RandomSource) (SimReport, error) {
	if trials <= 0 {
		return SimReport{}, errors.New("trials must be > 0")
	}
	rep := SimReport{
		Pack:       def.Name,
		Trials:     trials,
		TierCounts: make(map[card.Tier]int, len(card.Tiers)),
	}

	st := NewState(math.MaxInt / 2)
	refund, err := gacha.RunMonteCarlo(trials, func() (int, error) {
		st.Coins = math.MaxInt / 2
		next, res, err := OpenPack(st, def, tbl, cat, rng)
		if err != nil {
			return 0, err
		}
		for _, oc := range res.Cards {
			rep.TierCounts[oc.Card.Tier]++
		}
		st = next
		return res.GainedCoins, nil
	})
	if err != nil {
		return SimReport{}, err
	}
	rep.Refund = refund

	n := tbl.CardsPerPack
	if n <= 0 {
		n = pack.CardsPerPack
	}
	for _, t := range card.Tiers {
		rep.ExpectedRefundCap += float64(n) * def.Chance(t) * float64(tbl.Refund(t))
	}

	if def.Odds[card.Legend] <= 0 {
		return rep, nil
	}
	// Each card is a Legend independently, so one trial per card is enough.
	pLegend := def.Chance(card.Legend)
	rep.FirstLegend, err = gacha.RunMonteCarlo(trials, func() (int, error) {
		for packs := 1; packs <= maxPacksPerRun; packs++ {
			for i := 0; i < n; i++ {
				hit, err := gacha.Hit(pLegend, rng)
				if err != nil {
					return 0, err
				}
				if hit {
					return packs, nil
				}
			}
		}
		return maxPacksPerRun, nil
	})
	return rep, err
}
