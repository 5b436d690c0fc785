package config

import (
	"fmt"
	"math"
	"strings"

	"github.com/xtding233/cricket-packs/internal/card"
)

// ValidateRaw checks semantic constraints of a RawConfig.
func ValidateRaw(cfg RawConfig) error {
	var errs []string

	// economy
	if cfg.Economy.StartingCoins != nil && *cfg.Economy.StartingCoins < 0 {
		errs = append(errs, "economy.starting_coins must be >= 0")
	}
	if cfg.Economy.CardsPerPack != nil && *cfg.Economy.CardsPerPack <= 0 {
		errs = append(errs, "economy.cards_per_pack must be >= 1")
	}

	// duplicate_refund
	for k, v := range cfg.DuplicateRefund {
		if _, err := card.ParseTier(k); err != nil {
			errs = append(errs, fmt.Sprintf("duplicate_refund: unknown tier %q", k))
			continue
		}
		if v == nil || *v < 0 {
			errs = append(errs, fmt.Sprintf("duplicate_refund.%s must be >= 0", k))
		}
	}
	for _, t := range card.Tiers {
		if _, ok := cfg.DuplicateRefund[string(t)]; !ok {
			errs = append(errs, fmt.Sprintf("duplicate_refund.%s is required", t))
		}
	}

	// packs
	if len(cfg.Packs) == 0 {
		errs = append(errs, "packs must not be empty")
	}
	seen := make(map[string]bool, len(cfg.Packs))
	for i, p := range cfg.Packs {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			errs = append(errs, fmt.Sprintf("packs[%d].name is required", i))
			continue
		}
		key := strings.ToLower(name)
		if seen[key] {
			errs = append(errs, fmt.Sprintf("packs[%d]: duplicate name %q", i, name))
		}
		seen[key] = true

		if p.Price == nil {
			errs = append(errs, fmt.Sprintf("packs.%s.price is required", name))
		} else if *p.Price < 0 {
			errs = append(errs, fmt.Sprintf("packs.%s.price must be >= 0", name))
		}

		total := 0.0
		for k, w := range p.Odds {
			if _, err := card.ParseTier(k); err != nil {
				errs = append(errs, fmt.Sprintf("packs.%s.odds: unknown tier %q", name, k))
				continue
			}
			if w == nil || math.IsNaN(*w) || math.IsInf(*w, 0) || *w < 0 {
				errs = append(errs, fmt.Sprintf("packs.%s.odds.%s must be a finite number >= 0", name, k))
				continue
			}
			total += *w
		}
		// all four tiers must be present
		for _, t := range card.Tiers {
			if _, ok := p.Odds[string(t)]; !ok {
				errs = append(errs, fmt.Sprintf("packs.%s.odds.%s is required", name, t))
			}
		}
		if total <= 0 {
			errs = append(errs, fmt.Sprintf("packs.%s.odds must sum to more than 0", name))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
