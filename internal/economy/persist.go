package economy

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/xtding233/cricket-packs/internal/card"
)

// Storage keys. Each value is JSON text.
const (
	KeyPrefix    = "cricket-packs-state-v1"
	KeyCoins     = KeyPrefix + ":coins"
	KeyMuted     = KeyPrefix + ":muted"
	KeyInventory = KeyPrefix + ":inv"
	KeyCounts    = KeyPrefix + ":counts"
)

// Store is the key/value collaborator that persists the state.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
}

// Load rehydrates the state. Every key falls back to its default on its own
// when missing, unreadable or corrupt; Load never fails.
func Load(ctx context.Context, s Store, startingCoins int, logger *log.Logger) State {
	st := NewState(startingCoins)
	if s == nil {
		return st
	}

	var coins int
	if readKey(ctx, s, KeyCoins, &coins, logger) && coins >= 0 {
		st.Coins = coins
	}
	var muted bool
	if readKey(ctx, s, KeyMuted, &muted, logger) {
		st.Muted = muted
	}
	var inv map[string]card.Card
	if readKey(ctx, s, KeyInventory, &inv, logger) && inv != nil {
		st.Inventory = inv
	}
	var counts map[string]int
	if readKey(ctx, s, KeyCounts, &counts, logger) && counts != nil {
		for id, n := range counts {
			if n > 0 {
				st.Counts[id] = n
			}
		}
	}
	return st
}

func readKey(ctx context.Context, s Store, key string, dst any, logger *log.Logger) bool {
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		logf(logger, "load %s: %v (using default)", key, err)
		return false
	}
	if !ok {
		return false
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		logf(logger, "load %s: corrupt value: %v (using default)", key, err)
		return false
	}
	return true
}

// Save writes every key. It is best effort: the first failure is returned
// for logging but the remaining keys are still attempted.
func Save(ctx context.Context, s Store, st State) error {
	if s == nil {
		return nil
	}
	entries := []struct {
		key string
		val any
	}{
		{KeyCoins, st.Coins},
		{KeyMuted, st.Muted},
		{KeyInventory, st.Inventory},
		{KeyCounts, st.Counts},
	}
	var first error
	for _, e := range entries {
		b, err := json.Marshal(e.val)
		if err == nil {
			err = s.Set(ctx, e.key, string(b))
		}
		if err != nil && first == nil {
			first = fmt.Errorf("save %s: %w", e.key, err)
		}
	}
	return first
}

func logf(logger *log.Logger, format string, args ...any) {
	if logger == nil {
		logger = log.Default()
	}
	logger.Printf(format, args...)
}
