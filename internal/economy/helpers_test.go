package economy

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/events"
	"github.com/xtding233/cricket-packs/internal/pack"
)

// oneOfEach has exactly one card per tier, so a tier decides the card.
func oneOfEach(t *testing.T) *card.Catalog {
	t.Helper()
	cat, err := card.NewCatalog([]card.Card{
		{ID: "c1", Name: "Common Carl", Role: card.Batter, Team: "Alpha", Tier: card.Common, Rating: 60},
		{ID: "r1", Name: "Rare Rita", Role: card.Bowler, Team: "Beta", Tier: card.Rare, Rating: 74},
		{ID: "e1", Name: "Epic Eli", Role: card.AllRounder, Team: "Alpha", Tier: card.Epic, Rating: 85},
		{ID: "l1", Name: "Legend Lou", Role: card.Keeper, Team: "Gamma", Tier: card.Legend, Rating: 94},
	})
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

func defaultCatalog(t *testing.T) *card.Catalog {
	t.Helper()
	cat, err := card.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	return cat
}

// onlyTier is a pack that always draws the given tier.
func onlyTier(tier card.Tier, price int) pack.Definition {
	odds := map[card.Tier]float64{card.Common: 0, card.Rare: 0, card.Epic: 0, card.Legend: 0}
	odds[tier] = 1
	return pack.Definition{Name: "Only" + string(tier), Price: price, Odds: odds}
}

type failingStore struct{}

func (failingStore) Get(context.Context, string) (string, bool, error) {
	return "", false, errors.New("disk on fire")
}

func (failingStore) Set(context.Context, string, string) error { return errors.New("disk on fire") }

type mapStore struct {
	mu sync.Mutex
	m  map[string]string
}

func newMapStore() *mapStore { return &mapStore{m: map[string]string{}} }

func (s *mapStore) Get(_ context.Context, k string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[k]
	return v, ok, nil
}

func (s *mapStore) Set(_ context.Context, k, v string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[k] = v
	return nil
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.PackOpened
}

func (p *recordingPublisher) Publish(_ context.Context, ev events.PackOpened) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }
