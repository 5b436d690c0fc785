package economy

import (
	"bytes"
	"context"
	"log"
	"strings"
	"testing"

	"github.com/xtding233/cricket-packs/internal/card"
)

func TestLoadDefaultsWithoutStore(t *testing.T) {
	st := Load(context.Background(), nil, 2000, nil)
	if st.Coins != 2000 || st.Muted || st.Unique() != 0 || len(st.Counts) != 0 {
		t.Fatalf("got %+v", st)
	}
	if st.Inventory == nil || st.Counts == nil {
		t.Fatal("maps must be non-nil")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := newMapStore()
	st := NewState(1234)
	st.Muted = true
	st.Inventory["r1"] = card.Card{ID: "r1", Name: "Rare Rita", Role: card.Bowler, Team: "Beta", Tier: card.Rare, Rating: 74}
	st.Counts["r1"] = 3
	if err := Save(ctx, s, st); err != nil {
		t.Fatal(err)
	}
	for _, k := range []string{KeyCoins, KeyMuted, KeyInventory, KeyCounts} {
		if _, ok := s.m[k]; !ok {
			t.Fatalf("key %s not written", k)
		}
	}
	if s.m[KeyCoins] != "1234" || s.m[KeyMuted] != "true" {
		t.Fatalf("raw values: coins=%q muted=%q", s.m[KeyCoins], s.m[KeyMuted])
	}

	got := Load(ctx, s, 2000, nil)
	if got.Coins != 1234 || !got.Muted || got.Counts["r1"] != 3 || got.Inventory["r1"].Name != "Rare Rita" {
		t.Fatalf("loaded %+v", got)
	}
}

func TestLoadFallsBackPerKey(t *testing.T) {
	ctx := context.Background()
	s := newMapStore()
	s.m[KeyCoins] = "not json"
	s.m[KeyMuted] = "true"
	s.m[KeyCounts] = `{"a":2,"b":0,"c":-4}`

	var buf bytes.Buffer
	st := Load(ctx, s, 2000, log.New(&buf, "", 0))
	if st.Coins != 2000 {
		t.Fatalf("corrupt coins should default, got %d", st.Coins)
	}
	if !st.Muted {
		t.Fatal("valid muted key should still load")
	}
	if len(st.Counts) != 1 || st.Counts["a"] != 2 {
		t.Fatalf("counts=%v", st.Counts)
	}
	if !strings.Contains(buf.String(), KeyCoins) {
		t.Fatalf("expected a log line for the corrupt key, got %q", buf.String())
	}
}

func TestLoadRejectsNegativeCoins(t *testing.T) {
	s := newMapStore()
	s.m[KeyCoins] = "-5"
	if st := Load(context.Background(), s, 2000, nil); st.Coins != 2000 {
		t.Fatalf("coins=%d", st.Coins)
	}
}

func TestStoreFailuresAreNotFatal(t *testing.T) {
	var buf bytes.Buffer
	st := Load(context.Background(), failingStore{}, 2000, log.New(&buf, "", 0))
	if st.Coins != 2000 {
		t.Fatalf("coins=%d", st.Coins)
	}
	err := Save(context.Background(), failingStore{}, st)
	if err == nil || !strings.Contains(err.Error(), KeyCoins) {
		t.Fatalf("err=%v", err)
	}
}
