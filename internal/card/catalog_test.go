package card

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog(t *testing.T) {
	cat, err := DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() == 0 {
		t.Fatal("bundled catalog is empty")
	}
	if err := cat.RequireTiers(Tiers...); err != nil {
		t.Fatalf("every tier needs cards: %v", err)
	}
	for _, c := range cat.All() {
		if got, ok := cat.Get(c.ID); !ok || got != c {
			t.Fatalf("Get(%s) = %+v, %v", c.ID, got, ok)
		}
	}
}

func TestParseCatalogJSONList(t *testing.T) {
	src := `[
	  {"id": "a", "name": "Ann", "role": "BAT", "team": "X", "tier": "Common", "rating": 60,
	   "stats": {"batting_avg": 31.5, "strike_rate": 130, "bowling_econ": 0}},
	  {"id": "b", "name": "Bo", "role": "WK", "team": "Y", "tier": "Legend", "rating": 95, "photo": "bo.png"}
	]`
	cat, err := ParseCatalog([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if cat.Len() != 2 {
		t.Fatalf("len=%d", cat.Len())
	}
	a, _ := cat.Get("a")
	if a.Stats.BattingAvg != 31.5 || a.Role != Batter {
		t.Fatalf("a=%+v", a)
	}
	if pool := cat.Pool(Legend); len(pool) != 1 || pool[0].Photo != "bo.png" {
		t.Fatalf("legend pool=%+v", pool)
	}
	if err := cat.RequireTiers(Common, Rare); !errors.Is(err, ErrEmptyTier) {
		t.Fatalf("missing Rare pool: err=%v", err)
	}
}

func TestNewCatalogValidation(t *testing.T) {
	_, err := NewCatalog([]Card{
		{ID: "", Name: "no id", Role: Batter, Tier: Common},
		{ID: "x", Role: "SLIP", Tier: Common},
		{ID: "y", Role: Bowler, Tier: "Mythic"},
		{ID: "z", Role: Bowler, Tier: Rare, Rating: 101},
		{ID: "ok", Role: Bowler, Tier: Rare, Rating: 70},
		{ID: "ok", Role: Bowler, Tier: Rare, Rating: 70},
	})
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"missing id", "unknown role", "unknown tier", "rating", "duplicate id ok"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q does not mention %q", err, want)
		}
	}
}

func TestLoadCatalogFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cards.yaml")
	src := "cards:\n  - {id: c1, name: Cee, role: AR, team: Z, tier: Epic, rating: 84}\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	cat, err := LoadCatalog(path)
	if err != nil {
		t.Fatal(err)
	}
	if len(cat.Pool(Epic)) != 1 {
		t.Fatalf("epic pool=%v", cat.Pool(Epic))
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("missing file should error")
	}
}

func TestParseTierAndRole(t *testing.T) {
	if tier, err := ParseTier("legend"); err != nil || tier != Legend {
		t.Fatalf("ParseTier = %q, %v", tier, err)
	}
	if _, err := ParseTier("mythic"); err == nil {
		t.Fatal("unknown tier should error")
	}
	if r, err := ParseRole("wk"); err != nil || r != Keeper {
		t.Fatalf("ParseRole = %q, %v", r, err)
	}
	if !Legend.Premium() || !Epic.Premium() || Rare.Premium() {
		t.Fatal("only Epic and Legend are premium")
	}
	if Common.Rank() >= Legend.Rank() || Tier("x").Rank() != -1 {
		t.Fatal("rank order broken")
	}
}
