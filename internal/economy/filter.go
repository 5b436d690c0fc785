package economy

import (
	"fmt"
	"sort"
	"strings"

	"github.com/xtding233/cricket-packs/internal/card"
)

// All is the filter value meaning "no constraint", as is "".
const All = "All"

// Filter narrows the collection view. Matching is pure predicate filtering.
type Filter struct {
	Query string `form:"q" json:"q"`
	Tier  string `form:"tier" json:"tier"`
	Role  string `form:"role" json:"role"`
	Team  string `form:"team" json:"team"`
}

func unset(v string) bool {
	v = strings.TrimSpace(v)
	return v == "" || strings.EqualFold(v, All)
}

// Match reports whether c passes every active constraint. The query is a
// case-insensitive substring of "name team role tier rating".
func (f Filter) Match(c card.Card) bool {
	if !unset(f.Tier) && !strings.EqualFold(string(c.Tier), strings.TrimSpace(f.Tier)) {
		return false
	}
	if !unset(f.Role) && !strings.EqualFold(string(c.Role), strings.TrimSpace(f.Role)) {
		return false
	}
	if !unset(f.Team) && c.Team != strings.TrimSpace(f.Team) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Query))
	if q == "" {
		return true
	}
	hay := strings.ToLower(fmt.Sprintf("%s %s %s %s %d", c.Name, c.Team, c.Role, c.Tier, c.Rating))
	return strings.Contains(hay, q)
}

// Browse returns the owned cards matching f, best cards first.
func Browse(inv map[string]card.Card, f Filter) []card.Card {
	out := make([]card.Card, 0, len(inv))
	for _, c := range inv {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Tier != b.Tier {
			return a.Tier.Rank() > b.Tier.Rank()
		}
		if a.Rating != b.Rating {
			return a.Rating > b.Rating
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return out
}

// Teams lists the distinct teams present in the collection, sorted.
func Teams(inv map[string]card.Card) []string {
	seen := make(map[string]struct{})
	for _, c := range inv {
		seen[c.Team] = struct{}{}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}
