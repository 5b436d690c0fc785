package card

import (
	"fmt"
	"strings"
)

// Tier is the rarity class of a card.
type Tier string

const (
	Common Tier = "Common"
	Rare   Tier = "Rare"
	Epic   Tier = "Epic"
	Legend Tier = "Legend"
)

// Tiers lists every tier in draw order, most common first.
var Tiers = []Tier{Common, Rare, Epic, Legend}

// Rank orders tiers by scarcity; unknown tiers rank -1.
func (t Tier) Rank() int {
	for i, x := range Tiers {
		if x == t {
			return i
		}
	}
	return -1
}

// Premium reports whether the tier gets the highlighted reveal.
func (t Tier) Premium() bool { return t == Epic || t == Legend }

func ParseTier(s string) (Tier, error) {
	for _, t := range Tiers {
		if strings.EqualFold(string(t), s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tier %q", s)
}

// Role is the on-field role of a player card.
type Role string

const (
	Batter     Role = "BAT"
	Bowler     Role = "BOWL"
	AllRounder Role = "AR"
	Keeper     Role = "WK"
)

var Roles = []Role{Batter, Bowler, AllRounder, Keeper}

func ParseRole(s string) (Role, error) {
	for _, r := range Roles {
		if strings.EqualFold(string(r), s) {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown role %q", s)
}

type Stats struct {
	BattingAvg  float64 `yaml:"batting_avg" json:"batting_avg"`
	StrikeRate  float64 `yaml:"strike_rate" json:"strike_rate"`
	BowlingEcon float64 `yaml:"bowling_econ" json:"bowling_econ"`
}

// Card is one catalog entry. Cards are never mutated after loading.
type Card struct {
	ID     string `yaml:"id" json:"id"`
	Name   string `yaml:"name" json:"name"`
	Role   Role   `yaml:"role" json:"role"`
	Team   string `yaml:"team" json:"team"`
	Tier   Tier   `yaml:"tier" json:"tier"`
	Rating int    `yaml:"rating" json:"rating"`
	Stats  Stats  `yaml:"stats" json:"stats"`
	Photo  string `yaml:"photo,omitempty" json:"photo,omitempty"`
}

func (c Card) String() string {
	return fmt.Sprintf("%s (%s %s, %s) %d", c.Name, c.Tier, c.Role, c.Team, c.Rating)
}
