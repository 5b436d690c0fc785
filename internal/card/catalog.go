package card

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed data/cards.yaml
var defaultCatalog []byte

var ErrEmptyTier = errors.New("catalog has no cards for tier")

// Catalog is the read-only card dataset, indexed by id and by tier.
type Catalog struct {
	cards  []Card
	byID   map[string]Card
	byTier map[Tier][]Card
}

type catalogFile struct {
	Cards []Card `yaml:"cards"`
}

// DefaultCatalog parses the dataset bundled with the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// LoadCatalog reads a YAML (or JSON) dataset from disk.
func LoadCatalog(path string) (*Catalog, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	c, err := ParseCatalog(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// ParseCatalog accepts either {cards: [...]} or a bare list of cards.
func ParseCatalog(b []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(b, &f); err != nil || len(f.Cards) == 0 {
		var list []Card
		if lerr := yaml.Unmarshal(b, &list); lerr != nil {
			if err != nil {
				return nil, fmt.Errorf("parse catalog: %w", err)
			}
			return nil, fmt.Errorf("parse catalog: %w", lerr)
		}
		f.Cards = list
	}
	return NewCatalog(f.Cards)
}

// NewCatalog validates cards and builds the indexes.
func NewCatalog(cards []Card) (*Catalog, error) {
	var errs []string
	c := &Catalog{
		cards:  make([]Card, 0, len(cards)),
		byID:   make(map[string]Card, len(cards)),
		byTier: make(map[Tier][]Card, len(Tiers)),
	}
	for i, cd := range cards {
		switch {
		case cd.ID == "":
			errs = append(errs, fmt.Sprintf("cards[%d]: missing id", i))
			continue
		case cd.Tier.Rank() < 0:
			errs = append(errs, fmt.Sprintf("cards[%d] %s: unknown tier %q", i, cd.ID, cd.Tier))
			continue
		}
		if _, err := ParseRole(string(cd.Role)); err != nil {
			errs = append(errs, fmt.Sprintf("cards[%d] %s: %v", i, cd.ID, err))
			continue
		}
		if cd.Rating < 0 || cd.Rating > 100 {
			errs = append(errs, fmt.Sprintf("cards[%d] %s: rating must be in [0,100]", i, cd.ID))
			continue
		}
		if _, dup := c.byID[cd.ID]; dup {
			errs = append(errs, fmt.Sprintf("cards[%d]: duplicate id %s", i, cd.ID))
			continue
		}
		c.cards = append(c.cards, cd)
		c.byID[cd.ID] = cd
		c.byTier[cd.Tier] = append(c.byTier[cd.Tier], cd)
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("catalog validation failed: %s", strings.Join(errs, "; "))
	}
	return c, nil
}

func (c *Catalog) Len() int { return len(c.cards) }

func (c *Catalog) Get(id string) (Card, bool) {
	cd, ok := c.byID[id]
	return cd, ok
}

// Pool returns the cards of one tier. The slice must not be modified.
func (c *Catalog) Pool(t Tier) []Card { return c.byTier[t] }

// All returns every card in dataset order.
func (c *Catalog) All() []Card { return append([]Card(nil), c.cards...) }

// RequireTiers fails if any of the given tiers has no cards to draw from.
func (c *Catalog) RequireTiers(tiers ...Tier) error {
	for _, t := range tiers {
		if len(c.byTier[t]) == 0 {
			return fmt.Errorf("%w %s", ErrEmptyTier, t)
		}
	}
	return nil
}
