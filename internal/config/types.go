// types.go
package config

// RawConfig is the pack economy as written in YAML. Pointer fields tell
// "unset" apart from zero so overrides merge cleanly onto the defaults.
type RawConfig struct {
	Version         string          `yaml:"version"`
	Economy         EconomyConfig   `yaml:"economy"`
	DuplicateRefund map[string]*int `yaml:"duplicate_refund,omitempty"`
	Packs           []PackConfig    `yaml:"packs"`
	Notes           string          `yaml:"notes,omitempty"`
}

type EconomyConfig struct {
	StartingCoins *int `yaml:"starting_coins"`
	CardsPerPack  *int `yaml:"cards_per_pack"`
}

type PackConfig struct {
	Name  string              `yaml:"name"`
	Price *int                `yaml:"price"`
	Odds  map[string]*float64 `yaml:"odds"` // tier name -> weight
}
