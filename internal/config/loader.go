package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/xtding233/cricket-packs/internal/pack"
)

//go:embed defaults.yaml
var defaultYAML []byte

// Loader reads the pack table YAML and merges it onto the built-in defaults.
type Loader struct {
	path string // optional override file; "" means defaults only

	mu     sync.RWMutex
	cached *RawConfig
}

// NewLoader creates a loader for the given override file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

func (l *Loader) Path() string { return l.path }

// LoadMerged loads and merges default <- file. A missing file is not an error.
func (l *Loader) LoadMerged() (RawConfig, error) {
	l.mu.RLock()
	if l.cached != nil {
		cfg := *l.cached
		l.mu.RUnlock()
		return cfg, nil
	}
	l.mu.RUnlock()

	defCfg, err := parseYAML(defaultYAML)
	if err != nil {
		return RawConfig{}, fmt.Errorf("parse defaults: %w", err)
	}
	merged := defCfg
	if l.path != "" {
		fileCfg, err := readYAML(l.path)
		if err != nil {
			return RawConfig{}, fmt.Errorf("read %s: %w", l.path, err)
		}
		merged = mergeRaw(defCfg, fileCfg)
	}

	l.mu.Lock()
	l.cached = &merged
	l.mu.Unlock()
	return merged, nil
}

// Load returns the validated, resolved pack table.
func (l *Loader) Load() (pack.Table, error) {
	raw, err := l.LoadMerged()
	if err != nil {
		return pack.Table{}, err
	}
	if err := ValidateRaw(raw); err != nil {
		return pack.Table{}, err
	}
	return Resolve(raw)
}

// Invalidate clears the loader's cache. Call after hot-reload detects changes.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}

// readYAML loads a YAML file into RawConfig. Missing files return zero cfg, no error.
func readYAML(path string) (RawConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return RawConfig{}, nil
		}
		return RawConfig{}, err
	}
	return parseYAML(b)
}

func parseYAML(b []byte) (RawConfig, error) {
	var cfg RawConfig
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return RawConfig{}, err
	}
	return cfg, nil
}

// mergeRaw overlays 'b' onto 'a': set fields in b win. Packs merge by name
// (case-insensitive) and per tier; packs only in b are appended.
func mergeRaw(a, b RawConfig) RawConfig {
	out := a

	if b.Version != "" {
		out.Version = b.Version
	}
	if b.Notes != "" {
		out.Notes = b.Notes
	}

	// economy
	if b.Economy.StartingCoins != nil {
		out.Economy.StartingCoins = b.Economy.StartingCoins
	}
	if b.Economy.CardsPerPack != nil {
		out.Economy.CardsPerPack = b.Economy.CardsPerPack
	}

	// refunds
	if len(b.DuplicateRefund) > 0 {
		refunds := make(map[string]*int, len(a.DuplicateRefund)+len(b.DuplicateRefund))
		for k, v := range a.DuplicateRefund {
			refunds[k] = v
		}
		for k, v := range b.DuplicateRefund {
			if v != nil {
				refunds[canonicalTier(k)] = v
			}
		}
		out.DuplicateRefund = refunds
	}

	// packs
	out.Packs = make([]PackConfig, 0, len(a.Packs)+len(b.Packs))
	for _, p := range a.Packs {
		out.Packs = append(out.Packs, copyPack(p))
	}
	for _, bp := range b.Packs {
		idx := -1
		for i := range out.Packs {
			if strings.EqualFold(out.Packs[i].Name, bp.Name) {
				idx = i
				break
			}
		}
		if idx < 0 {
			out.Packs = append(out.Packs, copyPack(bp))
			continue
		}
		if bp.Price != nil {
			out.Packs[idx].Price = bp.Price
		}
		for k, v := range bp.Odds {
			if v != nil {
				out.Packs[idx].Odds[canonicalTier(k)] = v
			}
		}
	}
	return out
}

func copyPack(p PackConfig) PackConfig {
	c := p
	c.Odds = make(map[string]*float64, len(p.Odds))
	for k, v := range p.Odds {
		c.Odds[canonicalTier(k)] = v
	}
	return c
}
