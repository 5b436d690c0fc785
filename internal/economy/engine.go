package economy

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/events"
	"github.com/xtding233/cricket-packs/internal/gacha"
	"github.com/xtding233/cricket-packs/internal/pack"
)

// ErrInsufficientFunds is how Engine.Open reports the "no result" outcome of
// a pack the wallet cannot afford. Nothing is changed when it is returned.
var ErrInsufficientFunds = errors.New("not enough coins")

// Options configures an Engine. Only Catalog is required.
type Options struct {
	Table     pack.Table
	Catalog   *card.Catalog
	RNG       gacha.RandomSource
	Store     Store
	Publisher events.Publisher
	Logger    *log.Logger
}

// Engine owns the live State and serializes every transaction on it.
// Each mutation is a single update followed by a best-effort save.
type Engine struct {
	mu    sync.Mutex
	state State
	tbl   pack.Table

	cat   *card.Catalog
	rng   gacha.RandomSource
	store Store
	pub   events.Publisher
	log   *log.Logger
}

// NewEngine checks the catalog against the pack table and rehydrates state
// from the store (defaults if there is none).
func NewEngine(ctx context.Context, opts Options) (*Engine, error) {
	if opts.Catalog == nil {
		return nil, errors.New("economy: catalog is required")
	}
	if len(opts.Table.Packs) == 0 {
		opts.Table = pack.Default()
	}
	if err := checkPools(opts.Table, opts.Catalog); err != nil {
		return nil, err
	}
	if opts.RNG == nil {
		opts.RNG = gacha.DefaultRNG()
	}
	if opts.Publisher == nil {
		opts.Publisher = events.Nop{}
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	e := &Engine{
		tbl:   opts.Table,
		cat:   opts.Catalog,
		rng:   opts.RNG,
		store: opts.Store,
		pub:   opts.Publisher,
		log:   opts.Logger,
	}
	e.state = Load(ctx, opts.Store, opts.Table.StartingCoins, opts.Logger)
	return e, nil
}

// checkPools makes sure every tier any pack can draw has cards.
func checkPools(tbl pack.Table, cat *card.Catalog) error {
	for _, d := range tbl.Packs {
		if err := cat.RequireTiers(d.Tiers()...); err != nil {
			return fmt.Errorf("pack %s: %w", d.Name, err)
		}
	}
	return nil
}

// Open buys and opens the named pack.
func (e *Engine) Open(ctx context.Context, name string) (*Result, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	def, err := e.tbl.Get(name)
	if err != nil {
		return nil, err
	}
	next, res, err := OpenPack(e.state, def, e.tbl, e.cat, e.rng)
	if err != nil {
		return nil, err
	}
	if res == nil {
		return nil, fmt.Errorf("%w: %s costs %d, balance is %d", ErrInsufficientFunds, def.Name, def.Price, e.state.Coins)
	}
	e.state = next
	e.persist(ctx)
	e.publish(ctx, res)
	return res, nil
}

// Reset restores the default balance and empties the collection.
func (e *Engine) Reset(ctx context.Context) State {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = Reset(e.state, e.tbl.StartingCoins)
	e.persist(ctx)
	return e.state.Clone()
}

// SetMuted stores the sound preference.
func (e *Engine) SetMuted(ctx context.Context, muted bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state.Muted == muted {
		return
	}
	e.state.Muted = muted
	e.persist(ctx)
}

// Snapshot returns a copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Clone()
}

// Browse filters the owned cards.
func (e *Engine) Browse(f Filter) []card.Card {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Browse(e.state.Inventory, f)
}

// Teams lists the teams present in the collection.
func (e *Engine) Teams() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Teams(e.state.Inventory)
}

// Table returns the pack table in use.
func (e *Engine) Table() pack.Table {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.tbl
}

func (e *Engine) Catalog() *card.Catalog { return e.cat }

// SetTable swaps the pack table, e.g. after a config reload. The wallet and
// collection are kept.
func (e *Engine) SetTable(tbl pack.Table) error {
	if err := checkPools(tbl, e.cat); err != nil {
		return err
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.tbl = tbl
	return nil
}

// persist must be called with e.mu held.
func (e *Engine) persist(ctx context.Context) {
	if err := Save(ctx, e.store, e.state); err != nil {
		e.log.Printf("save state: %v", err)
	}
}

func (e *Engine) publish(ctx context.Context, res *Result) {
	ids := make([]string, len(res.Cards))
	for i, c := range res.Cards {
		ids[i] = c.Card.ID
	}
	ev := events.PackOpened{
		ID:          res.ID,
		Pack:        res.Pack,
		CardIDs:     ids,
		Duplicates:  res.Duplicates(),
		PackPrice:   res.PackPrice,
		GainedCoins: res.GainedCoins,
		Balance:     res.Balance,
		At:          time.Now().UTC(),
	}
	if err := e.pub.Publish(ctx, ev); err != nil {
		e.log.Printf("publish %s: %v", events.SubjectPackOpened, err)
	}
}
