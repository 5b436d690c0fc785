package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/config"
	"github.com/xtding233/cricket-packs/internal/economy"
	"github.com/xtding233/cricket-packs/internal/gacha"
	"github.com/xtding233/cricket-packs/internal/store"
)

const usage = `usage: packs [-store URL] [-config FILE] [-catalog FILE] [-seed N] <command>

commands:
  packs                       list packs and odds
  open <pack>                 buy and open a pack
  wallet                      show balance and collection size
  collection [-q -tier -role -team]
                              browse owned cards
  teams                       list teams in the collection
  mute on|off                 toggle sound preference
  reset                       restore the starting balance and clear the collection
  sim <pack> [-trials N]      simulate many openings of a pack
`

var tierColor = map[card.Tier]*color.Color{
	card.Common: color.New(color.FgWhite),
	card.Rare:   color.New(color.FgCyan),
	card.Epic:   color.New(color.FgMagenta, color.Bold),
	card.Legend: color.New(color.FgYellow, color.Bold),
}

type app struct {
	out    io.Writer
	engine *economy.Engine
	seed   *uint64
}

func defaultStore() string {
	if v := os.Getenv("PACKS_STORE"); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "file:cricket-packs.json"
	}
	return "file:" + filepath.Join(home, ".cricket-packs", "state.json")
}

func run(args []string, out io.Writer) error {
	fsg := flag.NewFlagSet("packs", flag.ContinueOnError)
	fsg.SetOutput(out)
	fsg.Usage = func() { fmt.Fprint(out, usage) }
	storeURL := fsg.String("store", defaultStore(), "state store URL")
	cfgPath := fsg.String("config", os.Getenv("PACKS_CONFIG"), "pack table YAML overrides")
	catPath := fsg.String("catalog", os.Getenv("PACKS_CATALOG"), "card catalog file")
	seed := fsg.Int64("seed", -1, "fixed RNG seed (>= 0)")
	if err := fsg.Parse(args); err != nil {
		return err
	}
	rest := fsg.Args()
	if len(rest) == 0 {
		fsg.Usage()
		return errors.New("missing command")
	}

	ctx := context.Background()
	tbl, err := config.NewLoader(*cfgPath).Load()
	if err != nil {
		return err
	}
	var cat *card.Catalog
	if *catPath != "" {
		cat, err = card.LoadCatalog(*catPath)
	} else {
		cat, err = card.DefaultCatalog()
	}
	if err != nil {
		return err
	}
	st, err := store.Open(ctx, *storeURL)
	if err != nil {
		return err
	}
	defer st.Close()

	a := &app{out: out}
	rng := gacha.DefaultRNG()
	if *seed >= 0 {
		s := uint64(*seed)
		a.seed = &s
		rng = gacha.NewSeededRNG(s)
	}
	a.engine, err = economy.NewEngine(ctx, economy.Options{
		Table:   tbl,
		Catalog: cat,
		RNG:     rng,
		Store:   st,
		Logger:  log.New(io.Discard, "", 0),
	})
	if err != nil {
		return err
	}

	cmd, cmdArgs := rest[0], rest[1:]
	switch cmd {
	case "packs":
		return a.packs()
	case "open":
		return a.open(ctx, cmdArgs)
	case "wallet":
		return a.wallet()
	case "collection":
		return a.collection(cmdArgs)
	case "teams":
		for _, t := range a.engine.Teams() {
			fmt.Fprintln(out, t)
		}
		return nil
	case "mute":
		return a.mute(ctx, cmdArgs)
	case "reset":
		fresh := a.engine.Reset(ctx)
		fmt.Fprintf(out, "Reset: %d coins, empty collection\n", fresh.Coins)
		return nil
	case "sim":
		return a.sim(cmdArgs, cat)
	default:
		fsg.Usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func (a *app) packs() error {
	for _, d := range a.engine.Table().Packs {
		fmt.Fprintf(a.out, "%-8s %5d coins ", d.Name, d.Price)
		for _, t := range card.Tiers {
			tierColor[t].Fprintf(a.out, " %s %.1f%%", t, d.Chance(t)*100)
		}
		fmt.Fprintln(a.out)
	}
	return nil
}

func (a *app) open(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: packs open <pack>")
	}
	res, err := a.engine.Open(ctx, args[0])
	if errors.Is(err, economy.ErrInsufficientFunds) {
		color.New(color.FgYellow).Fprintln(a.out, "Not enough coins")
		return nil
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s pack (-%d coins)\n", res.Pack, res.PackPrice)
	for _, oc := range res.Cards {
		c := oc.Card
		line := fmt.Sprintf("  %-7s %-5s %-24s %-18s %3d", c.Tier, c.Role, c.Name, c.Team, c.Rating)
		if oc.IsDuplicate {
			line += fmt.Sprintf("  duplicate +%d", a.engine.Table().Refund(c.Tier))
		}
		tierColor[c.Tier].Fprintln(a.out, line)
	}
	fmt.Fprintf(a.out, "%d duplicates converted for +%d coins\n", res.Duplicates(), res.GainedCoins)
	fmt.Fprintf(a.out, "Balance: %d\n", a.engine.Snapshot().Coins)
	return nil
}

func (a *app) wallet() error {
	st := a.engine.Snapshot()
	copies := 0
	for _, n := range st.Counts {
		copies += n
	}
	fmt.Fprintf(a.out, "Coins: %d\nCards: %d unique, %d copies\nMuted: %v\n", st.Coins, st.Unique(), copies, st.Muted)
	return nil
}

func (a *app) collection(args []string) error {
	fs := flag.NewFlagSet("collection", flag.ContinueOnError)
	fs.SetOutput(a.out)
	var f economy.Filter
	fs.StringVar(&f.Query, "q", "", "search name, team, role, tier, rating")
	fs.StringVar(&f.Tier, "tier", economy.All, "tier filter")
	fs.StringVar(&f.Role, "role", economy.All, "role filter")
	fs.StringVar(&f.Team, "team", economy.All, "team filter")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cards := a.engine.Browse(f)
	if len(cards) == 0 {
		fmt.Fprintln(a.out, "No cards yet. Open some packs!")
		return nil
	}
	st := a.engine.Snapshot()
	for _, c := range cards {
		tierColor[c.Tier].Fprintf(a.out, "%-7s %-5s %-24s %-18s %3d  x%d\n",
			c.Tier, c.Role, c.Name, c.Team, c.Rating, st.Counts[c.ID])
	}
	return nil
}

func (a *app) mute(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return errors.New("usage: packs mute on|off")
	}
	switch strings.ToLower(args[0]) {
	case "on", "true", "1":
		a.engine.SetMuted(ctx, true)
	case "off", "false", "0":
		a.engine.SetMuted(ctx, false)
	default:
		return fmt.Errorf("mute: expected on or off, got %q", args[0])
	}
	fmt.Fprintf(a.out, "Muted: %v\n", a.engine.Snapshot().Muted)
	return nil
}

func (a *app) sim(args []string, cat *card.Catalog) error {
	fs := flag.NewFlagSet("sim", flag.ContinueOnError)
	fs.SetOutput(a.out)
	trials := fs.Int("trials", 10000, "number of packs / runs")
	if len(args) == 0 {
		return errors.New("usage: packs sim <pack> [-trials N]")
	}
	name := args[0]
	if err := fs.Parse(args[1:]); err != nil {
		return err
	}
	tbl := a.engine.Table()
	def, err := tbl.Get(name)
	if err != nil {
		return err
	}
	rng := gacha.DefaultRNG()
	if a.seed != nil {
		rng = gacha.NewSeededRNG(*a.seed)
	}
	rep, err := economy.Simulate(def, tbl, cat, *trials, rng)
	if err != nil {
		return err
	}
	total := 0
	for _, n := range rep.TierCounts {
		total += n
	}
	fmt.Fprintf(a.out, "%s pack, %d trials\n", rep.Pack, rep.Trials)
	for _, t := range card.Tiers {
		got := 0.0
		if total > 0 {
			got = float64(rep.TierCounts[t]) / float64(total) * 100
		}
		tierColor[t].Fprintf(a.out, "  %-7s %6.2f%% (odds %.2f%%)\n", t, got, def.Chance(t)*100)
	}
	fmt.Fprintf(a.out, "Refund per pack: mean %.1f, p50 %.0f, p90 %.0f (cap %.1f)\n",
		rep.Refund.Mean, rep.Refund.P50, rep.Refund.P90, rep.ExpectedRefundCap)
	if rep.FirstLegend.Mean > 0 {
		fmt.Fprintf(a.out, "Packs to first Legend: mean %.1f, p50 %.0f, p90 %.0f, p99 %.0f\n",
			rep.FirstLegend.Mean, rep.FirstLegend.P50, rep.FirstLegend.P90, rep.FirstLegend.P99)
	}
	return nil
}
