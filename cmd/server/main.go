package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"google.golang.org/grpc"

	"github.com/xtding233/cricket-packs/internal/api"
	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/config"
	"github.com/xtding233/cricket-packs/internal/economy"
	"github.com/xtding233/cricket-packs/internal/events"
	"github.com/xtding233/cricket-packs/internal/gacha"
	"github.com/xtding233/cricket-packs/internal/rpc"
	"github.com/xtding233/cricket-packs/internal/store"
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Printf("load .env: %v", err)
	}
	env, err := config.FromEnv()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, env); err != nil {
		stop()
		log.Fatal(err)
	}
}

// run serves until ctx is done or a listener fails. Either way it shuts the
// servers down and closes the store and the event publisher before returning.
func run(ctx context.Context, env config.Env) error {
	loader := config.NewLoader(env.ConfigPath)
	tbl, err := loader.Load()
	if err != nil {
		return fmt.Errorf("pack table: %w", err)
	}

	var cat *card.Catalog
	if env.CatalogPath != "" {
		cat, err = card.LoadCatalog(env.CatalogPath)
	} else {
		cat, err = card.DefaultCatalog()
	}
	if err != nil {
		return fmt.Errorf("catalog: %w", err)
	}

	st, err := store.Open(ctx, env.StoreURL)
	if err != nil {
		return fmt.Errorf("store: %w", err)
	}
	defer st.Close()

	var pub events.Publisher = events.Nop{}
	if env.NATSURL != "" {
		n, err := events.DialNATS(env.NATSURL, "")
		if err != nil {
			log.Printf("events disabled: %v", err)
		} else {
			pub = n
		}
	}
	defer pub.Close()

	rng := gacha.DefaultRNG()
	if env.Seed != nil {
		rng = gacha.NewSeededRNG(*env.Seed)
	}

	engine, err := economy.NewEngine(ctx, economy.Options{
		Table:     tbl,
		Catalog:   cat,
		RNG:       rng,
		Store:     st,
		Publisher: pub,
		Logger:    log.Default(),
	})
	if err != nil {
		return err
	}
	log.Printf("loaded %d cards, packs %v, balance %d", cat.Len(), tbl.Names(), engine.Snapshot().Coins)

	if env.ConfigPath != "" {
		w := config.NewFileWatcher([]string{env.ConfigPath}, 2*time.Second, func(path string) {
			loader.Invalidate()
			next, err := loader.Load()
			if err != nil {
				log.Printf("reload %s: %v (keeping current table)", path, err)
				return
			}
			if err := engine.SetTable(next); err != nil {
				log.Printf("reload %s: %v (keeping current table)", path, err)
				return
			}
			log.Printf("reloaded pack table from %s", path)
		})
		go w.Run(ctx)
	}

	httpLis, err := net.Listen("tcp", env.HTTPAddr)
	if err != nil {
		return fmt.Errorf("http listen: %w", err)
	}
	var grpcLis net.Listener
	if env.GRPCAddr != "" {
		if grpcLis, err = net.Listen("tcp", env.GRPCAddr); err != nil {
			httpLis.Close()
			return fmt.Errorf("grpc listen: %w", err)
		}
	}

	serveErr := make(chan error, 2)
	httpSrv := &http.Server{
		Handler:           api.NewRouter(engine),
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		log.Printf("http listening on %s ...", httpLis.Addr())
		if err := httpSrv.Serve(httpLis); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- fmt.Errorf("http: %w", err)
		}
	}()

	var grpcSrv *grpc.Server
	if grpcLis != nil {
		grpcSrv = grpc.NewServer()
		rpc.Register(grpcSrv, engine)
		go func() {
			log.Printf("grpc listening on %s ...", grpcLis.Addr())
			if err := grpcSrv.Serve(grpcLis); err != nil {
				serveErr <- fmt.Errorf("grpc: %w", err)
			}
		}()
	}

	var failed error
	select {
	case <-ctx.Done():
	case failed = <-serveErr:
	}
	log.Println("shutting down ...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if grpcSrv != nil {
		grpcSrv.GracefulStop()
	}
	return failed
}
