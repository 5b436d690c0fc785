package rpc

import (
	"context"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/xtding233/cricket-packs/internal/card"
	"github.com/xtding233/cricket-packs/internal/economy"
	"github.com/xtding233/cricket-packs/internal/gacha"
	"github.com/xtding233/cricket-packs/internal/pack"
	"github.com/xtding233/cricket-packs/internal/store"
)

func dial(t *testing.T, coins string) *Client {
	t.Helper()
	cat, err := card.DefaultCatalog()
	if err != nil {
		t.Fatal(err)
	}
	mem := store.NewMemory()
	if coins != "" {
		mem.Set(context.Background(), economy.KeyCoins, coins)
	}
	eng, err := economy.NewEngine(context.Background(), economy.Options{
		Table:   pack.Default(),
		Catalog: cat,
		RNG:     gacha.NewSeededRNG(5),
		Store:   mem,
	})
	if err != nil {
		t.Fatal(err)
	}

	lis := bufconn.Listen(1 << 20)
	srv := grpc.NewServer()
	Register(srv, eng)
	go srv.Serve(lis)
	t.Cleanup(srv.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { conn.Close() })
	return NewClient(conn)
}

func TestOpenPackOverGRPC(t *testing.T) {
	ctx := context.Background()
	c := dial(t, "")

	out, err := c.OpenPack(ctx, "Gold")
	if err != nil {
		t.Fatal(err)
	}
	m := out.AsMap()
	res := m["result"].(map[string]any)
	if res["pack"] != "Gold" || len(res["cards"].([]any)) != 5 {
		t.Fatalf("result=%v", res)
	}
	gained := res["gained_coins"].(float64)
	if m["balance"].(float64) != 500+gained {
		t.Fatalf("balance=%v gained=%v", m["balance"], gained)
	}

	w, err := c.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if w.AsMap()["coins"] != m["balance"] {
		t.Fatalf("wallet=%v", w.AsMap())
	}

	b, err := c.Browse(ctx, map[string]any{"tier": "All"})
	if err != nil {
		t.Fatal(err)
	}
	if cards := b.AsMap()["cards"].([]any); len(cards) == 0 || len(cards) > 5 {
		t.Fatalf("browse returned %d cards", len(cards))
	}

	r, err := c.Reset(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if got := r.AsMap(); got["coins"].(float64) != 2000 || got["unique"].(float64) != 0 {
		t.Fatalf("reset=%v", got)
	}
}

func TestOpenPackErrorCodes(t *testing.T) {
	ctx := context.Background()
	c := dial(t, "10")

	cases := []struct {
		pack string
		code codes.Code
	}{
		{"", codes.InvalidArgument},
		{"Bronze", codes.FailedPrecondition},
		{"Diamond", codes.NotFound},
	}
	for _, tc := range cases {
		_, err := c.OpenPack(ctx, tc.pack)
		if got := status.Code(err); got != tc.code {
			t.Fatalf("pack %q: code=%v err=%v", tc.pack, got, err)
		}
	}

	w, err := c.Wallet(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if w.AsMap()["coins"].(float64) != 10 {
		t.Fatalf("wallet changed: %v", w.AsMap())
	}
}
