package events

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
)

func TestNATSWithoutConnection(t *testing.T) {
	n := NewNATS(nil, "")
	if n.subject != SubjectPackOpened {
		t.Fatalf("subject=%q", n.subject)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := n.Publish(ctx, PackOpened{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err=%v", err)
	}
	if err := n.Close(); err != nil {
		t.Fatal(err)
	}
}

// TestNATSPublish needs a live server, e.g. PACKS_TEST_NATS=nats://localhost:4222.
func TestNATSPublish(t *testing.T) {
	url := os.Getenv("PACKS_TEST_NATS")
	if url == "" {
		t.Skip("PACKS_TEST_NATS not set")
	}
	subject := "packs.test." + uuid.NewString()

	sub, err := nats.Connect(url)
	if err != nil {
		t.Fatal(err)
	}
	defer sub.Close()
	got := make(chan *nats.Msg, 4)
	s, err := sub.ChanSubscribe(subject, got)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Unsubscribe()
	if err := sub.Flush(); err != nil {
		t.Fatal(err)
	}

	pub, err := DialNATS(url, subject)
	if err != nil {
		t.Fatal(err)
	}
	want := PackOpened{
		ID:          uuid.New(),
		Pack:        "Gold",
		CardIDs:     []string{"a", "b", "c", "d", "e"},
		Duplicates:  2,
		PackPrice:   1500,
		GainedCoins: 130,
		Balance:     630,
		At:          time.Now().UTC().Truncate(time.Second),
	}
	if err := pub.Publish(context.Background(), want); err != nil {
		t.Fatal(err)
	}
	// Close flushes, so the server has the message once it returns.
	if err := pub.Close(); err != nil {
		t.Fatal(err)
	}

	select {
	case msg := <-got:
		var ev PackOpened
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			t.Fatal(err)
		}
		if ev.ID != want.ID || ev.Pack != "Gold" || ev.Balance != 630 || len(ev.CardIDs) != 5 || !ev.At.Equal(want.At) {
			t.Fatalf("got %+v", ev)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("no message received")
	}
}
