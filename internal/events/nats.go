package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
)

const closeFlushTimeout = 2 * time.Second

// NATS publishes events as JSON on a NATS subject.
type NATS struct {
	nc      *nats.Conn
	subject string
}

// DialNATS connects to url; subject defaults to SubjectPackOpened.
func DialNATS(url, subject string) (*NATS, error) {
	nc, err := nats.Connect(url, nats.Name("cricket-packs"))
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}
	return NewNATS(nc, subject), nil
}

// NewNATS wraps an existing connection.
func NewNATS(nc *nats.Conn, subject string) *NATS {
	if subject == "" {
		subject = SubjectPackOpened
	}
	return &NATS{nc: nc, subject: subject}
}

func (n *NATS) Publish(ctx context.Context, ev PackOpened) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	return n.nc.Publish(n.subject, b)
}

// Close waits for pending messages to reach the server, then closes the
// connection. The connection is closed even if the flush times out.
func (n *NATS) Close() error {
	if n.nc == nil {
		return nil
	}
	defer n.nc.Close()
	if err := n.nc.FlushTimeout(closeFlushTimeout); err != nil {
		return fmt.Errorf("flush nats: %w", err)
	}
	return nil
}
