package events

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SubjectPackOpened is the subject pack openings are published on.
const SubjectPackOpened = "packs.opened"

// PackOpened is emitted after a pack opening has been committed.
type PackOpened struct {
	ID          uuid.UUID `json:"id"`
	Pack        string    `json:"pack"`
	CardIDs     []string  `json:"card_ids"`
	Duplicates  int       `json:"duplicates"`
	PackPrice   int       `json:"pack_price"`
	GainedCoins int       `json:"gained_coins"`
	Balance     int       `json:"balance"`
	At          time.Time `json:"at"`
}

// Publisher receives committed pack openings. Publishing never affects the
// economy; callers log failures and carry on.
type Publisher interface {
	Publish(ctx context.Context, ev PackOpened) error
	Close() error
}

// Nop discards every event.
type Nop struct{}

func (Nop) Publish(context.Context, PackOpened) error { return nil }
func (Nop) Close() error                              { return nil }
