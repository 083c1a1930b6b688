package game

import (
	"sync"

	"github.com/google/uuid"

	"github.com/victornm/thinkfast/internal/domain"
)

// Round holds the single shared record of which question is currently active.
// A round is one full pass through the catalog; a fresh round id is generated
// every time the cursor wraps back to the first question. All access is
// serialized behind one mutex so concurrent readers and advancers never
// observe a torn (round id, cursor) pair.
type Round struct {
	mu      sync.Mutex
	catalog []domain.Question
	cursor  int
	roundID string
}

// Snapshot is an atomic read of the round state.
type Snapshot struct {
	RoundID  string
	Question domain.Question
}

func NewRound(catalog []domain.Question) *Round {
	return &Round{
		catalog: catalog,
		roundID: uuid.NewString(),
	}
}

// Current returns the active question and round id. Pure read.
func (r *Round) Current() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	return Snapshot{
		RoundID:  r.roundID,
		Question: r.catalog[r.cursor],
	}
}

// RoundID returns the identifier of the round in progress.
func (r *Round) RoundID() string {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.roundID
}

// Advance moves to the next question, wrapping modulo the catalog size.
// On wrap a new round id is generated and roundChanged is true. Two
// concurrent Advance calls never both see the same pre-advance cursor.
func (r *Round) Advance() (next Snapshot, roundChanged bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.cursor = (r.cursor + 1) % len(r.catalog)
	if r.cursor == 0 {
		r.roundID = uuid.NewString()
		roundChanged = true
	}

	return Snapshot{
		RoundID:  r.roundID,
		Question: r.catalog[r.cursor],
	}, roundChanged
}
