package game_test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/victornm/thinkfast/internal/errors"
	"github.com/victornm/thinkfast/internal/game"
)

// fakeSender records every frame enqueued for one client.
type fakeSender struct {
	mu     sync.Mutex
	frames [][]byte
	closed bool
	full   bool
}

func (f *fakeSender) Send(payload []byte) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.full {
		return false
	}

	p := make([]byte, len(payload))
	copy(p, payload)
	f.frames = append(f.frames, p)
	return true
}

func (f *fakeSender) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeSender) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// messageTypes decodes the message_type of every recorded frame, in order.
func (f *fakeSender) messageTypes() []game.MessageType {
	f.mu.Lock()
	defer f.mu.Unlock()

	types := make([]game.MessageType, 0, len(f.frames))
	for _, frame := range f.frames {
		var m game.Message
		if err := json.Unmarshal(frame, &m); err != nil {
			types = append(types, "unparsable")
			continue
		}
		types = append(types, m.MessageType)
	}
	return types
}

// questionIDs decodes the question_id of every new_question frame, in order.
func (f *fakeSender) questionIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()

	var ids []string
	for _, frame := range f.frames {
		var q game.QuestionMessage
		if err := json.Unmarshal(frame, &q); err != nil {
			continue
		}
		if q.MessageType == game.MessageTypeNewQuestion {
			ids = append(ids, q.QuestionID)
		}
	}
	return ids
}

// fakeClaimer arbitrates claims in memory with the same at-most-one-per-
// (round, question) semantics the durable store provides.
type fakeClaimer struct {
	mu      sync.Mutex
	claimed map[string]string
	err     error
}

func newFakeClaimer() *fakeClaimer {
	return &fakeClaimer{claimed: make(map[string]string)}
}

func (f *fakeClaimer) Claim(_ context.Context, roundID, questionID, clientID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}

	key := roundID + "|" + questionID
	if _, ok := f.claimed[key]; ok {
		return errors.New(errors.CodeAlreadyExists,
			errors.WithMessagef("credit already claimed: round=%s question=%s", roundID, questionID))
	}

	f.claimed[key] = clientID
	return nil
}

func (f *fakeClaimer) winner(roundID, questionID string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	w, ok := f.claimed[roundID+"|"+questionID]
	return w, ok
}

func (f *fakeClaimer) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}
