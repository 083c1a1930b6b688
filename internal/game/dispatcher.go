package game

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/victornm/thinkfast/internal/domain"
)

// Dispatcher delivers outcome and question frames to registered connections.
// Sends only enqueue onto per-connection outbound queues, so a slow reader
// never stalls the fan-out; a connection whose queue is full gets closed
// instead.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(r *Registry) *Dispatcher {
	return &Dispatcher{registry: r}
}

// Unicast delivers msg to id if it is currently registered. A vanished
// connection is silently dropped; disconnect races are expected here.
func (d *Dispatcher) Unicast(ctx context.Context, msg any, id string) {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "dispatch: marshal unicast", "error", err)
		return
	}

	s, ok := d.registry.Get(id)
	if !ok {
		return
	}
	d.deliver(ctx, s, payload)
}

// Broadcast delivers msg to every registered connection not in excluded,
// over a point-in-time snapshot of the membership.
func (d *Dispatcher) Broadcast(ctx context.Context, msg any, excluded ...string) {
	payload, err := json.Marshal(msg)
	if err != nil {
		slog.ErrorContext(ctx, "dispatch: marshal broadcast", "error", err)
		return
	}

	for _, s := range d.registry.Snapshot(excluded...) {
		d.deliver(ctx, s, payload)
	}
}

func (d *Dispatcher) deliver(ctx context.Context, s Sender, payload []byte) {
	if !s.Send(payload) {
		slog.WarnContext(ctx, "dispatch: outbound queue full, closing connection")
		s.Close()
	}
}

// announceOutcome sends correct_answer to the winner and too_late to everyone
// else. The two sends run concurrently but both are issued before the method
// returns, so per recipient the outcome always precedes the next question.
func (d *Dispatcher) announceOutcome(ctx context.Context, winner string) {
	var eg errgroup.Group

	eg.Go(func() error {
		d.Unicast(ctx, Message{MessageType: MessageTypeCorrectAnswer}, winner)
		return nil
	})
	eg.Go(func() error {
		d.Broadcast(ctx, Message{MessageType: MessageTypeTooLate}, winner)
		return nil
	})

	_ = eg.Wait()
}

// announceQuestion sends the next question to every connection, including the
// winner and any player that joined mid-resolution.
func (d *Dispatcher) announceQuestion(ctx context.Context, q domain.Question) {
	d.Broadcast(ctx, newQuestionMessage(q))
}
