package game

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/victornm/thinkfast/internal/domain"
	"github.com/victornm/thinkfast/internal/errors"
	"github.com/victornm/thinkfast/internal/event"
)

// Outcome classifies a resolved answer submission.
type Outcome string

const (
	OutcomeCorrect        Outcome = Outcome(MessageTypeCorrectAnswer)
	OutcomeWrongAnswer    Outcome = Outcome(MessageTypeWrongAnswer)
	OutcomeTooLate        Outcome = Outcome(MessageTypeTooLate)
	OutcomeInvalidMessage Outcome = Outcome(MessageTypeInvalidMessage)
)

// Claimer is the durable arbitration contract the resolver depends on.
// Claim must succeed for at most one caller per (round, question), reporting
// errors.CodeAlreadyExists to everyone who lost the race.
type Claimer interface {
	Claim(ctx context.Context, roundID, questionID, clientID string) error
}

type ResolverConfig struct {
	Round      *Round
	Claims     Claimer
	Dispatcher *Dispatcher
	EventBus   *event.Bus
}

// Resolver validates inbound answers against the round state and arbitrates
// which of several concurrent correct answers wins.
//
// Who answered first is decided by the claim store's uniqueness constraint,
// not by arrival order at this process: scheduling and network jitter make
// arrival order an untrustworthy proxy once submissions race.
type Resolver struct {
	round    *Round
	claims   Claimer
	dispatch *Dispatcher
	eb       *event.Bus

	// winMu serializes the winning path so the outcome fan-out, the round
	// advance and the next-question fan-out of one resolution never
	// interleave with another resolution's.
	winMu sync.Mutex
}

func NewResolver(c ResolverConfig) *Resolver {
	return &Resolver{
		round:    c.Round,
		claims:   c.Claims,
		dispatch: c.Dispatcher,
		eb:       c.EventBus,
	}
}

// Resolve classifies one answer submission, delivers the outcome to the
// submitter and, on the winning path, advances the round and fans the next
// question out to everyone. Per-submission failures never escape; the
// returned outcome is what the submitter was told.
func (r *Resolver) Resolve(ctx context.Context, clientID string, sub Submission) Outcome {
	cur := r.round.Current()

	// A stale question id also absorbs duplicate late submissions for a
	// question that already resolved, since the round has moved on.
	if sub.QuestionID != cur.Question.QuestionID {
		r.dispatch.Unicast(ctx, Message{MessageType: MessageTypeInvalidMessage}, clientID)
		return OutcomeInvalidMessage
	}

	if sub.Answer != cur.Question.Answer {
		r.dispatch.Unicast(ctx, Message{MessageType: MessageTypeWrongAnswer}, clientID)
		return OutcomeWrongAnswer
	}

	// No in-process lock is held across the claim I/O.
	err := r.claims.Claim(ctx, cur.RoundID, sub.QuestionID, clientID)
	switch {
	case err == nil:
		// Authoritative winner.
	case errors.Is(err, errors.CodeAlreadyExists):
		r.dispatch.Unicast(ctx, Message{MessageType: MessageTypeTooLate}, clientID)
		return OutcomeTooLate
	default:
		// Never grant credit on an uncertain write. The round stays put;
		// another correct submission will retry the claim.
		slog.ErrorContext(ctx, "resolve: claim failed",
			"round_id", cur.RoundID,
			"question_id", sub.QuestionID,
			"client_id", clientID,
			"error", err,
		)
		r.dispatch.Unicast(ctx, Message{MessageType: MessageTypeTooLate}, clientID)
		return OutcomeTooLate
	}

	r.winMu.Lock()
	r.dispatch.announceOutcome(ctx, clientID)
	next, _ := r.round.Advance()
	r.dispatch.announceQuestion(ctx, next.Question)
	r.winMu.Unlock()

	r.eb.Publish(ctx, domain.EventQuestionResolved{
		RoundID:     cur.RoundID,
		QuestionID:  sub.QuestionID,
		Winner:      clientID,
		ResolveTime: time.Now(),
	})

	return OutcomeCorrect
}
