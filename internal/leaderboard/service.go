// Package leaderboard keeps a running tally of question wins per player.
package leaderboard

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/victornm/thinkfast/internal/domain"
	"github.com/victornm/thinkfast/internal/event"
)

type Config struct {
	EventBus *event.Bus
	Redis    redis.UniversalClient
	Prefix   string
}

type Service struct {
	eb     *event.Bus
	redis  redis.UniversalClient
	prefix string
}

func NewService(c Config) *Service {
	s := &Service{
		eb:     c.EventBus,
		redis:  c.Redis,
		prefix: c.Prefix,
	}

	s.eb.Subscribe(domain.EventNameQuestionResolved, func(ctx context.Context, e event.Event) error {
		return s.RecordWin(ctx, e.(domain.EventQuestionResolved))
	})

	return s
}

// RecordWin bumps the winner's tally by one.
func (s *Service) RecordWin(ctx context.Context, e domain.EventQuestionResolved) error {
	if err := s.redis.ZIncrBy(ctx, s.winsKey(), 1, e.Winner).Err(); err != nil {
		return fmt.Errorf("record win: %w", err)
	}

	return nil
}

type TopWinnersRequest struct {
	// Limit caps the number of entries returned; 0 means all.
	Limit int64
}

// TopWinners returns players ordered by wins descending. An empty tally
// yields an empty list, not an error.
func (s *Service) TopWinners(ctx context.Context, req TopWinnersRequest) ([]domain.WinnerEntry, error) {
	stop := int64(-1)
	if req.Limit > 0 {
		stop = req.Limit - 1
	}

	res, err := s.redis.ZRevRangeWithScores(ctx, s.winsKey(), 0, stop).Result()
	if err != nil {
		return nil, fmt.Errorf("top winners: %w", err)
	}

	entries := make([]domain.WinnerEntry, 0, len(res))
	for _, z := range res {
		entries = append(entries, domain.WinnerEntry{
			ClientID: z.Member.(string),
			Wins:     int64(z.Score),
		})
	}

	return entries, nil
}

func (s *Service) winsKey() string {
	return fmt.Sprintf("%s:wins", s.prefix)
}
