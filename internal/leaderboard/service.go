// Package leaderboard keeps a live per-session standing in Redis, fed by
// score events.
package leaderboard

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
	"github.com/selimdilsadercan/eslikci-sub001/internal/event"
)

const (
	publishInterval = 200 * time.Millisecond
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

	s.eb.Subscribe(domain.EventNameScoreUpdated, func(ctx context.Context, e event.Event) error {
		return s.UpdateLeaderboard(ctx, e.(domain.EventScoreUpdated))
	})

	return s
}

type GetLeaderboardRequest struct {
	SessionID string
}

// GetLeaderboard returns the session's standing, every participant with a
// recorded total, best first.
func (s *Service) GetLeaderboard(ctx context.Context, req GetLeaderboardRequest) (*domain.Leaderboard, error) {
	res, err := s.redis.ZRevRangeWithScores(ctx, s.leaderboardKey(req.SessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("get leaderboard: %w", err)
	}

	if len(res) == 0 {
		return nil, errors.NotFound("leaderboard not found: session=%s", req.SessionID)
	}

	entries := make([]domain.LeaderboardEntry, 0, len(res))
	for _, z := range res {
		entries = append(entries, domain.LeaderboardEntry{
			PlayerID: z.Member.(string),
			Score:    z.Score,
		})
	}

	return &domain.Leaderboard{
		SessionID: req.SessionID,
		Entries:   entries,
	}, nil
}

// UpdateLeaderboard overwrites every participant's total in the standing.
func (s *Service) UpdateLeaderboard(ctx context.Context, e domain.EventScoreUpdated) error {
	members := make([]redis.Z, 0, len(e.Totals))
	for _, t := range e.Totals {
		members = append(members, redis.Z{
			Score:  t.Total,
			Member: t.PlayerID,
		})
	}
	if len(members) == 0 {
		return nil
	}

	if err := s.redis.ZAdd(ctx, s.leaderboardKey(e.SessionID), members...).Err(); err != nil {
		return fmt.Errorf("update leaderboard: %w", err)
	}

	return s.schedulePublishLeaderboard(ctx, e)
}

// schedulePublishLeaderboard publishes standing changes after a short
// interval instead of immediately. Round submissions touch every
// participant at once, so batching cuts the number of published events.
func (s *Service) schedulePublishLeaderboard(ctx context.Context, e domain.EventScoreUpdated) error {
	// SetNX as a best-effort publish lock across instances.
	ok, err := s.redis.SetNX(ctx, s.timeKey(e.SessionID), e.UpdateTime.UnixMilli(), publishInterval).Result()
	if err != nil {
		return fmt.Errorf("setnx: %w", err)
	}

	if !ok {
		return nil
	}

	return s.publishLeaderboard(ctx, e)
}

func (s *Service) publishLeaderboard(ctx context.Context, e domain.EventScoreUpdated) error {
	l, err := s.GetLeaderboard(ctx, GetLeaderboardRequest{
		SessionID: e.SessionID,
	})
	if err != nil {
		return fmt.Errorf("get leaderboard failed: session=%s: %w", e.SessionID, err)
	}

	s.eb.Publish(ctx, domain.EventLeaderboardUpdated{
		Leaderboard: *l,
	})

	return s.redis.Set(ctx, s.timeKey(e.SessionID), e.UpdateTime.UnixMilli(), publishInterval).Err()
}

func (s *Service) leaderboardKey(sessionID string) string {
	return fmt.Sprintf("%s:%s:leaderboard", s.prefix, sessionID)
}

func (s *Service) timeKey(sessionID string) string {
	return fmt.Sprintf("%s:%s:time", s.prefix, sessionID)
}
