// Package stats aggregates a group's play history: games ranked by play
// count and participants ranked by wins per game.
package stats

import (
	"context"
	"sort"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/scoring"
)

// Store is the read surface the aggregator needs. The group filter is
// applied by the query; results are identical to filtering in memory.
type Store interface {
	ListPlaySessionsByGroup(ctx context.Context, groupID string) ([]domain.PlaySession, error)
}

type Config struct {
	Store Store
}

type Service struct {
	store Store
}

func NewService(c Config) *Service {
	return &Service{store: c.Store}
}

type GroupStatsRequest struct {
	GroupID string
}

// GroupStats tallies play counts per game and, per game, win counts per
// participant. Both rankings sort descending and keep encounter order for
// ties. An unknown group yields empty results, not an error.
func (s *Service) GroupStats(ctx context.Context, req GroupStatsRequest) (*domain.GroupStats, error) {
	sessions, err := s.store.ListPlaySessionsByGroup(ctx, req.GroupID)
	if err != nil {
		return nil, err
	}

	playCounts := make(map[string]int, len(sessions))
	gameOrder := make([]string, 0, len(sessions))
	for _, ps := range sessions {
		if _, ok := playCounts[ps.GameID]; !ok {
			gameOrder = append(gameOrder, ps.GameID)
		}
		playCounts[ps.GameID]++
	}

	sort.SliceStable(gameOrder, func(i, j int) bool {
		return playCounts[gameOrder[i]] > playCounts[gameOrder[j]]
	})

	out := &domain.GroupStats{
		MostPlayedGames: make([]domain.GamePlayCount, 0, len(gameOrder)),
		WinnersByGame:   make(map[string][]domain.PlayerWinCount, len(gameOrder)),
	}

	for _, gameID := range gameOrder {
		out.MostPlayedGames = append(out.MostPlayedGames, domain.GamePlayCount{
			GameID: gameID,
			Count:  playCounts[gameID],
		})
		out.WinnersByGame[gameID] = winsPerPlayer(sessions, gameID)
	}

	return out, nil
}

// winsPerPlayer tallies winner sets across the game's sessions. A tie
// increments every tied participant.
func winsPerPlayer(sessions []domain.PlaySession, gameID string) []domain.PlayerWinCount {
	wins := make(map[string]int)
	playerOrder := []string{}

	for _, ps := range sessions {
		if ps.GameID != gameID {
			continue
		}
		for _, playerID := range scoring.Winners(ps) {
			if _, ok := wins[playerID]; !ok {
				playerOrder = append(playerOrder, playerID)
			}
			wins[playerID]++
		}
	}

	sort.SliceStable(playerOrder, func(i, j int) bool {
		return wins[playerOrder[i]] > wins[playerOrder[j]]
	})

	out := make([]domain.PlayerWinCount, 0, len(playerOrder))
	for _, playerID := range playerOrder {
		out = append(out, domain.PlayerWinCount{PlayerID: playerID, Wins: wins[playerID]})
	}
	return out
}
