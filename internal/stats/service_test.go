package stats_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/stats"
)

func TestService_GroupStats(t *testing.T) {
	lapSession := func(gameID string, players []string, laps ...domain.Round) domain.PlaySession {
		return domain.PlaySession{
			GameID:  gameID,
			GroupID: "g1",
			Players: players,
			Laps:    laps,
		}
	}

	tests := map[string]struct {
		sessions []domain.PlaySession
		groupID  string
		want     *domain.GroupStats
	}{
		"group without sessions yields empty rankings": {
			sessions: nil,
			groupID:  "g1",
			want: &domain.GroupStats{
				MostPlayedGames: []domain.GamePlayCount{},
				WinnersByGame:   map[string][]domain.PlayerWinCount{},
			},
		},

		"unknown group yields empty rankings, not an error": {
			sessions: []domain.PlaySession{
				lapSession("catan", []string{"A"}, domain.Round{domain.Scalar(1)}),
			},
			groupID: "missing",
			want: &domain.GroupStats{
				MostPlayedGames: []domain.GamePlayCount{},
				WinnersByGame:   map[string][]domain.PlayerWinCount{},
			},
		},

		"games rank by play count, ties keep encounter order": {
			sessions: []domain.PlaySession{
				lapSession("catan", []string{"A"}, domain.Round{domain.Scalar(1)}),
				lapSession("uno", []string{"A", "B"}, domain.Round{domain.Scalar(1), domain.Scalar(2)}),
				lapSession("uno", []string{"A", "B"}, domain.Round{domain.Scalar(5), domain.Scalar(2)}),
				lapSession("chess", []string{"B"}, domain.Round{domain.Scalar(1)}),
			},
			groupID: "g1",
			want: &domain.GroupStats{
				MostPlayedGames: []domain.GamePlayCount{
					{GameID: "uno", Count: 2},
					{GameID: "catan", Count: 1},
					{GameID: "chess", Count: 1},
				},
				WinnersByGame: map[string][]domain.PlayerWinCount{
					"catan": {{PlayerID: "A", Wins: 1}},
					"uno":   {{PlayerID: "B", Wins: 1}, {PlayerID: "A", Wins: 1}},
					"chess": {{PlayerID: "B", Wins: 1}},
				},
			},
		},

		"a tied session increments every tied participant": {
			sessions: []domain.PlaySession{
				lapSession("uno", []string{"A", "B"}, domain.Round{domain.Scalar(3), domain.Scalar(3)}),
				lapSession("uno", []string{"A", "B"}, domain.Round{domain.Scalar(5), domain.Scalar(1)}),
			},
			groupID: "g1",
			want: &domain.GroupStats{
				MostPlayedGames: []domain.GamePlayCount{
					{GameID: "uno", Count: 2},
				},
				WinnersByGame: map[string][]domain.PlayerWinCount{
					"uno": {{PlayerID: "A", Wins: 2}, {PlayerID: "B", Wins: 1}},
				},
			},
		},

		"special points sessions resolve through the same winner rules": {
			sessions: []domain.PlaySession{
				{
					GameID:  "munchkin",
					GroupID: "g1",
					Players: []string{"A", "B"},
					SpecialPoints: map[string]domain.SpecialPoints{
						"A": {Level: f(3), Bonus: f(1)},
						"B": {Level: f(4)},
					},
				},
			},
			groupID: "g1",
			want: &domain.GroupStats{
				MostPlayedGames: []domain.GamePlayCount{
					{GameID: "munchkin", Count: 1},
				},
				WinnersByGame: map[string][]domain.PlayerWinCount{
					"munchkin": {{PlayerID: "A", Wins: 1}, {PlayerID: "B", Wins: 1}},
				},
			},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := stats.NewService(stats.Config{
				Store: &fakeStore{sessions: tt.sessions},
			})

			got, err := s.GroupStats(context.Background(), stats.GroupStatsRequest{GroupID: tt.groupID})
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

type fakeStore struct {
	sessions []domain.PlaySession
}

func (f *fakeStore) ListPlaySessionsByGroup(_ context.Context, groupID string) ([]domain.PlaySession, error) {
	out := []domain.PlaySession{}
	for _, s := range f.sessions {
		if s.GroupID == groupID {
			out = append(out, s)
		}
	}
	return out, nil
}

func f(v float64) *float64 {
	return &v
}
