package scoring_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/scoring"
)

func TestWinners(t *testing.T) {
	tests := map[string]struct {
		session domain.PlaySession
		want    []string
	}{
		"lap totals pick the highest column sum": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				Laps: []domain.Round{
					{domain.Scalar(3), domain.Scalar(5)},
					{domain.Scalar(2), domain.Scalar(1)},
				},
			},
			want: []string{"B"},
		},

		"equal lap totals tie": {
			session: domain.PlaySession{
				Players: []string{"A", "B", "C"},
				Laps: []domain.Round{
					{domain.Scalar(4), domain.Scalar(1), domain.Scalar(4)},
					{domain.Scalar(2), domain.Scalar(5), domain.Scalar(2)},
				},
			},
			want: []string{"A", "B", "C"},
		},

		"single scored participant trivially wins": {
			session: domain.PlaySession{
				Players: []string{"A"},
				Laps:    []domain.Round{{domain.Scalar(0)}},
			},
			want: []string{"A"},
		},

		"composite cells contribute zero": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				Laps: []domain.Round{
					{domain.Composite(10, 10), domain.Scalar(1)},
				},
			},
			want: []string{"B"},
		},

		"ragged rounds skip missing cells": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				Laps: []domain.Round{
					{domain.Scalar(2)},
					{domain.Scalar(1), domain.Scalar(4)},
				},
			},
			want: []string{"B"},
		},

		"empty laps and no special points yield no winners": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				Laps:    []domain.Round{},
			},
			want: []string{},
		},

		"special points rank by level plus bonus": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				SpecialPoints: map[string]domain.SpecialPoints{
					"A": {Level: f(3), Bonus: f(1)},
					"B": {Level: f(4)},
				},
			},
			want: []string{"A", "B"},
		},

		"team mode sessions score through special points": {
			session: domain.PlaySession{
				RedTeam:  []string{"A"},
				BlueTeam: []string{"B"},
				SpecialPoints: map[string]domain.SpecialPoints{
					"A": {Level: f(3)},
					"B": {Level: f(5)},
				},
			},
			want: []string{"B"},
		},

		"off-roster special entries still count": {
			session: domain.PlaySession{
				Players: []string{"A"},
				SpecialPoints: map[string]domain.SpecialPoints{
					"A": {Level: f(1)},
					"B": {Level: f(9)},
				},
			},
			want: []string{"B"},
		},

		"special points override a conflicting lap winner": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				Laps: []domain.Round{
					{domain.Scalar(0), domain.Scalar(100)},
				},
				SpecialPoints: map[string]domain.SpecialPoints{
					"A": {Level: f(2)},
					"B": {Level: f(1)},
				},
			},
			want: []string{"A"},
		},

		"malformed special entries are skipped, not deferred to laps": {
			session: domain.PlaySession{
				Players: []string{"A", "B"},
				Laps: []domain.Round{
					{domain.Scalar(1), domain.Scalar(2)},
				},
				SpecialPoints: map[string]domain.SpecialPoints{
					"A": {},
					"B": {},
				},
			},
			want: []string{},
		},

		"no usable source at all": {
			session: domain.PlaySession{},
			want:    []string{},
		},
	}

	for name, tt := range tests {
		tt := tt
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got := scoring.Winners(tt.session)
			assert.Equal(t, tt.want, got)

			// Pure function: a second resolution of the same record agrees.
			assert.Equal(t, got, scoring.Winners(tt.session))
		})
	}
}

func TestTotals(t *testing.T) {
	t.Run("lap totals in seating order", func(t *testing.T) {
		s := domain.PlaySession{
			Players: []string{"A", "B"},
			Laps: []domain.Round{
				{domain.Scalar(3), domain.Scalar(5)},
				{domain.Scalar(2), domain.Scalar(1)},
			},
		}

		got := scoring.Totals(s)
		require.Equal(t, []domain.ScoreTotal{
			{PlayerID: "A", Total: 5},
			{PlayerID: "B", Total: 6},
		}, got)
	})

	t.Run("team mode totals cover both teams", func(t *testing.T) {
		s := domain.PlaySession{
			RedTeam:  []string{"A"},
			BlueTeam: []string{"B"},
			SpecialPoints: map[string]domain.SpecialPoints{
				"A": {Level: f(3)},
				"B": {Level: f(5)},
			},
		}

		got := scoring.Totals(s)
		require.Equal(t, []domain.ScoreTotal{
			{PlayerID: "A", Total: 3},
			{PlayerID: "B", Total: 5},
		}, got)
	})

	t.Run("special points cover every participant", func(t *testing.T) {
		s := domain.PlaySession{
			Players: []string{"A", "B", "C"},
			SpecialPoints: map[string]domain.SpecialPoints{
				"A": {Level: f(3), Bonus: f(1)},
				"B": {Level: f(2)},
			},
		}

		got := scoring.Totals(s)
		require.Equal(t, []domain.ScoreTotal{
			{PlayerID: "A", Total: 4},
			{PlayerID: "B", Total: 2},
			{PlayerID: "C", Total: 0},
		}, got)
	})
}

func f(v float64) *float64 {
	return &v
}
