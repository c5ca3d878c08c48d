package session_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
	"github.com/selimdilsadercan/eslikci-sub001/internal/event"
	"github.com/selimdilsadercan/eslikci-sub001/internal/session"
)

func TestService_CreateSession(t *testing.T) {
	t.Run("creates an active session with an empty score matrix", func(t *testing.T) {
		s, f, _ := makeService(t)

		ps, err := s.CreateSession(context.Background(), session.CreateSessionRequest{
			UserID:    "u1",
			GameID:    "catan",
			PlayerIDs: []string{"p1", "p2"},
			GroupID:   "g1",
		})
		require.NoError(t, err)
		require.NotEmpty(t, ps.SessionID)
		require.True(t, ps.IsActive)
		require.Empty(t, ps.Laps)
		require.Equal(t, ps, f.sessions[ps.SessionID])
	})

	t.Run("rejects a session without a game", func(t *testing.T) {
		s, _, _ := makeService(t)

		_, err := s.CreateSession(context.Background(), session.CreateSessionRequest{
			UserID:    "u1",
			PlayerIDs: []string{"p1"},
		})
		require.Equal(t, errors.CodeInvalidArgument, errors.Convert(err).Code)
	})

	t.Run("rejects a session without participants", func(t *testing.T) {
		s, _, _ := makeService(t)

		_, err := s.CreateSession(context.Background(), session.CreateSessionRequest{
			UserID: "u1",
			GameID: "catan",
		})
		require.Equal(t, errors.CodeInvalidArgument, errors.Convert(err).Code)
	})
}

func TestService_AddRoundScores(t *testing.T) {
	t.Run("appends the round and publishes recomputed totals", func(t *testing.T) {
		s, f, captured := makeService(t)
		f.put(&domain.PlaySession{
			SessionID: "s1",
			GameID:    "catan",
			UserID:    "u1",
			Players:   []string{"p1", "p2"},
			Laps:      []domain.Round{{domain.Scalar(3), domain.Scalar(5)}},
			IsActive:  true,
		})

		ps, err := s.AddRoundScores(context.Background(), session.AddRoundScoresRequest{
			SessionID: "s1",
			UserID:    "u1",
			Cells:     []domain.Cell{domain.Scalar(2), domain.Scalar(1)},
		})
		require.NoError(t, err)
		require.Len(t, ps.Laps, 2)
		require.Len(t, f.sessions["s1"].Laps, 2)

		events := captured()
		require.Len(t, events, 1)
		require.Equal(t, "s1", events[0].SessionID)
		require.Equal(t, []domain.ScoreTotal{
			{PlayerID: "p1", Total: 5},
			{PlayerID: "p2", Total: 6},
		}, events[0].Totals)
	})

	t.Run("rejects writes from a non-owner", func(t *testing.T) {
		s, f, _ := makeService(t)
		f.put(&domain.PlaySession{SessionID: "s1", UserID: "u1", Players: []string{"p1"}, IsActive: true})

		_, err := s.AddRoundScores(context.Background(), session.AddRoundScoresRequest{
			SessionID: "s1",
			UserID:    "u2",
			Cells:     []domain.Cell{domain.Scalar(1)},
		})
		require.Equal(t, errors.CodePermissionDenied, errors.Convert(err).Code)
	})

	t.Run("rejects an empty round", func(t *testing.T) {
		s, _, _ := makeService(t)

		_, err := s.AddRoundScores(context.Background(), session.AddRoundScoresRequest{
			SessionID: "s1",
			UserID:    "u1",
		})
		require.Equal(t, errors.CodeInvalidArgument, errors.Convert(err).Code)
	})
}

func TestService_SetSpecialPoints(t *testing.T) {
	s, f, captured := makeService(t)
	f.put(&domain.PlaySession{
		SessionID: "s1",
		GameID:    "munchkin",
		UserID:    "u1",
		Players:   []string{"p1", "p2"},
		IsActive:  true,
	})

	points := map[string]domain.SpecialPoints{
		"p1": {Level: f64(3), Bonus: f64(1)},
		"p2": {Level: f64(2)},
	}
	ps, err := s.SetSpecialPoints(context.Background(), session.SetSpecialPointsRequest{
		SessionID: "s1",
		UserID:    "u1",
		Points:    points,
	})
	require.NoError(t, err)
	require.Equal(t, points, ps.SpecialPoints)

	events := captured()
	require.Len(t, events, 1)
	require.Equal(t, []domain.ScoreTotal{
		{PlayerID: "p1", Total: 4},
		{PlayerID: "p2", Total: 2},
	}, events[0].Totals)
}

func TestService_Winners(t *testing.T) {
	s, f, _ := makeService(t)
	f.put(&domain.PlaySession{
		SessionID: "s1",
		UserID:    "u1",
		Players:   []string{"p1", "p2"},
		Laps: []domain.Round{
			{domain.Scalar(3), domain.Scalar(5)},
			{domain.Scalar(2), domain.Scalar(1)},
		},
		IsActive: true,
	})

	winners, err := s.Winners(context.Background(), session.WinnersRequest{SessionID: "s1"})
	require.NoError(t, err)
	require.Equal(t, []string{"p2"}, winners)
}

func TestService_CloseSession(t *testing.T) {
	s, f, _ := makeService(t)
	f.put(&domain.PlaySession{SessionID: "s1", UserID: "u1", Players: []string{"p1"}, IsActive: true})

	ps, err := s.CloseSession(context.Background(), session.CloseSessionRequest{
		SessionID: "s1",
		UserID:    "u1",
	})
	require.NoError(t, err)
	require.False(t, ps.IsActive)
	require.False(t, f.sessions["s1"].IsActive)
}

func makeService(t *testing.T) (*session.Service, *fakeStore, func() []domain.EventScoreUpdated) {
	t.Helper()

	f := &fakeStore{sessions: make(map[string]*domain.PlaySession)}
	eb := event.NewBus()

	var mu sync.Mutex
	var events []domain.EventScoreUpdated
	eb.Subscribe(domain.EventNameScoreUpdated, func(ctx context.Context, e event.Event) error {
		mu.Lock()
		events = append(events, e.(domain.EventScoreUpdated))
		mu.Unlock()
		return nil
	})

	s := session.NewService(session.Config{
		Store:    f,
		EventBus: eb,
	})

	captured := func() []domain.EventScoreUpdated {
		eb.Stop()
		mu.Lock()
		defer mu.Unlock()
		return events
	}

	return s, f, captured
}

func f64(v float64) *float64 {
	return &v
}

// fakeStore is an in-memory session.Store.
type fakeStore struct {
	sessions map[string]*domain.PlaySession
}

func (f *fakeStore) put(ps *domain.PlaySession) {
	f.sessions[ps.SessionID] = ps
}

func (f *fakeStore) InsertPlaySession(_ context.Context, ps *domain.PlaySession) error {
	cp := *ps
	f.sessions[ps.SessionID] = &cp
	return nil
}

func (f *fakeStore) GetPlaySession(_ context.Context, sessionID string) (*domain.PlaySession, error) {
	ps, ok := f.sessions[sessionID]
	if !ok {
		return nil, errors.NotFound("play session not found: %s", sessionID)
	}
	cp := *ps
	return &cp, nil
}

func (f *fakeStore) ListPlaySessionsByOwner(_ context.Context, userID, groupID string) ([]domain.PlaySession, error) {
	out := []domain.PlaySession{}
	for _, ps := range f.sessions {
		if ps.UserID == userID && (groupID == "" || ps.GroupID == groupID) {
			out = append(out, *ps)
		}
	}
	return out, nil
}

func (f *fakeStore) UpdateLaps(_ context.Context, sessionID string, laps []domain.Round) error {
	ps, ok := f.sessions[sessionID]
	if !ok {
		return errors.NotFound("play session not found: %s", sessionID)
	}
	ps.Laps = laps
	return nil
}

func (f *fakeStore) UpdateSpecialPoints(_ context.Context, sessionID string, points map[string]domain.SpecialPoints) error {
	ps, ok := f.sessions[sessionID]
	if !ok {
		return errors.NotFound("play session not found: %s", sessionID)
	}
	ps.SpecialPoints = points
	return nil
}

func (f *fakeStore) SetSessionActive(_ context.Context, sessionID string, active bool) error {
	ps, ok := f.sessions[sessionID]
	if !ok {
		return errors.NotFound("play session not found: %s", sessionID)
	}
	ps.IsActive = active
	return nil
}
