package domain

import "time"

const (
	EventNameSessionClosed      = "session.closed"
	EventNameScoreUpdated       = "score.updated"
	EventNameLeaderboardUpdated = "leaderboard.updated"
)

type EventSessionClosed struct {
	Session PlaySession
}

func (EventSessionClosed) Name() string { return EventNameSessionClosed }

// EventScoreUpdated fires after a round append or a special-points write,
// carrying the session's recomputed per-participant totals.
type EventScoreUpdated struct {
	SessionID  string
	Totals     []ScoreTotal
	UpdateTime time.Time
}

func (EventScoreUpdated) Name() string { return EventNameScoreUpdated }

type EventLeaderboardUpdated struct {
	Leaderboard Leaderboard
}

func (EventLeaderboardUpdated) Name() string { return EventNameLeaderboardUpdated }
