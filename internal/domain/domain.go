package domain

import (
	"time"
)

// PlaySession is one recorded instance of playing a game. Scores come from
// one of two sources: the Laps matrix (per-round, per-participant cells) or
// the SpecialPoints map (level/bonus scoring used by a few games). When
// SpecialPoints is non-empty it is authoritative and Laps is ignored.
type PlaySession struct {
	SessionID string
	GameID    string

	// Players lists participant player IDs in seating order. RedTeam and
	// BlueTeam are populated instead of Players in two-team mode.
	Players  []string
	RedTeam  []string
	BlueTeam []string

	// Laps is indexed [roundIndex][participantIndex]. Rows may be ragged.
	Laps []Round

	// SpecialPoints maps participant player ID to level-based scoring.
	SpecialPoints map[string]SpecialPoints

	GroupID    string
	UserID     string
	IsActive   bool
	CreateTime time.Time
}

// Round holds one round of score cells, one cell per participant.
type Round []Cell

// SpecialPoints is the level-based scoring record for one participant.
// Level may be absent on malformed entries; such entries are skipped during
// winner resolution without falling back to lap totals.
type SpecialPoints struct {
	Level *float64 `json:"level"`
	Bonus *float64 `json:"bonus,omitempty"`
}

// Player is a named participant. It is owned by the user that created it
// (UserID) and may additionally be linked to a second user account
// (LinkedUserID) for shared visibility.
type Player struct {
	PlayerID     string
	Name         string
	Initial      string
	Avatar       string
	UserID       string
	LinkedUserID string
	GroupID      string
	IsActive     bool
	CreateTime   time.Time
}

// User is an account resolved from the external identity provider subject.
type User struct {
	UserID     string
	Subject    string
	Name       string
	PlayerID   string // the user's own self-player, if bound
	IsAdmin    bool
	IsPremium  bool
	CreateTime time.Time
	UpdateTime time.Time
}

// Group tags sessions and players; it is a filter dimension, not an
// aggregate of its own.
type Group struct {
	GroupID     string
	Name        string
	Description string
	UserID      string
	CreateTime  time.Time
}

// ScoreTotal is one participant's current total within a session.
type ScoreTotal struct {
	PlayerID string
	Total    float64
}

// Leaderboard lists participants of a session ordered by score descending.
type Leaderboard struct {
	SessionID string
	Entries   []LeaderboardEntry
}

type LeaderboardEntry struct {
	PlayerID string
	Score    float64
}

// GamePlayCount is one entry of a group's most-played ranking.
type GamePlayCount struct {
	GameID string
	Count  int
}

// PlayerWinCount is one entry of a per-game winner ranking.
type PlayerWinCount struct {
	PlayerID string
	Wins     int
}

// GroupStats aggregates a group's play history: games ranked by play count
// and, per game, participants ranked by win count.
type GroupStats struct {
	MostPlayedGames []GamePlayCount
	WinnersByGame   map[string][]PlayerWinCount
}

// Participants returns every player ID referenced by the session's player
// and team lists, in order, without de-duplication.
func (s PlaySession) Participants() []string {
	out := make([]string, 0, len(s.Players)+len(s.RedTeam)+len(s.BlueTeam))
	out = append(out, s.Players...)
	out = append(out, s.RedTeam...)
	out = append(out, s.BlueTeam...)
	return out
}
