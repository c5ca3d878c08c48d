package api

import (
	"time"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
)

// Wire shapes. Score cells marshal as a number, an array of numbers, or
// null, matching the saved-game format.
type (
	User struct {
		UserID   string `json:"user_id"`
		Name     string `json:"name"`
		PlayerID string `json:"player_id,omitempty"`
	}

	Player struct {
		PlayerID     string `json:"player_id"`
		Name         string `json:"name"`
		Initial      string `json:"initial"`
		Avatar       string `json:"avatar,omitempty"`
		UserID       string `json:"user_id,omitempty"`
		LinkedUserID string `json:"linked_user_id,omitempty"`
		GroupID      string `json:"group_id,omitempty"`
		IsActive     bool   `json:"is_active"`
	}

	Group struct {
		GroupID     string `json:"group_id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
		UserID      string `json:"user_id"`
	}

	Session struct {
		SessionID     string                          `json:"session_id"`
		GameID        string                          `json:"game_id"`
		Players       []string                        `json:"players"`
		RedTeam       []string                        `json:"red_team,omitempty"`
		BlueTeam      []string                        `json:"blue_team,omitempty"`
		Laps          []domain.Round                  `json:"laps"`
		SpecialPoints map[string]domain.SpecialPoints `json:"special_points,omitempty"`
		GroupID       string                          `json:"group_id,omitempty"`
		UserID        string                          `json:"user_id"`
		IsActive      bool                            `json:"is_active"`
		CreateTime    time.Time                       `json:"create_time"`
	}

	GroupStats struct {
		MostPlayedGames []GamePlayCount             `json:"most_played_games"`
		WinnersByGame   map[string][]PlayerWinCount `json:"winners_by_game"`
	}

	GamePlayCount struct {
		GameID string `json:"game_id"`
		Count  int    `json:"count"`
	}

	PlayerWinCount struct {
		PlayerID string `json:"player_id"`
		Wins     int    `json:"wins"`
	}

	Leaderboard struct {
		SessionID string             `json:"session_id"`
		Entries   []LeaderboardEntry `json:"entries"`
	}

	LeaderboardEntry struct {
		PlayerID string  `json:"player_id"`
		Score    float64 `json:"score"`
	}
)

func toUser(u *domain.User) User {
	return User{
		UserID:   u.UserID,
		Name:     u.Name,
		PlayerID: u.PlayerID,
	}
}

func toPlayer(p domain.Player) Player {
	return Player{
		PlayerID:     p.PlayerID,
		Name:         p.Name,
		Initial:      p.Initial,
		Avatar:       p.Avatar,
		UserID:       p.UserID,
		LinkedUserID: p.LinkedUserID,
		GroupID:      p.GroupID,
		IsActive:     p.IsActive,
	}
}

func toGroup(g domain.Group) Group {
	return Group{
		GroupID:     g.GroupID,
		Name:        g.Name,
		Description: g.Description,
		UserID:      g.UserID,
	}
}

func toSession(s *domain.PlaySession) Session {
	return Session{
		SessionID:     s.SessionID,
		GameID:        s.GameID,
		Players:       s.Players,
		RedTeam:       s.RedTeam,
		BlueTeam:      s.BlueTeam,
		Laps:          s.Laps,
		SpecialPoints: s.SpecialPoints,
		GroupID:       s.GroupID,
		UserID:        s.UserID,
		IsActive:      s.IsActive,
		CreateTime:    s.CreateTime,
	}
}
