package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
)

const sessionColumns = `session_id, game_id, players, red_team, blue_team, laps, special_points, group_id, user_id, is_active, create_time`

func (s *Store) InsertPlaySession(ctx context.Context, ps *domain.PlaySession) error {
	const stmt = `
INSERT INTO play_sessions (session_id, game_id, players, red_team, blue_team, laps, special_points, group_id, user_id, is_active, create_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);`

	players, redTeam, blueTeam, laps, special, err := encodeSession(ps)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(ctx, stmt,
		ps.SessionID, ps.GameID, players, redTeam, blueTeam, laps, special,
		nullable(ps.GroupID), ps.UserID, ps.IsActive, ps.CreateTime,
	)
	if err != nil {
		return fmt.Errorf("insert play session: %w", err)
	}
	return nil
}

func (s *Store) GetPlaySession(ctx context.Context, sessionID string) (*domain.PlaySession, error) {
	const stmt = `SELECT ` + sessionColumns + ` FROM play_sessions WHERE session_id = $1;`

	ps, err := scanSession(s.db.QueryRow(ctx, stmt, sessionID))
	if err != nil {
		return nil, notFound(err, "play session not found: %s", sessionID)
	}
	return &ps, nil
}

// ListPlaySessionsByOwner returns the user's sessions, optionally narrowed
// to one group.
func (s *Store) ListPlaySessionsByOwner(ctx context.Context, userID, groupID string) ([]domain.PlaySession, error) {
	if groupID != "" {
		const stmt = `SELECT ` + sessionColumns + ` FROM play_sessions WHERE user_id = $1 AND group_id = $2 ORDER BY create_time;`
		return s.querySessions(ctx, stmt, userID, groupID)
	}

	const stmt = `SELECT ` + sessionColumns + ` FROM play_sessions WHERE user_id = $1 ORDER BY create_time;`
	return s.querySessions(ctx, stmt, userID)
}

func (s *Store) ListPlaySessionsByGroup(ctx context.Context, groupID string) ([]domain.PlaySession, error) {
	const stmt = `SELECT ` + sessionColumns + ` FROM play_sessions WHERE group_id = $1 ORDER BY create_time;`
	return s.querySessions(ctx, stmt, groupID)
}

// ListPlaySessionsWithPlayers returns every session referencing any of the
// given player IDs in its player or team lists.
func (s *Store) ListPlaySessionsWithPlayers(ctx context.Context, playerIDs []string) ([]domain.PlaySession, error) {
	if len(playerIDs) == 0 {
		return []domain.PlaySession{}, nil
	}

	const stmt = `
SELECT ` + sessionColumns + `
FROM play_sessions
WHERE players ?| $1 OR red_team ?| $1 OR blue_team ?| $1
ORDER BY create_time;`

	return s.querySessions(ctx, stmt, playerIDs)
}

// UpdateLaps overwrites the whole score matrix. Concurrent writers race
// last-writer-wins, same as the append path has always behaved.
func (s *Store) UpdateLaps(ctx context.Context, sessionID string, laps []domain.Round) error {
	b, err := json.Marshal(laps)
	if err != nil {
		return fmt.Errorf("marshal laps: %w", err)
	}

	const stmt = `UPDATE play_sessions SET laps = $2 WHERE session_id = $1;`
	if _, err := s.db.Exec(ctx, stmt, sessionID, b); err != nil {
		return fmt.Errorf("update laps: %w", err)
	}
	return nil
}

func (s *Store) UpdateSpecialPoints(ctx context.Context, sessionID string, points map[string]domain.SpecialPoints) error {
	b, err := json.Marshal(points)
	if err != nil {
		return fmt.Errorf("marshal special points: %w", err)
	}

	const stmt = `UPDATE play_sessions SET special_points = $2 WHERE session_id = $1;`
	if _, err := s.db.Exec(ctx, stmt, sessionID, b); err != nil {
		return fmt.Errorf("update special points: %w", err)
	}
	return nil
}

func (s *Store) SetSessionActive(ctx context.Context, sessionID string, active bool) error {
	const stmt = `UPDATE play_sessions SET is_active = $2 WHERE session_id = $1;`
	if _, err := s.db.Exec(ctx, stmt, sessionID, active); err != nil {
		return fmt.Errorf("set session active: %w", err)
	}
	return nil
}

func (s *Store) querySessions(ctx context.Context, stmt string, args ...any) ([]domain.PlaySession, error) {
	rows, err := s.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query play sessions: %w", err)
	}

	sessions, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.PlaySession, error) {
		return scanSession(r)
	})
	if err != nil {
		return nil, fmt.Errorf("collect play sessions: %w", err)
	}
	return sessions, nil
}

func encodeSession(ps *domain.PlaySession) (players, redTeam, blueTeam, laps, special []byte, err error) {
	if players, err = json.Marshal(orEmpty(ps.Players)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal players: %w", err)
	}
	if redTeam, err = json.Marshal(orEmpty(ps.RedTeam)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal red team: %w", err)
	}
	if blueTeam, err = json.Marshal(orEmpty(ps.BlueTeam)); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal blue team: %w", err)
	}
	if ps.Laps == nil {
		laps = []byte(`[]`)
	} else if laps, err = json.Marshal(ps.Laps); err != nil {
		return nil, nil, nil, nil, nil, fmt.Errorf("marshal laps: %w", err)
	}
	if ps.SpecialPoints != nil {
		if special, err = json.Marshal(ps.SpecialPoints); err != nil {
			return nil, nil, nil, nil, nil, fmt.Errorf("marshal special points: %w", err)
		}
	}
	return players, redTeam, blueTeam, laps, special, nil
}

func orEmpty(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func scanSession(r row) (domain.PlaySession, error) {
	var (
		ps                               domain.PlaySession
		players, redTeam, blueTeam, laps []byte
		special                          []byte
		groupID                          *string
	)
	err := r.Scan(&ps.SessionID, &ps.GameID, &players, &redTeam, &blueTeam, &laps, &special, &groupID, &ps.UserID, &ps.IsActive, &ps.CreateTime)
	if err != nil {
		return domain.PlaySession{}, err
	}

	if err := json.Unmarshal(players, &ps.Players); err != nil {
		return domain.PlaySession{}, fmt.Errorf("unmarshal players: %w", err)
	}
	if err := json.Unmarshal(redTeam, &ps.RedTeam); err != nil {
		return domain.PlaySession{}, fmt.Errorf("unmarshal red team: %w", err)
	}
	if err := json.Unmarshal(blueTeam, &ps.BlueTeam); err != nil {
		return domain.PlaySession{}, fmt.Errorf("unmarshal blue team: %w", err)
	}
	if err := json.Unmarshal(laps, &ps.Laps); err != nil {
		return domain.PlaySession{}, fmt.Errorf("unmarshal laps: %w", err)
	}
	if len(special) > 0 {
		if err := json.Unmarshal(special, &ps.SpecialPoints); err != nil {
			return domain.PlaySession{}, fmt.Errorf("unmarshal special points: %w", err)
		}
	}
	ps.GroupID = deref(groupID)
	return ps, nil
}
