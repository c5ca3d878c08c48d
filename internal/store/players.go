package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
)

const playerColumns = `player_id, name, initial, avatar, user_id, linked_user_id, group_id, is_active, create_time`

func (s *Store) InsertPlayer(ctx context.Context, p *domain.Player) error {
	const stmt = `
INSERT INTO players (player_id, name, initial, avatar, user_id, linked_user_id, group_id, is_active, create_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`

	_, err := s.db.Exec(ctx, stmt,
		p.PlayerID, p.Name, p.Initial, p.Avatar,
		nullable(p.UserID), nullable(p.LinkedUserID), nullable(p.GroupID),
		p.IsActive, p.CreateTime,
	)
	if err != nil {
		return fmt.Errorf("insert player: %w", err)
	}
	return nil
}

func (s *Store) GetPlayer(ctx context.Context, playerID string) (*domain.Player, error) {
	const stmt = `SELECT ` + playerColumns + ` FROM players WHERE player_id = $1;`

	p, err := scanPlayer(s.db.QueryRow(ctx, stmt, playerID))
	if err != nil {
		return nil, notFound(err, "player not found: %s", playerID)
	}
	return &p, nil
}

func (s *Store) UpdatePlayer(ctx context.Context, p *domain.Player) error {
	const stmt = `
UPDATE players
SET name = $2, initial = $3, avatar = $4, linked_user_id = $5, group_id = $6, is_active = $7
WHERE player_id = $1;`

	_, err := s.db.Exec(ctx, stmt,
		p.PlayerID, p.Name, p.Initial, p.Avatar,
		nullable(p.LinkedUserID), nullable(p.GroupID), p.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update player: %w", err)
	}
	return nil
}

// GetPlayersByIDs resolves the given IDs to active players, preserving the
// order of ids. Missing and inactive players are silently dropped.
func (s *Store) GetPlayersByIDs(ctx context.Context, ids []string) ([]domain.Player, error) {
	if len(ids) == 0 {
		return []domain.Player{}, nil
	}

	const stmt = `SELECT ` + playerColumns + ` FROM players WHERE player_id = ANY($1) AND is_active;`

	players, err := s.queryPlayers(ctx, stmt, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]domain.Player, len(players))
	for _, p := range players {
		byID[p.PlayerID] = p
	}

	out := make([]domain.Player, 0, len(players))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListPlayersByOwner(ctx context.Context, userID string) ([]domain.Player, error) {
	const stmt = `SELECT ` + playerColumns + ` FROM players WHERE user_id = $1 ORDER BY create_time;`
	return s.queryPlayers(ctx, stmt, userID)
}

func (s *Store) ListPlayersByLinkedUser(ctx context.Context, userID string) ([]domain.Player, error) {
	const stmt = `SELECT ` + playerColumns + ` FROM players WHERE linked_user_id = $1 ORDER BY create_time;`
	return s.queryPlayers(ctx, stmt, userID)
}

func (s *Store) queryPlayers(ctx context.Context, stmt string, args ...any) ([]domain.Player, error) {
	rows, err := s.db.Query(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query players: %w", err)
	}

	players, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Player, error) {
		return scanPlayer(r)
	})
	if err != nil {
		return nil, fmt.Errorf("collect players: %w", err)
	}
	return players, nil
}

func scanPlayer(r row) (domain.Player, error) {
	var (
		p                             domain.Player
		userID, linkedUserID, groupID *string
	)
	err := r.Scan(&p.PlayerID, &p.Name, &p.Initial, &p.Avatar, &userID, &linkedUserID, &groupID, &p.IsActive, &p.CreateTime)
	if err != nil {
		return domain.Player{}, err
	}
	p.UserID = deref(userID)
	p.LinkedUserID = deref(linkedUserID)
	p.GroupID = deref(groupID)
	return p, nil
}
