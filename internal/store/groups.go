package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
)

func (s *Store) InsertGroup(ctx context.Context, g *domain.Group) error {
	const stmt = `
INSERT INTO groups (group_id, name, description, user_id, create_time)
VALUES ($1, $2, $3, $4, $5);`

	_, err := s.db.Exec(ctx, stmt, g.GroupID, g.Name, g.Description, g.UserID, g.CreateTime)
	if err != nil {
		return fmt.Errorf("insert group: %w", err)
	}
	return nil
}

func (s *Store) GetGroup(ctx context.Context, groupID string) (*domain.Group, error) {
	const stmt = `SELECT group_id, name, description, user_id, create_time FROM groups WHERE group_id = $1;`

	var g domain.Group
	err := s.db.QueryRow(ctx, stmt, groupID).Scan(&g.GroupID, &g.Name, &g.Description, &g.UserID, &g.CreateTime)
	if err != nil {
		return nil, notFound(err, "group not found: %s", groupID)
	}
	return &g, nil
}

func (s *Store) ListGroupsByOwner(ctx context.Context, userID string) ([]domain.Group, error) {
	const stmt = `SELECT group_id, name, description, user_id, create_time FROM groups WHERE user_id = $1 ORDER BY create_time;`

	rows, err := s.db.Query(ctx, stmt, userID)
	if err != nil {
		return nil, fmt.Errorf("query groups: %w", err)
	}

	groups, err := pgx.CollectRows(rows, func(r pgx.CollectableRow) (domain.Group, error) {
		var g domain.Group
		err := r.Scan(&g.GroupID, &g.Name, &g.Description, &g.UserID, &g.CreateTime)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("collect groups: %w", err)
	}
	return groups, nil
}
