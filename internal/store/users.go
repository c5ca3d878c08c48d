package store

import (
	"context"
	"fmt"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
)

const userColumns = `user_id, subject, name, player_id, is_admin, is_premium, create_time, update_time`

func (s *Store) InsertUser(ctx context.Context, u *domain.User) error {
	const stmt = `
INSERT INTO users (user_id, subject, name, player_id, create_time, update_time)
VALUES ($1, $2, $3, $4, $5, $5);`

	_, err := s.db.Exec(ctx, stmt, u.UserID, u.Subject, u.Name, nullable(u.PlayerID), u.CreateTime)
	if err != nil {
		if isUniqueViolation(err) {
			return errors.New(errors.CodeAlreadyExists,
				errors.WithMessagef("user already exists for subject"),
				errors.WithCause(err),
			)
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (s *Store) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	const stmt = `SELECT ` + userColumns + ` FROM users WHERE user_id = $1;`
	return s.scanUser(s.db.QueryRow(ctx, stmt, userID), "user not found: %s", userID)
}

func (s *Store) GetUserBySubject(ctx context.Context, subject string) (*domain.User, error) {
	const stmt = `SELECT ` + userColumns + ` FROM users WHERE subject = $1;`
	return s.scanUser(s.db.QueryRow(ctx, stmt, subject), "user not found for subject")
}

func (s *Store) UpdateUser(ctx context.Context, u *domain.User) error {
	const stmt = `
UPDATE users SET name = $2, player_id = $3, update_time = $4 WHERE user_id = $1;`

	_, err := s.db.Exec(ctx, stmt, u.UserID, u.Name, nullable(u.PlayerID), u.UpdateTime)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	return nil
}

type row interface {
	Scan(dest ...any) error
}

func (s *Store) scanUser(r row, msgFormat string, args ...any) (*domain.User, error) {
	var (
		u        domain.User
		playerID *string
	)
	err := r.Scan(&u.UserID, &u.Subject, &u.Name, &playerID, &u.IsAdmin, &u.IsPremium, &u.CreateTime, &u.UpdateTime)
	if err != nil {
		return nil, notFound(err, msgFormat, args...)
	}
	u.PlayerID = deref(playerID)
	return &u, nil
}
