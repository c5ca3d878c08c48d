// Package users resolves identity provider subjects to accounts.
package users

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
)

type Store interface {
	InsertUser(ctx context.Context, u *domain.User) error
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserBySubject(ctx context.Context, subject string) (*domain.User, error)
	UpdateUser(ctx context.Context, u *domain.User) error
}

type Config struct {
	Store Store
}

type Service struct {
	store Store
}

func NewService(c Config) *Service {
	return &Service{store: c.Store}
}

type SyncUserRequest struct {
	Subject string
	Name    string
}

// SyncUser looks up the account for an identity subject, creating it on
// first sign-in. The subject string is opaque; only equality matters.
func (s *Service) SyncUser(ctx context.Context, req SyncUserRequest) (*domain.User, error) {
	u, err := s.store.GetUserBySubject(ctx, req.Subject)
	if err == nil {
		if req.Name != "" && req.Name != u.Name {
			u.Name = req.Name
			u.UpdateTime = time.Now().UTC()
			if err := s.store.UpdateUser(ctx, u); err != nil {
				return nil, err
			}
		}
		return u, nil
	}
	if !errors.IsNotFound(err) {
		return nil, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	now := time.Now().UTC()
	u = &domain.User{
		UserID:     id.String(),
		Subject:    req.Subject,
		Name:       req.Name,
		CreateTime: now,
		UpdateTime: now,
	}

	if err := s.store.InsertUser(ctx, u); err != nil {
		// Lost a first sign-in race; the winner's row is authoritative.
		if errors.IsAlreadyExists(err) {
			return s.store.GetUserBySubject(ctx, req.Subject)
		}
		return nil, err
	}

	return u, nil
}

type GetUserRequest struct {
	Subject string
}

func (s *Service) GetUser(ctx context.Context, req GetUserRequest) (*domain.User, error) {
	return s.store.GetUserBySubject(ctx, req.Subject)
}

type UpdateUserRequest struct {
	Subject string

	// nil fields keep their current value.
	Name     *string
	PlayerID *string
}

// UpdateUser patches the account's display name or self-player binding. A
// user has at most one self-player at a time.
func (s *Service) UpdateUser(ctx context.Context, req UpdateUserRequest) (*domain.User, error) {
	u, err := s.store.GetUserBySubject(ctx, req.Subject)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		u.Name = *req.Name
	}
	if req.PlayerID != nil {
		u.PlayerID = *req.PlayerID
	}
	u.UpdateTime = time.Now().UTC()

	if err := s.store.UpdateUser(ctx, u); err != nil {
		return nil, err
	}

	return u, nil
}
