// Package groups manages the named groups used to tag sessions and players.
package groups

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
)

type Store interface {
	InsertGroup(ctx context.Context, g *domain.Group) error
	GetGroup(ctx context.Context, groupID string) (*domain.Group, error)
	ListGroupsByOwner(ctx context.Context, userID string) ([]domain.Group, error)
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

type CreateGroupRequest struct {
	UserID      string
	Name        string
	Description string
}

func (s *Service) CreateGroup(ctx context.Context, req CreateGroupRequest) (*domain.Group, error) {
	if req.Name == "" {
		return nil, errors.New(errors.CodeInvalidArgument, errors.WithMessagef("group name is required"))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate group ID: %w", err)
	}

	g := &domain.Group{
		GroupID:     id.String(),
		Name:        req.Name,
		Description: req.Description,
		UserID:      req.UserID,
		CreateTime:  time.Now().UTC(),
	}

	if err := s.store.InsertGroup(ctx, g); err != nil {
		return nil, err
	}

	return g, nil
}

type GetGroupRequest struct {
	GroupID string
}

func (s *Service) GetGroup(ctx context.Context, req GetGroupRequest) (*domain.Group, error) {
	return s.store.GetGroup(ctx, req.GroupID)
}

type ListGroupsRequest struct {
	UserID string
}

func (s *Service) ListGroups(ctx context.Context, req ListGroupsRequest) ([]domain.Group, error) {
	return s.store.ListGroupsByOwner(ctx, req.UserID)
}
