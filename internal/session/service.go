// Package session manages play session lifecycle: creation, round score
// appends, special points and winner resolution.
package session

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
	"github.com/selimdilsadercan/eslikci-sub001/internal/event"
	"github.com/selimdilsadercan/eslikci-sub001/internal/scoring"
)

// Store is the persistence surface the service needs.
type Store interface {
	InsertPlaySession(ctx context.Context, ps *domain.PlaySession) error
	GetPlaySession(ctx context.Context, sessionID string) (*domain.PlaySession, error)
	ListPlaySessionsByOwner(ctx context.Context, userID, groupID string) ([]domain.PlaySession, error)
	UpdateLaps(ctx context.Context, sessionID string, laps []domain.Round) error
	UpdateSpecialPoints(ctx context.Context, sessionID string, points map[string]domain.SpecialPoints) error
	SetSessionActive(ctx context.Context, sessionID string, active bool) error
}

type Config struct {
	Store    Store
	EventBus *event.Bus
}

type Service struct {
	store Store
	eb    *event.Bus
}

func NewService(c Config) *Service {
	return &Service{
		store: c.Store,
		eb:    c.EventBus,
	}
}

type CreateSessionRequest struct {
	UserID    string
	GameID    string
	PlayerIDs []string
	RedTeam   []string
	BlueTeam  []string
	GroupID   string
}

// CreateSession records the start of a game for the given participants.
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*domain.PlaySession, error) {
	if req.GameID == "" {
		return nil, errors.New(errors.CodeInvalidArgument, errors.WithMessagef("game id is required"))
	}
	if len(req.PlayerIDs)+len(req.RedTeam)+len(req.BlueTeam) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument, errors.WithMessagef("at least one participant is required"))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate session ID: %w", err)
	}

	ps := &domain.PlaySession{
		SessionID:  id.String(),
		GameID:     req.GameID,
		Players:    req.PlayerIDs,
		RedTeam:    req.RedTeam,
		BlueTeam:   req.BlueTeam,
		Laps:       []domain.Round{},
		GroupID:    req.GroupID,
		UserID:     req.UserID,
		IsActive:   true,
		CreateTime: time.Now().UTC(),
	}
	if ps.Players == nil {
		ps.Players = []string{}
	}

	if err := s.store.InsertPlaySession(ctx, ps); err != nil {
		return nil, err
	}

	return ps, nil
}

type GetSessionRequest struct {
	SessionID string
}

func (s *Service) GetSession(ctx context.Context, req GetSessionRequest) (*domain.PlaySession, error) {
	return s.store.GetPlaySession(ctx, req.SessionID)
}

type ListSessionsRequest struct {
	UserID  string
	GroupID string
}

func (s *Service) ListSessions(ctx context.Context, req ListSessionsRequest) ([]domain.PlaySession, error) {
	return s.store.ListPlaySessionsByOwner(ctx, req.UserID, req.GroupID)
}

type AddRoundScoresRequest struct {
	SessionID string
	UserID    string
	Cells     []domain.Cell
}

// AddRoundScores appends one round of scores to the session's matrix and
// publishes the recomputed totals.
//
// The write is read-modify-write with no concurrency token: two clients
// submitting a round at the same time race last-writer-wins, and one append
// can silently overwrite the other.
func (s *Service) AddRoundScores(ctx context.Context, req AddRoundScoresRequest) (*domain.PlaySession, error) {
	if len(req.Cells) == 0 {
		return nil, errors.New(errors.CodeInvalidArgument, errors.WithMessagef("round has no scores"))
	}

	ps, err := s.owned(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	ps.Laps = append(ps.Laps, domain.Round(req.Cells))
	if err := s.store.UpdateLaps(ctx, ps.SessionID, ps.Laps); err != nil {
		return nil, err
	}

	s.publishScoreUpdated(ctx, ps)
	return ps, nil
}

type SetSpecialPointsRequest struct {
	SessionID string
	UserID    string
	Points    map[string]domain.SpecialPoints
}

// SetSpecialPoints replaces the session's level-based scoring map.
func (s *Service) SetSpecialPoints(ctx context.Context, req SetSpecialPointsRequest) (*domain.PlaySession, error) {
	ps, err := s.owned(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	ps.SpecialPoints = req.Points
	if err := s.store.UpdateSpecialPoints(ctx, ps.SessionID, ps.SpecialPoints); err != nil {
		return nil, err
	}

	s.publishScoreUpdated(ctx, ps)
	return ps, nil
}

type WinnersRequest struct {
	SessionID string
}

// Winners resolves the session's current winner set.
func (s *Service) Winners(ctx context.Context, req WinnersRequest) ([]string, error) {
	ps, err := s.store.GetPlaySession(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}

	return scoring.Winners(*ps), nil
}

type CloseSessionRequest struct {
	SessionID string
	UserID    string
}

// CloseSession marks the session inactive. The record stays readable; no
// aggregation path hard-deletes sessions.
func (s *Service) CloseSession(ctx context.Context, req CloseSessionRequest) (*domain.PlaySession, error) {
	ps, err := s.owned(ctx, req.SessionID, req.UserID)
	if err != nil {
		return nil, err
	}

	if err := s.store.SetSessionActive(ctx, ps.SessionID, false); err != nil {
		return nil, err
	}
	ps.IsActive = false

	s.eb.Publish(ctx, domain.EventSessionClosed{Session: *ps})
	return ps, nil
}

func (s *Service) owned(ctx context.Context, sessionID, userID string) (*domain.PlaySession, error) {
	ps, err := s.store.GetPlaySession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if ps.UserID != userID {
		return nil, errors.New(errors.CodePermissionDenied, errors.WithMessagef("session belongs to another user"))
	}
	return ps, nil
}

func (s *Service) publishScoreUpdated(ctx context.Context, ps *domain.PlaySession) {
	s.eb.Publish(ctx, domain.EventScoreUpdated{
		SessionID:  ps.SessionID,
		Totals:     scoring.Totals(*ps),
		UpdateTime: time.Now().UTC(),
	})
}
