// Package players manages player records and computes the set of players
// visible to a user.
package players

import (
	"context"
	"fmt"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
)

// Store is the persistence surface the service needs.
type Store interface {
	GetUserBySubject(ctx context.Context, subject string) (*domain.User, error)
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetPlayer(ctx context.Context, playerID string) (*domain.Player, error)
	GetPlayersByIDs(ctx context.Context, ids []string) ([]domain.Player, error)
	ListPlayersByOwner(ctx context.Context, userID string) ([]domain.Player, error)
	ListPlayersByLinkedUser(ctx context.Context, userID string) ([]domain.Player, error)
	ListPlaySessionsByOwner(ctx context.Context, userID, groupID string) ([]domain.PlaySession, error)
	ListPlaySessionsWithPlayers(ctx context.Context, playerIDs []string) ([]domain.PlaySession, error)
	InsertPlayer(ctx context.Context, p *domain.Player) error
	UpdatePlayer(ctx context.Context, p *domain.Player) error
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

type GetPlayersRequest struct {
	Subject string
}

// GetPlayers merges four sources into one de-duplicated, first-seen-ordered
// list of active players the user can see: players the user owns, players
// linked to the user, the reciprocal self-player of a linked friend, and
// every participant of the sessions the user took part in. An unknown
// subject yields an empty list; dangling references are skipped.
func (s *Service) GetPlayers(ctx context.Context, req GetPlayersRequest) ([]domain.Player, error) {
	u, err := s.store.GetUserBySubject(ctx, req.Subject)
	if errors.IsNotFound(err) {
		return []domain.Player{}, nil
	}
	if err != nil {
		return nil, err
	}

	out := []domain.Player{}
	seen := make(map[string]bool)
	add := func(p domain.Player) {
		if !p.IsActive || seen[p.PlayerID] {
			return
		}
		seen[p.PlayerID] = true
		out = append(out, p)
	}

	owned, err := s.store.ListPlayersByOwner(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	for _, p := range owned {
		add(p)
	}

	linked, err := s.store.ListPlayersByLinkedUser(ctx, u.UserID)
	if err != nil {
		return nil, err
	}
	for _, p := range linked {
		add(p)
	}

	if err := s.addReciprocal(ctx, u, add); err != nil {
		return nil, err
	}

	if err := s.addGameDerived(ctx, u, linked, seen, add); err != nil {
		return nil, err
	}

	return out, nil
}

// addReciprocal follows the one-directional link from the user's
// self-player out to the linked friend's own self-player, so the link reads
// symmetrically on both accounts.
func (s *Service) addReciprocal(ctx context.Context, u *domain.User, add func(domain.Player)) error {
	if u.PlayerID == "" {
		return nil
	}

	self, err := s.store.GetPlayer(ctx, u.PlayerID)
	if errors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if self.LinkedUserID == "" {
		return nil
	}

	friend, err := s.store.GetUser(ctx, self.LinkedUserID)
	if errors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if friend.PlayerID == "" {
		return nil
	}

	p, err := s.store.GetPlayer(ctx, friend.PlayerID)
	if errors.IsNotFound(err) {
		return nil
	}
	if err != nil {
		return err
	}

	add(*p)
	return nil
}

// addGameDerived collects the user's own sessions plus any session where
// one of the user's linked players took part, then resolves every distinct
// participant not already present.
func (s *Service) addGameDerived(ctx context.Context, u *domain.User, linked []domain.Player, seen map[string]bool, add func(domain.Player)) error {
	sessions, err := s.store.ListPlaySessionsByOwner(ctx, u.UserID, "")
	if err != nil {
		return err
	}

	linkedIDs := make([]string, 0, len(linked))
	for _, p := range linked {
		linkedIDs = append(linkedIDs, p.PlayerID)
	}

	shared, err := s.store.ListPlaySessionsWithPlayers(ctx, linkedIDs)
	if err != nil {
		return err
	}

	sessionSeen := make(map[string]bool, len(sessions))
	for _, ps := range sessions {
		sessionSeen[ps.SessionID] = true
	}
	for _, ps := range shared {
		if !sessionSeen[ps.SessionID] {
			sessionSeen[ps.SessionID] = true
			sessions = append(sessions, ps)
		}
	}

	wanted := []string{}
	wantedSeen := make(map[string]bool)
	for _, ps := range sessions {
		for _, id := range ps.Participants() {
			if seen[id] || wantedSeen[id] {
				continue
			}
			wantedSeen[id] = true
			wanted = append(wanted, id)
		}
	}

	resolved, err := s.store.GetPlayersByIDs(ctx, wanted)
	if err != nil {
		return err
	}
	for _, p := range resolved {
		add(p)
	}

	return nil
}

type CreatePlayerRequest struct {
	UserID  string
	Name    string
	Initial string
	Avatar  string
	GroupID string
}

func (s *Service) CreatePlayer(ctx context.Context, req CreatePlayerRequest) (*domain.Player, error) {
	if req.Name == "" {
		return nil, errors.New(errors.CodeInvalidArgument, errors.WithMessagef("player name is required"))
	}

	id, err := uuid.NewV7()
	if err != nil {
		return nil, fmt.Errorf("generate player ID: %w", err)
	}

	initial := req.Initial
	if initial == "" {
		r, _ := utf8.DecodeRuneInString(req.Name)
		initial = string(unicode.ToUpper(r))
	}

	p := &domain.Player{
		PlayerID:   id.String(),
		Name:       req.Name,
		Initial:    initial,
		Avatar:     req.Avatar,
		UserID:     req.UserID,
		GroupID:    req.GroupID,
		IsActive:   true,
		CreateTime: time.Now().UTC(),
	}

	if err := s.store.InsertPlayer(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}

type GetPlayerRequest struct {
	PlayerID string
}

func (s *Service) GetPlayer(ctx context.Context, req GetPlayerRequest) (*domain.Player, error) {
	return s.store.GetPlayer(ctx, req.PlayerID)
}

type UpdatePlayerRequest struct {
	PlayerID string
	UserID   string

	// nil fields keep their current value.
	Name         *string
	Initial      *string
	Avatar       *string
	LinkedUserID *string
	GroupID      *string
	IsActive     *bool
}

// UpdatePlayer patches the player record. Only the owning user may write;
// clearing IsActive is the soft delete used everywhere else.
func (s *Service) UpdatePlayer(ctx context.Context, req UpdatePlayerRequest) (*domain.Player, error) {
	p, err := s.store.GetPlayer(ctx, req.PlayerID)
	if err != nil {
		return nil, err
	}
	if p.UserID != req.UserID {
		return nil, errors.New(errors.CodePermissionDenied, errors.WithMessagef("player belongs to another user"))
	}

	if req.Name != nil {
		p.Name = *req.Name
	}
	if req.Initial != nil {
		p.Initial = *req.Initial
	}
	if req.Avatar != nil {
		p.Avatar = *req.Avatar
	}
	if req.LinkedUserID != nil {
		p.LinkedUserID = *req.LinkedUserID
	}
	if req.GroupID != nil {
		p.GroupID = *req.GroupID
	}
	if req.IsActive != nil {
		p.IsActive = *req.IsActive
	}

	if err := s.store.UpdatePlayer(ctx, p); err != nil {
		return nil, err
	}

	return p, nil
}
