// Package api exposes the HTTP JSON surface and pushes leaderboard
// notifications to redis pub/sub.
package api

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/selimdilsadercan/eslikci-sub001/internal/auth"
	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
	"github.com/selimdilsadercan/eslikci-sub001/internal/event"
	"github.com/selimdilsadercan/eslikci-sub001/internal/groups"
	"github.com/selimdilsadercan/eslikci-sub001/internal/leaderboard"
	"github.com/selimdilsadercan/eslikci-sub001/internal/players"
	"github.com/selimdilsadercan/eslikci-sub001/internal/session"
	"github.com/selimdilsadercan/eslikci-sub001/internal/stats"
	"github.com/selimdilsadercan/eslikci-sub001/internal/users"
)

type Config struct {
	Engine       *gin.Engine
	EventBus     *event.Bus
	AuthSecret   string
	Users        *users.Service
	Players      *players.Service
	Groups       *groups.Service
	Session      *session.Service
	Stats        *stats.Service
	Leaderboard  *leaderboard.Service
	Redis        Redis
	PubsubPrefix string
}

type Redis interface {
	Publish(ctx context.Context, channel string, message any) *redis.IntCmd
}

type API struct {
	users       *users.Service
	players     *players.Service
	groups      *groups.Service
	session     *session.Service
	stats       *stats.Service
	leaderboard *leaderboard.Service

	redis  Redis
	prefix string
}

func New(c Config) *API {
	a := &API{
		users:       c.Users,
		players:     c.Players,
		groups:      c.Groups,
		session:     c.Session,
		stats:       c.Stats,
		leaderboard: c.Leaderboard,
		redis:       c.Redis,
		prefix:      c.PubsubPrefix,
	}

	v1 := c.Engine.Group("/v1")
	v1.GET("/players/:id", a.getPlayer)
	v1.GET("/groups/:id", a.getGroup)
	v1.GET("/groups/:id/stats", a.getGroupStats)
	v1.GET("/sessions/:id", a.getSession)
	v1.GET("/sessions/:id/winners", a.getWinners)
	v1.GET("/sessions/:id/leaderboard", a.getLeaderboard)

	authed := v1.Group("", auth.Middleware(c.AuthSecret))
	authed.POST("/users/sync", a.syncUser)
	authed.GET("/users/me", a.getMe)
	authed.PATCH("/users/me", a.updateMe)
	authed.GET("/players", a.listPlayers)
	authed.POST("/players", a.createPlayer)
	authed.PATCH("/players/:id", a.updatePlayer)
	authed.GET("/groups", a.listGroups)
	authed.POST("/groups", a.createGroup)
	authed.GET("/sessions", a.listSessions)
	authed.POST("/sessions", a.createSession)
	authed.POST("/sessions/:id/rounds", a.addRoundScores)
	authed.PUT("/sessions/:id/special-points", a.setSpecialPoints)
	authed.POST("/sessions/:id/close", a.closeSession)

	c.EventBus.Subscribe(domain.EventNameLeaderboardUpdated, func(ctx context.Context, e event.Event) error {
		return a.PublishLeaderboardUpdated(ctx, e.(domain.EventLeaderboardUpdated))
	})

	return a
}

// currentUser resolves the authenticated subject to its account. Fails the
// request when the account has not been synced yet.
func (a *API) currentUser(c *gin.Context) (*domain.User, bool) {
	u, err := a.users.GetUser(c.Request.Context(), users.GetUserRequest{Subject: auth.Subject(c)})
	if err != nil {
		abortError(c, err)
		return nil, false
	}
	return u, true
}

func abortError(c *gin.Context, err error) {
	e := errors.Convert(err)
	c.AbortWithStatusJSON(e.HTTPStatusCode(), gin.H{
		"code":    int(e.Code),
		"message": e.Message,
	})
}
