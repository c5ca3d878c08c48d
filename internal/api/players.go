package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/eslikci-sub001/internal/auth"
	"github.com/selimdilsadercan/eslikci-sub001/internal/players"
)

// listPlayers returns every player visible to the caller: owned, linked,
// reciprocally linked, and co-participants from past sessions.
func (a *API) listPlayers(c *gin.Context) {
	list, err := a.players.GetPlayers(c.Request.Context(), players.GetPlayersRequest{
		Subject: auth.Subject(c),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	out := make([]Player, 0, len(list))
	for _, p := range list {
		out = append(out, toPlayer(p))
	}

	c.JSON(http.StatusOK, gin.H{"players": out})
}

func (a *API) createPlayer(c *gin.Context) {
	var req struct {
		Name    string `json:"name"`
		Initial string `json:"initial"`
		Avatar  string `json:"avatar"`
		GroupID string `json:"group_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	p, err := a.players.CreatePlayer(c.Request.Context(), players.CreatePlayerRequest{
		UserID:  u.UserID,
		Name:    req.Name,
		Initial: req.Initial,
		Avatar:  req.Avatar,
		GroupID: req.GroupID,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toPlayer(*p))
}

func (a *API) getPlayer(c *gin.Context) {
	p, err := a.players.GetPlayer(c.Request.Context(), players.GetPlayerRequest{
		PlayerID: c.Param("id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPlayer(*p))
}

func (a *API) updatePlayer(c *gin.Context) {
	var req struct {
		Name         *string `json:"name"`
		Initial      *string `json:"initial"`
		Avatar       *string `json:"avatar"`
		LinkedUserID *string `json:"linked_user_id"`
		GroupID      *string `json:"group_id"`
		IsActive     *bool   `json:"is_active"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	p, err := a.players.UpdatePlayer(c.Request.Context(), players.UpdatePlayerRequest{
		PlayerID:     c.Param("id"),
		UserID:       u.UserID,
		Name:         req.Name,
		Initial:      req.Initial,
		Avatar:       req.Avatar,
		LinkedUserID: req.LinkedUserID,
		GroupID:      req.GroupID,
		IsActive:     req.IsActive,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toPlayer(*p))
}
