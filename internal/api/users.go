package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/eslikci-sub001/internal/auth"
	"github.com/selimdilsadercan/eslikci-sub001/internal/errors"
	"github.com/selimdilsadercan/eslikci-sub001/internal/players"
	"github.com/selimdilsadercan/eslikci-sub001/internal/users"
)

func (a *API) syncUser(c *gin.Context) {
	var req struct {
		Name string `json:"name"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, err := a.users.SyncUser(c.Request.Context(), users.SyncUserRequest{
		Subject: auth.Subject(c),
		Name:    req.Name,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUser(u))
}

func (a *API) getMe(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, toUser(u))
}

func (a *API) updateMe(c *gin.Context) {
	var req struct {
		Name     *string `json:"name"`
		PlayerID *string `json:"player_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	if req.PlayerID != nil && *req.PlayerID != "" {
		// The self-player binding must point at an existing record.
		if _, err := a.players.GetPlayer(c.Request.Context(), players.GetPlayerRequest{PlayerID: *req.PlayerID}); err != nil {
			abortError(c, errors.New(errors.CodeInvalidArgument,
				errors.WithMessagef("player not found: %s", *req.PlayerID),
				errors.WithCause(err),
			))
			return
		}
	}

	u, err := a.users.UpdateUser(c.Request.Context(), users.UpdateUserRequest{
		Subject:  auth.Subject(c),
		Name:     req.Name,
		PlayerID: req.PlayerID,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toUser(u))
}
