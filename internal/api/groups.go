package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/eslikci-sub001/internal/groups"
	"github.com/selimdilsadercan/eslikci-sub001/internal/stats"
)

func (a *API) createGroup(c *gin.Context) {
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	g, err := a.groups.CreateGroup(c.Request.Context(), groups.CreateGroupRequest{
		UserID:      u.UserID,
		Name:        req.Name,
		Description: req.Description,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toGroup(*g))
}

func (a *API) getGroup(c *gin.Context) {
	g, err := a.groups.GetGroup(c.Request.Context(), groups.GetGroupRequest{
		GroupID: c.Param("id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toGroup(*g))
}

func (a *API) listGroups(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	list, err := a.groups.ListGroups(c.Request.Context(), groups.ListGroupsRequest{
		UserID: u.UserID,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	out := make([]Group, 0, len(list))
	for _, g := range list {
		out = append(out, toGroup(g))
	}

	c.JSON(http.StatusOK, gin.H{"groups": out})
}

// getGroupStats ranks the group's games by play count and participants by
// wins per game. An unknown group returns empty rankings.
func (a *API) getGroupStats(c *gin.Context) {
	gs, err := a.stats.GroupStats(c.Request.Context(), stats.GroupStatsRequest{
		GroupID: c.Param("id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	out := GroupStats{
		MostPlayedGames: make([]GamePlayCount, 0, len(gs.MostPlayedGames)),
		WinnersByGame:   make(map[string][]PlayerWinCount, len(gs.WinnersByGame)),
	}
	for _, g := range gs.MostPlayedGames {
		out.MostPlayedGames = append(out.MostPlayedGames, GamePlayCount{GameID: g.GameID, Count: g.Count})
	}
	for gameID, wins := range gs.WinnersByGame {
		entries := make([]PlayerWinCount, 0, len(wins))
		for _, w := range wins {
			entries = append(entries, PlayerWinCount{PlayerID: w.PlayerID, Wins: w.Wins})
		}
		out.WinnersByGame[gameID] = entries
	}

	c.JSON(http.StatusOK, out)
}
