package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/selimdilsadercan/eslikci-sub001/internal/domain"
	"github.com/selimdilsadercan/eslikci-sub001/internal/leaderboard"
	"github.com/selimdilsadercan/eslikci-sub001/internal/session"
)

func (a *API) createSession(c *gin.Context) {
	var req struct {
		GameID    string   `json:"game_id"`
		PlayerIDs []string `json:"players"`
		RedTeam   []string `json:"red_team"`
		BlueTeam  []string `json:"blue_team"`
		GroupID   string   `json:"group_id"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	ps, err := a.session.CreateSession(c.Request.Context(), session.CreateSessionRequest{
		UserID:    u.UserID,
		GameID:    req.GameID,
		PlayerIDs: req.PlayerIDs,
		RedTeam:   req.RedTeam,
		BlueTeam:  req.BlueTeam,
		GroupID:   req.GroupID,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSession(ps))
}

func (a *API) getSession(c *gin.Context) {
	ps, err := a.session.GetSession(c.Request.Context(), session.GetSessionRequest{
		SessionID: c.Param("id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSession(ps))
}

func (a *API) listSessions(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	list, err := a.session.ListSessions(c.Request.Context(), session.ListSessionsRequest{
		UserID:  u.UserID,
		GroupID: c.Query("group_id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	out := make([]Session, 0, len(list))
	for i := range list {
		out = append(out, toSession(&list[i]))
	}

	c.JSON(http.StatusOK, gin.H{"sessions": out})
}

// addRoundScores appends one round. Cells arrive as numbers, arrays of
// numbers, or null, one per participant.
func (a *API) addRoundScores(c *gin.Context) {
	var req struct {
		Cells []domain.Cell `json:"cells"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	ps, err := a.session.AddRoundScores(c.Request.Context(), session.AddRoundScoresRequest{
		SessionID: c.Param("id"),
		UserID:    u.UserID,
		Cells:     req.Cells,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSession(ps))
}

func (a *API) setSpecialPoints(c *gin.Context) {
	var req struct {
		Points map[string]domain.SpecialPoints `json:"points"`
	}
	if err := c.BindJSON(&req); err != nil {
		return
	}

	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	ps, err := a.session.SetSpecialPoints(c.Request.Context(), session.SetSpecialPointsRequest{
		SessionID: c.Param("id"),
		UserID:    u.UserID,
		Points:    req.Points,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSession(ps))
}

func (a *API) getWinners(c *gin.Context) {
	winners, err := a.session.Winners(c.Request.Context(), session.WinnersRequest{
		SessionID: c.Param("id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"winners": winners})
}

func (a *API) getLeaderboard(c *gin.Context) {
	l, err := a.leaderboard.GetLeaderboard(c.Request.Context(), leaderboard.GetLeaderboardRequest{
		SessionID: c.Param("id"),
	})
	if err != nil {
		abortError(c, err)
		return
	}

	out := Leaderboard{
		SessionID: l.SessionID,
		Entries:   make([]LeaderboardEntry, 0, len(l.Entries)),
	}
	for _, e := range l.Entries {
		out.Entries = append(out.Entries, LeaderboardEntry{
			PlayerID: e.PlayerID,
			Score:    e.Score,
		})
	}

	c.JSON(http.StatusOK, out)
}

func (a *API) closeSession(c *gin.Context) {
	u, ok := a.currentUser(c)
	if !ok {
		return
	}

	ps, err := a.session.CloseSession(c.Request.Context(), session.CloseSessionRequest{
		SessionID: c.Param("id"),
		UserID:    u.UserID,
	})
	if err != nil {
		abortError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSession(ps))
}
