// Package api wires the HTTP and websocket routes.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/victornm/thinkfast/internal/auth"
	"github.com/victornm/thinkfast/internal/credit"
	"github.com/victornm/thinkfast/internal/errors"
	"github.com/victornm/thinkfast/internal/game"
	"github.com/victornm/thinkfast/internal/leaderboard"
)

type Config struct {
	Engine      *gin.Engine
	Game        *game.Manager
	Credits     *credit.Service
	Leaderboard *leaderboard.Service
	Auth        *auth.Manager
}

type API struct {
	game        *game.Manager
	credits     *credit.Service
	leaderboard *leaderboard.Service
	auth        *auth.Manager
}

func New(c Config) *API {
	a := &API{
		game:        c.Game,
		credits:     c.Credits,
		leaderboard: c.Leaderboard,
		auth:        c.Auth,
	}

	e := c.Engine
	e.GET("/", a.join)
	e.GET("/ws", a.ws)
	e.GET("/game/credits", a.listCredits)
	e.GET("/game/online-players", a.onlinePlayers)
	e.GET("/game/leaderboard", a.topWinners)
	e.GET("/healthz", a.healthz)

	return a
}

// join issues a fresh identity ticket and returns it together with the
// current question, so a client can render the game and then dial /ws.
func (a *API) join(c *gin.Context) {
	token, clientID, err := a.auth.Issue(time.Now())
	if err != nil {
		abortWithError(c, err)
		return
	}

	cur := a.game.CurrentQuestion()
	c.JSON(http.StatusOK, gin.H{
		"client_id":   clientID,
		"token":       token,
		"question_id": cur.Question.QuestionID,
		"question":    cur.Question.Question,
		"options":     cur.Question.Options,
		"answer":      cur.Question.Answer,
	})
}

// ws authenticates the ticket and hands the connection to the game manager.
// An invalid or missing ticket rejects the handshake before registration.
func (a *API) ws(c *gin.Context) {
	clientID, err := a.auth.Verify(c.Query("token"))
	if err != nil {
		abortWithError(c, err)
		return
	}

	if err := a.game.ServeWS(c.Writer, c.Request, clientID); err != nil {
		// Upgrade failed; gorilla has already written the HTTP response.
		slog.ErrorContext(c.Request.Context(), "api: websocket handshake failed",
			"client_id", clientID,
			"error", err,
		)
	}
}

func (a *API) listCredits(c *gin.Context) {
	credits, err := a.credits.List(c.Request.Context())
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, credits)
}

func (a *API) onlinePlayers(c *gin.Context) {
	c.JSON(http.StatusOK, a.game.OnlinePlayers())
}

func (a *API) topWinners(c *gin.Context) {
	entries, err := a.leaderboard.TopWinners(c.Request.Context(), leaderboard.TopWinnersRequest{})
	if err != nil {
		abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (a *API) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func abortWithError(c *gin.Context, err error) {
	e := errors.Convert(err)
	if e.Code == errors.CodeInternal {
		slog.ErrorContext(c.Request.Context(), "api: request failed", "error", err)
	}
	c.AbortWithStatusJSON(e.HTTPStatusCode(), e)
}
