// Package control exposes the read-request triggers over HTTP, standing in
// for the hotkeys of a desktop frontend.
package control

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/eleven-am/battle-narrator/internal/hp"
	"github.com/eleven-am/battle-narrator/internal/reader"
	"github.com/eleven-am/battle-narrator/internal/team"
)

// Handler arms the on-demand readers. Each endpoint only sets a request
// flag; the poll loop picks it up on the next frame.
type Handler struct {
	opponentTeam *team.Tracker
	opponentHp   *hp.Tracker[float64]
	ally         *reader.AllyRouter
	moves        *reader.MoveFlow
	cursors      *reader.CursorFlow
	screenshots  *reader.Screenshots
	logger       *slog.Logger
}

func NewHandler(
	opponentTeam *team.Tracker,
	opponentHp *hp.Tracker[float64],
	ally *reader.AllyRouter,
	moves *reader.MoveFlow,
	cursors *reader.CursorFlow,
	screenshots *reader.Screenshots,
	logger *slog.Logger,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		opponentTeam: opponentTeam,
		opponentHp:   opponentHp,
		ally:         ally,
		moves:        moves,
		cursors:      cursors,
		screenshots:  screenshots,
		logger:       logger.With("handler", "control"),
	}
}

func (h *Handler) RegisterRoutes(g *echo.Group) {
	g.POST("/opponent-team", h.requestOpponentTeam)
	g.POST("/opponent-hp", h.requestOpponentHp)
	g.POST("/ally", h.requestAlly)
	g.POST("/moves", h.requestMoves)
	g.POST("/cursor", h.requestCursor)
	g.POST("/screenshot", h.requestScreenshot)
}

func (h *Handler) requestOpponentTeam(c echo.Context) error {
	withTypes := c.QueryParam("with_types") == "true"
	h.logger.Debug("opponent team requested", "with_types", withTypes)
	h.opponentTeam.Request(withTypes)
	return c.NoContent(http.StatusAccepted)
}

func (h *Handler) requestOpponentHp(c echo.Context) error {
	h.opponentHp.Request()
	return c.NoContent(http.StatusAccepted)
}

func (h *Handler) requestAlly(c echo.Context) error {
	h.ally.Request()
	return c.NoContent(http.StatusAccepted)
}

func (h *Handler) requestMoves(c echo.Context) error {
	h.moves.Request()
	return c.NoContent(http.StatusAccepted)
}

func (h *Handler) requestCursor(c echo.Context) error {
	h.cursors.Request()
	return c.NoContent(http.StatusAccepted)
}

func (h *Handler) requestScreenshot(c echo.Context) error {
	h.screenshots.RequestSaving()
	return c.NoContent(http.StatusAccepted)
}
