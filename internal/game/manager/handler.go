package manager

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	mgr *GameManager
}

func NewHandler(mgr *GameManager) *Handler {
	return &Handler{mgr: mgr}
}

// POST /games/bot
func (h *Handler) StartBot(c *gin.Context) {
	id, err := h.mgr.StartBotGame(c.GetString("player"))
	if errors.Is(err, ErrAlreadyPlaying) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"session": id})
}

// GET /games/current  断线重连后取回当前局面
func (h *Handler) Current(c *gin.Context) {
	player := c.GetString("player")
	s, ok := h.mgr.SessionOf(player)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "not in a game"})
		return
	}
	st, ok := s.View(player)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "game over"})
		return
	}
	c.JSON(http.StatusOK, st)
}
