package lobby

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrEmptyName), errors.Is(err, ErrSelfAlert):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotOnline), errors.Is(err, ErrNoSuchRoom):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyInRoom), errors.Is(err, ErrInGame):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// GET /lobby/players
func (h *Handler) Players(c *gin.Context) {
	names, err := h.svc.Online(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"players": names})
}

// POST /lobby/alert  body: {to}
func (h *Handler) Alert(c *gin.Context) {
	var req AlertRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := h.svc.Alert(c.Request.Context(), c.GetString("player"), req.To); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// POST /lobby/join
func (h *Handler) Join(c *gin.Context) {
	room, queued, err := h.svc.Join(c.Request.Context(), c.GetString("player"))
	if err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	if queued {
		c.JSON(http.StatusOK, JoinResponse{Queued: true})
		return
	}
	c.JSON(http.StatusOK, JoinResponse{RoomID: room.ID, Players: room.Players})
}

// POST /lobby/cancel
func (h *Handler) Cancel(c *gin.Context) {
	if err := h.svc.Cancel(c.Request.Context(), c.GetString("player")); err != nil {
		c.JSON(statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}
