package websocket

import (
	"net/http"

	"Shkuba/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// GET /ws  (需带 JWT，middleware 注入 player)
func ServeWS(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		player := c.GetString("player")
		if player == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthenticated"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			utils.Log.Warn("websocket upgrade failed", "player", player, "err", err)
			return
		}

		client := &Client{
			Player: player,
			Conn:   conn,
			Send:   make(chan OutgoingMessage, sendBuffer),
			Hub:    hub,
		}

		hub.enqueue(hub.register, client)

		go client.writePump()
		go client.readPump()
	}
}
