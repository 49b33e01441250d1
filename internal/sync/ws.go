package sync

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// clients only ever send close frames
const maxInboundMessage = 512

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// WSHandler upgrades the request and keeps the socket subscribed to hub
// until the peer goes away. Incoming messages are discarded.
func WSHandler(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			hub.logger.Printf("[ws] upgrade %s: %v", c.ClientIP(), err)
			return
		}
		ws.SetReadLimit(maxInboundMessage)

		hub.AddWS(ws)
		hub.logger.Printf("[ws] %s subscribed (%d websocket clients)", c.ClientIP(), hub.Stats().WSClients)

		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				break
			}
		}

		hub.RemoveWS(ws)
		hub.logger.Printf("[ws] %s unsubscribed", c.ClientIP())
	}
}
