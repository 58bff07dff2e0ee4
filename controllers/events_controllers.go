package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/danuarta/property-console/realtime"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// EventsHandler -> websocket feed of console events for the connected
// account
func EventsHandler(c *gin.Context) {
	v, exists := c.Get("account_id")
	if !exists {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}
	accountID, ok := v.(uint)
	if !ok || accountID == 0 {
		c.AbortWithStatus(http.StatusUnauthorized)
		return
	}

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	realtime.RegisterClient(ws, accountID)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	realtime.UnregisterClient(ws)
}
