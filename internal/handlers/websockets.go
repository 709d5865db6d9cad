package handlers

import (
	"net/http"

	"grain_dryer/internal/stream"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// wsConnect upgrades the connection and hands it to the hub. The hub
// sends the latest stored reading immediately on register, so a client
// joining mid-stream is never blank; after that it receives every
// broadcast plus the periodic re-send of the latest snapshot.
func (h *Handler) wsConnect(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}

	client := stream.NewClient(h.hub, conn, h.log)

	// The write pump must be draining before the register-time snapshot
	// is queued.
	go client.WritePump()
	h.hub.Register(client)
	go client.ReadPump()
}
