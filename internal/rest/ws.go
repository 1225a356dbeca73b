package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/pulseapp/pulse/domain"
	"github.com/pulseapp/pulse/internal/realtime"
)

type wsHandler struct {
	registry domain.ConnectionRegistry
	upgrader websocket.Upgrader
}

func NewWSHandler(registry domain.ConnectionRegistry) *wsHandler {
	return &wsHandler{
		registry: registry,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// origin policy is CORS middleware territory
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve upgrades the request and pumps the connection until the client
// disconnects. Runs on the raw request context: no server-side idle timeout.
func (h *wsHandler) Serve(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.Warnf("websocket upgrade failed for user %d: %v", userID, err)
		return
	}

	client := realtime.NewClient(userID, conn, h.registry)
	client.Serve()
}
