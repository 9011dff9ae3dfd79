// internal/handlers/ws.go
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/fanzlabs/commissions-backend/internal/utils"
	"github.com/fanzlabs/commissions-backend/internal/ws"
)

type WSHandler struct {
	hub      *ws.Hub
	upgrader websocket.Upgrader
}

func NewWSHandler(hub *ws.Hub) *WSHandler {
	return &WSHandler{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Origin is enforced by the CORS layer on the upgrade request.
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Connect serves GET /ws?token=... Browsers cannot set an Authorization
// header on a WebSocket handshake, so the access token travels as a query
// parameter instead.
func (h *WSHandler) Connect(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		utils.UnauthorizedResponse(c, "")
		return
	}

	claims, err := utils.ValidateJWT(rawToken)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}
	userID, err := uuid.Parse(claims.UserID)
	if err != nil {
		utils.UnauthorizedResponse(c, "")
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logrus.WithError(err).Warn("websocket upgrade failed")
		return
	}

	client := ws.NewClient(conn, h.hub, userID)
	h.hub.Register(client)
	client.Run(c.Request.Context())
}
