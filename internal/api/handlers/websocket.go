package handlers

import (
	"net/http"

	"github.com/dom/league-matchmaker/internal/api/middleware"
	"github.com/dom/league-matchmaker/internal/websocket"
	ws "github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = ws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins for development
	},
}

type WebSocketHandler struct {
	hub *websocket.Hub
}

func NewWebSocketHandler(hub *websocket.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// Handle upgrades the request and subscribes it to the match feed
func (h *WebSocketHandler) Handle(w http.ResponseWriter, r *http.Request) {
	subject, ok := middleware.GetSubject(r.Context())
	if !ok {
		subject = "anonymous"
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := websocket.NewClient(h.hub, conn, subject)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
