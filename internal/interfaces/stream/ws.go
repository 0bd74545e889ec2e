package stream

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/suimfx/suimfx-official/internal/application/service"
)

const writeTimeout = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Browser clients connect from app origins we do not control.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler serves the push stream: a full snapshot on connect, then
// per-tick updates and periodic snapshots from the hub.
type Handler struct {
	hub *service.Hub
}

func NewHandler(hub *service.Hub) *Handler {
	return &Handler{hub: hub}
}

func (h *Handler) Register(r *gin.Engine) {
	r.GET("/ws", h.serve)
}

func (h *Handler) serve(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Debug().Err(err).Msg("ws upgrade failed")
		return
	}

	sub := h.hub.Subscribe()
	defer h.hub.Unsubscribe(sub)
	defer conn.Close()

	// The client renders from the snapshot immediately, before the first
	// broadcast interval fires.
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteJSON(h.hub.Snapshot()); err != nil {
		return
	}

	// Reader exists only to detect the peer going away.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-done:
			return
		case msg, ok := <-sub.C:
			if !ok {
				return
			}
			_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(msg); err != nil {
				return
			}
		}
	}
}
