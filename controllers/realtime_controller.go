package controllers

import (
	"net/http"
	"time"

	"nutrilog/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// RealtimeController streams daily log updates over a websocket. It is a
// thin transport on top of the store's subscription interface; the hub
// itself knows nothing about websockets.
type RealtimeController struct {
	logs *services.DailyLogService
}

func NewRealtimeController(logs *services.DailyLogService) *RealtimeController {
	return &RealtimeController{logs: logs}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // tighten behind a proxy if needed
}

// GET /ws/logs/:date pushes the full aggregate on every mutation of that
// user-day until the client disconnects.
func (rc *RealtimeController) LogWS(c *gin.Context) {
	date, ok := parseDateParam(c)
	if !ok {
		return
	}
	uid := c.GetUint("userID")

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	updates, cancel := rc.logs.Subscribe(uid, date)
	defer cancel()

	done := make(chan struct{})

	// read loop ends on client close/error
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	// ping keeps the connection alive through some proxies
	ping := time.NewTicker(25 * time.Second)
	defer ping.Stop()
	defer conn.Close()

	for {
		select {
		case dl, open := <-updates:
			if !open {
				return
			}
			if err := conn.WriteJSON(dl); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}
