package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/tyoppar01/pokemon-battle-v3/internal/constants"
	"github.com/tyoppar01/pokemon-battle-v3/internal/logging"
	"github.com/tyoppar01/pokemon-battle-v3/internal/service"
)

const streamWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// StreamBattle upgrades to a websocket and pushes the battle view after
// every accepted action until the battle expires or the client leaves.
func (h *Handler) StreamBattle(c *gin.Context) {
	id := c.Param("id")
	views, cancel, err := h.arena.Subscribe(id)
	if err != nil {
		respondError(c, err, constants.ErrFailedFetchBattle)
		return
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		cancel()
		logging.Warn("websocket upgrade failed", logging.Fields{constants.LogFieldBattleID: id, "error": err.Error()})
		return
	}
	go readPump(conn, cancel)
	writePump(conn, views, cancel)
}

// readPump discards client messages; it only notices the client going away.
func readPump(conn *websocket.Conn, cancel func()) {
	defer cancel()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, views <-chan service.MatchView, cancel func()) {
	defer func() {
		cancel()
		conn.Close()
	}()
	for v := range views {
		_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
		if err := conn.WriteJSON(v); err != nil {
			return
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "battle closed"))
}
