package api

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ericogr/pocket-arena/internal/constants"
	"github.com/ericogr/pocket-arena/internal/logging"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPingPeriod = 30 * time.Second
)

// checkOrigin lets through clients that send no Origin, pages served from
// the same host and the configured allowed origins.
func (h *BattleHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	if strings.EqualFold(u.Host, r.Host) {
		return true
	}
	return h.cfg.AllowsOrigin(origin)
}

// StreamEvents upgrades to a websocket and pushes every logged event as a
// JSON envelope, starting after ?since=N. The server closes the socket
// once the battle is over and all events were sent.
func (h *BattleHandler) StreamEvents(c *gin.Context) {
	id := c.Param(constants.ParamBattleID)
	who := identity(c)
	since, _ := strconv.Atoi(c.Query("since"))
	if since < 0 {
		since = 0
	}

	// Resolve access before upgrading so errors are plain HTTP responses.
	signal, cancel, err := h.manager.Subscribe(id, who)
	if err != nil {
		abortWithError(c, err)
		return
	}
	defer cancel()

	upgrader := websocket.Upgrader{CheckOrigin: h.checkOrigin}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: id})
		return
	}
	defer conn.Close()

	// Drain client frames so close and pong control messages are handled.
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingPeriod)
	defer ping.Stop()

	for {
		events, over, err := h.manager.Events(id, who, since)
		if err != nil {
			closeStream(conn, websocket.CloseGoingAway, constants.ErrBattleNotFound)
			return
		}
		for _, e := range events {
			_ = conn.SetWriteDeadline(time.Now().Add(streamWriteWait))
			if err := conn.WriteJSON(e); err != nil {
				return
			}
			since = e.Seq
		}
		if over {
			closeStream(conn, websocket.CloseNormalClosure, constants.ErrBattleOver)
			return
		}

		select {
		case <-signal:
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		case <-gone:
			return
		case <-c.Request.Context().Done():
			return
		}
	}
}

func closeStream(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	_ = conn.WriteControl(websocket.CloseMessage, msg, time.Now().Add(streamWriteWait))
}
