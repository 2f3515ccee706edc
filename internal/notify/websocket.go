package notify

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
)

const writeTimeout = 10 * time.Second

// ServeSession upgrades the request to a WebSocket and streams the
// session's updates until the client disconnects or the session ends.
func ServeSession(w http.ResponseWriter, r *http.Request, hub *Hub, sessionID string) {
	conn, err := websocket.Accept(w, r, nil)
	if err != nil {
		slog.Warn("websocket accept failed", "session_id", sessionID, "error", err)
		return
	}
	defer conn.CloseNow()

	updates, cancel := hub.Subscribe(sessionID)
	defer cancel()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusGoingAway, "server shutting down")
			return
		case update, ok := <-updates:
			if !ok {
				conn.Close(websocket.StatusNormalClosure, "stream closed")
				return
			}
			writeCtx, cancelWrite := context.WithTimeout(ctx, writeTimeout)
			err := wsjson.Write(writeCtx, conn, update)
			cancelWrite()
			if err != nil {
				slog.Debug("websocket write failed", "session_id", sessionID, "error", err)
				return
			}
			if update.Type == UpdateSessionEnded {
				conn.Close(websocket.StatusNormalClosure, "session ended")
				return
			}
		}
	}
}
