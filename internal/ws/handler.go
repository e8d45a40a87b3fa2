package ws

import (
	"log/slog"
	"net/http"

	"github.com/coder/websocket"

	"github.com/rgoulding/notekeep/internal/auth"
)

// Handler returns an HTTP handler that upgrades connections to WebSocket
// and runs them as Hub clients. It must sit behind the auth gate: the
// subscriber's identity comes from the request context.
func Handler(hub *Hub, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, ok := auth.UserIDFromContext(r.Context())
		if !ok {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			logger.Warn("websocket accept", "error", err)
			return
		}

		client := NewClient(hub, conn, userID)
		client.Run(r.Context())
	}
}
