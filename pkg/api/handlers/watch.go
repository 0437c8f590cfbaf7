package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const writeTimeout = 5 * time.Second

// newUpgrader accepts upgrades from the allowed origins. An empty list or
// "*" allows any origin. Browsers do not apply CORS to WebSocket handshakes.
func newUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			if origin == "" || len(allowedOrigins) == 0 {
				return true
			}
			for _, allowed := range allowedOrigins {
				if allowed == "*" || strings.EqualFold(allowed, origin) {
					return true
				}
			}
			log.Warn("Rejected WebSocket upgrade from origin %s", origin)
			return false
		},
	}
}

// HandleWatchEvents upgrades the request to a WebSocket and streams the
// events journaled for a game as JSON text messages, oldest first. The
// journal is polled every pollInterval until the client goes away.
func HandleWatchEvents(repository repositories.Repository, allowedOrigins []string, pollInterval time.Duration) http.HandlerFunc {
	upgrader := newUpgrader(allowedOrigins)
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := mux.Vars(r)["gameID"]
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Error("failed to upgrade to WebSocket: %v", err)
			return
		}
		defer conn.Close()
		log.Debug("Watching game %s for %s", gameID, conn.RemoteAddr().String())

		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()
		// the client never sends anything, reading only detects the close
		go func() {
			defer cancel()
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ticker := time.NewTicker(pollInterval)
		defer ticker.Stop()

		sent := 0
		for {
			events, err := repository.ListEvents(ctx, gameID)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				log.Error("failed to list events for game %s: %v", gameID, err)
				closeWS(conn, websocket.CloseInternalServerErr, "failed to list events")
				return
			}
			if len(events) < sent {
				closeWS(conn, websocket.CloseNormalClosure, "game deleted")
				return
			}
			for _, event := range events[sent:] {
				if err := writeEvent(conn, event); err != nil {
					log.Debug("Stopped watching game %s: %v", gameID, err)
					return
				}
			}
			sent = len(events)

			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
			}
		}
	}
}

func writeEvent(conn *websocket.Conn, event *models.GameEvent) error {
	b, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %v", err)
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
	if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
		return fmt.Errorf("failed to write event: %v", err)
	}
	return nil
}

func closeWS(conn *websocket.Conn, code int, reason string) {
	_ = conn.WriteControl(websocket.CloseMessage, websocket.FormatCloseMessage(code, reason), time.Now().Add(time.Second))
}
