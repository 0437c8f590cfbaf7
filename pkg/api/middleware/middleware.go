package middleware

import (
	"bufio"
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/gorilla/mux"
)

type ContextKey int

const (
	// SavedGameContextKey is the key used to store the saved game in the request context
	SavedGameContextKey ContextKey = iota
)

// NewSavedGameMiddleware loads the saved game named by the gameID route
// variable into the request context. Unknown games get a 404.
func NewSavedGameMiddleware(repository repositories.Repository) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gameID := mux.Vars(r)["gameID"]
			game, err := repository.LoadGame(r.Context(), gameID)
			if err != nil {
				if repositories.IsNotFound(err) {
					http.Error(w, "game not found", http.StatusNotFound)
					return
				}
				log.Error("failed to load game %s: %v", gameID, err)
				http.Error(w, "failed to load game", http.StatusInternalServerError)
				return
			}

			ctx := context.WithValue(r.Context(), SavedGameContextKey, game)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Hijack lets websocket handlers take over the connection.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hijacker, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return hijacker.Hijack()
}

// Logging logs every request at debug level.
func Logging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		log.Debug("%s %s %d %s", r.Method, r.URL.Path, rec.status, time.Since(start))
	})
}
