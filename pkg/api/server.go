package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/cbodonnell/monopoly/pkg/api/handlers"
	"github.com/cbodonnell/monopoly/pkg/api/middleware"
	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

type APIServer struct {
	server *http.Server
	tls    *TLSConfig
}

type TLSConfig struct {
	CertFile string
	KeyFile  string
}

type NewAPIServerOptions struct {
	Port int
	// AllowedOrigins are the origins allowed by CORS. Empty allows any origin.
	AllowedOrigins []string
	TLS            *TLSConfig
	Repository     repositories.Repository
	// WatchInterval is how often event watchers poll the journal. Defaults to one second.
	WatchInterval time.Duration
}

// NewAPIServer creates a new http.Server for browsing saved games
func NewAPIServer(opts NewAPIServerOptions) *APIServer {
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", opts.Port),
		Handler: NewRouter(opts),
	}
	return &APIServer{
		server: server,
		tls:    opts.TLS,
	}
}

// NewRouter creates the handler serving the API routes.
func NewRouter(opts NewAPIServerOptions) http.Handler {
	savedGame := middleware.NewSavedGameMiddleware(opts.Repository)
	watchInterval := opts.WatchInterval
	if watchInterval <= 0 {
		watchInterval = time.Second
	}

	r := mux.NewRouter()
	r.Use(middleware.Logging)
	r.Handle("/games", handlers.HandleListGames(opts.Repository)).Methods(http.MethodGet)
	r.Handle("/games/{gameID}", savedGame(handlers.HandleGetGame())).Methods(http.MethodGet)
	r.Handle("/games/{gameID}", handlers.HandleDeleteGame(opts.Repository)).Methods(http.MethodDelete)
	r.Handle("/games/{gameID}/standings", savedGame(handlers.HandleGetStandings())).Methods(http.MethodGet)
	r.Handle("/games/{gameID}/events", savedGame(handlers.HandleListEvents(opts.Repository))).Methods(http.MethodGet)
	r.Handle("/games/{gameID}/events/watch", savedGame(handlers.HandleWatchEvents(opts.Repository, opts.AllowedOrigins, watchInterval))).Methods(http.MethodGet)

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodDelete},
	})
	return c.Handler(r)
}

// Start starts the APIServer
func (s *APIServer) Start() {
	var listenAndServe func() error
	if s.tls != nil {
		log.Info("API server listening on %s with TLS", s.server.Addr)
		listenAndServe = func() error {
			return s.server.ListenAndServeTLS(s.tls.CertFile, s.tls.KeyFile)
		}
	} else {
		log.Info("API server listening on %s", s.server.Addr)
		listenAndServe = s.server.ListenAndServe
	}
	if err := listenAndServe(); err != nil {
		if errors.Is(err, http.ErrServerClosed) {
			log.Info("API server closed")
			return
		}
		log.Error("API server error: %v", err)
	}
}

// Stop stops the APIServer
func (s *APIServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
