package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cbodonnell/monopoly/pkg/api/middleware"
	"github.com/cbodonnell/monopoly/pkg/log"
	"github.com/cbodonnell/monopoly/pkg/repositories"
	"github.com/cbodonnell/monopoly/pkg/repositories/models"
	"github.com/gorilla/mux"
)

func HandleListGames(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		games, err := repository.ListGames(r.Context())
		if err != nil {
			log.Error("failed to list games: %v", err)
			http.Error(w, "Failed to list games", http.StatusInternalServerError)
			return
		}
		writeJSON(w, games)
	}
}

func HandleGetGame() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := savedGameFromContext(w, r)
		if !ok {
			return
		}
		writeJSON(w, game)
	}
}

func HandleGetStandings() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		game, ok := savedGameFromContext(w, r)
		if !ok {
			return
		}
		writeJSON(w, game.Snapshot.Standings())
	}
}

func HandleListEvents(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := mux.Vars(r)["gameID"]
		events, err := repository.ListEvents(r.Context(), gameID)
		if err != nil {
			log.Error("failed to list events for game %s: %v", gameID, err)
			http.Error(w, "Failed to list events", http.StatusInternalServerError)
			return
		}
		writeJSON(w, events)
	}
}

func HandleDeleteGame(repository repositories.Repository) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		gameID := mux.Vars(r)["gameID"]
		if err := repository.DeleteGame(r.Context(), gameID); err != nil {
			if repositories.IsNotFound(err) {
				http.Error(w, "Game not found", http.StatusNotFound)
				return
			}
			log.Error("failed to delete game %s: %v", gameID, err)
			http.Error(w, "Failed to delete game", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func savedGameFromContext(w http.ResponseWriter, r *http.Request) (*models.SavedGame, bool) {
	game, ok := r.Context().Value(middleware.SavedGameContextKey).(*models.SavedGame)
	if !ok {
		log.Error("failed to get saved game from context")
		http.Error(w, "Failed to get saved game from context", http.StatusInternalServerError)
		return nil, false
	}
	return game, true
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to encode response: %v", err)
		http.Error(w, "Failed to encode response", http.StatusInternalServerError)
		return
	}
}
