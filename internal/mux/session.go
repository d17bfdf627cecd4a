package mux

import (
	"errors"
	"net/http"
	"strings"

	"tripleboardpoker-server/internal/jwt"
	"tripleboardpoker-server/pkg/table"
)

type postSessionPayload struct {
	DisplayName string `json:"displayName"`
}

type sessionResponse struct {
	Player *table.Player `json:"player"`
	JWT    string        `json:"jwt"`
}

// postSession creates a new player and returns a signed JWT for it
func (m *Mux) postSession() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postSessionPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		displayName := strings.TrimSpace(pp.DisplayName)
		if len(displayName) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("display name must be at most 40 characters"))
			return
		}

		player := m.store.CreatePlayer(displayName)
		signedJWT, err := jwt.Sign(player.ID)
		if err != nil {
			writeJSONError(w, http.StatusInternalServerError, err)
			return
		}

		writeJSON(w, http.StatusCreated, sessionResponse{
			Player: player,
			JWT:    signedJWT,
		})
	}
}

func (m *Mux) getSession() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		writeJSON(w, http.StatusOK, player)
	})
}
