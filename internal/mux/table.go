package mux

import (
	"context"
	"errors"
	"net/http"
	"regexp"

	"github.com/gorilla/mux"

	"tripleboardpoker-server/pkg/playable/poker/tripleboard"
	"tripleboardpoker-server/pkg/table"
)

func (m *Mux) getTable() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start, rows, err := parsePaginationOptions(r)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		tables := m.store.Tables()
		if start >= int64(len(tables)) {
			tables = tables[:0]
		} else {
			tables = tables[start:]
			if rows < len(tables) {
				tables = tables[:rows]
			}
		}

		writeJSON(w, http.StatusOK, tables)
	}
}

type postTablePayload struct {
	Name string `json:"name"`

	// zero values fall back to the server defaults
	SmallBlind int `json:"smallBlind"`
	BigBlind   int `json:"bigBlind"`
	BetMin     int `json:"betMin"`
	BetMax     int `json:"betMax"`
	Seats      int `json:"seats"`
	BuyInMin   int `json:"buyInMin"`
	BuyInMax   int `json:"buyInMax"`
}

func (m *Mux) tableOptions(pp postTablePayload) tripleboard.Options {
	opts := m.defaults
	if pp.SmallBlind > 0 {
		opts.SmallBlind = pp.SmallBlind
	}
	if pp.BigBlind > 0 {
		opts.BigBlind = pp.BigBlind
	}
	if pp.BetMin > 0 {
		opts.BetMin = pp.BetMin
	}
	if pp.BetMax > 0 {
		opts.BetMax = pp.BetMax
	}
	if pp.Seats > 0 {
		opts.Seats = pp.Seats
	}
	if pp.BuyInMin > 0 {
		opts.BuyInMin = pp.BuyInMin
	}
	if pp.BuyInMax > 0 {
		opts.BuyInMax = pp.BuyInMax
	}

	return opts
}

func (m *Mux) postTable() http.HandlerFunc {
	var wordChar = regexp.MustCompile(`\w`)
	return func(w http.ResponseWriter, r *http.Request) {
		var pp postTablePayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		if !wordChar.MatchString(pp.Name) || len(pp.Name) < 3 || len(pp.Name) > 40 {
			writeJSONError(w, http.StatusBadRequest, errors.New("name must be 3-40 characters"))
			return
		}

		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		tbl, err := m.store.CreateTable(player, pp.Name, m.tableOptions(pp))
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		writeJSON(w, http.StatusCreated, tbl)
	}
}

type getTableUUIDResponse struct {
	*table.Table
	GameName string          `json:"gameName"`
	Players  []*table.Player `json:"players"`
}

func (m *Mux) getTableUUID() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		writeJSON(w, http.StatusOK, getTableUUIDResponse{
			Table:    tbl,
			GameName: tbl.Game().Name(),
			Players:  tbl.Players(),
		})
	})
}

type postSeatPayload struct {
	BuyIn int `json:"buyIn"`
}

type postSeatResponse struct {
	SeatIndex int `json:"seatIndex"`
}

func (m *Mux) postTableUUIDSeat() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player := r.Context().Value(ctxPlayerKey).(*table.Player)
		tbl := r.Context().Value(ctxTableKey).(*table.Table)

		var pp postSeatPayload
		if !decodeRequest(w, r, &pp) {
			return
		}

		index, err := tbl.Join(player)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, err)
			return
		}

		if pp.BuyIn > 0 {
			if err := tbl.BuyIn(player, pp.BuyIn); err != nil {
				writeJSONError(w, http.StatusBadRequest, err)
				return
			}
		}

		writeJSON(w, http.StatusCreated, postSeatResponse{SeatIndex: index})
	})
}

func (m *Mux) tableMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uuid := mux.Vars(r)["uuid"]
		tbl, err := m.store.TableByUUID(uuid)
		if err != nil {
			writeMaybeNotFoundError(w, err)
			return
		}

		newCtx := context.WithValue(r.Context(), ctxTableKey, tbl)

		next.ServeHTTP(w, r.WithContext(newCtx))
	})
}
