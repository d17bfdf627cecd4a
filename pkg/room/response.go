package room

import (
	"errors"

	"tripleboardpoker-server/pkg/playable"
	"tripleboardpoker-server/pkg/table"
)

var errUnknownAmount = errors.New("could not obtain amount")

type clientStatePlayer struct {
	Player      *table.Player `json:"player"`
	IsConnected bool          `json:"isConnected"`
	IsSeated    bool          `json:"isSeated"`
}

func newErrorResponse(ctx string, err error) *playable.Response {
	return &playable.Response{
		Key:     "error",
		Value:   err.Error(),
		Context: ctx,
	}
}
