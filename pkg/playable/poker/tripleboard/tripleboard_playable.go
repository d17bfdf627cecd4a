package tripleboard

import (
	"errors"
	"fmt"

	"tripleboardpoker-server/pkg/playable"
	"tripleboardpoker-server/pkg/playable/poker/action"
)

// Action handles a client message. Betting messages carry an optional
// "amount", arrangements carry the twelve cards in their new order.
func (g *Game) Action(playerID int64, message *playable.PayloadIn) (playerResponse *playable.Response, updateState bool, err error) {
	switch message.Action {
	case "fold", "check", "call", "bet", "raise":
		act, err := action.FromString(message.Action)
		if err != nil {
			return nil, false, err
		}

		amount, _ := message.AdditionalData.GetInt("amount")
		applied, err := g.SubmitAction(playerID, act, amount)
		if err != nil {
			return nil, false, err
		}

		return playable.OK(message.Context), applied, nil

	case "arrange":
		if err := g.SubmitCardArrangement(playerID, message.Cards); err != nil {
			return nil, false, err
		}

		return playable.OK(message.Context), true, nil

	case "extendTime":
		if !g.UseTimeExtension(playerID) {
			return nil, false, errors.New("a time extension is not available")
		}

		return playable.OK(message.Context), true, nil
	}

	return nil, false, fmt.Errorf("unknown action: %s", message.Action)
}

// GetPlayerState returns the game state from the perspective of the player
func (g *Game) GetPlayerState(playerID int64) (*playable.Response, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	return &playable.Response{
		Key:   "game",
		Value: "tripleboard",
		Data: &playerState{
			Actions:   g.legalActionsFor(playerID),
			GameState: g.snapshotState(playerID),
		},
	}, nil
}

type playerState struct {
	Actions   []action.Action `json:"actions"`
	GameState *GameState      `json:"gameState"`
}
