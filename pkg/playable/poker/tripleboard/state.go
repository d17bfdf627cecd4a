package tripleboard

import (
	"time"

	"tripleboardpoker-server/pkg/deck"
	"tripleboardpoker-server/pkg/poker"
	"tripleboardpoker-server/pkg/playable/poker/action"
	"tripleboardpoker-server/pkg/playable/poker/potledger"
)

// seatState is the per-seat portion of a snapshot. Cards and results are
// only present for the viewer's own seat until the showdown reveal.
type seatState struct {
	PlayerID   int64           `json:"playerId"`
	TableIndex int             `json:"tableIndex"`
	Position   *Position       `json:"position,omitempty"`
	Stack      int             `json:"stack"`
	Folded     bool            `json:"folded"`
	AllIn      bool            `json:"allIn"`
	StreetBet  int             `json:"streetBet"`
	Arranged   bool            `json:"arranged"`
	IsTurn     bool            `json:"isTurn"`
	Winnings   int             `json:"winnings"`
	Cards      deck.Hand       `json:"cards,omitempty"`
	Results    []*poker.Result `json:"results,omitempty"`
}

// GameState is a point-in-time snapshot of the table, redacted for one
// viewer. It is side-effect free and safe to request at any time, such as
// after a reconnect.
type GameState struct {
	Name             string               `json:"name"`
	Phase            HandPhase            `json:"phase"`
	Boards           [numBoards]deck.Hand `json:"boards"`
	Pots             potledger.Pots       `json:"pots"`
	CurrentTurn      int64                `json:"currentTurn"`
	CurrentBet       int                  `json:"currentBet"`
	MinBetTarget     int                  `json:"minBetTarget"`
	CallAmount       int                  `json:"callAmount"`
	TimeRemaining    int64                `json:"timeRemaining"`
	ArrangeRemaining int64                `json:"arrangeRemaining"`
	Seats            []*seatState         `json:"seats"`
}

// snapshotState builds the redacted snapshot for the viewer. Callers hold
// the mutex. A viewer of 0 is an observer and sees no hole cards.
func (g *Game) snapshotState(viewerID int64) *GameState {
	state := &GameState{
		Name:  g.Name(),
		Phase: g.phase,
	}

	reveal := g.phase == PhaseShowdown || g.phase == PhaseHandComplete

	var actor *Seat
	if g.round != nil {
		actor = g.round.currentActor()
		state.CurrentBet = g.round.currentBet
		state.MinBetTarget = g.round.minBetTarget()
	}

	if actor != nil {
		state.CurrentTurn = actor.PlayerID
	}

	if g.ledger != nil {
		state.Pots = g.ledger.Pots()
		if actor != nil {
			state.CallAmount = g.ledger.RemainingToCall(actor.PlayerID)
		}
	}

	if g.clock != nil {
		state.TimeRemaining = g.clock.Remaining().Milliseconds()
	}

	if g.phase == PhaseArrangeCards {
		if remaining := time.Until(g.arrangeDeadline); remaining > 0 {
			state.ArrangeRemaining = remaining.Milliseconds()
		}
	}

	state.Boards = g.boards

	for _, seat := range g.seats {
		if seat == nil {
			continue
		}

		ss := &seatState{
			PlayerID:   seat.PlayerID,
			TableIndex: seat.TableIndex,
			Stack:      seat.stack,
			Folded:     seat.folded,
			AllIn:      seat.allIn,
			StreetBet:  seat.streetBet,
			Arranged:   seat.arranged,
			IsTurn:     actor != nil && actor.PlayerID == seat.PlayerID,
			Winnings:   seat.winnings,
		}

		if g.isDealtIn(seat) {
			position := seat.Position
			ss.Position = &position

			if seat.PlayerID == viewerID || (reveal && !seat.folded) {
				ss.Cards = seat.cards
				if reveal && !seat.folded {
					ss.Results = seat.results[:]
				}
			}
		}

		state.Seats = append(state.Seats, ss)
	}

	return state
}

// legalActionsFor returns the actions the viewer may take right now.
// Callers hold the mutex.
func (g *Game) legalActionsFor(viewerID int64) []action.Action {
	if g.round == nil {
		return nil
	}

	actor := g.round.currentActor()
	if actor == nil || actor.PlayerID != viewerID {
		return nil
	}

	return g.round.legalActions(actor)
}
