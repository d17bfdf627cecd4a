package tripleboard

import (
	"errors"

	"tripleboardpoker-server/pkg/playable/poker/action"
	"tripleboardpoker-server/pkg/playable/poker/potledger"
)

var (
	// ErrNotYourTurn happens when a player acts out of turn
	ErrNotYourTurn = errors.New("it is not your turn")

	// ErrInsufficientFunds happens when a bet or raise exceeds the stack
	ErrInsufficientFunds = errors.New("you do not have enough chips")

	// ErrNotBetting happens when an action arrives outside a betting round
	ErrNotBetting = errors.New("there is no betting round in progress")
)

// bettingRound runs one street of betting. Seats are in rotation order and
// the turn walks forward from actionStartIndex; a bet or raise moves the
// start to the aggressor so the round closes when action returns to them.
type bettingRound struct {
	seats  []*Seat
	ledger *potledger.Ledger
	opts   Options

	currentBet       int
	actionStartIndex int
	actionAtIndex    int
}

func newBettingRound(seats []*Seat, ledger *potledger.Ledger, opts Options, startIndex int) *bettingRound {
	for _, seat := range seats {
		seat.resetForStreet()
		seat.streetBet = ledger.StreetContribution(seat.PlayerID)
	}

	r := &bettingRound{
		seats:            seats,
		ledger:           ledger,
		opts:             opts,
		currentBet:       ledger.HighestStreetContribution(),
		actionStartIndex: startIndex,
	}

	r.skipInactive()
	r.checkDegenerate()

	return r
}

// currentActor returns the seat whose turn it is, or nil once the round is over
func (r *bettingRound) currentActor() *Seat {
	if r.isOver() {
		return nil
	}

	return r.seats[(r.actionStartIndex+r.actionAtIndex)%len(r.seats)]
}

func (r *bettingRound) isOver() bool {
	return r.actionAtIndex >= len(r.seats) || r.liveCount() <= 1
}

func (r *bettingRound) liveCount() int {
	count := 0
	for _, seat := range r.seats {
		if !seat.folded {
			count++
		}
	}

	return count
}

func (r *bettingRound) soleLiveSeat() *Seat {
	var live *Seat
	for _, seat := range r.seats {
		if !seat.folded {
			if live != nil {
				return nil
			}

			live = seat
		}
	}

	return live
}

func (r *bettingRound) canActCount() int {
	count := 0
	for _, seat := range r.seats {
		if seat.canAct() {
			count++
		}
	}

	return count
}

// minBetTarget is the smallest legal total for a bet or raise
func (r *bettingRound) minBetTarget() int {
	if r.currentBet == 0 {
		return r.opts.BetMin
	}

	return r.currentBet + r.opts.BigBlind
}

// legalActions returns what the seat may do on its turn
func (r *bettingRound) legalActions(seat *Seat) []action.Action {
	owed := r.ledger.RemainingToCall(seat.PlayerID)
	if owed == 0 {
		actions := []action.Action{action.Check}
		if r.currentBet < r.opts.BetMax && seat.stack > 0 {
			actions = append(actions, action.Bet)
		}

		return actions
	}

	actions := []action.Action{action.Fold, action.Call}
	if seat.stack > owed && r.currentBet < r.opts.BetMax {
		actions = append(actions, action.Raise)
	}

	return actions
}

// defaultAction is what a timed-out or invalid turn resolves to
func (r *bettingRound) defaultAction(seat *Seat) action.Action {
	if r.ledger.RemainingToCall(seat.PlayerID) == 0 {
		return action.Check
	}

	return action.Fold
}

// submit applies an action for the seat. Out-of-turn and over-stack
// aggression are rejected with an error; anything else that is not legal on
// this turn is repaired to the default action. The action actually applied
// and the chips it moved are returned.
func (r *bettingRound) submit(seat *Seat, act action.Action, amount int) (action.Action, int, error) {
	actor := r.currentActor()
	if actor == nil || actor.PlayerID != seat.PlayerID {
		return "", 0, ErrNotYourTurn
	}

	if act == action.Bet || act == action.Raise {
		if amount-r.ledger.StreetContribution(seat.PlayerID) > seat.stack {
			return "", 0, ErrInsufficientFunds
		}
	}

	if !r.isLegal(seat, act, amount) {
		act = r.defaultAction(seat)
		amount = 0
	}

	moved := r.apply(seat, act, amount)
	r.advanceTurn()
	r.checkDegenerate()

	return act, moved, nil
}

func (r *bettingRound) isLegal(seat *Seat, act action.Action, amount int) bool {
	found := false
	for _, legal := range r.legalActions(seat) {
		if legal == act {
			found = true
			break
		}
	}

	if !found {
		return false
	}

	if act != action.Bet && act != action.Raise {
		return true
	}

	contributed := r.ledger.StreetContribution(seat.PlayerID)
	if amount <= r.currentBet || amount > r.opts.BetMax {
		return false
	}

	if amount >= r.minBetTarget() {
		return true
	}

	// a short all-in for less than a full raise is still allowed
	return amount == contributed+seat.stack
}

func (r *bettingRound) apply(seat *Seat, act action.Action, amount int) int {
	switch act {
	case action.Fold:
		seat.folded = true
		return 0

	case action.Check:
		return 0

	case action.Call:
		owed := r.ledger.RemainingToCall(seat.PlayerID)
		pay := owed
		if pay >= seat.stack {
			pay = seat.stack
			seat.allIn = true
		}

		seat.AdjustStack(-pay)
		r.ledger.AddContribution(seat.PlayerID, pay)
		seat.streetBet += pay
		return pay

	case action.Bet, action.Raise:
		diff := amount - r.ledger.StreetContribution(seat.PlayerID)
		if diff == seat.stack {
			seat.allIn = true
		}

		seat.AdjustStack(-diff)
		r.ledger.AddContribution(seat.PlayerID, diff)
		seat.streetBet += diff
		r.currentBet = amount
		r.actionStartIndex = r.indexOf(seat)
		r.actionAtIndex = 0
		return diff
	}

	panic("unknown action: " + string(act))
}

func (r *bettingRound) indexOf(seat *Seat) int {
	for i, s := range r.seats {
		if s.PlayerID == seat.PlayerID {
			return i
		}
	}

	panic("seat is not in the betting round")
}

// advanceTurn moves past the seat that just acted
func (r *bettingRound) advanceTurn() {
	r.actionAtIndex++
	r.skipInactive()
}

func (r *bettingRound) skipInactive() {
	for r.actionAtIndex < len(r.seats) {
		seat := r.seats[(r.actionStartIndex+r.actionAtIndex)%len(r.seats)]
		if seat.canAct() {
			return
		}

		r.actionAtIndex++
	}
}

// checkDegenerate closes the round when no betting decision remains, such
// as when every live seat but one is all-in and there is nothing to call
func (r *bettingRound) checkDegenerate() {
	if r.isOver() {
		return
	}

	if r.canActCount() > 1 {
		return
	}

	actor := r.currentActor()
	if actor != nil && r.ledger.RemainingToCall(actor.PlayerID) == 0 {
		r.actionAtIndex = len(r.seats)
	}
}
