package tripleboard

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/pkg/playable/poker/action"
	"tripleboardpoker-server/pkg/playable/poker/potledger"
)

// newTestRound builds a betting round over seats in button-first order with
// the given stacks. When preflop is true the blinds are posted first.
func newTestRound(stacks []int, preflop bool, opts Options) ([]*Seat, *potledger.Ledger, *bettingRound) {
	seats := make([]*Seat, len(stacks))
	for i, stack := range stacks {
		seats[i] = newSeat(int64(i+1), i)
		seats[i].stack = stack
	}

	assignPositions(seats)
	rotation := rotationOrder(seats)

	ledger := potledger.New()
	for _, seat := range seats {
		ledger.SeatParticipant(seat)
	}

	startIndex := 0
	if preflop {
		for _, seat := range rotation {
			switch seat.Position {
			case SmallBlind:
				postTestBlind(seat, ledger, opts.SmallBlind)
			case BigBlind:
				postTestBlind(seat, ledger, opts.BigBlind)
			}
		}
	} else {
		for i, seat := range rotation {
			if seat.Position == SmallBlind {
				startIndex = i
				break
			}
		}
	}

	return rotation, ledger, newBettingRound(rotation, ledger, opts, startIndex)
}

func postTestBlind(seat *Seat, ledger *potledger.Ledger, amount int) {
	if amount >= seat.stack {
		amount = seat.stack
		seat.allIn = true
	}

	seat.AdjustStack(-amount)
	ledger.AddContribution(seat.PlayerID, amount)
}

func TestBettingRound_bigBlindOption(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	rotation, ledger, round := newTestRound([]int{1000, 1000, 1000}, true, opts)

	// three-handed the button acts first preflop
	btn, sb, bb := rotation[0], rotation[1], rotation[2]
	a.Equal(Button, btn.Position)
	a.Equal(btn, round.currentActor())

	applied, moved, err := round.submit(btn, action.Call, 0)
	a.NoError(err)
	a.Equal(action.Call, applied)
	a.Equal(10, moved)

	applied, moved, err = round.submit(sb, action.Call, 0)
	a.NoError(err)
	a.Equal(action.Call, applied)
	a.Equal(5, moved)

	// everyone has matched the big blind, but the big blind still has the option
	a.False(round.isOver())
	a.Equal(bb, round.currentActor())
	a.Equal([]action.Action{action.Check, action.Bet}, round.legalActions(bb))

	applied, _, err = round.submit(bb, action.Check, 0)
	a.NoError(err)
	a.Equal(action.Check, applied)
	a.True(round.isOver())

	a.Equal(30, ledger.Total())
}

func TestBettingRound_outOfTurnRejected(t *testing.T) {
	a := assert.New(t)

	rotation, _, round := newTestRound([]int{1000, 1000, 1000}, true, DefaultOptions())
	sb := rotation[1]

	_, _, err := round.submit(sb, action.Call, 0)
	a.Equal(ErrNotYourTurn, err)

	// the turn did not move and nothing was charged
	a.Equal(rotation[0], round.currentActor())
	a.Equal(995, sb.stack)
}

func TestBettingRound_insufficientFundsRejected(t *testing.T) {
	a := assert.New(t)

	rotation, ledger, round := newTestRound([]int{100, 1000, 1000}, true, DefaultOptions())
	btn := rotation[0]

	_, _, err := round.submit(btn, action.Raise, 500)
	a.Equal(ErrInsufficientFunds, err)
	a.Equal(btn, round.currentActor())
	a.Equal(100, btn.stack)
	a.Equal(15, ledger.Total())
}

func TestBettingRound_repairsIllegalInput(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	rotation, _, round := newTestRound([]int{1000, 1000, 1000}, true, opts)
	btn, sb, bb := rotation[0], rotation[1], rotation[2]

	// a raise under the minimum folds the button, since checking is not legal
	applied, moved, err := round.submit(btn, action.Raise, 12)
	a.NoError(err)
	a.Equal(action.Fold, applied)
	a.Equal(0, moved)
	a.True(btn.folded)

	applied, _, err = round.submit(sb, action.Call, 0)
	a.NoError(err)
	a.Equal(action.Call, applied)

	// the big blind owes nothing, so an unknown-amount bet repairs to a check
	applied, _, err = round.submit(bb, action.Bet, -50)
	a.NoError(err)
	a.Equal(action.Check, applied)
	a.True(round.isOver())
}

func TestBettingRound_raiseReopensAction(t *testing.T) {
	a := assert.New(t)

	rotation, ledger, round := newTestRound([]int{1000, 1000, 1000}, true, DefaultOptions())
	btn, sb, bb := rotation[0], rotation[1], rotation[2]

	_, _, err := round.submit(btn, action.Call, 0)
	a.NoError(err)

	applied, moved, err := round.submit(sb, action.Raise, 30)
	a.NoError(err)
	a.Equal(action.Raise, applied)
	a.Equal(25, moved)

	a.Equal(bb, round.currentActor())
	_, moved, err = round.submit(bb, action.Call, 999) // client amount is ignored
	a.NoError(err)
	a.Equal(20, moved)

	a.Equal(btn, round.currentActor())
	_, moved, err = round.submit(btn, action.Call, 0)
	a.NoError(err)
	a.Equal(20, moved)

	a.True(round.isOver())
	a.Equal(90, ledger.Total())
}

func TestBettingRound_turnAlternatesBetweenTwoActiveSeats(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	opts.Seats = 6
	opts.BetMax = 100000

	stacks := []int{100000, 100000, 100000, 100000, 100000, 100000}
	rotation, _, round := newTestRound(stacks, false, opts)

	// leave only two seats able to act
	var active []*Seat
	for _, seat := range rotation {
		switch seat.Position {
		case MiddlePosition, Button:
			active = append(active, seat)
		default:
			seat.folded = true
		}
	}

	round.skipInactive()

	// alternating raises keep reopening the action between exactly these two
	amount := opts.BetMin
	for i := 0; i < 10; i++ {
		actor := round.currentActor()
		a.Equal(active[i%2], actor, "iteration %d", i)

		act := action.Raise
		if round.currentBet == 0 {
			act = action.Bet
		}

		applied, _, err := round.submit(actor, act, amount)
		a.NoError(err)
		a.Equal(act, applied)
		amount += opts.BigBlind
	}

	actor := round.currentActor()
	a.Equal(active[0], actor)
	_, _, err := round.submit(actor, action.Call, 0)
	a.NoError(err)
	a.True(round.isOver())
}

func TestBettingRound_shortAllInRaise(t *testing.T) {
	a := assert.New(t)

	rotation, _, round := newTestRound([]int{105, 1000, 1000}, true, DefaultOptions())
	btn, sb := rotation[0], rotation[1]

	_, _, err := round.submit(btn, action.Call, 0)
	a.NoError(err)

	applied, _, err := round.submit(sb, action.Raise, 100)
	a.NoError(err)
	a.Equal(action.Raise, applied)

	// a full re-raise would be to 110; all-in for 105 is still legal
	a.Equal(rotation[2], round.currentActor())
	_, _, err = round.submit(rotation[2], action.Fold, 0)
	a.NoError(err)

	applied, moved, err := round.submit(btn, action.Raise, 105)
	a.NoError(err)
	a.Equal(action.Raise, applied)
	a.Equal(95, moved)
	a.True(btn.allIn)

	a.Equal(sb, round.currentActor())
	_, _, err = round.submit(sb, action.Call, 0)
	a.NoError(err)
	a.True(round.isOver())
}

func TestBettingRound_allInSeatsEndRoundImmediately(t *testing.T) {
	a := assert.New(t)

	opts := DefaultOptions()
	rotation, ledger, round := newTestRound([]int{500, 500, 500}, false, opts)

	for _, seat := range rotation {
		if seat.Position != Button {
			seat.allIn = true
		}
	}

	// the button has no one left to bet against
	a.Equal(0, ledger.HighestStreetContribution())
	round = newBettingRound(rotation, ledger, opts, round.actionStartIndex)
	a.True(round.isOver())
	a.Nil(round.currentActor())
}
