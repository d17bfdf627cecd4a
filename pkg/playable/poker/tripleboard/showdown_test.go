package tripleboard

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/pkg/deck"
	"tripleboardpoker-server/pkg/poker"
	"tripleboardpoker-server/pkg/playable/poker/potledger"
)

func showdownSeat(playerID int64, tableIndex int, cards string) *Seat {
	seat := newSeat(playerID, tableIndex)
	seat.cards = deck.CardsFromString(cards)
	return seat
}

func TestShowdown_splitAcrossThreeBoards(t *testing.T) {
	a := assert.New(t)

	// seat 1 holds the nut straight flush on boards one and two, seat 2
	// holds it on board three, and seat 3 never connects
	seatA := showdownSeat(1, 0, "14c,5c,11s,12s,14d,5d,11h,12h,6s,7s,10s,13s")
	seatB := showdownSeat(2, 1, "13d,12d,10d,11d,10h,11c,13h,6d,5h,6h,10c,13c")
	seatC := showdownSeat(3, 2, "2s,3s,7c,14h,4s,5s,7d,14s,6c,7h,9d,12c")
	seats := []*Seat{seatA, seatB, seatC}

	boards := [numBoards]deck.Hand{
		deck.CardsFromString("2c,3c,4c,8d,9h"),
		deck.CardsFromString("2d,3d,4d,8c,9s"),
		deck.CardsFromString("2h,3h,4h,8s,9c"),
	}

	pots := potledger.Pots{
		{Amount: 300, ContributorIDs: []int64{1, 2, 3}},
	}

	opts := DefaultOptions()
	opts.ShowdownPacing = 0

	sd := newShowdown(seats, boards, pots, opts, logrus.New())

	wins := sd.payNextBoard()
	a.Len(wins, 1)
	a.Equal(seatA, wins[0].Seat)
	a.Equal(100, wins[0].Amount)
	a.Equal(poker.StraightFlush, wins[0].Result.Category)

	wins = sd.payNextBoard()
	a.Len(wins, 1)
	a.Equal(seatA, wins[0].Seat)
	a.Equal(100, wins[0].Amount)

	a.False(sd.isDone())

	wins = sd.payNextBoard()
	a.Len(wins, 1)
	a.Equal(seatB, wins[0].Seat)
	a.Equal(100, wins[0].Amount)
	a.Equal(poker.StraightFlush, wins[0].Result.Category)

	a.True(sd.isDone())

	a.Equal(200, seatA.stack)
	a.Equal(100, seatB.stack)
	a.Equal(0, seatC.stack)
	a.Equal(300, seatA.stack+seatB.stack+seatC.stack)
}

func TestShowdown_sidePotEligibility(t *testing.T) {
	a := assert.New(t)

	// seat 1 went all-in short, so only seats 2 and 3 contest the side pot.
	// seat 1 holds the strongest cards everywhere and still cannot win it.
	seatA := showdownSeat(1, 0, "14c,5c,11s,12s,14d,5d,11h,12h,5h,6h,10c,13c")
	seatB := showdownSeat(2, 1, "13d,12d,10d,11d,10h,11c,13h,6d,6s,7s,10s,13s")
	seatC := showdownSeat(3, 2, "2s,3s,7c,14h,4s,5s,7d,14s,6c,7h,9d,12c")
	seats := []*Seat{seatA, seatB, seatC}

	boards := [numBoards]deck.Hand{
		deck.CardsFromString("2c,3c,4c,8d,9h"),
		deck.CardsFromString("2d,3d,4d,8c,9s"),
		deck.CardsFromString("2h,3h,4h,8s,9c"),
	}

	pots := potledger.Pots{
		{Amount: 150, ContributorIDs: []int64{1, 2, 3}},
		{Amount: 600, ContributorIDs: []int64{2, 3}},
	}

	opts := DefaultOptions()
	opts.ShowdownPacing = 0

	sd := newShowdown(seats, boards, pots, opts, logrus.New())
	for !sd.isDone() {
		sd.payNextBoard()
	}

	// seat 1 sweeps the main pot on every board but never touches the side
	// pot, which seat 3 wins outright
	a.Equal(150, seatA.stack)
	a.Equal(0, seatB.stack)
	a.Equal(600, seatC.stack)
}

func TestShowdown_tieSplitsWithRemainderInTableOrder(t *testing.T) {
	a := assert.New(t)

	// the seats make identical hands on every board
	seatA := showdownSeat(1, 0, "13c,12c,3c,4c,13h,12h,3h,4h,11c,10c,10h,7c")
	seatB := showdownSeat(2, 1, "13d,12d,3d,4d,13s,12s,3s,4s,11d,10d,10s,7d")
	seats := []*Seat{seatA, seatB}

	boards := [numBoards]deck.Hand{
		deck.CardsFromString("14s,14h,9c,6d,2s"),
		deck.CardsFromString("14d,14c,9h,6s,2d"),
		deck.CardsFromString("9s,9d,5h,6c,2h"),
	}

	pots := potledger.Pots{
		{Amount: 101, ContributorIDs: []int64{1, 2}},
	}

	opts := DefaultOptions()
	opts.ShowdownPacing = 0

	sd := newShowdown(seats, boards, pots, opts, logrus.New())
	for !sd.isDone() {
		sd.payNextBoard()
	}

	// every chip is paid out, and the odd chip lands on the lowest table index
	a.Equal(101, seatA.stack+seatB.stack)
	a.Equal(51, seatA.stack)
	a.Equal(50, seatB.stack)
}

func TestShowdown_potWithNoEligibleSeatsIsSkipped(t *testing.T) {
	a := assert.New(t)

	seatA := showdownSeat(1, 0, "14c,5c,11s,12s,14d,5d,11h,12h,5h,6h,10c,13c")
	seatB := showdownSeat(2, 1, "13d,12d,10d,11d,10h,11c,13h,6d,6s,7s,10s,13s")
	seatB.folded = true
	seats := []*Seat{seatA, seatB}

	boards := [numBoards]deck.Hand{
		deck.CardsFromString("2c,3c,4c,8d,9h"),
		deck.CardsFromString("2d,3d,4d,8c,9s"),
		deck.CardsFromString("2h,3h,4h,8s,9c"),
	}

	// a pot whose only contributor folded should never happen, but it must
	// not crash or pay the wrong seat
	pots := potledger.Pots{
		{Amount: 90, ContributorIDs: []int64{1, 2}},
		{Amount: 60, ContributorIDs: []int64{2}},
	}

	opts := DefaultOptions()
	opts.ShowdownPacing = 0

	sd := newShowdown(seats, boards, pots, opts, logrus.New())
	for !sd.isDone() {
		sd.payNextBoard()
	}

	a.Equal(90, seatA.stack)
	a.Equal(0, seatB.stack)
}
