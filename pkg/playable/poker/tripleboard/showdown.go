package tripleboard

import (
	"sort"
	"time"

	"github.com/sirupsen/logrus"

	"tripleboardpoker-server/pkg/deck"
	"tripleboardpoker-server/pkg/poker"
	"tripleboardpoker-server/pkg/playable/poker/potledger"
)

// numBoards is how many community boards are dealt each hand
const numBoards = 3

// boardWin records one seat's share of one board's payout
type boardWin struct {
	Seat   *Seat
	Result *poker.Result
	Amount int
}

// showdown pays the pots out board by board. Each board claims an equal
// share of what remains in every pot and the final board takes the rest, so
// every chip contributed is paid back out.
type showdown struct {
	seats     []*Seat
	pots      potledger.Pots
	remaining []int
	opts      Options
	logger    logrus.FieldLogger

	nextBoard int
	nextPayAt time.Time
}

func newShowdown(seats []*Seat, boards [numBoards]deck.Hand, pots potledger.Pots, opts Options, logger logrus.FieldLogger) *showdown {
	remaining := make([]int, len(pots))
	for i, pot := range pots {
		remaining[i] = pot.Amount
	}

	for _, seat := range seats {
		if seat.folded {
			continue
		}

		for b := 0; b < numBoards; b++ {
			result := poker.BestOmahaHand(boards[b], seat.boardCards(b))
			seat.results[b] = &result
		}
	}

	return &showdown{
		seats:     seats,
		pots:      pots,
		remaining: remaining,
		opts:      opts,
		logger:    logger,
	}
}

// isDone returns true once every board has paid
func (s *showdown) isDone() bool {
	return s.nextBoard >= numBoards
}

// readyToPay returns true when the pacing delay before the next board elapsed
func (s *showdown) readyToPay() bool {
	return !s.isDone() && !time.Now().Before(s.nextPayAt)
}

// payNextBoard awards the next board's share of every pot and schedules the
// one after it
func (s *showdown) payNextBoard() []*boardWin {
	board := s.nextBoard
	boardsLeft := numBoards - board

	var wins []*boardWin
	for i := len(s.pots) - 1; i >= 0; i-- {
		if s.remaining[i] == 0 {
			continue
		}

		share := s.remaining[i] / boardsLeft
		if board == numBoards-1 {
			share = s.remaining[i]
		} else {
			share -= share % s.opts.ChipUnit
		}

		if share == 0 {
			continue
		}

		winners := s.boardWinners(s.pots[i], board)
		if len(winners) == 0 {
			s.logger.WithFields(logrus.Fields{
				"pot":   i,
				"board": board,
			}).Error("pot has no eligible seats at showdown")
			continue
		}

		s.remaining[i] -= share
		for _, win := range s.splitShare(winners, share, board) {
			wins = append(wins, win)
		}
	}

	s.nextBoard++
	s.nextPayAt = time.Now().Add(s.opts.ShowdownPacing)

	return wins
}

// boardWinners returns the strongest live contributors to the pot on the
// given board
func (s *showdown) boardWinners(pot *potledger.Pot, board int) []*Seat {
	var winners []*Seat
	bestRank := poker.RankIncomplete

	for _, seat := range s.seats {
		if seat.folded || !pot.HasContributor(seat.PlayerID) {
			continue
		}

		result := seat.results[board]
		if result == nil || result.Rank == poker.RankIncomplete {
			continue
		}

		if result.Rank < bestRank {
			bestRank = result.Rank
			winners = winners[:0]
		}

		if result.Rank == bestRank {
			winners = append(winners, seat)
		}
	}

	return winners
}

// splitShare divides a board's share evenly among the winners. The split is
// kept to multiples of the chip unit with the leftover handed out one unit
// at a time in table order; any residue smaller than the unit goes to the
// first seat in table order.
func (s *showdown) splitShare(winners []*Seat, share int, board int) []*boardWin {
	sort.Slice(winners, func(i, j int) bool {
		return winners[i].TableIndex < winners[j].TableIndex
	})

	base := share / len(winners)
	base -= base % s.opts.ChipUnit

	amounts := make([]int, len(winners))
	leftover := share - base*len(winners)
	for i := range winners {
		amounts[i] = base
	}

	for i := 0; leftover >= s.opts.ChipUnit; i++ {
		amounts[i%len(winners)] += s.opts.ChipUnit
		leftover -= s.opts.ChipUnit
	}

	amounts[0] += leftover

	wins := make([]*boardWin, 0, len(winners))
	for i, seat := range winners {
		if amounts[i] == 0 {
			continue
		}

		seat.AdjustStack(amounts[i])
		seat.winnings += amounts[i]
		wins = append(wins, &boardWin{
			Seat:   seat,
			Result: seat.results[board],
			Amount: amounts[i],
		})
	}

	return wins
}
