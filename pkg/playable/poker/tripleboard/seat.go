package tripleboard

import (
	"tripleboardpoker-server/pkg/deck"
	"tripleboardpoker-server/pkg/poker"
)

// cardsPerSeat is how many hole cards each seat is dealt
const cardsPerSeat = 12

// holeCardsPerBoard is how many of those cards commit to each board
const holeCardsPerBoard = 4

// Seat is a player's place at the table for the duration of a session
type Seat struct {
	// PlayerID identifies the player occupying the seat
	PlayerID int64

	// TableIndex is the seat's fixed spot in the ring
	TableIndex int

	// Position is the seat's role for the current hand
	Position Position

	stack   int
	folded  bool
	allIn   bool
	leaving bool

	// cards holds the twelve hole cards in arranged order
	cards    deck.Hand
	arranged bool

	// streetBet mirrors the ledger's street contribution for display
	streetBet      int
	extensionsUsed int

	// set at showdown
	results  [numBoards]*poker.Result
	winnings int
}

func newSeat(playerID int64, tableIndex int) *Seat {
	return &Seat{
		PlayerID:   playerID,
		TableIndex: tableIndex,
	}
}

// ID is part of the potledger.Participant interface
func (s *Seat) ID() int64 {
	return s.PlayerID
}

// AdjustStack is part of the potledger.Participant interface
func (s *Seat) AdjustStack(amount int) {
	s.stack += amount
}

// IsFolded is part of the potledger.Participant interface
func (s *Seat) IsFolded() bool {
	return s.folded
}

// Stack returns the chips the seat has behind
func (s *Seat) Stack() int {
	return s.stack
}

// IsAllIn returns true once the seat has no chips behind in a live hand
func (s *Seat) IsAllIn() bool {
	return s.allIn
}

// canAct returns true if the seat can still make betting decisions
func (s *Seat) canAct() bool {
	return !s.folded && !s.allIn
}

// boardCards returns the four hole cards committed to the given board
func (s *Seat) boardCards(board int) deck.Hand {
	return s.cards[board*holeCardsPerBoard : (board+1)*holeCardsPerBoard]
}

// resetForHand clears the per-hand state ahead of a new deal
func (s *Seat) resetForHand() {
	s.folded = false
	s.allIn = false
	s.cards = make(deck.Hand, 0, cardsPerSeat)
	s.arranged = false
	s.streetBet = 0
	s.extensionsUsed = 0
	s.results = [numBoards]*poker.Result{}
	s.winnings = 0
}

// resetForStreet clears the per-street state between betting rounds
func (s *Seat) resetForStreet() {
	s.streetBet = 0
	s.extensionsUsed = 0
}
