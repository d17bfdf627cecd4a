package tripleboard

import "encoding/json"

// Position is a seat's role for the current hand. The declaration order is
// the fixed betting rotation: UTG acts first preflop and the big blind
// closes it.
type Position int

// Position constants in rotation order
const (
	UnderTheGun Position = iota
	MiddlePosition
	Cutoff
	Button
	SmallBlind
	BigBlind
)

func (p Position) String() string {
	switch p {
	case UnderTheGun:
		return "UTG"
	case MiddlePosition:
		return "MP"
	case Cutoff:
		return "CO"
	case Button:
		return "BTN"
	case SmallBlind:
		return "SB"
	case BigBlind:
		return "BB"
	}

	panic("unknown position")
}

// MarshalJSON encodes the position
func (p Position) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.String())
}

// assignPositions takes seats ordered clockwise starting with the button and
// sets a position on each. Heads-up the button posts the small blind.
func assignPositions(clockwise []*Seat) {
	if len(clockwise) == 2 {
		clockwise[0].Position = SmallBlind
		clockwise[1].Position = BigBlind
		return
	}

	order := []Position{Button, SmallBlind, BigBlind, UnderTheGun, MiddlePosition, Cutoff}
	for i, seat := range clockwise {
		seat.Position = order[i]
	}
}

// rotationOrder returns the seats sorted into the betting rotation,
// UTG first and the big blind last
func rotationOrder(seats []*Seat) []*Seat {
	ordered := make([]*Seat, len(seats))
	copy(ordered, seats)

	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].Position < ordered[j-1].Position; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	return ordered
}
