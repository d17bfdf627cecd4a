package tripleboard

import (
	"encoding/json"
	"time"
)

// HandPhase tracks where the game is in the hand lifecycle
type HandPhase int

// HandPhase constants
const (
	PhaseWaiting HandPhase = iota
	PhaseDealPreflop
	PhasePreflopBetting
	PhaseArrangeCards
	PhaseFlopBetting
	PhaseTurnBetting
	PhaseRiverBetting
	PhaseShowdown
	PhaseHandComplete
)

func (h HandPhase) String() string {
	switch h {
	case PhaseWaiting:
		return "waiting"
	case PhaseDealPreflop:
		return "deal-preflop"
	case PhasePreflopBetting:
		return "preflop-betting"
	case PhaseArrangeCards:
		return "arrange-cards"
	case PhaseFlopBetting:
		return "flop-betting"
	case PhaseTurnBetting:
		return "turn-betting"
	case PhaseRiverBetting:
		return "river-betting"
	case PhaseShowdown:
		return "showdown"
	case PhaseHandComplete:
		return "hand-complete"
	}

	panic("unknown hand phase")
}

// MarshalJSON encodes the phase
func (h HandPhase) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(h),
		Name: h.String(),
	})
}

// isBettingPhase returns true for the four betting streets
func (h HandPhase) isBettingPhase() bool {
	switch h {
	case PhasePreflopBetting, PhaseFlopBetting, PhaseTurnBetting, PhaseRiverBetting:
		return true
	}

	return false
}

type pendingPhase struct {
	NextPhase HandPhase
	After     time.Time
}

func (g *Game) setPendingPhase(next HandPhase, wait time.Duration) {
	if g.pendingPhase != nil {
		panic("pendingPhase is already set")
	}

	g.pendingPhase = &pendingPhase{
		NextPhase: next,
		After:     time.Now().Add(wait),
	}
}
