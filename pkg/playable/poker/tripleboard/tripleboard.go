package tripleboard

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"tripleboardpoker-server/pkg/deck"
	"tripleboardpoker-server/pkg/playable"
	"tripleboardpoker-server/pkg/playable/poker/action"
	"tripleboardpoker-server/pkg/playable/poker/actionclock"
	"tripleboardpoker-server/pkg/playable/poker/potledger"
)

// maxDealtSeats caps how many seats can be dealt into one hand. Twelve hole
// cards per seat plus fifteen board cards exhausts a 52-card shoe beyond
// three seats, so on a fuller ring the button and the next two eligible
// seats play and the rest sit the hand out.
const maxDealtSeats = 3

var _ playable.Playable = (*Game)(nil)
var _ playable.Tickable = (*Game)(nil)

var (
	// ErrTableFull happens when there is no open seat
	ErrTableFull = errors.New("the table is full")

	// ErrAlreadySeated happens when a seated player tries to sit again
	ErrAlreadySeated = errors.New("you are already seated")

	// ErrNotSeated happens when a player without a seat tries to play
	ErrNotSeated = errors.New("you are not seated at this table")

	// ErrNotArranging happens when an arrangement arrives outside the window
	ErrNotArranging = errors.New("cards cannot be arranged right now")

	// ErrInvalidArrangement happens when an arrangement is not a permutation
	// of the cards the seat was dealt
	ErrInvalidArrangement = errors.New("the arrangement must use exactly the twelve cards you were dealt")

	// ErrInvalidBuyIn happens when a buy-in falls outside the table bounds
	ErrInvalidBuyIn = errors.New("the buy-in is outside the table's limits")
)

// Departure records chips owed back to a player who left the table
type Departure struct {
	PlayerID int64
	Chips    int
}

// Game is a single table of Triple-Board Omaha. One mutex covers all hand
// state so a client action and a clock timeout cannot both resolve the same
// turn; broadcasts are driven by the Tick loop after the lock is released.
type Game struct {
	options Options
	logger  logrus.FieldLogger

	mu sync.Mutex

	deck  *deck.Deck
	seats []*Seat

	phase        HandPhase
	pendingPhase *pendingPhase

	handSeats []*Seat
	button    int
	handCount int

	ledger   *potledger.Ledger
	round    *bettingRound
	boards   [numBoards]deck.Hand
	showdown *showdown

	arrangeDeadline time.Time

	clock      *actionclock.Clock
	turnSerial int

	pendingBuyIns map[int64]int
	departures    []Departure

	logChan      chan []*playable.LogMessage
	stateChanged bool
}

// NewGame returns a table in the waiting phase with every seat open
func NewGame(logger logrus.FieldLogger, opts Options) (*Game, error) {
	if err := validateOptions(opts); err != nil {
		return nil, err
	}

	return &Game{
		options:       opts,
		logger:        logger,
		deck:          deck.New(),
		seats:         make([]*Seat, opts.Seats),
		phase:         PhaseWaiting,
		button:        -1,
		pendingBuyIns: make(map[int64]int),
		logChan:       make(chan []*playable.LogMessage, 256),
	}, nil
}

// Name returns the name of the game
func (g *Game) Name() string {
	return fmt.Sprintf("Triple-Board Omaha (${%d}/${%d})", g.options.SmallBlind, g.options.BigBlind)
}

// LogChan returns a channel the hand log is published on
func (g *Game) LogChan() <-chan []*playable.LogMessage {
	return g.logChan
}

// SeatPlayer puts the player in the lowest open seat and returns its index.
// The seat joins play at the next deal.
func (g *Game) SeatPlayer(playerID int64) (int, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.seatByID(playerID) != nil {
		return 0, ErrAlreadySeated
	}

	for i, seat := range g.seats {
		if seat == nil {
			g.seats[i] = newSeat(playerID, i)
			g.stateChanged = true
			return i, nil
		}
	}

	return 0, ErrTableFull
}

// ApplyBuyIn adds chips to the player's stack. Buy-ins that arrive while the
// seat is in a hand are queued and applied before the next deal.
func (g *Game) ApplyBuyIn(playerID int64, amount int) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if amount < g.options.BuyInMin || amount > g.options.BuyInMax {
		return ErrInvalidBuyIn
	}

	seat := g.seatByID(playerID)
	if seat == nil {
		return ErrNotSeated
	}

	if g.isDealtIn(seat) {
		g.pendingBuyIns[playerID] += amount
		return nil
	}

	seat.AdjustStack(amount)
	g.stateChanged = true
	return nil
}

// Leave removes the player from the table. A seat still in a hand is folded
// immediately; its remaining stack is surfaced through TakeDepartures once
// the seat is swept from the ring.
func (g *Game) Leave(playerID int64) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	seat := g.seatByID(playerID)
	if seat == nil {
		return ErrNotSeated
	}

	seat.leaving = true
	if !g.isDealtIn(seat) {
		g.removeSeat(seat)
		g.stateChanged = true
		return nil
	}

	if !seat.folded {
		wasActor := false
		if g.round != nil {
			if actor := g.round.currentActor(); actor != nil && actor.PlayerID == playerID {
				wasActor = true
			}
		}

		seat.folded = true
		g.sendLogMessage(playerID, "%s", action.Fold.LogMessage(0))

		if g.round != nil {
			g.round.skipInactive()
			g.round.checkDegenerate()

			if g.round.isOver() {
				if g.clock != nil {
					g.clock.Cancel()
					g.clock = nil
				}

				g.endBettingRound()
			} else if wasActor {
				if g.clock != nil {
					g.clock.Cancel()
					g.clock = nil
				}

				g.startTurn()
			}
		}
	}

	g.stateChanged = true
	return nil
}

// TakeDepartures returns and clears the chips owed to departed players
func (g *Game) TakeDepartures() []Departure {
	g.mu.Lock()
	defer g.mu.Unlock()

	departures := g.departures
	g.departures = nil
	return departures
}

// SubmitAction applies a betting action for the player. Out-of-turn actions
// and over-stack aggression are rejected with an error; an in-turn action
// that is otherwise illegal is repaired to check or fold so the hand keeps
// moving. The boolean reports whether an action was applied.
func (g *Game) SubmitAction(playerID int64, act action.Action, amount int) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil || !g.phase.isBettingPhase() {
		return false, ErrNotBetting
	}

	seat := g.seatByID(playerID)
	if seat == nil {
		return false, ErrNotSeated
	}

	if err := g.resolveTurn(seat, act, amount); err != nil {
		return false, err
	}

	return true, nil
}

// resolveTurn runs one action through the betting round, logs it, and either
// starts the next turn's clock or closes the street. Callers hold the mutex.
func (g *Game) resolveTurn(seat *Seat, act action.Action, amount int) error {
	applied, moved, err := g.round.submit(seat, act, amount)
	if err != nil {
		return err
	}

	if g.clock != nil {
		g.clock.ActionReceived()
		g.clock = nil
	}

	g.sendLogMessage(seat.PlayerID, "%s", applied.LogMessage(moved))
	g.stateChanged = true

	if g.round.isOver() {
		g.endBettingRound()
	} else {
		g.startTurn()
	}

	return nil
}

// UseTimeExtension spends one time-bank use for the acting player
func (g *Game) UseTimeExtension(playerID int64) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.round == nil || g.clock == nil {
		return false
	}

	actor := g.round.currentActor()
	if actor == nil || actor.PlayerID != playerID {
		return false
	}

	if actor.extensionsUsed >= g.options.MaxExtensionsPerRound {
		return false
	}

	if !g.clock.UseTimeExtension() {
		return false
	}

	actor.extensionsUsed++
	g.stateChanged = true
	return true
}

// SubmitCardArrangement accepts a player's ordering of their twelve hole
// cards. The first four commit to board 0, the next four to board 1, and the
// last four to board 2.
func (g *Game) SubmitCardArrangement(playerID int64, cards []*deck.Card) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.phase != PhaseArrangeCards {
		return ErrNotArranging
	}

	seat := g.seatByID(playerID)
	if seat == nil {
		return ErrNotSeated
	}

	if !g.isDealtIn(seat) || seat.folded {
		return ErrNotArranging
	}

	if !sameCards(seat.cards, cards) {
		return ErrInvalidArrangement
	}

	arranged := make(deck.Hand, len(cards))
	copy(arranged, cards)
	seat.cards = arranged
	seat.arranged = true
	g.stateChanged = true

	return nil
}

// sameCards reports whether b is a permutation of a
func sameCards(a deck.Hand, b []*deck.Card) bool {
	if len(a) != len(b) {
		return false
	}

	counts := make(map[deck.Card]int)
	for _, card := range a {
		counts[*card]++
	}

	for _, card := range b {
		counts[*card]--
		if counts[*card] < 0 {
			return false
		}
	}

	return true
}

// startHand deals a new hand if enough funded seats remain. Callers hold the
// mutex.
func (g *Game) startHand() bool {
	eligible := g.eligibleSeats()
	if len(eligible) < 2 {
		return false
	}

	g.advanceButton(eligible)

	clockwise := g.clockwiseFromButton(eligible)
	if len(clockwise) > maxDealtSeats {
		clockwise = clockwise[:maxDealtSeats]
	}

	assignPositions(clockwise)
	g.handSeats = rotationOrder(clockwise)

	g.deck.Shuffle()
	for i := range g.boards {
		g.boards[i] = make(deck.Hand, 0, 5)
	}

	for _, seat := range g.handSeats {
		seat.resetForHand()
	}

	for i := 0; i < cardsPerSeat; i++ {
		for _, seat := range g.handSeats {
			g.dealCard(seat)
		}
	}

	g.ledger = potledger.New()
	for _, seat := range g.tableOrder(g.handSeats) {
		g.ledger.SeatParticipant(seat)
	}

	for _, seat := range g.handSeats {
		switch seat.Position {
		case SmallBlind:
			g.postBlind(seat, g.options.SmallBlind)
		case BigBlind:
			g.postBlind(seat, g.options.BigBlind)
		}
	}

	g.handCount++
	g.phase = PhaseDealPreflop
	g.setPendingPhase(PhasePreflopBetting, g.options.InterPhaseDelay)
	g.stateChanged = true

	g.logger.WithField("hand", g.handCount).Info("dealing a new hand")
	g.sendLogMessage(0, "hand #%d is dealt", g.handCount)

	return true
}

func (g *Game) dealCard(seat *Seat) {
	card, err := g.deck.Draw()
	if err != nil {
		panic(fmt.Sprintf("could not deal: %v", err))
	}

	seat.cards.AddCard(card)
}

func (g *Game) postBlind(seat *Seat, amount int) {
	if amount >= seat.stack {
		amount = seat.stack
		seat.allIn = true
	}

	seat.AdjustStack(-amount)
	g.ledger.AddContribution(seat.PlayerID, amount)
	seat.streetBet = amount
}

// eligibleSeats returns the seats that can be dealt in, in table order
func (g *Game) eligibleSeats() []*Seat {
	var eligible []*Seat
	for _, seat := range g.seats {
		if seat != nil && !seat.leaving && seat.stack >= g.options.BigBlind {
			eligible = append(eligible, seat)
		}
	}

	return eligible
}

// advanceButton moves the button to the next eligible seat around the ring
func (g *Game) advanceButton(eligible []*Seat) {
	for offset := 1; offset <= len(g.seats); offset++ {
		index := (g.button + offset) % len(g.seats)
		for _, seat := range eligible {
			if seat.TableIndex == index {
				g.button = index
				return
			}
		}
	}
}

// clockwiseFromButton orders the eligible seats starting with the button
func (g *Game) clockwiseFromButton(eligible []*Seat) []*Seat {
	clockwise := make([]*Seat, 0, len(eligible))
	for offset := 0; offset < len(g.seats); offset++ {
		index := (g.button + offset) % len(g.seats)
		for _, seat := range eligible {
			if seat.TableIndex == index {
				clockwise = append(clockwise, seat)
			}
		}
	}

	return clockwise
}

// tableOrder returns the seats sorted by their fixed ring index
func (g *Game) tableOrder(seats []*Seat) []*Seat {
	ordered := make([]*Seat, len(seats))
	copy(ordered, seats)

	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].TableIndex < ordered[j-1].TableIndex; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}

	return ordered
}

// startBettingRound opens betting for the current phase. Preflop the action
// starts at the top of the rotation; postflop it scans forward from the
// small blind.
func (g *Game) startBettingRound() {
	startIndex := 0
	if g.phase != PhasePreflopBetting {
		for i, seat := range g.handSeats {
			if seat.Position == SmallBlind {
				startIndex = i
				break
			}
		}
	}

	g.round = newBettingRound(g.handSeats, g.ledger, g.options, startIndex)
	if g.round.isOver() {
		g.endBettingRound()
		return
	}

	g.startTurn()
}

// startTurn arms the action clock for the current actor. The serial guards
// against a stale timeout resolving a turn that has already been acted on.
func (g *Game) startTurn() {
	g.turnSerial++
	serial := g.turnSerial

	g.clock = actionclock.New(actionclock.Config{
		Duration:      g.options.ActionTime,
		Grace:         g.options.ActionGrace,
		Extension:     g.options.TimeExtension,
		MaxExtensions: g.options.MaxExtensionsPerRound,
	}, nil, func() {
		g.handleTimeout(serial)
	})
	g.clock.Start()
}

// handleTimeout applies the default action for a turn the player let expire
func (g *Game) handleTimeout(serial int) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if serial != g.turnSerial || g.round == nil {
		return
	}

	actor := g.round.currentActor()
	if actor == nil {
		return
	}

	act := g.round.defaultAction(actor)
	g.clock = nil
	if err := g.resolveTurn(actor, act, 0); err != nil {
		g.logger.WithError(err).WithField("playerID", actor.PlayerID).Error("could not apply timeout action")
	}
}

// endBettingRound folds the street's contributions into the pots and either
// awards an uncontested win or moves to the next phase
func (g *Game) endBettingRound() {
	sole := g.round.soleLiveSeat()
	g.round = nil
	if g.clock != nil {
		g.clock.Cancel()
		g.clock = nil
	}

	g.ledger.FoldStreet()
	for _, seat := range g.handSeats {
		seat.streetBet = 0
	}

	if sole != nil {
		winnings := g.ledger.PayAll(sole.PlayerID)
		sole.winnings = winnings
		if winnings > 0 {
			g.sendLogMessage(sole.PlayerID, "wins ${%d} uncontested", winnings)
		}

		g.finishHand()
		return
	}

	switch g.phase {
	case PhasePreflopBetting:
		g.setPendingPhase(PhaseArrangeCards, g.options.InterPhaseDelay)
	case PhaseFlopBetting:
		g.setPendingPhase(PhaseTurnBetting, g.options.InterPhaseDelay)
	case PhaseTurnBetting:
		g.setPendingPhase(PhaseRiverBetting, g.options.InterPhaseDelay)
	case PhaseRiverBetting:
		g.setPendingPhase(PhaseShowdown, g.options.InterPhaseDelay)
	default:
		panic(fmt.Sprintf("betting round ended in phase %s", g.phase))
	}

	g.stateChanged = true
}

// enterPhase performs the work a phase owes on entry
func (g *Game) enterPhase(phase HandPhase) {
	g.phase = phase
	g.stateChanged = true

	switch phase {
	case PhasePreflopBetting:
		g.startBettingRound()

	case PhaseArrangeCards:
		for i := range g.boards {
			for n := 0; n < 3; n++ {
				card, err := g.deck.Draw()
				if err != nil {
					panic(fmt.Sprintf("could not deal the flop: %v", err))
				}

				g.boards[i].AddCard(card)
			}
		}

		g.arrangeDeadline = time.Now().Add(g.options.ArrangeTime)

	case PhaseFlopBetting, PhaseTurnBetting, PhaseRiverBetting:
		if phase != PhaseFlopBetting {
			for i := range g.boards {
				card, err := g.deck.Draw()
				if err != nil {
					panic(fmt.Sprintf("could not deal board %d: %v", i, err))
				}

				g.boards[i].AddCard(card)
			}
		}

		g.startBettingRound()

	case PhaseShowdown:
		g.showdown = newShowdown(g.handSeats, g.boards, g.ledger.Pots(), g.options, g.logger)

	case PhaseWaiting:
		g.sweepBetweenHands()
	}
}

// finishHand wraps up the hand and schedules the return to the waiting phase
func (g *Game) finishHand() {
	g.round = nil
	g.showdown = nil
	if g.clock != nil {
		g.clock.Cancel()
		g.clock = nil
	}

	g.phase = PhaseHandComplete
	g.pendingPhase = nil
	g.setPendingPhase(PhaseWaiting, g.options.InterPhaseDelay)
	g.stateChanged = true
}

// sweepBetweenHands applies queued buy-ins and removes departed seats
func (g *Game) sweepBetweenHands() {
	g.handSeats = nil
	g.ledger = nil

	for _, seat := range g.seats {
		if seat == nil {
			continue
		}

		if amount, ok := g.pendingBuyIns[seat.PlayerID]; ok {
			seat.AdjustStack(amount)
			delete(g.pendingBuyIns, seat.PlayerID)
		}

		if seat.leaving {
			g.removeSeat(seat)
		}
	}
}

// removeSeat takes the seat out of the ring and records the chips owed back
func (g *Game) removeSeat(seat *Seat) {
	if amount, ok := g.pendingBuyIns[seat.PlayerID]; ok {
		seat.AdjustStack(amount)
		delete(g.pendingBuyIns, seat.PlayerID)
	}

	g.departures = append(g.departures, Departure{
		PlayerID: seat.PlayerID,
		Chips:    seat.stack,
	})
	g.seats[seat.TableIndex] = nil
}

func (g *Game) seatByID(playerID int64) *Seat {
	for _, seat := range g.seats {
		if seat != nil && seat.PlayerID == playerID {
			return seat
		}
	}

	return nil
}

// isDealtIn reports whether the seat is part of the current hand
func (g *Game) isDealtIn(seat *Seat) bool {
	for _, handSeat := range g.handSeats {
		if handSeat.PlayerID == seat.PlayerID {
			return true
		}
	}

	return false
}

// allArranged reports whether every live seat has submitted an arrangement
func (g *Game) allArranged() bool {
	for _, seat := range g.handSeats {
		if !seat.folded && !seat.arranged {
			return false
		}
	}

	return true
}

func (g *Game) sendLogMessage(playerID int64, format string, a ...interface{}) {
	select {
	case g.logChan <- playable.SimpleLogMessageSlice(playerID, format, a...):
	default:
	}
}
