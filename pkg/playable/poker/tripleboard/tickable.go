package tripleboard

import "time"

// Interval is how often Tick() should be called
func (g *Game) Interval() time.Duration {
	return 250 * time.Millisecond
}

// Tick advances time-driven state: pending phase transitions, the card
// arrangement deadline, paced showdown payouts, and the start of the next
// hand. It returns true when the table state changed and a new snapshot
// should be broadcast.
func (g *Game) Tick() (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.pendingPhase != nil && !time.Now().Before(g.pendingPhase.After) {
		next := g.pendingPhase.NextPhase
		g.pendingPhase = nil
		g.enterPhase(next)
	}

	switch g.phase {
	case PhaseWaiting:
		if g.pendingPhase == nil {
			g.startHand()
		}

	case PhaseArrangeCards:
		if g.pendingPhase == nil && (g.allArranged() || !time.Now().Before(g.arrangeDeadline)) {
			g.setPendingPhase(PhaseFlopBetting, g.options.InterPhaseDelay)
			g.stateChanged = true
		}

	case PhaseShowdown:
		if g.showdown != nil && g.showdown.readyToPay() {
			board := g.showdown.nextBoard
			for _, win := range g.showdown.payNextBoard() {
				g.sendLogMessage(win.Seat.PlayerID, "wins ${%d} on board %d with %s",
					win.Amount, board+1, win.Result.Category)
			}

			g.stateChanged = true
			if g.showdown.isDone() {
				g.finishHand()
			}
		}
	}

	if g.stateChanged {
		g.stateChanged = false
		return true, nil
	}

	return false, nil
}
