package potledger

import (
	"sort"

	"github.com/sirupsen/logrus"
)

// Ledger tracks per-seat contributions for the current street and folds them
// into main/side pots when the street completes. Chips enter the ledger
// already debited from the seat's stack; the only stack mutation the ledger
// performs is the uncallable-bet refund.
//
// A Ledger is owned by a single hand and must not be shared across hands.
type Ledger struct {
	participants map[int64]Participant
	// tableOrder preserves seating order for deterministic pot construction
	tableOrder []int64
	street     map[int64]int
	pots       Pots
	refunded   int
}

// New instantiates an empty ledger
func New() *Ledger {
	return &Ledger{
		participants: make(map[int64]Participant),
		tableOrder:   make([]int64, 0),
		street:       make(map[int64]int),
		pots:         make(Pots, 0),
	}
}

// SeatParticipant registers a seat with the ledger
// This method must be called in table order
func (l *Ledger) SeatParticipant(p Participant) {
	l.participants[p.ID()] = p
	l.tableOrder = append(l.tableOrder, p.ID())
}

// AddContribution records chips a seat has put in play this street.
// The caller debits the stack; the ledger only accounts.
func (l *Ledger) AddContribution(id int64, amount int) {
	if amount <= 0 {
		return
	}

	l.street[id] += amount
}

// StreetContribution returns how much the seat has put in play this street
func (l *Ledger) StreetContribution(id int64) int {
	return l.street[id]
}

// HighestStreetContribution returns the largest single-seat contribution this
// street, which is the amount every active seat must match
func (l *Ledger) HighestStreetContribution() int {
	highest := 0
	for _, amount := range l.street {
		if amount > highest {
			highest = amount
		}
	}

	return highest
}

// RemainingToCall returns how much more the seat owes to stay in
func (l *Ledger) RemainingToCall(id int64) int {
	owed := l.HighestStreetContribution() - l.street[id]
	if owed < 0 {
		return 0
	}

	return owed
}

// FoldStreet folds this street's contributions into the pot structure.
//
// Distinct live-seat contribution levels are processed ascending; every seat
// adds its increment up to each level, and a new side pot opens whenever the
// set of live contributors shrinks. If the most exclusive pot ends up with a
// single contributor, its amount is refunded to that seat (a bet nobody could
// call) and the pot is discarded.
func (l *Ledger) FoldStreet() {
	if len(l.street) == 0 {
		return
	}

	levels := l.contributionLevels()
	prev := 0
	for _, level := range levels {
		amount := 0
		contributors := make([]int64, 0, len(l.tableOrder))
		for _, id := range l.tableOrder {
			contrib := l.street[id]
			if contrib > level {
				contrib = level
			}

			if diff := contrib - prev; diff > 0 {
				amount += diff
			}

			if !l.participants[id].IsFolded() && l.street[id] >= level {
				contributors = append(contributors, id)
			}
		}
		prev = level

		if amount == 0 {
			continue
		}

		if active := l.activePot(); active != nil && sameContributors(active.ContributorIDs, contributors) {
			active.Amount += amount
			continue
		}

		l.pots = append(l.pots, &Pot{
			Amount:         amount,
			ContributorIDs: contributors,
		})
	}

	l.refundUncallable()
	l.street = make(map[int64]int)
}

// contributionLevels returns the ascending distinct live-seat contribution
// amounts, plus the overall maximum so folded overages still enter a pot
func (l *Ledger) contributionLevels() []int {
	seen := make(map[int]bool)
	levels := make([]int, 0, len(l.street))
	maxAll := 0
	for _, id := range l.tableOrder {
		amount := l.street[id]
		if amount > maxAll {
			maxAll = amount
		}

		if amount > 0 && !l.participants[id].IsFolded() && !seen[amount] {
			seen[amount] = true
			levels = append(levels, amount)
		}
	}

	if maxAll > 0 && !seen[maxAll] {
		levels = append(levels, maxAll)
	}

	sort.Ints(levels)
	return levels
}

// refundUncallable returns an uncallable overbet to its lone contributor
func (l *Ledger) refundUncallable() {
	active := l.activePot()
	if active == nil || len(active.ContributorIDs) != 1 {
		return
	}

	id := active.ContributorIDs[0]
	pt, ok := l.participants[id]
	if !ok {
		// indicates the pots were built from an unseated participant
		logrus.WithField("participant", id).Error("cannot refund pot to unknown participant")
		return
	}

	pt.AdjustStack(active.Amount)
	l.refunded += active.Amount
	l.pots = l.pots[:len(l.pots)-1]
}

func (l *Ledger) activePot() *Pot {
	if len(l.pots) == 0 {
		return nil
	}

	return l.pots[len(l.pots)-1]
}

// Pots returns the pot structure built so far, main pot first
func (l *Ledger) Pots() Pots {
	return l.pots
}

// Total returns the chips currently held across all pots
func (l *Ledger) Total() int {
	return l.pots.Total()
}

// Refunded returns the chips returned to seats via uncallable-bet refunds
func (l *Ledger) Refunded() int {
	return l.refunded
}

// PayAll credits every remaining pot to a single seat and empties the ledger.
// Used when all other seats have folded.
func (l *Ledger) PayAll(id int64) int {
	pt, ok := l.participants[id]
	if !ok {
		logrus.WithField("participant", id).Error("cannot pay pots to unknown participant")
		return 0
	}

	total := l.Total()
	pt.AdjustStack(total)
	l.pots = make(Pots, 0)

	return total
}

func sameContributors(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}

	inA := make(map[int64]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}

	for _, id := range b {
		if !inA[id] {
			return false
		}
	}

	return true
}
