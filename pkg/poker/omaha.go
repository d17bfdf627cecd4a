package poker

import (
	"math"

	"tripleboardpoker-server/pkg/deck"
)

// RankIncomplete is returned when there are not enough cards to form any
// 5-card hand
const RankIncomplete = math.MaxInt32

// Result is the outcome of a best-hand search
type Result struct {
	Rank     int       `json:"rank"`
	Category Category  `json:"category"`
	Cards    deck.Hand `json:"cards"`
}

// Beats returns true if r is strictly stronger than other
func (r Result) Beats(other Result) bool {
	return r.Rank < other.Rank
}

// BestOmahaHand returns the strongest hand built from exactly two hole cards
// and exactly three board cards, searching all C(4,2) x C(5,3) combinations.
//
// Incomplete boards or holdings degrade rather than fail: with fewer than two
// hole cards or three board cards, the search falls back to the best 5-card
// hand over the combined pool, and with fewer than five total cards the
// result carries RankIncomplete.
func BestOmahaHand(board deck.Hand, hole deck.Hand) Result {
	if len(hole) < 2 || len(board) < 3 {
		return bestOfPool(append(board.Clone(), hole...))
	}

	best := Result{Rank: RankIncomplete}
	hand := make([]*deck.Card, 5)

	eachCombination(len(hole), 2, func(h []int) {
		hand[0] = hole[h[0]]
		hand[1] = hole[h[1]]

		eachCombination(len(board), 3, func(b []int) {
			hand[2] = board[b[0]]
			hand[3] = board[b[1]]
			hand[4] = board[b[2]]

			if rank := Evaluate(hand); rank < best.Rank {
				best = Result{
					Rank:     rank,
					Category: CategoryOf(rank),
					Cards:    deck.Hand(hand).Clone(),
				}
			}
		})
	})

	return best
}

// bestOfPool returns the strongest 5-card hand from an arbitrary pool
func bestOfPool(pool deck.Hand) Result {
	if len(pool) < 5 {
		return Result{Rank: RankIncomplete}
	}

	best := Result{Rank: RankIncomplete}
	hand := make([]*deck.Card, 5)

	eachCombination(len(pool), 5, func(idx []int) {
		for i, j := range idx {
			hand[i] = pool[j]
		}

		if rank := Evaluate(hand); rank < best.Rank {
			best = Result{
				Rank:     rank,
				Category: CategoryOf(rank),
				Cards:    deck.Hand(hand).Clone(),
			}
		}
	})

	return best
}

// eachCombination calls fn with every k-combination of indexes [0, n)
func eachCombination(n, k int, fn func(idx []int)) {
	idx := make([]int, k)
	var rec func(start, depth int)
	rec = func(start, depth int) {
		if depth == k {
			fn(idx)
			return
		}

		for i := start; i <= n-(k-depth); i++ {
			idx[depth] = i
			rec(i+1, depth+1)
		}
	}
	rec(0, 0)
}
