package poker

import (
	"fmt"
	"sort"

	"tripleboardpoker-server/pkg/deck"
)

// The evaluator uses the Cactus-Kev scheme: each rank maps to a prime, a
// 5-card hand maps to the product of its primes, and the product is a perfect
// hash of the hand's rank multiset. Two lookup tables (flush and non-flush)
// map products to one of the 7462 equivalence classes, where class 1 is a
// royal flush and class 7462 the worst high card. The tables are generated in
// init() and never written again, so Evaluate is safe for concurrent use.

// rankPrimes maps a card rank (2-14) to its prime
var rankPrimes = map[int]uint32{
	2: 2, 3: 3, 4: 5, 5: 7, 6: 11, 7: 13, 8: 17,
	9: 19, 10: 23, deck.Jack: 29, deck.Queen: 31, deck.King: 37, deck.Ace: 41,
}

// flushRanks is keyed by the prime product of five distinct ranks, all suited.
// It covers straight flushes and plain flushes.
var flushRanks map[uint32]int

// unsuitedRanks is keyed by the prime product of any unsuited 5-card hand.
// It covers every other category.
var unsuitedRanks map[uint32]int

func init() {
	flushRanks = make(map[uint32]int, 1287)
	unsuitedRanks = make(map[uint32]int, 6175)

	distinct, straights := distinctRankSets()

	// straight flushes 1-10, straights 1600-1609
	for i, set := range straights {
		flushRanks[product(set)] = 1 + i
		unsuitedRanks[product(set)] = rankLastFlush + 1 + i
	}

	// flushes 323-1599, high cards 6186-7462
	for i, set := range distinct {
		flushRanks[product(set)] = rankLastFullHouse + 1 + i
		unsuitedRanks[product(set)] = rankLastOnePair + 1 + i
	}

	generatePaired()
}

// distinctRankSets returns every 5-card set of distinct ranks, split into
// non-straights and straights. Both slices are ordered strongest first.
func distinctRankSets() ([][]int, [][]int) {
	sets := make([][]int, 0, 1287)
	var build func(start int, cur []int)
	build = func(start int, cur []int) {
		if len(cur) == 5 {
			set := make([]int, 5)
			copy(set, cur)
			sets = append(sets, set)
			return
		}

		for r := start; r >= 2; r-- {
			build(r-1, append(cur, r))
		}
	}
	build(deck.Ace, nil)

	// descending lexicographic order, strongest first
	sort.Slice(sets, func(i, j int) bool {
		for k := 0; k < 5; k++ {
			if sets[i][k] != sets[j][k] {
				return sets[i][k] > sets[j][k]
			}
		}
		return false
	})

	distinct := make([][]int, 0, 1277)
	straights := make([][]int, 0, 10)
	for _, set := range sets {
		if high := straightHigh(set); high > 0 {
			straights = append(straights, set)
		} else {
			distinct = append(distinct, set)
		}
	}

	// straights sort by their high card, with the wheel (A-5) last
	sort.Slice(straights, func(i, j int) bool {
		return straightHigh(straights[i]) > straightHigh(straights[j])
	})

	return distinct, straights
}

// straightHigh returns the high card of a straight, or 0 if the descending
// rank set is not a straight. The wheel reports 5.
func straightHigh(set []int) int {
	if set[0] == deck.Ace && set[1] == 5 && set[2] == 4 && set[3] == 3 && set[4] == 2 {
		return 5
	}

	for i := 1; i < 5; i++ {
		if set[i] != set[0]-i {
			return 0
		}
	}

	return set[0]
}

// generatePaired fills unsuitedRanks for every hand containing at least one
// pair, enumerating each category strongest first.
func generatePaired() {
	rank := rankLastStraightFlush // next four-of-a-kind gets 11

	// four of a kind: quad rank, then kicker
	for q := deck.Ace; q >= 2; q-- {
		for k := deck.Ace; k >= 2; k-- {
			if k == q {
				continue
			}
			rank++
			unsuitedRanks[productOf(q, q, q, q, k)] = rank
		}
	}

	// full house: trips rank, then pair rank
	for t := deck.Ace; t >= 2; t-- {
		for p := deck.Ace; p >= 2; p-- {
			if p == t {
				continue
			}
			rank++
			unsuitedRanks[productOf(t, t, t, p, p)] = rank
		}
	}

	// three of a kind: trips rank, then both kickers
	rank = rankLastStraight
	for t := deck.Ace; t >= 2; t-- {
		for k1 := deck.Ace; k1 >= 3; k1-- {
			if k1 == t {
				continue
			}
			for k2 := k1 - 1; k2 >= 2; k2-- {
				if k2 == t {
					continue
				}
				rank++
				unsuitedRanks[productOf(t, t, t, k1, k2)] = rank
			}
		}
	}

	// two pair: high pair, low pair, kicker
	for p1 := deck.Ace; p1 >= 3; p1-- {
		for p2 := p1 - 1; p2 >= 2; p2-- {
			for k := deck.Ace; k >= 2; k-- {
				if k == p1 || k == p2 {
					continue
				}
				rank++
				unsuitedRanks[productOf(p1, p1, p2, p2, k)] = rank
			}
		}
	}

	// one pair: pair rank, then three kickers
	for p := deck.Ace; p >= 2; p-- {
		for k1 := deck.Ace; k1 >= 4; k1-- {
			if k1 == p {
				continue
			}
			for k2 := k1 - 1; k2 >= 3; k2-- {
				if k2 == p {
					continue
				}
				for k3 := k2 - 1; k3 >= 2; k3-- {
					if k3 == p {
						continue
					}
					rank++
					unsuitedRanks[productOf(p, p, k1, k2, k3)] = rank
				}
			}
		}
	}
}

func product(set []int) uint32 {
	p := uint32(1)
	for _, r := range set {
		p *= rankPrimes[r]
	}

	return p
}

func productOf(ranks ...int) uint32 {
	return product(ranks)
}

// Evaluate scores a 5-card hand. Lower is stronger: 1 is a royal flush and
// RankWorst (7462) is 7-5-4-3-2 unsuited.
func Evaluate(cards []*deck.Card) int {
	if len(cards) != 5 {
		panic(fmt.Sprintf("Evaluate requires exactly 5 cards, got %d", len(cards)))
	}

	p := uint32(1)
	flush := true
	for i, c := range cards {
		p *= rankPrimes[c.Rank]
		if i > 0 && c.Suit != cards[0].Suit {
			flush = false
		}
	}

	if flush {
		return flushRanks[p]
	}

	rank, ok := unsuitedRanks[p]
	if !ok {
		panic(fmt.Sprintf("no rank for cards %s", deck.CardsToString(cards)))
	}

	return rank
}

// Compare ranks two 5-card hands. The result is negative if a is stronger,
// positive if b is stronger, and zero on a tie.
func Compare(a, b []*deck.Card) int {
	return Evaluate(a) - Evaluate(b)
}
