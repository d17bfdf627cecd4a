package poker

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/internal/rng"
	"tripleboardpoker-server/pkg/deck"
)

func TestBestOmahaHand_usesExactlyTwoHoleCards(t *testing.T) {
	a := assert.New(t)

	// four hearts in the hole with three on board is NOT a flush in Omaha;
	// only two hole cards may play
	board := deck.Hand(deck.CardsFromString("14h,9h,2h,7c,3d"))
	hole := deck.Hand(deck.CardsFromString("13h,12h,11h,10h"))

	result := BestOmahaHand(board, hole)
	a.Equal(Flush, result.Category)

	// and a board pair cannot be trips with a single matching hole card
	board = deck.Hand(deck.CardsFromString("9s,9d,4c,7c,2d"))
	hole = deck.Hand(deck.CardsFromString("9h,13c,6d,5s"))
	result = BestOmahaHand(board, hole)
	a.Equal(ThreeOfAKind, result.Category)
}

// the search must agree with a plain nested-loop enumeration of the same
// 6 x 10 combinations
func TestBestOmahaHand_matchesBruteForce(t *testing.T) {
	a := assert.New(t)

	d := deck.NewWithRNG(rng.NewSeeded(99))
	for trial := 0; trial < 200; trial++ {
		d.Shuffle()

		board := deck.Hand(draw(t, d, 5))
		hole := deck.Hand(draw(t, d, 4))

		best := RankIncomplete
		for h1 := 0; h1 < 4; h1++ {
			for h2 := h1 + 1; h2 < 4; h2++ {
				for b1 := 0; b1 < 5; b1++ {
					for b2 := b1 + 1; b2 < 5; b2++ {
						for b3 := b2 + 1; b3 < 5; b3++ {
							rank := Evaluate([]*deck.Card{hole[h1], hole[h2], board[b1], board[b2], board[b3]})
							if rank < best {
								best = rank
							}
						}
					}
				}
			}
		}

		result := BestOmahaHand(board, hole)
		a.Equal(best, result.Rank, "board %s hole %s", board, hole)
		a.Equal(CategoryOf(best), result.Category)
		a.Len(result.Cards, 5)
	}
}

func TestBestOmahaHand_partialInput(t *testing.T) {
	a := assert.New(t)

	// not enough for any 5-card hand
	result := BestOmahaHand(deck.CardsFromString("2c,3c"), deck.CardsFromString("4c,5c"))
	a.Equal(RankIncomplete, result.Rank)

	// short hole degrades to a pool search instead of failing
	result = BestOmahaHand(
		deck.Hand(deck.CardsFromString("14s,13s,12s,11s,10s")),
		deck.Hand(deck.CardsFromString("2c")),
	)
	a.Equal(1, result.Rank)
	a.Equal(StraightFlush, result.Category)

	// short board likewise
	result = BestOmahaHand(
		deck.Hand(deck.CardsFromString("9c,9d")),
		deck.Hand(deck.CardsFromString("9h,9s,2c")),
	)
	a.Equal(FourOfAKind, result.Category)
}

func TestBestOmahaHand_deterministic(t *testing.T) {
	a := assert.New(t)

	board := deck.Hand(deck.CardsFromString("14h,9h,2h,7c,3d"))
	hole := deck.Hand(deck.CardsFromString("13h,12h,11h,10h"))

	first := BestOmahaHand(board, hole)
	for i := 0; i < 10; i++ {
		a.Equal(first, BestOmahaHand(board, hole))
	}
}

func TestResult_Beats(t *testing.T) {
	a := assert.New(t)

	strong := Result{Rank: 10}
	weak := Result{Rank: 100}

	a.True(strong.Beats(weak))
	a.False(weak.Beats(strong))
	a.False(strong.Beats(strong))
}
