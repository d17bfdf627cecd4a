package poker

import (
	"testing"

	ph "github.com/paulhankin/poker"
	"github.com/stretchr/testify/assert"

	"tripleboardpoker-server/internal/rng"
	"tripleboardpoker-server/pkg/deck"
)

func rankOf(t *testing.T, s string) int {
	t.Helper()
	return Evaluate(deck.CardsFromString(s))
}

func TestEvaluate_categoryFixtures(t *testing.T) {
	a := assert.New(t)

	fixtures := []struct {
		cards    string
		category Category
	}{
		{"14s,13s,12s,11s,10s", StraightFlush}, // royal
		{"5h,4h,3h,2h,14h", StraightFlush},     // steel wheel
		{"9c,9d,9h,9s,2c", FourOfAKind},
		{"8c,8d,8h,3s,3c", FullHouse},
		{"14d,12d,9d,6d,3d", Flush},
		{"10c,9d,8h,7s,6c", Straight},
		{"14c,5d,4h,3s,2c", Straight}, // wheel
		{"7c,7d,7h,13s,2c", ThreeOfAKind},
		{"11c,11d,4h,4s,14c", TwoPair},
		{"10c,10d,14h,7s,2c", OnePair},
		{"14c,12d,10h,8s,6c", HighCard},
	}

	for _, fixture := range fixtures {
		rank := rankOf(t, fixture.cards)
		a.Equal(fixture.category, CategoryOf(rank), fixture.cards)
	}

	// royal flush is the single best hand
	a.Equal(1, rankOf(t, "14s,13s,12s,11s,10s"))

	// the worst high card hand
	a.Equal(RankWorst, rankOf(t, "7s,5d,4h,3s,2c"))
}

// every category must strictly outrank the one below it, even comparing the
// weakest hand of the stronger category against the strongest of the weaker
func TestEvaluate_categoryBoundaries(t *testing.T) {
	a := assert.New(t)

	ladder := []string{
		"5h,4h,3h,2h,14h",    // worst straight flush
		"14c,14d,14h,14s,13c", // best four of a kind
		"2c,2d,2h,2s,3c",      // worst four of a kind
		"14c,14d,14h,13s,13c", // best full house
		"2c,2d,2h,3s,3c",      // worst full house
		"14d,13d,12d,11d,9d",  // best flush
		"7d,5d,4d,3d,2d",      // worst flush
		"14c,13d,12h,11s,10c", // best straight
		"14c,5d,4h,3s,2c",     // worst straight (wheel)
		"14c,14d,14h,13s,12c", // best three of a kind
		"2c,2d,2h,4s,3c",      // worst three of a kind
		"14c,14d,13h,13s,12c", // best two pair
		"3c,3d,2h,2s,4c",      // worst two pair
		"14c,14d,13h,12s,11c", // best pair
		"2c,2d,5h,4s,3c",      // worst pair
		"14c,13d,12h,11s,9c",  // best high card
		"7s,5d,4h,3s,2c",      // worst high card
	}

	prev := rankOf(t, ladder[0])
	a.Equal(10, prev, "worst straight flush must be rank 10")
	for _, cards := range ladder[1:] {
		rank := rankOf(t, cards)
		a.Greater(rank, prev, cards)
		prev = rank
	}
}

func TestEvaluate_kickersBreakTies(t *testing.T) {
	a := assert.New(t)

	// better kicker wins inside a category
	a.Less(rankOf(t, "10c,10d,14h,7s,2c"), rankOf(t, "10c,10d,13h,7s,2c"))
	// suits never matter off a flush
	a.Equal(rankOf(t, "10c,10d,14h,7s,2c"), rankOf(t, "10h,10s,14d,7c,2d"))
}

func TestEvaluate_tableSizes(t *testing.T) {
	a := assert.New(t)

	// 1287 five-rank sets, 6175 paired + straight products
	a.Equal(1287, len(flushRanks))
	a.Equal(6175, len(unsuitedRanks))
}

func TestEvaluate_wrongArity(t *testing.T) {
	assert.Panics(t, func() {
		Evaluate(deck.CardsFromString("2c,3c"))
	})
}

// toOracle converts to a github.com/paulhankin/poker card, which scores
// hands in the opposite direction (higher is stronger)
func toOracle(t *testing.T, c *deck.Card) ph.Card {
	t.Helper()

	var s ph.Suit
	switch c.Suit {
	case deck.Clubs:
		s = ph.Club
	case deck.Diamonds:
		s = ph.Diamond
	case deck.Hearts:
		s = ph.Heart
	case deck.Spades:
		s = ph.Spade
	}

	r := ph.Rank(c.Rank)
	if c.Rank == deck.Ace {
		r = ph.Rank(1)
	}

	card, err := ph.MakeCard(s, r)
	if err != nil {
		t.Fatalf("could not make oracle card %s: %v", c, err)
	}

	return card
}

func oracleEval5(t *testing.T, cards []*deck.Card) int16 {
	t.Helper()

	var a5 [5]ph.Card
	for i, c := range cards {
		a5[i] = toOracle(t, c)
	}

	return ph.Eval5(&a5)
}

// cross-check a sample of random hands against an independent evaluator:
// whenever the oracle says hand A is stronger than hand B, ours must agree
func TestEvaluate_oracleCrossCheck(t *testing.T) {
	a := assert.New(t)

	d := deck.NewWithRNG(rng.NewSeeded(1))
	for trial := 0; trial < 500; trial++ {
		d.Shuffle()

		h1 := draw(t, d, 5)
		h2 := draw(t, d, 5)

		ours := Evaluate(h1) - Evaluate(h2)
		oracle := oracleEval5(t, h1) - oracleEval5(t, h2)

		switch {
		case oracle > 0: // oracle: h1 stronger
			a.Less(ours, 0, "%s vs %s", deck.CardsToString(h1), deck.CardsToString(h2))
		case oracle < 0:
			a.Greater(ours, 0, "%s vs %s", deck.CardsToString(h1), deck.CardsToString(h2))
		default:
			a.Zero(ours, "%s vs %s", deck.CardsToString(h1), deck.CardsToString(h2))
		}
	}
}

func draw(t *testing.T, d *deck.Deck, n int) []*deck.Card {
	t.Helper()

	cards := make([]*deck.Card, n)
	for i := range cards {
		card, err := d.Draw()
		if err != nil {
			t.Fatal(err)
		}
		cards[i] = card
	}

	return cards
}
