package poker

import "encoding/json"

// Category is one of the ten standard poker hand categories
type Category int

// categories from weakest to strongest
const (
	HighCard Category = iota
	OnePair
	TwoPair
	ThreeOfAKind
	Straight
	Flush
	FullHouse
	FourOfAKind
	StraightFlush
)

// fixed rank-range boundaries. Rank 1 is a royal flush, rank 7462 the worst
// high card. The generator in evaluator.go assigns ranks so these hold.
const (
	rankLastStraightFlush = 10
	rankLastFourOfAKind   = 166
	rankLastFullHouse     = 322
	rankLastFlush         = 1599
	rankLastStraight      = 1609
	rankLastThreeOfAKind  = 2467
	rankLastTwoPair       = 3325
	rankLastOnePair       = 6185

	// RankWorst is the weakest possible 5-card rank
	RankWorst = 7462
)

// CategoryOf returns the category for an evaluator rank
func CategoryOf(rank int) Category {
	switch {
	case rank <= rankLastStraightFlush:
		return StraightFlush
	case rank <= rankLastFourOfAKind:
		return FourOfAKind
	case rank <= rankLastFullHouse:
		return FullHouse
	case rank <= rankLastFlush:
		return Flush
	case rank <= rankLastStraight:
		return Straight
	case rank <= rankLastThreeOfAKind:
		return ThreeOfAKind
	case rank <= rankLastTwoPair:
		return TwoPair
	case rank <= rankLastOnePair:
		return OnePair
	}

	return HighCard
}

func (c Category) String() string {
	switch c {
	case HighCard:
		return "High card"
	case OnePair:
		return "Pair"
	case TwoPair:
		return "Two pair"
	case ThreeOfAKind:
		return "Three of a kind"
	case Straight:
		return "Straight"
	case Flush:
		return "Flush"
	case FullHouse:
		return "Full house"
	case FourOfAKind:
		return "Four of a kind"
	case StraightFlush:
		return "Straight flush"
	}

	panic("unknown category")
}

// MarshalJSON encodes the category into JSON
func (c Category) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID   int    `json:"id"`
		Name string `json:"name"`
	}{
		ID:   int(c),
		Name: c.String(),
	})
}
