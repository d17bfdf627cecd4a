package tripleboard

import (
	"errors"
	"fmt"
	"time"
)

// Options configures how Triple-Board Omaha is played
type Options struct {
	// SmallBlind and BigBlind are posted each hand
	SmallBlind int
	BigBlind   int

	// BetMin and BetMax bound the total a seat may have in play on a street
	BetMin int
	BetMax int

	// Seats is the ring size (2, 3, or 6)
	Seats int

	// BuyInMin and BuyInMax bound a single buy-in
	BuyInMin int
	BuyInMax int

	// ActionTime is the per-turn budget; ActionGrace is the network buffer
	// after it elapses
	ActionTime  time.Duration
	ActionGrace time.Duration

	// TimeExtension is the size of one time-bank use;
	// MaxExtensionsPerRound caps uses per seat per betting round
	TimeExtension         time.Duration
	MaxExtensionsPerRound int

	// ArrangeTime is the window players have to arrange their twelve cards
	ArrangeTime time.Duration

	// ShowdownPacing is the delay between board payouts so clients can
	// animate each reveal
	ShowdownPacing time.Duration

	// InterPhaseDelay paces ordinary phase transitions
	InterPhaseDelay time.Duration

	// ChipUnit is the payout rounding denomination. Tied pots are split to
	// multiples of ChipUnit with remainders handed out in table order.
	ChipUnit int
}

// DefaultOptions returns the default options for Triple-Board Omaha
func DefaultOptions() Options {
	return Options{
		SmallBlind:            5,
		BigBlind:              10,
		BetMin:                10,
		BetMax:                500,
		Seats:                 6,
		BuyInMin:              200,
		BuyInMax:              2000,
		ActionTime:            30 * time.Second,
		ActionGrace:           time.Second,
		TimeExtension:         15 * time.Second,
		MaxExtensionsPerRound: 2,
		ArrangeTime:           45 * time.Second,
		ShowdownPacing:        3 * time.Second,
		InterPhaseDelay:       time.Second,
		ChipUnit:              1,
	}
}

func validateOptions(opts Options) error {
	if opts.SmallBlind <= 0 || opts.BigBlind <= 0 {
		return errors.New("blinds must be > 0")
	}

	if opts.SmallBlind > opts.BigBlind {
		return errors.New("small blind must not exceed the big blind")
	}

	switch opts.Seats {
	case 2, 3, 6:
	default:
		return fmt.Errorf("table must seat 2, 3, or 6 players, not %d", opts.Seats)
	}

	if opts.BetMin < opts.BigBlind {
		return errors.New("minimum bet must be at least the big blind")
	}

	if opts.BetMax < opts.BetMin {
		return errors.New("maximum bet must be at least the minimum bet")
	}

	if opts.BuyInMin <= 0 || opts.BuyInMax < opts.BuyInMin {
		return errors.New("invalid buy-in bounds")
	}

	if opts.ChipUnit <= 0 {
		return errors.New("chip unit must be > 0")
	}

	return nil
}
