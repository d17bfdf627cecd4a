package actionclock

import (
	"sync"
	"time"
)

// State is the lifecycle state of a clock
type State int

// clock states
const (
	StateIdle State = iota
	StateRunning
	StateCompleted
	StateExpired
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateCompleted:
		return "completed"
	case StateExpired:
		return "expired"
	}

	panic("unknown state")
}

// Config configures a clock
type Config struct {
	// Duration is the primary time budget for the turn
	Duration time.Duration

	// Grace is a fixed buffer after the primary timer elapses, protecting
	// actions that were sent just before expiry but processed late
	Grace time.Duration

	// Extension is how much each time-bank use adds
	Extension time.Duration

	// MaxExtensions caps time-bank uses for this clock
	MaxExtensions int
}

// Clock is a cancelable countdown for a single turn.
//
// State machine: Idle -> Running -> Completed (action received) or
// Expired (primary + grace elapsed). The timeout and completion callbacks
// each fire at most once per Start, and a late ActionReceived after expiry is
// a no-op. All transitions hold the mutex so a racing timeout and player
// action cannot both resolve the turn.
type Clock struct {
	mu             sync.Mutex
	config         Config
	state          State
	deadline       time.Time
	extensionsUsed int
	timer          *time.Timer

	onComplete func()
	onTimeout  func()
}

// New returns a clock in the Idle state
// Either callback may be nil.
func New(config Config, onComplete, onTimeout func()) *Clock {
	return &Clock{
		config:     config,
		state:      StateIdle,
		onComplete: onComplete,
		onTimeout:  onTimeout,
	}
}

// Start begins the countdown
// Start panics if the clock is already running; a clock may be restarted
// after it completed or expired.
func (c *Clock) Start() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateRunning {
		panic("clock is already running")
	}

	c.state = StateRunning
	c.extensionsUsed = 0
	c.deadline = time.Now().Add(c.config.Duration)
	c.timer = time.AfterFunc(c.config.Duration, c.primaryElapsed)
}

// primaryElapsed starts the network-grace window
func (c *Clock) primaryElapsed() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}

	c.timer = time.AfterFunc(c.config.Grace, c.graceElapsed)
}

// graceElapsed expires the clock and fires the timeout callback
func (c *Clock) graceElapsed() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}

	c.state = StateExpired
	cb := c.onTimeout
	c.mu.Unlock()

	// fire outside the lock so the callback may query the clock
	if cb != nil {
		cb()
	}
}

// ActionReceived resolves the turn. Calling it after expiry, or more than
// once, is a no-op.
func (c *Clock) ActionReceived() {
	c.mu.Lock()
	if c.state != StateRunning {
		c.mu.Unlock()
		return
	}

	c.timer.Stop()
	c.state = StateCompleted
	cb := c.onComplete
	c.mu.Unlock()

	if cb != nil {
		cb()
	}
}

// Cancel stops a running clock without firing either callback
func (c *Clock) Cancel() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return
	}

	c.timer.Stop()
	c.state = StateIdle
}

// UseTimeExtension adds Extension to the remaining time. It reschedules the
// primary timer rather than stacking a second one, and is only allowed while
// the clock is running and under the extension cap.
func (c *Clock) UseTimeExtension() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning || c.extensionsUsed >= c.config.MaxExtensions {
		return false
	}

	c.extensionsUsed++
	c.timer.Stop()

	remaining := time.Until(c.deadline)
	if remaining < 0 {
		remaining = 0
	}

	d := remaining + c.config.Extension
	c.deadline = time.Now().Add(d)
	c.timer = time.AfterFunc(d, c.primaryElapsed)

	return true
}

// Remaining returns how much primary time is left
func (c *Clock) Remaining() time.Duration {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateRunning {
		return 0
	}

	remaining := time.Until(c.deadline)
	if remaining < 0 {
		return 0
	}

	return remaining
}

// State returns the current state
func (c *Clock) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.state
}

// ExtensionsUsed returns how many time-bank extensions have been consumed
func (c *Clock) ExtensionsUsed() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.extensionsUsed
}
