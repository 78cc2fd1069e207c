// Package clock implements the simulation time authority: the single owner
// of the current Julian Date and playback speed. Every renderer reads time
// from here; only the driving loop writes it.
package clock

import (
	"math"
	"sync"

	"github.com/litescript/ls-orrery/internal/logging"
)

// Code identifies a validation failure.
type Code string

const (
	CodeInvalidTimeRange       Code = "INVALID_TIME_RANGE"
	CodeTimeDiscontinuity      Code = "TIME_DISCONTINUITY"
	CodeInvalidSpeedMultiplier Code = "INVALID_SPEED_MULTIPLIER"
	CodeDisposed               Code = "CLOCK_DISPOSED"
)

// Result reports the outcome of a clock mutation. Validation failures are
// values, not panics; Code is set only when OK is false.
type Result struct {
	OK   bool
	Code Code
	JD   float64 // the accepted Julian Date on success
}

func accepted(jd float64) Result {
	return Result{OK: true, JD: jd}
}

func rejected(code Code) Result {
	return Result{Code: code}
}

// Config holds the validated bounds for the clock.
type Config struct {
	MinJD       float64 // earliest representable Julian Date
	MaxJD       float64 // latest representable Julian Date
	MaxJumpDays float64 // largest single SetTime delta accepted
	MaxSpeed    float64 // largest speed multiplier accepted

	// Logger receives recovered subscriber panics. Nil discards them.
	Logger *logging.Logger
}

// DefaultConfig returns sensible default bounds: the 1900-2100 window with
// a one-year continuity budget.
func DefaultConfig() Config {
	return Config{
		MinJD:       2415020.5, // 1900-01-01
		MaxJD:       2488069.5, // 2100-01-01
		MaxJumpDays: 366,
		MaxSpeed:    1e7, // ~115 simulated days per real second
	}
}

type subscriber struct {
	id int
	fn func(jd float64)
}

// Clock is the time authority. It has exactly two pieces of mutable
// simulation state: the current Julian Date and the speed multiplier.
// "Paused" is simply speed == 0; there is no separate play/pause state.
type Clock struct {
	mu       sync.Mutex
	cfg      Config
	jd       float64
	speed    float64
	subs     []subscriber
	nextID   int
	disposed bool
	log      *logging.Logger
}

// New creates a clock at the given start instant. A start outside the
// configured range is clamped to the nearest bound.
func New(startJD float64, cfg Config) *Clock {
	if cfg.MaxJD <= cfg.MinJD {
		def := DefaultConfig()
		cfg.MinJD, cfg.MaxJD = def.MinJD, def.MaxJD
	}
	if cfg.MaxJumpDays <= 0 {
		cfg.MaxJumpDays = DefaultConfig().MaxJumpDays
	}
	if cfg.MaxSpeed <= 0 {
		cfg.MaxSpeed = DefaultConfig().MaxSpeed
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Discard()
	}

	jd := startJD
	if jd < cfg.MinJD {
		jd = cfg.MinJD
	} else if jd > cfg.MaxJD {
		jd = cfg.MaxJD
	}

	return &Clock{
		cfg:   cfg,
		jd:    jd,
		speed: 1.0,
		log:   log,
	}
}

// CurrentJD returns the current simulation time. No side effects.
func (c *Clock) CurrentJD() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.jd
}

// Speed returns the current speed multiplier (simulated seconds per real
// second; 0 means paused).
func (c *Clock) Speed() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.speed
}

// Config returns the configured bounds.
func (c *Clock) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// SetTime validates and commits a new Julian Date. The range check runs
// against the absolute target before the continuity check runs against the
// delta, so exactly one code is reported when both would fail. On success
// the stored time is updated and every subscriber is notified, in
// registration order, before SetTime returns.
func (c *Clock) SetTime(newJD float64) Result {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return rejected(CodeDisposed)
	}
	if res := checkRange(newJD, c.cfg); !res.OK {
		c.mu.Unlock()
		return res
	}
	if math.Abs(newJD-c.jd) > c.cfg.MaxJumpDays {
		c.mu.Unlock()
		return rejected(CodeTimeDiscontinuity)
	}

	c.jd = newJD
	subs := make([]subscriber, len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	// Dispatch from the snapshot, but recheck registration before each
	// delivery: a callback may have unsubscribed a later entry, and an
	// unsubscribe must be effective for the remainder of this dispatch.
	// The lock stays released during the callback itself, so reentrant
	// reads and mutations from inside a callback do not deadlock.
	for _, s := range subs {
		if !c.subscribed(s.id) {
			continue
		}
		c.notify(s, newJD)
	}
	return accepted(newJD)
}

// subscribed reports whether a subscriber id is still registered.
func (c *Clock) subscribed(id int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, s := range c.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

// SetSpeed validates and stores a new speed multiplier. Speed changes do
// not notify time subscribers; the driving loop reads the speed each tick.
func (c *Clock) SetSpeed(mult float64) Result {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return rejected(CodeDisposed)
	}
	if !validSpeed(mult, c.cfg) {
		return rejected(CodeInvalidSpeedMultiplier)
	}
	c.speed = mult
	return accepted(c.jd)
}

// Subscribe registers a callback and immediately invokes it once with the
// current time, so late subscribers never render a stale frame. The replay
// is ordered before any subsequent SetTime delivery; relative to a SetTime
// running concurrently on another goroutine the two deliveries may arrive
// in either order. The returned function deregisters the callback and is
// immediately effective, including against a dispatch already in flight;
// calling it more than once is a no-op.
func (c *Clock) Subscribe(fn func(jd float64)) func() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return func() {}
	}
	c.nextID++
	id := c.nextID
	c.subs = append(c.subs, subscriber{id: id, fn: fn})
	jd := c.jd
	c.mu.Unlock()

	c.notify(subscriber{id: id, fn: fn}, jd)

	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		for i, s := range c.subs {
			if s.id == id {
				c.subs = append(c.subs[:i], c.subs[i+1:]...)
				return
			}
		}
	}
}

// ValidateProgression is a pure pre-flight check for a prospective time
// step: both endpoints must be in range, the delta within the continuity
// budget, and the speed valid. Nothing is committed.
func (c *Clock) ValidateProgression(fromJD, toJD, speed float64) Result {
	c.mu.Lock()
	cfg := c.cfg
	c.mu.Unlock()

	if res := checkRange(fromJD, cfg); !res.OK {
		return res
	}
	if res := checkRange(toJD, cfg); !res.OK {
		return res
	}
	if math.Abs(toJD-fromJD) > cfg.MaxJumpDays {
		return rejected(CodeTimeDiscontinuity)
	}
	if !validSpeed(speed, cfg) {
		return rejected(CodeInvalidSpeedMultiplier)
	}
	return accepted(toJD)
}

// Dispose releases all subscriptions. Afterwards SetTime and SetSpeed
// reject with CodeDisposed, Subscribe returns an inert handle, and no
// callback is ever invoked again.
func (c *Clock) Dispose() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = nil
	c.disposed = true
}

// notify delivers one update, isolating subscriber panics so a faulty
// observer cannot break delivery to the rest or crash the SetTime caller.
func (c *Clock) notify(s subscriber, jd float64) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error("time subscriber %d panicked: %v", s.id, r)
		}
	}()
	s.fn(jd)
}

func checkRange(jd float64, cfg Config) Result {
	if math.IsNaN(jd) || jd < cfg.MinJD || jd > cfg.MaxJD {
		return rejected(CodeInvalidTimeRange)
	}
	return accepted(jd)
}

func validSpeed(mult float64, cfg Config) bool {
	if math.IsNaN(mult) || math.IsInf(mult, 0) {
		return false
	}
	return mult >= 0 && mult <= cfg.MaxSpeed
}
