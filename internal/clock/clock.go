// Package clock converts elapsed wall clock time into CPU cycles and 60 Hz
// timer ticks.
package clock

import (
	"errors"
	"fmt"
	"time"
)

// TimerRate is the fixed rate of the delay and sound timers in Hz.
const TimerRate = 60

// DefaultRate is the default instruction rate in Hz.
const DefaultRate = 500

var ErrInvalidRate = errors.New("invalid instruction rate")

// Machine is driven by the clock.
type Machine interface {
	// Cycle executes a single instruction.
	Cycle() error
	// TickTimers decrements the timers once.
	TickTimers()
}

// Clock accumulates elapsed time as cycle and timer credits. Credits are
// kept as rate scaled durations so that no rounding error builds up, one
// whole credit equals one second.
type Clock struct {
	rate time.Duration // instructions per second

	cycleCredit time.Duration
	timerCredit time.Duration
}

// Result contains the work done by a single Advance call.
type Result struct {
	Cycles int
	Ticks  int
}

// New returns a clock that executes rate instructions per second.
func New(rate int) (*Clock, error) {
	if rate <= 0 {
		return nil, fmt.Errorf("%w: %d Hz", ErrInvalidRate, rate)
	}
	return &Clock{
		rate: time.Duration(rate),
	}, nil
}

// Rate returns the instruction rate in Hz.
func (c *Clock) Rate() int {
	return int(c.rate)
}

// Period returns the duration of a single instruction cycle.
func (c *Clock) Period() time.Duration {
	return time.Second / c.rate
}

// Advance adds the elapsed time to the credits and runs one cycle per whole
// cycle credit followed by one timer tick per whole timer credit. Fractions
// are kept for the next call. A failing cycle aborts the call, the remaining
// credits and the timer ticks of this call are kept.
func (c *Clock) Advance(delta time.Duration, machine Machine) (Result, error) {
	var result Result
	if delta < 0 {
		delta = 0
	}

	c.cycleCredit += delta * c.rate
	c.timerCredit += delta * TimerRate

	for c.cycleCredit >= time.Second {
		c.cycleCredit -= time.Second
		if err := machine.Cycle(); err != nil {
			return result, err
		}
		result.Cycles++
	}

	for c.timerCredit >= time.Second {
		c.timerCredit -= time.Second
		machine.TickTimers()
		result.Ticks++
	}

	return result, nil
}

// Pending returns the fractional cycle and timer credits that are carried
// over to the next Advance call.
func (c *Clock) Pending() (cycles, ticks float64) {
	return c.cycleCredit.Seconds(), c.timerCredit.Seconds()
}

// Reset drops all accumulated credits.
func (c *Clock) Reset() {
	c.cycleCredit = 0
	c.timerCredit = 0
}
