package game

import (
	"fmt"

	"grid-snake/game/types"
)

// Cadence gates snake movement against the simulation tick rate.
// A move-tick fires every threshold ticks, threshold = ticksPerSecond / movesPerSecond.
type Cadence struct {
	threshold int
	counter   int
}

func NewCadence(ticksPerSecond, movesPerSecond int) (*Cadence, error) {
	if ticksPerSecond <= 0 || movesPerSecond <= 0 {
		return nil, fmt.Errorf("%w: ticks per second %d and moves per second %d must be positive",
			types.ErrConfiguration, ticksPerSecond, movesPerSecond)
	}
	threshold := ticksPerSecond / movesPerSecond
	if threshold < 1 {
		return nil, fmt.Errorf("%w: %d moves per second exceeds %d ticks per second",
			types.ErrConfiguration, movesPerSecond, ticksPerSecond)
	}
	return &Cadence{threshold: threshold}, nil
}

// Step counts one tick and reports whether the snake moves on it
func (c *Cadence) Step() bool {
	c.counter++
	if c.counter >= c.threshold {
		c.counter = 0
		return true
	}
	return false
}

func (c *Cadence) Threshold() int {
	return c.threshold
}
