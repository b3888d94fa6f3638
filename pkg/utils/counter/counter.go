// The package counter defines a minimalistic atomic counter
package counter

import (
	"sync/atomic"
)

// Int is a counter that can be shared across goroutines.
type Int struct {
	counter atomic.Int64
}

// NewInt() returns a new Int counter.
func NewInt() *Int {
	return &Int{}
}

// Add() increases the counter by delta and returns the current value.
func (c *Int) Add(delta int64) int64 {
	if c == nil {
		return 0
	}

	return c.counter.Add(delta)
}

// Load() returns the current value.
func (c *Int) Load() int64 {
	if c == nil {
		return 0
	}
	return c.counter.Load()
}

// Store() overwrites the current value to val.
func (c *Int) Store(val int64) {
	if c == nil {
		return
	}

	c.counter.Store(val)
}
