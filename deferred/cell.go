package deferred

import (
	"errors"
	"fmt"
)

// ErrPoisoned is reported by the fallible disciplines once a cell has been
// poisoned. It carries no payload: the failure that caused the poisoning is
// surfaced to the call that failed, never retained for later callers.
var ErrPoisoned = errors.New("deferred: cell is poisoned")

type cellState uint8

const (
	statePending cellState = iota
	statePoisoned
	stateReady
)

// Cell wraps a zero-argument computation and evaluates it at most once.
//
// The zero value has no computation and cannot be evaluated; use New,
// NewFallible or NewRetryable.
type Cell[T any] struct {
	state cellState
	fn    func() (T, error)
	value T

	// capability of the wrapped computation, fixed at construction
	fallible  bool
	retryable bool
}

// New returns a cell wrapping an infallible one-shot computation,
// to be driven through Call.
func New[T any](fn func() T) *Cell[T] {
	if fn == nil {
		panic("deferred: nil computation")
	}
	return &Cell[T]{fn: func() (T, error) { return fn(), nil }}
}

// NewFallible returns a cell wrapping a fallible one-shot computation,
// to be driven through PoisoningTryCall.
func NewFallible[T any](fn func() (T, error)) *Cell[T] {
	if fn == nil {
		panic("deferred: nil computation")
	}
	return &Cell[T]{fn: fn, fallible: true}
}

// NewRetryable returns a cell wrapping a fallible computation that tolerates
// repeated invocation, to be driven through TryCall.
func NewRetryable[T any](fn func() (T, error)) *Cell[T] {
	if fn == nil {
		panic("deferred: nil computation")
	}
	return &Cell[T]{fn: fn, fallible: true, retryable: true}
}

// Call runs the computation on first use and returns the cached value on
// every later use.
//
// Call panics if the cell is poisoned: its computation has no error channel,
// so a poisoned cell here means a previous invocation panicked, and using it
// again is a programming error. Call also panics if the cell was built with a
// fallible computation.
func (c *Cell[T]) Call() T {
	switch c.state {
	case stateReady:
		return c.value
	case statePoisoned:
		panic("deferred: Call on poisoned cell")
	}
	if c.fallible {
		panic("deferred: Call on fallible computation, use PoisoningTryCall or TryCall")
	}
	fn := c.take()
	v, _ := fn()
	c.settle(v)
	return v
}

// PoisoningTryCall runs the computation on first use, consuming it whatever
// the outcome.
//
// On success the value is cached and returned. On failure the cell is
// poisoned for good: this call returns the original error (wrapped so that
// errors.Is(err, ErrPoisoned) also holds) and every later access reports
// ErrPoisoned without any re-invocation.
//
// PoisoningTryCall panics if the cell was built with an infallible
// computation.
func (c *Cell[T]) PoisoningTryCall() (T, error) {
	switch c.state {
	case stateReady:
		return c.value, nil
	case statePoisoned:
		var zero T
		return zero, ErrPoisoned
	}
	if !c.fallible {
		panic("deferred: PoisoningTryCall on infallible computation, use Call")
	}
	fn := c.take()
	v, err := fn()
	if err != nil {
		var zero T
		return zero, fmt.Errorf("%w: %w", ErrPoisoned, err)
	}
	c.settle(v)
	return v, nil
}

// TryCall runs the computation on first use, keeping it in the cell on
// failure.
//
// On success the value is cached, the computation is dropped, and every later
// access returns the cached value. On failure the error is returned verbatim
// and the cell stays pending, so the next TryCall invokes the computation
// again. Only a panic inside the computation poisons the cell, after which
// TryCall reports ErrPoisoned.
//
// TryCall panics if the cell's computation was not declared retryable.
func (c *Cell[T]) TryCall() (T, error) {
	switch c.state {
	case stateReady:
		return c.value, nil
	case statePoisoned:
		var zero T
		return zero, ErrPoisoned
	}
	if !c.retryable {
		panic("deferred: TryCall on one-shot computation, use PoisoningTryCall")
	}
	fn := c.take()
	v, err := fn()
	if err != nil {
		c.fn = fn
		c.state = statePending
		var zero T
		return zero, err
	}
	c.settle(v)
	return v, nil
}

// take moves the computation out of the cell, leaving the cell poisoned.
// A panic inside the computation then unwinds past a cell that is already
// poisoned and no longer holds the closure. settle flips the state to ready
// on success; the retry-safe discipline restores pending on failure.
func (c *Cell[T]) take() func() (T, error) {
	if c.fn == nil {
		panic("deferred: zero Cell has no computation")
	}
	fn := c.fn
	c.fn = nil
	c.state = statePoisoned
	return fn
}

func (c *Cell[T]) settle(v T) {
	c.value = v
	c.state = stateReady
}

// IsPoisoned reports whether the cell is poisoned.
func (c *Cell[T]) IsPoisoned() bool { return c.state == statePoisoned }

// IsReady reports whether the cell holds a cached value.
func (c *Cell[T]) IsReady() bool { return c.state == stateReady }

// IsPending reports whether the computation has not produced a value yet.
func (c *Cell[T]) IsPending() bool { return c.state == statePending }

// Value returns the cached value, if the cell has one. It never triggers an
// evaluation.
func (c *Cell[T]) Value() (T, bool) {
	if c.state != stateReady {
		var zero T
		return zero, false
	}
	return c.value, true
}
