// Package deferred provides a single-goroutine deferred cell: a zero-argument
// computation that runs at most once, with its outcome cached for every later
// access.
//
// A Cell is always in exactly one of three states:
//
//   - pending: the computation has not produced a value yet and is still held
//     by the cell,
//   - ready: the computation succeeded and the cell holds its value,
//   - poisoned: the computation failed under the poisoning discipline, or
//     panicked under any discipline; the cell is permanently unusable.
//
// Three access disciplines drive the same state machine:
//
//   - Call for infallible computations. The first call runs the computation,
//     later calls return the cached value.
//   - PoisoningTryCall for one-shot fallible computations. A failure discards
//     the computation and poisons the cell for good.
//   - TryCall for retryable fallible computations. A failure is returned to
//     the caller and the computation stays in the cell, so a later call may
//     try again. Whether and when to retry is entirely the caller's decision.
//
// The computation's shape is fixed at construction: New takes a func() T,
// NewFallible and NewRetryable take a func() (T, error). Driving a cell
// through a discipline its computation cannot support is a programming error
// and panics.
//
// A Cell is not safe for concurrent use. It is meant to live on a single
// goroutine; callers that share one must provide their own synchronization.
package deferred
