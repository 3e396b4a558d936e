// Package memo provides keyed memoization built on retryable deferred cells.
//
// A Table holds one cell per key: the first Get for a key runs the compute
// function, a success is cached for the table's lifetime, and a failure is
// returned to the caller without being cached, so the next Get for that key
// tries again.
//
// The table is bounded. Entries live in two generations; when the current
// generation fills up, the older one is dropped wholesale and its keys are
// recomputed on next use. This keeps memory bounded without per-entry
// bookkeeping.
//
// Like the cells underneath, a Table is not safe for concurrent use.
package memo
