package log

import (
	"github.com/google/uuid"
	"github.com/on-the-ground/deferred_go/deferred"
	"go.uber.org/zap"
)

// Observed decorates a deferred cell with structured logging of every
// evaluation attempt and state transition. The underlying cell itself never
// logs: poisoning stays silent beyond the returned or raised signal, and
// observation is strictly an opt-in wrapper concern.
//
// Like the cell it wraps, an Observed is not safe for concurrent use.
type Observed[T any] struct {
	cell   *deferred.Cell[T]
	logger *zap.Logger
	name   string
	id     string
}

// Observe wraps cell so that evaluations are logged through logger under the
// given name. Each observed cell gets a uuid so its log lines can be
// correlated when several cells share a name.
func Observe[T any](cell *deferred.Cell[T], name string, logger *zap.Logger) *Observed[T] {
	if cell == nil {
		panic("log: nil cell")
	}
	if logger == nil {
		panic("log: nil logger")
	}
	return &Observed[T]{
		cell:   cell,
		logger: logger,
		name:   name,
		id:     uuid.New().String(),
	}
}

// Call delegates to the cell's infallible discipline, logging the attempt and
// its outcome. A panic from the computation propagates after the poisoning
// transition has been logged.
func (o *Observed[T]) Call() T {
	if v, ok := o.cell.Value(); ok {
		return v
	}
	o.logger.Debug("evaluating deferred cell", o.fields()...)
	defer o.logOutcome(nil)
	return o.cell.Call()
}

// PoisoningTryCall delegates to the cell's poison-on-failure discipline,
// logging the attempt and its outcome.
func (o *Observed[T]) PoisoningTryCall() (v T, err error) {
	if v, ok := o.cell.Value(); ok {
		return v, nil
	}
	o.logger.Debug("evaluating deferred cell", o.fields()...)
	defer func() { o.logOutcome(err) }()
	return o.cell.PoisoningTryCall()
}

// TryCall delegates to the cell's retry-safe discipline, logging the attempt
// and its outcome.
func (o *Observed[T]) TryCall() (v T, err error) {
	if v, ok := o.cell.Value(); ok {
		return v, nil
	}
	o.logger.Debug("evaluating deferred cell", o.fields()...)
	defer func() { o.logOutcome(err) }()
	return o.cell.TryCall()
}

// Cell returns the wrapped cell.
func (o *Observed[T]) Cell() *deferred.Cell[T] { return o.cell }

// IsPoisoned reports whether the wrapped cell is poisoned.
func (o *Observed[T]) IsPoisoned() bool { return o.cell.IsPoisoned() }

// IsReady reports whether the wrapped cell holds a cached value.
func (o *Observed[T]) IsReady() bool { return o.cell.IsReady() }

// IsPending reports whether the wrapped cell is still pending.
func (o *Observed[T]) IsPending() bool { return o.cell.IsPending() }

// Value returns the wrapped cell's cached value, if any.
func (o *Observed[T]) Value() (T, bool) { return o.cell.Value() }

// logOutcome reports how an evaluation attempt ended. It runs deferred, so a
// panic unwinding out of the computation still gets its poisoning transition
// logged before propagating.
func (o *Observed[T]) logOutcome(err error) {
	switch {
	case o.cell.IsReady():
		o.logger.Info("deferred cell ready", o.fields()...)
	case o.cell.IsPoisoned():
		o.logger.Error("deferred cell poisoned", o.fields(zap.Error(err))...)
	default:
		o.logger.Warn("deferred cell evaluation failed", o.fields(zap.Error(err))...)
	}
}

func (o *Observed[T]) fields(extra ...zap.Field) []zap.Field {
	fields := make([]zap.Field, 0, 2+len(extra))
	fields = append(fields,
		zap.String("cell", o.name),
		zap.String("cell_id", o.id),
	)
	return append(fields, extra...)
}
