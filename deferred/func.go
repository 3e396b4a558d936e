package deferred

// Func wraps fn into a lazy function: the first call invokes fn and every
// later call returns the cached result.
//
// The returned function is not safe for concurrent use.
func Func[T any](fn func() T) func() T {
	return New(fn).Call
}

// TryFunc wraps fn into a lazy retryable function: the first success is
// cached, failures are returned to the caller and fn is invoked again on the
// next call.
//
// The returned function is not safe for concurrent use.
func TryFunc[T any](fn func() (T, error)) func() (T, error) {
	return NewRetryable(fn).TryCall
}
