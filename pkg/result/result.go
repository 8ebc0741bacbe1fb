// Package result provides the success/failure envelope returned by every
// operation that crosses an I/O boundary.
package result

// Result holds either a value or an error, never both.
type Result[T any] struct {
	ok    bool
	value T
	err   error
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{ok: true, value: v}
}

// Fail wraps an error. A nil error is still a failure.
func Fail[T any](err error) Result[T] {
	return Result[T]{err: err}
}

// Process runs fn and converts its (value, error) pair into a Result.
// A panic inside fn propagates.
func Process[T any](fn func() (T, error)) Result[T] {
	v, err := fn()
	if err != nil {
		return Fail[T](err)
	}
	return Ok(v)
}

// IsOk reports whether the result is the success arm.
func (r Result[T]) IsOk() bool { return r.ok }

// Unwrap returns the value and error in Go's conventional order.
func (r Result[T]) Unwrap() (T, error) {
	if !r.ok {
		var zero T
		return zero, r.err
	}
	return r.value, nil
}

// Err returns the failure error, or nil for a success.
func (r Result[T]) Err() error {
	if r.ok {
		return nil
	}
	return r.err
}

// Match calls exactly one of the handlers. Both are required.
func (r Result[T]) Match(onOk func(T), onErr func(error)) {
	if r.ok {
		onOk(r.value)
		return
	}
	onErr(r.err)
}

// Map transforms the success value, passing failures through unchanged.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.ok {
		return Fail[U](r.err)
	}
	return Ok(fn(r.value))
}
