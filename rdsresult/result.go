// Package rdsresult provides a uniform success/error return value used
// throughout rdscom instead of bare (T, error) pairs, mirroring the source
// library's Result<T> carrier.
package rdsresult

import (
	"strings"

	"github.com/rds-dev/rdscom/rdserrors"
)

// Result is either a value of type T or an error. The zero value is an
// error result, matching the source's "default constructed Result is an
// error" behavior.
type Result[T any] struct {
	value T
	err   *rdserrors.Error
	ok    bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] {
	return Result[T]{value: v, ok: true}
}

// Err wraps a failure.
func Err[T any](err *rdserrors.Error) Result[T] {
	return Result[T]{err: err}
}

// IsError reports whether the result carries an error.
func (r Result[T]) IsError() bool {
	return !r.ok
}

// Value returns the carried value. It is the zero value of T if the result
// is an error.
func (r Result[T]) Value() T {
	return r.value
}

// Error returns the carried error, or nil on success.
func (r Result[T]) Error() *rdserrors.Error {
	return r.err
}

// ErrorMessage returns the error's message, or "" on success.
func (r Result[T]) ErrorMessage() string {
	if r.err == nil {
		return ""
	}
	return r.err.Message
}

// anyResult is the type-erased view Check needs to fan multiple
// Result[T] of different T in together.
type anyResult interface {
	IsError() bool
	ErrorMessage() string
}

// Check fans a batch of Results into a single error callback: if any result
// is an error, their non-empty messages are joined with newlines and passed
// to onError, and Check returns true. Modeled on the source's variadic
// check() helper, used at the application layer to batch-validate several
// set-field calls in one pass.
func Check(onError func(string), results ...anyResult) bool {
	var messages []string
	hasError := false
	for _, r := range results {
		if r.IsError() {
			hasError = true
			if msg := r.ErrorMessage(); msg != "" {
				messages = append(messages, msg)
			}
		}
	}
	if hasError {
		onError(strings.Join(messages, "\n"))
		return true
	}
	return false
}
