// Package response implements the Loading/Success/Error result protocol
// shared by repositories, use cases and services.
//
// A Response is a closed three-state value. Callers inspect it with Match,
// which takes one function per state, so every state is handled.
//
// Operations hand Responses out as channels:
//
//	mutations: Loading, then exactly one terminal value, then close
//	queries:   Loading, then Success on every store change until ctx ends
//	rejections (validation before any I/O): a single Error, then close
package response

import (
	"context"
	"fmt"
)

// State is one of the three protocol states.
type State uint8

const (
	StateLoading State = iota
	StateSuccess
	StateError
)

func (s State) String() string {
	switch s {
	case StateLoading:
		return "loading"
	case StateSuccess:
		return "success"
	case StateError:
		return "error"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Kind classifies an Error.
type Kind uint8

const (
	// KindValidation: input rejected before touching storage.
	KindValidation Kind = iota + 1
	// KindNotFound: update/delete matched no row, or a lookup found nothing.
	KindNotFound
	// KindConflict: a uniqueness or referential rule rejected the write.
	KindConflict
	// KindInternal: any other storage fault.
	KindInternal
	// KindCancelled: the caller stopped waiting before a terminal value.
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindConflict:
		return "conflict"
	case KindInternal:
		return "internal"
	case KindCancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// MsgInterrupted is the message of the error Await returns when the stream
// ends without a terminal value.
const MsgInterrupted = "Operação interrompida."

// Response is the tri-state result of an operation.
type Response[T any] struct {
	state   State
	value   T
	kind    Kind
	message string
}

// Loading reports that an operation started.
func Loading[T any]() Response[T] {
	return Response[T]{state: StateLoading}
}

// Success carries the value of a completed operation.
func Success[T any](value T) Response[T] {
	return Response[T]{state: StateSuccess, value: value}
}

// Error carries a user-facing message for a failed or rejected operation.
func Error[T any](kind Kind, message string) Response[T] {
	return Response[T]{state: StateError, kind: kind, message: message}
}

// State returns the protocol state.
func (r Response[T]) State() State { return r.state }

// Value returns the success value. ok is false in any other state.
func (r Response[T]) Value() (value T, ok bool) {
	return r.value, r.state == StateSuccess
}

// Message returns the user-facing error message, empty unless StateError.
func (r Response[T]) Message() string { return r.message }

// Kind returns the error classification, zero unless StateError.
func (r Response[T]) Kind() Kind { return r.kind }

// Terminal reports whether r ends a mutation stream.
func (r Response[T]) Terminal() bool { return r.state != StateLoading }

// Failed reports whether r is an Error.
func (r Response[T]) Failed() bool { return r.state == StateError }

func (r Response[T]) String() string {
	switch r.state {
	case StateSuccess:
		return fmt.Sprintf("Success(%v)", r.value)
	case StateError:
		return fmt.Sprintf("Error(%s: %s)", r.kind, r.message)
	default:
		return "Loading"
	}
}

// Match calls the function for r's state and returns its result.
func Match[T, R any](r Response[T], onLoading func() R, onSuccess func(T) R, onError func(Kind, string) R) R {
	switch r.state {
	case StateSuccess:
		return onSuccess(r.value)
	case StateError:
		return onError(r.kind, r.message)
	default:
		return onLoading()
	}
}

// Map converts the success value of r, keeping Loading and Error as they are.
func Map[T, R any](r Response[T], fn func(T) R) Response[R] {
	return Match(r,
		Loading[R],
		func(v T) Response[R] { return Success(fn(v)) },
		Error[R],
	)
}

// Once runs fn on its own goroutine and returns a stream that emits
// Loading followed by fn's result. The stream is buffered, so nobody has to
// drain it.
func Once[T any](ctx context.Context, fn func(ctx context.Context) Response[T]) <-chan Response[T] {
	out := make(chan Response[T], 2)
	out <- Loading[T]()
	go func() {
		defer close(out)
		out <- fn(ctx)
	}()
	return out
}

// Reject returns a stream holding a single validation Error.
func Reject[T any](message string) <-chan Response[T] {
	out := make(chan Response[T], 1)
	out <- Error[T](KindValidation, message)
	close(out)
	return out
}

// Await blocks until ch yields a terminal Response and returns it.
// If ctx ends or ch closes first, it returns a KindCancelled Error.
func Await[T any](ctx context.Context, ch <-chan Response[T]) Response[T] {
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return Error[T](KindCancelled, MsgInterrupted)
			}
			if r.Terminal() {
				return r
			}
		case <-ctx.Done():
			return Error[T](KindCancelled, MsgInterrupted)
		}
	}
}
