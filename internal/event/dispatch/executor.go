package dispatch

import (
	"context"
	"runtime/debug"
	"time"
)

// Handler is the type-erased handler signature executed by the dispatcher.
type Handler func(ctx context.Context, event any) error

// PanicHandler is called when a handler panics. It receives the event being
// delivered, the recovered value, and the stack captured at recovery time.
type PanicHandler func(event any, panicValue any, stack []byte)

// Result describes a single handler execution.
type Result struct {
	// Success is true if the handler returned nil and did not panic.
	Success bool

	// Skipped is true if execution was skipped due to context cancellation.
	Skipped bool

	// Panicked is true if the handler panicked.
	Panicked bool

	// PanicValue is the value passed to panic, if Panicked.
	PanicValue any

	// PanicStack is the stack trace captured at recovery, if Panicked.
	PanicStack []byte

	// Err is the error returned by the handler, or the context error when
	// Skipped.
	Err error

	// Duration is how long the handler ran.
	Duration time.Duration
}

// Executor runs handlers with panic recovery and timing.
type Executor struct {
	panicHandler PanicHandler
}

// ExecutorOption configures an Executor.
type ExecutorOption func(*Executor)

// WithPanicHandler sets the panic handler invoked after a handler panics.
func WithPanicHandler(h PanicHandler) ExecutorOption {
	return func(e *Executor) {
		e.panicHandler = h
	}
}

// NewExecutor creates a new executor.
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs a handler with the given event and returns the result.
// A panic inside the handler is recovered, reported to the panic handler,
// and surfaced in the result; it never propagates to the caller.
func (e *Executor) Execute(ctx context.Context, event any, handler Handler) (result Result) {
	select {
	case <-ctx.Done():
		return Result{Skipped: true, Err: ctx.Err()}
	default:
	}

	start := time.Now()

	defer func() {
		result.Duration = time.Since(start)

		if r := recover(); r != nil {
			stack := debug.Stack()

			result.Success = false
			result.Panicked = true
			result.PanicValue = r
			result.PanicStack = stack

			if e.panicHandler != nil {
				// The panic handler must not be able to crash the dispatcher
				// either.
				func() {
					defer func() { _ = recover() }()
					e.panicHandler(event, r, stack)
				}()
			}
		}
	}()

	err := handler(ctx, event)
	if err != nil {
		result.Err = err
		return result
	}

	result.Success = true
	return result
}
