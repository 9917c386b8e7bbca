// Package future provides a settlable asynchronous value.
//
// A [Future] starts pending and settles exactly once: resolved with a value,
// rejected with an error, or cancelled. It implements the promise capability
// set consumed by the bin package (Pending, Finally, Cancel), so a pending
// future can be handed to a Bin and cancelled by its cleanup.
//
// Completion callbacks registered with [Future.Finally] run exactly once,
// after settlement, in registration order. A panicking callback is isolated
// so settlement always completes.
package future

import (
	"errors"
	"sync"

	"github.com/sourcegraph/conc/panics"
)

// ErrCanceled is the error a cancelled future settles with.
var ErrCanceled = errors.New("future canceled")

// State is the settlement state of a Future.
type State int

const (
	// StatePending means the future has not settled.
	StatePending State = iota
	// StateResolved means the future settled with a value.
	StateResolved
	// StateRejected means the future settled with an error.
	StateRejected
	// StateCanceled means cancellation was requested before settlement.
	StateCanceled
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateResolved:
		return "resolved"
	case StateRejected:
		return "rejected"
	case StateCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Future is an asynchronous value that settles exactly once. It is safe for
// concurrent use.
type Future struct {
	mu        sync.Mutex
	state     State
	value     any
	err       error
	callbacks []func()
	done      chan struct{}
}

// New creates a pending Future.
func New() *Future {
	return &Future{done: make(chan struct{})}
}

// Go runs fn in its own goroutine and settles the returned future with its
// outcome. A panicking fn rejects the future with the recovered panic.
func Go(fn func() (any, error)) *Future {
	f := New()
	go func() {
		var v any
		var err error
		var catcher panics.Catcher
		catcher.Try(func() {
			v, err = fn()
		})
		if r := catcher.Recovered(); r != nil {
			f.Reject(r.AsError())
			return
		}
		if err != nil {
			f.Reject(err)
			return
		}
		f.Resolve(v)
	}()
	return f
}

// Resolve settles the future with a value. No-op if already settled.
func (f *Future) Resolve(v any) {
	f.settle(StateResolved, v, nil)
}

// Reject settles the future with an error. No-op if already settled.
func (f *Future) Reject(err error) {
	f.settle(StateRejected, nil, err)
}

// Cancel requests cancellation. The future settles with ErrCanceled.
// Cancelling an already-settled future is a no-op.
func (f *Future) Cancel() {
	f.settle(StateCanceled, nil, ErrCanceled)
}

// settle transitions the future out of the pending state exactly once and
// runs the registered callbacks.
func (f *Future) settle(state State, v any, err error) {
	f.mu.Lock()
	if f.state != StatePending {
		f.mu.Unlock()
		return
	}
	f.state = state
	f.value = v
	f.err = err
	callbacks := f.callbacks
	f.callbacks = nil
	close(f.done)
	f.mu.Unlock()

	for _, fn := range callbacks {
		runCallback(fn)
	}
}

// Pending reports whether the future has not settled.
func (f *Future) Pending() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state == StatePending
}

// State returns the current settlement state.
func (f *Future) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Result returns the settled value and error. Both are zero while pending.
func (f *Future) Result() (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value, f.err
}

// Done returns a channel closed when the future settles.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Finally registers fn to run once the future settles, whether it resolves,
// rejects, or is cancelled. If the future has already settled, fn runs
// immediately on the calling goroutine.
func (f *Future) Finally(fn func()) {
	f.mu.Lock()
	if f.state == StatePending {
		f.callbacks = append(f.callbacks, fn)
		f.mu.Unlock()
		return
	}
	f.mu.Unlock()
	runCallback(fn)
}

// runCallback isolates a panicking callback so settlement completes and the
// remaining callbacks still run.
func runCallback(fn func()) {
	var catcher panics.Catcher
	catcher.Try(fn)
}
