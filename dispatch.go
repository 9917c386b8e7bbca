package bin

import (
	"reflect"

	"github.com/sourcegraph/conc/panics"
)

// Kind identifies the release strategy selected for a stored value. It is
// probed once, at insertion time, by KindOf.
type Kind int

const (
	// KindEmpty is a nil or absent value; disposal is a no-op.
	KindEmpty Kind = iota
	// KindCallback is a function with no required arguments, invoked on
	// disposal.
	KindCallback
	// KindDisposer exposes a parameterless Destroy or Close method and none
	// of the shapes below.
	KindDisposer
	// KindConnection exposes Connected() bool and Disconnect(); it is
	// disconnected on disposal if still connected.
	KindConnection
	// KindHandle is a suspended-execution handle exposing a Stop method
	// (timers, tickers). Cancellation is requested, not awaited.
	KindHandle
	// KindComposite exposes a Cancel method, optionally alongside a disposal
	// method. Cancel runs first, then the disposal method if present.
	KindComposite
	// KindOpaque matches no disposable shape; the value is silently dropped.
	KindOpaque
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindCallback:
		return "callback"
	case KindDisposer:
		return "disposer"
	case KindConnection:
		return "connection"
	case KindHandle:
		return "handle"
	case KindComposite:
		return "composite"
	case KindOpaque:
		return "opaque"
	default:
		return "unknown"
	}
}

// Capability shapes probed by KindOf. A value may expose several; precedence
// is fixed by KindOf, not by declaration order here.
type (
	destroyer    interface{ Destroy() }
	destroyerErr interface{ Destroy() error }
	closer       interface{ Close() }
	closerErr    interface{ Close() error }
	stopper      interface{ Stop() }
	stopperBool  interface{ Stop() bool }
	canceler     interface{ Cancel() }
	cancelerErr  interface{ Cancel() error }
)

// disconnecter is the event-subscription shape: a connected flag plus a
// disconnect method.
type disconnecter interface {
	Connected() bool
	Disconnect()
}

// KindOf probes the runtime shape of v and returns its release strategy.
// Precedence: empty, callback, disposer (only when no later shape matches),
// connection, handle, composite.
func KindOf(v any) Kind {
	if isEmpty(v) {
		return KindEmpty
	}

	if rv := reflect.ValueOf(v); rv.Kind() == reflect.Func {
		// Named func types (e.g. context.CancelFunc) are callbacks too, so
		// the probe goes through reflection rather than a type switch. A
		// purely variadic signature is invocable with zero arguments and
		// counts as well.
		if t := rv.Type(); t.NumIn() == 0 || (t.NumIn() == 1 && t.IsVariadic()) {
			return KindCallback
		}
		return KindOpaque
	}

	conn := isConnection(v)
	handle := isHandle(v)
	cancel := isCanceler(v)
	disposal := hasDisposalMethod(v)

	switch {
	case disposal && !conn && !handle && !cancel:
		return KindDisposer
	case conn:
		return KindConnection
	case handle:
		return KindHandle
	case cancel:
		return KindComposite
	}
	return KindOpaque
}

// isEmpty reports whether v is nil, including typed-nil pointers and
// interfaces, which would otherwise probe as their declared shape and then
// panic on invocation.
func isEmpty(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isConnection(v any) bool {
	_, ok := v.(disconnecter)
	return ok
}

func isHandle(v any) bool {
	switch v.(type) {
	case stopperBool, stopper:
		return true
	}
	return false
}

func isCanceler(v any) bool {
	switch v.(type) {
	case cancelerErr, canceler:
		return true
	}
	return false
}

func hasDisposalMethod(v any) bool {
	switch v.(type) {
	case destroyerErr, destroyer, closerErr, closer:
		return true
	}
	return false
}

// dispose releases v according to its probed kind. The release action runs
// inside a panic catcher so a throwing disposer never aborts the caller's
// cleanup loop. The captured failure is returned for diagnostic logging
// only; it must never be re-raised.
func dispose(v any, kind Kind) error {
	if kind == KindEmpty || kind == KindOpaque {
		return nil
	}

	var err error
	var catcher panics.Catcher
	catcher.Try(func() {
		err = release(v, kind)
	})
	if r := catcher.Recovered(); r != nil {
		return r.AsError()
	}
	return err
}

// release performs the actual release action for a non-empty, non-opaque
// value. Callers must wrap it in a panic catcher.
func release(v any, kind Kind) error {
	switch kind {
	case KindCallback:
		return invoke(v)

	case KindDisposer:
		return callDisposalMethod(v)

	case KindConnection:
		if c := v.(disconnecter); c.Connected() {
			c.Disconnect()
		}
		return nil

	case KindHandle:
		switch h := v.(type) {
		case stopperBool:
			h.Stop()
		case stopper:
			h.Stop()
		}
		return nil

	case KindComposite:
		var err error
		switch c := v.(type) {
		case cancelerErr:
			err = c.Cancel()
		case canceler:
			c.Cancel()
		}
		// Cancel and disposal are independent capabilities: both run when
		// both are present.
		if hasDisposalMethod(v) {
			if derr := callDisposalMethod(v); err == nil {
				err = derr
			}
		}
		return err
	}
	return nil
}

// invoke calls a zero-argument function value and returns its error result,
// if it declares one.
func invoke(v any) error {
	results := reflect.ValueOf(v).Call(nil)
	for _, r := range results {
		if err, ok := r.Interface().(error); ok && err != nil {
			return err
		}
	}
	return nil
}

func callDisposalMethod(v any) error {
	switch d := v.(type) {
	case destroyerErr:
		return d.Destroy()
	case destroyer:
		d.Destroy()
	case closerErr:
		return d.Close()
	case closer:
		d.Close()
	}
	return nil
}
