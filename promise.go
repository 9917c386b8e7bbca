package bin

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// Promise is the asynchronous-value capability set consumed by AddPromise:
// status inspection, completion callback registration, and cancellation.
// The Bin never inspects a promise beyond these three methods.
type Promise interface {
	// Pending reports whether the value has not yet settled.
	Pending() bool

	// Finally registers fn to run once the value settles, whether it
	// resolves, rejects, or is cancelled. If the value has already settled,
	// fn runs immediately.
	Finally(fn func())

	// Cancel requests cancellation. Implementations must treat Cancel on an
	// already-settled value as a no-op.
	Cancel()
}

// AddPromise tracks a still-pending asynchronous value so that destroying or
// cleaning the Bin cancels it. The value is returned unchanged in all cases,
// so call sites can keep chaining on it.
//
// A pending promise is tracked under a freshly generated key, and a
// completion callback releases that key once the promise settles. This frees
// the entry without waiting for the next Clean, so long sequences of
// short-lived promises do not grow storage. An already-settled promise is
// not tracked: there is nothing left to cancel.
//
// The completion callback runs on whatever goroutine settles the promise, so
// tracked promises live in the Bin's mutex-guarded promise region rather
// than the owner-only slot map. Len and String account for them.
//
// AddPromise fails with ErrNotAPromise when v lacks the capability set, with
// ErrFrozen while the Bin is frozen, and with ErrUninitialized after Destroy.
func (b *Bin) AddPromise(v any) (any, error) {
	if b.slots == nil {
		return v, NewUninitializedError("add promise")
	}

	p, ok := v.(Promise)
	if !ok || isEmpty(v) {
		return v, NewNotAPromiseError(v)
	}
	if !p.Pending() {
		return v, nil
	}
	if b.frozen {
		return v, NewFrozenError("add promise")
	}

	key := "promise-" + generateID()
	b.pmu.Lock()
	b.promises[key] = item{value: v, kind: KindOf(v)}
	b.pmu.Unlock()

	p.Finally(func() {
		b.releaseKey(key)
	})
	return v, nil
}

// releaseKey disposes and removes a tracked promise outside the frozen
// check: a promise settling while the Bin is frozen is a disposal, not a new
// registration, and disposal stays permitted while frozen. Safe to call from
// any goroutine; the disposal itself runs outside the lock.
func (b *Bin) releaseKey(key string) {
	b.pmu.Lock()
	it, ok := b.promises[key]
	if ok {
		delete(b.promises, key)
	}
	b.pmu.Unlock()
	if ok {
		b.release(key, it)
	}
}

// generateID creates a short random hex ID for promise tracking keys.
// Falls back to a timestamp-based ID if random generation fails.
func generateID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return fmt.Sprintf("%08x", time.Now().UnixNano()&0xFFFFFFFF)
	}
	return hex.EncodeToString(buf)
}
