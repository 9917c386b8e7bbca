package bin

import (
	"fmt"
	"log/slog"
	"sync"
)

// item is one stored occupant: the value together with its release strategy,
// probed once at insertion.
type item struct {
	value any
	kind  Kind
}

// Bin is a container for disposable resources with two storage regions: a
// keyed slot map and an ordered, append-only task log. See the package
// documentation for the storage model and lifecycle.
//
// A Bin performs no internal locking on its slot map or task log; all
// mutating calls are expected to happen on a single logical owner goroutine.
// The one exception is promise tracking: a promise's completion callback runs
// on whatever goroutine settles it, so tracked promises live in a separate
// region guarded by their own mutex.
type Bin struct {
	slots  map[string]item
	tasks  []item
	frozen bool
	log    *slog.Logger

	pmu      sync.Mutex
	promises map[string]item
}

// Option configures a Bin at construction time.
type Option func(*Bin)

// WithLogger directs swallowed disposal failures to the given logger at
// debug level. Disposal failures are never propagated regardless; this only
// makes them observable.
func WithLogger(log *slog.Logger) Option {
	return func(b *Bin) {
		b.log = log
	}
}

// New creates an empty, unfrozen Bin.
func New(opts ...Option) *Bin {
	b := &Bin{
		slots:    make(map[string]item),
		tasks:    make([]item, 0),
		promises: make(map[string]item),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Set stores v under key, disposing any previous occupant first. At most one
// live disposable occupies a key at any time: the previous occupant's release
// action has run before the new value is stored.
//
// Storing nil (or any empty value) clears the key, so disposal-by-reassignment
// needs no separate call. Set fails with ErrFrozen while the Bin is frozen and
// with ErrUninitialized after Destroy; in both cases no mutation occurs.
func (b *Bin) Set(key string, v any) error {
	if b.slots == nil {
		return NewUninitializedError("set")
	}
	if b.frozen {
		return NewFrozenError("set")
	}

	if prev, ok := b.slots[key]; ok {
		delete(b.slots, key)
		b.release(key, prev)
	}

	kind := KindOf(v)
	if kind == KindEmpty {
		return nil
	}
	b.slots[key] = item{value: v, kind: kind}
	return nil
}

// Get returns the value stored under key, or nil if the key is unoccupied or
// the Bin has been destroyed.
func (b *Bin) Get(key string) any {
	if b.slots == nil {
		return nil
	}
	return b.slots[key].value
}

// Clear disposes the value under key and leaves the key unoccupied. It is the
// explicit spelling of Set(key, nil) and fails under the same conditions.
func (b *Bin) Clear(key string) error {
	return b.Set(key, nil)
}

// Len returns the number of occupied keyed slots, tracked promises included.
func (b *Bin) Len() int {
	b.pmu.Lock()
	n := len(b.promises)
	b.pmu.Unlock()
	return len(b.slots) + n
}

// TaskLen returns the number of occupied task log positions. Cleared holes
// do not count.
func (b *Bin) TaskLen() int {
	n := 0
	for _, it := range b.tasks {
		if it.kind != KindEmpty {
			n++
		}
	}
	return n
}

// String renders current occupancy counts and the frozen flag for logging
// and debugging. The format is not stable.
func (b *Bin) String() string {
	if b.slots == nil {
		return "bin(destroyed)"
	}
	return fmt.Sprintf("bin(keys=%d tasks=%d frozen=%t)", b.Len(), b.TaskLen(), b.frozen)
}

// release disposes a keyed occupant, logging a swallowed failure if a logger
// is configured.
func (b *Bin) release(key string, it item) {
	if err := dispose(it.value, it.kind); err != nil {
		b.logFailure(err, slog.String("key", key), slog.String("kind", it.kind.String()))
	}
}

// releaseTask disposes a task log occupant.
func (b *Bin) releaseTask(pos int, it item) {
	if err := dispose(it.value, it.kind); err != nil {
		b.logFailure(err, slog.Int("position", pos), slog.String("kind", it.kind.String()))
	}
}

func (b *Bin) logFailure(err error, attrs ...any) {
	if b.log == nil {
		return
	}
	b.log.Debug("swallowed disposal failure", append(attrs, slog.Any("error", err))...)
}
