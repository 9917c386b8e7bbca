// Package bin provides a deterministic container for disposable resources.
//
// A [Bin] collects heterogeneous disposables (callbacks, event-subscription
// connections, cancellable handles, and objects exposing a disposal method)
// and guarantees each is released exactly once, either individually or all
// at once. It replaces scattered manual cleanup code: instead of remembering
// to disconnect every subscription and close every handle, callers hand the
// resource to a Bin and release everything with a single Clean or Destroy.
//
// # Storage Regions
//
// A Bin has two independent storage regions:
//
//   - Keyed slots: named locations holding at most one live disposable each.
//     Assigning a new value to an occupied key disposes the previous occupant
//     before storing the new one, so clearing a slot is just re-assignment.
//   - Ordered task log: an append-only sequence indexed from 1. Clearing a
//     position leaves a hole rather than compacting, so positions returned by
//     [Bin.Add] stay valid for the Bin's lifetime.
//
// # Disposal Dispatch
//
// The release strategy for a value is probed once, when it is stored, and
// identified by a [Kind]:
//
//   - nil values are empty and dispose as a no-op
//   - zero-argument functions are invoked
//   - values with a parameterless Destroy or Close method are disposed
//   - values with Connected() bool and Disconnect() are disconnected if
//     still connected
//   - values with a Stop method (timers, tickers) have cancellation requested
//   - values with a Cancel method are cancelled, and additionally disposed if
//     they also carry a disposal method
//
// A value matching none of these shapes is silently dropped. Panics and
// errors raised by a disposer are swallowed so that one failing release
// never leaks the remaining resources; they can be surfaced for diagnostics
// via [WithLogger].
//
// # Lifecycle
//
// A Bin may be frozen with [Bin.Freeze], which rejects new registrations
// with [ErrFrozen] while still permitting disposal of existing entries.
// Freezing is a toggle, not a ratchet: [Bin.Unfreeze] re-enables writes.
// [Bin.Clean] disposes and empties both regions but leaves the Bin usable.
// [Bin.Destroy] freezes, cleans, and permanently retires the Bin; afterward
// mutating operations fail with [ErrUninitialized].
//
// # Concurrency
//
// A Bin performs no internal locking on its slot map or task log and assumes
// a single logical owner. Promise tracking is the exception: a promise's
// completion callback runs on whatever goroutine settles it, so tracked
// promises live in a mutex-guarded region of their own and releasing them is
// safe from any goroutine. Disposal is synchronous and sequential; a
// disposer that never returns stalls the entire Clean or Destroy call.
//
// # Basic Usage
//
//	b := bin.New()
//
//	conn := updates.Connect(onUpdate)
//	b.Set("updates", conn)
//
//	pos, _ := b.Add(func() { cache.Invalidate() })
//
//	// Replace the subscription: the old connection is disconnected first.
//	b.Set("updates", updates.Connect(onUpdateV2))
//
//	// Release one task by position, everything else on shutdown.
//	b.ClearPosition(pos)
//	b.Destroy()
package bin
