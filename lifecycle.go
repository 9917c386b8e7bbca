package bin

// Freeze forbids new resource registrations. Existing entries may still be
// disposed via ClearPosition and Clean. No-op if already frozen or destroyed.
func (b *Bin) Freeze() {
	if b.slots == nil {
		return
	}
	b.frozen = true
}

// Unfreeze re-enables resource registration. Freezing is a toggle, not a
// ratchet. No-op if already unfrozen or destroyed.
func (b *Bin) Unfreeze() {
	if b.slots == nil {
		return
	}
	b.frozen = false
}

// IsFrozen reports the current frozen flag without side effects. A destroyed
// Bin reports frozen.
func (b *Bin) IsFrozen() bool {
	if b.slots == nil {
		return true
	}
	return b.frozen
}

// Clean disposes every occupied keyed slot and every occupied task log
// position, each exactly once, then empties both storage regions. The frozen
// flag is untouched and the Bin remains usable afterward. Cleaning an empty
// Bin is a no-op, and Clean is permitted while frozen.
//
// Iteration order across the two regions is unspecified. A disposer that
// fails does not prevent the remaining entries from being disposed.
func (b *Bin) Clean() {
	if b.slots == nil {
		return
	}

	// Detach storage before running any disposer, so a disposer that calls
	// back into this Bin sees consistent, already-emptied state. The promise
	// region is detached under its lock; cancelling a promise may re-enter
	// releaseKey from its settle callback, which then finds the key gone.
	slots := b.slots
	tasks := b.tasks
	b.slots = make(map[string]item)
	b.tasks = make([]item, 0)

	b.pmu.Lock()
	promises := b.promises
	b.promises = make(map[string]item)
	b.pmu.Unlock()

	for key, it := range slots {
		b.release(key, it)
	}
	for i, it := range tasks {
		if it.kind == KindEmpty {
			continue
		}
		b.releaseTask(i+1, it)
	}
	for key, it := range promises {
		b.release(key, it)
	}
}

// Destroy freezes the Bin, cleans both storage regions, and permanently
// retires it. Afterward the Bin holds no references: mutating operations
// fail with ErrUninitialized and reads observe empty slots. Destroy is
// terminal and irreversible; a second call is a no-op.
func (b *Bin) Destroy() {
	if b.slots == nil {
		return
	}
	b.frozen = true
	b.Clean()
	b.slots = nil
	b.tasks = nil

	b.pmu.Lock()
	b.promises = nil
	b.pmu.Unlock()
}
