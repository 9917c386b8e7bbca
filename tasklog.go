package bin

// Add appends v to the ordered task log and returns its 1-based position.
// Positions are strictly increasing for the lifetime of the Bin: clearing a
// position leaves a hole rather than compacting, so a returned position
// remains a valid identifier until the Bin is destroyed.
//
// Empty values may be appended; they occupy a position and dispose as a
// no-op. Add fails with ErrFrozen while frozen and with ErrUninitialized
// after Destroy.
func (b *Bin) Add(v any) (int, error) {
	if b.tasks == nil {
		return 0, NewUninitializedError("add")
	}
	if b.frozen {
		return 0, NewFrozenError("add")
	}
	b.tasks = append(b.tasks, item{value: v, kind: KindOf(v)})
	return len(b.tasks), nil
}

// Task returns the value currently at the given 1-based position. Cleared
// and out-of-range positions read as nil. Task fails with ErrUninitialized
// after Destroy.
func (b *Bin) Task(pos int) (any, error) {
	if b.tasks == nil {
		return nil, NewUninitializedError("task")
	}
	if pos < 1 || pos > len(b.tasks) {
		return nil, nil
	}
	return b.tasks[pos-1].value, nil
}

// ClearPosition disposes the value at the given position and marks the slot
// empty. Subsequent entries do not shift. Clearing an out-of-range or
// already-empty position is a no-op, not an error. ClearPosition is
// permitted while the Bin is frozen.
func (b *Bin) ClearPosition(pos int) error {
	if b.tasks == nil {
		return NewUninitializedError("clear position")
	}
	if pos < 1 || pos > len(b.tasks) {
		return nil
	}

	it := b.tasks[pos-1]
	if it.kind == KindEmpty {
		return nil
	}
	b.tasks[pos-1] = item{kind: KindEmpty}
	b.releaseTask(pos, it)
	return nil
}
