package tape

// Ring operations treat the tape as circular: the cell before the first is
// the last. They never extend the tape.

// RotateRight moves the cursor to the preceding cell, wrapping from the first
// cell to the last.
func (t *Tape) RotateRight() {
	t.init()
	if t.cur == t.first {
		t.cur = t.last
		t.index = t.size - 1
		return
	}
	t.cur = t.slots[t.cur].prev
	t.index--
}

// RotateLeft moves the cursor to the following cell, wrapping from the last
// cell to the first.
func (t *Tape) RotateLeft() {
	t.init()
	if t.cur == t.last {
		t.cur = t.first
		t.index = 0
		return
	}
	t.cur = t.slots[t.cur].next
	t.index++
}

// InsertBefore inserts a cell holding v immediately before the cursor; read
// as a ring starting at the cursor, it becomes the last cell.
func (t *Tape) InsertBefore(v uint64) {
	t.init()
	n := t.alloc(v)
	p := t.slots[t.cur].prev
	t.slots[n].prev = p
	t.slots[n].next = t.cur
	t.slots[t.cur].prev = n
	if p == none {
		t.first = n
	} else {
		t.slots[p].next = n
	}
	t.size++
	t.index++
}

// RemoveBefore removes the ring cell preceding the cursor: its linear
// predecessor, or the last cell when the cursor is first. A lone cell is never
// removed; RemoveBefore then returns false.
func (t *Tape) RemoveBefore() bool {
	t.init()
	if t.size == 1 {
		return false
	}
	victim := t.slots[t.cur].prev
	if victim == none {
		victim = t.last
	} else {
		t.index--
	}
	p, n := t.slots[victim].prev, t.slots[victim].next
	if p == none {
		t.first = n
	} else {
		t.slots[p].next = n
	}
	if n == none {
		t.last = p
	} else {
		t.slots[n].prev = p
	}
	t.release(victim)
	t.size--
	t.maybeCompact()
	return true
}

// RingValues returns all cell values, starting at the cursor and wrapping.
func (t *Tape) RingValues() []uint64 {
	t.init()
	values := make([]uint64, 0, t.size)
	for i := t.cur; i != none; i = t.slots[i].next {
		values = append(values, t.slots[i].value)
	}
	for i := t.first; i != t.cur; i = t.slots[i].next {
		values = append(values, t.slots[i].value)
	}
	return values
}
