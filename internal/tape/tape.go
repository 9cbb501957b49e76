// Package tape implements the (N) tape: a lazily materialized, doubly linked
// sequence of unsigned counters addressed through a single cursor.
//
// Cells live in an index-stable arena of slots whose prev/next links are
// slot indices rather than pointers; erased cells return their slots to a
// free list, and the arena is compacted once it is mostly free.
package tape

import (
	"fmt"
	"math"
)

// Overflow selects what Increment does at the top of the value range.
type Overflow uint8

const (
	// Saturate pins values at math.MaxUint64.
	Saturate Overflow = iota

	// Wrap silently wraps math.MaxUint64 around to 0.
	Wrap
)

var overflowNames = [...]string{
	Saturate: "saturate",
	Wrap:     "wrap",
}

func (o Overflow) String() string {
	if int(o) < len(overflowNames) {
		return overflowNames[o]
	}
	return fmt.Sprintf("overflow%d", uint8(o))
}

// Set implements flag.Value.
func (o *Overflow) Set(s string) error {
	for i, name := range overflowNames {
		if name == s {
			*o = Overflow(i)
			return nil
		}
	}
	return fmt.Errorf("unknown overflow policy %q", s)
}

// UnmarshalText allows the policy to be decoded from config files.
func (o *Overflow) UnmarshalText(text []byte) error { return o.Set(string(text)) }

const none = -1

// compactMin is the arena size below which free slots are never compacted.
const compactMin = 64

type slot struct {
	prev, next int
	value      uint64
}

// Tape is a cursor-addressed cell sequence. The zero value is a tape holding
// a single zero cell. A Tape must not be used concurrently.
type Tape struct {
	// Overflow is the policy applied by Increment.
	Overflow Overflow

	slots []slot
	free  []int

	first, last, cur int

	index uint
	size  uint
}

// New returns a tape seeded with values, cursor on the first cell; with no
// values the tape holds one zero cell.
func New(values ...uint64) *Tape {
	var t Tape
	t.Reset(values...)
	return &t
}

// Reset discards all cells and reseeds the tape, reusing its arena.
func (t *Tape) Reset(values ...uint64) {
	if len(values) == 0 {
		values = []uint64{0}
	}
	t.slots = t.slots[:0]
	t.free = t.free[:0]
	for i, v := range values {
		t.slots = append(t.slots, slot{prev: i - 1, next: i + 1, value: v})
	}
	t.slots[len(t.slots)-1].next = none
	t.first, t.last, t.cur = 0, len(t.slots)-1, 0
	t.index = 0
	t.size = uint(len(values))
}

func (t *Tape) init() {
	if t.size == 0 {
		t.Reset()
	}
}

// Value returns the cursor cell's value.
func (t *Tape) Value() uint64 {
	t.init()
	return t.slots[t.cur].value
}

// Set overwrites the cursor cell's value.
func (t *Tape) Set(v uint64) {
	t.init()
	t.slots[t.cur].value = v
}

// Increment adds one to the cursor cell, subject to the Overflow policy.
func (t *Tape) Increment() {
	t.init()
	s := &t.slots[t.cur]
	if s.value < math.MaxUint64 {
		s.value++
	} else if t.Overflow == Wrap {
		s.value = 0
	}
}

// Decrement subtracts one from the cursor cell unless it is already zero.
func (t *Tape) Decrement() {
	t.init()
	if s := &t.slots[t.cur]; s.value > 0 {
		s.value--
	}
}

// Index returns the number of cells strictly left of the cursor.
func (t *Tape) Index() uint {
	t.init()
	return t.index
}

// Len returns the number of materialized cells.
func (t *Tape) Len() uint {
	t.init()
	return t.size
}

// AtFirst returns true if no cell precedes the cursor.
func (t *Tape) AtFirst() bool {
	t.init()
	return t.cur == t.first
}

// AtLast returns true if no cell follows the cursor.
func (t *Tape) AtLast() bool {
	t.init()
	return t.cur == t.last
}

// Next moves the cursor right, appending a zero cell if it was on the last.
func (t *Tape) Next() {
	t.init()
	if t.cur == t.last {
		n := t.alloc(0)
		t.slots[n].prev = t.cur
		t.slots[t.cur].next = n
		t.last = n
		t.size++
	}
	t.cur = t.slots[t.cur].next
	t.index++
}

// Prev moves the cursor left, prepending a zero cell if it was on the first.
// Prepending shifts the index of every existing cell up by one.
func (t *Tape) Prev() {
	t.init()
	if t.cur == t.first {
		n := t.alloc(0)
		t.slots[n].next = t.cur
		t.slots[t.cur].prev = n
		t.first = n
		t.size++
		t.index++
	}
	t.cur = t.slots[t.cur].prev
	t.index--
}

// EraseBefore drops every cell left of the cursor.
func (t *Tape) EraseBefore() {
	t.init()
	p := t.slots[t.cur].prev
	t.slots[t.cur].prev = none
	for p != none {
		q := t.slots[p].prev
		t.release(p)
		p = q
	}
	t.first = t.cur
	t.size -= t.index
	t.index = 0
	t.maybeCompact()
}

// EraseAfter drops every cell right of the cursor.
func (t *Tape) EraseAfter() {
	t.init()
	n := t.slots[t.cur].next
	t.slots[t.cur].next = none
	for n != none {
		q := t.slots[n].next
		t.release(n)
		n = q
	}
	t.last = t.cur
	t.size = t.index + 1
	t.maybeCompact()
}

// Values returns all cell values, first to last.
func (t *Tape) Values() []uint64 {
	t.init()
	values := make([]uint64, 0, t.size)
	for i := t.first; i != none; i = t.slots[i].next {
		values = append(values, t.slots[i].value)
	}
	return values
}

func (t *Tape) alloc(v uint64) int {
	if i := len(t.free) - 1; i >= 0 {
		id := t.free[i]
		t.free = t.free[:i]
		t.slots[id] = slot{prev: none, next: none, value: v}
		return id
	}
	t.slots = append(t.slots, slot{prev: none, next: none, value: v})
	return len(t.slots) - 1
}

func (t *Tape) release(id int) {
	t.slots[id] = slot{prev: none, next: none}
	t.free = append(t.free, id)
}

func (t *Tape) maybeCompact() {
	if len(t.slots) >= compactMin && uint(len(t.free)) > 2*t.size {
		t.compact()
	}
}

// compact rebuilds the arena with live cells packed in order, releasing the
// backing storage of any erased cells.
func (t *Tape) compact() {
	slots := make([]slot, 0, t.size)
	cur := 0
	for i := t.first; i != none; i = t.slots[i].next {
		if i == t.cur {
			cur = len(slots)
		}
		n := len(slots)
		slots = append(slots, slot{prev: n - 1, next: n + 1, value: t.slots[i].value})
	}
	slots[len(slots)-1].next = none
	t.slots = slots
	t.free = nil
	t.first, t.last, t.cur = 0, len(slots)-1, cur
}
