package tape

// Dump describes arena state for testing.
type Dump struct {
	Slots int
	Free  int
	First int
	Last  int
	Cur   int
}

// Dump arena state for testing.
func (t *Tape) Dump() Dump {
	return Dump{
		Slots: len(t.slots),
		Free:  len(t.free),
		First: t.first,
		Last:  t.last,
		Cur:   t.cur,
	}
}
