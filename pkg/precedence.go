package koru

// PrecedenceTable maps single-character infix operators to their binding
// power. Higher binds tighter. One table is shared by reference across every
// parse in a session: custom operator declarations insert into it as a side
// effect, which makes the new operator visible to all later parses.
//
// The table is not safe for concurrent parsing without external locking.
type PrecedenceTable struct {
	prec map[rune]int
}

// NewPrecedenceTable returns a table seeded with the default operators.
func NewPrecedenceTable() *PrecedenceTable {
	return &PrecedenceTable{
		prec: map[rune]int{
			'=': 2,
			'<': 10,
			'+': 20,
			'-': 20,
			'*': 40,
			'/': 40,
		},
	}
}

// Lookup returns the precedence registered for op, or -1 if op is not a
// binary operator. -1 terminates precedence climbing.
func (t *PrecedenceTable) Lookup(op rune) int {
	if p, ok := t.prec[op]; ok {
		return p
	}

	return -1
}

// Insert registers op with the given precedence, overwriting any previous
// entry. There is no removal.
func (t *PrecedenceTable) Insert(op rune, prec int) {
	t.prec[op] = prec
}
