// Package alphabet holds the 1024-symbol table the codec maps 10-bit values onto.
package alphabet

import (
	"github.com/cockroachdb/errors"
)

// Size is the number of symbols in an alphabet. Every symbol carries Bits bits.
const (
	Size = 1 << Bits
	Bits = 10
)

var (
	ErrSize            = errors.New("alphabet must have exactly 1024 symbols")
	ErrDuplicateSymbol = errors.New("alphabet has a repeating symbol")
)

// Alphabet is an immutable bijection between 0..Size-1 and a set of runes.
type Alphabet struct {
	symbols [Size]rune
	index   map[rune]uint16
}

// New builds an alphabet from symbols, in index order.
func New(symbols []rune) (*Alphabet, error) {
	if len(symbols) != Size {
		return nil, errors.Wrapf(ErrSize, "got %d", len(symbols))
	}
	a := &Alphabet{
		index: make(map[rune]uint16, Size),
	}
	for i, r := range symbols {
		if j, ok := a.index[r]; ok {
			return nil, errors.Wrapf(ErrDuplicateSymbol, "%U at %d and %d", r, j, i)
		}
		a.symbols[i] = r
		a.index[r] = uint16(i)
	}
	return a, nil
}

// MustNew is like New but panics on an invalid symbol list.
func MustNew(symbols []rune) *Alphabet {
	a, err := New(symbols)
	if err != nil {
		panic(err)
	}
	return a
}

// SymbolAt returns the symbol for index i. It panics if i is outside 0..Size-1.
func (a *Alphabet) SymbolAt(i int) rune {
	return a.symbols[i]
}

// IndexOf returns the index of r, or false if r is not part of the alphabet.
func (a *Alphabet) IndexOf(r rune) (int, bool) {
	i, ok := a.index[r]
	return int(i), ok
}

// Contains reports whether r is one of the alphabet's symbols.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.index[r]
	return ok
}

// Len returns the number of symbols, always Size.
func (a *Alphabet) Len() int {
	return Size
}

// Symbols returns a copy of the table in index order.
func (a *Alphabet) Symbols() []rune {
	out := make([]rune, Size)
	copy(out, a.symbols[:])
	return out
}

// Count returns how many runes of s belong to the alphabet and how many do not.
func (a *Alphabet) Count(s string) (symbols, others int) {
	for _, r := range s {
		if a.Contains(r) {
			symbols++
		} else {
			others++
		}
	}
	return
}
