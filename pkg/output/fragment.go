// Package output implements Fragment, the pending output string attached to
// transitions and final states of a transducer.
//
// A Fragment is a length-bounded view over a chain of immutable cells. Cells
// are never modified after construction, so any number of fragments may share
// them: taking a prefix or a suffix is free, and concatenation copies only the
// left operand. A chain can only point at cells that already existed when it
// was built, which keeps every chain acyclic.
package output

import (
	"iter"
	"strconv"
	"strings"

	"github.com/aretw0/ostia/pkg/domain"
)

type cell struct {
	sym  domain.Symbol
	next *cell
}

// Fragment is an immutable output string. The zero value is the empty fragment.
type Fragment struct {
	head *cell
	n    int
}

// Empty is the empty fragment.
var Empty = Fragment{}

// Of builds a fragment holding the given symbols.
func Of(symbols ...domain.Symbol) Fragment {
	return FromSequence(symbols)
}

// FromSequence builds a fragment holding a copy of seq.
func FromSequence(seq domain.Sequence) Fragment {
	var head *cell
	for i := len(seq) - 1; i >= 0; i-- {
		head = &cell{sym: seq[i], next: head}
	}
	return Fragment{head: head, n: len(seq)}
}

// Len returns the number of symbols in the fragment.
func (f Fragment) Len() int { return f.n }

// IsEmpty reports whether the fragment holds no symbols.
func (f Fragment) IsEmpty() bool { return f.n == 0 }

// First returns the leading symbol, if any.
func (f Fragment) First() (domain.Symbol, bool) {
	if f.n == 0 {
		return 0, false
	}
	return f.head.sym, true
}

// All iterates over the symbols in order.
func (f Fragment) All() iter.Seq[domain.Symbol] {
	return func(yield func(domain.Symbol) bool) {
		c := f.head
		for i := 0; i < f.n; i++ {
			if !yield(c.sym) {
				return
			}
			c = c.next
		}
	}
}

// AppendTo appends the fragment's symbols to dst and returns the extended slice.
func (f Fragment) AppendTo(dst domain.Sequence) domain.Sequence {
	for sym := range f.All() {
		dst = append(dst, sym)
	}
	return dst
}

// Sequence returns the fragment as a freshly allocated Sequence.
func (f Fragment) Sequence() domain.Sequence {
	return f.AppendTo(make(domain.Sequence, 0, f.n))
}

// Drop returns the fragment without its first k symbols. It shares cells with f.
func (f Fragment) Drop(k int) Fragment {
	if k >= f.n {
		return Empty
	}
	c := f.head
	for i := 0; i < k; i++ {
		c = c.next
	}
	return Fragment{head: c, n: f.n - k}
}

// Take returns the first k symbols of f. It shares cells with f.
func (f Fragment) Take(k int) Fragment {
	if k >= f.n {
		return f
	}
	if k <= 0 {
		return Empty
	}
	return Fragment{head: f.head, n: k}
}

func (f Fragment) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	first := true
	for sym := range f.All() {
		if !first {
			sb.WriteByte(' ')
		}
		first = false
		sb.WriteString(strconv.Itoa(int(sym)))
	}
	sb.WriteByte(']')
	return sb.String()
}

// Concat returns a followed by b. The symbols of a are copied into fresh
// cells whose tail is b, so both operands remain valid and unchanged.
func Concat(a, b Fragment) Fragment {
	if a.n == 0 {
		return b
	}
	if b.n == 0 {
		return a
	}
	root := &cell{sym: a.head.sym}
	tail := root
	c := a.head.next
	for i := 1; i < a.n; i++ {
		tail.next = &cell{sym: c.sym}
		tail = tail.next
		c = c.next
	}
	// b may be a view over a longer chain; only its first b.n cells are
	// reachable through the combined length.
	tail.next = b.head
	return Fragment{head: root, n: a.n + b.n}
}

// CopyThenConcat returns a fresh copy of a with b attached. Cells are
// immutable, so this is the same operation as Concat.
func CopyThenConcat(a, b Fragment) Fragment { return Concat(a, b) }

// Clone returns a fragment with the same symbols backed by fresh cells.
func (f Fragment) Clone() Fragment {
	if f.n == 0 {
		return Empty
	}
	return FromSequence(f.Sequence())
}

// CommonPrefix walks x and y in lockstep while their symbols match and
// returns the common prefix together with what remains of each operand.
// All three results share cells with the operands.
func CommonPrefix(x, y Fragment) (prefix, restX, restY Fragment) {
	cx, cy := x.head, y.head
	k := 0
	for k < x.n && k < y.n && cx.sym == cy.sym {
		cx, cy = cx.next, cy.next
		k++
	}
	prefix = x.Take(k)
	restX = Fragment{n: x.n - k}
	if restX.n > 0 {
		restX.head = cx
	}
	restY = Fragment{n: y.n - k}
	if restY.n > 0 {
		restY.head = cy
	}
	return prefix, restX, restY
}

// IsPrefixOf reports whether f is a prefix of other.
func (f Fragment) IsPrefixOf(other Fragment) bool {
	prefix, _, _ := CommonPrefix(f, other)
	return prefix.n == f.n
}

// Equal reports whether a and b hold the same symbols, stopping at the first difference.
func Equal(a, b Fragment) bool {
	if a.n != b.n {
		return false
	}
	ca, cb := a.head, b.head
	for i := 0; i < a.n; i++ {
		if ca == cb {
			// shared tail
			return true
		}
		if ca.sym != cb.sym {
			return false
		}
		ca, cb = ca.next, cb.next
	}
	return true
}

// HasCycle walks the cells reachable through f and reports whether any cell
// is visited twice. It is a debugging aid: a well-formed fragment never has one.
func HasCycle(f Fragment) bool {
	seen := make(map[*cell]struct{}, f.n)
	for c, i := f.head, 0; c != nil && i < f.n; c, i = c.next, i+1 {
		if _, ok := seen[c]; ok {
			return true
		}
		seen[c] = struct{}{}
	}
	return false
}
