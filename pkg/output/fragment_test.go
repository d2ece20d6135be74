package output_test

import (
	"math/rand/v2"
	"testing"

	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragment_Basics(t *testing.T) {
	f := output.Of(1, 2, 3)
	assert.Equal(t, 3, f.Len())
	assert.False(t, f.IsEmpty())
	first, ok := f.First()
	assert.True(t, ok)
	assert.Equal(t, domain.Symbol(1), first)
	assert.Equal(t, domain.Seq(1, 2, 3), f.Sequence())
	assert.Equal(t, "[1 2 3]", f.String())

	var zero output.Fragment
	assert.True(t, zero.IsEmpty())
	_, ok = zero.First()
	assert.False(t, ok)
	assert.Equal(t, "[]", zero.String())
	assert.Empty(t, zero.Sequence())
}

func TestConcat(t *testing.T) {
	tests := []struct {
		name string
		a, b output.Fragment
		want domain.Sequence
	}{
		{"both empty", output.Empty, output.Empty, domain.Sequence{}},
		{"left empty", output.Empty, output.Of(4), domain.Seq(4)},
		{"right empty", output.Of(1, 2), output.Empty, domain.Seq(1, 2)},
		{"both", output.Of(1, 2), output.Of(3), domain.Seq(1, 2, 3)},
		{"view operand", output.Of(1, 2, 3).Take(2), output.Of(9, 8, 7).Drop(1), domain.Seq(1, 2, 8, 7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aBefore := tt.a.Sequence()
			bBefore := tt.b.Sequence()

			got := output.Concat(tt.a, tt.b)
			assert.Equal(t, tt.want, got.Sequence())
			assert.False(t, output.HasCycle(got))

			// operands are untouched
			assert.Equal(t, aBefore, tt.a.Sequence())
			assert.Equal(t, bBefore, tt.b.Sequence())
		})
	}
}

func TestCommonPrefix(t *testing.T) {
	tests := []struct {
		name                 string
		x, y                 output.Fragment
		prefix, restX, restY domain.Sequence
	}{
		{"disjoint", output.Of(1), output.Of(2), domain.Sequence{}, domain.Seq(1), domain.Seq(2)},
		{"equal", output.Of(1, 2), output.Of(1, 2), domain.Seq(1, 2), domain.Sequence{}, domain.Sequence{}},
		{"x prefix of y", output.Of(1), output.Of(1, 0), domain.Seq(1), domain.Sequence{}, domain.Seq(0)},
		{"y prefix of x", output.Of(1, 0, 1), output.Of(1, 0), domain.Seq(1, 0), domain.Seq(1), domain.Sequence{}},
		{"partial", output.Of(1, 2, 3), output.Of(1, 2, 4, 5), domain.Seq(1, 2), domain.Seq(3), domain.Seq(4, 5)},
		{"empty operand", output.Empty, output.Of(7), domain.Sequence{}, domain.Sequence{}, domain.Seq(7)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, rx, ry := output.CommonPrefix(tt.x, tt.y)
			assert.Equal(t, tt.prefix, prefix.Sequence())
			assert.Equal(t, tt.restX, rx.Sequence())
			assert.Equal(t, tt.restY, ry.Sequence())

			// recombining restores the operands
			assert.True(t, output.Equal(tt.x, output.Concat(prefix, rx)))
			assert.True(t, output.Equal(tt.y, output.Concat(prefix, ry)))
		})
	}
}

func TestEqualAndPrefix(t *testing.T) {
	a := output.Of(1, 2, 3)
	assert.True(t, output.Equal(a, output.Of(1, 2, 3)))
	assert.True(t, output.Equal(a, a.Clone()))
	assert.False(t, output.Equal(a, output.Of(1, 2)))
	assert.False(t, output.Equal(a, output.Of(1, 2, 4)))
	assert.True(t, output.Equal(output.Empty, output.Of()))

	assert.True(t, output.Of(1, 2).IsPrefixOf(a))
	assert.True(t, output.Empty.IsPrefixOf(a))
	assert.False(t, output.Of(2).IsPrefixOf(a))
	assert.False(t, a.IsPrefixOf(output.Of(1, 2)))
}

func TestTakeDrop(t *testing.T) {
	a := output.Of(5, 6, 7)
	assert.Equal(t, domain.Seq(5, 6), a.Take(2).Sequence())
	assert.Equal(t, domain.Sequence{}, a.Take(0).Sequence())
	assert.Equal(t, domain.Seq(5, 6, 7), a.Take(10).Sequence())
	assert.Equal(t, domain.Seq(7), a.Drop(2).Sequence())
	assert.True(t, a.Drop(3).IsEmpty())
}

// Random splicing never produces a chain that revisits a cell and always
// agrees with the equivalent slice arithmetic.
func TestFragment_RandomOperationsStayAcyclic(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	pool := []output.Fragment{output.Empty}
	shadow := []domain.Sequence{{}}

	randomSeq := func() domain.Sequence {
		n := rng.IntN(5)
		seq := make(domain.Sequence, n)
		for i := range seq {
			seq[i] = domain.Symbol(rng.IntN(3))
		}
		return seq
	}

	for step := 0; step < 2000; step++ {
		i, j := rng.IntN(len(pool)), rng.IntN(len(pool))
		var f output.Fragment
		var s domain.Sequence
		switch rng.IntN(5) {
		case 0:
			s = randomSeq()
			f = output.FromSequence(s)
		case 1:
			f = output.Concat(pool[i], pool[j])
			s = append(append(domain.Sequence{}, shadow[i]...), shadow[j]...)
		case 2:
			prefix, rx, _ := output.CommonPrefix(pool[i], pool[j])
			if rng.IntN(2) == 0 {
				f, s = prefix, shadow[i][:prefix.Len()]
			} else {
				f, s = rx, shadow[i][prefix.Len():]
			}
		case 3:
			k := rng.IntN(pool[i].Len() + 1)
			f, s = pool[i].Drop(k), shadow[i][k:]
		default:
			f, s = pool[i].Clone(), shadow[i]
		}

		require.False(t, output.HasCycle(f), "step %d", step)
		require.Equal(t, len(s), f.Len(), "step %d", step)
		require.True(t, domain.Sequence(s).Equal(f.Sequence()), "step %d: %v vs %v", step, s, f)

		pool = append(pool, f)
		shadow = append(shadow, s)
	}

	for i, f := range pool {
		require.True(t, shadow[i].Equal(f.Sequence()), "fragment %d mutated", i)
	}
}
