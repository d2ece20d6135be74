package automaton_test

import (
	"testing"

	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/output"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chain builds root -0/[1]-> s1 -1/[0]-> s2 with s1 final [] and s2 final [2].
func chain(t *testing.T) (*automaton.Arena, automaton.StateID, automaton.StateID) {
	t.Helper()
	a := automaton.New(2)
	s1 := a.Add()
	s2 := a.Add()
	a.State(a.Root()).Transitions[0] = &automaton.Transition{Target: s1, Output: output.Of(1)}
	a.State(s1).Transitions[1] = &automaton.Transition{Target: s2, Output: output.Of(0)}
	a.State(s1).SetFinal(output.Empty)
	a.State(s2).SetFinal(output.Of(2))
	return a, s1, s2
}

func TestState_CopyIsIndependent(t *testing.T) {
	a, s1, s2 := chain(t)
	orig := a.State(s1)
	cp := orig.Copy()

	cp.Transitions[1].Target = a.Root()
	cp.Transitions[0] = &automaton.Transition{Target: s2}
	cp.SetFinal(output.Of(9))

	assert.Equal(t, s2, orig.Transitions[1].Target)
	assert.Nil(t, orig.Transitions[0])
	assert.True(t, output.Equal(output.Empty, orig.Final))
}

func TestState_Prepend(t *testing.T) {
	a, s1, s2 := chain(t)

	a.State(s1).Prepend(output.Of(7, 7))
	assert.Equal(t, domain.Seq(7, 7, 0), a.State(s1).Transitions[1].Output.Sequence())
	assert.Equal(t, domain.Seq(7, 7), a.State(s1).Final.Sequence())

	// non-accepting states stay non-accepting
	a.State(a.Root()).Prepend(output.Of(3))
	assert.False(t, a.State(a.Root()).Accepting)
	assert.Equal(t, domain.Seq(3, 1), a.State(a.Root()).Transitions[0].Output.Sequence())

	// empty prefix is a no-op
	before := a.State(s2).Final
	a.State(s2).Prepend(output.Empty)
	assert.True(t, output.Equal(before, a.State(s2).Final))
}

func TestArena_BecomeIsVisibleThroughIDs(t *testing.T) {
	a, s1, _ := chain(t)

	replacement := automaton.NewState(2)
	replacement.SetFinal(output.Of(5))
	a.Become(s1, replacement)

	got, ok := a.Apply(domain.Seq(0))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(1, 5), got)

	_, ok = a.Apply(domain.Seq(0, 1))
	assert.False(t, ok, "edge dropped by Become")
}

func TestArena_Apply(t *testing.T) {
	a, _, _ := chain(t)
	tests := []struct {
		name  string
		input domain.Sequence
		want  domain.Sequence
		ok    bool
	}{
		{"root not accepting", domain.Seq(), nil, false},
		{"one step", domain.Seq(0), domain.Seq(1), true},
		{"two steps", domain.Seq(0, 1), domain.Seq(1, 0, 2), true},
		{"missing edge", domain.Seq(1), nil, false},
		{"out of range symbol", domain.Seq(0, 5), nil, false},
		{"past the leaf", domain.Seq(0, 1, 1), nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := a.Apply(tt.input)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestArena_ExportImportPreservesBehavior(t *testing.T) {
	a, s1, _ := chain(t)
	// add a loop and an unreachable slot
	a.State(s1).Transitions[0] = &automaton.Transition{Target: s1, Output: output.Of(4)}
	a.Add()

	records := a.Export()
	require.Len(t, records, 3)

	b, err := automaton.Import(2, records)
	require.NoError(t, err)

	for _, in := range []domain.Sequence{{}, domain.Seq(0), domain.Seq(0, 0, 0), domain.Seq(0, 0, 1), domain.Seq(1)} {
		wantOut, wantOK := a.Apply(in)
		gotOut, gotOK := b.Apply(in)
		assert.Equal(t, wantOK, gotOK, "input %v", in)
		assert.Equal(t, wantOut, gotOut, "input %v", in)
	}
}

func TestImport_RejectsMalformedRecords(t *testing.T) {
	_, err := automaton.Import(0, []domain.StateRecord{{}})
	assert.ErrorIs(t, err, domain.ErrInvalidAlphabetSize)

	_, err = automaton.Import(2, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidModel)

	_, err = automaton.Import(2, []domain.StateRecord{{Transitions: []domain.TransitionRecord{{Symbol: 0, Target: 3}}}})
	assert.ErrorIs(t, err, domain.ErrInvalidModel)

	_, err = automaton.Import(2, []domain.StateRecord{{Transitions: []domain.TransitionRecord{{Symbol: 2, Target: 0}}}})
	assert.ErrorIs(t, err, domain.ErrInvalidModel)

	_, err = automaton.Import(2, []domain.StateRecord{{Transitions: []domain.TransitionRecord{{Symbol: 1}, {Symbol: 1}}}})
	assert.ErrorIs(t, err, domain.ErrInvalidModel)
}

func TestBlue_Resolve(t *testing.T) {
	a, s1, s2 := chain(t)
	b := automaton.Blue{Parent: s1, Symbol: 1}
	assert.Equal(t, s2, b.Resolve(a))

	a.State(s1).Transitions[1].Target = a.Root()
	assert.Equal(t, a.Root(), b.Resolve(a), "resolution happens at use")

	assert.PanicsWithValue(t,
		automaton.InvariantViolation{Op: "Blue.Resolve", Detail: "no edge from 1 on 0"},
		func() { automaton.Blue{Parent: s1, Symbol: 0}.Resolve(a) })

	assert.Equal(t, []automaton.Blue{{Parent: s1, Symbol: 1}}, automaton.Children(a, s1))
}

func TestArena_Reachable(t *testing.T) {
	a, s1, s2 := chain(t)
	orphan := a.Add()
	reach := a.Reachable()
	assert.Equal(t, []automaton.StateID{a.Root(), s1, s2}, reach)
	assert.NotContains(t, reach, orphan)

	var count int
	a.Fragments(func(automaton.StateID, output.Fragment) { count++ })
	assert.Equal(t, 4, count) // two edges, two final outputs
}
