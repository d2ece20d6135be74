package merge_test

import (
	"context"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia/internal/automaton"
	"github.com/aretw0/ostia/internal/merge"
	"github.com/aretw0/ostia/internal/ptt"
	"github.com/aretw0/ostia/internal/validator"
	"github.com/aretw0/ostia/pkg/domain"
)

func build(t *testing.T, size int, samples ...domain.Sample) *automaton.Arena {
	t.Helper()
	bld, err := ptt.New(size)
	require.NoError(t, err)
	for _, s := range samples {
		require.NoError(t, bld.Insert(s))
	}
	return bld.Arena()
}

func sample(in, out domain.Sequence) domain.Sample {
	return domain.Sample{Input: in, Output: out}
}

func TestRun_Scenario(t *testing.T) {
	arena := build(t, 2,
		sample(domain.Seq(0), domain.Seq(1)),
		sample(domain.Seq(0, 1), domain.Seq(1, 0)),
	)
	_, err := merge.Run(context.Background(), arena, merge.Options{})
	require.NoError(t, err)

	out, ok := arena.Apply(domain.Seq(0))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(1), out)

	out, ok = arena.Apply(domain.Seq(0, 1))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(1, 0), out)

	// the prefix tree has no output for "b"; folding the "a" state into the
	// root generalises it
	out, ok = arena.Apply(domain.Seq(1))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(0), out)
	assert.Len(t, arena.Reachable(), 1)
}

func TestRun_GeneralisesSymbolMapping(t *testing.T) {
	// every string over {0,1} up to length 3, each symbol mapped to itself plus 5
	var samples []domain.Sample
	var walk func(prefix domain.Sequence)
	walk = func(prefix domain.Sequence) {
		out := make(domain.Sequence, len(prefix))
		for i, s := range prefix {
			out[i] = s + 5
		}
		samples = append(samples, sample(append(domain.Sequence(nil), prefix...), out))
		if len(prefix) == 3 {
			return
		}
		walk(append(prefix, 0))
		walk(append(prefix, 1))
	}
	walk(nil)

	arena := build(t, 2, samples...)
	res, err := merge.Run(context.Background(), arena, merge.Options{})
	require.NoError(t, err)

	assert.Len(t, arena.Reachable(), 1)
	assert.Len(t, res.Red, 1)
	assert.Zero(t, res.Promotions)

	out, ok := arena.Apply(domain.Seq(0, 1, 1, 0, 1, 0))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(5, 6, 6, 5, 6, 5), out)
}

func TestFold_FailureLeavesArenaUntouched(t *testing.T) {
	samples := []domain.Sample{
		sample(domain.Seq(0), domain.Seq(1)),
		sample(domain.Seq(0, 0), domain.Seq(2)),
	}
	arena := build(t, 1, samples...)
	before := arena.Export()
	slots := arena.Len()

	// folding the state after "a" into the root would need the root to emit
	// both [1] and [2] as its final output.
	reached, ok := merge.Fold(arena, arena.Root(), automaton.Blue{Parent: arena.Root(), Symbol: 0})
	assert.False(t, ok)
	assert.Nil(t, reached)

	if diff := cmp.Diff(before, arena.Export()); diff != "" {
		t.Errorf("arena changed after failed fold (-before +after):\n%s", diff)
	}
	assert.Equal(t, slots, arena.Len())
	require.NoError(t, validator.CheckSamples(arena, samples))
}

func TestRun_PromotesWhenFoldFails(t *testing.T) {
	samples := []domain.Sample{
		sample(domain.Seq(0), domain.Seq(1)),
		sample(domain.Seq(0, 0), domain.Seq(2)),
	}
	arena := build(t, 1, samples...)
	res, err := merge.Run(context.Background(), arena, merge.Options{})
	require.NoError(t, err)

	assert.Equal(t, 1, res.Promotions)
	assert.Equal(t, 1, res.Merges)
	assert.Len(t, res.Red, 2)
	assert.Len(t, arena.Reachable(), 2)
	require.NoError(t, validator.CheckSamples(arena, samples))

	out, ok := arena.Apply(domain.Seq(0, 0, 0))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(2, 1), out)
}

func TestRun_Hooks(t *testing.T) {
	arena := build(t, 1,
		sample(domain.Seq(0), domain.Seq(1)),
		sample(domain.Seq(0, 0), domain.Seq(2)),
	)

	var folds, successes, promotes int
	hooks := domain.LifecycleHooks{
		OnFold: func(_ context.Context, e *domain.FoldEvent) {
			folds++
			if e.Success {
				successes++
			}
			assert.Equal(t, domain.EventFold, e.Type)
		},
		OnPromote: func(_ context.Context, e *domain.PromoteEvent) {
			promotes++
			assert.Equal(t, 2, e.RedCount)
		},
	}
	res, err := merge.Run(context.Background(), arena, merge.Options{Hooks: hooks})
	require.NoError(t, err)

	assert.Equal(t, res.FoldAttempts, folds)
	assert.Equal(t, res.Merges, successes)
	assert.Equal(t, res.Promotions, promotes)
}

func TestRun_Cancelled(t *testing.T) {
	arena := build(t, 1, sample(domain.Seq(0), domain.Seq(1)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := merge.Run(ctx, arena, merge.Options{})
	require.ErrorIs(t, err, context.Canceled)
}

func randomFunction(rng *rand.Rand, alphabet, n int) []domain.Sample {
	seen := make(map[string]bool)
	var samples []domain.Sample
	for len(samples) < n {
		in := make(domain.Sequence, rng.IntN(6))
		for i := range in {
			in[i] = domain.Symbol(rng.IntN(alphabet))
		}
		if seen[in.String()] {
			continue
		}
		seen[in.String()] = true
		out := make(domain.Sequence, rng.IntN(4))
		for i := range out {
			out[i] = domain.Symbol(rng.IntN(3))
		}
		samples = append(samples, sample(in, out))
	}
	return samples
}

func TestRun_RandomSamplesStayConsistent(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	for round := 0; round < 100; round++ {
		samples := randomFunction(rng, 1+rng.IntN(3), 1+rng.IntN(30))
		size := 3
		arena := build(t, size, samples...)
		res, err := merge.Run(context.Background(), arena, merge.Options{})
		require.NoError(t, err)

		require.NoError(t, validator.CheckSamples(arena, samples), "round %d", round)
		require.NoError(t, validator.CheckAcyclic(arena), "round %d", round)
		assert.Len(t, arena.Reachable(), len(res.Red), "round %d", round)
	}
}

func TestRun_OrderIndependent(t *testing.T) {
	rng := rand.New(rand.NewPCG(8, 13))
	for round := 0; round < 30; round++ {
		samples := randomFunction(rng, 2, 1+rng.IntN(20))
		shuffled := append([]domain.Sample(nil), samples...)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		first := build(t, 2, samples...)
		second := build(t, 2, shuffled...)
		_, err := merge.Run(context.Background(), first, merge.Options{})
		require.NoError(t, err)
		_, err = merge.Run(context.Background(), second, merge.Options{})
		require.NoError(t, err)

		if diff := cmp.Diff(first.Export(), second.Export()); diff != "" {
			t.Fatalf("round %d: learned transducers differ (-first +second):\n%s", round, diff)
		}
	}
}
