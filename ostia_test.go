package ostia_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/ostia"
	"github.com/aretw0/ostia/pkg/domain"
	"github.com/aretw0/ostia/pkg/sample"
)

func TestLearn_Scenario(t *testing.T) {
	tr, err := ostia.Learn(context.Background(), 2, []domain.Sample{
		{Input: domain.Seq(0), Output: domain.Seq(1)},
		{Input: domain.Seq(0, 1), Output: domain.Seq(1, 0)},
	})
	require.NoError(t, err)

	out, ok := tr.Apply(domain.Seq(0))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(1), out)

	out, ok = tr.Apply(domain.Seq(0, 1))
	require.True(t, ok)
	assert.Equal(t, domain.Seq(1, 0), out)

	assert.Equal(t, 2, tr.AlphabetSize())
	assert.NotEmpty(t, tr.ID())
}

func TestLearn_Errors(t *testing.T) {
	ctx := context.Background()

	_, err := ostia.Learn(ctx, 2, []domain.Sample{
		{Input: domain.Seq(0), Output: domain.Seq(1)},
		{Input: domain.Seq(0), Output: domain.Seq(2)},
	})
	require.ErrorIs(t, err, domain.ErrSampleConflict)
	assert.Contains(t, err.Error(), "sample 1")
	var conflict *domain.SampleConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, domain.Seq(1), conflict.Recorded)
	assert.Equal(t, domain.Seq(2), conflict.Got)

	_, err = ostia.Learn(ctx, 2, []domain.Sample{{Input: domain.Seq(0, 2)}})
	require.ErrorIs(t, err, domain.ErrAlphabetRange)

	_, err = ostia.Learn(ctx, 0, nil)
	require.ErrorIs(t, err, domain.ErrInvalidAlphabetSize)
}

func TestLearner_StatsAndHooks(t *testing.T) {
	var samples, completes int
	var complete domain.CompleteEvent
	hooks := domain.LifecycleHooks{
		OnSample: func(_ context.Context, e *domain.SampleEvent) {
			assert.Equal(t, samples, e.Index)
			samples++
		},
		OnComplete: func(_ context.Context, e *domain.CompleteEvent) {
			completes++
			complete = *e
		},
	}
	l := ostia.NewLearner(ostia.WithLifecycleHooks(hooks), ostia.WithName("promote"))

	tr, stats, err := l.Learn(context.Background(), 1, []domain.Sample{
		{Input: domain.Seq(0), Output: domain.Seq(1)},
		{Input: domain.Seq(0, 0), Output: domain.Seq(2)},
	})
	require.NoError(t, err)

	assert.Equal(t, "promote", tr.Name())
	assert.Equal(t, 2, stats.Samples)
	assert.Equal(t, 3, stats.PTTStates)
	assert.Equal(t, 2, stats.RedStates)
	assert.Equal(t, 2, stats.FoldAttempts)
	assert.Equal(t, 1, stats.Merges)
	assert.Equal(t, 1, stats.Promotions)
	assert.Equal(t, 2, tr.States())

	assert.Equal(t, 2, samples)
	assert.Equal(t, 1, completes)
	assert.Equal(t, stats.RedStates, complete.RedStates)
	assert.Equal(t, domain.EventComplete, complete.Type)
}

func TestLearnSet_Translate(t *testing.T) {
	set := sample.New("partial").
		Pair("ab", "1").
		Pair("b", "2").
		Build()
	tr, _, err := ostia.NewLearner().LearnSet(context.Background(), set)
	require.NoError(t, err)
	assert.Equal(t, "partial", tr.Name())

	tests := []struct {
		in   string
		want string
		err  error
	}{
		{"ab", "1", nil},
		{"b", "2", nil},
		{"", "", nil},
		{"bab", "21", nil},
		{"a", "", domain.ErrUndefinedTransduction},
		{"aa", "", domain.ErrUndefinedTransduction},
		{"abc", "", domain.ErrUnknownToken},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := tr.Translate(tt.in)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLearnSet_GeneralisesMapping(t *testing.T) {
	b := sample.New("upper")
	for _, w := range []string{"", "a", "b", "aa", "ab", "ba", "bb", "aab", "bba", "abab"} {
		up := make([]byte, len(w))
		for i := range w {
			up[i] = w[i] - 'a' + 'A'
		}
		b.Pair(w, string(up))
	}
	tr, stats, err := ostia.NewLearner().LearnSet(context.Background(), b.Build())
	require.NoError(t, err)
	assert.Equal(t, 1, stats.RedStates)

	got, err := tr.Translate("babbaab")
	require.NoError(t, err)
	assert.Equal(t, "BABBAAB", got)
}

func TestTranslate_NoAlphabet(t *testing.T) {
	tr, err := ostia.Learn(context.Background(), 1, []domain.Sample{{Input: domain.Seq(0)}})
	require.NoError(t, err)
	_, err = tr.Translate("a")
	assert.ErrorIs(t, err, ostia.ErrNoAlphabet)
}

func TestModel_RoundTrip(t *testing.T) {
	set := sample.New("partial").Pair("ab", "1").Pair("b", "2").Build()
	tr, _, err := ostia.NewLearner().LearnSet(context.Background(), set)
	require.NoError(t, err)

	data, err := json.Marshal(tr.Model())
	require.NoError(t, err)
	var m domain.Model
	require.NoError(t, json.Unmarshal(data, &m))

	restored, err := ostia.FromModel(&m)
	require.NoError(t, err)
	assert.Equal(t, tr.ID(), restored.ID())
	if diff := cmp.Diff(tr.Model(), restored.Model()); diff != "" {
		t.Errorf("model changed across round trip (-want +got):\n%s", diff)
	}

	for _, in := range []string{"ab", "b", "bab", ""} {
		want, err := tr.Translate(in)
		require.NoError(t, err)
		got, err := restored.Translate(in)
		require.NoError(t, err)
		assert.Equal(t, want, got, in)
	}
}

func TestFromModel_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		model domain.Model
	}{
		{"no states", domain.Model{AlphabetSize: 1}},
		{"dangling target", domain.Model{AlphabetSize: 1, States: []domain.StateRecord{
			{Transitions: []domain.TransitionRecord{{Symbol: 0, Target: 3}}},
		}}},
		{"symbol out of range", domain.Model{AlphabetSize: 1, States: []domain.StateRecord{
			{Transitions: []domain.TransitionRecord{{Symbol: 1, Target: 0}}},
		}}},
		{"alphabet larger than size", domain.Model{
			AlphabetSize:   1,
			States:         []domain.StateRecord{{Accepting: true}},
			InputAlphabet:  []string{"a", "b"},
			OutputAlphabet: []string{"x"},
		}},
		{"bad mode", domain.Model{
			AlphabetSize:  1,
			AlphabetMode:  "bytes",
			States:        []domain.StateRecord{{Accepting: true}},
			InputAlphabet: []string{"a"},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ostia.FromModel(&tt.model)
			assert.ErrorIs(t, err, domain.ErrInvalidModel)
		})
	}
}

func TestTransducer_VerifySet(t *testing.T) {
	set := sample.New("partial").Pair("ab", "1").Pair("b", "2").Build()
	tr, _, err := ostia.NewLearner().LearnSet(context.Background(), set)
	require.NoError(t, err)

	require.NoError(t, tr.VerifySet(set))
	require.NoError(t, tr.VerifySet(sample.New("").Pair("bab", "21").Build()))

	err = tr.VerifySet(sample.New("").Pair("b", "1").Pair("a", "1").Build())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "found 2 errors")

	err = tr.VerifySet(sample.New("").Pair("ab", "3").Build())
	assert.ErrorIs(t, err, domain.ErrUnknownToken)

	assert.ErrorIs(t, tr.VerifySet(sample.New("").Build()), sample.ErrEmptySet)
}
