/*
Package ostia infers deterministic string-to-string transducers from examples.

Given a finite set of input/output pairs, ostia builds the smallest onward
subsequential transducer that reproduces every pair, and generalises to
inputs it has never seen. The learner works in two phases:

  - Prefix tree: the samples are merged into a tree-shaped transducer in
    onward form, where every output symbol is emitted on the earliest edge
    shared by all samples that produce it.
  - State merging: states are visited breadth-first. Each new ("blue") state
    is folded into the first accepted ("red") state whose outputs agree with
    it; when none does, it is promoted to red. A fold that fails leaves the
    automaton untouched.

# Usage

Samples are sequences of integer symbols. The input alphabet is [0, n).

	samples := []domain.Sample{
		{Input: domain.Seq(0), Output: domain.Seq(1)},
		{Input: domain.Seq(0, 1), Output: domain.Seq(1, 0)},
	}
	t, err := ostia.Learn(ctx, 2, samples)
	if err != nil {
		log.Fatal(err)
	}
	out, ok := t.Apply(domain.Seq(0, 1)) // [1 0], true

String samples go through the sample and alphabet packages:

	set := sample.New("plural").Pair("cat", "cats").Pair("dog", "dogs").Build()
	t, stats, err := ostia.NewLearner(ostia.WithLogger(logger)).LearnSet(ctx, set)
	plural, err := t.Translate("cat")

A learned transducer can be persisted with Model and restored with FromModel.
*/
package ostia
