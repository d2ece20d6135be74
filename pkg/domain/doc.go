/*
Package domain contains the core vocabulary of the ostia learner.

It defines the values exchanged between the learner and its collaborators:
symbols and sequences, training samples, the error taxonomy, lifecycle events
emitted while learning, and the persisted Model record. The package is kept
free of I/O so adapters and the learner can share it without cycles.

# Key Entities

  - Symbol / Sequence: alphabet indices and immutable symbol strings.
  - Sample: one (input, output) pair of the informant.
  - Model: a serializable snapshot of a learned transducer.
  - LifecycleHooks: callbacks observing sample insertion, folds and promotions.
*/
package domain
