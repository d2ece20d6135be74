package automaton

import "fmt"

// InvariantViolation is the panic value raised when the learner detects a
// defect in its own bookkeeping, such as a cyclic output chain or a state
// registered twice in one fold. It never signals a problem with the sample.
type InvariantViolation struct {
	Op     string
	Detail string
}

func (v InvariantViolation) Error() string {
	return fmt.Sprintf("automaton invariant violated in %s: %s", v.Op, v.Detail)
}

// Invariant panics with an InvariantViolation when ok is false.
func Invariant(ok bool, op, format string, args ...any) {
	if !ok {
		panic(InvariantViolation{Op: op, Detail: fmt.Sprintf(format, args...)})
	}
}
