//go:build !ostiadebug

package automaton

// DebugChecks enables the expensive O(n) consistency walks.
// Build with -tags ostiadebug to turn them on.
const DebugChecks = false
