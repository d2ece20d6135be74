//go:build ostiadebug

package automaton

// DebugChecks enables the expensive O(n) consistency walks.
const DebugChecks = true
