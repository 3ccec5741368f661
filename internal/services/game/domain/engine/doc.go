// Package engine wires command validation, state loading, decision, event append
// and fold for game command execution.
//
// It is the seam between the pure game core and its drivers: it validates
// intent, rebuilds state from the journal, persists accepted events, and
// returns the decision together with the folded state.
package engine
