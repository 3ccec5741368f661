// Package game holds the kickback decision core.
//
// Decide turns the current State and a Command into the single Event that
// happened. Apply folds one Event into the next State. Both are pure: the same
// inputs always yield the same outputs, so a game is rebuilt by replaying its
// history from EmptyState.
//
// Two failure channels are kept apart. Contract violations (starting twice,
// starting with too few players, reading turn data before the game started)
// are returned as errors. Wrong-turn and illegal-card plays are ordinary
// outcomes and decide to a PlayerFailed event.
package game
