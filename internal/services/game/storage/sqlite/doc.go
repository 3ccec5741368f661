// Package sqlite implements the game event journal, replay checkpoints and
// state snapshots on SQLite.
//
// Events are appended in one transaction that assigns the next per-game
// sequence and links the hash chain, so every reader sees a gap-free,
// verifiable history. Schema lives in embedded migrations applied on open.
package sqlite
