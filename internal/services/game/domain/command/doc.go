// Package command defines the canonical command envelope and contract used across
// the write path.
//
// Commands express player or tooling intent. They are normalized and validated by
// the registry before they reach the game decider, so business rules are evaluated
// only against well-formed inputs.
package command
