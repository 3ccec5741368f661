package engine

import (
	"errors"
	"fmt"
)

// Stage names the step of Execute that failed after events were journaled.
type Stage string

const (
	StageAppend     Stage = "append"
	StageFold       Stage = "fold"
	StageCheckpoint Stage = "checkpoint"
	StageSnapshot   Stage = "snapshot"
)

// CommittedError reports a failure that happened once at least one event of
// the decision was already in the journal. Replaying the command would
// journal its events a second time.
type CommittedError struct {
	Stage  Stage
	GameID string
	Seq    uint64
	Err    error
}

func (e *CommittedError) Error() string {
	return fmt.Sprintf("game %s %s after seq %d: %v", e.GameID, e.Stage, e.Seq, e.Err)
}

func (e *CommittedError) Unwrap() error { return e.Err }

func committed(stage Stage, gameID string, seq uint64, err error) error {
	if err == nil {
		return nil
	}
	return &CommittedError{Stage: stage, GameID: gameID, Seq: seq, Err: err}
}

// IsNonRetryable reports whether err carries a CommittedError.
func IsNonRetryable(err error) bool {
	var target *CommittedError
	return errors.As(err, &target)
}
