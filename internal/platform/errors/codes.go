// Package errors provides structured, coded errors shared across services.
package errors

import "google.golang.org/grpc/codes"

// Code is a machine-readable error code.
type Code string

const (
	// CodeUnknown represents an unknown error.
	CodeUnknown Code = "UNKNOWN"

	// Game lifecycle errors
	CodeGameAlreadyStarted      Code = "GAME_ALREADY_STARTED"
	CodeGameInsufficientPlayers Code = "GAME_INSUFFICIENT_PLAYERS"
	CodeGameNotStarted          Code = "GAME_NOT_STARTED"
	CodeGameSeatMismatch        Code = "GAME_SEAT_MISMATCH"

	// Envelope errors
	CodeGamePayloadInvalid   Code = "GAME_PAYLOAD_INVALID"
	CodeGameCommandUnknown   Code = "GAME_COMMAND_UNKNOWN"
	CodeGameEventUnsupported Code = "GAME_EVENT_UNSUPPORTED"
	CodeCardInvalid          Code = "CARD_INVALID"

	// Engine rejections
	CodeCommandTypeUnsupported Code = "COMMAND_TYPE_UNSUPPORTED"
	CodePayloadDecodeFailed    Code = "PAYLOAD_DECODE_FAILED"

	// Storage errors
	CodeNotFound         Code = "NOT_FOUND"
	CodeEventSequenceGap Code = "EVENT_SEQUENCE_GAP"
)

// GRPCCode maps domain codes to gRPC status codes.
func (c Code) GRPCCode() codes.Code {
	switch c {
	// InvalidArgument - validation failures, bad input
	case CodeGameInsufficientPlayers,
		CodeGamePayloadInvalid,
		CodeGameCommandUnknown,
		CodeCardInvalid,
		CodePayloadDecodeFailed:
		return codes.InvalidArgument

	// Unimplemented - no decider handles the command type
	case CodeCommandTypeUnsupported:
		return codes.Unimplemented

	// FailedPrecondition - state doesn't allow operation
	case CodeGameAlreadyStarted,
		CodeGameNotStarted:
		return codes.FailedPrecondition

	// PermissionDenied - actor plays for another seat
	case CodeGameSeatMismatch:
		return codes.PermissionDenied

	// NotFound - resource doesn't exist
	case CodeNotFound:
		return codes.NotFound

	// DataLoss - journal is not contiguous
	case CodeEventSequenceGap:
		return codes.DataLoss

	default:
		return codes.Internal
	}
}
