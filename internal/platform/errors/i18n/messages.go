package i18n

// Error codes must match the codes defined in internal/platform/errors/codes.go.
// These are duplicated as strings to avoid an import cycle.
const (
	CodeGameAlreadyStarted      = "GAME_ALREADY_STARTED"
	CodeGameInsufficientPlayers = "GAME_INSUFFICIENT_PLAYERS"
	CodeGameNotStarted          = "GAME_NOT_STARTED"
	CodeGameSeatMismatch        = "GAME_SEAT_MISMATCH"
	CodeGamePayloadInvalid      = "GAME_PAYLOAD_INVALID"
	CodeGameCommandUnknown      = "GAME_COMMAND_UNKNOWN"
	CodeCardInvalid             = "CARD_INVALID"
	CodeNotFound                = "NOT_FOUND"
	CodeCommandTypeUnsupported  = "COMMAND_TYPE_UNSUPPORTED"
	CodePayloadDecodeFailed     = "PAYLOAD_DECODE_FAILED"
	CodeEventSequenceGap        = "EVENT_SEQUENCE_GAP"
	CodeUnknown                 = "UNKNOWN"
)

var enUSMessages = map[Code]string{
	CodeGameAlreadyStarted:      "Game {{.GameID}} has already started.",
	CodeGameInsufficientPlayers: "A game needs at least {{.MinPlayers}} players.",
	CodeGameNotStarted:          "Game {{.GameID}} has not started yet.",
	CodeGameSeatMismatch:        "Player {{.ActorID}} cannot play for seat {{.PlayerID}}.",
	CodeGamePayloadInvalid:      "The command could not be read.",
	CodeGameCommandUnknown:      "That command is not supported.",
	CodeCardInvalid:             "That card does not exist.",
	CodeNotFound:                "Not found.",
	CodeCommandTypeUnsupported:  "That command is not supported.",
	CodePayloadDecodeFailed:     "The command could not be read.",
	CodeEventSequenceGap:        "The history of game {{.GameID}} is incomplete.",
	CodeUnknown:                 "Something went wrong.",
}

var ptBRMessages = map[Code]string{
	CodeGameAlreadyStarted:      "O jogo {{.GameID}} já começou.",
	CodeGameInsufficientPlayers: "Um jogo precisa de pelo menos {{.MinPlayers}} jogadores.",
	CodeGameNotStarted:          "O jogo {{.GameID}} ainda não começou.",
	CodeGameSeatMismatch:        "O jogador {{.ActorID}} não pode jogar pelo assento {{.PlayerID}}.",
	CodeGamePayloadInvalid:      "Não foi possível ler o comando.",
	CodeGameCommandUnknown:      "Esse comando não é suportado.",
	CodeCardInvalid:             "Essa carta não existe.",
	CodeNotFound:                "Não encontrado.",
	CodeCommandTypeUnsupported:  "Esse comando não é suportado.",
	CodePayloadDecodeFailed:     "Não foi possível ler o comando.",
	CodeEventSequenceGap:        "O histórico do jogo {{.GameID}} está incompleto.",
	CodeUnknown:                 "Algo deu errado.",
}
