package game

import "github.com/louisbranch/kickback/internal/services/game/domain/card"

// Command is the closed set of player intents the decider accepts.
type Command interface {
	Game() GameID
	isCommand()
}

// StartGame seats playerCount players and turns up the first card.
type StartGame struct {
	GameID      GameID
	PlayerCount int
	FirstCard   card.Card
}

// PlayCard is a player's attempt to put a card on the pile.
type PlayCard struct {
	GameID   GameID
	PlayerID PlayerID
	Card     card.Card
}

func (c StartGame) Game() GameID { return c.GameID }
func (c PlayCard) Game() GameID  { return c.GameID }

func (StartGame) isCommand() {}
func (PlayCard) isCommand()  {}
