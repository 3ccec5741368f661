package game

import "github.com/louisbranch/kickback/internal/services/game/domain/card"

// Event is the closed set of facts that make up a game's history.
type Event interface {
	Game() GameID
	isEvent()
}

// GameStarted records the seating and first card of a game.
type GameStarted struct {
	GameID      GameID
	PlayerCount int
	FirstCard   card.Card
}

// CardPlayed records an accepted play.
type CardPlayed struct {
	GameID   GameID
	PlayerID PlayerID
	Card     card.Card
}

// PlayerFailed records a rejected play attempt. It leaves state unchanged.
type PlayerFailed struct {
	GameID   GameID
	PlayerID PlayerID
	Card     card.Card
}

func (e GameStarted) Game() GameID  { return e.GameID }
func (e CardPlayed) Game() GameID   { return e.GameID }
func (e PlayerFailed) Game() GameID { return e.GameID }

func (GameStarted) isEvent()  {}
func (CardPlayed) isEvent()   {}
func (PlayerFailed) isEvent() {}
