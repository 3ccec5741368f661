package game

import (
	"fmt"
	"io"

	apperrors "github.com/louisbranch/kickback/internal/platform/errors"
	"github.com/louisbranch/kickback/internal/platform/errors/i18n"
	"github.com/louisbranch/kickback/internal/services/game/domain/engine"
	domain "github.com/louisbranch/kickback/internal/services/game/domain/game"
)

type printer struct {
	out     io.Writer
	catalog *i18n.Catalog
}

func newPrinter(out io.Writer, locale string) printer {
	return printer{out: out, catalog: i18n.GetCatalog(locale)}
}

func (p printer) result(gameID string, result engine.Result) error {
	if result.Decision.Rejected() {
		rejection := result.Decision.Rejections[0]
		st := apperrors.Status(rejection.Err(), p.catalog)
		_, err := fmt.Fprintf(p.out, "game=%s rejected code=%s status=%s msg=%q\n",
			gameID, rejection.Code, st.Code(), apperrors.LocalizedMessage(st))
		return err
	}
	state, err := domain.AsState(result.State)
	if err != nil {
		return err
	}
	for _, evt := range result.Decision.Events {
		typed, err := domain.DecodeEvent(evt)
		if err != nil {
			return err
		}
		line := fmt.Sprintf("game=%s seq=%d event=%s", gameID, evt.Seq, evt.Type)
		switch e := typed.(type) {
		case domain.GameStarted:
			line += fmt.Sprintf(" players=%d card=%q", e.PlayerCount, e.FirstCard.String())
		case domain.CardPlayed:
			line += fmt.Sprintf(" player=%d card=%q", e.PlayerID, e.Card.String())
		case domain.PlayerFailed:
			line += fmt.Sprintf(" player=%d card=%q", e.PlayerID, e.Card.String())
		}
		if played, ok := state.(domain.PlayedState); ok {
			line += fmt.Sprintf(" next=%d dir=%s", played.NextPlayer, played.Direction)
		}
		if _, err := fmt.Fprintln(p.out, line); err != nil {
			return err
		}
	}
	return nil
}

func (p printer) failure(gameID string, err error) {
	st := apperrors.Status(err, p.catalog)
	_, _ = fmt.Fprintf(p.out, "game=%s error code=%s status=%s msg=%q\n",
		gameID, apperrors.CodeOf(err), st.Code(), err.Error())
}
