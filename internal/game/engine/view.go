package engine

import "Shkuba/internal/game/table"

// View is what one player is allowed to see of a round.
type View struct {
	You           Player       `json:"you"`
	Phase         Phase        `json:"phase"`
	Turn          Player       `json:"turn"`
	FirstPlayer   Player       `json:"firstPlayer"`
	Hand          []table.Card `json:"hand"`
	OpponentCards int          `json:"opponentCards"`
	Board         []table.Card `json:"board"`
	Piles         [2]int       `json:"piles"`
	Sweeps        [2]int       `json:"sweeps"`
	DeckSize      int          `json:"deckSize"`
	Score         *Score       `json:"score,omitempty"`
}

func (r *Round) View(p Player) View {
	v := View{
		You:           p,
		Phase:         r.phase,
		Turn:          r.turn,
		FirstPlayer:   r.first,
		Hand:          r.hands[p].All(),
		OpponentCards: r.hands[p.Other()].Size(),
		Board:         r.board.All(),
		Piles:         [2]int{r.piles[P1].Size(), r.piles[P2].Size()},
		Sweeps:        r.sweeps,
		DeckSize:      r.deck.Len(),
	}
	if s, ok := r.Score(); ok {
		v.Score = &s
	}
	return v
}
