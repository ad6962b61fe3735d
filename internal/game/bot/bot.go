package bot

import (
	"fmt"

	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"
)

type MoveKind int

const (
	MoveNone MoveKind = iota // empty hand, nothing to do
	MoveCapture
	MoveDiscard
)

func (k MoveKind) String() string {
	switch k {
	case MoveCapture:
		return "capture"
	case MoveDiscard:
		return "discard"
	}
	return "none"
}

func (k MoveKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Move is the bot's decision. Capture is only set for MoveCapture.
type Move struct {
	Kind      MoveKind     `json:"kind"`
	HandIndex int          `json:"index"`
	Capture   []table.Card `json:"capture,omitempty"`
}

func (m Move) String() string {
	switch m.Kind {
	case MoveCapture:
		return fmt.Sprintf("capture with #%d taking %v", m.HandIndex, m.Capture)
	case MoveDiscard:
		return fmt.Sprintf("discard #%d", m.HandIndex)
	}
	return "no move"
}

// Bot plays from visible state only: its own hand and the board.
type Bot struct {
	rules engine.Rules
}

func New(rules engine.Rules) *Bot {
	return &Bot{rules: rules}
}

// ChooseFirst decides the first mini-round: true keeps the start card.
func (b *Bot) ChooseFirst(c table.Card) bool {
	if c == b.rules.HighCard {
		return true
	}
	switch c.Rank {
	case 7, 6, 1:
		return true
	}
	return c.Rank == table.King && b.rules.KingOnBoard == engine.KingAllowed
}

// ChooseMove prefers a sweep, then the most cards, then the highest rank
// total, then the most long-suit cards. With no capture anywhere it drops
// the lowest card, suit order breaking ties.
func (b *Bot) ChooseMove(hand, board []table.Card) Move {
	if len(hand) == 0 {
		return Move{Kind: MoveNone}
	}
	if best, ok := b.bestCapture(hand, board); ok {
		return best
	}
	return discardLowest(hand)
}

type candidate struct {
	move  Move
	sweep bool
	count int
	value int
	long  int
}

func (c candidate) beats(o candidate) bool {
	if c.sweep != o.sweep {
		return c.sweep
	}
	if c.count != o.count {
		return c.count > o.count
	}
	if c.value != o.value {
		return c.value > o.value
	}
	return c.long > o.long
}

func (b *Bot) bestCapture(hand, board []table.Card) (Move, bool) {
	var best candidate
	found := false
	for i, card := range hand {
		for _, sel := range engine.Captures(board, card.Rank) {
			c := candidate{
				move:  Move{Kind: MoveCapture, HandIndex: i, Capture: sel},
				sweep: len(sel) == len(board),
				count: len(sel) + 1,
				value: card.Rank + table.RankSum(sel),
				long:  b.longCount(card, sel),
			}
			if !found || c.beats(best) {
				best, found = c, true
			}
		}
	}
	return best.move, found
}

func (b *Bot) longCount(played table.Card, sel []table.Card) int {
	n := 0
	if played.Suit == b.rules.LongSuit {
		n++
	}
	for _, c := range sel {
		if c.Suit == b.rules.LongSuit {
			n++
		}
	}
	return n
}

func discardLowest(hand []table.Card) Move {
	low := 0
	for i, c := range hand {
		l := hand[low]
		if c.Rank < l.Rank || (c.Rank == l.Rank && c.Suit < l.Suit) {
			low = i
		}
	}
	return Move{Kind: MoveDiscard, HandIndex: low}
}

// Play chooses a move for p and submits it to the round, which stays the
// judge of legality.
func (b *Bot) Play(r *engine.Round, p engine.Player) (Move, error) {
	return submit(r, p, b.ChooseMove(r.Hand(p), r.Board()))
}

// submit plays m. A capture the round refuses falls back to dropping a
// card that has nothing to take.
func submit(r *engine.Round, p engine.Player, m Move) (Move, error) {
	switch m.Kind {
	case MoveCapture:
		err := r.PlayCard(p, m.HandIndex, m.Capture)
		if err == nil {
			return m, nil
		}
		d, ok := safeDiscard(r.Hand(p), r.Board())
		if !ok {
			return m, err
		}
		return d, r.DropCard(p, d.HandIndex)
	case MoveDiscard:
		return m, r.DropCard(p, m.HandIndex)
	}
	return m, nil
}

// safeDiscard is the lowest card with no capture on board.
func safeDiscard(hand, board []table.Card) (Move, bool) {
	low := -1
	for i, c := range hand {
		if engine.CanCapture(board, c.Rank) {
			continue
		}
		if low < 0 || c.Rank < hand[low].Rank || (c.Rank == hand[low].Rank && c.Suit < hand[low].Suit) {
			low = i
		}
	}
	if low < 0 {
		return Move{}, false
	}
	return Move{Kind: MoveDiscard, HandIndex: low}, true
}
