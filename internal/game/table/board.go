package table

// Board 桌面上的明牌
type Board struct {
	cards []Card
}

func NewBoard(cards ...Card) (*Board, error) {
	b := &Board{cards: make([]Card, 0, 8)}
	for _, c := range cards {
		if err := b.Add(c); err != nil {
			return nil, err
		}
	}
	return b, nil
}

func (b *Board) Add(c Card) error {
	if indexOf(b.cards, c) >= 0 {
		return ErrDuplicateCard
	}
	b.cards = append(b.cards, c)
	return nil
}

func (b *Board) Contains(c Card) bool {
	return indexOf(b.cards, c) >= 0
}

// Remove takes every card of sel off the board, or none of them.
// A card listed twice counts as absent the second time.
func (b *Board) Remove(sel []Card) error {
	if err := b.check(sel); err != nil {
		return err
	}
	kept := make([]Card, 0, len(b.cards))
	for _, c := range b.cards {
		if indexOf(sel, c) < 0 {
			kept = append(kept, c)
		}
	}
	b.cards = kept
	return nil
}

func (b *Board) check(sel []Card) error {
	for i, c := range sel {
		if indexOf(b.cards, c) < 0 || indexOf(sel[:i], c) >= 0 {
			return ErrCardNotOnBoard
		}
	}
	return nil
}

// Clear empties the board and returns what was on it.
func (b *Board) Clear() []Card {
	out := b.cards
	b.cards = make([]Card, 0, 8)
	return out
}

func (b *Board) Size() int {
	return len(b.cards)
}

func (b *Board) Empty() bool {
	return len(b.cards) == 0
}

func (b *Board) All() []Card {
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}
