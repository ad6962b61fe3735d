package table

// Pile holds the cards a player won during a round. Append only.
type Pile struct {
	cards []Card
}

func NewPile() *Pile {
	return &Pile{cards: make([]Card, 0, 26)}
}

func (p *Pile) Append(cards ...Card) {
	p.cards = append(p.cards, cards...)
}

func (p *Pile) Size() int {
	return len(p.cards)
}

func (p *Pile) Contents() []Card {
	out := make([]Card, len(p.cards))
	copy(out, p.cards)
	return out
}

func (p *Pile) Contains(c Card) bool {
	return indexOf(p.cards, c) >= 0
}

// CountSuit counts cards of suit s.
func (p *Pile) CountSuit(s Suit) int {
	n := 0
	for _, c := range p.cards {
		if c.Suit == s {
			n++
		}
	}
	return n
}
