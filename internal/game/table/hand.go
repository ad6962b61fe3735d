package table

// Hand 玩家手牌。下标在移除后会压缩，调用方应以牌本身为准
type Hand struct {
	cards []Card
}

func NewHand(cards ...Card) (*Hand, error) {
	h := &Hand{cards: make([]Card, 0, 3)}
	for _, c := range cards {
		if err := h.Add(c); err != nil {
			return nil, err
		}
	}
	return h, nil
}

// Add guards against double dealing; it is not a gameplay rule.
func (h *Hand) Add(c Card) error {
	if indexOf(h.cards, c) >= 0 {
		return ErrDuplicateCard
	}
	h.cards = append(h.cards, c)
	return nil
}

func (h *Hand) At(i int) (Card, error) {
	if i < 0 || i >= len(h.cards) {
		return Card{}, ErrInvalidIndex
	}
	return h.cards[i], nil
}

func (h *Hand) RemoveAt(i int) (Card, error) {
	c, err := h.At(i)
	if err != nil {
		return Card{}, err
	}
	h.cards = append(h.cards[:i], h.cards[i+1:]...)
	return c, nil
}

func (h *Hand) IndexOf(c Card) int {
	return indexOf(h.cards, c)
}

func (h *Hand) Size() int {
	return len(h.cards)
}

// All returns a fresh snapshot.
func (h *Hand) All() []Card {
	out := make([]Card, len(h.cards))
	copy(out, h.cards)
	return out
}
