package dealer

import (
	"errors"
	"math/rand"
	"time"

	"Shkuba/internal/game/table"
)

var ErrEmptyDeck = errors.New("deck is empty")

// Deck 只负责洗牌与发牌（无规则判断）。cards[0] 是牌顶
type Deck struct {
	cards []table.Card
	rnd   *rand.Rand
}

// New returns the full 52-card deck in suit order, unshuffled. A nil rnd
// is replaced by a time-seeded source.
func New(rnd *rand.Rand) *Deck {
	if rnd == nil {
		rnd = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Deck{cards: table.FullDeck(), rnd: rnd}
}

// NewShuffled is New followed by Shuffle with a fixed seed.
func NewShuffled(seed int64) *Deck {
	d := New(rand.New(rand.NewSource(seed)))
	d.Shuffle()
	return d
}

// Stacked builds a deck that deals cards in the given order, for replays
// and tests. Shuffle still works on it if an rnd is attached later.
func Stacked(cards []table.Card) *Deck {
	out := make([]table.Card, len(cards))
	copy(out, cards)
	return &Deck{cards: out, rnd: rand.New(rand.NewSource(1))}
}

// Shuffle is a Fisher–Yates pass over the remaining cards.
func (d *Deck) Shuffle() {
	for i := len(d.cards) - 1; i > 0; i-- {
		j := d.rnd.Intn(i + 1)
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	}
}

func (d *Deck) Draw() (table.Card, error) {
	if len(d.cards) == 0 {
		return table.Card{}, ErrEmptyDeck
	}
	c := d.cards[0]
	d.cards = d.cards[1:]
	return c, nil
}

// Peek shows the next card without drawing it.
func (d *Deck) Peek() (table.Card, error) {
	if len(d.cards) == 0 {
		return table.Card{}, ErrEmptyDeck
	}
	return d.cards[0], nil
}

// PutBottom returns a drawn card under the deck (first-card king redraw).
func (d *Deck) PutBottom(c table.Card) {
	d.cards = append(d.cards, c)
}

func (d *Deck) Len() int {
	return len(d.cards)
}

// Cards returns the remaining cards, top first.
func (d *Deck) Cards() []table.Card {
	out := make([]table.Card, len(d.cards))
	copy(out, d.cards)
	return out
}
