package dealer

import (
	"math/rand"
	"testing"

	"Shkuba/internal/game/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// 工具：检查是否有重复牌
func hasDuplicates(cards []table.Card) bool {
	seen := make(map[table.Card]bool)
	for _, c := range cards {
		if seen[c] {
			return true
		}
		seen[c] = true
	}
	return false
}

func TestNewDeck(t *testing.T) {
	d := NewShuffled(7)

	require.Equal(t, 52, d.Len())
	assert.False(t, hasDuplicates(d.Cards()), "deck should not contain duplicates")

	suits := make(map[table.Suit]bool)
	ranks := make(map[int]bool)
	for _, c := range d.Cards() {
		suits[c.Suit] = true
		ranks[c.Rank] = true
	}
	assert.Len(t, suits, 4)
	assert.Len(t, ranks, 13)
}

func TestShuffleKeepsMembership(t *testing.T) {
	d := New(rand.New(rand.NewSource(3)))
	before := d.Cards()
	d.Shuffle()
	assert.ElementsMatch(t, before, d.Cards())
}

func TestShuffleSeeded(t *testing.T) {
	d1 := NewShuffled(42)
	d2 := NewShuffled(42)
	assert.Equal(t, d1.Cards(), d2.Cards(), "same seed, same order")

	d3 := NewShuffled(99)
	assert.NotEqual(t, d1.Cards(), d3.Cards(), "different seed should differ")
}

func TestShuffleSpreadsTopCard(t *testing.T) {
	// every card of a 4-card deck should reach the top at some point
	top := make(map[table.Card]int)
	rnd := rand.New(rand.NewSource(11))
	cards := table.FullDeck()[:4]
	for i := 0; i < 400; i++ {
		d := Stacked(cards)
		d.rnd = rnd
		d.Shuffle()
		c, err := d.Peek()
		require.NoError(t, err)
		top[c]++
	}
	assert.Len(t, top, 4)
	for c, n := range top {
		assert.Greater(t, n, 50, "card %v on top only %d times", c, n)
	}
}

func TestDrawUntilEmpty(t *testing.T) {
	d := NewShuffled(3)
	drawn := make([]table.Card, 0, 52)
	for i := 0; i < 52; i++ {
		c, err := d.Draw()
		require.NoError(t, err)
		drawn = append(drawn, c)
	}
	assert.False(t, hasDuplicates(drawn))
	assert.Equal(t, 0, d.Len())

	_, err := d.Draw()
	assert.ErrorIs(t, err, ErrEmptyDeck)
	_, err = d.Peek()
	assert.ErrorIs(t, err, ErrEmptyDeck)
}

func TestStackedOrderAndPutBottom(t *testing.T) {
	k := table.Card{Suit: table.Spades, Rank: 13}
	two := table.Card{Suit: table.Hearts, Rank: 2}
	d := Stacked([]table.Card{k, two})

	c, err := d.Draw()
	require.NoError(t, err)
	assert.Equal(t, k, c)

	d.PutBottom(c)
	assert.Equal(t, []table.Card{two, k}, d.Cards())
}
