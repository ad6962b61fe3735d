package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFullDeckIsDistinct(t *testing.T) {
	deck := FullDeck()
	require.Len(t, deck, 52)

	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.True(t, c.Valid(), "%v", c)
		assert.False(t, seen[c], "duplicate %v", c)
		seen[c] = true
	}
}

func TestCardString(t *testing.T) {
	assert.Equal(t, "A♠", Card{Suit: Spades, Rank: 1}.String())
	assert.Equal(t, "7♦", Card{Suit: Diamonds, Rank: 7}.String())
	assert.Equal(t, "K♣", Card{Suit: Clubs, Rank: 13}.String())
}

func TestParseCard(t *testing.T) {
	tests := []struct {
		in   string
		want Card
	}{
		{"7d", Card{Suit: Diamonds, Rank: 7}},
		{"KC", Card{Suit: Clubs, Rank: 13}},
		{"10h", Card{Suit: Hearts, Rank: 10}},
		{"as", Card{Suit: Spades, Rank: 1}},
	}
	for _, tt := range tests {
		got, err := ParseCard(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got)
	}

	for _, bad := range []string{"", "7", "14h", "0s", "7x"} {
		_, err := ParseCard(bad)
		assert.Error(t, err, bad)
	}
}

func TestHandAddRemove(t *testing.T) {
	h, err := NewHand(Card{Hearts, 7}, Card{Clubs, 2})
	require.NoError(t, err)

	assert.ErrorIs(t, h.Add(Card{Hearts, 7}), ErrDuplicateCard)
	assert.Equal(t, 2, h.Size())

	_, err = h.RemoveAt(2)
	assert.ErrorIs(t, err, ErrInvalidIndex)
	_, err = h.RemoveAt(-1)
	assert.ErrorIs(t, err, ErrInvalidIndex)

	c, err := h.RemoveAt(0)
	require.NoError(t, err)
	assert.Equal(t, Card{Hearts, 7}, c)

	// indices compact after removal
	c, err = h.At(0)
	require.NoError(t, err)
	assert.Equal(t, Card{Clubs, 2}, c)
}

func TestHandSnapshotIsolated(t *testing.T) {
	h, _ := NewHand(Card{Hearts, 7})
	snap := h.All()
	snap[0] = Card{Spades, 1}

	c, _ := h.At(0)
	assert.Equal(t, Card{Hearts, 7}, c)
}

func TestBoardRemoveIsAtomic(t *testing.T) {
	b, err := NewBoard(Card{Spades, 3}, Card{Clubs, 4}, Card{Hearts, 5})
	require.NoError(t, err)

	err = b.Remove([]Card{{Spades, 3}, {Diamonds, 9}})
	assert.ErrorIs(t, err, ErrCardNotOnBoard)
	assert.Equal(t, 3, b.Size(), "failed removal must not touch the board")

	err = b.Remove([]Card{{Spades, 3}, {Spades, 3}})
	assert.ErrorIs(t, err, ErrCardNotOnBoard)

	require.NoError(t, b.Remove([]Card{{Spades, 3}, {Clubs, 4}}))
	assert.Equal(t, []Card{{Hearts, 5}}, b.All())

	require.NoError(t, b.Remove(nil))
	assert.Equal(t, 1, b.Size())
}

func TestBoardDuplicate(t *testing.T) {
	b, _ := NewBoard(Card{Spades, 3})
	assert.ErrorIs(t, b.Add(Card{Spades, 3}), ErrDuplicateCard)
	_, err := NewBoard(Card{Spades, 3}, Card{Spades, 3})
	assert.ErrorIs(t, err, ErrDuplicateCard)
}

func TestPile(t *testing.T) {
	p := NewPile()
	p.Append(Card{Clubs, 1}, Card{Clubs, 2}, Card{Hearts, 2})
	assert.Equal(t, 3, p.Size())
	assert.Equal(t, 2, p.CountSuit(Clubs))
	assert.True(t, p.Contains(Card{Hearts, 2}))
	assert.False(t, p.Contains(Card{Hearts, 3}))
}

func TestRankSum(t *testing.T) {
	assert.Equal(t, 7, RankSum([]Card{{Spades, 3}, {Clubs, 4}}))
	assert.Equal(t, 0, RankSum(nil))
}
