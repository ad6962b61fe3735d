package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"Shkuba/internal/game/bot"
	"Shkuba/internal/game/dealer"
	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newGame(input string) (*game, *bytes.Buffer) {
	var out bytes.Buffer
	return &game{
		in:   bufio.NewScanner(strings.NewReader(input)),
		out:  &out,
		bot:  bot.New(engine.DefaultRules()),
		you:  engine.P1,
		seed: 7,
	}, &out
}

func TestQuitAfterFirstChoice(t *testing.T) {
	g, out := newGame("maybe\nboard\nq\n")
	err := g.play(engine.DefaultRules())
	assert.ErrorIs(t, err, errQuit)
	assert.Contains(t, out.String(), "start card")
	assert.Contains(t, out.String(), "board")
}

func TestEOFQuits(t *testing.T) {
	g, _ := newGame("")
	assert.ErrorIs(t, g.play(engine.DefaultRules()), errQuit)
}

// stackedRound: P1 holds 3♥ 5♠ 9♣, board 3♣ 4♦ 7♠ Q♥
func stackedRound(t *testing.T) *engine.Round {
	t.Helper()
	c := func(s table.Suit, r int) table.Card { return table.Card{Suit: s, Rank: r} }
	top := []table.Card{
		c(table.Hearts, 3), // 起始牌，拿到手里
		c(table.Spades, 5), c(table.Hearts, 10),
		c(table.Clubs, 9), c(table.Diamonds, 10),
		c(table.Spades, 10), // P2 第三张
		c(table.Clubs, 3), c(table.Diamonds, 4), c(table.Spades, 7), c(table.Hearts, 12),
	}
	rest := table.FullDeck()[:0:0]
	for _, x := range table.FullDeck() {
		dup := false
		for _, y := range top {
			dup = dup || x == y
		}
		if !dup {
			rest = append(rest, x)
		}
	}
	r := engine.NewRound(engine.P1, dealer.Stacked(append(top, rest...)), engine.DefaultRules())
	require.NoError(t, r.FirstMiniRound(true))
	require.NoError(t, r.DealCards())
	return r
}

func TestApply(t *testing.T) {
	g, _ := newGame("")
	r := stackedRound(t)
	require.Equal(t, []table.Card{{Suit: table.Hearts, Rank: 3}, {Suit: table.Spades, Rank: 5}, {Suit: table.Clubs, Rank: 9}}, r.Hand(engine.P1))

	assert.ErrorIs(t, g.apply(r, []string{"p", "2", "3c", "4d"}), engine.ErrNotAFit)
	assert.ErrorIs(t, g.apply(r, []string{"d", "0"}), engine.ErrCardHasCapture)
	assert.ErrorIs(t, g.apply(r, []string{"p", "0", "3s"}), table.ErrCardNotOnBoard)
	assert.Error(t, g.apply(r, []string{"p", "0", "zz"}))
	assert.Error(t, g.apply(r, []string{"d"}))
	assert.Error(t, g.apply(r, nil))
	assert.ErrorIs(t, g.apply(r, []string{"q"}), errQuit)

	require.NoError(t, g.apply(r, []string{"p", "0", "3c"}))
	assert.Len(t, r.Pile(engine.P1), 2)
	assert.Equal(t, engine.P2, r.Turn())
}

func TestRender(t *testing.T) {
	r := stackedRound(t)
	s := renderView(r.View(engine.P1), [2]int{3, 5})
	assert.Contains(t, s, "you 3 : 5 bot")
	assert.Contains(t, s, "Q♥")
	assert.Contains(t, s, "###")

	score := engine.Score{P1: 1, Awards: []engine.Award{{Category: engine.CategorySweep, Player: engine.P1}}}
	assert.Contains(t, renderScore(score, engine.P1), "sweep")
	assert.Contains(t, renderScore(engine.Score{}, engine.P1), "no points")
}
