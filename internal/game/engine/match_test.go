package engine

import (
	"math/rand"
	"testing"

	"Shkuba/internal/game/table"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestMatch(t *testing.T, rules Rules) *Match {
	t.Helper()
	m, err := NewMatch(rules, rand.New(rand.NewSource(5)))
	require.NoError(t, err)
	return m
}

// overRound is a finished round where P1 took everything: 4 points to 0.
func overRound(t *testing.T, first Player) *Round {
	f := fixture{
		first: first,
		piles: [2][]table.Card{table.FullDeck(), nil},
		deck:  []table.Card{},
	}
	r := f.build(t)
	r.phase = RoundOver
	return r
}

func TestNewMatchValidatesRules(t *testing.T) {
	rules := DefaultRules()
	rules.WinThreshold = 0
	_, err := NewMatch(rules, nil)
	assert.Error(t, err)
}

func TestMatchStart(t *testing.T) {
	m := newTestMatch(t, DefaultRules())
	assert.Nil(t, m.Round())
	_, err := m.CompleteRound()
	assert.ErrorIs(t, err, ErrNoRound)

	r := m.Start()
	require.NotNil(t, r)
	assert.Equal(t, AwaitingFirstChoice, r.Phase())
	assert.Equal(t, P1, r.FirstPlayer())
	assert.Equal(t, 52, r.DeckSize())
	assertFullDeck(t, r)

	s1, s2 := m.Scores()
	assert.Zero(t, s1)
	assert.Zero(t, s2)
	assert.False(t, m.IsOver())
	_, ok := m.Winner()
	assert.False(t, ok)
}

func TestMatchCompleteRoundNeedsRoundOver(t *testing.T) {
	m := newTestMatch(t, DefaultRules())
	m.Start()
	_, err := m.CompleteRound()
	assert.ErrorIs(t, err, ErrWrongPhase)
}

func TestMatchAlternatesFirstPlayer(t *testing.T) {
	m := newTestMatch(t, DefaultRules())
	m.Start()
	m.round = overRound(t, P1)

	over, err := m.CompleteRound()
	require.NoError(t, err)
	assert.False(t, over)

	s1, s2 := m.Scores()
	assert.Equal(t, 4, s1)
	assert.Equal(t, 0, s2)
	assert.Equal(t, 1, m.RoundsPlayed())
	require.NotNil(t, m.Round())
	assert.Equal(t, P2, m.Round().FirstPlayer())
	assert.Equal(t, AwaitingFirstChoice, m.Round().Phase())

	m.round = overRound(t, P2)
	_, err = m.CompleteRound()
	require.NoError(t, err)
	assert.Equal(t, P1, m.Round().FirstPlayer())
	assert.Len(t, m.History(), 2)
}

func TestMatchReachesThreshold(t *testing.T) {
	rules := DefaultRules()
	rules.WinThreshold = 11
	m := newTestMatch(t, rules)
	m.Start()
	m.totals = [2]int{8, 10}
	m.round = overRound(t, P1)

	over, err := m.CompleteRound()
	require.NoError(t, err)
	assert.True(t, over)
	assert.True(t, m.IsOver())
	w, ok := m.Winner()
	assert.True(t, ok)
	assert.Equal(t, P1, w, "12 beats 10")
	assert.Nil(t, m.Round())

	_, err = m.CompleteRound()
	assert.ErrorIs(t, err, ErrMatchOver)
}

func TestMatchTieAtThresholdContinues(t *testing.T) {
	m := newTestMatch(t, DefaultRules())
	m.Start()
	m.totals = [2]int{17, 21}
	m.round = overRound(t, P1)

	over, err := m.CompleteRound()
	require.NoError(t, err)
	assert.False(t, over, "21 all is not decided")
	assert.NotNil(t, m.Round())

	m.round = overRound(t, P2)
	over, err = m.CompleteRound()
	require.NoError(t, err)
	assert.True(t, over)
	w, _ := m.Winner()
	assert.Equal(t, P1, w)
}

func TestMatchStartResets(t *testing.T) {
	m := newTestMatch(t, DefaultRules())
	m.Start()
	m.totals = [2]int{3, 4}
	m.round = overRound(t, P1)
	_, err := m.CompleteRound()
	require.NoError(t, err)

	m.Start()
	s1, s2 := m.Scores()
	assert.Zero(t, s1+s2)
	assert.Zero(t, m.RoundsPlayed())
	assert.Equal(t, P1, m.Round().FirstPlayer())
}
