package engine_test

import (
	"math/rand"
	"testing"

	"Shkuba/internal/game/bot"
	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"

	"github.com/stretchr/testify/require"
)

func requireFullDeck(t *testing.T, r *engine.Round) {
	t.Helper()
	var got []table.Card
	got = append(got, r.DeckCards()...)
	for _, p := range engine.Players {
		got = append(got, r.Hand(p)...)
		got = append(got, r.Pile(p)...)
	}
	got = append(got, r.Board()...)
	require.ElementsMatch(t, table.FullDeck(), got)
}

// playRound drives one round with the bot on both seats and checks the
// invariants after every call.
func playRound(t *testing.T, r *engine.Round, b *bot.Bot) {
	t.Helper()
	first, err := r.FirstCard()
	require.NoError(t, err)
	require.NoError(t, r.FirstMiniRound(b.ChooseFirst(first)))
	requireFullDeck(t, r)

	for r.Phase() != engine.RoundOver {
		switch r.Phase() {
		case engine.Dealing:
			require.NoError(t, r.DealCards())
		case engine.Playing:
			p := r.Turn()
			hand, board := r.Hand(p), r.Board()
			canCapture := false
			for _, c := range hand {
				canCapture = canCapture || engine.CanCapture(board, c.Rank)
			}

			m, err := b.Play(r, p)
			require.NoError(t, err, "bot move %v rejected", m)
			if canCapture {
				require.Equal(t, bot.MoveCapture, m.Kind, "bot discarded with a capture available")
			}
		default:
			t.Fatalf("unexpected phase %v", r.Phase())
		}
		requireFullDeck(t, r)

		if r.Phase() == engine.RoundOver {
			require.Empty(t, r.Hand(engine.P1))
			require.Empty(t, r.Hand(engine.P2))
			require.Less(t, r.DeckSize(), 2*engine.HandSize)
		}
	}
}

func TestBotVersusBotMatch(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		rules := engine.DefaultRules()
		if seed%2 == 0 {
			rules.Ties = engine.TieBoth
			rules.KingOnBoard = engine.KingAllowed
		}
		m, err := engine.NewMatch(rules, rand.New(rand.NewSource(seed)))
		require.NoError(t, err)
		b := bot.New(rules)

		r := m.Start()
		for rounds := 0; !m.IsOver(); rounds++ {
			require.Less(t, rounds, 100, "match should end")
			playRound(t, r, b)

			s, err := r.CountPiles()
			require.NoError(t, err)
			total := 0
			for _, a := range s.Awards {
				if a.Category == engine.CategorySweep {
					total++
				}
			}
			require.Equal(t, r.Sweeps(engine.P1)+r.Sweeps(engine.P2), total)

			over, err := m.CompleteRound()
			require.NoError(t, err)
			r = m.Round()
			if !over {
				require.NotNil(t, r)
			}
		}

		w, ok := m.Winner()
		require.True(t, ok)
		s1, s2 := m.Scores()
		if w == engine.P1 {
			require.Greater(t, s1, s2)
			require.GreaterOrEqual(t, s1, rules.WinThreshold)
		} else {
			require.Greater(t, s2, s1)
			require.GreaterOrEqual(t, s2, rules.WinThreshold)
		}
	}
}

func TestReplayIsDeterministic(t *testing.T) {
	run := func() []engine.Score {
		m, err := engine.NewMatch(engine.DefaultRules(), rand.New(rand.NewSource(99)))
		require.NoError(t, err)
		b := bot.New(engine.DefaultRules())
		r := m.Start()
		for !m.IsOver() {
			playRound(t, r, b)
			_, err := m.CompleteRound()
			require.NoError(t, err)
			r = m.Round()
		}
		return m.History()
	}
	require.Equal(t, run(), run())
}
