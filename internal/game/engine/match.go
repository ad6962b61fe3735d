package engine

import (
	"math/rand"

	"Shkuba/internal/game/dealer"
)

// Match is a sequence of rounds played until a cumulative total reaches
// the win threshold. Like Round it expects serialized callers.
type Match struct {
	rules  Rules
	rnd    *rand.Rand
	totals [2]int
	first  Player
	round  *Round
	scores []Score

	over   bool
	winner Player
}

func NewMatch(rules Rules, rnd *rand.Rand) (*Match, error) {
	if err := rules.Validate(); err != nil {
		return nil, err
	}
	return &Match{rules: rules, rnd: rnd}, nil
}

// Start resets the totals and opens the first round with P1 first.
func (m *Match) Start() *Round {
	m.totals = [2]int{}
	m.scores = nil
	m.first = P1
	m.over = false
	m.newRound()
	return m.round
}

func (m *Match) newRound() {
	deck := dealer.New(m.rnd)
	deck.Shuffle()
	m.round = NewRound(m.first, deck, m.rules)
}

// Round is the round in progress, nil before Start and after the match ends.
func (m *Match) Round() *Round { return m.round }

func (m *Match) Rules() Rules { return m.rules }

// CompleteRound folds the finished round into the totals. It reports
// whether the match is over; otherwise the next round is already open with
// the other player first. Equal totals at or past the threshold keep the
// match going.
func (m *Match) CompleteRound() (bool, error) {
	if m.over {
		return true, ErrMatchOver
	}
	if m.round == nil {
		return false, ErrNoRound
	}
	s, err := m.round.CountPiles()
	if err != nil {
		return false, err
	}

	m.totals[P1] += s.P1
	m.totals[P2] += s.P2
	m.scores = append(m.scores, s)

	t1, t2 := m.totals[P1], m.totals[P2]
	if (t1 >= m.rules.WinThreshold || t2 >= m.rules.WinThreshold) && t1 != t2 {
		m.over = true
		m.winner = P1
		if t2 > t1 {
			m.winner = P2
		}
		m.round = nil
		return true, nil
	}

	m.first = m.first.Other()
	m.newRound()
	return false, nil
}

func (m *Match) IsOver() bool { return m.over }

func (m *Match) Winner() (Player, bool) {
	if !m.over {
		return 0, false
	}
	return m.winner, true
}

func (m *Match) Scores() (int, int) {
	return m.totals[P1], m.totals[P2]
}

func (m *Match) RoundsPlayed() int { return len(m.scores) }

// History returns the score of every completed round, oldest first.
func (m *Match) History() []Score {
	out := make([]Score, len(m.scores))
	copy(out, m.scores)
	return out
}
