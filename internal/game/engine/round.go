package engine

import (
	"fmt"

	"Shkuba/internal/game/dealer"
	"Shkuba/internal/game/table"
)

type Player int

const (
	P1 Player = iota
	P2
)

// Players in seat order.
var Players = []Player{P1, P2}

func (p Player) Other() Player {
	if p == P1 {
		return P2
	}
	return P1
}

func (p Player) String() string {
	return fmt.Sprintf("p%d", int(p)+1)
}

func (p Player) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type Phase int

const (
	AwaitingFirstChoice Phase = iota
	Dealing
	Playing
	RoundOver
)

func (ph Phase) String() string {
	switch ph {
	case AwaitingFirstChoice:
		return "awaiting_first_choice"
	case Dealing:
		return "dealing"
	case Playing:
		return "playing"
	case RoundOver:
		return "round_over"
	}
	return fmt.Sprintf("phase(%d)", int(ph))
}

func (ph Phase) MarshalText() ([]byte, error) {
	return []byte(ph.String()), nil
}

// Round is one deal-and-play cycle. It owns its deck, hands, board and
// piles. Not safe for concurrent use: the host serializes calls.
//
// Every card of the deck is always in exactly one of deck, hands, board
// or piles. A call that returns an error changes nothing.
type Round struct {
	rules Rules
	deck  *dealer.Deck
	hands [2]*table.Hand
	board *table.Board
	piles [2]*table.Pile

	sweeps [2]int
	first  Player
	turn   Player
	phase  Phase
	dealt  bool

	lastCapture Player
	captured    bool

	score *Score
}

// NewRound starts in AwaitingFirstChoice with first holding the turn.
// The deck is used as given; shuffle it beforehand.
func NewRound(first Player, deck *dealer.Deck, rules Rules) *Round {
	r := &Round{
		rules: rules,
		deck:  deck,
		board: &table.Board{},
		first: first,
		turn:  first,
		phase: AwaitingFirstChoice,
	}
	for _, p := range Players {
		r.hands[p] = &table.Hand{}
		r.piles[p] = table.NewPile()
	}
	return r
}

func (r *Round) Phase() Phase { return r.phase }
func (r *Round) Turn() Player { return r.turn }
func (r *Round) FirstPlayer() Player { return r.first }
func (r *Round) Rules() Rules { return r.rules }
func (r *Round) DeckSize() int { return r.deck.Len() }
func (r *Round) Hand(p Player) []table.Card { return r.hands[p].All() }
func (r *Round) Board() []table.Card { return r.board.All() }
func (r *Round) Pile(p Player) []table.Card { return r.piles[p].Contents() }
func (r *Round) Sweeps(p Player) int { return r.sweeps[p] }

// DeckCards is the undealt remainder, top first.
func (r *Round) DeckCards() []table.Card { return r.deck.Cards() }

// FirstCard previews the card FirstMiniRound will draw.
func (r *Round) FirstCard() (table.Card, error) {
	if r.phase != AwaitingFirstChoice {
		return table.Card{}, ErrWrongPhase
	}
	return r.deck.Peek()
}

// FirstMiniRound draws the start card. take puts it in the first player's
// hand, otherwise it goes face up on the board. Under KingRedraw a King
// headed for the board goes back under the deck and another card is drawn.
func (r *Round) FirstMiniRound(take bool) error {
	if r.phase != AwaitingFirstChoice {
		return ErrWrongPhase
	}
	if r.deck.Len() == 0 {
		return dealer.ErrEmptyDeck
	}

	c, _ := r.deck.Draw()
	if take {
		if err := r.hands[r.first].Add(c); err != nil {
			r.deck.PutBottom(c)
			return err
		}
		r.phase = Dealing
		return nil
	}

	// bounded so a deck of nothing but kings cannot spin forever
	for tries := r.deck.Len(); r.rules.KingOnBoard == KingRedraw && c.Rank == table.King && tries > 0; tries-- {
		r.deck.PutBottom(c)
		c, _ = r.deck.Draw()
	}
	if err := r.board.Add(c); err != nil {
		r.deck.PutBottom(c)
		return err
	}
	r.phase = Dealing
	return nil
}

// DealCards fills the hands. The first deal of the round tops each hand up
// to HandSize and the board up to BoardSize; later deals need both hands
// empty and give HandSize cards each, alternating from the first player.
//
// When the deck is too short it deals nothing, ends the round and returns
// ErrDeckExhausted; the round is then in RoundOver and can be counted.
func (r *Round) DealCards() error {
	if r.phase != Dealing {
		return ErrWrongPhase
	}

	need := 0
	if !r.dealt {
		for _, p := range Players {
			need += max(HandSize-r.hands[p].Size(), 0)
		}
		need += max(BoardSize-r.board.Size(), 0)
	} else {
		if r.hands[P1].Size() > 0 || r.hands[P2].Size() > 0 {
			return ErrWrongPhase
		}
		need = 2 * HandSize
	}
	if r.deck.Len() < need {
		r.finish()
		return ErrDeckExhausted
	}
	if err := r.checkDeal(need); err != nil {
		return err
	}

	order := [2]Player{r.first, r.first.Other()}
	for i := 0; i < HandSize; i++ {
		for _, p := range order {
			if r.hands[p].Size() >= HandSize {
				continue
			}
			if err := r.dealTo(r.hands[p].Add); err != nil {
				return err
			}
		}
	}
	for !r.dealt && r.board.Size() < BoardSize {
		if err := r.dealTo(r.board.Add); err != nil {
			return err
		}
	}

	r.dealt = true
	r.phase = Playing
	return nil
}

func (r *Round) dealTo(add func(table.Card) error) error {
	c, err := r.deck.Draw()
	if err != nil {
		return err
	}
	return add(c)
}

// checkDeal makes sure none of the next n cards is already in play, so a
// hand-built deck with a repeated card fails before anything moves.
func (r *Round) checkDeal(n int) error {
	next := r.deck.Cards()[:n]
	for i, c := range next {
		if containsCard(next[:i], c) || r.inPlay(c) {
			return table.ErrDuplicateCard
		}
	}
	return nil
}

func (r *Round) inPlay(c table.Card) bool {
	if r.board.Contains(c) {
		return true
	}
	for _, p := range Players {
		if r.hands[p].IndexOf(c) >= 0 || r.piles[p].Contains(c) {
			return true
		}
	}
	return false
}

// PlayCard captures sel from the board with the card at handIndex. sel must
// be on the board and its ranks must add up to the played card's rank.
func (r *Round) PlayCard(p Player, handIndex int, sel []table.Card) error {
	card, err := r.checkTurn(p, handIndex)
	if err != nil {
		return err
	}
	if len(sel) == 0 {
		return ErrNotAFit
	}
	for i, c := range sel {
		if !r.board.Contains(c) || containsCard(sel[:i], c) {
			return table.ErrCardNotOnBoard
		}
	}
	if !IsFit(sel, card.Rank) {
		return ErrNotAFit
	}

	if err := r.board.Remove(sel); err != nil {
		return err
	}
	_, _ = r.hands[p].RemoveAt(handIndex)
	r.piles[p].Append(card)
	r.piles[p].Append(sel...)
	if r.board.Empty() {
		r.sweeps[p]++
	}
	r.lastCapture, r.captured = p, true

	r.endTurn()
	return nil
}

// DropCard lays the card face up. Refused while the card has a capture.
func (r *Round) DropCard(p Player, handIndex int) error {
	card, err := r.checkTurn(p, handIndex)
	if err != nil {
		return err
	}
	if CanCapture(r.board.All(), card.Rank) {
		return ErrCardHasCapture
	}
	if err := r.board.Add(card); err != nil {
		return err
	}
	_, _ = r.hands[p].RemoveAt(handIndex)

	r.endTurn()
	return nil
}

func (r *Round) checkTurn(p Player, handIndex int) (table.Card, error) {
	if r.phase != Playing {
		return table.Card{}, ErrWrongPhase
	}
	if p != r.turn {
		return table.Card{}, ErrNotYourTurn
	}
	return r.hands[p].At(handIndex)
}

func (r *Round) endTurn() {
	r.turn = r.turn.Other()
	if r.hands[P1].Size() > 0 || r.hands[P2].Size() > 0 {
		return
	}
	if r.deck.Len() >= 2*HandSize {
		r.phase = Dealing
		return
	}
	r.finish()
}

// finish closes the round; the last capturer takes what is left on the board.
func (r *Round) finish() {
	if r.rules.LastCaptureTakesBoard && r.captured {
		r.piles[r.lastCapture].Append(r.board.Clear()...)
	}
	r.phase = RoundOver
}

// CountPiles scores the round. Only valid in RoundOver; repeated calls
// return the same score.
func (r *Round) CountPiles() (Score, error) {
	if r.phase != RoundOver {
		return Score{}, ErrWrongPhase
	}
	if r.score == nil {
		s := scorePiles(r.piles, r.sweeps, r.rules)
		r.score = &s
	}
	return *r.score, nil
}

// Score is the stored result of CountPiles.
func (r *Round) Score() (Score, bool) {
	if r.score == nil {
		return Score{}, false
	}
	return *r.score, true
}

func containsCard(cards []table.Card, c table.Card) bool {
	for _, x := range cards {
		if x == c {
			return true
		}
	}
	return false
}
