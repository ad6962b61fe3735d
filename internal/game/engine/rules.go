package engine

import (
	"errors"
	"fmt"
	"strings"

	"Shkuba/internal/game/table"
)

const (
	HandSize  = 3 // cards per player per deal
	BoardSize = 4 // face-up cards after the first deal
)

// KingRule decides what happens when the first card lands on the board as a King.
type KingRule int

const (
	KingRedraw KingRule = iota // king goes under the deck, draw again
	KingAllowed
)

// TieRule decides a tied scoring category.
type TieRule int

const (
	TieVoid TieRule = iota // nobody scores
	TieBoth                // both players score the point
)

type Rules struct {
	WinThreshold          int
	KingOnBoard           KingRule
	Ties                  TieRule
	LongSuit              table.Suit
	HighCard              table.Card
	LastCaptureTakesBoard bool
}

func DefaultRules() Rules {
	return Rules{
		WinThreshold:          21,
		KingOnBoard:           KingRedraw,
		Ties:                  TieVoid,
		LongSuit:              table.Clubs,
		HighCard:              table.Card{Suit: table.Diamonds, Rank: 7},
		LastCaptureTakesBoard: true,
	}
}

func (r Rules) Validate() error {
	if r.WinThreshold <= 0 {
		return errors.New("win threshold must be positive")
	}
	if !r.LongSuit.Valid() {
		return fmt.Errorf("invalid long suit %v", r.LongSuit)
	}
	if !r.HighCard.Valid() {
		return fmt.Errorf("invalid high card %+v", r.HighCard)
	}
	return nil
}

func ParseKingRule(v string) (KingRule, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "redraw":
		return KingRedraw, nil
	case "allow", "allowed":
		return KingAllowed, nil
	}
	return 0, fmt.Errorf("unknown king rule %q", v)
}

func ParseTieRule(v string) (TieRule, error) {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "", "void":
		return TieVoid, nil
	case "both", "split":
		return TieBoth, nil
	}
	return 0, fmt.Errorf("unknown tie rule %q", v)
}
