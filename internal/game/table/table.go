package table

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrDuplicateCard  = errors.New("card already present")
	ErrInvalidIndex   = errors.New("invalid card index")
	ErrCardNotOnBoard = errors.New("card not on board")
)

// Suit 花色，顺序即 bot 打平时的比较顺序
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// Suits in deck order.
var Suits = []Suit{Spades, Hearts, Diamonds, Clubs}

const (
	MinRank = 1  // Ace
	MaxRank = 13 // King
	King    = 13
)

func (s Suit) String() string {
	switch s {
	case Spades:
		return "spades"
	case Hearts:
		return "hearts"
	case Diamonds:
		return "diamonds"
	case Clubs:
		return "clubs"
	}
	return fmt.Sprintf("suit(%d)", int(s))
}

func (s Suit) Symbol() string {
	symbols := []string{"♠", "♥", "♦", "♣"}
	if s >= 0 && int(s) < len(symbols) {
		return symbols[s]
	}
	return "?"
}

func (s Suit) Valid() bool {
	return s >= Spades && s <= Clubs
}

// ParseSuit accepts the name or the first letter ("clubs", "C").
func ParseSuit(v string) (Suit, error) {
	v = strings.ToLower(strings.TrimSpace(v))
	for _, s := range Suits {
		if v == s.String() || v == s.String()[:1] {
			return s, nil
		}
	}
	return 0, fmt.Errorf("unknown suit %q", v)
}

// Card 定义 (suit 0-3, rank 1-13)
type Card struct {
	Suit Suit `json:"suit"`
	Rank int  `json:"rank"`
}

func (c Card) Valid() bool {
	return c.Suit.Valid() && c.Rank >= MinRank && c.Rank <= MaxRank
}

func (c Card) String() string {
	return fmtCard(c)
}

func fmtCard(c Card) string {
	ranks := map[int]string{
		1:  "A",
		11: "J",
		12: "Q",
		13: "K",
	}
	rankStr, ok := ranks[c.Rank]
	if !ok {
		rankStr = fmt.Sprintf("%d", c.Rank)
	}
	return rankStr + c.Suit.Symbol()
}

// ParseCard reads the short form used by the terminal client: rank then
// suit letter, e.g. "7d", "KC", "10h", "as".
func ParseCard(v string) (Card, error) {
	v = strings.ToUpper(strings.TrimSpace(v))
	if len(v) < 2 {
		return Card{}, fmt.Errorf("bad card %q", v)
	}
	suit, err := ParseSuit(v[len(v)-1:])
	if err != nil {
		return Card{}, err
	}
	var rank int
	switch r := v[:len(v)-1]; r {
	case "A":
		rank = 1
	case "J":
		rank = 11
	case "Q":
		rank = 12
	case "K":
		rank = 13
	default:
		if _, err := fmt.Sscanf(r, "%d", &rank); err != nil {
			return Card{}, fmt.Errorf("bad rank in %q", v)
		}
	}
	c := Card{Suit: suit, Rank: rank}
	if !c.Valid() {
		return Card{}, fmt.Errorf("bad card %q", v)
	}
	return c, nil
}

// FullDeck returns the 52 distinct cards, suit by suit, ace to king.
func FullDeck() []Card {
	deck := make([]Card, 0, 52)
	for _, s := range Suits {
		for r := MinRank; r <= MaxRank; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// RankSum adds up the ranks of cards.
func RankSum(cards []Card) int {
	sum := 0
	for _, c := range cards {
		sum += c.Rank
	}
	return sum
}

func indexOf(cards []Card, c Card) int {
	for i, x := range cards {
		if x == c {
			return i
		}
	}
	return -1
}
