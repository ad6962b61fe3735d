package engine

import "Shkuba/internal/game/table"

type Category string

const (
	CategoryCards    Category = "cards"
	CategoryLongSuit Category = "long_suit"
	CategoryHighCard Category = "high_card"
	CategoryPrimiera Category = "primiera"
	CategorySweep    Category = "sweep"
)

// Award is one point won by one player in one category.
type Award struct {
	Category Category `json:"category"`
	Player   Player   `json:"player"`
}

// Score is the result of one round.
type Score struct {
	P1     int     `json:"p1"`
	P2     int     `json:"p2"`
	Awards []Award `json:"awards"`
}

func (s Score) Of(p Player) int {
	if p == P1 {
		return s.P1
	}
	return s.P2
}

func (s *Score) award(c Category, p Player) {
	s.Awards = append(s.Awards, Award{Category: c, Player: p})
	if p == P1 {
		s.P1++
	} else {
		s.P2++
	}
}

// compare gives the point to the larger count; ties follow the rules.
func (s *Score) compare(c Category, a, b int, ties TieRule) {
	switch {
	case a > b:
		s.award(c, P1)
	case b > a:
		s.award(c, P2)
	case ties == TieBoth && a > 0:
		s.award(c, P1)
		s.award(c, P2)
	}
}

// 经典 primiera 点数表
var primieraValues = map[int]int{
	7: 21,
	6: 18,
	1: 16,
	5: 15,
	4: 14,
	3: 13,
	2: 12,
}

func primieraValue(rank int) int {
	if v, ok := primieraValues[rank]; ok {
		return v
	}
	return 10
}

// Primiera adds the best card value of each suit. ok is false unless the
// pile holds all four suits.
func Primiera(cards []table.Card) (total int, ok bool) {
	best := make(map[table.Suit]int, 4)
	for _, c := range cards {
		if v := primieraValue(c.Rank); v > best[c.Suit] {
			best[c.Suit] = v
		}
	}
	if len(best) < len(table.Suits) {
		return 0, false
	}
	for _, v := range best {
		total += v
	}
	return total, true
}

func scorePiles(piles [2]*table.Pile, sweeps [2]int, rules Rules) Score {
	s := Score{Awards: make([]Award, 0, 8)}

	s.compare(CategoryCards, piles[P1].Size(), piles[P2].Size(), rules.Ties)
	s.compare(CategoryLongSuit, piles[P1].CountSuit(rules.LongSuit), piles[P2].CountSuit(rules.LongSuit), rules.Ties)

	for _, p := range Players {
		if piles[p].Contains(rules.HighCard) {
			s.award(CategoryHighCard, p)
		}
	}

	v1, ok1 := Primiera(piles[P1].Contents())
	v2, ok2 := Primiera(piles[P2].Contents())
	switch {
	case ok1 && ok2:
		s.compare(CategoryPrimiera, v1, v2, rules.Ties)
	case ok1:
		s.award(CategoryPrimiera, P1)
	case ok2:
		s.award(CategoryPrimiera, P2)
	}

	for _, p := range Players {
		for i := 0; i < sweeps[p]; i++ {
			s.award(CategorySweep, p)
		}
	}
	return s
}
