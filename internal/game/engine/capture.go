package engine

import "Shkuba/internal/game/table"

// Captures lists every non-empty subset of board whose ranks add up to
// rank, in board order. A single card of equal rank is the one-element case.
func Captures(board []table.Card, rank int) [][]table.Card {
	var out [][]table.Card
	var pick []table.Card
	var walk func(from, left int)
	walk = func(from, left int) {
		if left == 0 {
			sel := make([]table.Card, len(pick))
			copy(sel, pick)
			out = append(out, sel)
			return
		}
		for i := from; i < len(board); i++ {
			if board[i].Rank > left {
				continue
			}
			pick = append(pick, board[i])
			walk(i+1, left-board[i].Rank)
			pick = pick[:len(pick)-1]
		}
	}
	if rank > 0 {
		walk(0, rank)
	}
	return out
}

// CanCapture reports whether any subset of board adds up to rank.
func CanCapture(board []table.Card, rank int) bool {
	if rank <= 0 {
		return false
	}
	// subset-sum over small positive ranks
	reach := make([]bool, rank+1)
	reach[0] = true
	for _, c := range board {
		for s := rank; s >= c.Rank; s-- {
			if reach[s-c.Rank] {
				reach[s] = true
			}
		}
	}
	return reach[rank]
}

// IsFit reports whether sel is a legal capture for a card of the given rank.
func IsFit(sel []table.Card, rank int) bool {
	return len(sel) > 0 && table.RankSum(sel) == rank
}
