package main

import (
	"fmt"
	"strings"

	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"

	"github.com/charmbracelet/lipgloss"
)

var (
	redCard = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1).
		Foreground(lipgloss.Color("#D7263D")).
		Bold(true)
	blackCard = redCard.Foreground(lipgloss.Color("#E8E8E8"))
	backCard  = redCard.Foreground(lipgloss.Color("#4A6FA5"))

	title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FFD700"))
	dim   = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	good  = lipgloss.NewStyle().Foreground(lipgloss.Color("#90EE90"))
	bad   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

func cardStyle(c table.Card) lipgloss.Style {
	if c.Suit == table.Hearts || c.Suit == table.Diamonds {
		return redCard
	}
	return blackCard
}

// renderRow 横排一组牌，numbered 时在牌下标出序号
func renderRow(cards []table.Card, numbered bool) string {
	if len(cards) == 0 {
		return dim.Render("(empty)")
	}
	boxes := make([]string, 0, len(cards))
	for i, c := range cards {
		box := cardStyle(c).Render(fmt.Sprintf("%-3s", c.String()))
		if numbered {
			box = lipgloss.JoinVertical(lipgloss.Center, box, dim.Render(fmt.Sprintf("%d", i)))
		}
		boxes = append(boxes, box)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderBacks(n int) string {
	if n == 0 {
		return dim.Render("(empty)")
	}
	boxes := make([]string, n)
	for i := range boxes {
		boxes[i] = backCard.Render("###")
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, boxes...)
}

func renderView(v engine.View, totals [2]int) string {
	var b strings.Builder
	opp := v.You.Other()
	fmt.Fprintf(&b, "%s  you %d : %d bot   deck %d\n",
		title.Render("Shkuba"), totals[v.You], totals[opp], v.DeckSize)
	fmt.Fprintf(&b, "bot   pile %d  sweeps %d\n%s\n", v.Piles[opp], v.Sweeps[opp], renderBacks(v.OpponentCards))
	fmt.Fprintf(&b, "board\n%s\n", renderRow(v.Board, false))
	fmt.Fprintf(&b, "you   pile %d  sweeps %d\n%s\n", v.Piles[v.You], v.Sweeps[v.You], renderRow(v.Hand, true))
	return b.String()
}

func renderScore(s engine.Score, you engine.Player) string {
	var b strings.Builder
	for _, a := range s.Awards {
		who := "bot"
		style := bad
		if a.Player == you {
			who, style = "you", good
		}
		fmt.Fprintf(&b, "  %-10s %s\n", a.Category, style.Render(who))
	}
	if len(s.Awards) == 0 {
		b.WriteString(dim.Render("  no points this round") + "\n")
	}
	fmt.Fprintf(&b, "  round: you %d, bot %d\n", s.Of(you), s.Of(you.Other()))
	return b.String()
}
