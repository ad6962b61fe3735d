// Command play runs a match against the bot in the terminal.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strconv"
	"strings"
	"time"

	"Shkuba/config"
	"Shkuba/internal/game/bot"
	"Shkuba/internal/game/engine"
	"Shkuba/internal/game/table"
	"Shkuba/internal/utils"
)

const help = `commands:
  take | board        keep the start card or put it on the board
  p <i> <cards...>    play hand card i capturing cards, e.g. "p 0 3h 4c"
  d <i>               drop hand card i on the board
  q                   quit`

var errQuit = errors.New("quit")

func main() {
	cfgPath := flag.String("config", "", "optional config file for game rules")
	seed := flag.Int64("seed", time.Now().UnixNano(), "shuffle seed")
	threshold := flag.Int("threshold", 0, "override the win threshold")
	flag.Parse()

	if err := config.Load(*cfgPath); err != nil {
		utils.Log.Fatal("config", "err", err)
	}
	rules, err := config.C.Game.Rules()
	if err != nil {
		utils.Log.Fatal("rules", "err", err)
	}
	if *threshold > 0 {
		rules.WinThreshold = *threshold
	}

	g := &game{
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
		bot:  bot.New(rules),
		you:  engine.P1,
		seed: *seed,
	}
	if err := g.play(rules); err != nil && !errors.Is(err, errQuit) {
		utils.Log.Fatal("game", "err", err)
	}
}

type game struct {
	in   *bufio.Scanner
	out  io.Writer
	bot  *bot.Bot
	you  engine.Player
	seed int64
}

func (g *game) play(rules engine.Rules) error {
	m, err := engine.NewMatch(rules, rand.New(rand.NewSource(g.seed)))
	if err != nil {
		return err
	}
	fmt.Fprintf(g.out, "first to %d points, seed %d\n%s\n\n", rules.WinThreshold, g.seed, dim.Render(help))

	r := m.Start()
	for {
		if err := g.playRound(m, r); err != nil {
			return err
		}
		score, err := r.CountPiles()
		if err != nil {
			return err
		}
		fmt.Fprintf(g.out, "\n%s\n%s", title.Render(fmt.Sprintf("round %d over", m.RoundsPlayed()+1)), renderScore(score, g.you))

		over, err := m.CompleteRound()
		if err != nil {
			return err
		}
		t1, t2 := m.Scores()
		fmt.Fprintf(g.out, "  match: you %d, bot %d\n\n", t1, t2)
		if over {
			if w, _ := m.Winner(); w == g.you {
				fmt.Fprintln(g.out, good.Render("you win!"))
			} else {
				fmt.Fprintln(g.out, bad.Render("the bot wins."))
			}
			return nil
		}
		r = m.Round()
	}
}

func (g *game) playRound(m *engine.Match, r *engine.Round) error {
	for r.Phase() != engine.RoundOver {
		switch r.Phase() {
		case engine.AwaitingFirstChoice:
			if err := g.firstChoice(r); err != nil {
				return err
			}
		case engine.Dealing:
			if err := r.DealCards(); err != nil && r.Phase() != engine.RoundOver {
				return err
			}
		case engine.Playing:
			if r.Turn() != g.you {
				mv, err := g.bot.Play(r, r.Turn())
				if err != nil {
					return err
				}
				fmt.Fprintf(g.out, "%s\n", dim.Render("bot: "+describe(mv)))
				continue
			}
			t1, t2 := m.Scores()
			fmt.Fprint(g.out, renderView(r.View(g.you), [2]int{t1, t2}))
			if err := g.yourMove(r); err != nil {
				return err
			}
		}
	}
	return nil
}

func describe(m bot.Move) string {
	if m.Kind == bot.MoveCapture {
		return fmt.Sprintf("captures %v", m.Capture)
	}
	return m.String()
}

func (g *game) firstChoice(r *engine.Round) error {
	c, err := r.FirstCard()
	if err != nil {
		return err
	}
	if r.FirstPlayer() != g.you {
		take := g.bot.ChooseFirst(c)
		msg := "bot puts the start card on the board"
		if take {
			msg = "bot keeps the start card"
		}
		fmt.Fprintln(g.out, dim.Render(msg))
		return r.FirstMiniRound(take)
	}

	fmt.Fprintf(g.out, "start card:\n%s\ntake or board? ", renderRow([]table.Card{c}, false))
	for {
		line, err := g.readLine()
		if err != nil {
			return err
		}
		switch line {
		case "take", "t":
			return r.FirstMiniRound(true)
		case "board", "b":
			return r.FirstMiniRound(false)
		}
		fmt.Fprint(g.out, "take or board? ")
	}
}

func (g *game) yourMove(r *engine.Round) error {
	for {
		fmt.Fprint(g.out, "> ")
		line, err := g.readLine()
		if err != nil {
			return err
		}
		err = g.apply(r, strings.Fields(line))
		if err == nil {
			return nil
		}
		if errors.Is(err, errQuit) {
			return err
		}
		fmt.Fprintln(g.out, bad.Render(err.Error()))
	}
}

func (g *game) apply(r *engine.Round, args []string) error {
	if len(args) == 0 {
		return errors.New(help)
	}
	switch args[0] {
	case "q", "quit":
		return errQuit
	case "d", "drop":
		if len(args) != 2 {
			return errors.New("usage: d <i>")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		return r.DropCard(g.you, i)
	case "p", "play":
		if len(args) < 3 {
			return errors.New("usage: p <i> <cards...>")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return err
		}
		sel := make([]table.Card, 0, len(args)-2)
		for _, a := range args[2:] {
			c, err := table.ParseCard(a)
			if err != nil {
				return err
			}
			sel = append(sel, c)
		}
		return r.PlayCard(g.you, i, sel)
	}
	return errors.New(help)
}

func (g *game) readLine() (string, error) {
	if !g.in.Scan() {
		if err := g.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.ToLower(strings.TrimSpace(g.in.Text())), nil
}
