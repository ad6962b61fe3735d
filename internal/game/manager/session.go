package manager

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"Shkuba/internal/game/bot"
	"Shkuba/internal/game/engine"
	"Shkuba/internal/history"
	"Shkuba/internal/utils"
	"Shkuba/internal/websocket"
)

// BotName is the seat name used for the computer player.
const BotName = "bot"

var errUnknownEvent = errors.New("unknown event")

type Seat struct {
	Player string `json:"player"`
	Bot    bool   `json:"bot"`
}

// Session 一局对战：一个 Match，两个座位，一个动作协程
type Session struct {
	ID     string
	RoomID string

	seats    [2]Seat
	match    *engine.Match
	bot      *bot.Bot
	hub      websocket.HubInterface
	recorder history.Recorder
	botDelay time.Duration
	started  time.Time

	actions chan websocket.IncomingMessage
	quit    chan struct{}
	done    chan struct{}
	once    sync.Once

	// mu guards match while the loop works on it
	mu       sync.Mutex
	waiting  map[engine.Player]bool // 等待 next_round 的真人座位
	finished bool

	onEnd func(*Session)
}

func newSession(id string, seats [2]Seat, rules engine.Rules, rnd *rand.Rand, opts Options, hub websocket.HubInterface) (*Session, error) {
	m, err := engine.NewMatch(rules, rnd)
	if err != nil {
		return nil, err
	}
	return &Session{
		ID:       id,
		seats:    seats,
		match:    m,
		bot:      bot.New(rules),
		hub:      hub,
		recorder: opts.Recorder,
		botDelay: opts.BotDelay,
		started:  time.Now(),
		actions:  make(chan websocket.IncomingMessage, 32), // 防止阻塞 hub
		quit:     make(chan struct{}),
		done:     make(chan struct{}),
		waiting:  make(map[engine.Player]bool),
	}, nil
}

func (s *Session) Seats() [2]Seat { return s.seats }

// Done is closed once the action loop has exited.
func (s *Session) Done() <-chan struct{} { return s.done }

// seatOf 找到玩家座位
func (s *Session) seatOf(player string) (engine.Player, bool) {
	for _, p := range engine.Players {
		if !s.seats[p].Bot && s.seats[p].Player == player {
			return p, true
		}
	}
	return 0, false
}

func (s *Session) humans() []string {
	var out []string
	for _, seat := range s.seats {
		if !seat.Bot {
			out = append(out, seat.Player)
		}
	}
	return out
}

// View returns the current view of player, false once the match is over.
func (s *Session) View(player string) (StatePayload, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.seatOf(player)
	if !ok || s.match.Round() == nil {
		return StatePayload{}, false
	}
	return s.stateFor(p), true
}

func (s *Session) IsOver() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.finished
}

// Totals returns the match totals.
func (s *Session) Totals() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.match.Scores()
}

// enqueue 非阻塞投递，满了就拒绝
func (s *Session) enqueue(msg websocket.IncomingMessage) bool {
	select {
	case s.actions <- msg:
		return true
	default:
		return false
	}
}

func (s *Session) stop() {
	s.once.Do(func() { close(s.quit) })
}

// 动作循环：开局后串行处理所有玩家动作
func (s *Session) run() {
	defer close(s.done)
	defer func() {
		if s.onEnd != nil {
			s.onEnd(s)
		}
	}()

	s.mu.Lock()
	s.match.Start()
	s.mu.Unlock()

	s.hub.BroadcastToPlayers(s.humans(), websocket.OutgoingMessage{
		Event: EventStarted,
		Data:  map[string]any{"session": s.ID, "seats": s.seats},
	})
	if s.advance() {
		return
	}

	for {
		select {
		case msg := <-s.actions:
			if s.handle(msg) {
				return
			}
		case <-s.quit:
			return
		}
	}
}

// handle applies one player message. It reports whether the session ended.
func (s *Session) handle(msg websocket.IncomingMessage) bool {
	p, ok := s.seatOf(msg.From)
	if !ok {
		return false
	}

	if msg.Event == EventLeave {
		s.forfeit(p)
		return true
	}

	s.mu.Lock()
	err := s.apply(p, msg)
	s.mu.Unlock()
	if err != nil {
		utils.Log.Debug("action rejected", "session", s.ID, "player", msg.From, "event", msg.Event, "err", err)
		s.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
			Event: EventRejected,
			Data:  RejectedPayload{Event: msg.Event, Status: statusOf(err), Error: err.Error()},
		})
		return false
	}
	return s.advance()
}

func statusOf(err error) engine.Status {
	if errors.Is(err, errUnknownEvent) {
		return "UnknownEvent"
	}
	return engine.StatusOf(err)
}

func (s *Session) apply(p engine.Player, msg websocket.IncomingMessage) error {
	if msg.Event == EventNextRound {
		if !s.waiting[p] {
			return engine.ErrWrongPhase
		}
		delete(s.waiting, p)
		return nil
	}
	if len(s.waiting) > 0 {
		return engine.ErrWrongPhase
	}

	r := s.match.Round()
	if r == nil {
		return engine.ErrMatchOver
	}

	switch msg.Event {
	case EventFirstChoice:
		var req firstChoiceReq
		if err := msg.Decode(&req); err != nil {
			return err
		}
		if r.FirstPlayer() != p {
			return engine.ErrNotYourTurn
		}
		return r.FirstMiniRound(req.Take)

	case EventPlayCard:
		var req playCardReq
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return r.PlayCard(p, req.Index, req.Capture)

	case EventDropCard:
		var req dropCardReq
		if err := msg.Decode(&req); err != nil {
			return err
		}
		return r.DropCard(p, req.Index)
	}
	return errUnknownEvent
}

// advance runs everything that needs no human input: dealing, bot turns,
// round and match end. It pushes state whenever a human has to act and
// reports whether the session ended.
func (s *Session) advance() bool {
	for {
		s.mu.Lock()
		if len(s.waiting) > 0 {
			s.mu.Unlock()
			return false
		}
		r := s.match.Round()
		if r == nil {
			s.mu.Unlock()
			return true
		}

		var botTurn bool
		switch r.Phase() {
		case engine.Dealing:
			// 牌不够时 DealCards 直接结束本轮，下一圈进入 RoundOver
			if err := r.DealCards(); err != nil && r.Phase() != engine.RoundOver {
				utils.Log.Error("deal failed", "session", s.ID, "err", err)
				s.mu.Unlock()
				return false
			}
			s.mu.Unlock()
			continue

		case engine.AwaitingFirstChoice:
			botTurn = s.seats[r.FirstPlayer()].Bot

		case engine.Playing:
			botTurn = s.seats[r.Turn()].Bot

		case engine.RoundOver:
			over := s.finishRound(r)
			s.mu.Unlock()
			if over {
				return true
			}
			continue
		}
		s.mu.Unlock()

		s.pushState()
		if !botTurn {
			return false
		}
		if !s.pause() {
			return true
		}
		s.mu.Lock()
		err := s.botMove()
		s.mu.Unlock()
		if err != nil {
			utils.Log.Error("bot move failed", "session", s.ID, "err", err)
			return false
		}
	}
}

// pause waits botDelay so humans can follow the bot. False if the session
// was stopped meanwhile.
func (s *Session) pause() bool {
	if s.botDelay <= 0 {
		select {
		case <-s.quit:
			return false
		default:
			return true
		}
	}
	t := time.NewTimer(s.botDelay)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-s.quit:
		return false
	}
}

// botMove plays the bot's seat once. Caller holds mu.
func (s *Session) botMove() error {
	r := s.match.Round()
	if r.Phase() == engine.AwaitingFirstChoice {
		card, err := r.FirstCard()
		if err != nil {
			return err
		}
		return r.FirstMiniRound(s.bot.ChooseFirst(card))
	}
	m, err := s.bot.Play(r, r.Turn())
	if err != nil {
		return fmt.Errorf("%v: %w", m, err)
	}
	utils.Log.Debug("bot moved", "session", s.ID, "move", m.String())
	return nil
}

// finishRound scores the round and folds it into the match. Caller holds mu.
func (s *Session) finishRound(r *engine.Round) bool {
	score, err := r.CountPiles()
	if err != nil {
		utils.Log.Error("count piles failed", "session", s.ID, "err", err)
		return false
	}
	over, err := s.match.CompleteRound()
	if err != nil {
		utils.Log.Error("complete round failed", "session", s.ID, "err", err)
		return false
	}

	t1, t2 := s.match.Scores()
	round := s.match.RoundsPlayed()
	utils.Log.Info("round over", "session", s.ID, "round", round, "p1", score.P1, "p2", score.P2, "totals", [2]int{t1, t2})
	s.hub.BroadcastToPlayers(s.humans(), websocket.OutgoingMessage{
		Event: EventRoundOver,
		Data:  RoundOverPayload{Score: score, Totals: [2]int{t1, t2}, Round: round},
	})

	if !over {
		for _, p := range engine.Players {
			if !s.seats[p].Bot {
				s.waiting[p] = true
			}
		}
		return false
	}

	w, _ := s.match.Winner()
	s.finished = true
	res := MatchOverPayload{Winner: s.seats[w].Player, Totals: [2]int{t1, t2}, Rounds: round}
	utils.Log.Info("match over", "session", s.ID, "winner", res.Winner, "totals", res.Totals)
	s.hub.BroadcastToPlayers(s.humans(), websocket.OutgoingMessage{Event: EventMatchOver, Data: res})
	s.record(res)
	return true
}

func (s *Session) forfeit(p engine.Player) {
	s.mu.Lock()
	s.finished = true
	t1, t2 := s.match.Scores()
	rounds := s.match.RoundsPlayed()
	s.mu.Unlock()

	res := MatchOverPayload{Winner: s.seats[p.Other()].Player, Totals: [2]int{t1, t2}, Rounds: rounds, Forfeit: true}
	utils.Log.Info("player left", "session", s.ID, "player", s.seats[p].Player)
	s.hub.BroadcastToPlayers(s.humans(), websocket.OutgoingMessage{Event: EventMatchOver, Data: res})
}

func (s *Session) record(res MatchOverPayload) {
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := s.recorder.Record(ctx, history.Result{
		ID:         s.ID,
		P1:         s.seats[engine.P1].Player,
		P2:         s.seats[engine.P2].Player,
		Score1:     res.Totals[0],
		Score2:     res.Totals[1],
		Winner:     res.Winner,
		Rounds:     res.Rounds,
		FinishedAt: time.Now(),
	})
	if err != nil {
		utils.Log.Error("record result failed", "session", s.ID, "err", err)
	}
}

func (s *Session) pushState() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.match.Round() == nil {
		return
	}
	for _, p := range engine.Players {
		if s.seats[p].Bot {
			continue
		}
		s.hub.SendToPlayer(s.seats[p].Player, websocket.OutgoingMessage{
			Event: EventState,
			Data:  s.stateFor(p),
		})
	}
}

// stateFor builds p's payload. Caller holds mu.
func (s *Session) stateFor(p engine.Player) StatePayload {
	r := s.match.Round()
	t1, t2 := s.match.Scores()
	st := StatePayload{
		Session:  s.ID,
		View:     r.View(p),
		Opponent: s.seats[p.Other()].Player,
		Totals:   [2]int{t1, t2},
		Round:    s.match.RoundsPlayed() + 1,
	}
	if r.Phase() == engine.AwaitingFirstChoice && r.FirstPlayer() == p {
		if c, err := r.FirstCard(); err == nil {
			st.FirstCard = &c
		}
	}
	return st
}
