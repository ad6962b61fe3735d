package manager

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"Shkuba/internal/game/engine"
	"Shkuba/internal/history"
	"Shkuba/internal/lobby"
	"Shkuba/internal/utils"
	"Shkuba/internal/websocket"

	"github.com/google/uuid"
)

var (
	ErrAlreadyPlaying = errors.New("player already in a game")
	ErrNoSession      = errors.New("no such session")
)

type Options struct {
	Rules    engine.Rules
	BotDelay time.Duration
	Recorder history.Recorder
	// NewRand seeds each match; nil uses the clock.
	NewRand func() *rand.Rand
}

// GameManager 管理所有对局
type GameManager struct {
	mu              sync.RWMutex
	sessions        map[string]*Session // session id → session
	playerToSession map[string]string   // player → session id
	hub             websocket.HubInterface
	opts            Options

	// OnSessionEnd runs on the session goroutine after it finishes.
	OnSessionEnd func(*Session)
}

func NewGameManager(hub websocket.HubInterface, opts Options) *GameManager {
	if opts.NewRand == nil {
		opts.NewRand = func() *rand.Rand { return rand.New(rand.NewSource(time.Now().UnixNano())) }
	}
	return &GameManager{
		sessions:        make(map[string]*Session),
		playerToSession: make(map[string]string),
		hub:             hub,
		opts:            opts,
	}
}

// StartBotGame seats player against the bot, player moving first in the
// first round.
func (m *GameManager) StartBotGame(player string) (string, error) {
	if player == "" || player == BotName {
		return "", fmt.Errorf("invalid player name %q", player)
	}
	seats := [2]Seat{{Player: player}, {Player: BotName, Bot: true}}
	s, err := m.open(uuid.NewString(), "", seats)
	if err != nil {
		return "", err
	}
	return s.ID, nil
}

// StartRoom 为配对成功的两名玩家开局，房间 id 即 session id
func (m *GameManager) StartRoom(r *lobby.Room) error {
	if len(r.Players) != 2 || r.Players[0] == r.Players[1] {
		return fmt.Errorf("room %s needs two distinct players", r.ID)
	}
	seats := [2]Seat{{Player: r.Players[0]}, {Player: r.Players[1]}}
	_, err := m.open(r.ID, r.ID, seats)
	return err
}

func (m *GameManager) open(id, roomID string, seats [2]Seat) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; ok {
		return nil, fmt.Errorf("session %s exists", id)
	}
	for _, seat := range seats {
		if seat.Bot {
			continue
		}
		if sid, ok := m.playerToSession[seat.Player]; ok {
			return nil, fmt.Errorf("%w: %s in %s", ErrAlreadyPlaying, seat.Player, sid)
		}
	}

	s, err := newSession(id, seats, m.opts.Rules, m.opts.NewRand(), m.opts, m.hub)
	if err != nil {
		return nil, err
	}
	s.RoomID = roomID
	s.onEnd = m.remove

	m.sessions[id] = s
	// 建立玩家 → session 映射
	for _, seat := range seats {
		if !seat.Bot {
			m.playerToSession[seat.Player] = id
		}
	}

	utils.Log.Info("session started", "session", id, "p1", seats[0].Player, "p2", seats[1].Player)
	go s.run()
	return s, nil
}

// BindLobby starts a game for every lobby pairing. The room is released
// when its game ends or cannot start, and seated players cannot queue.
func (m *GameManager) BindLobby(svc *lobby.Service) {
	svc.InGame = func(player string) bool {
		_, ok := m.SessionOf(player)
		return ok
	}
	svc.OnRoomReady = func(room *lobby.Room) {
		if err := m.StartRoom(room); err != nil {
			utils.Log.Error("StartRoom error", "room", room.ID, "err", err)
			leaveRoom(svc, room.ID)
		}
	}
	m.OnSessionEnd = func(s *Session) {
		if s.RoomID != "" {
			leaveRoom(svc, s.RoomID)
		}
	}
}

func leaveRoom(svc *lobby.Service, roomID string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := svc.Leave(ctx, roomID); err != nil && !errors.Is(err, lobby.ErrNoSuchRoom) {
		utils.Log.Error("leave room", "room", roomID, "err", err)
	}
}

func (m *GameManager) remove(s *Session) {
	m.mu.Lock()
	if m.sessions[s.ID] == s {
		delete(m.sessions, s.ID)
		for _, seat := range s.seats {
			if m.playerToSession[seat.Player] == s.ID {
				delete(m.playerToSession, seat.Player)
			}
		}
	}
	m.mu.Unlock()

	utils.Log.Info("session ended", "session", s.ID)
	if m.OnSessionEnd != nil {
		m.OnSessionEnd(s)
	}
}

// HandlePlayerMessage 统一入口（来自 Hub.OnIncoming），不阻塞
func (m *GameManager) HandlePlayerMessage(msg websocket.IncomingMessage) {
	m.mu.RLock()
	s := m.sessions[m.playerToSession[msg.From]]
	m.mu.RUnlock()

	if s == nil {
		return
	}
	if !s.enqueue(msg) {
		// 在 hub 协程里，不能同步回发
		go m.hub.SendToPlayer(msg.From, websocket.OutgoingMessage{
			Event: EventRejected,
			Data:  RejectedPayload{Event: msg.Event, Status: "Busy", Error: "too many pending actions"},
		})
	}
}

// EndSession stops a session without a result.
func (m *GameManager) EndSession(id string) error {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return ErrNoSession
	}
	s.stop()
	<-s.done
	return nil
}

func (m *GameManager) Session(id string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[id]
	return s, ok
}

// SessionOf returns the session player is seated in.
func (m *GameManager) SessionOf(player string) (*Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[m.playerToSession[player]]
	return s, ok
}

// Close stops every session.
func (m *GameManager) Close() {
	m.mu.RLock()
	all := make([]*Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		all = append(all, s)
	}
	m.mu.RUnlock()
	for _, s := range all {
		s.stop()
		<-s.done
	}
}
