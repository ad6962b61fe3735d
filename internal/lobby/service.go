package lobby

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"Shkuba/internal/utils"
	"Shkuba/internal/websocket"

	"github.com/google/uuid"
)

var (
	ErrEmptyName     = errors.New("player name required")
	ErrAlreadyInRoom = errors.New("player already in a room")
	ErrInGame        = errors.New("player already in a game")
	ErrNotOnline     = errors.New("player not online")
	ErrSelfAlert     = errors.New("cannot alert yourself")
	ErrNoSuchRoom    = errors.New("room not found")
)

// DefaultRoomTTL keeps a room record for the length of a long match.
const DefaultRoomTTL = 2 * 60 * 60

type Notifier interface {
	BroadcastToPlayers(players []string, msg websocket.OutgoingMessage)
	SendToPlayer(player string, msg websocket.OutgoingMessage)
}

// Service 大厅：在线列表、提醒、两人配对
type Service struct {
	repo      Repo
	playerTTL int // seconds, 排队记录的过期时间
	hub       Notifier

	// RoomTTL 房间记录的过期时间（秒），对局结束时会提前清掉
	RoomTTL     int
	OnRoomReady func(*Room) // 配对成功时调用，启动对局
	// InGame reports players already seated in a game; they cannot queue.
	InGame func(name string) bool
}

func NewService(repo Repo, playerTTL int, hub Notifier) *Service {
	return &Service{repo: repo, playerTTL: playerTTL, hub: hub, RoomTTL: DefaultRoomTTL}
}

func normalize(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrEmptyName
	}
	return name, nil
}

// Connect marks name online and pushes the new list to everyone online.
func (s *Service) Connect(ctx context.Context, name string) error {
	name, err := normalize(name)
	if err != nil {
		return err
	}
	if err := s.repo.SetOnline(ctx, name); err != nil {
		return err
	}
	utils.Log.Info("player online", "player", name)
	return s.broadcastPlayers(ctx)
}

// Disconnect takes name offline and out of the pairing queue.
func (s *Service) Disconnect(ctx context.Context, name string) error {
	name, err := normalize(name)
	if err != nil {
		return err
	}
	if err := s.repo.SetOffline(ctx, name); err != nil {
		return err
	}
	if err := s.repo.Remove(ctx, name); err != nil {
		return err
	}
	utils.Log.Info("player offline", "player", name)
	return s.broadcastPlayers(ctx)
}

func (s *Service) Online(ctx context.Context) ([]string, error) {
	return s.repo.Online(ctx)
}

func (s *Service) broadcastPlayers(ctx context.Context) error {
	names, err := s.repo.Online(ctx)
	if err != nil {
		return err
	}
	s.hub.BroadcastToPlayers(names, websocket.OutgoingMessage{
		Event: "players",
		Data:  map[string]any{"players": names},
	})
	return nil
}

// Alert nudges an online player, e.g. to invite them to a game.
func (s *Service) Alert(ctx context.Context, from, to string) error {
	from, err := normalize(from)
	if err != nil {
		return err
	}
	if to, err = normalize(to); err != nil {
		return err
	}
	if from == to {
		return ErrSelfAlert
	}
	ok, err := s.repo.IsOnline(ctx, to)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotOnline, to)
	}
	s.hub.SendToPlayer(to, websocket.OutgoingMessage{
		Event: "alert",
		Data:  map[string]any{"from": from},
	})
	return nil
}

// Join 入队并尝试立即配对。配对成功返回房间，否则 queued 为 true。
func (s *Service) Join(ctx context.Context, name string) (*Room, bool, error) {
	name, err := normalize(name)
	if err != nil {
		return nil, false, err
	}

	// 防止重复匹配：玩家已在房间中
	roomID, err := s.repo.PlayerRoom(ctx, name)
	if err != nil {
		return nil, false, err
	}
	if roomID != "" {
		return nil, false, fmt.Errorf("%w: %s in %s", ErrAlreadyInRoom, name, roomID)
	}
	if s.InGame != nil && s.InGame(name) {
		return nil, false, fmt.Errorf("%w: %s", ErrInGame, name)
	}

	if err := s.repo.Enqueue(ctx, name, s.playerTTL); err != nil {
		return nil, false, err
	}
	names, err := s.repo.PopPair(ctx)
	if err != nil {
		return nil, false, err
	}
	if len(names) < 2 {
		return nil, true, nil // queued
	}

	room := &Room{
		ID:        uuid.NewString(),
		Players:   names,
		CreatedAt: time.Now(),
	}
	if err := s.repo.SaveRoom(ctx, room, s.RoomTTL); err != nil {
		utils.Log.Error("save room failed", "room", room.ID, "err", err)
	}
	utils.Log.Info("room ready", "room", room.ID, "players", room.Players)

	s.hub.BroadcastToPlayers(names, websocket.OutgoingMessage{
		Event: "matched",
		Data: map[string]any{
			"roomId":  room.ID,
			"players": room.Players,
		},
	})

	if s.OnRoomReady != nil {
		go s.OnRoomReady(room)
	}
	return room, false, nil
}

func (s *Service) Cancel(ctx context.Context, name string) error {
	name, err := normalize(name)
	if err != nil {
		return err
	}
	return s.repo.Remove(ctx, name)
}

// Leave frees both players of a finished room so they can queue again.
func (s *Service) Leave(ctx context.Context, roomID string) error {
	room, err := s.repo.LoadRoom(ctx, roomID)
	if err != nil {
		return err
	}
	if room == nil {
		return ErrNoSuchRoom
	}
	return s.repo.ClearRoom(ctx, room)
}
