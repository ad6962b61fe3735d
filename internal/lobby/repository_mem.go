package lobby

import (
	"context"
	"math/rand"
	"sort"
	"sync"
)

type memRepo struct {
	mu      sync.Mutex
	online  map[string]struct{}
	queue   map[string]struct{}
	rooms   map[string]*Room
	players map[string]string // name -> room id
}

// NewMemoryRepo is used when no Redis is configured and in tests. TTLs
// are ignored.
func NewMemoryRepo() Repo {
	return &memRepo{
		online:  make(map[string]struct{}),
		queue:   make(map[string]struct{}),
		rooms:   make(map[string]*Room),
		players: make(map[string]string),
	}
}

func (m *memRepo) SetOnline(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.online[name] = struct{}{}
	return nil
}

func (m *memRepo) SetOffline(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.online, name)
	return nil
}

func (m *memRepo) Online(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, 0, len(m.online))
	for n := range m.online {
		out = append(out, n)
	}
	sort.Strings(out)
	return out, nil
}

func (m *memRepo) IsOnline(ctx context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.online[name]
	return ok, nil
}

func (m *memRepo) Enqueue(ctx context.Context, name string, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.queue[name] = struct{}{}
	return nil
}

func (m *memRepo) PopPair(ctx context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.queue) < 2 {
		return []string{}, nil
	}

	// 随机取两人，与 Redis SPOP 行为对齐
	names := make([]string, 0, len(m.queue))
	for n := range m.queue {
		names = append(names, n)
	}
	rand.Shuffle(len(names), func(i, j int) { names[i], names[j] = names[j], names[i] })

	chosen := names[:2]
	for _, n := range chosen {
		delete(m.queue, n)
	}
	return chosen, nil
}

func (m *memRepo) Remove(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.queue, name)
	return nil
}

func (m *memRepo) Count(ctx context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.queue)), nil
}

func (m *memRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *room
	cp.Players = append([]string(nil), room.Players...)
	m.rooms[room.ID] = &cp
	for _, p := range room.Players {
		m.players[p] = room.ID
	}
	return nil
}

func (m *memRepo) LoadRoom(ctx context.Context, id string) (*Room, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.rooms[id]
	if !ok {
		return nil, nil
	}
	cp := *r
	cp.Players = append([]string(nil), r.Players...)
	return &cp, nil
}

func (m *memRepo) PlayerRoom(ctx context.Context, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.players[name], nil
}

func (m *memRepo) ClearRoom(ctx context.Context, room *Room) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.rooms, room.ID)
	for _, p := range room.Players {
		if m.players[p] == room.ID {
			delete(m.players, p)
		}
	}
	return nil
}
