package websocket

import (
	"sync"

	"Shkuba/internal/utils"
)

type HubInterface interface {
	BroadcastToPlayers(players []string, msg OutgoingMessage)
	ClientByPlayer(player string) (*Client, bool)
	SendToPlayer(player string, msg OutgoingMessage)
	Close()
}

type Hub struct {
	clients    map[string]*Client // player -> client
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastReq
	sendOne    chan sendReq
	incoming   chan IncomingMessage
	presence   chan presenceEvent
	quit       chan struct{}
	closeOnce  sync.Once
	mu         sync.RWMutex

	// OnIncoming runs on the hub goroutine and must not block.
	OnIncoming func(IncomingMessage)
	// OnConnect / OnDisconnect run in order on a separate goroutine, so
	// they may call back into the hub.
	OnConnect    func(player string)
	OnDisconnect func(player string)
}

type broadcastReq struct {
	Players []string
	Message OutgoingMessage
}

type sendReq struct {
	Player  string
	Message OutgoingMessage
}

type presenceEvent struct {
	player string
	online bool
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastReq),
		sendOne:    make(chan sendReq),
		incoming:   make(chan IncomingMessage),
		presence:   make(chan presenceEvent, 64),
		quit:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	utils.Log.Info("hub started")
	go h.dispatchPresence()

	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			// 同名重连：踢掉旧连接
			if old, ok := h.clients[c.Player]; ok && old != c {
				close(old.Send)
			}
			h.clients[c.Player] = c
			n := len(h.clients)
			h.mu.Unlock()
			utils.Log.Debug("hub register", "player", c.Player, "clients", n)
			h.notify(presenceEvent{player: c.Player, online: true})

		case c := <-h.unregister:
			h.mu.Lock()
			cur, ok := h.clients[c.Player]
			if ok && cur == c {
				delete(h.clients, c.Player)
				close(c.Send)
			}
			n := len(h.clients)
			h.mu.Unlock()
			if ok && cur == c {
				utils.Log.Debug("hub unregister", "player", c.Player, "clients", n)
				h.notify(presenceEvent{player: c.Player})
			}

		case req := <-h.broadcast:
			h.mu.RLock()
			for _, p := range req.Players {
				if client, ok := h.clients[p]; ok {
					deliver(client, req.Message)
				}
			}
			h.mu.RUnlock()

		case req := <-h.sendOne:
			h.mu.RLock()
			if client, ok := h.clients[req.Player]; ok {
				deliver(client, req.Message)
			}
			h.mu.RUnlock()

		case req := <-h.incoming:
			// 玩家消息统一转发给游戏层
			if h.OnIncoming != nil {
				h.OnIncoming(req)
			}

		case <-h.quit:
			h.mu.Lock()
			for p, c := range h.clients {
				close(c.Send)
				delete(h.clients, p)
			}
			h.mu.Unlock()
			utils.Log.Info("hub stopped")
			return
		}
	}
}

// deliver never blocks the hub: a client whose buffer is full misses the
// message and catches up with the next state push.
func deliver(c *Client, msg OutgoingMessage) {
	select {
	case c.Send <- msg:
	default:
		utils.Log.Warn("send buffer full, message dropped", "player", c.Player, "event", msg.Event)
	}
}

func (h *Hub) notify(ev presenceEvent) {
	select {
	case h.presence <- ev:
	case <-h.quit:
	}
}

func (h *Hub) dispatchPresence() {
	for {
		select {
		case ev := <-h.presence:
			switch {
			case ev.online && h.OnConnect != nil:
				h.OnConnect(ev.player)
			case !ev.online && h.OnDisconnect != nil:
				h.OnDisconnect(ev.player)
			}
		case <-h.quit:
			return
		}
	}
}

// BroadcastToPlayers sends msg to every listed player that is connected.
func (h *Hub) BroadcastToPlayers(players []string, msg OutgoingMessage) {
	select {
	case h.broadcast <- broadcastReq{Players: players, Message: msg}:
	case <-h.quit:
	}
}

// SendToPlayer is safe for concurrent use.
func (h *Hub) SendToPlayer(player string, msg OutgoingMessage) {
	select {
	case h.sendOne <- sendReq{Player: player, Message: msg}:
	case <-h.quit:
	}
}

func (h *Hub) ClientByPlayer(player string) (*Client, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	c, ok := h.clients[player]
	return c, ok
}

// Players lists the connected players.
func (h *Hub) Players() []string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]string, 0, len(h.clients))
	for p := range h.clients {
		out = append(out, p)
	}
	return out
}

func (h *Hub) Close() {
	h.closeOnce.Do(func() { close(h.quit) })
}

func (h *Hub) enqueue(ch chan<- *Client, c *Client) {
	select {
	case ch <- c:
	case <-h.quit:
	}
}
