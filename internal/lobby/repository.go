package lobby

import "context"

// Repo 大厅状态存储：在线列表、配对队列、房间
type Repo interface {
	// SetOnline / SetOffline 维护在线玩家集合
	SetOnline(ctx context.Context, name string) error
	SetOffline(ctx context.Context, name string) error
	// Online 返回按名字排序的在线玩家
	Online(ctx context.Context) ([]string, error)
	IsOnline(ctx context.Context, name string) (bool, error)

	// Enqueue 将玩家加入配对队列
	Enqueue(ctx context.Context, name string, ttlSeconds int) error
	// PopPair 队列中至少两人时原子弹出两人，否则返回空
	PopPair(ctx context.Context) ([]string, error)
	// Remove 将玩家移出队列（用于取消）
	Remove(ctx context.Context, name string) error
	// Count 返回队列人数
	Count(ctx context.Context) (int64, error)

	SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error
	// LoadRoom 房间不存在时返回 nil, nil
	LoadRoom(ctx context.Context, id string) (*Room, error)
	// PlayerRoom 返回玩家所在房间 id，没有则为空串
	PlayerRoom(ctx context.Context, name string) (string, error)
	ClearRoom(ctx context.Context, room *Room) error
}
