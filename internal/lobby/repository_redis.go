package lobby

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	rdb *redis.Client
}

func NewRedisRepo(rdb *redis.Client) Repo {
	return &redisRepo{rdb: rdb}
}

// key 约定：
//
//	set: lobby:online                 -> Set(name,...)
//	set: lobby:queue                  -> Set(name,...) 配对队列
//	kv : lobby:queued:{name}          -> "1"，带 TTL，避免长期遗留
//	kv : lobby:room:{id}              -> Room JSON
//	kv : lobby:playerRoom:{name}      -> room id
const (
	onlineKey = "lobby:online"
	queueKey  = "lobby:queue"
)

func queuedKey(name string) string {
	return fmt.Sprintf("lobby:queued:%s", name)
}

func roomKey(id string) string {
	return fmt.Sprintf("lobby:room:%s", id)
}

func playerRoomKey(name string) string {
	return fmt.Sprintf("lobby:playerRoom:%s", name)
}

func (r *redisRepo) SetOnline(ctx context.Context, name string) error {
	return r.rdb.SAdd(ctx, onlineKey, name).Err()
}

func (r *redisRepo) SetOffline(ctx context.Context, name string) error {
	return r.rdb.SRem(ctx, onlineKey, name).Err()
}

func (r *redisRepo) Online(ctx context.Context) ([]string, error) {
	names, err := r.rdb.SMembers(ctx, onlineKey).Result()
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

func (r *redisRepo) IsOnline(ctx context.Context, name string) (bool, error) {
	return r.rdb.SIsMember(ctx, onlineKey, name).Result()
}

func (r *redisRepo) Enqueue(ctx context.Context, name string, ttlSeconds int) error {
	p := r.rdb.Pipeline()
	p.SAdd(ctx, queueKey, name)
	p.Set(ctx, queuedKey(name), "1", time.Duration(ttlSeconds)*time.Second)
	_, err := p.Exec(ctx)
	return err
}

// popPair 人数不足两人时不弹出，避免把单个玩家从队列里丢掉
// KEYS[1] = queueKey, ARGV[1] = queued key 前缀
var popPair = redis.NewScript(`
	if redis.call("SCARD", KEYS[1]) < 2 then
		return {}
	end
	local names = redis.call("SPOP", KEYS[1], 2)
	for _, n in ipairs(names) do
		redis.call("DEL", ARGV[1] .. n)
	end
	if redis.call("SCARD", KEYS[1]) == 0 then
		redis.call("DEL", KEYS[1])
	end
	return names
`)

func (r *redisRepo) PopPair(ctx context.Context) ([]string, error) {
	res, err := popPair.Run(ctx, r.rdb, []string{queueKey}, queuedKey("")).StringSlice()
	if errors.Is(err, redis.Nil) {
		return []string{}, nil
	}
	if err != nil {
		return nil, err
	}
	return res, nil
}

// removeQueued 删除标记、移出集合；集合空则删除集合
var removeQueued = redis.NewScript(`
	redis.call("DEL", KEYS[1])
	redis.call("SREM", KEYS[2], ARGV[1])
	if redis.call("SCARD", KEYS[2]) == 0 then
		redis.call("DEL", KEYS[2])
	end
	return 1
`)

func (r *redisRepo) Remove(ctx context.Context, name string) error {
	return removeQueued.Run(ctx, r.rdb, []string{queuedKey(name), queueKey}, name).Err()
}

func (r *redisRepo) Count(ctx context.Context) (int64, error) {
	return r.rdb.SCard(ctx, queueKey).Result()
}

func (r *redisRepo) SaveRoom(ctx context.Context, room *Room, ttlSeconds int) error {
	data, err := json.Marshal(room)
	if err != nil {
		return err
	}
	ttl := time.Duration(ttlSeconds) * time.Second
	p := r.rdb.Pipeline()
	p.Set(ctx, roomKey(room.ID), data, ttl)
	for _, name := range room.Players {
		p.Set(ctx, playerRoomKey(name), room.ID, ttl)
	}
	_, err = p.Exec(ctx)
	return err
}

func (r *redisRepo) LoadRoom(ctx context.Context, id string) (*Room, error) {
	data, err := r.rdb.Get(ctx, roomKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var room Room
	if err := json.Unmarshal(data, &room); err != nil {
		return nil, fmt.Errorf("decode room %s: %w", id, err)
	}
	return &room, nil
}

func (r *redisRepo) PlayerRoom(ctx context.Context, name string) (string, error) {
	val, err := r.rdb.Get(ctx, playerRoomKey(name)).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return val, nil
}

func (r *redisRepo) ClearRoom(ctx context.Context, room *Room) error {
	keys := []string{roomKey(room.ID)}
	for _, name := range room.Players {
		keys = append(keys, playerRoomKey(name))
	}
	return r.rdb.Del(ctx, keys...).Err()
}
