package storage

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

var Rdb *redis.Client

// InitRedis connects the lobby store.
func InitRedis(ctx context.Context, addr, password string, db int) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return err
	}
	Rdb = rdb
	return nil
}

// Close releases whichever clients were opened.
func Close() {
	if Rdb != nil {
		_ = Rdb.Close()
	}
	if DB != nil {
		_ = DB.Close()
	}
}
