package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisWindow is a fixed window counter kept in redis, so that every instance
// sharing the redis sees the same counts.
//
// Windows are aligned to multiples of Window since the epoch rather than starting at
// an identifier's first request.
type RedisWindow struct {
	opts   *Options
	client redis.Cmdable
}

func NewRedisWindow(client redis.Cmdable, opts *Options) *RedisWindow {
	if opts == nil {
		opts = &Options{}
	}
	opts.SetDefaults()
	return &RedisWindow{opts: opts, client: client}
}

// Allow increments the counter for id's current window.
func (r *RedisWindow) Allow(ctx context.Context, id string) (bool, error) {
	key := r.windowKey(id, timeNow())

	pipe := r.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, 2*r.opts.Window)
	_, err := pipe.Exec(ctx)
	if err != nil {
		return false, err
	}
	return incr.Val() <= int64(r.opts.Limit), nil
}

func (r *RedisWindow) windowKey(id string, now time.Time) string {
	return fmt.Sprintf("%s:%s:%d", r.opts.Prefix, id, now.UnixNano()/int64(r.opts.Window))
}
