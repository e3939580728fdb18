package signal

import (
	"context"

	"github.com/teltechdev/teltech-backend/pkg/kv"
	"github.com/teltechdev/teltech-backend/pkg/logger"
)

// RedisListener pumps key-changed messages from the shared Redis channel into
// a Hub, so views in this process react to writes made by any process sharing
// the backend.
type RedisListener struct {
	backend *kv.RedisBackend
	hub     *Hub
	logg    *logger.Logger
}

func NewRedisListener(backend *kv.RedisBackend, hub *Hub, logg *logger.Logger) *RedisListener {
	return &RedisListener{backend: backend, hub: hub, logg: logg}
}

// Run subscribes and blocks until the context is cancelled or the
// subscription channel closes.
func (l *RedisListener) Run(ctx context.Context) error {
	sub := l.backend.Subscribe(ctx)
	defer sub.Close()

	if l.logg != nil {
		l.logg.Info(ctx, "listening for change signals")
	}
	ch := sub.Channel()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case msg, ok := <-ch:
			if !ok {
				return nil
			}
			l.hub.Publish(ctx, msg.Payload)
		}
	}
}
