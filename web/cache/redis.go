// Package cache provides the Redis connection backing server-side sessions.
// It supports both an embedded Redis (miniredis) and an external server.
package cache

import (
	"context"
	"fmt"

	"github.com/alicebob/miniredis/v2"
	"github.com/cadastro/disciplinas/logger"
	"github.com/redis/go-redis/v9"
)

// Redis wraps a client and, when embedded, the in-process server behind it.
type Redis struct {
	client    *redis.Client
	miniRedis *miniredis.Miniredis
}

// NewRedis connects to addr, or starts an embedded Redis when addr is empty.
func NewRedis(ctx context.Context, addr string) (*Redis, error) {
	r := &Redis{}
	if addr == "" {
		mr, err := miniredis.Run()
		if err != nil {
			return nil, fmt.Errorf("failed to start embedded Redis: %w", err)
		}
		r.miniRedis = mr
		r.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
		logger.Info("Embedded Redis started on", mr.Addr())
		return r, nil
	}

	r.client = redis.NewClient(&redis.Options{Addr: addr})
	if err := r.client.Ping(ctx).Err(); err != nil {
		_ = r.client.Close()
		return nil, fmt.Errorf("failed to connect to Redis at %s: %w", addr, err)
	}
	logger.Info("Connected to external Redis at", addr)
	return r, nil
}

func (r *Redis) Client() *redis.Client {
	return r.client
}

func (r *Redis) IsEmbedded() bool {
	return r.miniRedis != nil
}

// Close closes the client and stops the embedded server if running.
func (r *Redis) Close() error {
	var err error
	if r.client != nil {
		err = r.client.Close()
	}
	if r.miniRedis != nil {
		r.miniRedis.Close()
	}
	return err
}
