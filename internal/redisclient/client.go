package redisclient

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const clientName = "painel-brotar"

// Client wraps a Redis client with OpenTelemetry tracing
type Client struct {
	cmdable redis.Cmdable
	closer  func() error
}

// NewClient creates a new traced Redis client for a single Redis instance
func NewClient(client *redis.Client) *Client {
	return &Client{cmdable: client, closer: client.Close}
}

// NewClusterClient creates a new traced Redis client for Redis cluster
func NewClusterClient(client *redis.ClusterClient) *Client {
	return &Client{cmdable: client, closer: client.Close}
}

// traced runs one command inside a span named after the operation. A
// redis.Nil reply is a cache miss, not an error.
func traced[C redis.Cmder](ctx context.Context, operation string, attrs []attribute.KeyValue, run func(context.Context) C) C {
	start := time.Now()
	attrs = append(attrs,
		attribute.String("redis.operation", operation),
		attribute.String("redis.client", clientName),
	)
	ctx, span := otel.Tracer("redis").Start(ctx, "redis."+operation, trace.WithAttributes(attrs...))
	defer span.End()

	cmd := run(ctx)

	span.SetAttributes(attribute.Int64("redis.duration_ms", time.Since(start).Milliseconds()))
	if err := cmd.Err(); err != nil && !errors.Is(err, redis.Nil) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "success")
	}
	return cmd
}

// Get wraps Redis GET
func (c *Client) Get(ctx context.Context, key string) *redis.StringCmd {
	return traced(ctx, "get", []attribute.KeyValue{attribute.String("redis.key", key)},
		func(ctx context.Context) *redis.StringCmd { return c.cmdable.Get(ctx, key) })
}

// GetDel wraps Redis GETDEL, reading a value and removing it atomically
func (c *Client) GetDel(ctx context.Context, key string) *redis.StringCmd {
	return traced(ctx, "getdel", []attribute.KeyValue{attribute.String("redis.key", key)},
		func(ctx context.Context) *redis.StringCmd { return c.cmdable.GetDel(ctx, key) })
}

// Set wraps Redis SET
func (c *Client) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	attrs := []attribute.KeyValue{
		attribute.String("redis.key", key),
		attribute.String("redis.expiration", expiration.String()),
	}
	return traced(ctx, "set", attrs,
		func(ctx context.Context) *redis.StatusCmd { return c.cmdable.Set(ctx, key, value, expiration) })
}

// Del wraps Redis DEL
func (c *Client) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	attrs := []attribute.KeyValue{
		attribute.StringSlice("redis.keys", keys),
		attribute.Int("redis.key_count", len(keys)),
	}
	return traced(ctx, "del", attrs,
		func(ctx context.Context) *redis.IntCmd { return c.cmdable.Del(ctx, keys...) })
}

// TTL wraps Redis TTL
func (c *Client) TTL(ctx context.Context, key string) *redis.DurationCmd {
	return traced(ctx, "ttl", []attribute.KeyValue{attribute.String("redis.key", key)},
		func(ctx context.Context) *redis.DurationCmd { return c.cmdable.TTL(ctx, key) })
}

// Ping wraps Redis PING
func (c *Client) Ping(ctx context.Context) *redis.StatusCmd {
	return traced(ctx, "ping", nil,
		func(ctx context.Context) *redis.StatusCmd { return c.cmdable.Ping(ctx) })
}

// Close releases the underlying connection pool
func (c *Client) Close() error {
	if c == nil || c.closer == nil {
		return nil
	}
	return c.closer()
}
